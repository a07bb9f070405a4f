package urlutil

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	YearPlaceholder = "{year}"
	DayPlaceholder  = "{day}"
)

// ExpandTemplate substitutes year and day into a URL template such as
// "https://adventofcode.com/{year}/day/{day}/input" and returns the canonical URL.
//
// Both placeholders must be present and the result must be an absolute
// http(s) URL with a host.
func ExpandTemplate(template string, year int, day int) (url.URL, error) {
	if !strings.Contains(template, YearPlaceholder) || !strings.Contains(template, DayPlaceholder) {
		return url.URL{}, fmt.Errorf("url template %q must contain both %s and %s", template, YearPlaceholder, DayPlaceholder)
	}

	expanded := strings.NewReplacer(
		YearPlaceholder, strconv.Itoa(year),
		DayPlaceholder, strconv.Itoa(day),
	).Replace(template)

	parsed, err := url.Parse(expanded)
	if err != nil {
		return url.URL{}, fmt.Errorf("invalid url template %q: %w", template, err)
	}
	canonical := Canonicalize(*parsed)
	if canonical.Scheme != "http" && canonical.Scheme != "https" {
		return url.URL{}, fmt.Errorf("url template %q must use http or https", template)
	}
	if canonical.Host == "" {
		return url.URL{}, fmt.Errorf("url template %q has no host", template)
	}
	return canonical, nil
}

// Canonicalize applies a deterministic normalization to a URL.
//
// The normalization follows these rules:
//   - Scheme and host are lowercased
//   - Path is cleaned (trailing slashes removed, except for root "/")
//   - Fragments are removed
//   - Default ports are omitted (e.g., :80 for http, :443 for https)
//
// Query parameters are kept since a mirror endpoint may need them.
func Canonicalize(sourceUrl url.URL) url.URL {
	canonical := sourceUrl

	canonical.Scheme = strings.ToLower(canonical.Scheme)
	canonical.Host = strings.ToLower(canonical.Host)

	if host, port := canonical.Hostname(), canonical.Port(); port != "" {
		if (canonical.Scheme == "http" && port == "80") ||
			(canonical.Scheme == "https" && port == "443") {
			canonical.Host = host
		}
	}

	if len(canonical.Path) > 1 {
		canonical.Path = stripTrailingSlash(canonical.Path)
		canonical.RawPath = ""
	}

	canonical.Fragment = ""
	canonical.RawFragment = ""

	return canonical
}

// stripTrailingSlash removes trailing slashes from a path.
func stripTrailingSlash(path string) string {
	for len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	return path
}
