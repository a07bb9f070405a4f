package fetcher

import (
	"bufio"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

const (
	sessionCookieName = "session"
	httpOnlyPrefix    = "#HttpOnly_"
	netscapeFields    = 7
)

/*
loadCookieJar reads the cookie file and returns a jar holding the cookies
that apply to target.

Accepted formats, one per line:
  - Netscape cookie-jar lines as written by curl and browser exporters
    (domain, subdomains flag, path, secure, expiry, name, value; tab separated)
  - Cookie header pairs: "name=value; other=value"
  - A bare session token, sent as the "session" cookie

Blank lines and "#" comments are skipped. Expired Netscape entries and
entries for other domains are dropped.
*/
func loadCookieJar(path string, target url.URL, now time.Time) (http.CookieJar, *FetchError) {
	cookies, err := readCookieFile(path, target, now)
	if err != nil {
		return nil, err
	}

	jar, jarErr := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if jarErr != nil {
		return nil, &FetchError{
			Message: fmt.Sprintf("create cookie jar: %v", jarErr),
			Cause:   ErrCauseCookieJar,
		}
	}
	jar.SetCookies(&target, cookies)
	if len(jar.Cookies(&target)) == 0 {
		return nil, &FetchError{
			Message: fmt.Sprintf("no cookie in %s applies to %s", path, target.Host),
			Cause:   ErrCauseCookieJar,
		}
	}
	return jar, nil
}

func readCookieFile(path string, target url.URL, now time.Time) ([]*http.Cookie, *FetchError) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &FetchError{
			Message: fmt.Sprintf("open cookie file: %v", err),
			Cause:   ErrCauseCookieJar,
		}
	}
	defer file.Close()

	host := target.Hostname()
	var cookies []*http.Cookie
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) >= netscapeFields {
			if cookie, ok := parseNetscapeLine(fields, host, now); ok {
				cookies = append(cookies, cookie)
			}
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, "=") {
			cookies = append(cookies, parseHeaderLine(line)...)
			continue
		}
		cookies = append(cookies, &http.Cookie{Name: sessionCookieName, Value: line, Path: "/"})
	}
	if err := scanner.Err(); err != nil {
		return nil, &FetchError{
			Message: fmt.Sprintf("read cookie file: %v", err),
			Cause:   ErrCauseCookieJar,
		}
	}
	if len(cookies) == 0 {
		return nil, &FetchError{
			Message: fmt.Sprintf("cookie file %s holds no cookies", path),
			Cause:   ErrCauseCookieJar,
		}
	}
	return cookies, nil
}

func parseNetscapeLine(fields []string, host string, now time.Time) (*http.Cookie, bool) {
	domain := fields[0]
	httpOnly := false
	if strings.HasPrefix(domain, httpOnlyPrefix) {
		domain = strings.TrimPrefix(domain, httpOnlyPrefix)
		httpOnly = true
	} else if strings.HasPrefix(domain, "#") {
		return nil, false
	}

	expires, err := strconv.ParseInt(strings.TrimSpace(fields[4]), 10, 64)
	if err != nil {
		return nil, false
	}
	if expires > 0 && time.Unix(expires, 0).Before(now) {
		return nil, false
	}

	domain = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(domain)), ".")
	includeSubdomains := strings.EqualFold(fields[1], "TRUE")
	if !domainMatches(host, domain) || (!includeSubdomains && !strings.EqualFold(host, domain)) {
		return nil, false
	}

	cookie := &http.Cookie{
		Name:     fields[5],
		Value:    strings.TrimSpace(fields[6]),
		Path:     fields[2],
		Secure:   strings.EqualFold(fields[3], "TRUE"),
		HttpOnly: httpOnly,
	}
	if includeSubdomains {
		cookie.Domain = domain
	}
	if expires > 0 {
		cookie.Expires = time.Unix(expires, 0)
	}
	return cookie, true
}

func parseHeaderLine(line string) []*http.Cookie {
	var cookies []*http.Cookie
	for _, pair := range strings.Split(line, ";") {
		name, value, found := strings.Cut(strings.TrimSpace(pair), "=")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			continue
		}
		cookies = append(cookies, &http.Cookie{
			Name:  name,
			Value: strings.TrimSpace(value),
			Path:  "/",
		})
	}
	return cookies
}

func domainMatches(host string, domain string) bool {
	host = strings.ToLower(host)
	return host == domain || strings.HasSuffix(host, "."+domain)
}
