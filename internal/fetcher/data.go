package fetcher

import "time"

const (
	DefaultURLTemplate = "https://adventofcode.com/{year}/day/{day}/input"
	DefaultCookieFile  = "cookie.txt"
	DefaultTimeout     = 30 * time.Second
	DefaultUserAgent   = "rudolf (+https://github.com/rohmanhakim/rudolf)"
)

// HTTP boundary

type FetchParam struct {
	urlTemplate string
	userAgent   string
	timeout     time.Duration
	cookieFile  string
}

func NewFetchParam(
	urlTemplate string,
	userAgent string,
	timeout time.Duration,
	cookieFile string,
) FetchParam {
	return FetchParam{
		urlTemplate: urlTemplate,
		userAgent:   userAgent,
		timeout:     timeout,
		cookieFile:  cookieFile,
	}
}

func (p FetchParam) URLTemplate() string {
	return p.urlTemplate
}

func (p FetchParam) UserAgent() string {
	return p.userAgent
}

func (p FetchParam) Timeout() time.Duration {
	return p.timeout
}

func (p FetchParam) CookieFile() string {
	return p.cookieFile
}

// FetchResult owns the fetched body until the caller hands it to the cache
// or discards it.
type FetchResult struct {
	body []byte
	meta ResponseMeta
}

func (f *FetchResult) Body() []byte {
	return f.body
}

func (f *FetchResult) Text() string {
	return string(f.body)
}

func (f *FetchResult) Code() int {
	return f.meta.statusCode
}

func (f *FetchResult) SizeByte() uint64 {
	return f.meta.transferredSizeByte
}

func (f *FetchResult) ContentType() string {
	return f.meta.contentType
}

type ResponseMeta struct {
	statusCode          int
	transferredSizeByte uint64
	contentType         string
}

// NewFetchResultForTest creates a FetchResult for testing purposes.
// This allows test packages to construct FetchResult values without
// accessing unexported fields directly.
func NewFetchResultForTest(
	body []byte,
	statusCode int,
	contentType string,
) FetchResult {
	return FetchResult{
		body: body,
		meta: ResponseMeta{
			statusCode:          statusCode,
			transferredSizeByte: uint64(len(body)),
			contentType:         contentType,
		},
	}
}
