package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rohmanhakim/rudolf/internal/metadata"
	"github.com/rohmanhakim/rudolf/internal/puzzle"
	"github.com/rohmanhakim/rudolf/pkg/failure"
	"github.com/rohmanhakim/rudolf/pkg/limiter"
	"github.com/rohmanhakim/rudolf/pkg/timeutil"
	"github.com/rohmanhakim/rudolf/pkg/urlutil"
)

/*
Responsibilities

- Expand the input URL for a puzzle identifier
- Authenticate with the session cookie file
- Perform exactly one HTTP GET per call
- Classify responses

Fetch Semantics

- Only 200 responses with a non-empty body are successful
- 404 means the input does not exist (yet) and is never cached
- The politeness delay is waited before the request, never after
- All requests are logged with metadata

The fetcher never parses content; it only returns bytes and metadata.
*/

type InputFetcher struct {
	metadataSink metadata.MetadataSink
	rateLimiter  limiter.RateLimiter
	fetchParam   FetchParam
	transport    http.RoundTripper
	now          func() time.Time
}

func NewInputFetcher(
	metadataSink metadata.MetadataSink,
	rateLimiter limiter.RateLimiter,
	fetchParam FetchParam,
) InputFetcher {
	return InputFetcher{
		metadataSink: metadataSink,
		rateLimiter:  rateLimiter,
		fetchParam:   fetchParam,
		now:          time.Now,
	}
}

// WithTransport replaces the HTTP transport, nil restores the default one.
func (f InputFetcher) WithTransport(transport http.RoundTripper) InputFetcher {
	f.transport = transport
	return f
}

func (f *InputFetcher) Fetch(
	ctx context.Context,
	id puzzle.Identifier,
) (FetchResult, failure.ClassifiedError) {
	callerMethod := "InputFetcher.Fetch"

	fetchUrl, urlErr := urlutil.ExpandTemplate(f.fetchParam.urlTemplate, id.Year(), id.Day())
	if urlErr != nil {
		fetchErr := &FetchError{
			Message: urlErr.Error(),
			Cause:   ErrCauseInvalidURL,
		}
		f.recordFetchError(callerMethod, f.fetchParam.urlTemplate, fetchErr)
		return FetchResult{}, fetchErr
	}

	jar, jarErr := loadCookieJar(f.fetchParam.cookieFile, fetchUrl, f.now())
	if jarErr != nil {
		f.recordFetchError(callerMethod, fetchUrl.String(), jarErr)
		return FetchResult{}, jarErr
	}

	host := fetchUrl.Hostname()
	if waitErr := f.waitPoliteness(ctx, host); waitErr != nil {
		f.recordFetchError(callerMethod, fetchUrl.String(), waitErr)
		return FetchResult{}, waitErr
	}

	startTime := time.Now()
	result, err := f.performFetch(ctx, fetchUrl, jar)
	duration := time.Since(startTime)

	f.updatePoliteness(host, err)

	statusCode := result.Code()
	contentType := result.ContentType()
	size := len(result.body)
	if err != nil {
		statusCode = err.StatusCode
	}
	f.metadataSink.RecordFetch(
		fetchUrl.String(),
		statusCode,
		duration,
		contentType,
		size,
	)

	if err != nil {
		f.recordFetchError(callerMethod, fetchUrl.String(), err)
		return FetchResult{}, err
	}

	return result, nil
}

func (f *InputFetcher) waitPoliteness(ctx context.Context, host string) *FetchError {
	if f.rateLimiter == nil {
		return nil
	}
	if err := timeutil.Sleep(ctx, f.rateLimiter.ResolveDelay(host)); err != nil {
		return classifyTransportError(err)
	}
	return nil
}

func (f *InputFetcher) updatePoliteness(host string, err *FetchError) {
	if f.rateLimiter == nil {
		return
	}
	f.rateLimiter.MarkLastFetchAsNow(host)
	switch {
	case err == nil:
		f.rateLimiter.ResetBackoff(host)
	case err.Cause == ErrCauseRequestTooMany, err.Cause == ErrCauseRequest5xx:
		f.rateLimiter.Backoff(host)
	}
}

func (f *InputFetcher) recordFetchError(callerMethod string, fetchUrl string, err *FetchError) {
	attrs := []metadata.Attribute{
		metadata.NewAttr(metadata.AttrURL, fetchUrl),
	}
	if err.StatusCode != 0 {
		attrs = append(attrs, metadata.NewAttr(metadata.AttrHTTPStatus, strconv.Itoa(err.StatusCode)))
	}
	f.metadataSink.RecordError(
		time.Now(),
		"fetcher",
		callerMethod,
		mapFetchErrorToMetadataCause(err),
		err.Error(),
		attrs,
	)
}

func (f *InputFetcher) performFetch(ctx context.Context, fetchUrl url.URL, jar http.CookieJar) (FetchResult, *FetchError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchUrl.String(), nil)
	if err != nil {
		return FetchResult{}, &FetchError{
			Message:   fmt.Sprintf("failed to create request: %v", err),
			Retryable: false,
			Cause:     ErrCauseInvalidURL,
		}
	}

	for key, value := range requestHeaders(f.fetchParam.userAgent) {
		req.Header.Set(key, value)
	}

	httpClient := &http.Client{
		Jar:       jar,
		Timeout:   f.fetchParam.timeout,
		Transport: f.transport,
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return FetchResult{}, classifyTransportError(err)
	}
	defer resp.Body.Close()

	var body bytes.Buffer
	if _, err := body.ReadFrom(resp.Body); err != nil {
		fetchErr := classifyTransportError(err)
		if fetchErr.Cause == ErrCauseNetworkFailure {
			fetchErr.Cause = ErrCauseReadResponseBodyError
			fetchErr.Message = fmt.Sprintf("failed to read response body: %v", err)
		}
		fetchErr.StatusCode = resp.StatusCode
		return FetchResult{}, fetchErr
	}

	if fetchErr := classifyStatus(resp.StatusCode, body.Bytes()); fetchErr != nil {
		return FetchResult{}, fetchErr
	}

	if body.Len() == 0 {
		return FetchResult{}, &FetchError{
			Message:    "remote answered 200 with an empty body",
			Retryable:  false,
			Cause:      ErrCauseEmptyBody,
			StatusCode: resp.StatusCode,
		}
	}

	return FetchResult{
		body: body.Bytes(),
		meta: ResponseMeta{
			statusCode:          resp.StatusCode,
			transferredSizeByte: uint64(body.Len()),
			contentType:         resp.Header.Get("Content-Type"),
		},
	}, nil
}

func classifyStatus(statusCode int, body []byte) *FetchError {
	switch {
	case statusCode == http.StatusOK:
		return nil

	case statusCode == http.StatusNotFound:
		return &FetchError{
			Message:    fmt.Sprintf("remote has no input (404): %s", diagnosticBody(body)),
			Retryable:  false,
			Cause:      ErrCauseNotFound,
			StatusCode: statusCode,
		}

	case statusCode == http.StatusBadRequest,
		statusCode == http.StatusUnauthorized,
		statusCode == http.StatusForbidden:
		return &FetchError{
			Message:    fmt.Sprintf("session cookie rejected (%d): %s", statusCode, diagnosticBody(body)),
			Retryable:  false,
			Cause:      ErrCauseUnauthorized,
			StatusCode: statusCode,
		}

	case statusCode == http.StatusTooManyRequests:
		return &FetchError{
			Message:    "rate limited (429)",
			Retryable:  true,
			Cause:      ErrCauseRequestTooMany,
			StatusCode: statusCode,
		}

	case statusCode >= 500:
		return &FetchError{
			Message:    fmt.Sprintf("server error: %d", statusCode),
			Retryable:  true,
			Cause:      ErrCauseRequest5xx,
			StatusCode: statusCode,
		}

	default:
		return &FetchError{
			Message:    fmt.Sprintf("unexpected status: %d", statusCode),
			Retryable:  false,
			Cause:      ErrCauseUnexpectedStatus,
			StatusCode: statusCode,
		}
	}
}

func classifyTransportError(err error) *FetchError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &FetchError{
			Message:   fmt.Sprintf("request timed out: %v", err),
			Retryable: true,
			Cause:     ErrCauseTimeout,
		}
	}
	return &FetchError{
		Message:   fmt.Sprintf("request failed: %v", err),
		Retryable: true,
		Cause:     ErrCauseNetworkFailure,
	}
}

func diagnosticBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return "<empty body>"
	}
	return text
}

func requestHeaders(userAgent string) map[string]string {
	if strings.TrimSpace(userAgent) == "" {
		userAgent = DefaultUserAgent
	}
	return map[string]string{
		"User-Agent": userAgent,
		"Accept":     "text/plain",
	}
}
