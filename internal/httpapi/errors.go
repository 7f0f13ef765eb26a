package httpapi

//
// Classification of API call failures.
//

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// ErrInvalidMethod indicates that the descriptor contains a request
// method that is not in the supported set. We return this error before
// attempting any network activity.
var ErrInvalidMethod = errors.New("httpapi: invalid request method")

// newErrInvalidMethod creates an error wrapping ErrInvalidMethod
// and naming the offending method.
func newErrInvalidMethod(method string) error {
	return fmt.Errorf("%w: %q", ErrInvalidMethod, method)
}

// ErrTruncatedBody indicates that the response body exceeded the
// maximum body size configured in the descriptor.
var ErrTruncatedBody = errors.New("httpapi: truncated response body")

// ErrMalformedResponse indicates that the server returned a 2xx
// response whose body we could not parse as documented. Errors of
// this kind wrap the parse error, so you can still inspect the
// original failure using errors.As.
var ErrMalformedResponse = errors.New("httpapi: malformed response")

// Category classifies a failed API call by the HTTP status code the
// server returned. A call that failed without producing any status
// code belongs to CategoryUnknown.
type Category string

const (
	// CategoryBadRequest is the category of 400 responses.
	CategoryBadRequest = Category("bad_request")

	// CategoryUnauthorized is the category of 401 responses.
	CategoryUnauthorized = Category("unauthorized")

	// CategoryForbidden is the category of 403 responses.
	CategoryForbidden = Category("forbidden")

	// CategoryNotFound is the category of 404 responses.
	CategoryNotFound = Category("not_found")

	// CategoryMethodNotAllowed is the category of 405 responses.
	CategoryMethodNotAllowed = Category("method_not_allowed")

	// CategoryRateLimited is the category of 429 responses.
	CategoryRateLimited = Category("rate_limited")

	// CategoryServerError is the category of 500 responses.
	CategoryServerError = Category("server_error")

	// CategoryUnknown is the category of any other failure, including
	// status codes we do not classify and transport errors where we
	// did not see any status code at all.
	CategoryUnknown = Category("unknown")
)

// NewCategory maps an HTTP status code onto the corresponding
// Category. Codes outside the classified set map onto CategoryUnknown.
func NewCategory(statusCode int) Category {
	switch statusCode {
	case 400:
		return CategoryBadRequest
	case 401:
		return CategoryUnauthorized
	case 403:
		return CategoryForbidden
	case 404:
		return CategoryNotFound
	case 405:
		return CategoryMethodNotAllowed
	case 429:
		return CategoryRateLimited
	case 500:
		return CategoryServerError
	default:
		return CategoryUnknown
	}
}

// categoryHints contains a fixed remediation hint per category. We
// attach these hints to error messages so that whoever is running a
// batch of calls can immediately see what to check.
var categoryHints = map[Category]string{
	CategoryBadRequest:       "the server could not process the request; check the request parameters",
	CategoryUnauthorized:     "ensure the configured API key or token is correct",
	CategoryForbidden:        "the credentials do not grant access to this resource",
	CategoryNotFound:         "check that the request path is correct",
	CategoryMethodNotAllowed: "the resource does not support this request method",
	CategoryRateLimited:      "too many requests; wait before trying again",
	CategoryServerError:      "the server failed processing the request; retry later",
}

// Hint returns the fixed remediation hint for this category. The
// hint is empty for CategoryUnknown.
func (c Category) Hint() string {
	return categoryHints[c]
}

// ErrRequestFailed indicates that an API call failed. There are two
// variants of this error. When the server returned a status code
// indicating failure, StatusCode is set and Err is nil. When instead
// the HTTP round trip itself failed, StatusCode is zero and Err
// contains the underlying transport error.
type ErrRequestFailed struct {
	// Category is the failure category.
	Category Category

	// StatusCode is the status code that failed, or zero when
	// we did not receive any response.
	StatusCode int

	// StatusText is the status text sent by the server, if any.
	StatusText string

	// Err is the underlying transport error, if any.
	Err error
}

// Error implements error.
func (err *ErrRequestFailed) Error() string {
	if err.StatusCode <= 0 {
		return fmt.Sprintf("httpapi: request failed: %s", err.Err.Error())
	}
	desc := strconv.Itoa(err.StatusCode)
	if err.StatusText != "" {
		desc += " " + err.StatusText
	}
	if hint := err.Category.Hint(); hint != "" {
		desc += ": " + hint
	}
	return fmt.Sprintf("httpapi: request failed: %s", desc)
}

// Unwrap returns the underlying transport error, if any.
func (err *ErrRequestFailed) Unwrap() error {
	return err.Err
}

// newErrHTTPStatus creates an ErrRequestFailed from a response
// carrying a status code indicating failure.
func newErrHTTPStatus(resp *http.Response) *ErrRequestFailed {
	return &ErrRequestFailed{
		Category:   NewCategory(resp.StatusCode),
		StatusCode: resp.StatusCode,
		StatusText: statusText(resp),
		Err:        nil,
	}
}

// newErrTransport creates an ErrRequestFailed wrapping a transport
// error occurred before we could see any status code.
func newErrTransport(err error) *ErrRequestFailed {
	return &ErrRequestFailed{
		Category:   CategoryUnknown,
		StatusCode: 0,
		StatusText: "",
		Err:        err,
	}
}

// statusText extracts the server-provided status text from the
// response, falling back to the stdlib text for the code.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
