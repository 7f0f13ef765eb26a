package wemapi

//
// Invoking WEM APIs.
//

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/httpapi"
)

// newDescriptor creates the [*httpapi.Descriptor] for a single call. When
// body is not nil we serialize it to JSON here, once, so that the descriptor
// carries the exact bytes that will be sent over the wire.
func (s *Session) newDescriptor(method, path string,
	query url.Values, body any) (*httpapi.Descriptor, error) {
	desc := &httpapi.Descriptor{
		Accept:        httpapi.ApplicationJSON,
		Authorization: s.newAuthorization(),
		ContentType:   "",
		LogBody:       s.LogBody,
		MaxBodySize:   0,
		Method:        method,
		RequestBody:   nil,
		Timeout:       0,
		URLPath:       path,
		URLQuery:      query,
	}
	if body != nil {
		rawBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		desc.ContentType = httpapi.ApplicationJSON
		desc.RequestBody = rawBody
	}
	return desc, nil
}

// Invoke calls the WEM API identified by method and path and returns the
// response payload. The path is relative to the session base URL and the
// query and body arguments are OPTIONAL.
//
// Each invocation performs at most a single round trip. On success we return
// the response body parsed as JSON; a 2xx response without a body yields a
// nil payload and a nil error. Failures surface as error values: the
// credential checks and the method check fail before any network activity,
// HTTP and transport failures become an [*httpapi.ErrRequestFailed], and a
// 2xx body that does not parse becomes an error wrapping
// [httpapi.ErrMalformedResponse].
func (s *Session) Invoke(ctx context.Context, method, path string,
	query url.Values, body any) (json.RawMessage, error) {
	if err := s.checkCredentials(); err != nil {
		return nil, err
	}
	desc, err := s.newDescriptor(method, path, query, body)
	if err != nil {
		return nil, err
	}
	rawRespBody, err := httpapi.Call(ctx, desc, s.newEndpoint())
	if err != nil {
		return nil, err
	}
	if len(rawRespBody) <= 0 {
		// e.g., a 204 No Content response
		return nil, nil
	}
	var payload json.RawMessage
	if err := json.Unmarshal(rawRespBody, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", httpapi.ErrMalformedResponse, err)
	}
	return payload, nil
}

// InvokeJSON is like [Session.Invoke] except that it parses the response
// payload into a value of type Output. An empty response body is an error
// here, because the caller explicitly asked for a typed response.
func InvokeJSON[Output any](ctx context.Context, sess *Session, method,
	path string, query url.Values, body any) (Output, error) {
	rawResp, err := sess.Invoke(ctx, method, path, query, body)
	if err != nil {
		return zeroValue[Output](), err
	}
	var output Output
	if err := json.Unmarshal(rawResp, &output); err != nil {
		return zeroValue[Output](), fmt.Errorf("%w: %w", httpapi.ErrMalformedResponse, err)
	}
	return output, nil
}

// zeroValue returns the zero value of the given type.
func zeroValue[T any]() T {
	var value T
	return value
}
