package httpapi

//
// Calling HTTP APIs.
//

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/iox"
)

// joinURLPath appends resourcePath to urlPath.
func joinURLPath(urlPath, resourcePath string) string {
	if resourcePath == "" {
		if urlPath == "" {
			return "/"
		}
		return urlPath
	}
	if !strings.HasSuffix(urlPath, "/") {
		urlPath += "/"
	}
	resourcePath = strings.TrimPrefix(resourcePath, "/")
	return urlPath + resourcePath
}

// newRequest creates a new http.Request from the given ctx, endpoint, and desc.
func newRequest(ctx context.Context, endpoint *Endpoint, desc *Descriptor) (*http.Request, error) {
	URL, err := url.Parse(endpoint.BaseURL)
	if err != nil {
		return nil, err
	}
	// BaseURL and resource URL are joined if they have a path
	URL.Path = joinURLPath(URL.Path, desc.URLPath)
	if len(desc.URLQuery) > 0 {
		URL.RawQuery = desc.URLQuery.Encode()
	} else {
		URL.RawQuery = "" // as documented we only honour desc.URLQuery
	}
	var reqBody io.Reader
	if len(desc.RequestBody) > 0 {
		reqBody = bytes.NewReader(desc.RequestBody)
		endpoint.Logger.Debugf("httpapi: request body length: %d", len(desc.RequestBody))
		if desc.LogBody {
			endpoint.Logger.Debugf("httpapi: request body: %s", string(desc.RequestBody))
		}
	}
	request, err := http.NewRequestWithContext(ctx, desc.Method, URL.String(), reqBody)
	if err != nil {
		return nil, err
	}
	if desc.Authorization != "" {
		request.Header.Set("Authorization", desc.Authorization)
	}
	if desc.ContentType != "" {
		request.Header.Set("Content-Type", desc.ContentType)
	}
	if desc.Accept != "" {
		request.Header.Set("Accept", desc.Accept)
	}
	if endpoint.UserAgent != "" {
		request.Header.Set("User-Agent", endpoint.UserAgent)
	}
	for key, value := range endpoint.ExtraHeaders {
		request.Header.Set(key, value)
	}
	if desc.LogBody {
		// Note: the headers include the credentials, hence we
		// only log them when tracing was asked explicitly.
		endpoint.Logger.Debugf("httpapi: request headers: %v", request.Header)
	}
	return request, nil
}

// docall performs the round trip described by the given request and
// returns the response and its body or an error. The returned error
// is an *ErrRequestFailed for transport failures, bodies we could
// not read, and status codes indicating failure.
func docall(endpoint *Endpoint, desc *Descriptor, request *http.Request) (*http.Response, []byte, error) {
	response, err := endpoint.HTTPClient.Do(request)
	if err != nil {
		return nil, nil, newErrTransport(err)
	}
	defer response.Body.Close()
	maxBodySize := desc.MaxBodySize
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize // as documented
	}
	// Implementation note: we read one byte more than the maximum
	// body size so we can tell apart a body that is exactly at the
	// limit from a body that we truncated.
	r := io.LimitReader(response.Body, maxBodySize+1)
	data, err := iox.ReadAllContext(request.Context(), r)
	if err != nil {
		return response, nil, newErrTransport(err)
	}
	if int64(len(data)) > maxBodySize {
		return response, nil, ErrTruncatedBody
	}
	endpoint.Logger.Debugf("httpapi: response body length: %d bytes", len(data))
	if desc.LogBody {
		endpoint.Logger.Debugf("httpapi: response body: %s", string(data))
	}
	if response.StatusCode >= 400 {
		return response, nil, newErrHTTPStatus(response)
	}
	return response, data, nil
}

// call is like Call but also returns the response.
func call(ctx context.Context, desc *Descriptor, endpoint *Endpoint) (*http.Response, []byte, error) {
	// Refuse unsupported methods before doing any network activity
	// so a mistyped method never reaches the server.
	if !ValidMethod(desc.Method) {
		return nil, nil, newErrInvalidMethod(desc.Method)
	}
	timeout := desc.Timeout
	if timeout <= 0 {
		timeout = DefaultCallTimeout // as documented
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	request, err := newRequest(ctx, endpoint, desc)
	if err != nil {
		return nil, nil, err
	}
	endpoint.Logger.Debugf("httpapi: %s %s", request.Method, request.URL.String())
	return docall(endpoint, desc, request)
}

// Call invokes the API described by desc on the given HTTP endpoint and
// returns the response body (as a slice of bytes) or an error. Each call
// performs at most one round trip: there are no retries of any kind.
//
// Note: this function returns an *ErrRequestFailed when the HTTP status
// code is greater or equal than 400. You can use errors.As to obtain a
// copy of the error and branch on its Category or StatusCode.
func Call(ctx context.Context, desc *Descriptor, endpoint *Endpoint) ([]byte, error) {
	_, rawResponseBody, err := call(ctx, desc, endpoint)
	return rawResponseBody, err
}

// goodContentTypeForJSON tracks known-good content-types for JSON. If the
// content-type is not in this map, CallWithJSONResponse emits a warning.
var goodContentTypeForJSON = map[string]bool{
	ApplicationJSON: true,
}

// contentTypeIsGoodForJSON returns whether the response content type
// indicates a JSON body, ignoring any media type parameters.
func contentTypeIsGoodForJSON(header string) bool {
	ctype, _, _ := strings.Cut(header, ";")
	return goodContentTypeForJSON[strings.TrimSpace(ctype)]
}

// CallWithJSONResponse is like Call but also assumes that the response is
// a JSON body and attempts to parse it into the response argument.
//
// Note: this function returns an *ErrRequestFailed when the HTTP status
// code is greater or equal than 400 and an error wrapping
// ErrMalformedResponse when the body does not parse.
func CallWithJSONResponse(ctx context.Context, desc *Descriptor, endpoint *Endpoint, response any) error {
	httpResp, rawRespBody, err := call(ctx, desc, endpoint)
	if err != nil {
		return err
	}
	if ctype := httpResp.Header.Get("Content-Type"); !contentTypeIsGoodForJSON(ctype) {
		endpoint.Logger.Warnf("httpapi: unexpected content-type: %s", ctype)
		// fallthrough
	}
	if err := json.Unmarshal(rawRespBody, response); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return nil
}
