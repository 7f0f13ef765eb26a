// Package mijnhost contains a client for the mijn.host hosting API.
//
// The provider exposes HTTPS/JSON APIs authenticated through an API-Key
// header. Every response is wrapped into an envelope containing a status,
// a status description, and a data payload. The envelope status is the
// authoritative one: the provider has been observed returning failures
// inside a transport-level 200, so we always parse the envelope before
// trusting the payload. A status 200 envelope with a null data payload
// is a legitimate empty result, not an error.
//
// Unlike the HTTP status mapping performed by the httpapi package, we do
// not classify non-200 envelope statuses: the provider reuses HTTP-like
// codes inside the envelope without documenting them, so we surface the
// status and its description verbatim through [*ErrAPIStatus].
package mijnhost

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/httpapi"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/model"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/optional"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/version"
)

// DefaultBaseURL is the default base URL of the provider API.
const DefaultBaseURL = "https://mijn.host/api/v2"

// ErrEmptyAPIKey indicates that the session does not contain an API
// key. We return this error before any network activity.
var ErrEmptyAPIKey = errors.New("mijnhost: empty API key")

// ErrAPIStatus indicates that the response envelope carried a non-200
// status. The provider describes failures through the envelope rather
// than through the transport, so this error preserves the envelope
// status and its description verbatim.
type ErrAPIStatus struct {
	// Status is the envelope status.
	Status int

	// StatusDescription is the envelope status description.
	StatusDescription string
}

// Error implements error.
func (err *ErrAPIStatus) Error() string {
	return fmt.Sprintf("mijnhost: API status %d: %s", err.Status, err.StatusDescription)
}

// Session contains the provider API coordinates and credentials. A session
// is a plain value: it retains no state across calls apart from the fields
// you configure here, and it is safe to share across goroutines.
//
// The zero value of this struct is invalid. Please, fill all the
// fields marked as MANDATORY for correct initialization.
type Session struct {
	// APIKey is the MANDATORY provider API key.
	APIKey string

	// BaseURL is the MANDATORY base URL of the provider API.
	BaseURL string

	// HTTPClient is the MANDATORY HTTP client to use.
	HTTPClient model.HTTPClient

	// LogBody OPTIONALLY enables logging request and response bodies
	// along with the request headers. The headers contain the API key,
	// so this knob MUST remain off unless the user explicitly asked
	// for tracing.
	LogBody bool

	// Logger is the OPTIONAL logger to use.
	Logger model.Logger

	// UserAgent is the OPTIONAL user agent to use.
	UserAgent string
}

// NewSession creates a new [Session] with the given service coordinates and
// credentials. The logger defaults to [model.DiscardLogger] when nil.
func NewSession(baseURL, apiKey string, client model.HTTPClient, logger model.Logger) *Session {
	return &Session{
		APIKey:     apiKey,
		BaseURL:    baseURL,
		HTTPClient: client,
		LogBody:    false,
		Logger:     model.ValidLoggerOrDefault(logger),
		UserAgent:  "admintools/" + version.Version,
	}
}

// newEndpoint is a convenience function for constructing a new instance
// of [*httpapi.Endpoint] based on the content of the Session.
func (s *Session) newEndpoint() *httpapi.Endpoint {
	return &httpapi.Endpoint{
		BaseURL: s.BaseURL,
		ExtraHeaders: map[string]string{
			"API-Key": s.APIKey,
		},
		HTTPClient: s.HTTPClient,
		Logger:     model.ValidLoggerOrDefault(s.Logger),
		UserAgent:  s.UserAgent,
	}
}

// envelope is the response envelope wrapped around every API response.
// The status field is a pointer because an envelope without a status is
// malformed and we refuse to guess one.
type envelope struct {
	Status            *int            `json:"status"`
	StatusDescription string          `json:"status_description"`
	Data              json.RawMessage `json:"data"`
}

// jsonNull is the JSON representation of null.
var jsonNull = []byte(`null`)

// call invokes the API described by desc and returns its data payload.
//
// The credential check runs before any network activity. HTTP and transport
// failures surface as an [*httpapi.ErrRequestFailed] from the underlying
// layer; an envelope whose status is not 200 becomes an [*ErrAPIStatus]; and
// a response we cannot parse becomes an error wrapping
// [httpapi.ErrMalformedResponse]. A status 200 envelope with a null or
// missing data payload yields an empty optional and a nil error.
func call[Output any](ctx context.Context, sess *Session, desc *httpapi.Descriptor) (optional.Value[Output], error) {
	none := optional.None[Output]()
	if sess.APIKey == "" {
		return none, ErrEmptyAPIKey
	}
	var resp envelope
	if err := httpapi.CallWithJSONResponse(ctx, desc, sess.newEndpoint(), &resp); err != nil {
		return none, err
	}
	if resp.Status == nil {
		return none, fmt.Errorf("%w: envelope without a status field", httpapi.ErrMalformedResponse)
	}
	if *resp.Status != 200 {
		return none, &ErrAPIStatus{
			Status:            *resp.Status,
			StatusDescription: resp.StatusDescription,
		}
	}
	if len(resp.Data) <= 0 || bytes.Equal(resp.Data, jsonNull) {
		return none, nil
	}
	var output Output
	if err := json.Unmarshal(resp.Data, &output); err != nil {
		return none, fmt.Errorf("%w: %w", httpapi.ErrMalformedResponse, err)
	}
	return optional.Some(output), nil
}
