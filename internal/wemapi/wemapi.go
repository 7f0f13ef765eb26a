// Package wemapi contains a client for the Citrix WEM REST API.
//
// The WEM service exposes HTTPS/JSON APIs rooted at a regional base URL. Every
// request carries the Citrix Cloud credential headers: an Authorization header
// using the CWSAuth scheme, the customer ID, and a per-session transaction ID
// that the support teams use to correlate calls.
//
// This package deliberately implements only the generic invoker. Establishing
// the bearer token (the "connect" flow) and wrapping individual WEM resources
// are out of scope: callers obtain a token elsewhere and use [Session.Invoke]
// or [InvokeJSON] with the method and path they need.
package wemapi

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/httpapi"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/model"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/version"
)

// DefaultBaseURL is the default base URL of the WEM API service.
const DefaultBaseURL = "https://api.wem.cloud.com"

var (
	// ErrEmptyBearerToken indicates that the session does not contain
	// a bearer token. We return this error before any network activity.
	ErrEmptyBearerToken = errors.New("wemapi: empty bearer token")

	// ErrEmptyCustomerID indicates that the session does not contain
	// a customer ID. We return this error before any network activity.
	ErrEmptyCustomerID = errors.New("wemapi: empty customer ID")
)

// Session contains the WEM service coordinates and credentials. A session
// is a plain value: it retains no state across calls apart from the fields
// you configure here, and it is safe to share across goroutines.
//
// The zero value of this struct is invalid. Please, fill all the
// fields marked as MANDATORY for correct initialization.
type Session struct {
	// BaseURL is the MANDATORY base URL of the WEM API service.
	BaseURL string

	// BearerToken is the MANDATORY Citrix Cloud bearer token.
	BearerToken string

	// CustomerID is the MANDATORY Citrix Cloud customer ID.
	CustomerID string

	// HTTPClient is the MANDATORY HTTP client to use.
	HTTPClient model.HTTPClient

	// LogBody OPTIONALLY enables logging request and response bodies
	// along with the request headers. The headers contain the bearer
	// token, so this knob MUST remain off unless the user explicitly
	// asked for tracing.
	LogBody bool

	// Logger is the OPTIONAL logger to use.
	Logger model.Logger

	// TransactionID is the OPTIONAL Citrix-TransactionId header value
	// attached to requests of this session. NewSession fills this field
	// with a random UUID.
	TransactionID string

	// UserAgent is the OPTIONAL user agent to use.
	UserAgent string
}

// NewSession creates a new [Session] with the given service coordinates and
// credentials. The logger defaults to [model.DiscardLogger] when nil.
func NewSession(baseURL, customerID, bearerToken string,
	client model.HTTPClient, logger model.Logger) *Session {
	return &Session{
		BaseURL:       baseURL,
		BearerToken:   bearerToken,
		CustomerID:    customerID,
		HTTPClient:    client,
		LogBody:       false,
		Logger:        model.ValidLoggerOrDefault(logger),
		TransactionID: uuid.NewString(),
		UserAgent:     "admintools/" + version.Version,
	}
}

// checkCredentials ensures the session contains the credentials that the
// WEM service requires on every call.
func (s *Session) checkCredentials() error {
	if s.BearerToken == "" {
		return ErrEmptyBearerToken
	}
	if s.CustomerID == "" {
		return ErrEmptyCustomerID
	}
	return nil
}

// newAuthorization formats the Authorization header value. Citrix Cloud
// uses its own CWSAuth scheme rather than plain Bearer.
func (s *Session) newAuthorization() string {
	return fmt.Sprintf("CWSAuth bearer=%s", s.BearerToken)
}

// newEndpoint is a convenience function for constructing a new instance
// of [*httpapi.Endpoint] based on the content of the Session.
func (s *Session) newEndpoint() *httpapi.Endpoint {
	return &httpapi.Endpoint{
		BaseURL: s.BaseURL,
		ExtraHeaders: map[string]string{
			"Citrix-CustomerId":    s.CustomerID,
			"Citrix-TransactionId": s.TransactionID,
		},
		HTTPClient: s.HTTPClient,
		Logger:     model.ValidLoggerOrDefault(s.Logger),
		UserAgent:  s.UserAgent,
	}
}
