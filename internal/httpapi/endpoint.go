package httpapi

//
// HTTP API endpoint (e.g., https://mijn.host/api/v2/)
//

import (
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/model"
)

// Endpoint models an HTTP endpoint on which you can call
// several HTTP APIs (e.g., https://mijn.host/api/v2/) using a
// given HTTP client and identity.
//
// The zero value of this struct is invalid. Please, fill all the
// fields marked as MANDATORY for correct initialization.
type Endpoint struct {
	// BaseURL is the MANDATORY endpoint base URL. We append
	// the descriptor URLPath to this URL.
	BaseURL string

	// ExtraHeaders OPTIONALLY contains fixed headers that we
	// attach to every request sent to this endpoint. This is
	// where API specific credential headers belong (e.g., the
	// provider API key). We never log these headers unless the
	// descriptor explicitly enables body logging.
	ExtraHeaders map[string]string

	// HTTPClient is the MANDATORY HTTP client to use.
	HTTPClient model.HTTPClient

	// Logger is the MANDATORY logger to use.
	Logger model.Logger

	// UserAgent is the OPTIONAL user-agent to use.
	UserAgent string
}

// NewEndpoint creates a new Endpoint using the given base URL and
// HTTP client. The logger defaults to model.DiscardLogger when nil.
func NewEndpoint(baseURL string, client model.HTTPClient, logger model.Logger) *Endpoint {
	return &Endpoint{
		BaseURL:      baseURL,
		ExtraHeaders: map[string]string{},
		HTTPClient:   client,
		Logger:       model.ValidLoggerOrDefault(logger),
		UserAgent:    "",
	}
}

// WithExtraHeader returns a SHALLOW COPY of the Endpoint with the given
// header included among the extra headers. You SHOULD only use this
// method when initializing the endpoint you want to use.
func (e *Endpoint) WithExtraHeader(key, value string) *Endpoint {
	out := &Endpoint{}
	*out = *e
	out.ExtraHeaders = map[string]string{}
	for k, v := range e.ExtraHeaders {
		out.ExtraHeaders[k] = v
	}
	out.ExtraHeaders[key] = value
	return out
}

// WithUserAgent returns a SHALLOW COPY of the Endpoint using the
// given user agent. You SHOULD only use this method when initializing
// the endpoint you want to use.
func (e *Endpoint) WithUserAgent(userAgent string) *Endpoint {
	out := &Endpoint{}
	*out = *e
	out.UserAgent = userAgent
	return out
}
