package httpapi

//
// HTTP API descriptor (e.g., GET /domains/{domain}/dns)
//

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/runtimex"
)

// Descriptor contains the parameters for calling a given HTTP
// API (e.g., GET /domains/{domain}/dns).
//
// The zero value of this struct is invalid. Please, fill all the
// fields marked as MANDATORY for correct initialization.
type Descriptor struct {
	// Accept contains the OPTIONAL accept header.
	Accept string

	// Authorization is the OPTIONAL authorization.
	Authorization string

	// ContentType is the OPTIONAL content-type header.
	ContentType string

	// LogBody OPTIONALLY enables logging the request and response
	// bodies as well as the request headers. Because headers and
	// bodies may contain credentials, this knob MUST remain off
	// unless the user explicitly asked for tracing.
	LogBody bool

	// MaxBodySize is the OPTIONAL maximum response body size. If
	// not set, we use the DefaultMaxBodySize constant.
	MaxBodySize int64

	// Method is the MANDATORY request method, which must belong
	// to the set of methods accepted by ValidMethod.
	Method string

	// RequestBody is the OPTIONAL request body.
	RequestBody []byte

	// Timeout is the OPTIONAL timeout for this call. If no timeout
	// is specified we will use the DefaultCallTimeout const.
	Timeout time.Duration

	// URLPath is the MANDATORY URL path.
	URLPath string

	// URLQuery is the OPTIONAL query.
	URLQuery url.Values
}

// WithBodyLogging returns a SHALLOW COPY of the Descriptor with LogBody set
// to true. You SHOULD only use this method when initializing the descriptor
// you want to use.
func (desc *Descriptor) WithBodyLogging(value bool) *Descriptor {
	out := &Descriptor{}
	*out = *desc
	out.LogBody = value
	return out
}

// DefaultMaxBodySize is the default value for the maximum
// body size you can fetch using the httpapi package.
const DefaultMaxBodySize = 1 << 22

// DefaultCallTimeout is the default timeout for an httpapi call.
const DefaultCallTimeout = 60 * time.Second

// ApplicationJSON is the content-type for JSON.
const ApplicationJSON = "application/json"

// validMethods is the set of methods a Descriptor may use. We only
// support the methods that the APIs we call actually use.
var validMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
	http.MethodPatch:  true,
}

// ValidMethod returns whether the given request method belongs to
// the set of methods a Descriptor may use.
func ValidMethod(method string) bool {
	return validMethods[method]
}

// NewGETJSONDescriptor is a convenience factory for creating a new
// descriptor that uses the GET method and expects a JSON response.
func NewGETJSONDescriptor(urlPath string) *Descriptor {
	return NewGETJSONWithQueryDescriptor(urlPath, url.Values{})
}

// NewGETJSONWithQueryDescriptor is like NewGETJSONDescriptor but it also
// allows you to provide query arguments. Leaving the query nil or empty
// is equivalent to calling NewGETJSONDescriptor directly.
func NewGETJSONWithQueryDescriptor(urlPath string, query url.Values) *Descriptor {
	return &Descriptor{
		Accept:        ApplicationJSON,
		Authorization: "",
		ContentType:   "",
		LogBody:       false,
		MaxBodySize:   DefaultMaxBodySize,
		Method:        http.MethodGet,
		RequestBody:   nil,
		Timeout:       DefaultCallTimeout,
		URLPath:       urlPath,
		URLQuery:      query,
	}
}

// NewJSONWithJSONResponseDescriptor creates a descriptor that sends a JSON
// document using the given method and expects a JSON document back from the
// API. This factory serves all the methods that carry a request body.
//
// This function ONLY fails if we cannot serialize the request to JSON or the
// method is invalid. So, if you know the request is JSON-serializable and the
// method is in the supported set, you can call the corresponding MustNew
// factory instead.
func NewJSONWithJSONResponseDescriptor(method, urlPath string, request any) (*Descriptor, error) {
	if !ValidMethod(method) {
		return nil, newErrInvalidMethod(method)
	}
	rawRequest, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}
	desc := &Descriptor{
		Accept:        ApplicationJSON,
		Authorization: "",
		ContentType:   ApplicationJSON,
		LogBody:       false,
		MaxBodySize:   DefaultMaxBodySize,
		Method:        method,
		RequestBody:   rawRequest,
		Timeout:       DefaultCallTimeout,
		URLPath:       urlPath,
		URLQuery:      nil,
	}
	return desc, nil
}

// NewPOSTJSONWithJSONResponseDescriptor creates a descriptor that POSTs a
// JSON document and expects to receive back a JSON document from the API.
func NewPOSTJSONWithJSONResponseDescriptor(urlPath string, request any) (*Descriptor, error) {
	return NewJSONWithJSONResponseDescriptor(http.MethodPost, urlPath, request)
}

// MustNewPOSTJSONWithJSONResponseDescriptor is like
// NewPOSTJSONWithJSONResponseDescriptor except that it panics in case
// it's not possible to JSON serialize the request.
func MustNewPOSTJSONWithJSONResponseDescriptor(urlPath string, request any) *Descriptor {
	desc, err := NewPOSTJSONWithJSONResponseDescriptor(urlPath, request)
	runtimex.PanicOnError(err, "NewPOSTJSONWithJSONResponseDescriptor failed")
	return desc
}

// NewPUTJSONWithJSONResponseDescriptor creates a descriptor that PUTs a
// JSON document and expects to receive back a JSON document from the API.
func NewPUTJSONWithJSONResponseDescriptor(urlPath string, request any) (*Descriptor, error) {
	return NewJSONWithJSONResponseDescriptor(http.MethodPut, urlPath, request)
}

// MustNewPUTJSONWithJSONResponseDescriptor is like
// NewPUTJSONWithJSONResponseDescriptor except that it panics in case
// it's not possible to JSON serialize the request.
func MustNewPUTJSONWithJSONResponseDescriptor(urlPath string, request any) *Descriptor {
	desc, err := NewPUTJSONWithJSONResponseDescriptor(urlPath, request)
	runtimex.PanicOnError(err, "NewPUTJSONWithJSONResponseDescriptor failed")
	return desc
}

// NewDELETEJSONDescriptor creates a descriptor that DELETEs a resource
// and expects a JSON response describing the outcome.
func NewDELETEJSONDescriptor(urlPath string) *Descriptor {
	return &Descriptor{
		Accept:        ApplicationJSON,
		Authorization: "",
		ContentType:   "",
		LogBody:       false,
		MaxBodySize:   DefaultMaxBodySize,
		Method:        http.MethodDelete,
		RequestBody:   nil,
		Timeout:       DefaultCallTimeout,
		URLPath:       urlPath,
		URLQuery:      nil,
	}
}
