package testingx

import (
	"net/http"
	"net/http/httptest"

	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/runtimex"
)

// MustNewHTTPServer creates a new [httptest.Server] using the given
// handler and panics when the server cannot listen.
func MustNewHTTPServer(handler http.Handler) *httptest.Server {
	server := httptest.NewServer(handler)
	runtimex.Assert(server != nil, "httptest.NewServer returned nil")
	return server
}
