package model

//
// HTTP
//

import "net/http"

// HTTPClient is an http client. The stdlib *http.Client
// implements this interface.
type HTTPClient interface {
	// Do behaves like http.Client.Do.
	Do(req *http.Request) (*http.Response, error)

	// CloseIdleConnections closes idle connections.
	CloseIdleConnections()
}
