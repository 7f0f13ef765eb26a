package mocks

import (
	"errors"
	"net/http"
	"testing"
)

func TestHTTPClient(t *testing.T) {
	t.Run("Do", func(t *testing.T) {
		expected := errors.New("mocked error")
		clnt := &HTTPClient{
			MockDo: func(req *http.Request) (*http.Response, error) {
				return nil, expected
			},
		}
		resp, err := clnt.Do(&http.Request{})
		if !errors.Is(err, expected) {
			t.Fatal("unexpected err", err)
		}
		if resp != nil {
			t.Fatal("expected nil response")
		}
	})

	t.Run("CloseIdleConnections", func(t *testing.T) {
		var called bool
		clnt := &HTTPClient{
			MockCloseIdleConnections: func() {
				called = true
			},
		}
		clnt.CloseIdleConnections()
		if !called {
			t.Fatal("not called")
		}
	})
}
