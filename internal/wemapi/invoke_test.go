package wemapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/httpapi"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/model/mocks"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/testingx"
)

// newSessionForTesting constructs a session pointing at the given server.
func newSessionForTesting(serverURL string) *Session {
	return NewSession(serverURL, "customer", "token", http.DefaultClient, nil)
}

func TestSessionInvoke(t *testing.T) {
	t.Run("we do not touch the network with an empty bearer token", func(t *testing.T) {
		calls := &atomic.Int64{}
		sess := NewSession("https://api.wem.cloud.com", "customer", "", &mocks.HTTPClient{
			MockDo: func(req *http.Request) (*http.Response, error) {
				calls.Add(1)
				return nil, errors.New("mocked error")
			},
		}, nil)
		payload, err := sess.Invoke(context.Background(), http.MethodGet, "/services/wem/sites", nil, nil)
		if !errors.Is(err, ErrEmptyBearerToken) {
			t.Fatal("unexpected error", err)
		}
		if payload != nil {
			t.Fatal("expected nil payload")
		}
		if calls.Load() != 0 {
			t.Fatal("expected no round trips, got", calls.Load())
		}
	})

	t.Run("we do not touch the network with an empty customer ID", func(t *testing.T) {
		calls := &atomic.Int64{}
		sess := NewSession("https://api.wem.cloud.com", "", "token", &mocks.HTTPClient{
			MockDo: func(req *http.Request) (*http.Response, error) {
				calls.Add(1)
				return nil, errors.New("mocked error")
			},
		}, nil)
		_, err := sess.Invoke(context.Background(), http.MethodGet, "/services/wem/sites", nil, nil)
		if !errors.Is(err, ErrEmptyCustomerID) {
			t.Fatal("unexpected error", err)
		}
		if calls.Load() != 0 {
			t.Fatal("expected no round trips, got", calls.Load())
		}
	})

	t.Run("we do not touch the network with an unsupported method", func(t *testing.T) {
		calls := &atomic.Int64{}
		server := testingx.MustNewHTTPServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.Write([]byte(`{}`))
		}))
		defer server.Close()
		sess := newSessionForTesting(server.URL)
		_, err := sess.Invoke(context.Background(), "TRACE", "/services/wem/sites", nil, nil)
		if !errors.Is(err, httpapi.ErrInvalidMethod) {
			t.Fatal("unexpected error", err)
		}
		if calls.Load() != 0 {
			t.Fatal("expected no round trips, got", calls.Load())
		}
	})

	t.Run("we do not touch the network with an unserializable body", func(t *testing.T) {
		calls := &atomic.Int64{}
		sess := NewSession("https://api.wem.cloud.com", "customer", "token", &mocks.HTTPClient{
			MockDo: func(req *http.Request) (*http.Response, error) {
				calls.Add(1)
				return nil, errors.New("mocked error")
			},
		}, nil)
		_, err := sess.Invoke(context.Background(), http.MethodPost, "/services/wem/sites", nil, make(chan int))
		if err == nil {
			t.Fatal("expected an error")
		}
		if calls.Load() != 0 {
			t.Fatal("expected no round trips, got", calls.Load())
		}
	})

	t.Run("each supported method performs exactly one round trip", func(t *testing.T) {
		calls := &atomic.Int64{}
		server := testingx.MustNewHTTPServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			data, err := json.Marshal(map[string]string{"method": r.Method})
			if err != nil {
				w.WriteHeader(500)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write(data)
		}))
		defer server.Close()
		sess := newSessionForTesting(server.URL)
		methods := []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodPatch,
		}
		for _, method := range methods {
			t.Run(method, func(t *testing.T) {
				before := calls.Load()
				payload, err := sess.Invoke(context.Background(), method, "/services/wem/echo", nil, nil)
				if err != nil {
					t.Fatal(err)
				}
				var got map[string]string
				if err := json.Unmarshal(payload, &got); err != nil {
					t.Fatal(err)
				}
				if got["method"] != method {
					t.Fatal("unexpected method echoed back", got["method"])
				}
				if delta := calls.Load() - before; delta != 1 {
					t.Fatal("expected exactly one round trip, got", delta)
				}
			})
		}
	})

	t.Run("we send the fixed WEM header set", func(t *testing.T) {
		var (
			gotHeader http.Header
			gotQuery  string
			gotBody   []byte
		)
		server := testingx.MustNewHTTPServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotHeader = r.Header.Clone()
			gotQuery = r.URL.RawQuery
			gotBody, _ = io.ReadAll(r.Body)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{}`))
		}))
		defer server.Close()
		sess := newSessionForTesting(server.URL)
		request := map[string]string{"name": "antani"}
		query := url.Values{"includeHidden": {"true"}}
		if _, err := sess.Invoke(context.Background(), http.MethodPost, "/services/wem/sites", query, request); err != nil {
			t.Fatal(err)
		}
		expectHeader := map[string]string{
			"Authorization":        "CWSAuth bearer=token",
			"Citrix-CustomerId":    "customer",
			"Citrix-TransactionId": sess.TransactionID,
			"Content-Type":         "application/json",
			"Accept":               "application/json",
			"User-Agent":           sess.UserAgent,
		}
		for key, value := range expectHeader {
			if got := gotHeader.Get(key); got != value {
				t.Fatalf("unexpected %s header: %s", key, got)
			}
		}
		if gotQuery != "includeHidden=true" {
			t.Fatal("unexpected query", gotQuery)
		}
		if diff := cmp.Diff([]byte(`{"name":"antani"}`), gotBody); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("an HTTP failure becomes a classified error", func(t *testing.T) {
		server := testingx.MustNewHTTPServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(401)
		}))
		defer server.Close()
		sess := newSessionForTesting(server.URL)
		payload, err := sess.Invoke(context.Background(), http.MethodGet, "/services/wem/sites", nil, nil)
		var failure *httpapi.ErrRequestFailed
		if !errors.As(err, &failure) {
			t.Fatal("unexpected error", err)
		}
		if failure.Category != httpapi.CategoryUnauthorized {
			t.Fatal("unexpected category", failure.Category)
		}
		if failure.StatusCode != 401 {
			t.Fatal("unexpected status code", failure.StatusCode)
		}
		if payload != nil {
			t.Fatal("expected nil payload")
		}
	})

	t.Run("a 2xx response without a body is a success", func(t *testing.T) {
		server := testingx.MustNewHTTPServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(204)
		}))
		defer server.Close()
		sess := newSessionForTesting(server.URL)
		payload, err := sess.Invoke(context.Background(), http.MethodDelete, "/services/wem/sites/117", nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if payload != nil {
			t.Fatal("expected nil payload", string(payload))
		}
	})

	t.Run("a 2xx response with a non-JSON body is malformed", func(t *testing.T) {
		server := testingx.MustNewHTTPServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html><body>hello</body></html>`))
		}))
		defer server.Close()
		sess := newSessionForTesting(server.URL)
		_, err := sess.Invoke(context.Background(), http.MethodGet, "/services/wem/sites", nil, nil)
		if !errors.Is(err, httpapi.ErrMalformedResponse) {
			t.Fatal("unexpected error", err)
		}
	})
}

func TestInvokeJSON(t *testing.T) {
	// site models a WEM configuration set in these tests.
	type site struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	t.Run("parses the payload into the output type", func(t *testing.T) {
		server := testingx.MustNewHTTPServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"items":[{"id":1,"name":"Default Site"},{"id":2,"name":"Workstations"}]}`))
		}))
		defer server.Close()
		sess := newSessionForTesting(server.URL)
		type sitesResponse struct {
			Items []site `json:"items"`
		}
		got, err := InvokeJSON[sitesResponse](
			context.Background(), sess, http.MethodGet, "/services/wem/sites", nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		expect := sitesResponse{Items: []site{
			{ID: 1, Name: "Default Site"},
			{ID: 2, Name: "Workstations"},
		}}
		if diff := cmp.Diff(expect, got); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("a payload of the wrong shape is malformed", func(t *testing.T) {
		server := testingx.MustNewHTTPServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[1,2,3]`))
		}))
		defer server.Close()
		sess := newSessionForTesting(server.URL)
		got, err := InvokeJSON[site](
			context.Background(), sess, http.MethodGet, "/services/wem/sites/1", nil, nil)
		if !errors.Is(err, httpapi.ErrMalformedResponse) {
			t.Fatal("unexpected error", err)
		}
		if got.ID != 0 || got.Name != "" {
			t.Fatal("expected the zero value", got)
		}
	})

	t.Run("an empty response body is malformed", func(t *testing.T) {
		server := testingx.MustNewHTTPServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(204)
		}))
		defer server.Close()
		sess := newSessionForTesting(server.URL)
		_, err := InvokeJSON[site](
			context.Background(), sess, http.MethodGet, "/services/wem/sites/1", nil, nil)
		if !errors.Is(err, httpapi.ErrMalformedResponse) {
			t.Fatal("unexpected error", err)
		}
	})

	t.Run("call errors pass through unchanged", func(t *testing.T) {
		server := testingx.MustNewHTTPServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(500)
		}))
		defer server.Close()
		sess := newSessionForTesting(server.URL)
		got, err := InvokeJSON[site](
			context.Background(), sess, http.MethodGet, "/services/wem/sites/1", nil, nil)
		var failure *httpapi.ErrRequestFailed
		if !errors.As(err, &failure) {
			t.Fatal("unexpected error", err)
		}
		if failure.Category != httpapi.CategoryServerError {
			t.Fatal("unexpected category", failure.Category)
		}
		if got.ID != 0 || got.Name != "" {
			t.Fatal("expected the zero value", got)
		}
	})
}
