package backend

import (
	"net/http"
	"net/http/httptest"
)

// InProcessBaseURL is the base URL clients use when talking to the mock
// backend through Transport. The host is never resolved.
const InProcessBaseURL = "http://heroes.local"

type inProcessTransport struct {
	handler http.Handler
}

// Transport returns a RoundTripper that serves every request with handler in
// the calling goroutine, without opening a socket.
func Transport(handler http.Handler) http.RoundTripper {
	return &inProcessTransport{handler: handler}
}

// RoundTrip implements http.RoundTripper.
func (t *inProcessTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := req.Context().Err(); err != nil {
		return nil, err
	}

	// Server handlers expect RequestURI to be set.
	r := req.Clone(req.Context())
	r.RequestURI = req.URL.RequestURI()
	if r.Body == nil {
		r.Body = http.NoBody
	}

	rec := httptest.NewRecorder()
	t.handler.ServeHTTP(rec, r)

	if err := req.Context().Err(); err != nil {
		return nil, err
	}
	resp := rec.Result()
	resp.Request = req
	return resp, nil
}
