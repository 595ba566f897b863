package sigtest

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wojtekmach/plug-signature/httpsig"
)

// Options configures a signed test request.
type Options struct {
	// Sign configures how the request is signed.
	Sign httpsig.SignOptions

	// Header holds additional request headers, applied before signing so
	// they can be covered by the signature.
	Header http.Header
}

// Do builds a request for the given method, target and body, signs it and
// dispatches it to h. Signing failures abort the test through tb.
func Do(tb testing.TB, h http.Handler, method, target string, body []byte, opts Options) *httptest.ResponseRecorder {
	tb.Helper()

	r := httptest.NewRequest(method, target, bytes.NewReader(body))

	for name, values := range opts.Header {
		for _, value := range values {
			r.Header.Add(name, value)
		}
	}

	if err := httpsig.SignRequest(r, opts.Sign); err != nil {
		tb.Fatalf("sigtest: sign request: %v", err)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	return w
}

// Get dispatches a signed GET request to h.
func Get(tb testing.TB, h http.Handler, target string, opts Options) *httptest.ResponseRecorder {
	tb.Helper()

	return Do(tb, h, http.MethodGet, target, nil, opts)
}

// Head dispatches a signed HEAD request to h.
func Head(tb testing.TB, h http.Handler, target string, opts Options) *httptest.ResponseRecorder {
	tb.Helper()

	return Do(tb, h, http.MethodHead, target, nil, opts)
}

// Delete dispatches a signed DELETE request to h.
func Delete(tb testing.TB, h http.Handler, target string, opts Options) *httptest.ResponseRecorder {
	tb.Helper()

	return Do(tb, h, http.MethodDelete, target, nil, opts)
}

// Post dispatches a signed POST request with the given body to h.
func Post(tb testing.TB, h http.Handler, target string, body []byte, opts Options) *httptest.ResponseRecorder {
	tb.Helper()

	return Do(tb, h, http.MethodPost, target, body, opts)
}

// Put dispatches a signed PUT request with the given body to h.
func Put(tb testing.TB, h http.Handler, target string, body []byte, opts Options) *httptest.ResponseRecorder {
	tb.Helper()

	return Do(tb, h, http.MethodPut, target, body, opts)
}

// Patch dispatches a signed PATCH request with the given body to h.
func Patch(tb testing.TB, h http.Handler, target string, body []byte, opts Options) *httptest.ResponseRecorder {
	tb.Helper()

	return Do(tb, h, http.MethodPatch, target, body, opts)
}
