package sigtest

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wojtekmach/plug-signature/httpsig"
)

func newSignedMux(t *testing.T) (http.Handler, httpsig.SignOptions) {
	t.Helper()

	secret := []byte("0123456789abcdef0123456789abcdef")

	signer, err := httpsig.NewHMACSHA256Signer("test-key", secret)
	require.NoError(t, err)

	verifier, err := httpsig.NewHMACSHA256Verifier("test-key", secret)
	require.NoError(t, err)

	mw, err := httpsig.Middleware(httpsig.MiddlewareConfig{
		Verify: httpsig.VerifyOptions{
			Resolver: func(r *http.Request, keyID string, alg httpsig.Algorithm) (httpsig.Verifier, error) {
				return verifier, nil
			},
		},
	})
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("/echo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Method", r.Method)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)

			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write(body)
	})

	return mw(mux), httpsig.SignOptions{Signer: signer}
}

func TestDo(t *testing.T) {
	handler, sign := newSignedMux(t)

	t.Run("signed request passes verification", func(t *testing.T) {
		w := Do(t, handler, http.MethodGet, "/echo", nil, Options{Sign: sign})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, http.MethodGet, w.Header().Get("X-Method"))
	})

	t.Run("body is delivered", func(t *testing.T) {
		w := Do(t, handler, http.MethodPost, "/echo", []byte("payload"), Options{Sign: sign})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "payload", w.Body.String())
	})

	t.Run("extra headers can be covered", func(t *testing.T) {
		opts := Options{
			Sign:   sign,
			Header: http.Header{"X-Tenant": []string{"acme"}},
		}
		opts.Sign.Headers = []string{"(request-target)", "(created)", "x-tenant"}

		w := Do(t, handler, http.MethodGet, "/echo", nil, opts)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("forged signature is rejected", func(t *testing.T) {
		opts := Options{Sign: sign}
		opts.Sign.Override = httpsig.Override{Signature: "Zm9yZ2Vk"}

		w := Do(t, handler, http.MethodGet, "/echo", nil, opts)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("overridden created breaks a covering signature", func(t *testing.T) {
		opts := Options{Sign: sign}
		opts.Sign.Headers = []string{"(request-target)", "(created)"}
		opts.Sign.Override = httpsig.Override{Created: "10"}

		w := Do(t, handler, http.MethodGet, "/echo", nil, opts)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestMethodHelpers(t *testing.T) {
	handler, sign := newSignedMux(t)
	opts := Options{Sign: sign}

	t.Run("get", func(t *testing.T) {
		w := Get(t, handler, "/echo", opts)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, http.MethodGet, w.Header().Get("X-Method"))
	})

	t.Run("head", func(t *testing.T) {
		w := Head(t, handler, "/echo", opts)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, http.MethodHead, w.Header().Get("X-Method"))
	})

	t.Run("delete", func(t *testing.T) {
		w := Delete(t, handler, "/echo", opts)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, http.MethodDelete, w.Header().Get("X-Method"))
	})

	t.Run("post", func(t *testing.T) {
		w := Post(t, handler, "/echo", []byte("created"), opts)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "created", w.Body.String())
	})

	t.Run("put", func(t *testing.T) {
		w := Put(t, handler, "/echo", []byte("replaced"), opts)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "replaced", w.Body.String())
	})

	t.Run("patch", func(t *testing.T) {
		w := Patch(t, handler, "/echo", []byte("updated"), opts)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "updated", w.Body.String())
	})
}
