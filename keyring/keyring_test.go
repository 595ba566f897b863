package keyring

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wojtekmach/plug-signature/httpsig"
)

func newHMACVerifier(t *testing.T, id string) httpsig.Verifier {
	t.Helper()

	v, err := httpsig.NewHMACSHA256Verifier(id, []byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	return v
}

func TestKeyring(t *testing.T) {
	t.Run("add and look up", func(t *testing.T) {
		ring := New()
		v := newHMACVerifier(t, "svc-a")

		require.NoError(t, ring.Add(v))

		got, err := ring.Verifier("svc-a")
		require.NoError(t, err)
		assert.Same(t, v, got)
	})

	t.Run("duplicate key id", func(t *testing.T) {
		ring := New()

		require.NoError(t, ring.Add(newHMACVerifier(t, "svc-a")))
		assert.ErrorIs(t, ring.Add(newHMACVerifier(t, "svc-a")), ErrDuplicateKeyID)
	})

	t.Run("unknown key id", func(t *testing.T) {
		ring := New()

		_, err := ring.Verifier("missing")
		assert.ErrorIs(t, err, ErrUnknownKeyID)
	})

	t.Run("ids sorted", func(t *testing.T) {
		ring := New()

		for _, id := range []string{"svc-c", "svc-a", "svc-b"} {
			require.NoError(t, ring.Add(newHMACVerifier(t, id)))
		}

		assert.Equal(t, []string{"svc-a", "svc-b", "svc-c"}, ring.IDs())
	})
}

func TestResolver(t *testing.T) {
	t.Run("resolves by key id", func(t *testing.T) {
		ring := New()
		v := newHMACVerifier(t, "svc-a")
		require.NoError(t, ring.Add(v))

		r := httptest.NewRequest("GET", "https://example.com/", nil)

		got, err := ring.Resolver()(r, "svc-a", httpsig.AlgorithmHMACSHA256)
		require.NoError(t, err)
		assert.Same(t, v, got)
	})

	t.Run("unknown key id", func(t *testing.T) {
		ring := New()

		r := httptest.NewRequest("GET", "https://example.com/", nil)

		_, err := ring.Resolver()(r, "missing", httpsig.AlgorithmHMACSHA256)
		assert.ErrorIs(t, err, ErrUnknownKeyID)
	})

	t.Run("verifies requests end to end", func(t *testing.T) {
		secret := []byte("0123456789abcdef0123456789abcdef")

		signer, err := httpsig.NewHMACSHA256Signer("svc-a", secret)
		require.NoError(t, err)

		verifier, err := httpsig.NewHMACSHA256Verifier("svc-a", secret)
		require.NoError(t, err)

		ring := New()
		require.NoError(t, ring.Add(verifier))

		r := httptest.NewRequest("GET", "https://example.com/status", nil)
		require.NoError(t, httpsig.SignRequest(r, httpsig.SignOptions{Signer: signer}))

		result, err := httpsig.VerifyRequest(r, httpsig.VerifyOptions{Resolver: ring.Resolver()})
		require.NoError(t, err)
		assert.Equal(t, "svc-a", result.KeyID)
	})
}
