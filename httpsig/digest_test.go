package httpsig

import (
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, fmt.Errorf("read error") }
func (errReader) Close() error             { return nil }

const (
	helloSHA256 = "LPJNul+wow4m6DsqxbninhsWHlwfp0JecwQzYpOLmCQ="
	helloSHA512 = "m3HSJL1i83hdltRq0+o9czGb+8KJDKra4t/3JRlnPKcjI8PZm6XBHXx6zG4UuMXaDEZjR1wuXDre9G9zvN7AQw=="
	emptySHA256 = "47DEQpj8HBSa+/TImW+5JCeuQeRkm5NMpJWZG3hSuFU="
)

func TestDigest(t *testing.T) {
	t.Run("defaults to sha-256", func(t *testing.T) {
		got, err := Digest([]byte("hello"))
		require.NoError(t, err)
		assert.Equal(t, "SHA-256="+helloSHA256, got)
	})

	t.Run("sha-512", func(t *testing.T) {
		got, err := Digest([]byte("hello"), DigestSHA512)
		require.NoError(t, err)
		assert.Equal(t, "SHA-512="+helloSHA512, got)
	})

	t.Run("multiple algorithms in given order", func(t *testing.T) {
		got, err := Digest([]byte("hello"), DigestSHA512, DigestSHA256)
		require.NoError(t, err)
		assert.Equal(t, "SHA-512="+helloSHA512+",SHA-256="+helloSHA256, got)
	})

	t.Run("empty body", func(t *testing.T) {
		got, err := Digest(nil)
		require.NoError(t, err)
		assert.Equal(t, "SHA-256="+emptySHA256, got)
	})

	t.Run("unsupported algorithm", func(t *testing.T) {
		_, err := Digest([]byte("hello"), DigestAlgorithm("MD5"))
		assert.ErrorIs(t, err, ErrUnsupportedDigest)
	})
}

func TestDigestFromMap(t *testing.T) {
	t.Run("entries in sorted order", func(t *testing.T) {
		got := DigestFromMap(map[DigestAlgorithm]string{
			DigestSHA512: helloSHA512,
			DigestSHA256: helloSHA256,
		})

		assert.Equal(t, "SHA-256="+helloSHA256+",SHA-512="+helloSHA512, got)
	})

	t.Run("empty map", func(t *testing.T) {
		assert.Empty(t, DigestFromMap(nil))
	})
}

func TestSetDigest(t *testing.T) {
	t.Run("sets header and preserves body", func(t *testing.T) {
		r := httptest.NewRequest("POST", "https://example.com/", strings.NewReader("hello"))

		require.NoError(t, SetDigest(r))
		assert.Equal(t, "SHA-256="+helloSHA256, r.Header.Get("Digest"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(body))
	})

	t.Run("nil body", func(t *testing.T) {
		r := httptest.NewRequest("GET", "https://example.com/", nil)

		require.NoError(t, SetDigest(r))
		assert.Equal(t, "SHA-256="+emptySHA256, r.Header.Get("Digest"))
	})

	t.Run("explicit algorithms", func(t *testing.T) {
		r := httptest.NewRequest("POST", "https://example.com/", strings.NewReader("hello"))

		require.NoError(t, SetDigest(r, DigestSHA256, DigestSHA512))
		assert.Equal(t, "SHA-256="+helloSHA256+",SHA-512="+helloSHA512, r.Header.Get("Digest"))
	})

	t.Run("body read failure", func(t *testing.T) {
		r := httptest.NewRequest("POST", "https://example.com/", nil)
		r.Body = errReader{}

		assert.Error(t, SetDigest(r))
		assert.Empty(t, r.Header.Get("Digest"))
	})
}

func TestVerifyDigest(t *testing.T) {
	t.Run("valid digest", func(t *testing.T) {
		r := httptest.NewRequest("POST", "https://example.com/", strings.NewReader("hello"))
		require.NoError(t, SetDigest(r))

		assert.NoError(t, VerifyDigest(r))
	})

	t.Run("body preserved after verify", func(t *testing.T) {
		r := httptest.NewRequest("POST", "https://example.com/", strings.NewReader("hello"))
		require.NoError(t, SetDigest(r))
		require.NoError(t, VerifyDigest(r))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(body))
	})

	t.Run("sha-512 entry", func(t *testing.T) {
		r := httptest.NewRequest("POST", "https://example.com/", strings.NewReader("hello"))
		r.Header.Set("Digest", "SHA-512="+helloSHA512)

		assert.NoError(t, VerifyDigest(r))
	})

	t.Run("algorithm token case-insensitive", func(t *testing.T) {
		r := httptest.NewRequest("POST", "https://example.com/", strings.NewReader("hello"))
		r.Header.Set("Digest", "sha-256="+helloSHA256)

		assert.NoError(t, VerifyDigest(r))
	})

	t.Run("first recognized entry wins", func(t *testing.T) {
		r := httptest.NewRequest("POST", "https://example.com/", strings.NewReader("hello"))
		r.Header.Set("Digest", "MD5=bogus,SHA-256="+helloSHA256)

		assert.NoError(t, VerifyDigest(r))
	})

	t.Run("body mismatch", func(t *testing.T) {
		r := httptest.NewRequest("POST", "https://example.com/", strings.NewReader("tampered"))
		r.Header.Set("Digest", "SHA-256="+helloSHA256)

		assert.ErrorIs(t, VerifyDigest(r), ErrDigestMismatch)
	})

	t.Run("missing header", func(t *testing.T) {
		r := httptest.NewRequest("POST", "https://example.com/", strings.NewReader("hello"))

		assert.ErrorIs(t, VerifyDigest(r), ErrDigestNotFound)
	})

	t.Run("no recognized algorithm", func(t *testing.T) {
		r := httptest.NewRequest("POST", "https://example.com/", strings.NewReader("hello"))
		r.Header.Set("Digest", "MD5=bogus,UNIXsum=123")

		assert.ErrorIs(t, VerifyDigest(r), ErrUnsupportedDigest)
	})

	t.Run("invalid base64", func(t *testing.T) {
		r := httptest.NewRequest("POST", "https://example.com/", strings.NewReader("hello"))
		r.Header.Set("Digest", "SHA-256=%%%")

		assert.ErrorIs(t, VerifyDigest(r), ErrMalformedHeader)
	})
}
