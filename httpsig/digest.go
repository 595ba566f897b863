package httpsig

import (
	"bytes"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
)

// DigestAlgorithm identifies the hash algorithm for the Digest header
// per RFC 3230 Section 4.3.2.
type DigestAlgorithm string

const (
	// DigestSHA256 uses SHA-256 for the body digest.
	DigestSHA256 DigestAlgorithm = "SHA-256"

	// DigestSHA512 uses SHA-512 for the body digest.
	DigestSHA512 DigestAlgorithm = "SHA-512"
)

// Digest computes a Digest header value for body: one "ALG=base64" entry
// per algorithm, joined with "," in the order given. With no algorithms,
// SHA-256 is computed.
func Digest(body []byte, algs ...DigestAlgorithm) (string, error) {
	if len(algs) == 0 {
		algs = []DigestAlgorithm{DigestSHA256}
	}

	entries := make([]string, 0, len(algs))
	for _, alg := range algs {
		digest, err := computeDigest(body, alg)
		if err != nil {
			return "", err
		}

		entries = append(entries, string(alg)+"="+base64.StdEncoding.EncodeToString(digest))
	}

	return strings.Join(entries, ","), nil
}

// DigestFromMap formats caller-precomputed digest values as a Digest
// header without hashing anything. Entries are emitted in sorted key
// order so the output is deterministic.
func DigestFromMap(digests map[DigestAlgorithm]string) string {
	algs := make([]DigestAlgorithm, 0, len(digests))
	for alg := range digests {
		algs = append(algs, alg)
	}
	slices.Sort(algs)

	entries := make([]string, 0, len(digests))
	for _, alg := range algs {
		entries = append(entries, string(alg)+"="+digests[alg])
	}

	return strings.Join(entries, ",")
}

// SetDigest reads the request body, computes the digest for the given
// algorithms (SHA-256 when none), sets the Digest header per RFC 3230,
// and replaces the body so it can be read again.
func SetDigest(r *http.Request, algs ...DigestAlgorithm) error {
	value, err := requestDigest(r, algs)
	if err != nil {
		return err
	}

	r.Header.Set("Digest", value)

	return nil
}

// requestDigest computes the Digest header value for the request body
// without mutating any header. The body is restored after reading.
func requestDigest(r *http.Request, algs []DigestAlgorithm) (string, error) {
	body, err := readAndRestoreBody(r)
	if err != nil {
		return "", err
	}

	return Digest(body, algs...)
}

// VerifyDigest verifies the Digest header against the request body per
// RFC 3230. The header may carry multiple digest values; the first
// recognized algorithm is verified.
func VerifyDigest(r *http.Request) error {
	header := r.Header.Get("Digest")
	if header == "" {
		return ErrDigestNotFound
	}

	body, err := readAndRestoreBody(r)
	if err != nil {
		return err
	}

	for _, entry := range strings.Split(header, ",") {
		alg, encodedDigest, ok := parseDigestEntry(strings.TrimSpace(entry))
		if !ok {
			continue
		}

		expected, err := computeDigest(body, alg)
		if err != nil {
			return err
		}

		actual, err := base64.StdEncoding.DecodeString(encodedDigest)
		if err != nil {
			return fmt.Errorf("%w: invalid base64 in digest", ErrMalformedHeader)
		}

		if !bytes.Equal(expected, actual) {
			return ErrDigestMismatch
		}

		return nil
	}

	return ErrUnsupportedDigest
}

// parseDigestEntry parses a single "ALG=base64" entry from the Digest
// header. Algorithm tokens are matched case-insensitively per RFC 3230.
func parseDigestEntry(entry string) (DigestAlgorithm, string, bool) {
	algStr, value, ok := strings.Cut(entry, "=")
	if !ok {
		return "", "", false
	}

	alg := DigestAlgorithm(strings.ToUpper(strings.TrimSpace(algStr)))
	value = strings.TrimSpace(value)

	switch alg {
	case DigestSHA256, DigestSHA512:
		return alg, value, true
	default:
		return "", "", false
	}
}

// computeDigest computes the hash of data using the specified algorithm.
func computeDigest(data []byte, alg DigestAlgorithm) ([]byte, error) {
	switch DigestAlgorithm(strings.ToUpper(string(alg))) {
	case DigestSHA256:
		h := sha256.Sum256(data)
		return h[:], nil
	case DigestSHA512:
		h := sha512.Sum512(data)
		return h[:], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDigest, alg)
	}
}

// readAndRestoreBody reads the entire request body and replaces it with a
// new reader so the body can be consumed again by downstream handlers.
func readAndRestoreBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))

	return body, nil
}
