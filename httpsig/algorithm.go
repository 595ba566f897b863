package httpsig

// Algorithm identifies the HTTP message signature algorithm per
// draft-cavage-http-signatures Section 6 (HTTP Signature Algorithms
// Registry).
type Algorithm string

const (
	// AlgorithmHS2019 is the algorithm-agnostic registry value. The
	// signature metadata does not name a primitive; this implementation
	// fixes RSASSA-PKCS1-v1_5 using SHA-256 as the primitive behind it
	// while the serialized algorithm parameter stays "hs2019".
	AlgorithmHS2019 Algorithm = "hs2019"

	// AlgorithmRSASHA256 is RSASSA-PKCS1-v1_5 using SHA-256.
	AlgorithmRSASHA256 Algorithm = "rsa-sha256"

	// AlgorithmRSASHA1 is RSASSA-PKCS1-v1_5 using SHA-1. Deprecated by the
	// draft in favor of hs2019; kept for interoperability with legacy
	// verifiers.
	AlgorithmRSASHA1 Algorithm = "rsa-sha1"

	// AlgorithmECDSASHA256 is ECDSA using curve P-256 and SHA-256, with
	// ASN.1 DER signature encoding.
	AlgorithmECDSASHA256 Algorithm = "ecdsa-sha256"

	// AlgorithmHMACSHA256 is HMAC using SHA-256.
	AlgorithmHMACSHA256 Algorithm = "hmac-sha256"
)

// String returns the string representation of the algorithm as it appears
// in the algorithm signature parameter.
func (a Algorithm) String() string {
	return string(a)
}

// supported reports whether a is one of the recognized algorithm values.
func (a Algorithm) supported() bool {
	switch a {
	case AlgorithmHS2019, AlgorithmRSASHA256, AlgorithmRSASHA1,
		AlgorithmECDSASHA256, AlgorithmHMACSHA256:
		return true
	}
	return false
}

// Signer creates signatures over HTTP message signing strings.
type Signer interface {
	// Sign produces a signature over the given message bytes.
	Sign(message []byte) ([]byte, error)

	// Algorithm returns the algorithm identifier serialized into the
	// signature parameters for this signer.
	Algorithm() Algorithm

	// KeyID returns the key identifier included in signature parameters.
	KeyID() string
}

// Verifier validates signatures over HTTP message signing strings.
type Verifier interface {
	// Verify checks that signature is valid for the given message bytes.
	// Returns nil on success, non-nil on failure.
	Verify(message, signature []byte) error

	// Algorithm returns the algorithm identifier for this verifier.
	Algorithm() Algorithm

	// KeyID returns the key identifier for this verifier.
	KeyID() string
}
