package httpsig

import "errors"

// Signing errors.
var (
	// ErrNoSigner is returned when SignOptions carries neither a Signer
	// nor the key material to construct one.
	ErrNoSigner = errors.New("httpsig: signer must not be nil")

	// ErrMissingKeyID is returned when a signer or verifier is constructed
	// without a key identifier. The keyId parameter is mandatory in the
	// serialized signature.
	ErrMissingKeyID = errors.New("httpsig: key id must not be empty")
)

// Algorithm and key material errors.
var (
	// ErrUnsupportedAlgorithm is returned when an algorithm identifier is
	// not one of the five recognized values.
	ErrUnsupportedAlgorithm = errors.New("httpsig: unsupported algorithm")

	// ErrKeyMismatch is returned when the supplied key type does not match
	// what the requested algorithm requires, such as an ECDSA key given to
	// rsa-sha256.
	ErrKeyMismatch = errors.New("httpsig: key type does not match algorithm")

	// ErrInvalidKey is returned when key material of the right type is
	// unusable (nil, wrong curve, insufficient size, etc.).
	ErrInvalidKey = errors.New("httpsig: invalid key material")
)

// Verification errors.
var (
	// ErrNoResolver is returned when VerifyOptions has no KeyResolver
	// configured.
	ErrNoResolver = errors.New("httpsig: key resolver must not be nil")

	// ErrSignatureNotFound is returned when the request carries no
	// Authorization header with the Signature scheme.
	ErrSignatureNotFound = errors.New("httpsig: signature not found")

	// ErrSignatureInvalid is returned when signature verification fails.
	ErrSignatureInvalid = errors.New("httpsig: signature verification failed")

	// ErrSignatureExpired is returned when the signature has exceeded its
	// expires timestamp or maximum allowed age, or claims a created
	// timestamp in the future.
	ErrSignatureExpired = errors.New("httpsig: signature expired")

	// ErrCreatedRequired is returned when MaxAge is set but the signature
	// does not contain a created parameter.
	ErrCreatedRequired = errors.New("httpsig: created parameter required when MaxAge is set")

	// ErrMissingHeader is returned when a required header name is absent
	// from the signature's covered headers.
	ErrMissingHeader = errors.New("httpsig: required header missing from signature")

	// ErrAlgorithmMismatch is returned when the algorithm parameter of a
	// signature disagrees with the algorithm of the resolved key.
	ErrAlgorithmMismatch = errors.New("httpsig: algorithm parameter does not match key")

	// ErrMalformedHeader is returned when the Authorization signature
	// parameters cannot be parsed.
	ErrMalformedHeader = errors.New("httpsig: malformed signature header")
)

// Digest errors.
var (
	// ErrDigestMismatch is returned when Digest verification fails.
	ErrDigestMismatch = errors.New("httpsig: digest mismatch")

	// ErrDigestNotFound is returned when a Digest header is required but
	// not present.
	ErrDigestNotFound = errors.New("httpsig: digest not found")

	// ErrUnsupportedDigest is returned when the digest algorithm is not
	// supported.
	ErrUnsupportedDigest = errors.New("httpsig: unsupported digest algorithm")
)
