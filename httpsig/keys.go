package httpsig

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/hmac"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"fmt"

	_ "crypto/sha1" // registers SHA-1 for the rsa-sha1 algorithm
)

// Minimum RSA key size in bits.
const minRSAKeyBits = 2048

// NewSigner creates a Signer for the given algorithm, dispatching on the
// key type: *rsa.PrivateKey for hs2019, rsa-sha256 and rsa-sha1,
// *ecdsa.PrivateKey for ecdsa-sha256, and []byte for hmac-sha256.
func NewSigner(alg Algorithm, keyID string, key crypto.PrivateKey) (Signer, error) {
	switch alg {
	case AlgorithmHS2019, AlgorithmRSASHA256, AlgorithmRSASHA1:
		k, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: %s requires *rsa.PrivateKey, got %T", ErrKeyMismatch, alg, key)
		}

		return newRSASigner(alg, keyID, k)
	case AlgorithmECDSASHA256:
		k, ok := key.(*ecdsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: %s requires *ecdsa.PrivateKey, got %T", ErrKeyMismatch, alg, key)
		}

		return NewECDSASHA256Signer(keyID, k)
	case AlgorithmHMACSHA256:
		k, ok := key.([]byte)
		if !ok {
			return nil, fmt.Errorf("%w: %s requires a []byte secret, got %T", ErrKeyMismatch, alg, key)
		}

		return NewHMACSHA256Signer(keyID, k)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, alg)
	}
}

// NewVerifier creates a Verifier for the given algorithm, dispatching on
// the key type: *rsa.PublicKey for hs2019, rsa-sha256 and rsa-sha1,
// *ecdsa.PublicKey for ecdsa-sha256, and []byte for hmac-sha256.
func NewVerifier(alg Algorithm, keyID string, key crypto.PublicKey) (Verifier, error) {
	switch alg {
	case AlgorithmHS2019, AlgorithmRSASHA256, AlgorithmRSASHA1:
		k, ok := key.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: %s requires *rsa.PublicKey, got %T", ErrKeyMismatch, alg, key)
		}

		return newRSAVerifier(alg, keyID, k)
	case AlgorithmECDSASHA256:
		k, ok := key.(*ecdsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: %s requires *ecdsa.PublicKey, got %T", ErrKeyMismatch, alg, key)
		}

		return NewECDSASHA256Verifier(keyID, k)
	case AlgorithmHMACSHA256:
		k, ok := key.([]byte)
		if !ok {
			return nil, fmt.Errorf("%w: %s requires a []byte secret, got %T", ErrKeyMismatch, alg, key)
		}

		return NewHMACSHA256Verifier(keyID, k)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, alg)
	}
}

// --- RSA PKCS#1 v1.5 (hs2019, rsa-sha256, rsa-sha1) ---

// rsaHash maps the three RSA-backed algorithm values to their digest.
func rsaHash(alg Algorithm) crypto.Hash {
	if alg == AlgorithmRSASHA1 {
		return crypto.SHA1
	}

	return crypto.SHA256
}

type rsaSigner struct {
	key   *rsa.PrivateKey
	keyID string
	alg   Algorithm
	hash  crypto.Hash
}

func newRSASigner(alg Algorithm, keyID string, key *rsa.PrivateKey) (Signer, error) {
	if keyID == "" {
		return nil, ErrMissingKeyID
	}

	if key == nil {
		return nil, fmt.Errorf("%w: rsa private key must not be nil", ErrInvalidKey)
	}

	if key.N.BitLen() < minRSAKeyBits {
		return nil, fmt.Errorf("%w: rsa key must be at least %d bits", ErrInvalidKey, minRSAKeyBits)
	}

	return &rsaSigner{key: key, keyID: keyID, alg: alg, hash: rsaHash(alg)}, nil
}

// NewHS2019Signer creates a Signer serializing the hs2019 algorithm value.
// The hs2019 registry entry leaves the primitive to key metadata; this
// implementation signs with RSASSA-PKCS1-v1_5 over SHA-256.
func NewHS2019Signer(keyID string, key *rsa.PrivateKey) (Signer, error) {
	return newRSASigner(AlgorithmHS2019, keyID, key)
}

// NewRSASHA256Signer creates a Signer using RSASSA-PKCS1-v1_5 with SHA-256.
func NewRSASHA256Signer(keyID string, key *rsa.PrivateKey) (Signer, error) {
	return newRSASigner(AlgorithmRSASHA256, keyID, key)
}

// NewRSASHA1Signer creates a Signer using RSASSA-PKCS1-v1_5 with SHA-1.
func NewRSASHA1Signer(keyID string, key *rsa.PrivateKey) (Signer, error) {
	return newRSASigner(AlgorithmRSASHA1, keyID, key)
}

func (s *rsaSigner) Sign(message []byte) ([]byte, error) {
	h := s.hash.New()
	h.Write(message)

	return rsa.SignPKCS1v15(rand.Reader, s.key, s.hash, h.Sum(nil))
}

func (s *rsaSigner) Algorithm() Algorithm { return s.alg }
func (s *rsaSigner) KeyID() string        { return s.keyID }

type rsaVerifier struct {
	key   *rsa.PublicKey
	keyID string
	alg   Algorithm
	hash  crypto.Hash
}

func newRSAVerifier(alg Algorithm, keyID string, key *rsa.PublicKey) (Verifier, error) {
	if keyID == "" {
		return nil, ErrMissingKeyID
	}

	if key == nil {
		return nil, fmt.Errorf("%w: rsa public key must not be nil", ErrInvalidKey)
	}

	if key.N.BitLen() < minRSAKeyBits {
		return nil, fmt.Errorf("%w: rsa key must be at least %d bits", ErrInvalidKey, minRSAKeyBits)
	}

	return &rsaVerifier{key: key, keyID: keyID, alg: alg, hash: rsaHash(alg)}, nil
}

// NewHS2019Verifier creates a Verifier for the hs2019 algorithm value,
// checking RSASSA-PKCS1-v1_5 over SHA-256 signatures.
func NewHS2019Verifier(keyID string, key *rsa.PublicKey) (Verifier, error) {
	return newRSAVerifier(AlgorithmHS2019, keyID, key)
}

// NewRSASHA256Verifier creates a Verifier using RSASSA-PKCS1-v1_5 with SHA-256.
func NewRSASHA256Verifier(keyID string, key *rsa.PublicKey) (Verifier, error) {
	return newRSAVerifier(AlgorithmRSASHA256, keyID, key)
}

// NewRSASHA1Verifier creates a Verifier using RSASSA-PKCS1-v1_5 with SHA-1.
func NewRSASHA1Verifier(keyID string, key *rsa.PublicKey) (Verifier, error) {
	return newRSAVerifier(AlgorithmRSASHA1, keyID, key)
}

func (v *rsaVerifier) Verify(message, signature []byte) error {
	h := v.hash.New()
	h.Write(message)

	if err := rsa.VerifyPKCS1v15(v.key, v.hash, h.Sum(nil), signature); err != nil {
		return ErrSignatureInvalid
	}

	return nil
}

func (v *rsaVerifier) Algorithm() Algorithm { return v.alg }
func (v *rsaVerifier) KeyID() string        { return v.keyID }

// --- ECDSA P-256 SHA-256 ---

type ecdsaSigner struct {
	key   *ecdsa.PrivateKey
	keyID string
}

// NewECDSASHA256Signer creates a Signer using ECDSA with curve P-256 and
// SHA-256. Signatures are ASN.1 DER encoded.
func NewECDSASHA256Signer(keyID string, key *ecdsa.PrivateKey) (Signer, error) {
	if keyID == "" {
		return nil, ErrMissingKeyID
	}

	if key == nil {
		return nil, fmt.Errorf("%w: ecdsa private key must not be nil", ErrInvalidKey)
	}

	if key.Curve != elliptic.P256() {
		return nil, fmt.Errorf("%w: key curve must be P-256", ErrInvalidKey)
	}

	return &ecdsaSigner{key: key, keyID: keyID}, nil
}

func (s *ecdsaSigner) Sign(message []byte) ([]byte, error) {
	digest := sha256.Sum256(message)

	return ecdsa.SignASN1(rand.Reader, s.key, digest[:])
}

func (s *ecdsaSigner) Algorithm() Algorithm { return AlgorithmECDSASHA256 }
func (s *ecdsaSigner) KeyID() string        { return s.keyID }

type ecdsaVerifier struct {
	key   *ecdsa.PublicKey
	keyID string
}

// NewECDSASHA256Verifier creates a Verifier using ECDSA with curve P-256
// and SHA-256.
func NewECDSASHA256Verifier(keyID string, key *ecdsa.PublicKey) (Verifier, error) {
	if keyID == "" {
		return nil, ErrMissingKeyID
	}

	if key == nil {
		return nil, fmt.Errorf("%w: ecdsa public key must not be nil", ErrInvalidKey)
	}

	if key.Curve != elliptic.P256() {
		return nil, fmt.Errorf("%w: key curve must be P-256", ErrInvalidKey)
	}

	return &ecdsaVerifier{key: key, keyID: keyID}, nil
}

func (v *ecdsaVerifier) Verify(message, signature []byte) error {
	digest := sha256.Sum256(message)
	if !ecdsa.VerifyASN1(v.key, digest[:], signature) {
		return ErrSignatureInvalid
	}

	return nil
}

func (v *ecdsaVerifier) Algorithm() Algorithm { return AlgorithmECDSASHA256 }
func (v *ecdsaVerifier) KeyID() string        { return v.keyID }

// --- HMAC SHA-256 ---

const minHMACKeyBytes = 32

type hmacSigner struct {
	key   []byte
	keyID string
}

// NewHMACSHA256Signer creates a Signer using HMAC-SHA256. The secret must
// be at least 32 bytes.
func NewHMACSHA256Signer(keyID string, key []byte) (Signer, error) {
	if keyID == "" {
		return nil, ErrMissingKeyID
	}

	if len(key) < minHMACKeyBytes {
		return nil, fmt.Errorf("%w: hmac key must be at least %d bytes", ErrInvalidKey, minHMACKeyBytes)
	}

	keyCopy := make([]byte, len(key))
	copy(keyCopy, key)

	return &hmacSigner{key: keyCopy, keyID: keyID}, nil
}

func (s *hmacSigner) Sign(message []byte) ([]byte, error) {
	return computeHMAC(s.key, message), nil
}

func (s *hmacSigner) Algorithm() Algorithm { return AlgorithmHMACSHA256 }
func (s *hmacSigner) KeyID() string        { return s.keyID }

type hmacVerifier struct {
	key   []byte
	keyID string
}

// NewHMACSHA256Verifier creates a Verifier using HMAC-SHA256. The secret
// must be at least 32 bytes.
func NewHMACSHA256Verifier(keyID string, key []byte) (Verifier, error) {
	if keyID == "" {
		return nil, ErrMissingKeyID
	}

	if len(key) < minHMACKeyBytes {
		return nil, fmt.Errorf("%w: hmac key must be at least %d bytes", ErrInvalidKey, minHMACKeyBytes)
	}

	keyCopy := make([]byte, len(key))
	copy(keyCopy, key)

	return &hmacVerifier{key: keyCopy, keyID: keyID}, nil
}

func (v *hmacVerifier) Verify(message, signature []byte) error {
	expected := computeHMAC(v.key, message)
	if !hmac.Equal(expected, signature) {
		return ErrSignatureInvalid
	}

	return nil
}

func (v *hmacVerifier) Algorithm() Algorithm { return AlgorithmHMACSHA256 }
func (v *hmacVerifier) KeyID() string        { return v.keyID }

func computeHMAC(key, message []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(message)

	return h.Sum(nil)
}
