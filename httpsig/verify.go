package httpsig

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"slices"
	"time"
)

// KeyResolver returns a Verifier for the given key ID and algorithm
// parameter. It is called during request verification to look up key
// material. The request is provided for context (e.g. to select keys
// based on the request host or path); alg is the serialized algorithm
// parameter and may be empty when the signature does not carry one.
type KeyResolver func(r *http.Request, keyID string, alg Algorithm) (Verifier, error)

// VerifyOptions configures HTTP request signature verification.
type VerifyOptions struct {
	// Resolver looks up a Verifier for a given key ID. Required.
	Resolver KeyResolver

	// RequiredHeaders lists (pseudo-)header names that must be covered
	// by the signature. Verification fails if any is missing.
	RequiredHeaders []string

	// MaxAge is the maximum acceptable signature age measured from the
	// created parameter. When non-zero, a created parameter is required.
	MaxAge time.Duration

	// RequireDigest, when true, requires a Digest header and verifies it
	// against the request body before signature verification.
	RequireDigest bool
}

// VerifyResult reports the parameters of an accepted signature.
type VerifyResult struct {
	// KeyID is the keyId parameter of the signature.
	KeyID string

	// Algorithm is the algorithm of the resolved verifier.
	Algorithm Algorithm

	// Headers lists the (pseudo-)header names covered by the signature.
	Headers []string

	// Created is the created parameter; zero when absent.
	Created time.Time

	// Expires is the expires parameter; zero when absent.
	Expires time.Time
}

// VerifyRequest verifies the draft-cavage signature carried in the
// request's Authorization header. The signing string is reconstructed
// from the request using the covered header names of the signature, with
// created and expires taken verbatim from the signature parameters.
func VerifyRequest(r *http.Request, opts VerifyOptions) (*VerifyResult, error) {
	if opts.Resolver == nil {
		return nil, ErrNoResolver
	}

	if opts.RequireDigest {
		if err := VerifyDigest(r); err != nil {
			return nil, err
		}
	}

	auth := r.Header.Get("Authorization")
	if auth == "" {
		return nil, ErrSignatureNotFound
	}

	params, err := parseSignatureHeader(auth)
	if err != nil {
		return nil, err
	}

	alg := Algorithm(params.algorithm)
	if params.algorithm != "" && !alg.supported() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, params.algorithm)
	}

	headers := params.headerList()
	for _, req := range opts.RequiredHeaders {
		if !slices.Contains(headers, req) {
			return nil, fmt.Errorf("%w: %s", ErrMissingHeader, req)
		}
	}

	created, err := params.createdTime()
	if err != nil {
		return nil, err
	}

	expires, err := params.expiresTime()
	if err != nil {
		return nil, err
	}

	now := time.Now()

	// A created timestamp in the future must not be processed.
	if !created.IsZero() && created.After(now) {
		return nil, ErrSignatureExpired
	}

	if !expires.IsZero() && now.After(expires) {
		return nil, ErrSignatureExpired
	}

	if opts.MaxAge > 0 {
		if created.IsZero() {
			return nil, ErrCreatedRequired
		}

		if now.Sub(created) > opts.MaxAge {
			return nil, ErrSignatureExpired
		}
	}

	verifier, err := opts.Resolver(r, params.keyID, alg)
	if err != nil {
		return nil, err
	}

	if params.algorithm != "" && alg != verifier.Algorithm() {
		return nil, fmt.Errorf("%w: signature says %s, key uses %s",
			ErrAlgorithmMismatch, params.algorithm, verifier.Algorithm())
	}

	sig, err := base64.StdEncoding.DecodeString(params.signature)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64 in signature", ErrMalformedHeader)
	}

	base := buildSigningString(headers, &signingContext{
		target:  requestTarget(r),
		created: params.created,
		expires: params.expires,
		date:    r.Header.Get("Date"),
		r:       r,
	})

	if err := verifier.Verify([]byte(base), sig); err != nil {
		return nil, err
	}

	return &VerifyResult{
		KeyID:     params.keyID,
		Algorithm: verifier.Algorithm(),
		Headers:   headers,
		Created:   created,
		Expires:   expires,
	}, nil
}
