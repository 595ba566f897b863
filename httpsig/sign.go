package httpsig

import (
	"crypto"
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// SignOptions configures HTTP request signing per draft-cavage Section 4.
//
// All time-derived values within one SignRequest call are computed from a
// single clock sample, so created, expires and date stay mutually
// consistent unless explicitly overridden.
type SignOptions struct {
	// Signer produces signatures. When nil, a signer is constructed from
	// KeyID, Key and the head of Algorithms.
	Signer Signer

	// KeyID identifies the key material to the verifier. Used together
	// with Key and Algorithms when Signer is nil.
	KeyID string

	// Key is the signing key material: *rsa.PrivateKey for hs2019,
	// rsa-sha256 and rsa-sha1, *ecdsa.PrivateKey for ecdsa-sha256, or a
	// []byte secret for hmac-sha256.
	Key crypto.PrivateKey

	// Algorithms is the configured algorithm list. The first entry is
	// used for signing; any remaining entries are informational only.
	Algorithms []Algorithm

	// Headers lists the (pseudo-)header names to sign, in order. Defaults
	// to (created) for hs2019 and date for the other algorithms.
	Headers []string

	// RequestTarget replaces the computed (request-target) value.
	RequestTarget string

	// Age shifts the created and date values this far back from now.
	Age time.Duration

	// OmitCreated leaves the created parameter unset.
	OmitCreated bool

	// Created is an explicit created timestamp in Unix seconds, taking
	// precedence over Age.
	Created int64

	// ExpiresIn sets expires to now + ExpiresIn. Zero means no expires
	// parameter.
	ExpiresIn time.Duration

	// Expires is an explicit expires timestamp in Unix seconds, taking
	// precedence over ExpiresIn.
	Expires int64

	// Date is an explicit HTTP-date used for the date value. When empty
	// the date is derived from now and Age per RFC 7231.
	Date string

	// Digest, when non-empty, causes SignRequest to compute a Digest
	// header (RFC 3230) over the request body before signing, so that a
	// "digest" entry in Headers covers it.
	Digest []DigestAlgorithm

	// ToBeSigned replaces the entire signing string. The headers
	// parameter still serializes the configured list.
	ToBeSigned string

	// Override replaces individual serialized parameters.
	Override Override
}

// Override carries literal replacement values for individual signature
// parameters. A non-empty field replaces the resolved value in the
// serialized Authorization header only; the signing string is built from
// the resolved values regardless. Intended for producing deliberately
// inconsistent signatures when testing verifiers.
type Override struct {
	KeyID     string
	Algorithm string
	Signature string
	Headers   string
	Created   string
	Expires   string
}

func (o Override) apply(p *signatureParams) {
	if o.KeyID != "" {
		p.keyID = o.KeyID
	}

	if o.Algorithm != "" {
		p.algorithm = o.Algorithm
	}

	if o.Signature != "" {
		p.signature = o.Signature
	}

	if o.Headers != "" {
		p.headers = o.Headers
	}

	if o.Created != "" {
		p.created = o.Created
	}

	if o.Expires != "" {
		p.expires = o.Expires
	}
}

// signer returns the configured Signer, constructing one from the key
// material when none is set.
func (opts SignOptions) signer() (Signer, error) {
	if opts.Signer != nil {
		return opts.Signer, nil
	}

	if opts.Key == nil || len(opts.Algorithms) == 0 {
		return nil, ErrNoSigner
	}

	return NewSigner(opts.Algorithms[0], opts.KeyID, opts.Key)
}

// unixTimestamp formats t in whole Unix seconds.
func unixTimestamp(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}

// httpDate formats t as an RFC 7231 HTTP-date.
func httpDate(t time.Time) string {
	return t.UTC().Format(http.TimeFormat)
}

// SignRequest signs an HTTP request in-place per draft-cavage Section 4,
// setting the Authorization header to the Signature scheme and the Date
// header to the resolved date, plus a Digest header when body digesting
// is configured. On error the request headers are left untouched.
func SignRequest(r *http.Request, opts SignOptions) error {
	signer, err := opts.signer()
	if err != nil {
		return err
	}

	now := time.Now()

	created := ""
	switch {
	case opts.OmitCreated:
	case opts.Created != 0:
		created = strconv.FormatInt(opts.Created, 10)
	default:
		created = unixTimestamp(now.Add(-opts.Age))
	}

	expires := ""
	switch {
	case opts.Expires != 0:
		expires = strconv.FormatInt(opts.Expires, 10)
	case opts.ExpiresIn != 0:
		expires = unixTimestamp(now.Add(opts.ExpiresIn))
	}

	date := opts.Date
	if date == "" {
		date = httpDate(now.Add(-opts.Age))
	}

	headers := opts.Headers
	if len(headers) == 0 {
		headers = defaultHeaders(signer.Algorithm())
	}

	target := opts.RequestTarget
	if target == "" {
		target = requestTarget(r)
	}

	digest := ""
	if len(opts.Digest) > 0 {
		digest, err = requestDigest(r, opts.Digest)
		if err != nil {
			return err
		}
	}

	base := opts.ToBeSigned
	if base == "" {
		base = buildSigningString(headers, &signingContext{
			target:  target,
			created: created,
			expires: expires,
			date:    date,
			digest:  digest,
			r:       r,
		})
	}

	sig, err := signer.Sign([]byte(base))
	if err != nil {
		return err
	}

	params := signatureParams{
		keyID:     signer.KeyID(),
		signature: base64.StdEncoding.EncodeToString(sig),
		headers:   strings.Join(headers, " "),
		created:   created,
		expires:   expires,
		algorithm: signer.Algorithm().String(),
	}
	opts.Override.apply(&params)

	if digest != "" {
		r.Header.Set("Digest", digest)
	}

	r.Header.Set("Date", date)
	r.Header.Set("Authorization", signatureScheme+" "+params.String())

	return nil
}
