// Package httpsig implements HTTP message signatures per the
// draft-cavage-http-signatures family of specifications, with optional
// body digests per RFC 3230.
//
// It provides client-side signing (via SignRequest and Transport) and
// server-side verification (via VerifyRequest and Middleware). Signatures
// travel in the Authorization header using the Signature scheme:
//
//	Authorization: Signature keyId="ops",signature="...",headers="(request-target) date",created=1736951440,algorithm=rsa-sha256
//
// # Supported Algorithms
//
// Five signature algorithms are supported:
//
//   - hs2019 (algorithm-agnostic parameter, RSASSA-PKCS1-v1_5 SHA-256 primitive)
//   - rsa-sha256 (RSASSA-PKCS1-v1_5)
//   - rsa-sha1 (RSASSA-PKCS1-v1_5, legacy verifiers only)
//   - ecdsa-sha256 (ECDSA P-256, ASN.1 DER signatures)
//   - hmac-sha256 (HMAC)
//
// # Signing Requests
//
// Use SignRequest to add Authorization and Date headers to an HTTP
// request:
//
//	signer, err := httpsig.NewRSASHA256Signer("my-key-id", privateKey)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = httpsig.SignRequest(req, httpsig.SignOptions{
//	    Signer:  signer,
//	    Headers: []string{httpsig.HeaderRequestTarget, "date", "digest"},
//	    Digest:  []httpsig.DigestAlgorithm{httpsig.DigestSHA256},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// When Headers is empty the signed names default to (created) for hs2019
// and date for the other algorithms.
//
// # Verifying Requests
//
// Use VerifyRequest to verify the signature on an incoming request:
//
//	resolver := func(r *http.Request, keyID string, alg httpsig.Algorithm) (httpsig.Verifier, error) {
//	    // Look up the verifier for the given key ID.
//	    return verifier, nil
//	}
//
//	result, err := httpsig.VerifyRequest(req, httpsig.VerifyOptions{
//	    Resolver:        resolver,
//	    RequiredHeaders: []string{httpsig.HeaderRequestTarget, "date"},
//	    MaxAge:          5 * time.Minute,
//	})
//
// # Client Transport
//
// NewTransport creates an http.RoundTripper that automatically signs all
// outgoing requests. Pass an *http.Transport to configure proxy, TLS, and
// timeout settings. Pass nil for sensible defaults:
//
//	client := &http.Client{
//	    Transport: httpsig.NewTransport(nil, httpsig.SignOptions{
//	        Signer: signer,
//	    }),
//	}
//
//	resp, err := client.Get("https://api.example.com/resource")
//
// # Server Middleware
//
// Middleware returns a MiddlewareFunc that verifies signatures on
// incoming requests and rejects unverified ones with a 401 challenge:
//
//	mw, err := httpsig.Middleware(httpsig.MiddlewareConfig{
//	    Verify: httpsig.VerifyOptions{
//	        Resolver: resolver,
//	    },
//	    Logger: logger,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	handler := mw(next)
//
// The verified parameters are available to wrapped handlers through
// ResultFromContext.
//
// # Digest
//
// Body digests (RFC 3230) can be used standalone or integrated with
// signing:
//
//	// Standalone usage:
//	err := httpsig.SetDigest(req, httpsig.DigestSHA256)
//
//	// Integrated with signing (computes the Digest header before the
//	// signing string is built, so "digest" in Headers covers it):
//	err := httpsig.SignRequest(req, httpsig.SignOptions{
//	    Signer:  signer,
//	    Headers: []string{"date", "digest"},
//	    Digest:  []httpsig.DigestAlgorithm{httpsig.DigestSHA256},
//	})
package httpsig
