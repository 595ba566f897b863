// Package keyring manages the verification keys of signing clients.
//
// Verifiers are registered directly or loaded from a YAML key file:
//
//	keys:
//	  - id: service-a
//	    algorithm: rsa-sha256
//	    public_key: |
//	      -----BEGIN PUBLIC KEY-----
//	      ...
//	      -----END PUBLIC KEY-----
//
//	  - id: service-b
//	    algorithm: hmac-sha256
//	    secret: MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY=
//
// Entries without an id are assigned a random UUID. The keyring resolves
// keys during verification through its Resolver:
//
//	ring, err := keyring.LoadFile("keys.yml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	mw, err := httpsig.Middleware(httpsig.MiddlewareConfig{
//	    Verify: httpsig.VerifyOptions{Resolver: ring.Resolver()},
//	})
package keyring
