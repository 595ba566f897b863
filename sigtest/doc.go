// Package sigtest provides test helpers for exercising HTTP handlers
// behind signature verification.
//
// Each helper builds a request, signs it with the given options,
// dispatches it to the handler and returns the recorded response:
//
//	w := sigtest.Get(t, handler, "/status", sigtest.Options{
//	    Sign: httpsig.SignOptions{Signer: signer},
//	})
//
//	if w.Code != http.StatusOK {
//	    t.Fatalf("unexpected status: %d", w.Code)
//	}
//
// Deliberately broken signatures for negative tests are produced through
// httpsig.SignOptions.Override:
//
//	w := sigtest.Get(t, handler, "/status", sigtest.Options{
//	    Sign: httpsig.SignOptions{
//	        Signer:   signer,
//	        Override: httpsig.Override{Signature: "Zm9yZ2Vk"},
//	    },
//	})
package sigtest
