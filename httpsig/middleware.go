package httpsig

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// MiddlewareFunc wraps an http.Handler with signature verification. The
// shape is compatible with common router middleware registration.
type MiddlewareFunc func(next http.Handler) http.Handler

// MiddlewareConfig configures the server-side signature verification
// middleware.
type MiddlewareConfig struct {
	// Verify configures how signatures are verified.
	Verify VerifyOptions

	// Logger, when set, records rejected requests at Warn level and
	// accepted signatures at Debug level. Defaults to a no-op logger.
	Logger *zap.Logger

	// Realm is sent in the WWW-Authenticate challenge of the default
	// error response.
	Realm string

	// OnError is called when verification fails. When nil, a 401
	// Unauthorized response with a Signature challenge is sent.
	OnError func(w http.ResponseWriter, r *http.Request, err error)
}

type resultContextKey struct{}

// ResultFromContext returns the VerifyResult stored by the middleware
// after successful verification.
func ResultFromContext(ctx context.Context) (*VerifyResult, bool) {
	res, ok := ctx.Value(resultContextKey{}).(*VerifyResult)

	return res, ok
}

// Middleware returns a MiddlewareFunc that verifies draft-cavage HTTP
// signatures on incoming requests. The verification result is stored in
// the request context and can be retrieved with ResultFromContext.
//
// It returns ErrNoResolver if VerifyOptions.Resolver is nil.
func Middleware(cfg MiddlewareConfig) (MiddlewareFunc, error) {
	if cfg.Verify.Resolver == nil {
		return nil, ErrNoResolver
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	onError := cfg.OnError
	if onError == nil {
		onError = challengeOnError(cfg.Realm)
	}

	verifyOpts := cfg.Verify

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result, err := VerifyRequest(r, verifyOpts)
			if err != nil {
				logger.Warn("request signature rejected",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Error(err))

				onError(w, r, err)

				return
			}

			logger.Debug("request signature verified",
				zap.String("key_id", result.KeyID),
				zap.String("algorithm", result.Algorithm.String()))

			ctx := context.WithValue(r.Context(), resultContextKey{}, result)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}, nil
}

// challengeOnError returns the default error handler: a 401 response
// carrying a WWW-Authenticate Signature challenge.
func challengeOnError(realm string) func(http.ResponseWriter, *http.Request, error) {
	challenge := signatureScheme
	if realm != "" {
		challenge += " realm=" + quote(realm)
	}

	return func(w http.ResponseWriter, _ *http.Request, _ error) {
		w.Header().Set("WWW-Authenticate", challenge)
		w.WriteHeader(http.StatusUnauthorized)
	}
}
