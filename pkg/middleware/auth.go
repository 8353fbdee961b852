package middleware

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"roamify/pkg/auth"
	apperrors "roamify/pkg/errors"
	httputil "roamify/pkg/http"
	"roamify/pkg/logger"
)

// Authenticate verifies a bearer token when one is presented and threads the
// resulting identity through the request context. Requests without a token
// pass through anonymous; per-route guards decide whether that is acceptable.
// A presented-but-invalid token is always a 401.
func Authenticate(verifier *auth.TokenVerifier, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			identity, err := verifier.Verify(token)
			if err != nil {
				log.Warn("Token verification failed",
					"request_id", requestIDFromContext(r.Context()),
					"path", r.URL.Path,
				)
				_ = httputil.WriteError(w, apperrors.Unauthorized("Token is not valid"))
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.ContextWithIdentity(r.Context(), identity)))
		})
	}
}

// RequireAuth guards a route: 401 unless the request carries an identity.
func RequireAuth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if _, ok := auth.IdentityFromContext(r.Context()); !ok {
			_ = httputil.WriteError(w, apperrors.Unauthorized("Authentication required"))
			return
		}
		next(w, r, ps)
	}
}

// RequireListingManager guards host-facing routes: host or admin only.
func RequireListingManager(next httprouter.Handle) httprouter.Handle {
	return RequireAuth(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		identity, _ := auth.IdentityFromContext(r.Context())
		if !identity.Role.CanManageListings() {
			_ = httputil.WriteError(w, apperrors.Forbidden("Host privileges required"))
			return
		}
		next(w, r, ps)
	})
}
