package roamstay

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

type contextKey string

const principalContextKey = contextKey("principal")

const bearerPrefix = "Bearer "

// Protect guards a route for one principal kind. It validates the bearer
// token, resolves the id it carries against the kind's credential store,
// and attaches the password-stripped principal to the request context. Any
// failure ends the request with 401; each request is judged independently.
func Protect[P Principal](issuer *TokenIssuer, accounts Repository[P], logger zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			logger.Warn().Msg("auth failed - no token provided")
			writeError(w, http.StatusUnauthorized, "Not authorized, no token")
			return
		}

		id, err := issuer.Verify(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			logger.Warn().Err(err).Msg("auth failed - token rejected")
			writeError(w, http.StatusUnauthorized, "Token not valid")
			return
		}

		// A deleted account fails here, which is what invalidates tokens
		// issued before the deletion.
		p, err := accounts.FindByID(id)
		if err != nil {
			logger.Warn().Str("id", string(id)).Msg("auth failed - account not found for token")
			writeError(w, http.StatusUnauthorized, "Not authorized")
			return
		}
		p.sanitize()

		ctx := context.WithValue(r.Context(), principalContextKey, p)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func principalFromContext[P Principal](ctx context.Context) (P, bool) {
	p, ok := ctx.Value(principalContextKey).(P)
	return p, ok
}

// CORS allows the configured frontend origin to call the API from a
// browser.
func CORS(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
