package auth

import (
	"net/http"
	"strings"

	"github.com/diewo77/go-press/httpx"
)

// ActorVerifier is an optional callback to validate that a token's user still exists.
// Set it during app bootstrap via SetActorVerifier. If nil, no extra verification is performed.
type ActorVerifier func(r *http.Request, a Actor) bool

var verifier ActorVerifier

// SetActorVerifier configures the global verifier used by Middleware.
func SetActorVerifier(v ActorVerifier) { verifier = v }

// bearerToken returns the token of an "Authorization: Bearer <token>" header.
func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Middleware attaches the actor to the request context when a bearer token is present.
// Requests without a token pass through as anonymous; a token that fails
// verification is rejected with 401 rather than silently downgraded.
func Middleware(tokens TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			actor, err := tokens.Verify(raw)
			if err != nil || (verifier != nil && !verifier(r, actor)) {
				httpx.JSONError(w, http.StatusUnauthorized, "invalid_token", nil)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// RequireAuth returns 401 JSON if the request carries no actor.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ActorFromContext(r.Context()); !ok {
			httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
