package middleware

import (
	"context"
	"net/http"
	"strings"

	"lab-semillas/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// AuthContext:
// - Si verifier != nil y viene Bearer token => intenta Verify() y setea claims (con rol).
// - Si verifier == nil => modo dev: X-Debug-User-ID (username) y X-Debug-Role.
// - Si no hay claims, el request sigue igual; los handlers decidirán si exigen auth.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				uid := strings.TrimSpace(r.Header.Get("X-Debug-User-ID"))
				if uid == "" {
					next.ServeHTTP(w, r)
					return
				}
				claims := auth.Claims{
					UserID:   uid,
					Username: uid,
					Rol:      auth.ParseRol(r.Header.Get("X-Debug-Role")),
				}
				next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				// No cortamos aquí; el handler decide 401/403.
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
		})
	}
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(auth.Claims)
	return c, ok
}

// GetActor devuelve el actor del request. Sin claims o sin username no hay actor.
func GetActor(ctx context.Context) (auth.Actor, bool) {
	c, ok := GetClaims(ctx)
	if !ok {
		return auth.Actor{}, false
	}
	actor := auth.ActorFromClaims(c)
	if _, ok := actor.CurrentUsername(); !ok {
		return auth.Actor{}, false
	}
	return actor, true
}

func bearerToken(authHeader string) string {
	parts := strings.SplitN(strings.TrimSpace(authHeader), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
