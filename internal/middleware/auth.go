package middleware

import (
	"context"
	"net/http"

	"roleplay/api/internal/services"
	"roleplay/api/internal/utils"
)

const principalKey contextKey = "principal"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*services.Principal, error)
}

// RequireAuth rejects requests without a live bearer session with 401.
func RequireAuth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := utils.BearerToken(r)
			if err != nil {
				utils.JSONError(w, http.StatusUnauthorized, err.Error())
				return
			}
			principal, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				status := services.StatusOf(err)
				msg := err.Error()
				if status == http.StatusInternalServerError {
					msg = "internal server error"
				}
				utils.JSONError(w, status, msg)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

func WithPrincipal(ctx context.Context, p *services.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the caller set by RequireAuth.
func PrincipalFromContext(ctx context.Context) (*services.Principal, bool) {
	p, ok := ctx.Value(principalKey).(*services.Principal)
	return p, ok && p != nil
}
