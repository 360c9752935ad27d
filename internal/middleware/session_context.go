package middleware

import (
	"context"
	"net/http"

	"pet-companion/internal/platform/apperrors"
	"pet-companion/internal/session"
)

type ctxKey string

const userKey ctxKey = "user"

// RequireSession corta con 401 si no hay sesión y, si la hay,
// deja el usuario en el context para los handlers.
func RequireSession(s *session.Container) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := s.Current()
			if !ok {
				apperrors.WriteError(w, apperrors.Unauthorized(""))
				return
			}
			ctx := context.WithValue(r.Context(), userKey, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUser(ctx context.Context) (session.User, bool) {
	v := ctx.Value(userKey)
	if v == nil {
		return session.User{}, false
	}
	u, ok := v.(session.User)
	return u, ok
}
