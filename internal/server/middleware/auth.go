package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/inkwell-journal/inkwell/internal/common"
	"github.com/inkwell-journal/inkwell/internal/server/auth"
)

type contextKey string

// UserIDKey is the request-context key under which RequireAuth stores the
// authenticated user id.
const UserIDKey contextKey = "userID"

type AuthMiddleware struct {
	secretKey []byte
}

func NewAuthMiddleware(secret []byte) *AuthMiddleware {
	return &AuthMiddleware{secretKey: secret}
}

// RequireAuth rejects requests without a valid bearer token and stores the
// token's user id in the request context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get(common.AuthorizationHeaderName)
		if !strings.HasPrefix(authz, common.BearerPrefix) {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}
		tokenStr := strings.TrimPrefix(authz, common.BearerPrefix)

		userID, err := auth.GetUserIDFromToken(tokenStr, m.secretKey)
		if err != nil {
			if errors.Is(err, common.ErrTokenExpired) {
				http.Error(w, "token expired", http.StatusUnauthorized)
				return
			}
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID extracts the authenticated user id stored by RequireAuth.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserIDKey).(int64)
	return id, ok
}
