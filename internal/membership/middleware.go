// internal/membership/middleware.go
package membership

import (
	"context"
	"net/http"
	"storefront/internal/apierr"
	"strings"

	"go.uber.org/zap"
)

type contextKey struct{}

// UserFromContext returns the user RequireBearer attached to ctx.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(contextKey{}).(*User)
	return user, ok
}

// ContextWithUser attaches user to ctx.
func ContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// RequireBearer rejects requests without a valid "Authorization: Bearer"
// header: 401 when it is missing, 400 when the token does not verify.
func RequireBearer(issuer *TokenIssuer, logger *zap.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			token = strings.TrimSpace(token)
			if !found || token == "" {
				apierr.WriteError(w, http.StatusUnauthorized, "Protected route, Oauth2 Bearer token not found")
				return
			}

			user, err := issuer.Verify(token)
			if err != nil {
				logger.Debug("rejected bearer token", zap.Error(err))
				apierr.WriteError(w, http.StatusBadRequest, "Invalid token, please login again")
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
		})
	}
}
