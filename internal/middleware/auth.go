package middleware

import (
	"net/http"
	"strings"

	"github.com/fkaradag/digital-wallet/internal/auth"
	"github.com/fkaradag/digital-wallet/internal/domain"
	"github.com/fkaradag/digital-wallet/internal/handler"
	"github.com/fkaradag/digital-wallet/internal/logging"
)

// Auth verifies the bearer token and places the resolved principal in the
// request context. Core services never see tokens, only the principal.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				handler.RespondAppError(w, handler.ErrMissingToken, nil)
				return
			}

			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				handler.RespondAppError(w, handler.ErrInvalidToken, nil)
				return
			}

			claims, err := auth.ValidateToken(token, secret)
			if err != nil {
				handler.RespondAppError(w, handler.ErrInvalidToken, nil)
				return
			}

			p := domain.Principal{CustomerID: claims.CustomerID, Role: claims.Role}
			ctx := auth.ContextWithPrincipal(r.Context(), p)

			logger := logging.FromContext(ctx).With("customer_id", p.CustomerID, "role", p.Role)
			ctx = logging.WithLogger(ctx, logger)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
