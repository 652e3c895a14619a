package auth

import (
	"log/slog"
	"net/http"

	"github.com/saasrevops/revenue-gateway/internal"
	"github.com/saasrevops/revenue-gateway/internal/transport"
)

// Guard gates route groups on the roles decoded from the caller's token.
type Guard struct {
	*transport.BaseHandler
}

func NewGuard(logger *slog.Logger) *Guard {
	return &Guard{BaseHandler: transport.NewBaseHandler(logger)}
}

// Authenticate extracts the bearer token, decodes its claims and stores both
// in the request context. The raw token rides along so upstream calls can
// forward it.
func (g *Guard) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := g.ExtractTokenFromHeader(r)
		if token == "" {
			g.WriteAppError(w, internal.ErrMissingToken)
			return
		}

		claims, err := DecodeClaims(token)
		if err != nil {
			g.Logger.Warn("token decode failed", "error", err)
			g.WriteAppError(w, internal.ErrInvalidToken)
			return
		}

		ctx := internal.ContextWithToken(r.Context(), token)
		ctx = ContextWithClaims(ctx, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAnyRole denies the request with an access-denied body unless the
// decoded claims carry at least one of the given roles.
func (g *Guard) RequireAnyRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				g.WriteAppError(w, internal.ErrMissingToken)
				return
			}

			if !claims.HasAnyRole(roles...) {
				g.Logger.Warn("access denied: insufficient role",
					"subject", claims.Subject,
					"required_roles", roles,
					"token_roles", claims.Roles)
				g.WriteAppError(w, internal.ErrAccessDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
