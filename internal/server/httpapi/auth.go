package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/dwitter/internal/common"
	"github.com/dmitrijs2005/dwitter/internal/logging"
	"github.com/dmitrijs2005/dwitter/internal/server/models"
)

const authErrorMessage = "Authentication Error"

// Authenticator verifies bearer tokens and resolves the user they refer to.
type Authenticator interface {
	VerifyToken(token string) (string, error)
	GetPrincipalByID(ctx context.Context, id string) (*models.Principal, error)
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is matched exactly and the token must be non-empty.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != common.BearerScheme || token == "" || strings.Contains(token, " ") {
		return "", false
	}
	return token, true
}

// RequireAuth rejects requests without a valid bearer token with
// 401 {"message":"Authentication Error"}. Otherwise the principal and token are
// attached to the request context.
func RequireAuth(a Authenticator, logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			header := r.Header.Get(common.AuthorizationHeaderName)
			if header == "" {
				writeMessage(w, http.StatusUnauthorized, authErrorMessage)
				return
			}

			token, ok := bearerToken(header)
			if !ok {
				writeMessage(w, http.StatusUnauthorized, authErrorMessage)
				return
			}

			userID, err := a.VerifyToken(token)
			if err != nil {
				logger.Debug(ctx, "token rejected", "error", err)
				writeMessage(w, http.StatusUnauthorized, authErrorMessage)
				return
			}

			p, err := a.GetPrincipalByID(ctx, userID)
			if err != nil {
				logger.Debug(ctx, "principal lookup failed", "user_id", userID, "error", err)
				writeMessage(w, http.StatusUnauthorized, authErrorMessage)
				return
			}

			ctx = logging.WithAttrs(WithPrincipal(ctx, *p, token), "user_id", p.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
