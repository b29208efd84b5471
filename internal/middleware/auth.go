package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/zhouzirui/mindcare/backend/internal/auth"
	"github.com/zhouzirui/mindcare/backend/internal/model/profile"
	"github.com/zhouzirui/mindcare/backend/pkg/utils"
)

type contextKey string

const userIDKey contextKey = "mindcare.userID"

// TokenVerifier is satisfied by *auth.Service.
type TokenVerifier interface {
	VerifyToken(token string) (*auth.Claims, error)
}

// RequireUser rejects requests without a valid bearer token. Browsers
// navigating to a page are redirected to signInURL; API callers get 401 JSON
// carrying the same URL. The token may also arrive as the "token" query
// parameter because browsers cannot set headers on a WebSocket upgrade.
func RequireUser(verifier TokenVerifier, signInURL string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				deny(w, r, signInURL, "authentication required")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				deny(w, r, signInURL, "invalid or expired token")
				return
			}

			ctx := WithUserID(r.Context(), claims.Subject)
			ctx = profile.WithClaimedName(ctx, claims.Subject, claims.Name)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithUserID stores the authenticated user id on ctx.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the id stored by RequireUser.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

func deny(w http.ResponseWriter, r *http.Request, signInURL, message string) {
	if wantsHTML(r) {
		http.Redirect(w, r, signInURL, http.StatusFound)
		return
	}
	utils.RespondJSON(w, http.StatusUnauthorized, map[string]string{
		"error":     message,
		"signInUrl": signInURL,
	})
}

func wantsHTML(r *http.Request) bool {
	if r.Method != http.MethodGet {
		return false
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		if token := strings.TrimSpace(header[7:]); token != "" {
			return token
		}
	}
	return strings.TrimSpace(r.URL.Query().Get("token"))
}
