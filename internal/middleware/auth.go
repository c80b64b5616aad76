package middleware

import (
	"context"
	"errors"
	"net/http"

	"portableworkout-web/internal/observability"
	"portableworkout-web/internal/session"
	"portableworkout-web/internal/shopapi"
)

type contextKey string

const (
	userContextKey  contextKey = "auth_user"
	tokenContextKey contextKey = "auth_token"
)

// IdentityProbe confirms a bearer token is still live and resolves its user.
type IdentityProbe interface {
	Me(ctx context.Context, token string) (*shopapi.User, error)
}

// RequireAuth gates a route group on a live backend identity. A visitor
// without a token is sent to the login page. A visitor whose token the
// backend no longer accepts has the session destroyed and lands on the home
// page; the probe also fails closed when the backend is unreachable, since an
// unverifiable token cannot gate a protected page.
func RequireAuth(store *session.Store, probe IdentityProbe) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := store.Get(r)
			if !sess.HasToken() {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			user, err := probe.Me(r.Context(), sess.Token)
			if err != nil {
				log := observability.FromContext(r.Context())
				if errors.Is(err, shopapi.ErrUnauthorized) {
					log.Info("Session token rejected by backend, signing visitor out")
				} else {
					log.Error("Identity probe failed, signing visitor out", "error", err)
				}

				store.Destroy(w)
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}

			ctx := observability.WithUserID(r.Context(), user.ID)
			ctx = context.WithValue(ctx, userContextKey, user)
			ctx = context.WithValue(ctx, tokenContextKey, sess.Token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFrom returns the authenticated user placed in the context by
// RequireAuth, or nil outside a protected route.
func UserFrom(ctx context.Context) *shopapi.User {
	user, _ := ctx.Value(userContextKey).(*shopapi.User)
	return user
}

// TokenFrom returns the verified bearer token, or "" outside a protected
// route.
func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey).(string)
	return token
}
