package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"reportTracker/internal/models/user"
)

const userKey contextKey = "current_user"

// Authenticate resolves the X-User-ID header against the fixed account
// roster. Login is a selection, not authentication, so there is no
// password or token to verify.
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-User-ID")
		usr, ok := user.ByID(id)
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{
				"error":      "unknown_user",
				"message":    "the X-User-ID header does not match any account",
				"request_id": GetRequestID(r.Context()),
			})
			return
		}

		ctx := context.WithValue(r.Context(), userKey, usr)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentUser returns the roster user placed by Authenticate, or nil
// outside an authenticated route.
func CurrentUser(ctx context.Context) *user.User {
	if usr, ok := ctx.Value(userKey).(*user.User); ok {
		return usr
	}
	return nil
}

// RequireAdmin gates admin-only routes. It assumes Authenticate ran
// earlier in the chain.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		usr := CurrentUser(r.Context())
		if usr == nil || !usr.IsAdmin() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]any{
				"error":      "forbidden",
				"message":    "this operation requires an admin account",
				"request_id": GetRequestID(r.Context()),
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
