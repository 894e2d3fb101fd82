package auth

import (
	"net/http"

	"pdv/model"
)

// RequireAuth rejects requests without a live session and attaches the
// session to the request context for the wrapped handler.
func RequireAuth(store *SessionStore, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CookieName)
		if err != nil {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}
		sess, ok := store.Get(cookie.Value)
		if !ok {
			http.Error(w, "Session expired or invalid", http.StatusUnauthorized)
			return
		}
		next(w, withSession(r, sess))
	}
}

// RequireAdmin additionally gates the handler to the admin role. Inventory
// edits are the only admin-only surface; collaborators keep read/sell/notes.
func RequireAdmin(store *SessionStore, next http.HandlerFunc) http.HandlerFunc {
	return RequireAuth(store, func(w http.ResponseWriter, r *http.Request) {
		sess, _ := FromContext(r.Context())
		if sess.Role != model.RoleAdmin {
			http.Error(w, "Admin role required", http.StatusForbidden)
			return
		}
		next(w, r)
	})
}
