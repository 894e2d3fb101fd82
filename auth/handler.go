package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type loginPayload struct {
	Usuario string `json:"usuario"`
	Senha   string `json:"senha"`
}

// LoginHandler authenticates and opens a session, returned as an HttpOnly
// cookie plus a JSON body with the role and display name.
func LoginHandler(db *sqlx.DB, store *SessionStore, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		var payload loginPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		u, err := Authenticate(db, payload.Usuario, payload.Senha)
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				http.Error(w, "Usuário ou senha incorretos.", http.StatusUnauthorized)
				return
			}
			log.Errorw("login failed", "usuario", payload.Usuario, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		sess := store.Create(u.Usuario, u.Role, u.NomeExibicao)
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    sess.Token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			Expires:  sess.ExpiresAt,
		})
		log.Infow("user logged in", "usuario", u.Usuario, "role", u.Role)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sess)
	}
}

// LogoutHandler tears the session down and clears the cookie.
func LogoutHandler(store *SessionStore) http.HandlerFunc {
	return RequireAuth(store, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		sess, _ := FromContext(r.Context())
		store.Destroy(sess.Token)
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			MaxAge:   -1,
		})
		w.WriteHeader(http.StatusNoContent)
	})
}

// SessionHandler echoes the current session so the UI can restore state.
func SessionHandler(store *SessionStore) http.HandlerFunc {
	return RequireAuth(store, func(w http.ResponseWriter, r *http.Request) {
		sess, _ := FromContext(r.Context())
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sess)
	})
}
