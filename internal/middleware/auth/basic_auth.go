package auth

import (
	"crypto/subtle"
	"net/http"

	"prodlog/internal/lib/api"
)

// BasicAuth закрывает админские маршруты. Пустой логин в конфиге отключает доступ полностью.
func BasicAuth(username, password string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if username == "" {
				requireAuth(w, r)
				return
			}

			user, pass, ok := r.BasicAuth()
			if !ok {
				requireAuth(w, r)
				return
			}

			userOK := subtle.ConstantTimeCompare([]byte(user), []byte(username)) == 1
			passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(password)) == 1
			if !userOK || !passOK {
				requireAuth(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func requireAuth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", `Basic realm="Admin Area"`)
	api.Error(w, r, http.StatusUnauthorized, "Unauthorized")
}
