package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func protected(user, pass string) http.Handler {
	return BasicAuth(user, pass)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestBasicAuth(t *testing.T) {
	cases := []struct {
		name     string
		cfgUser  string
		cfgPass  string
		setCreds bool
		user     string
		pass     string
		want     int
	}{
		{"valid credentials", "admin", "secret", true, "admin", "secret", http.StatusNoContent},
		{"wrong password", "admin", "secret", true, "admin", "nope", http.StatusUnauthorized},
		{"wrong user", "admin", "secret", true, "root", "secret", http.StatusUnauthorized},
		{"no header", "admin", "secret", false, "", "", http.StatusUnauthorized},
		{"admin disabled", "", "", true, "", "", http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/admin/users", nil)
			if tc.setCreds {
				req.SetBasicAuth(tc.user, tc.pass)
			}

			rr := httptest.NewRecorder()
			protected(tc.cfgUser, tc.cfgPass).ServeHTTP(rr, req)

			assert.Equal(t, tc.want, rr.Code)
			if tc.want == http.StatusUnauthorized {
				assert.Equal(t, `Basic realm="Admin Area"`, rr.Header().Get("WWW-Authenticate"))
			}
		})
	}
}
