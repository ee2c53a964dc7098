package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"prodlog/internal/lib/api"
	"prodlog/internal/service/auth"
	"prodlog/internal/storage"
)

type Request struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Authenticator interface {
	Login(ctx context.Context, username, password string) (storage.User, error)
}

func Login(log *slog.Logger, authenticator Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.login.Login"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Warn("Invalid JSON", slog.String("error", err.Error()))
			api.Error(w, r, http.StatusBadRequest, "Invalid JSON")
			return
		}

		if req.Username == "" || req.Password == "" {
			api.Error(w, r, http.StatusBadRequest, "Username and password are required")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, err := authenticator.Login(ctx, req.Username, req.Password)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Info("неудачный вход", slog.String("username", req.Username))
			api.Error(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		if err != nil {
			log.Error("ошибка входа", slog.String("error", err.Error()))
			api.Internal(w, r, "Server error during login")
			return
		}

		log.Info("user logged in", slog.Int64("user_id", user.ID), slog.String("role", user.Role))

		render.JSON(w, r, user)
	}
}
