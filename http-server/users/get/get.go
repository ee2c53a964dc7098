package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"prodlog/internal/lib/api"
	"prodlog/internal/storage"
)

type UserProvider interface {
	GetUser(ctx context.Context, id int64) (storage.User, error)
}

func GetUser(log *slog.Logger, users UserProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.users.get.GetUser"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, ok := api.IDParam(r, "id")
		if !ok {
			api.NotFound(w, r, "User not found")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, err := users.GetUser(ctx, id)
		if errors.Is(err, storage.ErrUserNotFound) {
			api.NotFound(w, r, "User not found")
			return
		}
		if err != nil {
			log.Error("ошибка получения пользователя", slog.Int64("id", id), slog.String("error", err.Error()))
			api.Internal(w, r, "Server error fetching user")
			return
		}

		render.JSON(w, r, user)
	}
}
