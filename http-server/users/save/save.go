package save

import (
	"context"
	"errors"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"prodlog/internal/lib/api"
	"prodlog/internal/lib/validate"
	"prodlog/internal/service/auth"
	"prodlog/internal/storage"
)

type Request struct {
	Username   string  `json:"username" validate:"notblank"`
	Password   string  `json:"password" validate:"notblank,maxbytes=72"`
	Name       string  `json:"name" validate:"notblank"`
	Role       string  `json:"role" validate:"oneof=operator management"`
	OperatorID *string `json:"operatorId"`
}

func init() {
	validate.RegisterStructValidation(operatorNeedsID, Request{})
}

func operatorNeedsID(sl validator.StructLevel) {
	r := sl.Current().Interface().(Request)

	if r.Role == storage.RoleOperator && (r.OperatorID == nil || *r.OperatorID == "") {
		sl.ReportError(r.OperatorID, "operatorId", "OperatorID", validate.TagOperatorID, "")
	}
}

func (r Request) Validate() error {
	return validate.Struct(r)
}

type UserRegistrar interface {
	Register(ctx context.Context, acc auth.Account) (storage.User, error)
}

func SaveUser(log *slog.Logger, registrar UserRegistrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.users.save.SaveUser"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.Error(w, r, http.StatusBadRequest, "Invalid JSON")
			return
		}

		if err := req.Validate(); err != nil {
			api.ValidationError(w, r, "Invalid user data", err)
			return
		}

		// у менеджмента нет operatorId
		if req.Role == storage.RoleManagement {
			req.OperatorID = nil
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, err := registrar.Register(ctx, auth.Account{
			Username:   req.Username,
			Password:   req.Password,
			Name:       req.Name,
			Role:       req.Role,
			OperatorID: req.OperatorID,
		})
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			api.ValidationError(w, r, "Invalid user data", validate.Errors{"password": "must be at most 72 bytes"})
			return
		}
		if err != nil {
			log.Error("ошибка создания пользователя", slog.String("error", err.Error()))
			api.Internal(w, r, "Server error creating user")
			return
		}

		log.Info("user created", slog.Int64("user_id", user.ID), slog.String("role", user.Role))

		api.Created(w, r, user)
	}
}
