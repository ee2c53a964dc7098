package save

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"prodlog/internal/constants"
	"prodlog/internal/lib/api"
	"prodlog/internal/lib/validate"
	"prodlog/internal/storage"
)

type Request struct {
	UserID        *int64  `json:"userId" validate:"required,gt=0"`
	Type          string  `json:"type" validate:"instruction_type"`
	TargetProcess string  `json:"targetProcess" validate:"target_process"`
	TargetStation string  `json:"targetStation" validate:"notblank"`
	Details       *string `json:"details"`
}

func init() {
	validate.RegisterStructValidation(instructionRules, Request{})
}

// instructionRules - станция зависит от целевого процесса, для "Custom message" нужен текст
func instructionRules(sl validator.StructLevel) {
	r := sl.Current().Interface().(Request)

	switch {
	case r.TargetStation == storage.AllStations:
	case r.TargetProcess == storage.AllProcesses:
		if !constants.IsAnyStation(r.TargetStation) {
			sl.ReportError(r.TargetStation, "targetStation", "TargetStation", validate.TagStation, "")
		}
	case constants.IsProcess(r.TargetProcess):
		stations := append([]string{storage.AllStations}, constants.StationsFor(r.TargetProcess)...)
		if !slices.Contains(stations, r.TargetStation) {
			sl.ReportError(r.TargetStation, "targetStation", "TargetStation", validate.TagStation, strings.Join(constants.StationsFor(r.TargetProcess), " "))
		}
	}

	if r.Type == constants.CustomMessage && (r.Details == nil || strings.TrimSpace(*r.Details) == "") {
		sl.ReportError(r.Details, "details", "Details", validate.TagCustomMessage, "")
	}
}

func (r Request) Validate() error {
	return validate.Struct(r)
}

type InstructionStore interface {
	GetUser(ctx context.Context, id int64) (storage.User, error)
	CreateInstruction(ctx context.Context, in storage.NewInstruction) (storage.Instruction, error)
}

func SaveInstruction(log *slog.Logger, store InstructionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.instructions.save.SaveInstruction"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.Error(w, r, http.StatusBadRequest, "Invalid instruction data")
			return
		}

		if err := req.Validate(); err != nil {
			api.ValidationError(w, r, "Invalid instruction data", err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		// отправитель должен быть из менеджмента
		sender, err := store.GetUser(ctx, *req.UserID)
		if errors.Is(err, storage.ErrUserNotFound) {
			api.ValidationError(w, r, "Invalid instruction data", validate.Errors{"userId": "unknown user"})
			return
		}
		if err != nil {
			log.Error("ошибка получения отправителя", slog.String("error", err.Error()))
			api.Internal(w, r, "Server error creating instruction")
			return
		}
		if sender.Role != storage.RoleManagement {
			api.ValidationError(w, r, "Invalid instruction data", validate.Errors{"userId": "sender must be a management user"})
			return
		}

		if req.Details != nil && *req.Details == "" {
			req.Details = nil
		}

		instruction, err := store.CreateInstruction(ctx, storage.NewInstruction{
			UserID:        *req.UserID,
			Type:          req.Type,
			TargetProcess: req.TargetProcess,
			TargetStation: req.TargetStation,
			Details:       req.Details,
		})
		if err != nil {
			log.Error("ошибка сохранения инструкции", slog.String("error", err.Error()))
			api.Internal(w, r, "Server error creating instruction")
			return
		}

		log.Info("instruction created",
			slog.Int64("instruction_id", instruction.ID),
			slog.String("target_process", instruction.TargetProcess),
			slog.String("target_station", instruction.TargetStation),
		)

		api.Created(w, r, instruction)
	}
}
