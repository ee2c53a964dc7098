package save

import (
	"context"
	"encoding/json"
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
	UserID     *int64 `json:"userId" validate:"required,gt=0"`
	OperatorID string `json:"operatorId" validate:"notblank"`
	Process    string `json:"process" validate:"process"`
	Station    string `json:"station" validate:"notblank"`
	Time       string `json:"time" validate:"shift"`
}

func init() {
	validate.RegisterStructValidation(stationForProcess, Request{})
}

// stationForProcess - станцию сверяем с набором процесса, только если процесс известен
func stationForProcess(sl validator.StructLevel) {
	r := sl.Current().Interface().(Request)

	if !constants.IsProcess(r.Process) {
		return
	}

	stations := constants.StationsFor(r.Process)
	if !slices.Contains(stations, r.Station) {
		sl.ReportError(r.Station, "station", "Station", validate.TagStation, strings.Join(stations, " "))
	}
}

func (r Request) Validate() error {
	return validate.Struct(r)
}

type EntryCreator interface {
	CreateProductionEntry(ctx context.Context, e storage.NewProductionEntry) (storage.ProductionEntry, error)
}

func SaveEntry(log *slog.Logger, creator EntryCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.production.save.SaveEntry"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Warn("Invalid JSON", slog.String("error", err.Error()))
			api.Error(w, r, http.StatusBadRequest, "Invalid production entry data")
			return
		}

		if err := req.Validate(); err != nil {
			api.ValidationError(w, r, "Invalid production entry data", err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		entry, err := creator.CreateProductionEntry(ctx, storage.NewProductionEntry{
			UserID:     *req.UserID,
			OperatorID: req.OperatorID,
			Process:    req.Process,
			Station:    req.Station,
			Time:       req.Time,
		})
		if err != nil {
			log.Error("ошибка сохранения записи выпуска", slog.String("error", err.Error()))
			api.Internal(w, r, "Server error creating production entry")
			return
		}

		log.Info("production entry created",
			slog.Int64("entry_id", entry.ID),
			slog.String("process", entry.Process),
			slog.String("station", entry.Station),
		)

		api.Created(w, r, entry)
	}
}
