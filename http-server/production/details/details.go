package details

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"prodlog/internal/lib/api"
	"prodlog/internal/lib/validate"
	"prodlog/internal/storage"
)

// Request - количество не меньше 0.1
type Request struct {
	Model    string   `json:"model" validate:"model"`
	Quantity *float64 `json:"quantity" validate:"required,gte=0.1"`
}

func (r Request) Validate() error {
	return validate.Struct(r)
}

type DetailStore interface {
	GetProductionEntryByID(ctx context.Context, id int64) (storage.ProductionEntryWithDetails, error)
	AddProductionDetail(ctx context.Context, d storage.NewProductionDetail) (storage.ProductionDetail, error)
}

// AddDetail прикрепляет позицию (модель, количество) к существующей записи.
// Существование записи проверяется здесь, хранилище этого не делает.
func AddDetail(log *slog.Logger, store DetailStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.production.details.AddDetail"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		entryID, ok := api.IDParam(r, "entryId")
		if !ok {
			api.NotFound(w, r, "Production entry not found")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		_, err := store.GetProductionEntryByID(ctx, entryID)
		if errors.Is(err, storage.ErrEntryNotFound) {
			api.NotFound(w, r, "Production entry not found")
			return
		}
		if err != nil {
			log.Error("ошибка получения записи выпуска", slog.Int64("entry_id", entryID), slog.String("error", err.Error()))
			api.Internal(w, r, "Server error adding production detail")
			return
		}

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.Error(w, r, http.StatusBadRequest, "Invalid production detail data")
			return
		}

		if err := req.Validate(); err != nil {
			api.ValidationError(w, r, "Invalid production detail data", err)
			return
		}

		detail, err := store.AddProductionDetail(ctx, storage.NewProductionDetail{
			EntryID:  entryID,
			Model:    req.Model,
			Quantity: *req.Quantity,
		})
		if err != nil {
			// запись остается без позиции, откат не делаем
			log.Error("ошибка добавления позиции", slog.Int64("entry_id", entryID), slog.String("error", err.Error()))
			api.Internal(w, r, "Server error adding production detail")
			return
		}

		log.Info("production detail added",
			slog.Int64("entry_id", entryID),
			slog.String("model", detail.Model),
			slog.Float64("quantity", detail.Quantity),
		)

		api.Created(w, r, detail)
	}
}
