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

type EntryProvider interface {
	GetProductionEntries(ctx context.Context, f storage.EntryFilter) ([]storage.ProductionEntryWithDetails, error)
	GetProductionEntryByID(ctx context.Context, id int64) (storage.ProductionEntryWithDetails, error)
}

// GetEntries - список записей с позициями, фильтры из query: userId, process, station, startDate, endDate.
// Порядок - порядок создания, сортировку по свежести делает клиент.
func GetEntries(log *slog.Logger, entries EntryProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.production.get.GetEntries"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		filter := api.EntryFilterFromQuery(r.URL.Query())

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := entries.GetProductionEntries(ctx, filter)
		if err != nil {
			log.Error("ошибка получения записей выпуска", slog.String("error", err.Error()))
			api.Internal(w, r, "Server error fetching production entries")
			return
		}

		if list == nil {
			list = []storage.ProductionEntryWithDetails{}
		}

		log.Debug("entries fetched", slog.Int("count", len(list)))

		render.JSON(w, r, list)
	}
}

func GetEntry(log *slog.Logger, entries EntryProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.production.get.GetEntry"

		id, ok := api.IDParam(r, "id")
		if !ok {
			api.NotFound(w, r, "Production entry not found")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		entry, err := entries.GetProductionEntryByID(ctx, id)
		if errors.Is(err, storage.ErrEntryNotFound) {
			api.NotFound(w, r, "Production entry not found")
			return
		}
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("ошибка получения записи выпуска")
			api.Internal(w, r, "Server error fetching production entry")
			return
		}

		render.JSON(w, r, entry)
	}
}
