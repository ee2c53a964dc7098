package summary

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"prodlog/internal/lib/api"
	"prodlog/internal/service/report"
	"prodlog/internal/storage"
)

type Summarizer interface {
	Summary(ctx context.Context, f storage.EntryFilter) (report.Summary, error)
}

func GetSummary(log *slog.Logger, summarizer Summarizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.production.summary.GetSummary"

		filter := api.EntryFilterFromQuery(r.URL.Query())

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		sum, err := summarizer.Summary(ctx, filter)
		if err != nil {
			log.Error("ошибка построения сводки", slog.String("op", op), slog.String("error", err.Error()))
			api.Internal(w, r, "Server error building production summary")
			return
		}

		render.JSON(w, r, sum)
	}
}
