package export

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"prodlog/internal/lib/api"
	"prodlog/internal/service/report"
	"prodlog/internal/storage"
)

type Exporter interface {
	Export(ctx context.Context, f storage.EntryFilter) ([]byte, error)
}

const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func ExportExcel(log *slog.Logger, exporter Exporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.production.export.ExportExcel"

		filter := api.EntryFilterFromQuery(r.URL.Query())

		// На Excel можно побольше времени
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		data, err := exporter.Export(ctx, filter)
		if err != nil {
			log.Error("failed to generate excel", slog.String("op", op), slog.String("error", err.Error()))
			api.Internal(w, r, "Server error generating report")
			return
		}

		w.Header().Set("Content-Type", contentTypeXLSX)
		w.Header().Set("Content-Disposition", "attachment; filename="+report.FileName(time.Now()))
		if _, err := w.Write(data); err != nil {
			log.Warn("client dropped excel download", slog.String("op", op), slog.String("error", err.Error()))
		}
	}
}
