package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"prodlog/internal/lib/api"
	"prodlog/internal/storage"
)

type InstructionProvider interface {
	GetInstructions(ctx context.Context, f storage.InstructionFilter) ([]storage.Instruction, error)
}

// GetInstructions - инструкции для процесса/станции, новые сверху. Фронт опрашивает периодически.
func GetInstructions(log *slog.Logger, provider InstructionProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.instructions.get.GetInstructions"

		filter := storage.InstructionFilter{
			TargetProcess: r.URL.Query().Get("targetProcess"),
			TargetStation: r.URL.Query().Get("targetStation"),
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := provider.GetInstructions(ctx, filter)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("ошибка получения инструкций")
			api.Internal(w, r, "Server error fetching instructions")
			return
		}

		if list == nil {
			list = []storage.Instruction{}
		}

		render.JSON(w, r, list)
	}
}
