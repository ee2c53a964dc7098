package get

import (
	"net/http"

	"github.com/go-chi/render"

	"prodlog/internal/constants"
)

type Response struct {
	Processes         []string            `json:"processes"`
	Models            []string            `json:"models"`
	Times             []string            `json:"times"`
	StationsByProcess map[string][]string `json:"stationsByProcess"`
	InstructionTypes  []string            `json:"instructionTypes"`
}

// GetReferenceData отдает справочники: процессы, модели, смены, станции
func GetReferenceData() http.HandlerFunc {
	resp := Response{
		Processes:         constants.Processes,
		Models:            constants.Models,
		Times:             constants.Times,
		StationsByProcess: constants.StationsByProcess(),
		InstructionTypes:  constants.InstructionTypes,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, resp)
	}
}
