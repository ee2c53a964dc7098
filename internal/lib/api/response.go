package api

import (
	"net/http"

	"github.com/go-chi/render"

	"prodlog/internal/lib/validate"
)

type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func Error(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Message: msg})
}

// ValidationError - 400 с ошибками по полям, если они есть в цепочке err
func ValidationError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	resp := ErrorResponse{Message: msg}
	if fields, ok := validate.AsErrors(err); ok {
		resp.Errors = fields
	}

	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, resp)
}

func NotFound(w http.ResponseWriter, r *http.Request, msg string) {
	Error(w, r, http.StatusNotFound, msg)
}

func Internal(w http.ResponseWriter, r *http.Request, msg string) {
	Error(w, r, http.StatusInternalServerError, msg)
}

func Created(w http.ResponseWriter, r *http.Request, v any) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, v)
}
