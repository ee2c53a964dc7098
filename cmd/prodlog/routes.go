package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/rs/cors"

	"prodlog/http-server/auth/login"
	getinstructions "prodlog/http-server/instructions/get"
	saveinstruction "prodlog/http-server/instructions/save"
	"prodlog/http-server/production/details"
	"prodlog/http-server/production/export"
	getproduction "prodlog/http-server/production/get"
	saveproduction "prodlog/http-server/production/save"
	"prodlog/http-server/production/summary"
	getreference "prodlog/http-server/reference/get"
	getuser "prodlog/http-server/users/get"
	saveuser "prodlog/http-server/users/save"
	"prodlog/internal/config"
	"prodlog/internal/metrics"
	"prodlog/internal/middleware/auth"
	authservice "prodlog/internal/service/auth"
	"prodlog/internal/service/report"
	"prodlog/internal/storage"
)

func routes(cfg config.Config, log *slog.Logger, store storage.Store, authService *authservice.Service, reports *report.Service, m *metrics.Metrics) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins, // фронтенд
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	//ip пользователя
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	// метрики снаружи Recoverer, чтобы паника считалась как 500
	router.Use(m.Middleware)
	router.Use(middleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})
	router.Handle("/metrics", m.Handler())

	router.Post("/api/auth/login", login.Login(log, authService))
	router.Get("/api/users/{id}", getuser.GetUser(log, store))

	router.Get("/api/reference-data", getreference.GetReferenceData())

	// Журнал выпуска
	router.Post("/api/production", saveproduction.SaveEntry(log, store))
	router.Get("/api/production", getproduction.GetEntries(log, store))
	router.Get("/api/production/summary", summary.GetSummary(log, reports))
	router.Get("/api/production/export", export.ExportExcel(log, reports))
	router.Get("/api/production/{id}", getproduction.GetEntry(log, store))
	router.Post("/api/production/{entryId}/details", details.AddDetail(log, store))

	// Инструкции от менеджмента
	router.Post("/api/instructions", saveinstruction.SaveInstruction(log, store))
	router.Get("/api/instructions", getinstructions.GetInstructions(log, store))

	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Post("/users", saveuser.SaveUser(log, authService))

	router.Mount("/api/admin", adminRouter)

	return router
}
