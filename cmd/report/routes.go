package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	getdates "wms-report/http-server/dates/get"
	generate_excel "wms-report/http-server/generate-report/generate-excel"
	getreport "wms-report/http-server/report/get"
	getstores "wms-report/http-server/stores/get"
	savestores "wms-report/http-server/stores/save"
	uploadreport "wms-report/http-server/upload/report"
	"wms-report/internal/config"
	"wms-report/internal/middleware/auth"
	"wms-report/internal/middleware/ratelimit"
	generate_excel2 "wms-report/internal/service/generate-excel"
	"wms-report/internal/service/picking"
)

func routes(cfg config.Config, log *slog.Logger, service *picking.PickingService, genService *generate_excel2.GenerateExcelService) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)
	router.Use(middleware.RequestID)
	//ip пользователя
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	uploads := ratelimit.New(cfg.RPS, cfg.Burst)

	router.Route("/api", func(r chi.Router) {
		r.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

		r.Get("/stores", getstores.GetStores(log, service))
		r.With(uploads.Handler).Post("/stores", savestores.SaveStore(log, service, cfg.MaxBytes))

		r.Get("/stores/{id}/dates", getdates.GetDates(log, service))
		r.Get("/stores/{id}/report", getreport.GetReport(log, service))
		r.Get("/stores/{id}/report/html", getreport.GetReportHTML(log, service))
		r.Get("/stores/{id}/summary", getreport.GetSummary(log, service))

		r.Get("/report/excel", generate_excel.GenerateReportExcel(log, genService))

		r.With(uploads.Handler).Post("/upload/report", uploadreport.UploadReport(log, service, cfg.MaxBytes))
	})

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return router
}
