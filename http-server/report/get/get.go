package get

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"wms-report/http-server/response"
	"wms-report/internal/service/picking"
	reportview "wms-report/internal/service/render"
	"wms-report/internal/service/report"
	"wms-report/internal/storage"
)

type ReportProvider interface {
	Report(ctx context.Context, id string, date time.Time) (storage.Workbook, *report.Report, error)
	Summary(ctx context.Context, id string) ([]picking.DaySummary, error)
}

type ResponseReport struct {
	Store string `json:"store"`
	Label string `json:"label"`
	*report.Report
}

type ResponseSummary struct {
	Days []picking.DaySummary `json:"days"`
}

func GetReport(log *slog.Logger, provider ReportProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.GetReport"

		wb, rep, ok := load(w, r, log, op, provider)
		if !ok {
			return
		}

		render.JSON(w, r, ResponseReport{
			Store:  wb.Name,
			Label:  reportview.FormatDay(rep.Date),
			Report: rep,
		})
	}
}

func GetReportHTML(log *slog.Logger, provider ReportProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.GetReportHTML"

		wb, rep, ok := load(w, r, log, op, provider)
		if !ok {
			return
		}

		var buf bytes.Buffer
		if err := reportview.HTML(&buf, wb.Name, rep); err != nil {
			response.Error(w, r, log, op, err)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(buf.Bytes())
	}
}

func GetSummary(log *slog.Logger, provider ReportProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.GetSummary"

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		days, err := provider.Summary(ctx, chi.URLParam(r, "id"))
		if err != nil {
			response.Error(w, r, log, op, err)
			return
		}

		render.JSON(w, r, ResponseSummary{Days: days})
	}
}

func load(w http.ResponseWriter, r *http.Request, log *slog.Logger, op string, provider ReportProvider) (storage.Workbook, *report.Report, bool) {
	date, ok, err := response.ParseDate(r)
	if err != nil {
		http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return storage.Workbook{}, nil, false
	}
	if !ok {
		http.Error(w, "Please select a date to continue", http.StatusBadRequest)
		return storage.Workbook{}, nil, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	wb, rep, err := provider.Report(ctx, chi.URLParam(r, "id"), date)
	if err != nil {
		response.Error(w, r, log, op, err)
		return storage.Workbook{}, nil, false
	}

	return wb, rep, true
}
