package report

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	datesget "wms-report/http-server/dates/get"
	"wms-report/http-server/response"
	"wms-report/internal/service/report"
)

type UploadReporter interface {
	UploadDates(ctx context.Context, r io.Reader) ([]time.Time, error)
	UploadReport(ctx context.Context, r io.Reader, date time.Time) (*report.Report, error)
}

// UploadReport считает отчет по загруженному файлу без сохранения.
// Без ?date= возвращает дни, найденные в файле.
func UploadReport(log *slog.Logger, reporter UploadReporter, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.upload.UploadReport"

		date, hasDate, err := response.ParseDate(r)
		if err != nil {
			http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		file, _, err := r.FormFile("file")
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Warn("Missing upload")
			http.Error(w, "Missing workbook file in form field 'file'", http.StatusBadRequest)
			return
		}
		defer file.Close()

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		if !hasDate {
			dates, err := reporter.UploadDates(ctx, file)
			if err != nil {
				response.Error(w, r, log, op, err)
				return
			}
			render.JSON(w, r, datesget.NewResponseDates(dates))
			return
		}

		rep, err := reporter.UploadReport(ctx, file, date)
		if err != nil {
			response.Error(w, r, log, op, err)
			return
		}

		render.JSON(w, r, rep)
	}
}
