package generate_excel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"wms-report/http-server/response"
	"wms-report/internal/storage"
)

type GenerateExcelHandler interface {
	GenerateExcel(ctx context.Context, storeID string, date time.Time) ([]byte, error)
}

func GenerateReportExcel(log *slog.Logger, gen GenerateExcelHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.GenerateReportExcel"

		storeID := r.URL.Query().Get("store")
		if storeID == "" {
			response.Error(w, r, log, op, fmt.Errorf("store is not selected: %w", storage.ErrInputUnavailable))
			return
		}

		date, ok, err := response.ParseDate(r)
		if err != nil {
			http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		if !ok {
			http.Error(w, "Please select a date to continue", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second) // На Excel можно побольше времени
		defer cancel()

		excelBytes, err := gen.GenerateExcel(ctx, storeID, date)
		if err != nil {
			response.Error(w, r, log, op, err)
			return
		}

		// ФОРМИРУЕМ ОТВЕТ
		fileName := fmt.Sprintf("WMS_Report_%s.xlsx", date.Format(response.DateLayout))

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		w.Write(excelBytes)
	}
}
