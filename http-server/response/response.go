package response

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"wms-report/internal/storage"
)

const DateLayout = "2006-01-02"

type IntegrityError struct {
	Error      string `json:"error"`
	Row        int    `json:"row,omitempty"`
	Worker     string `json:"worker"`
	ActionCode string `json:"action_code"`
}

// ParseDate обязательный параметр ?date=YYYY-MM-DD.
func ParseDate(r *http.Request) (time.Time, bool, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return time.Time{}, false, nil
	}
	date, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, false, err
	}
	return date, true, nil
}

// Error переводит ошибки сервиса в HTTP ответ. Тексты для пользователя
// формируются только здесь.
func Error(w http.ResponseWriter, r *http.Request, log *slog.Logger, op string, err error) {
	log = log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("error", err.Error()),
	)

	var integrity *storage.DataIntegrityError
	switch {
	case errors.As(err, &integrity):
		log.Warn("data integrity error")
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, IntegrityError{
			Error:      "The source data has a broken row: " + integrity.Reason,
			Row:        integrity.Row,
			Worker:     integrity.Worker,
			ActionCode: integrity.ActionCode,
		})
	case errors.Is(err, storage.ErrInputUnavailable):
		log.Warn("no source data")
		http.Error(w, "No data found. Please select a store to continue", http.StatusNotFound)
	case errors.Is(err, storage.ErrSheetNotFound), errors.Is(err, storage.ErrColumnMissing):
		log.Warn("unexpected workbook layout")
		http.Error(w, "The workbook does not have the expected sheet or columns", http.StatusUnprocessableEntity)
	default:
		log.Error("request failed")
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}
