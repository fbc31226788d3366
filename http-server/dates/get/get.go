package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"wms-report/http-server/response"
)

type DatesProvider interface {
	Dates(ctx context.Context, id string) ([]time.Time, error)
}

type Date struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type ResponseDates struct {
	Dates []Date `json:"dates"`
}

func NewResponseDates(dates []time.Time) ResponseDates {
	resp := ResponseDates{Dates: make([]Date, 0, len(dates))}
	for _, d := range dates {
		resp.Dates = append(resp.Dates, Date{
			Value: d.Format(response.DateLayout),
			Label: d.Format("02/01"),
		})
	}
	return resp
}

func GetDates(log *slog.Logger, provider DatesProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.dates.GetDates"

		id := chi.URLParam(r, "id")

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		dates, err := provider.Dates(ctx, id)
		if err != nil {
			response.Error(w, r, log, op, err)
			return
		}

		render.JSON(w, r, NewResponseDates(dates))
	}
}
