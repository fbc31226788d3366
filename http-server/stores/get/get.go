package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"wms-report/http-server/response"
	"wms-report/internal/storage"
)

type StoreLister interface {
	Stores(ctx context.Context) ([]storage.Workbook, error)
}

type ResponseStores struct {
	Stores []storage.Workbook `json:"stores"`
}

func GetStores(log *slog.Logger, lister StoreLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.stores.GetStores"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		stores, err := lister.Stores(ctx)
		if err != nil {
			response.Error(w, r, log, op, err)
			return
		}

		render.JSON(w, r, ResponseStores{Stores: stores})
	}
}
