package save

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"wms-report/http-server/response"
	"wms-report/internal/storage"
)

type StoreSaver interface {
	SaveStore(ctx context.Context, name string, content []byte) (storage.Workbook, error)
}

// SaveStore принимает multipart поле file и кладет книгу в хранилище.
func SaveStore(log *slog.Logger, saver StoreSaver, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.stores.SaveStore"

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		file, header, err := r.FormFile("file")
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Warn("Missing upload")
			http.Error(w, "Missing workbook file in form field 'file'", http.StatusBadRequest)
			return
		}
		defer file.Close()

		content, err := io.ReadAll(file)
		if err != nil {
			http.Error(w, "Failed to read upload", http.StatusBadRequest)
			return
		}

		name := r.FormValue("name")
		if name == "" {
			name = header.Filename
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		wb, err := saver.SaveStore(ctx, name, content)
		if err != nil {
			response.Error(w, r, log, op, err)
			return
		}

		log.Info("workbook saved", slog.String("op", op), slog.String("store", wb.Name), slog.String("id", wb.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, wb)
	}
}
