package cli

import (
	"errors"
	"fmt"
	"os"

	"wms-report/internal/ingest"
	"wms-report/internal/storage"
)

var (
	sourceFile  string
	sourceSheet string
	fromUpload  bool
)

// loadRecords читает файл либо как книгу склада (лист по заголовкам),
// либо как загрузку с фиксированным диапазоном.
func loadRecords() ([]storage.ActionRecord, error) {
	if sourceFile == "" {
		return nil, fmt.Errorf("--file is required: %w", storage.ErrInputUnavailable)
	}

	f, err := os.Open(sourceFile)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", sourceFile, err)
	}
	defer f.Close()

	if fromUpload {
		return ingest.ParseUpload(f)
	}
	return ingest.ParseInput(f, sourceSheet)
}

// describe текст ошибки для человека.
func describe(err error) string {
	var integrity *storage.DataIntegrityError
	switch {
	case errors.As(err, &integrity):
		return fmt.Sprintf("broken row %d (worker %s, action %s): %s",
			integrity.Row, integrity.Worker, integrity.ActionCode, integrity.Reason)
	case errors.Is(err, storage.ErrInputUnavailable):
		return "no source data, select a file with --file"
	default:
		return err.Error()
	}
}
