package storage

import (
	"errors"
	"fmt"
)

var (
	ErrInputUnavailable = errors.New("no source data available")
	ErrSheetNotFound    = errors.New("sheet not found")
	ErrColumnMissing    = errors.New("column missing")
)

// DataIntegrityError битая строка: нечитаемое время или конец раньше начала.
type DataIntegrityError struct {
	Row        int
	Worker     string
	ActionCode string
	Reason     string
}

func (e *DataIntegrityError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("data integrity: row %d (worker %q, action %q): %s", e.Row, e.Worker, e.ActionCode, e.Reason)
	}
	return fmt.Sprintf("data integrity: worker %q, action %q: %s", e.Worker, e.ActionCode, e.Reason)
}
