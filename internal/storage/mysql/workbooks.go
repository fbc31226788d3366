package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"wms-report/internal/storage"
)

// ListWorkbooks последняя загрузка по каждому складу.
func (s *Storage) ListWorkbooks(ctx context.Context) ([]storage.Workbook, error) {
	const op = "storage.mysql.ListWorkbooks"

	rows, err := s.db.QueryContext(ctx, `
		SELECT w.id, w.name, w.uploaded_at
		FROM wms_workbooks w
		WHERE w.uploaded_at = (
			SELECT MAX(l.uploaded_at) FROM wms_workbooks l WHERE l.name = w.name
		)
		ORDER BY w.name ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения списка книг: %w", op, err)
	}
	defer rows.Close()

	var workbooks []storage.Workbook
	for rows.Next() {
		var wb storage.Workbook
		if err := rows.Scan(&wb.ID, &wb.Name, &wb.ModifiedAt); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		workbooks = append(workbooks, wb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(workbooks) == 0 {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrInputUnavailable)
	}

	return workbooks, nil
}

// StatWorkbook метаданные книги без содержимого.
func (s *Storage) StatWorkbook(ctx context.Context, id string) (storage.Workbook, error) {
	const op = "storage.mysql.StatWorkbook"

	var wb storage.Workbook
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, uploaded_at FROM wms_workbooks WHERE id = ?`, id,
	).Scan(&wb.ID, &wb.Name, &wb.ModifiedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Workbook{}, fmt.Errorf("%s: книга id=%s не найдена: %w", op, id, storage.ErrInputUnavailable)
		}
		return storage.Workbook{}, fmt.Errorf("%s: %w", op, err)
	}

	return wb, nil
}

func (s *Storage) GetWorkbook(ctx context.Context, id string) (storage.Workbook, []byte, error) {
	const op = "storage.mysql.GetWorkbook"

	var wb storage.Workbook
	var content []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, uploaded_at, content FROM wms_workbooks WHERE id = ?`, id,
	).Scan(&wb.ID, &wb.Name, &wb.ModifiedAt, &content)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Workbook{}, nil, fmt.Errorf("%s: книга id=%s не найдена: %w", op, id, storage.ErrInputUnavailable)
		}
		return storage.Workbook{}, nil, fmt.Errorf("%s: %w", op, err)
	}

	return wb, content, nil
}

// SaveWorkbook сохраняет новую версию книги склада name.
func (s *Storage) SaveWorkbook(ctx context.Context, name string, content []byte) (storage.Workbook, error) {
	const op = "storage.mysql.SaveWorkbook"

	wb := storage.Workbook{
		ID:         uuid.NewString(),
		Name:       storage.StoreName(name),
		ModifiedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO wms_workbooks (id, name, content, uploaded_at) VALUES (?, ?, ?, ?)`,
		wb.ID, wb.Name, content, wb.ModifiedAt,
	)
	if err != nil {
		return storage.Workbook{}, fmt.Errorf("%s: ошибка сохранения книги %s: %w", op, wb.Name, err)
	}

	return wb, nil
}
