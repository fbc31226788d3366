package folder

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"wms-report/internal/storage"
)

// Storage книги складов в каталоге на диске. ID книги это имя файла.
type Storage struct {
	dir string
}

func New(dir string) (*Storage, error) {
	const op = "storage.folder.New"

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{dir: dir}, nil
}

func (s *Storage) ListWorkbooks(ctx context.Context) ([]storage.Workbook, error) {
	const op = "storage.folder.ListWorkbooks"

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var workbooks []storage.Workbook
	for _, e := range entries {
		if e.IsDir() || !isWorkbook(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", op, e.Name(), err)
		}
		workbooks = append(workbooks, storage.Workbook{
			ID:         e.Name(),
			Name:       storage.StoreName(e.Name()),
			ModifiedAt: info.ModTime().UTC(),
		})
	}

	if len(workbooks) == 0 {
		return nil, fmt.Errorf("%s: no workbooks in %s: %w", op, s.dir, storage.ErrInputUnavailable)
	}

	sort.Slice(workbooks, func(i, j int) bool { return workbooks[i].Name < workbooks[j].Name })

	return workbooks, nil
}

// StatWorkbook метаданные книги без чтения файла.
func (s *Storage) StatWorkbook(ctx context.Context, id string) (storage.Workbook, error) {
	const op = "storage.folder.StatWorkbook"

	wb, _, err := s.stat(id)
	if err != nil {
		return storage.Workbook{}, fmt.Errorf("%s: %w", op, err)
	}

	return wb, nil
}

func (s *Storage) GetWorkbook(ctx context.Context, id string) (storage.Workbook, []byte, error) {
	const op = "storage.folder.GetWorkbook"

	wb, path, err := s.stat(id)
	if err != nil {
		return storage.Workbook{}, nil, fmt.Errorf("%s: %w", op, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return storage.Workbook{}, nil, fmt.Errorf("%s: %w", op, err)
	}

	return wb, content, nil
}

func (s *Storage) stat(id string) (storage.Workbook, string, error) {
	path, err := s.path(id)
	if err != nil {
		return storage.Workbook{}, "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return storage.Workbook{}, "", fmt.Errorf("%s: %w", id, storage.ErrInputUnavailable)
		}
		return storage.Workbook{}, "", err
	}

	return storage.Workbook{
		ID:         id,
		Name:       storage.StoreName(id),
		ModifiedAt: info.ModTime().UTC(),
	}, path, nil
}

// SaveWorkbook перезаписывает файл склада. Запись идет через временный
// файл, чтобы читатели не увидели половину книги.
func (s *Storage) SaveWorkbook(ctx context.Context, name string, content []byte) (storage.Workbook, error) {
	const op = "storage.folder.SaveWorkbook"

	fileName := filepath.Base(name)
	if !isWorkbook(fileName) {
		fileName = storage.StoreName(fileName) + ".xlsx"
	}
	path, err := s.path(fileName)
	if err != nil {
		return storage.Workbook{}, fmt.Errorf("%s: %w", op, err)
	}

	tmp := filepath.Join(s.dir, "."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return storage.Workbook{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return storage.Workbook{}, fmt.Errorf("%s: %w", op, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return storage.Workbook{}, fmt.Errorf("%s: %w", op, err)
	}

	return storage.Workbook{
		ID:         fileName,
		Name:       storage.StoreName(fileName),
		ModifiedAt: info.ModTime().UTC(),
	}, nil
}

func (s *Storage) path(id string) (string, error) {
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return "", fmt.Errorf("invalid workbook id %q: %w", id, storage.ErrInputUnavailable)
	}
	return filepath.Join(s.dir, id), nil
}

func isWorkbook(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return (ext == ".xlsx" || ext == ".xls") && !strings.HasPrefix(name, ".")
}
