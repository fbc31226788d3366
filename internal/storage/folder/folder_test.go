package folder

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wms-report/internal/storage"
)

func TestStorage_ListWorkbooks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Store B.xlsx"), []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Store A.xls"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.xlsx"), 0o755))

	s, err := New(dir)
	require.NoError(t, err)

	list, err := s.ListWorkbooks(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "Store A", list[0].Name)
	assert.Equal(t, "Store A.xls", list[0].ID)
	assert.Equal(t, "Store B", list[1].Name)
	assert.False(t, list[1].ModifiedAt.IsZero())
}

func TestStorage_ListWorkbooks_Empty(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = s.ListWorkbooks(context.Background())
	assert.ErrorIs(t, err, storage.ErrInputUnavailable)
}

func TestStorage_SaveAndGet(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	wb, err := s.SaveWorkbook(ctx, "Store 1", []byte("content"))
	require.NoError(t, err)
	assert.Equal(t, "Store 1.xlsx", wb.ID)
	assert.Equal(t, "Store 1", wb.Name)

	got, content, err := s.GetWorkbook(ctx, wb.ID)
	require.NoError(t, err)
	assert.Equal(t, "content", string(content))
	assert.Equal(t, wb.ModifiedAt, got.ModifiedAt)

	// временные файлы не попадают в список
	list, err := s.ListWorkbooks(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestStorage_GetWorkbook_Invalid(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	for _, id := range []string{"", "../etc/passwd", "missing.xlsx", ".hidden.xlsx"} {
		_, _, err := s.GetWorkbook(context.Background(), id)
		assert.ErrorIs(t, err, storage.ErrInputUnavailable, id)
	}
}

func TestStorage_StatWorkbook(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	wb, err := s.SaveWorkbook(ctx, "Store 1.xlsx", []byte("content"))
	require.NoError(t, err)

	got, err := s.StatWorkbook(ctx, wb.ID)
	require.NoError(t, err)
	assert.Equal(t, wb, got)

	_, err = s.StatWorkbook(ctx, "missing.xlsx")
	assert.ErrorIs(t, err, storage.ErrInputUnavailable)
	_, err = s.StatWorkbook(ctx, "../up.xlsx")
	assert.ErrorIs(t, err, storage.ErrInputUnavailable)
}
