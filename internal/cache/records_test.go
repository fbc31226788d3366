package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wms-report/internal/storage"
)

func TestRecords_KeyedByFreshness(t *testing.T) {
	c := NewRecords(4, time.Minute)

	wb := storage.Workbook{ID: "store-1", ModifiedAt: time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)}
	c.Add(wb, []storage.ActionRecord{{Worker: "anna"}})

	got, ok := c.Get(wb)
	require.True(t, ok)
	assert.Equal(t, "anna", got[0].Worker)

	// та же книга после перезаписи
	wb.ModifiedAt = wb.ModifiedAt.Add(time.Second)
	_, ok = c.Get(wb)
	assert.False(t, ok)
}

func TestRecords_Expires(t *testing.T) {
	c := NewRecords(4, 20*time.Millisecond)

	wb := storage.Workbook{ID: "store-1"}
	c.Add(wb, []storage.ActionRecord{{Worker: "anna"}})

	assert.Eventually(t, func() bool {
		_, ok := c.Get(wb)
		return !ok
	}, time.Second, 10*time.Millisecond)
}
