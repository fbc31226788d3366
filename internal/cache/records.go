package cache

import (
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"wms-report/internal/storage"
)

// Records кэш разобранных строк книги. Ключ включает время изменения,
// поэтому перезаписанная книга читается заново и без ожидания TTL.
type Records struct {
	lru *expirable.LRU[string, []storage.ActionRecord]
}

func NewRecords(size int, ttl time.Duration) *Records {
	if size <= 0 {
		size = 32
	}
	return &Records{lru: expirable.NewLRU[string, []storage.ActionRecord](size, nil, ttl)}
}

func Key(wb storage.Workbook) string {
	return fmt.Sprintf("%s@%d", wb.ID, wb.ModifiedAt.UnixNano())
}

func (c *Records) Get(wb storage.Workbook) ([]storage.ActionRecord, bool) {
	return c.lru.Get(Key(wb))
}

func (c *Records) Add(wb storage.Workbook, records []storage.ActionRecord) {
	c.lru.Add(Key(wb), records)
}

func (c *Records) Len() int {
	return c.lru.Len()
}
