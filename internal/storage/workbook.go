package storage

import (
	"strings"
	"time"
)

type Workbook struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ModifiedAt time.Time `json:"modified_at"`
}

// StoreName имя склада без расширения файла.
func StoreName(fileName string) string {
	name := strings.TrimSuffix(fileName, ".xlsx")
	return strings.TrimSuffix(name, ".xls")
}
