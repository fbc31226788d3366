package report

import (
	"strings"

	"github.com/shopspring/decimal"
	"wms-report/internal/storage"
)

const (
	UnitKilogram = "KILOGRAM"
	UnitLiter    = "LITER"
)

// CalcKg вклад строки в килограммы.
func CalcKg(rec storage.ActionRecord) float64 {
	return convert(rec, UnitKilogram).InexactFloat64()
}

// CalcLiters вклад строки в литры.
func CalcLiters(rec storage.ActionRecord) float64 {
	return convert(rec, UnitLiter).InexactFloat64()
}

// convert переводит количество в target: напрямую по Unit, либо через
// Relationship, если в target задана единица отчёта.
func convert(rec storage.ActionRecord, target string) decimal.Decimal {
	if strings.EqualFold(strings.TrimSpace(rec.Unit), target) {
		return decimal.NewFromFloat(rec.Quantity)
	}
	if rec.Relationship != nil && strings.EqualFold(strings.TrimSpace(rec.ReportingUnit), target) {
		return decimal.NewFromFloat(rec.Quantity).Mul(decimal.NewFromFloat(*rec.Relationship))
	}
	return decimal.Zero
}
