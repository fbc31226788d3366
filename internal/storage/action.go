package storage

import "time"

// ActionRecord одна строка листа Input.
type ActionRecord struct {
	Row           int       `json:"row"`
	Date          time.Time `json:"date"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Worker        string    `json:"worker"`
	ActionCode    string    `json:"action_code"`
	Code          string    `json:"code"`
	Unit          string    `json:"unit"`
	ReportingUnit string    `json:"reporting_unit,omitempty"`
	Quantity      float64   `json:"quantity"`
	Relationship  *float64  `json:"relationship,omitempty"`
}

// SameDay сравнивает только календарный день, часы и зона не учитываются.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Day обрезает время до полуночи UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
