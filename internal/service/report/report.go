package report

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"wms-report/internal/storage"
)

// UniqueAction одно действие сборщика: первое начало и первое завершение
// по паре (сборщик, код действия).
type UniqueAction struct {
	Worker     string    `json:"worker"`
	ActionCode string    `json:"action_code"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
}

func (a UniqueAction) Duration() time.Duration {
	return a.EndTime.Sub(a.StartTime)
}

type WorkerStats struct {
	Name              string        `json:"name"`
	RequestsFulfilled int           `json:"requests_fulfilled"`
	Kilograms         float64       `json:"kilograms"`
	Liters            float64       `json:"liters"`
	PickingTime       time.Duration `json:"picking_time"`
	PickingMinutes    float64       `json:"picking_minutes"`
	RequestsPerMinute float64       `json:"requests_per_minute"`
	KgPerMin          float64       `json:"kg_per_min"`
	LPerMin           float64       `json:"l_per_min"`
	AvgPerMin         float64       `json:"avg_per_min"`
}

type TeamStats struct {
	TotalPickingTime     time.Duration `json:"total_picking_time"`
	TotalMinutes         float64       `json:"total_minutes"`
	TotalRequests        int           `json:"total_requests"`
	TotalKg              float64       `json:"total_kg"`
	TotalL               float64       `json:"total_l"`
	AvgRequestsPerMinute float64       `json:"avg_requests_per_minute"`
	AvgKgPerMin          float64       `json:"avg_kg_per_min"`
	AvgLPerMin           float64       `json:"avg_l_per_min"`
	AvgPerMin            float64       `json:"avg_per_min"`
	PickingFinish        time.Time     `json:"picking_finish"`
}

type Report struct {
	Date    time.Time     `json:"date"`
	Workers []WorkerStats `json:"workers"`
	Team    TeamStats     `json:"team"`
	// Empty за выбранный день нет ни одной строки.
	Empty bool `json:"empty"`
}

type workerAcc struct {
	name     string
	requests int
	kg       decimal.Decimal
	liters   decimal.Decimal
	picking  time.Duration
}

// ComputeReport считает отчет за день date. Функция чистая: входные записи
// не меняются, результат зависит только от аргументов.
func ComputeReport(records []storage.ActionRecord, date time.Time) (*Report, error) {
	day := FilterDay(records, date)

	rep := &Report{
		Date:    storage.Day(date),
		Workers: []WorkerStats{},
	}
	if len(day) == 0 {
		rep.Empty = true
		return rep, nil
	}

	for _, rec := range day {
		if err := validate(rec); err != nil {
			return nil, err
		}
	}

	actions := UniqueActions(day)
	// Caser хранит состояние, поэтому свой на каждый вызов
	titleCaser := cases.Title(language.Und)

	// сборщики в порядке первого появления во входных данных
	var order []string
	acc := make(map[string]*workerAcc)
	for _, rec := range day {
		key := workerKey(rec.Worker)
		w, ok := acc[key]
		if !ok {
			w = &workerAcc{name: titleCaser.String(strings.TrimSpace(rec.Worker))}
			acc[key] = w
			order = append(order, key)
		}
		w.requests++
		w.kg = w.kg.Add(convert(rec, UnitKilogram))
		w.liters = w.liters.Add(convert(rec, UnitLiter))

		if rec.EndTime.After(rep.Team.PickingFinish) {
			rep.Team.PickingFinish = rec.EndTime
		}
	}

	for _, a := range actions {
		acc[workerKey(a.Worker)].picking += a.Duration()
	}

	totalKg := decimal.Zero
	totalL := decimal.Zero
	for _, key := range order {
		w := acc[key]
		stats := WorkerStats{
			Name:              w.name,
			RequestsFulfilled: w.requests,
			Kilograms:         w.kg.InexactFloat64(),
			Liters:            w.liters.InexactFloat64(),
			PickingTime:       w.picking,
			PickingMinutes:    w.picking.Minutes(),
		}
		stats.RequestsPerMinute = perMinute(float64(stats.RequestsFulfilled), stats.PickingMinutes)
		stats.KgPerMin = perMinute(stats.Kilograms, stats.PickingMinutes)
		stats.LPerMin = perMinute(stats.Liters, stats.PickingMinutes)
		stats.AvgPerMin = stats.KgPerMin + stats.LPerMin
		rep.Workers = append(rep.Workers, stats)

		rep.Team.TotalRequests += w.requests
		totalKg = totalKg.Add(w.kg)
		totalL = totalL.Add(w.liters)
	}

	team := &rep.Team
	team.TotalPickingTime = TotalPickingTime(actions)
	team.TotalMinutes = team.TotalPickingTime.Minutes()
	team.TotalKg = totalKg.InexactFloat64()
	team.TotalL = totalL.InexactFloat64()
	team.AvgRequestsPerMinute = perMinute(float64(team.TotalRequests), team.TotalMinutes)
	team.AvgKgPerMin = perMinute(team.TotalKg, team.TotalMinutes)
	team.AvgLPerMin = perMinute(team.TotalL, team.TotalMinutes)
	team.AvgPerMin = team.AvgKgPerMin + team.AvgLPerMin

	return rep, nil
}

// FilterDay строки за календарный день date в исходном порядке.
func FilterDay(records []storage.ActionRecord, date time.Time) []storage.ActionRecord {
	var day []storage.ActionRecord
	for _, rec := range records {
		if storage.SameDay(rec.Date, date) {
			day = append(day, rec)
		}
	}
	return day
}

// UniqueActions сворачивает строки с одинаковым (сборщик, код действия)
// в одно действие. Берется первое встреченное начало и завершение.
func UniqueActions(records []storage.ActionRecord) []UniqueAction {
	type key struct{ worker, code string }

	seen := make(map[key]struct{})
	var actions []UniqueAction
	for _, rec := range records {
		k := key{workerKey(rec.Worker), rec.ActionCode}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		actions = append(actions, UniqueAction{
			Worker:     rec.Worker,
			ActionCode: rec.ActionCode,
			StartTime:  rec.StartTime,
			EndTime:    rec.EndTime,
		})
	}
	return actions
}

// TotalPickingTime время, когда собирал хотя бы один сборщик:
// объединение интервалов без двойного учета пересечений.
func TotalPickingTime(actions []UniqueAction) time.Duration {
	if len(actions) == 0 {
		return 0
	}

	sorted := make([]UniqueAction, len(actions))
	copy(sorted, actions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})

	var total time.Duration
	cumulativeEnd := sorted[0].StartTime
	for _, a := range sorted {
		effectiveStart := a.StartTime
		if cumulativeEnd.After(effectiveStart) {
			effectiveStart = cumulativeEnd
		}
		if a.EndTime.After(effectiveStart) {
			total += a.EndTime.Sub(effectiveStart)
		}
		if a.EndTime.After(cumulativeEnd) {
			cumulativeEnd = a.EndTime
		}
	}
	return total
}

func validate(rec storage.ActionRecord) error {
	var reason string
	switch {
	case rec.StartTime.IsZero():
		reason = "missing action start"
	case rec.EndTime.IsZero():
		reason = "missing action completion"
	case rec.EndTime.Before(rec.StartTime):
		reason = "action completion " + rec.EndTime.Format(time.DateTime) + " is before start " + rec.StartTime.Format(time.DateTime)
	case rec.Quantity < 0:
		reason = "negative quantity " + strconv.FormatFloat(rec.Quantity, 'f', -1, 64)
	case rec.Relationship != nil && *rec.Relationship < 0:
		reason = "negative relationship " + strconv.FormatFloat(*rec.Relationship, 'f', -1, 64)
	default:
		return nil
	}
	return &storage.DataIntegrityError{
		Row:        rec.Row,
		Worker:     rec.Worker,
		ActionCode: rec.ActionCode,
		Reason:     reason,
	}
}

func workerKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func perMinute(value, minutes float64) float64 {
	if minutes <= 0 {
		return 0
	}
	return value / minutes
}
