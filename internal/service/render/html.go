package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"wms-report/internal/service/report"
)

//go:embed templates/report.html
var templatesFS embed.FS

var reportTmpl = template.Must(
	template.New("report.html").Funcs(template.FuncMap{
		"duration": FormatDuration,
		"f2":       func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"f3":       func(v float64) string { return fmt.Sprintf("%.3f", v) },
		"pct":      func(v float64) string { return fmt.Sprintf("%.2f", v) },
	}).ParseFS(templatesFS, "templates/report.html"),
)

type bar struct {
	Percent float64
	Color   string
}

type row struct {
	report.WorkerStats
	TimeBar     bar
	RequestsBar bar
	KgBar       bar
	LitersBar   bar
	Tier        Tier
}

type page struct {
	Title  string
	Day    string
	Rows   []row
	Team   report.TeamStats
	Finish string
	Empty  bool
}

const (
	colorTime     = "#C65B5B"
	colorRequests = "#5B9BD5"
	colorKg       = "#FFC000"
	colorLiters   = "#70AD47"
)

// HTML рендерит таблицу сборщиков и панель статистики.
func HTML(w io.Writer, title string, rep *report.Report) error {
	const op = "service.render.HTML"

	if err := reportTmpl.Execute(w, buildPage(title, rep)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func buildPage(title string, rep *report.Report) page {
	var maxTime time.Duration
	var maxRequests int
	var maxKg, maxL float64
	for _, w := range rep.Workers {
		maxTime = max(maxTime, w.PickingTime)
		maxRequests = max(maxRequests, w.RequestsFulfilled)
		maxKg = max(maxKg, w.Kilograms)
		maxL = max(maxL, w.Liters)
	}

	rows := make([]row, 0, len(rep.Workers))
	for _, w := range rep.Workers {
		rows = append(rows, row{
			WorkerStats: w,
			TimeBar:     bar{BarPercent(w.PickingTime.Seconds(), maxTime.Seconds()), colorTime},
			RequestsBar: bar{BarPercent(float64(w.RequestsFulfilled), float64(maxRequests)), colorRequests},
			KgBar:       bar{BarPercent(w.Kilograms, maxKg), colorKg},
			LitersBar:   bar{BarPercent(w.Liters, maxL), colorLiters},
			Tier:        AvgTier(w.AvgPerMin),
		})
	}

	return page{
		Title:  title,
		Day:    FormatDay(rep.Date),
		Rows:   rows,
		Team:   rep.Team,
		Finish: FormatFinish(rep.Team.PickingFinish),
		Empty:  rep.Empty,
	}
}
