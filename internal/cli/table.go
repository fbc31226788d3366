package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"wms-report/internal/service/render"
	"wms-report/internal/service/report"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#4472C4")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	nameStyle   = cellStyle.Bold(true)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2F5496"))
)

const avgColumn = 8

func workersTable(rep *report.Report) string {
	rows := make([][]string, 0, len(rep.Workers))
	tiers := make([]render.Tier, 0, len(rep.Workers))
	for _, w := range rep.Workers {
		rows = append(rows, []string{
			w.Name,
			render.FormatDuration(w.PickingTime),
			fmt.Sprintf("%d", w.RequestsFulfilled),
			fmt.Sprintf("%.2f", w.RequestsPerMinute),
			fmt.Sprintf("%.2f", w.Kilograms),
			fmt.Sprintf("%.2f", w.Liters),
			fmt.Sprintf("%.2f", w.KgPerMin),
			fmt.Sprintf("%.2f", w.LPerMin),
			fmt.Sprintf("%.3f", w.AvgPerMin),
		})
		tiers = append(tiers, render.AvgTier(w.AvgPerMin))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("Picker", "Picking Time", "Requests fulfilled", "Requests per minute",
			"Kilograms", "Liters", "Kg per min", "L per min", "Avg per min").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return nameStyle
			case col == avgColumn && row >= 0 && row < len(tiers):
				return cellStyle.Bold(true).Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color(tiers[row].Color))
			default:
				return cellStyle
			}
		})

	return t.Render()
}

func statsTable(rep *report.Report) string {
	team := rep.Team
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("Statistics for "+render.FormatDay(rep.Date), "").
		Rows(
			[]string{"Total Picking Time", render.FormatDuration(team.TotalPickingTime)},
			[]string{"Total Requests", fmt.Sprintf("%d", team.TotalRequests)},
			[]string{"Avg Requests per minute", fmt.Sprintf("%.2f", team.AvgRequestsPerMinute)},
			[]string{"Total Kg", fmt.Sprintf("%.2f", team.TotalKg)},
			[]string{"Total L", fmt.Sprintf("%.2f", team.TotalL)},
			[]string{"Avg Kg per min", fmt.Sprintf("%.2f", team.AvgKgPerMin)},
			[]string{"Avg L per min", fmt.Sprintf("%.2f", team.AvgLPerMin)},
			[]string{"Avg per min", fmt.Sprintf("%.3f", team.AvgPerMin)},
			[]string{"Picking finish", render.FormatFinish(team.PickingFinish)},
		).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	return t.Render()
}
