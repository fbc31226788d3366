package generate_excel

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"wms-report/internal/service/render"
	"wms-report/internal/service/report"
	"wms-report/internal/storage"
)

type ReportSource interface {
	Report(ctx context.Context, id string, date time.Time) (storage.Workbook, *report.Report, error)
}

type GenerateExcelService struct {
	source ReportSource
}

func NewGenerateService(source ReportSource) *GenerateExcelService {
	return &GenerateExcelService{source: source}
}

const sheet = "Report"

var headers = []string{
	"Picker", "Picking Time", "Requests fulfilled", "Requests per minute",
	"Kilograms", "Liters", "Kg per min", "L per min", "Avg per min",
}

// колонки с полосами и их цвета, как в html отчете
var dataBars = map[string]string{
	"B": "#C65B5B",
	"C": "#5B9BD5",
	"E": "#FFC000",
	"F": "#70AD47",
}

func (g *GenerateExcelService) GenerateExcel(ctx context.Context, storeID string, date time.Time) ([]byte, error) {
	const op = "service.generate_excel.GenerateExcel"

	wb, rep, err := g.source.Report(ctx, storeID, date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return Build(wb.Name, rep)
}

// Build собирает xlsx: таблица сборщиков и блок статистики под ней.
func Build(store string, rep *report.Report) ([]byte, error) {
	const op = "service.generate_excel.Build"

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// --- СТИЛИ ---
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border:    []excelize.Border{{Type: "bottom", Color: "2F5496", Style: 2}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: header style: %w", op, err)
	}
	nameStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"D6DCE4"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: name style: %w", op, err)
	}
	numFmt := "0.00"
	valueStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return nil, fmt.Errorf("%s: value style: %w", op, err)
	}
	tierStyles := make(map[string]int)
	for _, tier := range []render.Tier{render.TierTop, render.TierHigh, render.TierMedium, render.TierLow} {
		avgFmt := "0.000"
		id, err := f.NewStyle(&excelize.Style{
			Font:         &excelize.Font{Bold: true},
			Fill:         excelize.Fill{Type: "pattern", Color: []string{strings.TrimPrefix(tier.Color, "#")}, Pattern: 1},
			CustomNumFmt: &avgFmt,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: tier style: %w", op, err)
		}
		tierStyles[tier.Name] = id
	}

	// 1. ШАПКА
	title := fmt.Sprintf("%s %s", store, render.FormatDay(rep.Date))
	f.SetCellValue(sheet, "A1", title)
	for i, name := range headers {
		f.SetCellValue(sheet, cellName(i+1, 2), name)
	}
	f.SetCellStyle(sheet, "A2", cellName(len(headers), 2), headerStyle)

	// 2. СБОРЩИКИ
	for i, w := range rep.Workers {
		rowNum := i + 3
		f.SetCellValue(sheet, cellName(1, rowNum), w.Name)
		f.SetCellValue(sheet, cellName(2, rowNum), render.FormatDuration(w.PickingTime))
		f.SetCellValue(sheet, cellName(3, rowNum), w.RequestsFulfilled)
		f.SetCellValue(sheet, cellName(4, rowNum), w.RequestsPerMinute)
		f.SetCellValue(sheet, cellName(5, rowNum), w.Kilograms)
		f.SetCellValue(sheet, cellName(6, rowNum), w.Liters)
		f.SetCellValue(sheet, cellName(7, rowNum), w.KgPerMin)
		f.SetCellValue(sheet, cellName(8, rowNum), w.LPerMin)
		f.SetCellValue(sheet, cellName(9, rowNum), w.AvgPerMin)

		f.SetCellStyle(sheet, cellName(1, rowNum), cellName(1, rowNum), nameStyle)
		f.SetCellStyle(sheet, cellName(4, rowNum), cellName(8, rowNum), valueStyle)
		f.SetCellStyle(sheet, cellName(9, rowNum), cellName(9, rowNum), tierStyles[render.AvgTier(w.AvgPerMin).Name])
	}

	lastRow := len(rep.Workers) + 2
	if len(rep.Workers) > 0 {
		// время строкой для полосы не годится, поэтому рядом минуты
		for i, w := range rep.Workers {
			f.SetCellValue(sheet, cellName(len(headers)+1, i+3), w.PickingMinutes)
		}
		f.SetCellValue(sheet, cellName(len(headers)+1, 2), "Picking minutes")
		f.SetCellStyle(sheet, cellName(len(headers)+1, 2), cellName(len(headers)+1, 2), headerStyle)

		for col, color := range dataBars {
			barCol := col
			if col == "B" {
				barCol = "J"
			}
			err := f.SetConditionalFormat(sheet, fmt.Sprintf("%s3:%s%d", barCol, barCol, lastRow),
				[]excelize.ConditionalFormatOptions{
					{Type: "data_bar", Criteria: "=", MinType: "num", MinValue: "0", MaxType: "max", BarColor: color},
				},
			)
			if err != nil {
				return nil, fmt.Errorf("%s: data bar %s: %w", op, col, err)
			}
		}
	}

	// 3. СТАТИСТИКА
	statsRow := lastRow + 2
	f.SetCellValue(sheet, cellName(1, statsRow), "Statistics for "+render.FormatDay(rep.Date))
	team := rep.Team
	stats := []struct {
		name  string
		value interface{}
	}{
		{"Total Picking Time", render.FormatDuration(team.TotalPickingTime)},
		{"Total Requests", team.TotalRequests},
		{"Avg Requests per minute", team.AvgRequestsPerMinute},
		{"Total Kg", team.TotalKg},
		{"Total L", team.TotalL},
		{"Avg Kg per min", team.AvgKgPerMin},
		{"Avg L per min", team.AvgLPerMin},
		{"Avg per min", team.AvgPerMin},
		{"Picking finish", render.FormatFinish(team.PickingFinish)},
	}
	for i, st := range stats {
		f.SetCellValue(sheet, cellName(i+1, statsRow+1), st.name)
		f.SetCellValue(sheet, cellName(i+1, statsRow+2), st.value)
	}
	f.SetCellStyle(sheet, cellName(1, statsRow+1), cellName(len(stats), statsRow+1), headerStyle)
	f.SetCellStyle(sheet, cellName(3, statsRow+2), cellName(len(stats)-1, statsRow+2), valueStyle)

	// --- ФИНАЛЬНЫЕ ШТРИХИ ---
	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		XSplit:      1,
		YSplit:      2,
		TopLeftCell: "B3",
	})
	f.SetColWidth(sheet, "A", "A", 24)
	f.SetColWidth(sheet, "B", "J", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
