package ingest

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"wms-report/internal/storage"
)

const DefaultSheet = "Input"

// Колонки листа Input. Для загрузки с фиксированным диапазоном A:J
// используется этот же порядок.
const (
	colDate = iota
	colStart
	colCompletion
	colName
	colActionCode
	colCode
	colUnit
	colReportingUnit
	colQuantity
	colRelationship
	columnCount
)

var headers = [columnCount]string{
	colDate:          "Date",
	colStart:         "Action start",
	colCompletion:    "Action completion",
	colName:          "Name",
	colActionCode:    "Action Code",
	colCode:          "Code",
	colUnit:          "Unit",
	colReportingUnit: "Reporting Unit",
	colQuantity:      "Quantity",
	colRelationship:  "Relationship",
}

// Через точку день идет первым, через косую черту первым идет месяц,
// как в выгрузке WMS, и для четырех, и для двух цифр года.
var timeLayouts = []string{
	time.DateTime,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/06 15:04:05",
	"1/2/06 15:04",
	time.DateOnly,
	"02.01.2006",
	"1/2/2006",
	"1/2/06",
}

// ParseInput читает лист sheet книги из хранилища. Колонки ищутся по
// заголовкам первой строки, их порядок не важен.
func ParseInput(r io.Reader, sheet string) ([]storage.ActionRecord, error) {
	const op = "ingest.ParseInput"

	if sheet == "" {
		sheet = DefaultSheet
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%s: open workbook: %w", op, err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("%s: %q: %w", op, sheet, storage.ErrSheetNotFound)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%s: read rows: %w", op, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %q is empty: %w", op, sheet, storage.ErrColumnMissing)
	}

	positions, err := locateColumns(rows[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return parseRows(rows[1:], 2, positions)
}

// ParseUpload читает загруженный файл: первый лист, диапазон A2:J,
// до первой пустой строки.
func ParseUpload(r io.Reader) ([]storage.ActionRecord, error) {
	const op = "ingest.ParseUpload"

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%s: open workbook: %w", op, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrSheetNotFound)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%s: read rows: %w", op, err)
	}

	var data [][]string
	for i := 1; i < len(rows); i++ {
		if blank(rows[i], columnCount) {
			break
		}
		data = append(data, rows[i])
	}

	var positions [columnCount]int
	for i := range positions {
		positions[i] = i
	}

	return parseRows(data, 2, positions)
}

func locateColumns(header []string) ([columnCount]int, error) {
	var positions [columnCount]int

	found := make(map[string]int, len(header))
	for i, h := range header {
		found[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var missing []string
	for col, name := range headers {
		i, ok := found[strings.ToLower(name)]
		if !ok {
			missing = append(missing, name)
			continue
		}
		positions[col] = i
	}
	if len(missing) > 0 {
		return positions, fmt.Errorf("%s: %w", strings.Join(missing, ", "), storage.ErrColumnMissing)
	}

	return positions, nil
}

func parseRows(rows [][]string, firstRow int, positions [columnCount]int) ([]storage.ActionRecord, error) {
	records := make([]storage.ActionRecord, 0, len(rows))

	for i, cells := range rows {
		row := firstRow + i
		get := func(col int) string {
			p := positions[col]
			if p >= len(cells) {
				return ""
			}
			return strings.TrimSpace(cells[p])
		}

		rec := storage.ActionRecord{
			Row:           row,
			Worker:        get(colName),
			ActionCode:    get(colActionCode),
			Code:          get(colCode),
			Unit:          get(colUnit),
			ReportingUnit: get(colReportingUnit),
		}

		// полностью пустые строки внизу листа пропускаем
		if rec.Worker == "" && rec.ActionCode == "" && get(colDate) == "" {
			continue
		}

		fail := func(reason string) error {
			return &storage.DataIntegrityError{
				Row:        row,
				Worker:     rec.Worker,
				ActionCode: rec.ActionCode,
				Reason:     reason,
			}
		}

		var err error
		if rec.StartTime, err = parseTime(get(colStart)); err != nil {
			return nil, fail("action start: " + err.Error())
		}
		if rec.EndTime, err = parseTime(get(colCompletion)); err != nil {
			return nil, fail("action completion: " + err.Error())
		}

		date, err := parseTime(get(colDate))
		if err != nil {
			return nil, fail("date: " + err.Error())
		}
		rec.Date = storage.Day(date)

		if q := get(colQuantity); q != "" {
			if rec.Quantity, err = strconv.ParseFloat(q, 64); err != nil {
				return nil, fail(fmt.Sprintf("quantity %q is not a number", q))
			}
		}
		if rel := get(colRelationship); rel != "" {
			v, err := strconv.ParseFloat(rel, 64)
			if err != nil {
				return nil, fail(fmt.Sprintf("relationship %q is not a number", rel))
			}
			rec.Relationship = &v
		}

		records = append(records, rec)
	}

	return records, nil
}

// parseTime понимает серийные даты Excel и текст в распространенных форматах.
func parseTime(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, errors.New("empty value")
	}

	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, fmt.Errorf("serial %q: %w", v, err)
		}
		return t.Round(time.Second), nil
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", v)
}

func blank(cells []string, width int) bool {
	for i := 0; i < len(cells) && i < width; i++ {
		if strings.TrimSpace(cells[i]) != "" {
			return false
		}
	}
	return true
}
