package picking

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
	"wms-report/internal/cache"
	"wms-report/internal/ingest"
	"wms-report/internal/service/report"
	"wms-report/internal/storage"
)

type WorkbookSource interface {
	ListWorkbooks(ctx context.Context) ([]storage.Workbook, error)
	StatWorkbook(ctx context.Context, id string) (storage.Workbook, error)
	GetWorkbook(ctx context.Context, id string) (storage.Workbook, []byte, error)
	SaveWorkbook(ctx context.Context, name string, content []byte) (storage.Workbook, error)
}

type PickingService struct {
	source WorkbookSource
	cache  *cache.Records
	sheet  string
	log    *slog.Logger
}

func NewPickingService(log *slog.Logger, source WorkbookSource, records *cache.Records, sheet string) *PickingService {
	return &PickingService{
		source: source,
		cache:  records,
		sheet:  sheet,
		log:    log,
	}
}

// DaySummary итог команды за один день. Если в дне битая строка,
// заполнен Error, а показатели нулевые.
type DaySummary struct {
	Date    time.Time        `json:"date"`
	Label   string           `json:"label"`
	Workers int              `json:"workers"`
	Team    report.TeamStats `json:"team"`
	Error   string           `json:"error,omitempty"`
}

// summaryWorkers сколько дней считаются параллельно
const summaryWorkers = 4

func (s *PickingService) Stores(ctx context.Context) ([]storage.Workbook, error) {
	return s.source.ListWorkbooks(ctx)
}

func (s *PickingService) SaveStore(ctx context.Context, name string, content []byte) (storage.Workbook, error) {
	const op = "service.picking.SaveStore"

	// битую книгу не сохраняем
	if _, err := ingest.ParseInput(bytes.NewReader(content), s.sheet); err != nil {
		return storage.Workbook{}, fmt.Errorf("%s: %w", op, err)
	}

	wb, err := s.source.SaveWorkbook(ctx, name, content)
	if err != nil {
		return storage.Workbook{}, fmt.Errorf("%s: %w", op, err)
	}

	return wb, nil
}

// Records строки книги склада, разобранные один раз на версию книги.
func (s *PickingService) Records(ctx context.Context, id string) (storage.Workbook, []storage.ActionRecord, error) {
	const op = "service.picking.Records"

	if id == "" {
		return storage.Workbook{}, nil, fmt.Errorf("%s: store is not selected: %w", op, storage.ErrInputUnavailable)
	}

	// содержимое качаем только если этой версии книги нет в кеше
	meta, err := s.source.StatWorkbook(ctx, id)
	if err != nil {
		return storage.Workbook{}, nil, fmt.Errorf("%s: %w", op, err)
	}
	if records, ok := s.cache.Get(meta); ok {
		return meta, records, nil
	}

	wb, content, err := s.source.GetWorkbook(ctx, id)
	if err != nil {
		return storage.Workbook{}, nil, fmt.Errorf("%s: %w", op, err)
	}

	records, err := ingest.ParseInput(bytes.NewReader(content), s.sheet)
	if err != nil {
		return storage.Workbook{}, nil, fmt.Errorf("%s: %w", op, err)
	}
	s.cache.Add(wb, records)

	s.log.Debug("workbook parsed", slog.String("op", op), slog.String("store", wb.Name), slog.Int("rows", len(records)))

	return wb, records, nil
}

func (s *PickingService) Dates(ctx context.Context, id string) ([]time.Time, error) {
	_, records, err := s.Records(ctx, id)
	if err != nil {
		return nil, err
	}
	return Dates(records), nil
}

func (s *PickingService) Report(ctx context.Context, id string, date time.Time) (storage.Workbook, *report.Report, error) {
	const op = "service.picking.Report"

	wb, records, err := s.Records(ctx, id)
	if err != nil {
		return storage.Workbook{}, nil, err
	}

	rep, err := report.ComputeReport(records, date)
	if err != nil {
		return storage.Workbook{}, nil, fmt.Errorf("%s: %w", op, err)
	}

	return wb, rep, nil
}

// Summary командные показатели по каждому дню книги.
func (s *PickingService) Summary(ctx context.Context, id string) ([]DaySummary, error) {
	const op = "service.picking.Summary"

	_, records, err := s.Records(ctx, id)
	if err != nil {
		return nil, err
	}

	dates := Dates(records)
	summaries := make([]DaySummary, len(dates))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(summaryWorkers)
	for i, date := range dates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			summaries[i] = DaySummary{
				Date:  date,
				Label: date.Format("02/01"),
			}

			rep, err := report.ComputeReport(records, date)
			var integrity *storage.DataIntegrityError
			switch {
			case errors.As(err, &integrity):
				// битый день не мешает остальным
				s.log.Warn("day skipped", slog.String("op", op), slog.String("date", summaries[i].Label), slog.String("error", err.Error()))
				summaries[i].Error = integrity.Error()
				return nil
			case err != nil:
				return err
			}

			summaries[i].Workers = len(rep.Workers)
			summaries[i].Team = rep.Team
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return summaries, nil
}

// UploadDates дни, найденные в загруженном файле.
func (s *PickingService) UploadDates(ctx context.Context, r io.Reader) ([]time.Time, error) {
	const op = "service.picking.UploadDates"

	records, err := ingest.ParseUpload(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return Dates(records), nil
}

func (s *PickingService) UploadReport(ctx context.Context, r io.Reader, date time.Time) (*report.Report, error) {
	const op = "service.picking.UploadReport"

	records, err := ingest.ParseUpload(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rep, err := report.ComputeReport(records, date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return rep, nil
}

// Dates уникальные дни по возрастанию.
func Dates(records []storage.ActionRecord) []time.Time {
	seen := make(map[time.Time]struct{})
	var dates []time.Time
	for _, rec := range records {
		day := storage.Day(rec.Date)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		dates = append(dates, day)
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	return dates
}
