package picking

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"wms-report/internal/cache"
	"wms-report/internal/storage"
)

type MockSource struct {
	mock.Mock
}

func (m *MockSource) ListWorkbooks(ctx context.Context) ([]storage.Workbook, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.Workbook), args.Error(1)
}

func (m *MockSource) StatWorkbook(ctx context.Context, id string) (storage.Workbook, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(storage.Workbook), args.Error(1)
}

func (m *MockSource) GetWorkbook(ctx context.Context, id string) (storage.Workbook, []byte, error) {
	args := m.Called(ctx, id)
	content, _ := args.Get(1).([]byte)
	return args.Get(0).(storage.Workbook), content, args.Error(2)
}

func (m *MockSource) SaveWorkbook(ctx context.Context, name string, content []byte) (storage.Workbook, error) {
	args := m.Called(ctx, name, content)
	return args.Get(0).(storage.Workbook), args.Error(1)
}

var header = []interface{}{
	"Date", "Action start", "Action completion", "Name", "Action Code",
	"Code", "Unit", "Reporting Unit", "Quantity", "Relationship",
}

var dataRows = [][]interface{}{
	{"2026-01-05", "2026-01-05 08:00:00", "2026-01-05 08:10:00", "anna", "A1", "L1", "KILOGRAM", "", "20", ""},
	{"2026-01-05", "2026-01-05 08:05:00", "2026-01-05 08:15:00", "boris", "B1", "L2", "LITER", "", "10", ""},
	{"2026-01-06", "2026-01-06 09:00:00", "2026-01-06 09:30:00", "anna", "A2", "L3", "KILOGRAM", "", "60", ""},
	{"2026-01-04", "2026-01-04 07:00:00", "2026-01-04 07:20:00", "vera", "V1", "L4", "EACH", "", "1", ""},
}

func xlsx(t *testing.T, sheet string, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		require.NoError(t, f.SetSheetName("Sheet1", sheet))
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// stored отдает книгу id через StatWorkbook и GetWorkbook.
func stored(src *MockSource, wb storage.Workbook, content []byte) {
	src.On("StatWorkbook", mock.Anything, wb.ID).Return(wb, nil)
	src.On("GetWorkbook", mock.Anything, wb.ID).Return(wb, content, nil)
}

func newService(src *MockSource) *PickingService {
	return NewPickingService(slog.Default(), src, cache.NewRecords(8, time.Minute), "Input")
}

func day(d int) time.Time {
	return time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestPickingService_Records_Cached(t *testing.T) {
	src := new(MockSource)
	wb := storage.Workbook{ID: "s1", Name: "Store 1", ModifiedAt: day(5)}
	stored(src, wb, xlsx(t, "Input", append([][]interface{}{header}, dataRows...)))

	svc := newService(src)

	_, first, err := svc.Records(context.Background(), "s1")
	require.NoError(t, err)
	_, second, err := svc.Records(context.Background(), "s1")
	require.NoError(t, err)

	assert.Len(t, first, 4)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, svc.cache.Len())
	// при попадании в кеш содержимое не скачивается
	src.AssertNumberOfCalls(t, "StatWorkbook", 2)
	src.AssertNumberOfCalls(t, "GetWorkbook", 1)
}

func TestPickingService_Records_NewVersionRefetched(t *testing.T) {
	content := xlsx(t, "Input", append([][]interface{}{header}, dataRows...))
	old := storage.Workbook{ID: "s1", Name: "Store 1", ModifiedAt: day(5)}
	fresh := storage.Workbook{ID: "s1", Name: "Store 1", ModifiedAt: day(6)}

	src := new(MockSource)
	src.On("StatWorkbook", mock.Anything, "s1").Return(old, nil).Once()
	src.On("StatWorkbook", mock.Anything, "s1").Return(fresh, nil).Once()
	src.On("GetWorkbook", mock.Anything, "s1").Return(old, content, nil).Once()
	src.On("GetWorkbook", mock.Anything, "s1").Return(fresh, content, nil).Once()

	svc := newService(src)

	_, _, err := svc.Records(context.Background(), "s1")
	require.NoError(t, err)
	wb, _, err := svc.Records(context.Background(), "s1")
	require.NoError(t, err)

	assert.Equal(t, fresh, wb)
	assert.Equal(t, 2, svc.cache.Len())
	src.AssertExpectations(t)
}

func TestPickingService_Records_NotSelected(t *testing.T) {
	src := new(MockSource)
	svc := newService(src)

	_, _, err := svc.Records(context.Background(), "")
	assert.ErrorIs(t, err, storage.ErrInputUnavailable)
	src.AssertNotCalled(t, "StatWorkbook")
	src.AssertNotCalled(t, "GetWorkbook")
}

func TestPickingService_Dates(t *testing.T) {
	src := new(MockSource)
	stored(src, storage.Workbook{ID: "s1"}, xlsx(t, "Input", append([][]interface{}{header}, dataRows...)))

	dates, err := newService(src).Dates(context.Background(), "s1")
	require.NoError(t, err)

	assert.Equal(t, []time.Time{day(4), day(5), day(6)}, dates)
}

func TestPickingService_Report(t *testing.T) {
	src := new(MockSource)
	stored(src, storage.Workbook{ID: "s1", Name: "Store 1"}, xlsx(t, "Input", append([][]interface{}{header}, dataRows...)))

	wb, rep, err := newService(src).Report(context.Background(), "s1", day(5))
	require.NoError(t, err)

	assert.Equal(t, "Store 1", wb.Name)
	require.Len(t, rep.Workers, 2)
	assert.Equal(t, "Anna", rep.Workers[0].Name)
	assert.Equal(t, 15*time.Minute, rep.Team.TotalPickingTime)
	assert.Equal(t, 20.0, rep.Team.TotalKg)
	assert.Equal(t, 10.0, rep.Team.TotalL)
}

func TestPickingService_Report_SourceError(t *testing.T) {
	src := new(MockSource)
	src.On("StatWorkbook", mock.Anything, "gone").
		Return(storage.Workbook{}, storage.ErrInputUnavailable)

	_, _, err := newService(src).Report(context.Background(), "gone", day(5))
	assert.ErrorIs(t, err, storage.ErrInputUnavailable)
	src.AssertNotCalled(t, "GetWorkbook")
}

func TestPickingService_Summary(t *testing.T) {
	src := new(MockSource)
	stored(src, storage.Workbook{ID: "s1"}, xlsx(t, "Input", append([][]interface{}{header}, dataRows...)))

	summary, err := newService(src).Summary(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, summary, 3)

	assert.Equal(t, day(4), summary[0].Date)
	assert.Equal(t, "04/01", summary[0].Label)
	assert.Equal(t, 2, summary[1].Workers)
	assert.Equal(t, 15*time.Minute, summary[1].Team.TotalPickingTime)
	assert.Equal(t, 30*time.Minute, summary[2].Team.TotalPickingTime)
}

func TestPickingService_Summary_BrokenDayKeepsOthers(t *testing.T) {
	rows := append([][]interface{}{header}, dataRows...)
	rows = append(rows, []interface{}{"2026-01-06", "2026-01-06 10:00:00", "2026-01-06 09:00:00", "anna", "A9", "L9", "EACH", "", "1", ""})

	src := new(MockSource)
	stored(src, storage.Workbook{ID: "s1"}, xlsx(t, "Input", rows))

	summary, err := newService(src).Summary(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, summary, 3)

	// 06/01 с битой строкой, соседние дни посчитаны
	assert.Empty(t, summary[0].Error)
	assert.Equal(t, 20*time.Minute, summary[0].Team.TotalPickingTime)
	assert.Empty(t, summary[1].Error)
	assert.Equal(t, 15*time.Minute, summary[1].Team.TotalPickingTime)

	assert.Equal(t, day(6), summary[2].Date)
	assert.Equal(t, "06/01", summary[2].Label)
	assert.Contains(t, summary[2].Error, "A9")
	assert.Zero(t, summary[2].Workers)
	assert.Zero(t, summary[2].Team.TotalPickingTime)
}

func TestPickingService_Report_IntegrityError(t *testing.T) {
	rows := append([][]interface{}{header}, dataRows...)
	rows = append(rows, []interface{}{"2026-01-06", "2026-01-06 10:00:00", "2026-01-06 09:00:00", "anna", "A9", "L9", "EACH", "", "1", ""})

	src := new(MockSource)
	stored(src, storage.Workbook{ID: "s1"}, xlsx(t, "Input", rows))

	_, _, err := newService(src).Report(context.Background(), "s1", day(6))

	var integrity *storage.DataIntegrityError
	require.True(t, errors.As(err, &integrity))
	assert.Equal(t, "A9", integrity.ActionCode)
}

func TestPickingService_SaveStore(t *testing.T) {
	content := xlsx(t, "Input", append([][]interface{}{header}, dataRows...))
	saved := storage.Workbook{ID: "new", Name: "Store 9"}

	src := new(MockSource)
	src.On("SaveWorkbook", mock.Anything, "Store 9.xlsx", content).Return(saved, nil)

	wb, err := newService(src).SaveStore(context.Background(), "Store 9.xlsx", content)
	require.NoError(t, err)
	assert.Equal(t, saved, wb)
	src.AssertExpectations(t)
}

func TestPickingService_SaveStore_RejectsWrongLayout(t *testing.T) {
	src := new(MockSource)

	_, err := newService(src).SaveStore(context.Background(), "bad.xlsx", xlsx(t, "Other", [][]interface{}{header}))
	assert.ErrorIs(t, err, storage.ErrSheetNotFound)
	src.AssertNotCalled(t, "SaveWorkbook")
}

func TestPickingService_Upload(t *testing.T) {
	content := xlsx(t, "Sheet1", append([][]interface{}{header}, dataRows...))
	svc := newService(new(MockSource))

	dates, err := svc.UploadDates(context.Background(), bytes.NewReader(content))
	require.NoError(t, err)
	assert.Len(t, dates, 3)

	rep, err := svc.UploadReport(context.Background(), bytes.NewReader(content), day(6))
	require.NoError(t, err)
	require.Len(t, rep.Workers, 1)
	assert.Equal(t, 60.0, rep.Workers[0].Kilograms)
}
