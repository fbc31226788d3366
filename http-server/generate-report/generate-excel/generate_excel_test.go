package generate_excel

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"wms-report/internal/storage"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateExcel(ctx context.Context, storeID string, date time.Time) ([]byte, error) {
	args := m.Called(ctx, storeID, date)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func TestGenerateReportExcel_Success(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("GenerateExcel", mock.Anything, "s1", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)).Return([]byte("PK"), nil)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/report/excel?store=s1&date=2026-01-05", nil)
	GenerateReportExcel(slog.Default(), gen).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "WMS_Report_2026-01-05.xlsx")
	assert.Equal(t, "PK", rr.Body.String())
}

func TestGenerateReportExcel_NoStore(t *testing.T) {
	gen := new(MockGenerator)

	rr := httptest.NewRecorder()
	GenerateReportExcel(slog.Default(), gen).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/report/excel?date=2026-01-05", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	gen.AssertNotCalled(t, "GenerateExcel")
}

func TestGenerateReportExcel_ServiceError(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("GenerateExcel", mock.Anything, "s1", mock.Anything).Return(nil, &storage.DataIntegrityError{Worker: "anna", ActionCode: "A1", Reason: "missing action start"})

	rr := httptest.NewRecorder()
	GenerateReportExcel(slog.Default(), gen).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/report/excel?store=s1&date=2026-01-05", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}
