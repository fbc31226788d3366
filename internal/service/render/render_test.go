package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wms-report/internal/service/report"
)

func TestAvgTier(t *testing.T) {
	tests := []struct {
		value float64
		want  Tier
	}{
		{10.0, TierTop},
		{15.3, TierTop},
		{9.99, TierHigh},
		{7.0, TierHigh},
		{6.99, TierMedium},
		{5.0, TierMedium},
		{4.99, TierLow},
		{0, TierLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, AvgTier(tt.value), "value %v", tt.value)
	}
}

func TestBarPercent(t *testing.T) {
	assert.Equal(t, 50.0, BarPercent(5, 10))
	assert.Equal(t, 100.0, BarPercent(10, 10))
	assert.Equal(t, 0.0, BarPercent(3, 0))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:00:00", FormatDuration(0))
	assert.Equal(t, "1:02:03", FormatDuration(time.Hour+2*time.Minute+3*time.Second))
	assert.Equal(t, "26:00:59", FormatDuration(26*time.Hour+59*time.Second+900*time.Millisecond))
}

func TestFormatFinish(t *testing.T) {
	finish := time.Date(2026, 1, 5, 14, 7, 9, 0, time.UTC)

	assert.Equal(t, "02:07:09 PM", FormatFinish(finish))
	assert.Equal(t, "", FormatFinish(time.Time{}))
	assert.Equal(t, "05/01", FormatDay(finish))
}

func TestHTML(t *testing.T) {
	rep := &report.Report{
		Date: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		Workers: []report.WorkerStats{
			{Name: "Anna", RequestsFulfilled: 10, Kilograms: 200, PickingTime: 20 * time.Minute, AvgPerMin: 10},
			{Name: "Boris", RequestsFulfilled: 5, Liters: 30, PickingTime: 10 * time.Minute, AvgPerMin: 3},
		},
		Team: report.TeamStats{
			TotalPickingTime: 25 * time.Minute,
			TotalRequests:    15,
			PickingFinish:    time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, "Store 1", rep))
	out := buf.String()

	assert.Contains(t, out, "Statistics for 05/01")
	assert.Contains(t, out, "Anna")
	assert.Contains(t, out, "0:20:00")
	assert.Contains(t, out, "0:25:00")
	assert.Contains(t, out, "09:30:00 AM")
	assert.Contains(t, out, "tier-top")
	assert.Contains(t, out, "tier-low")
	// у Бориса половина времени Анны
	assert.Contains(t, out, "width: 50.00%")
}

func TestHTML_Empty(t *testing.T) {
	rep := &report.Report{Date: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), Empty: true}

	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, "Store 1", rep))

	assert.Contains(t, buf.String(), "No picking records for 05/01")
	assert.NotContains(t, buf.String(), "picker-name")
}
