package render

import (
	"fmt"
	"time"
)

// Tier цветовая полоса для Avg per min.
type Tier struct {
	Level int    `json:"level"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

var (
	TierTop    = Tier{Level: 3, Name: "top", Color: "#90EE90"}
	TierHigh   = Tier{Level: 2, Name: "high", Color: "#FFFF00"}
	TierMedium = Tier{Level: 1, Name: "medium", Color: "#FFA500"}
	TierLow    = Tier{Level: 0, Name: "low", Color: "#FF6B6B"}
)

// AvgTier нижняя граница каждой полосы включительно.
func AvgTier(v float64) Tier {
	switch {
	case v >= 10:
		return TierTop
	case v >= 7:
		return TierHigh
	case v >= 5:
		return TierMedium
	default:
		return TierLow
	}
}

// BarPercent ширина полосы относительно максимума колонки.
func BarPercent(v, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return v / max * 100
}

// FormatDuration формат h:mm:ss, часы не ограничены 24.
func FormatDuration(d time.Duration) string {
	total := int64(d / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

func FormatDay(t time.Time) string {
	return t.Format("02/01")
}

func FormatFinish(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("03:04:05 PM")
}
