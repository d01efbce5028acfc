package internal

import (
	"math"

	"stockboard/internal/domain"

	"github.com/montanaflynn/stats"
)

// SeriesStats summarizes a plotted series the way the snapshot scripts do:
// volatility as the standard deviation of day-over-day percent changes, plus
// trailing moving averages and window performance. NaN marks a statistic the
// series is too short to support; the report shows those as "n/a".
type SeriesStats struct {
	Volatility     float64
	MA7            float64
	MA30           float64
	WeekChangePct  float64
	MonthChangePct float64
}

// ComputeSeriesStats derives summary statistics from the plotted values.
func ComputeSeriesStats(values []float64) SeriesStats {
	s := SeriesStats{
		Volatility:     math.NaN(),
		MA7:            math.NaN(),
		MA30:           math.NaN(),
		WeekChangePct:  math.NaN(),
		MonthChangePct: math.NaN(),
	}
	if len(values) < 2 {
		return s
	}

	changes := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		changes = append(changes, domain.PercentChange(values[i], values[i-1]))
	}
	if v, err := stats.StandardDeviation(changes); err == nil {
		s.Volatility = v
	}

	s.MA7 = trailingMean(values, 7)
	s.MA30 = trailingMean(values, 30)
	s.WeekChangePct = windowChange(values, 7)
	s.MonthChangePct = windowChange(values, 30)
	return s
}

func trailingMean(values []float64, window int) float64 {
	if len(values) < window {
		return math.NaN()
	}
	mean, err := stats.Mean(values[len(values)-window:])
	if err != nil {
		return math.NaN()
	}
	return mean
}

// windowChange is the percent change from the start of the trailing window to
// the last value, clamped to the available history.
func windowChange(values []float64, window int) float64 {
	if len(values) < 2 {
		return math.NaN()
	}
	start := len(values) - window
	if start < 0 {
		start = 0
	}
	return domain.PercentChange(values[len(values)-1], values[start])
}
