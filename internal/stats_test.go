package internal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeSeriesStats(t *testing.T) {
	t.Run("too short", func(t *testing.T) {
		s := ComputeSeriesStats([]float64{100})

		require.True(t, math.IsNaN(s.Volatility))
		require.True(t, math.IsNaN(s.MA7))
		require.True(t, math.IsNaN(s.WeekChangePct))
	})

	t.Run("flat series has zero volatility", func(t *testing.T) {
		s := ComputeSeriesStats([]float64{100, 100, 100, 100})

		require.Equal(t, float64(0), s.Volatility)
	})

	t.Run("known volatility", func(t *testing.T) {
		// +10% then -10%: changes are {10, -10}, population stdev 10
		s := ComputeSeriesStats([]float64{100, 110, 99})

		require.InDelta(t, 10, s.Volatility, 1e-9)
	})

	t.Run("zero value does not produce NaN changes", func(t *testing.T) {
		s := ComputeSeriesStats([]float64{0, 100, 110})

		require.False(t, math.IsNaN(s.Volatility))
	})

	t.Run("moving averages need a full window", func(t *testing.T) {
		short := ComputeSeriesStats([]float64{1, 2, 3})
		require.True(t, math.IsNaN(short.MA7))

		long := ComputeSeriesStats([]float64{1, 2, 3, 4, 5, 6, 7})
		require.InDelta(t, 4, long.MA7, 1e-9)
		require.True(t, math.IsNaN(long.MA30))
	})

	t.Run("window change clamps to history", func(t *testing.T) {
		s := ComputeSeriesStats([]float64{100, 120})

		require.InDelta(t, 20, s.WeekChangePct, 1e-9)
		require.InDelta(t, 20, s.MonthChangePct, 1e-9)
	})
}
