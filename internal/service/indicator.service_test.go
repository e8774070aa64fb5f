package service

import (
	"testing"

	"carteira/internal/domain"

	"github.com/stretchr/testify/require"
)

func makePerformance(n int) []domain.PerformancePoint {
	points := make([]domain.PerformancePoint, n)
	d := domain.NewDate(2024, 1, 1)
	for i := range points {
		points[i] = domain.PerformancePoint{
			Date:           domain.Date{Time: d.AddDate(0, 0, i)},
			PortfolioValue: 100 + float64(i),
			BenchmarkValue: 100 + float64(i)/2,
		}
	}
	return points
}

func Test_Indicator(t *testing.T) {
	t.Run("sma of a linear series", func(t *testing.T) {
		points := makePerformance(10)
		series, err := Indicator(points, IndicatorType_SMA, 3)
		require.NoError(t, err)
		require.Len(t, series, 8)
		// values 100..109: SMA(3) at index 2 is 101
		require.InDelta(t, 101.0, series[0].Value, 1e-9)
		require.Equal(t, points[2].Date, series[0].Date)
	})

	t.Run("rsi warm-up is dropped", func(t *testing.T) {
		points := makePerformance(40)
		series, err := Indicator(points, IndicatorType_RSI, 14)
		require.NoError(t, err)
		require.Len(t, series, 40-14)
		// strictly rising series pins RSI at 100
		require.InDelta(t, 100.0, series[0].Value, 1e-6)
	})

	t.Run("series shorter than the window errors", func(t *testing.T) {
		_, err := Indicator(makePerformance(5), IndicatorType_EMA, 10)
		require.Error(t, err)
	})

	t.Run("window below 2 errors", func(t *testing.T) {
		_, err := Indicator(makePerformance(5), IndicatorType_SMA, 1)
		require.Error(t, err)
	})
}

func Test_NewIndicatorType(t *testing.T) {
	t.Run("parses case-insensitively", func(t *testing.T) {
		indicator, err := NewIndicatorType("SMA")
		require.NoError(t, err)
		require.Equal(t, IndicatorType_SMA, *indicator)
	})

	t.Run("rejects unknown indicators", func(t *testing.T) {
		_, err := NewIndicatorType("macd")
		require.Error(t, err)
	})
}
