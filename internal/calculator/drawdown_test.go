package calculator

import (
	"testing"

	"carteira/internal/domain"

	"github.com/stretchr/testify/require"
)

func Test_Drawdown(t *testing.T) {
	t.Run("always at or below zero and matches running-max formula", func(t *testing.T) {
		values := []float64{
			100, 101, 99, 102, 98, 103, 105, 104, 101, 108, 110,
			107, 109, 112, 111, 115, 114, 113, 118, 120, 119,
		}
		require.GreaterOrEqual(t, len(values), 21)

		drawdowns := Drawdown(values)
		require.Len(t, drawdowns, len(values))

		peak := values[0]
		for i, v := range values {
			if v > peak {
				peak = v
			}
			require.LessOrEqual(t, drawdowns[i], 0.0, "index %d", i)
			require.Equal(t, (v-peak)/peak*100, drawdowns[i], "index %d", i)
		}
	})

	t.Run("new peak resets drawdown to zero", func(t *testing.T) {
		drawdowns := Drawdown([]float64{100, 90, 120})
		require.Equal(t, 0.0, drawdowns[0])
		require.Equal(t, -10.0, drawdowns[1])
		require.Equal(t, 0.0, drawdowns[2])
	})

	t.Run("empty input", func(t *testing.T) {
		require.Empty(t, Drawdown(nil))
	})
}

func Test_DrawdownSeries(t *testing.T) {
	t.Run("carries dates and values through", func(t *testing.T) {
		points := []domain.PerformancePoint{
			{Date: domain.NewDate(2024, 1, 2), PortfolioValue: 100},
			{Date: domain.NewDate(2024, 1, 3), PortfolioValue: 95},
		}
		series := DrawdownSeries(points)
		require.Len(t, series, 2)
		require.Equal(t, points[1].Date, series[1].Date)
		require.Equal(t, 95.0, series[1].Value)
		require.Equal(t, -5.0, series[1].Drawdown)
	})
}
