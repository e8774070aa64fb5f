package calculator

import (
	"math"
	"testing"

	"carteira/internal/domain"

	"github.com/stretchr/testify/require"
)

func makeDates(n int) []domain.Date {
	dates := make([]domain.Date, n)
	d := domain.NewDate(2023, 1, 1)
	for i := range dates {
		dates[i] = domain.Date{Time: d.AddDate(0, 0, i)}
	}
	return dates
}

// mild deterministic return series, roughly +-1.5%
func makeReturns(n int) []float64 {
	returns := make([]float64, n)
	for i := range returns {
		returns[i] = 0.015 * math.Sin(float64(i)*0.7)
	}
	return returns
}

func Test_RollingRisk(t *testing.T) {
	cfg := DefaultRollingRiskConfig()

	t.Run("no output before the minimum window", func(t *testing.T) {
		n := 60
		points, err := RollingRisk(makeDates(n), makeReturns(n), cfg)
		require.NoError(t, err)
		require.Len(t, points, n-cfg.MinWindow)
		// first emitted point is the first index with MinWindow priors
		require.Equal(t, makeDates(n)[cfg.MinWindow], points[0].Date)
	})

	t.Run("series shorter than the minimum emits nothing", func(t *testing.T) {
		n := cfg.MinWindow
		points, err := RollingRisk(makeDates(n), makeReturns(n), cfg)
		require.NoError(t, err)
		require.Empty(t, points)
	})

	t.Run("cvar is at or below var per point", func(t *testing.T) {
		n := 400
		points, err := RollingRisk(makeDates(n), makeReturns(n), cfg)
		require.NoError(t, err)
		require.NotEmpty(t, points)
		for _, p := range points {
			require.LessOrEqual(t, p.CVaR95, p.VaR95, "date %s", p.Date)
			require.LessOrEqual(t, p.CVaR99, p.VaR99, "date %s", p.Date)
			require.LessOrEqual(t, p.VaR99, p.VaR95, "date %s", p.Date)
		}
	})

	t.Run("violation flag iff realized return strictly below threshold", func(t *testing.T) {
		n := 40
		returns := makeReturns(n)
		returns[30] = -0.5 // crash day
		points, err := RollingRisk(makeDates(n), returns, cfg)
		require.NoError(t, err)

		for _, p := range points {
			require.Equal(t, p.Return < p.VaR95, p.Violation95, "date %s", p.Date)
			require.Equal(t, p.Return < p.VaR99, p.Violation99, "date %s", p.Date)
		}

		crash := points[30-cfg.MinWindow]
		require.Equal(t, -0.5, crash.Return)
		require.True(t, crash.Violation95)
		require.True(t, crash.Violation99)
	})

	t.Run("window is capped at the maximum lookback", func(t *testing.T) {
		n := 320
		returns := makeReturns(n)
		// an early crash regime that must age out of the capped window
		for i := 0; i < 40; i++ {
			returns[i] = -0.9
		}
		points, err := RollingRisk(makeDates(n), returns, cfg)
		require.NoError(t, err)

		last := points[len(points)-1]
		// window for the last index spans [n-1-252, n-1): no crash values left
		require.Greater(t, last.VaR99, -0.1)
	})

	t.Run("threshold excludes the evaluated day's own return", func(t *testing.T) {
		n := 30
		returns := makeReturns(n)
		returns[25] = -0.5
		points, err := RollingRisk(makeDates(n), returns, cfg)
		require.NoError(t, err)

		// the crash return cannot drag down its own threshold
		crash := points[25-cfg.MinWindow]
		require.Greater(t, crash.VaR99, -0.1)
	})

	t.Run("misaligned inputs error", func(t *testing.T) {
		_, err := RollingRisk(makeDates(10), makeReturns(11), cfg)
		require.Error(t, err)
	})

	t.Run("invalid config errors", func(t *testing.T) {
		_, err := RollingRisk(makeDates(10), makeReturns(10), RollingRiskConfig{MinWindow: 10, MaxWindow: 5})
		require.Error(t, err)
	})
}

func Test_VarBacktestSummary(t *testing.T) {
	t.Run("rates count strict violations", func(t *testing.T) {
		points := []domain.RiskPoint{
			{Violation95: true, Violation99: false},
			{Violation95: true, Violation99: true},
			{Violation95: false, Violation99: false},
			{Violation95: false, Violation99: false},
		}
		summary := VarBacktestSummary(points)
		require.Len(t, summary, 2)

		require.Equal(t, 0.95, summary[0].Confidence)
		require.Equal(t, 2, summary[0].Violations)
		require.Equal(t, 4, summary[0].Observations)
		require.InDelta(t, 0.5, summary[0].ViolationRate, 1e-12)

		require.Equal(t, 0.99, summary[1].Confidence)
		require.Equal(t, 1, summary[1].Violations)
	})

	t.Run("empty series yields nil", func(t *testing.T) {
		require.Nil(t, VarBacktestSummary(nil))
	})
}
