package calculator

import (
	"fmt"
	"sort"

	"carteira/internal/domain"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

type RollingRiskConfig struct {
	// MinWindow is the smallest lookback that produces an output point;
	// earlier indices emit nothing.
	MinWindow int
	// MaxWindow caps the lookback once enough history has accumulated.
	MaxWindow int
}

func DefaultRollingRiskConfig() RollingRiskConfig {
	return RollingRiskConfig{MinWindow: 20, MaxWindow: 252}
}

// RollingRisk walks a daily return series and, for every index with at least
// MinWindow prior observations, computes historical VaR/CVaR at 95% and 99%
// over the expanding-then-capped window, a parametric (normal) VaR at 95% for
// comparison, and flags dates whose realized return breached a threshold.
// The window never includes the evaluated day's own return.
func RollingRisk(dates []domain.Date, returns []float64, cfg RollingRiskConfig) ([]domain.RiskPoint, error) {
	if len(dates) != len(returns) {
		return nil, fmt.Errorf("dates and returns must align: %d vs %d", len(dates), len(returns))
	}
	if cfg.MinWindow <= 0 || cfg.MaxWindow < cfg.MinWindow {
		return nil, fmt.Errorf("invalid window config: min=%d max=%d", cfg.MinWindow, cfg.MaxWindow)
	}

	points := []domain.RiskPoint{}
	window := make([]float64, 0, cfg.MaxWindow)

	for i := range returns {
		if i < cfg.MinWindow {
			continue
		}

		start := i - cfg.MaxWindow
		if start < 0 {
			start = 0
		}
		window = append(window[:0], returns[start:i]...)
		sort.Float64s(window)

		var95 := Percentile(window, 0.05)
		var99 := Percentile(window, 0.01)

		parametric95, err := parametricVaR(returns[start:i], 0.95)
		if err != nil {
			return nil, err
		}

		ret := returns[i]
		points = append(points, domain.RiskPoint{
			Date:            dates[i],
			Return:          ret,
			VaR95:           var95,
			VaR99:           var99,
			CVaR95:          tailMean(window, var95),
			CVaR99:          tailMean(window, var99),
			ParametricVaR95: parametric95,
			Violation95:     ret < var95,
			Violation99:     ret < var99,
		})
	}

	return points, nil
}

// tailMean averages every observation at or below the threshold. With the
// left-tail convention this is always <= the threshold itself.
func tailMean(sorted []float64, threshold float64) float64 {
	sum := 0.0
	count := 0
	for _, v := range sorted {
		if v > threshold {
			break
		}
		sum += v
		count++
	}
	if count == 0 {
		return threshold
	}
	return sum / float64(count)
}

func parametricVaR(returns []float64, confidence float64) (float64, error) {
	mean, err := stats.Mean(returns)
	if err != nil {
		return 0, fmt.Errorf("failed to compute window mean: %w", err)
	}
	stdev, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return 0, fmt.Errorf("failed to compute window stdev: %w", err)
	}
	z := distuv.UnitNormal.Quantile(1 - confidence)
	return mean + z*stdev, nil
}

// VarBacktestSummary aggregates violation counts from a rolling risk series.
func VarBacktestSummary(points []domain.RiskPoint) []domain.VarBacktestEntry {
	if len(points) == 0 {
		return nil
	}
	violations95, violations99 := 0, 0
	for _, p := range points {
		if p.Violation95 {
			violations95++
		}
		if p.Violation99 {
			violations99++
		}
	}
	n := len(points)
	return []domain.VarBacktestEntry{
		{Confidence: 0.95, Observations: n, Violations: violations95, ViolationRate: float64(violations95) / float64(n)},
		{Confidence: 0.99, Observations: n, Violations: violations99, ViolationRate: float64(violations99) / float64(n)},
	}
}
