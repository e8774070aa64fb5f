package calculator

import (
	"fmt"

	"carteira/internal/domain"

	"github.com/montanaflynn/stats"
)

// DailyReturns converts a value series into simple daily returns. Zero
// denominators contribute a zero return rather than Inf.
func DailyReturns(values []float64) []float64 {
	if len(values) < 2 {
		return []float64{}
	}
	returns := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		if values[i-1] != 0 {
			returns[i-1] = (values[i] - values[i-1]) / values[i-1]
		}
	}
	return returns
}

// PerformanceReturns extracts the portfolio return series from an analysis
// result's performance points, aligned with the dates of the returns (the
// first performance date has no return and is dropped).
func PerformanceReturns(points []domain.PerformancePoint) ([]domain.Date, []float64) {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.PortfolioValue
	}
	returns := DailyReturns(values)
	dates := make([]domain.Date, len(returns))
	for i := range returns {
		dates[i] = points[i+1].Date
	}
	return dates, returns
}

type SummaryStats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

func Summarize(returns []float64) (*SummaryStats, error) {
	if len(returns) < 2 {
		return nil, fmt.Errorf("cannot summarize fewer than 2 returns")
	}
	mean, err := stats.Mean(returns)
	if err != nil {
		return nil, err
	}
	stdev, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return nil, err
	}
	median, err := stats.Median(returns)
	if err != nil {
		return nil, err
	}
	min, err := stats.Min(returns)
	if err != nil {
		return nil, err
	}
	max, err := stats.Max(returns)
	if err != nil {
		return nil, err
	}
	return &SummaryStats{
		Mean:   mean,
		StdDev: stdev,
		Median: median,
		Min:    min,
		Max:    max,
	}, nil
}
