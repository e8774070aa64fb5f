package calculator

import (
	"fmt"
	"math"
	"sort"

	"carteira/internal/domain"

	"gonum.org/v1/gonum/stat"
)

// CorrelationMatrix computes the pairwise Pearson correlation of the given
// return series. Series are truncated to the shortest length so the matrix
// stays well defined when tickers entered the portfolio at different dates.
func CorrelationMatrix(seriesByTicker map[string][]float64) (*domain.Matrix, error) {
	if len(seriesByTicker) < 2 {
		return nil, fmt.Errorf("correlation matrix requires at least 2 series, got %d", len(seriesByTicker))
	}

	tickers := make([]string, 0, len(seriesByTicker))
	minLen := math.MaxInt
	for ticker, series := range seriesByTicker {
		tickers = append(tickers, ticker)
		if len(series) < minLen {
			minLen = len(series)
		}
	}
	sort.Strings(tickers)
	if minLen < 2 {
		return nil, fmt.Errorf("correlation matrix requires at least 2 observations per series")
	}

	n := len(tickers)
	values := make([][]float64, n)
	for i := range values {
		values[i] = make([]float64, n)
		values[i][i] = 1
	}
	for i := 0; i < n; i++ {
		x := seriesByTicker[tickers[i]][:minLen]
		for j := i + 1; j < n; j++ {
			y := seriesByTicker[tickers[j]][:minLen]
			rho := stat.Correlation(x, y, nil)
			values[i][j] = rho
			values[j][i] = rho
		}
	}

	return &domain.Matrix{Tickers: tickers, Values: values}, nil
}

// DistanceMatrix maps correlations to the metric sqrt(2*(1-rho)), the usual
// distance used for asset clustering. Rounding can push 1-rho slightly
// negative; clamp before the sqrt.
func DistanceMatrix(correlation *domain.Matrix) *domain.Matrix {
	n := len(correlation.Tickers)
	values := make([][]float64, n)
	for i := range values {
		values[i] = make([]float64, n)
		for j := range values[i] {
			d := 2 * (1 - correlation.Values[i][j])
			if d < 0 {
				d = 0
			}
			values[i][j] = math.Sqrt(d)
		}
	}
	return &domain.Matrix{Tickers: correlation.Tickers, Values: values}
}

// Beta is the slope of portfolio returns against benchmark returns.
func Beta(portfolio, benchmark []float64) (float64, error) {
	if len(portfolio) != len(benchmark) {
		return 0, fmt.Errorf("series must align: %d vs %d", len(portfolio), len(benchmark))
	}
	if len(portfolio) < 2 {
		return 0, fmt.Errorf("beta requires at least 2 observations")
	}
	variance := stat.Variance(benchmark, nil)
	if variance == 0 {
		return 0, fmt.Errorf("benchmark variance is zero")
	}
	return stat.Covariance(portfolio, benchmark, nil) / variance, nil
}
