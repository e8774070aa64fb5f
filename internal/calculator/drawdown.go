package calculator

import "carteira/internal/domain"

// Drawdown returns the percentage decline from the running peak for each
// value. Every element is <= 0; a new peak yields exactly 0.
func Drawdown(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	peak := values[0]
	for i, v := range values {
		if v > peak {
			peak = v
		}
		if peak != 0 {
			out[i] = (v - peak) / peak * 100
		}
	}
	return out
}

func DrawdownSeries(points []domain.PerformancePoint) []domain.DrawdownPoint {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.PortfolioValue
	}
	drawdowns := Drawdown(values)

	out := make([]domain.DrawdownPoint, len(points))
	for i, p := range points {
		out[i] = domain.DrawdownPoint{
			Date:     p.Date,
			Value:    p.PortfolioValue,
			Drawdown: drawdowns[i],
		}
	}
	return out
}
