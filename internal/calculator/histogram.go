package calculator

import (
	"carteira/internal/domain"

	"github.com/montanaflynn/stats"
)

// Histogram buckets returns into equal-width bins spanning [min, max]. The
// top edge is inclusive so the maximum lands in the last bin. A constant
// series collapses into a single bin.
func Histogram(returns []float64, bins int) []domain.HistogramBin {
	if len(returns) == 0 || bins <= 0 {
		return nil
	}
	min, err := stats.Min(returns)
	if err != nil {
		return nil
	}
	max, err := stats.Max(returns)
	if err != nil {
		return nil
	}
	if min == max {
		return []domain.HistogramBin{{From: min, To: max, Count: len(returns)}}
	}

	width := (max - min) / float64(bins)
	out := make([]domain.HistogramBin, bins)
	for i := range out {
		out[i] = domain.HistogramBin{
			From: min + float64(i)*width,
			To:   min + float64(i+1)*width,
		}
	}

	for _, r := range returns {
		idx := int((r - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Count++
	}
	return out
}
