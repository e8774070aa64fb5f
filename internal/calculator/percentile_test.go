package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Percentile(t *testing.T) {
	sorted := []float64{-0.05, -0.03, -0.01, 0, 0.01, 0.02, 0.04, 0.06, 0.08, 0.1}

	t.Run("p=0 returns the minimum", func(t *testing.T) {
		require.Equal(t, -0.05, Percentile(sorted, 0))
	})

	t.Run("p=1 returns the maximum", func(t *testing.T) {
		require.Equal(t, 0.1, Percentile(sorted, 1))
	})

	t.Run("result lies between flanking order statistics", func(t *testing.T) {
		for _, p := range []float64{0.01, 0.05, 0.1, 0.25, 0.5, 0.75, 0.9, 0.99} {
			rank := p * float64(len(sorted)-1)
			lower := sorted[int(math.Floor(rank))]
			upper := sorted[int(math.Min(math.Ceil(rank), float64(len(sorted)-1)))]

			result := Percentile(sorted, p)
			require.GreaterOrEqual(t, result, lower, "p=%v", p)
			require.LessOrEqual(t, result, upper, "p=%v", p)
		}
	})

	t.Run("interpolates linearly", func(t *testing.T) {
		require.InDelta(t, 0.005, Percentile([]float64{0, 0.01}, 0.5), 1e-12)
	})

	t.Run("empty input yields NaN", func(t *testing.T) {
		require.True(t, math.IsNaN(Percentile(nil, 0.5)))
	})

	t.Run("out of range p clamps", func(t *testing.T) {
		require.Equal(t, -0.05, Percentile(sorted, -1))
		require.Equal(t, 0.1, Percentile(sorted, 2))
	})
}
