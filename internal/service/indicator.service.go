package service

import (
	"fmt"
	"strings"

	"carteira/internal/domain"

	"github.com/markcheno/go-talib"
)

type IndicatorType string

const (
	IndicatorType_SMA IndicatorType = "sma"
	IndicatorType_EMA IndicatorType = "ema"
	IndicatorType_RSI IndicatorType = "rsi"
)

func NewIndicatorType(s string) (*IndicatorType, error) {
	t := IndicatorType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case IndicatorType_SMA, IndicatorType_EMA, IndicatorType_RSI:
		return &t, nil
	}
	return nil, fmt.Errorf("unknown indicator type %q", s)
}

type IndicatorPoint struct {
	Date  domain.Date `json:"date"`
	Value float64     `json:"value"`
}

// Indicator computes a technical indicator over the portfolio value series.
// ta-lib zero-fills the warm-up prefix, so output starts at the first
// meaningful index.
func Indicator(points []domain.PerformancePoint, indicator IndicatorType, window int) ([]IndicatorPoint, error) {
	if window < 2 {
		return nil, fmt.Errorf("indicator window must be at least 2, got %d", window)
	}
	if len(points) < window {
		return nil, fmt.Errorf("series too short for window %d: %d points", window, len(points))
	}

	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.PortfolioValue
	}

	var raw []float64
	warmup := window - 1
	switch indicator {
	case IndicatorType_SMA:
		raw = talib.Sma(values, window)
	case IndicatorType_EMA:
		raw = talib.Ema(values, window)
	case IndicatorType_RSI:
		raw = talib.Rsi(values, window)
		warmup = window
	default:
		return nil, fmt.Errorf("unknown indicator type %q", indicator)
	}

	out := []IndicatorPoint{}
	for i := warmup; i < len(raw); i++ {
		out = append(out, IndicatorPoint{
			Date:  points[i].Date,
			Value: raw[i],
		})
	}
	return out, nil
}
