package app

import (
	"fmt"
	"math"

	"carteira/internal/calculator"
	"carteira/internal/domain"

	"github.com/maja42/goval"
)

// ExpressionService evaluates user-written arithmetic over the named series
// of an analysis result, producing a derived series for custom charts.
// Available variables per point: portfolio, benchmark, ret, drawdown.
type ExpressionService interface {
	EvaluateSeries(result *domain.AnalysisResult, expression string) ([]ExpressionPoint, error)
}

type ExpressionPoint struct {
	Date  domain.Date `json:"date"`
	Value float64     `json:"value"`
}

func NewExpressionService() ExpressionService {
	return expressionServiceHandler{}
}

type expressionServiceHandler struct{}

func (h expressionServiceHandler) EvaluateSeries(result *domain.AnalysisResult, expression string) ([]ExpressionPoint, error) {
	if len(result.Performance) < 2 {
		return nil, fmt.Errorf("not enough performance points to evaluate an expression")
	}

	_, returns := calculator.PerformanceReturns(result.Performance)
	drawdowns := calculator.DrawdownSeries(result.Performance)

	eval := goval.NewEvaluator()
	out := make([]ExpressionPoint, 0, len(returns))

	// index i runs over return points, i.e. performance[i+1]
	for i := range returns {
		point := result.Performance[i+1]
		variables := map[string]interface{}{
			"portfolio": point.PortfolioValue,
			"benchmark": point.BenchmarkValue,
			"ret":       returns[i],
			"drawdown":  drawdowns[i+1].Drawdown,
		}

		raw, err := eval.Evaluate(expression, variables, expressionFunctions)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate expression at %s: %w", point.Date, err)
		}

		value, err := toFloat(raw)
		if err != nil {
			return nil, fmt.Errorf("expression must produce a number: %w", err)
		}
		out = append(out, ExpressionPoint{Date: point.Date, Value: value})
	}

	return out, nil
}

var expressionFunctions = map[string]goval.ExpressionFunction{
	"abs": func(args ...interface{}) (interface{}, error) {
		v, err := argToFloat(args)
		if err != nil {
			return nil, err
		}
		return math.Abs(v), nil
	},
	"sqrt": func(args ...interface{}) (interface{}, error) {
		v, err := argToFloat(args)
		if err != nil {
			return nil, err
		}
		return math.Sqrt(v), nil
	},
	"log": func(args ...interface{}) (interface{}, error) {
		v, err := argToFloat(args)
		if err != nil {
			return nil, err
		}
		return math.Log(v), nil
	},
}

func argToFloat(args []interface{}) (float64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected exactly 1 argument, got %d", len(args))
	}
	return toFloat(args[0])
}

func toFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	}
	return 0, fmt.Errorf("got %T", v)
}
