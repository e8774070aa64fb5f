package domain

import "encoding/json"

// AnalysisResult is the snapshot returned after a submission is processed.
// The engine owns most of it; risk series, drawdown, histogram and network
// are computed here after the response arrives. The whole object is replaced
// on every new submission, never mutated in place.
type AnalysisResult struct {
	Performance []PerformancePoint `json:"performance"`
	Allocation  []AllocationSlice  `json:"allocation,omitempty"`

	Correlation         *Matrix            `json:"correlationMatrix,omitempty"`
	DistanceCorrelation *Matrix            `json:"distanceCorrelationMatrix,omitempty"`
	Betas               map[string]float64 `json:"betas,omitempty"`

	MonteCarlo   *MonteCarloSummary `json:"monteCarlo,omitempty"`
	FactorModels *FactorModels      `json:"factorModels,omitempty"`
	Frontier     []FrontierPoint    `json:"frontier,omitempty"`
	VarBacktest  []VarBacktestEntry `json:"varBacktest,omitempty"`

	// computed locally from the performance series
	PortfolioBeta *float64        `json:"portfolioBeta,omitempty"`
	RiskSeries    []RiskPoint     `json:"riskSeries,omitempty"`
	Drawdown      []DrawdownPoint `json:"drawdown,omitempty"`
	Histogram     []HistogramBin  `json:"histogram,omitempty"`
	Network       *Network        `json:"network,omitempty"`
}

type PerformancePoint struct {
	Date           Date    `json:"date"`
	PortfolioValue float64 `json:"portfolioValue"`
	BenchmarkValue float64 `json:"benchmarkValue"`
}

type AllocationSlice struct {
	Ticker string  `json:"ticker"`
	Weight float64 `json:"weight"`
}

type Matrix struct {
	Tickers []string    `json:"tickers"`
	Values  [][]float64 `json:"values"`
}

type MonteCarloSummary struct {
	HorizonDays int                `json:"horizonDays"`
	Simulations int                `json:"simulations"`
	Percentiles map[string]float64 `json:"percentiles"`
}

type FactorModels struct {
	CAPM       *RegressionResult `json:"capm,omitempty"`
	FamaFrench *RegressionResult `json:"famaFrench,omitempty"`
}

type RegressionResult struct {
	Alpha        float64            `json:"alpha"`
	Coefficients map[string]float64 `json:"coefficients"`
	RSquared     float64            `json:"rSquared"`
}

type FrontierPoint struct {
	Risk    float64            `json:"risk"`
	Return  float64            `json:"return"`
	Weights map[string]float64 `json:"weights,omitempty"`
}

type VarBacktestEntry struct {
	Confidence    float64 `json:"confidence"`
	Observations  int     `json:"observations"`
	Violations    int     `json:"violations"`
	ViolationRate float64 `json:"violationRate"`
}

type RiskPoint struct {
	Date            Date    `json:"date"`
	Return          float64 `json:"return"`
	VaR95           float64 `json:"var95"`
	VaR99           float64 `json:"var99"`
	CVaR95          float64 `json:"cvar95"`
	CVaR99          float64 `json:"cvar99"`
	ParametricVaR95 float64 `json:"parametricVar95"`
	Violation95     bool    `json:"violation95"`
	Violation99     bool    `json:"violation99"`
}

type DrawdownPoint struct {
	Date     Date    `json:"date"`
	Value    float64 `json:"value"`
	Drawdown float64 `json:"drawdown"`
}

type HistogramBin struct {
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Count int     `json:"count"`
}

type Network struct {
	Nodes []NetworkNode `json:"nodes"`
	Edges []NetworkEdge `json:"edges"`
}

type NetworkNode struct {
	ID         string  `json:"id"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Centrality float64 `json:"centrality"`
	Cluster    int     `json:"cluster"`
}

type NetworkEdge struct {
	Source int     `json:"source"`
	Target int     `json:"target"`
	Weight float64 `json:"weight"`
}

// analysisResultWire exists so UnmarshalJSON can reuse the field mapping
// without recursing.
type analysisResultWire AnalysisResult

// UnmarshalJSON accepts both the canonical shape and the legacy variant that
// nests everything under "results". Older engine deployments still emit the
// nested form; it is normalized here so the rest of the code sees exactly one
// shape.
func (a *AnalysisResult) UnmarshalJSON(b []byte) error {
	var wire struct {
		analysisResultWire
		Results *analysisResultWire `json:"results"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	if len(wire.Performance) == 0 && wire.Results != nil {
		*a = AnalysisResult(*wire.Results)
		return nil
	}
	*a = AnalysisResult(wire.analysisResultWire)
	return nil
}
