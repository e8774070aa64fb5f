package app

import (
	"context"
	"fmt"
	"math"
	"time"

	"carteira/internal/calculator"
	"carteira/internal/domain"
	"carteira/internal/layout"
	"carteira/internal/logger"
	"carteira/internal/repository"
	"carteira/internal/service"
)

type AnalysisHandler struct {
	Engine             repository.AnalysisEngine
	DraftRepository    repository.DraftRepository
	SnapshotRepository repository.SnapshotRepository

	RiskConfig       calculator.RollingRiskConfig
	HistogramBins    int
	NetworkThreshold float64
	LayoutConfig     layout.Config
}

func NewAnalysisHandler(
	engine repository.AnalysisEngine,
	draftRepository repository.DraftRepository,
	snapshotRepository repository.SnapshotRepository,
) *AnalysisHandler {
	return &AnalysisHandler{
		Engine:             engine,
		DraftRepository:    draftRepository,
		SnapshotRepository: snapshotRepository,
		RiskConfig:         calculator.DefaultRollingRiskConfig(),
		HistogramBins:      20,
		NetworkThreshold:   0.3,
		LayoutConfig:       layout.DefaultConfig(),
	}
}

type SubmitInput struct {
	Owner      string
	DraftID    string
	Submission domain.Submission
}

// SubmitOperations validates the submission, forwards it to the analytics
// engine (single attempt, no retry), enriches the response with the locally
// computed series, and replaces the owner's snapshot wholesale. A failure at
// any step leaves the draft untouched so the form stays recoverable.
func (h *AnalysisHandler) SubmitOperations(ctx context.Context, in SubmitInput) (*domain.AnalysisResult, error) {
	log := logger.FromContext(ctx)
	profile := domain.GetProfile(ctx)

	profile.StartNewSpan("validate")
	if err := service.ValidateSubmission(in.Submission, time.Now().UTC()); err != nil {
		return nil, err
	}

	profile.StartNewSpan("engine")
	result, err := h.Engine.Analyze(ctx, in.Submission)
	if err != nil {
		return nil, err
	}

	profile.StartNewSpan("enrich")
	if err := h.Enrich(result); err != nil {
		return nil, fmt.Errorf("failed to enrich analysis result: %w", err)
	}

	profile.StartNewSpan("persist")
	if err := h.SnapshotRepository.Save(in.Owner, result); err != nil {
		return nil, fmt.Errorf("failed to persist snapshot: %w", err)
	}

	if in.DraftID != "" {
		if err := h.DraftRepository.Delete(in.DraftID); err != nil {
			// the submission already succeeded; a stale draft is not worth
			// failing it over
			log.Warnw("failed to clear draft after submission", "draftID", in.DraftID, "error", err)
		}
	}

	return result, nil
}

// LatestAnalysis returns the owner's stored snapshot, or nil when nothing was
// submitted yet.
func (h *AnalysisHandler) LatestAnalysis(owner string) (*domain.AnalysisResult, error) {
	return h.SnapshotRepository.Get(owner)
}

// Enrich fills in everything the engine leaves to the client: rolling
// VaR/CVaR, drawdown, the return histogram, the violation summary and the
// correlation network layout. Insufficient data simply leaves a field empty;
// the dashboard renders nothing for it.
func (h *AnalysisHandler) Enrich(result *domain.AnalysisResult) error {
	dates, returns := calculator.PerformanceReturns(result.Performance)

	if len(returns) > h.RiskConfig.MinWindow {
		riskSeries, err := calculator.RollingRisk(dates, returns, h.RiskConfig)
		if err != nil {
			return err
		}
		result.RiskSeries = riskSeries
		if len(result.VarBacktest) == 0 {
			result.VarBacktest = calculator.VarBacktestSummary(riskSeries)
		}
	}

	if len(result.Performance) > 0 {
		result.Drawdown = calculator.DrawdownSeries(result.Performance)
	}
	if len(returns) > 0 {
		result.Histogram = calculator.Histogram(returns, h.HistogramBins)
	}

	benchmarkValues := make([]float64, len(result.Performance))
	for i, p := range result.Performance {
		benchmarkValues[i] = p.BenchmarkValue
	}
	benchmarkReturns := calculator.DailyReturns(benchmarkValues)
	if len(returns) >= 2 {
		if beta, err := calculator.Beta(returns, benchmarkReturns); err == nil {
			result.PortfolioBeta = &beta
		}
		// engines without per-ticker data still get a portfolio vs benchmark
		// matrix, enough for the distance view
		if result.Correlation == nil {
			matrix, err := calculator.CorrelationMatrix(map[string][]float64{
				"BENCHMARK": benchmarkReturns,
				"PORTFOLIO": returns,
			})
			if err == nil {
				result.Correlation = matrix
			}
		}
	}

	if result.Correlation != nil && len(result.Correlation.Tickers) > 1 {
		if result.DistanceCorrelation == nil {
			result.DistanceCorrelation = calculator.DistanceMatrix(result.Correlation)
		}
		result.Network = BuildNetwork(result.Correlation, h.NetworkThreshold, h.LayoutConfig)
	}

	return nil
}

// BuildNetwork turns a correlation matrix into a laid-out graph: one node per
// ticker, an edge wherever |rho| clears the threshold, clusters from the
// connected components, and coordinates from the force simulation.
func BuildNetwork(matrix *domain.Matrix, threshold float64, cfg layout.Config) *domain.Network {
	n := len(matrix.Tickers)

	nodes := make([]layout.Node, n)
	for i, ticker := range matrix.Tickers {
		nodes[i] = layout.Node{ID: ticker}
	}

	edges := []layout.Edge{}
	centrality := make([]float64, n)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			weight := math.Abs(matrix.Values[i][j])
			if weight < threshold {
				continue
			}
			edges = append(edges, layout.Edge{Source: i, Target: j, Weight: weight})
			centrality[i] += weight
			centrality[j] += weight
			parent[find(i)] = find(j)
		}
	}

	layout.Arrange(nodes, edges, cfg)

	clusterIDs := map[int]int{}
	out := &domain.Network{
		Nodes: make([]domain.NetworkNode, n),
		Edges: make([]domain.NetworkEdge, len(edges)),
	}
	for i, node := range nodes {
		root := find(i)
		cluster, ok := clusterIDs[root]
		if !ok {
			cluster = len(clusterIDs)
			clusterIDs[root] = cluster
		}
		out.Nodes[i] = domain.NetworkNode{
			ID:         node.ID,
			X:          node.X,
			Y:          node.Y,
			Centrality: centrality[i],
			Cluster:    cluster,
		}
	}
	for i, e := range edges {
		out.Edges[i] = domain.NetworkEdge{Source: e.Source, Target: e.Target, Weight: e.Weight}
	}
	return out
}
