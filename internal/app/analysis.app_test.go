package app

import (
	"context"
	"errors"
	"math"
	"testing"

	"carteira/internal/domain"
	"carteira/internal/layout"
	mock_repository "carteira/internal/repository/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func submission() domain.Submission {
	return domain.Submission{
		InitialValue: decimal.NewFromInt(10000),
		StartDate:    domain.NewDate(2024, 1, 2),
		Operations: []domain.Operation{
			{
				Date:   domain.NewDate(2024, 1, 10),
				Ticker: "PETR4",
				Type:   domain.OperationType_Buy,
				Value:  decimal.NewFromInt(1000),
			},
		},
	}
}

func engineResult(points int) *domain.AnalysisResult {
	result := &domain.AnalysisResult{
		Performance: make([]domain.PerformancePoint, points),
		Correlation: &domain.Matrix{
			Tickers: []string{"ITUB4", "PETR4", "VALE3"},
			Values: [][]float64{
				{1, 0.62, 0.12},
				{0.62, 1, 0.08},
				{0.12, 0.08, 1},
			},
		},
	}
	d := domain.NewDate(2024, 1, 2)
	value := 100.0
	for i := range result.Performance {
		// alternate gains and occasional losses so returns are not constant
		if i%5 == 4 {
			value *= 0.97
		} else {
			value *= 1.003
		}
		result.Performance[i] = domain.PerformancePoint{
			Date:           domain.Date{Time: d.AddDate(0, 0, i)},
			PortfolioValue: value,
			BenchmarkValue: 100 + float64(i)/4,
		}
	}
	return result
}

func Test_SubmitOperations(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path enriches, persists and clears the draft", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		engine := mock_repository.NewMockAnalysisEngine(ctrl)
		drafts := mock_repository.NewMockDraftRepository(ctrl)
		snapshots := mock_repository.NewMockSnapshotRepository(ctrl)
		handler := NewAnalysisHandler(engine, drafts, snapshots)

		in := SubmitInput{
			Owner:      "anonymous",
			DraftID:    "5f0c6f2a-0000-4000-8000-000000000001",
			Submission: submission(),
		}

		engine.EXPECT().Analyze(gomock.Any(), in.Submission).Return(engineResult(40), nil)

		var persisted *domain.AnalysisResult
		snapshots.EXPECT().Save("anonymous", gomock.Any()).
			DoAndReturn(func(owner string, result *domain.AnalysisResult) error {
				persisted = result
				return nil
			})
		drafts.EXPECT().Delete(in.DraftID).Return(nil)

		result, err := handler.SubmitOperations(ctx, in)
		require.NoError(t, err)
		require.Same(t, persisted, result)

		require.NotEmpty(t, result.RiskSeries)
		require.NotEmpty(t, result.VarBacktest)
		require.Len(t, result.Drawdown, 40)
		require.NotEmpty(t, result.Histogram)
		require.NotNil(t, result.PortfolioBeta)
		require.NotNil(t, result.DistanceCorrelation)
		require.NotNil(t, result.Network)
		require.Len(t, result.Network.Nodes, 3)
	})

	t.Run("draft cleanup failure does not fail the submission", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		engine := mock_repository.NewMockAnalysisEngine(ctrl)
		drafts := mock_repository.NewMockDraftRepository(ctrl)
		snapshots := mock_repository.NewMockSnapshotRepository(ctrl)
		handler := NewAnalysisHandler(engine, drafts, snapshots)

		in := SubmitInput{Owner: "anonymous", DraftID: "5f0c6f2a-0000-4000-8000-000000000002", Submission: submission()}
		engine.EXPECT().Analyze(gomock.Any(), gomock.Any()).Return(engineResult(5), nil)
		snapshots.EXPECT().Save("anonymous", gomock.Any()).Return(nil)
		drafts.EXPECT().Delete(in.DraftID).Return(errors.New("locked"))

		_, err := handler.SubmitOperations(ctx, in)
		require.NoError(t, err)
	})

	t.Run("validation failure never reaches the engine", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		engine := mock_repository.NewMockAnalysisEngine(ctrl)
		drafts := mock_repository.NewMockDraftRepository(ctrl)
		snapshots := mock_repository.NewMockSnapshotRepository(ctrl)
		handler := NewAnalysisHandler(engine, drafts, snapshots)

		invalid := submission()
		invalid.InitialValue = decimal.Zero

		_, err := handler.SubmitOperations(ctx, SubmitInput{Owner: "anonymous", Submission: invalid})

		var categorized *domain.CategorizedError
		require.ErrorAs(t, err, &categorized)
		require.Equal(t, domain.ErrorCategory_Validation, categorized.Category)
	})

	t.Run("engine failure leaves the draft and snapshot untouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		engine := mock_repository.NewMockAnalysisEngine(ctrl)
		drafts := mock_repository.NewMockDraftRepository(ctrl)
		snapshots := mock_repository.NewMockSnapshotRepository(ctrl)
		handler := NewAnalysisHandler(engine, drafts, snapshots)

		engineErr := domain.NewServerError(503, errors.New("engine returned 503"))
		engine.EXPECT().Analyze(gomock.Any(), gomock.Any()).Return(nil, engineErr)

		_, err := handler.SubmitOperations(ctx, SubmitInput{
			Owner:      "anonymous",
			DraftID:    "5f0c6f2a-0000-4000-8000-000000000003",
			Submission: submission(),
		})
		require.ErrorIs(t, err, engineErr)
	})

	t.Run("missing correlation matrix falls back to portfolio vs benchmark", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		engine := mock_repository.NewMockAnalysisEngine(ctrl)
		drafts := mock_repository.NewMockDraftRepository(ctrl)
		snapshots := mock_repository.NewMockSnapshotRepository(ctrl)
		handler := NewAnalysisHandler(engine, drafts, snapshots)

		withoutCorrelation := engineResult(40)
		withoutCorrelation.Correlation = nil
		engine.EXPECT().Analyze(gomock.Any(), gomock.Any()).Return(withoutCorrelation, nil)
		snapshots.EXPECT().Save("anonymous", gomock.Any()).Return(nil)

		result, err := handler.SubmitOperations(ctx, SubmitInput{Owner: "anonymous", Submission: submission()})
		require.NoError(t, err)
		require.NotNil(t, result.Correlation)
		require.Equal(t, []string{"BENCHMARK", "PORTFOLIO"}, result.Correlation.Tickers)
	})

	t.Run("short series skips the risk series but keeps drawdown", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		engine := mock_repository.NewMockAnalysisEngine(ctrl)
		drafts := mock_repository.NewMockDraftRepository(ctrl)
		snapshots := mock_repository.NewMockSnapshotRepository(ctrl)
		handler := NewAnalysisHandler(engine, drafts, snapshots)

		engine.EXPECT().Analyze(gomock.Any(), gomock.Any()).Return(engineResult(10), nil)
		snapshots.EXPECT().Save("anonymous", gomock.Any()).Return(nil)

		result, err := handler.SubmitOperations(ctx, SubmitInput{Owner: "anonymous", Submission: submission()})
		require.NoError(t, err)
		require.Empty(t, result.RiskSeries)
		require.Empty(t, result.VarBacktest)
		require.Len(t, result.Drawdown, 10)
	})
}

func Test_BuildNetwork(t *testing.T) {
	matrix := &domain.Matrix{
		Tickers: []string{"BBDC4", "ITUB4", "PETR4", "VALE3"},
		Values: [][]float64{
			{1, 0.8, 0.05, 0.02},
			{0.8, 1, 0.1, 0.03},
			{0.05, 0.1, 1, -0.7},
			{0.02, 0.03, -0.7, 1},
		},
	}

	network := BuildNetwork(matrix, 0.3, layout.DefaultConfig())

	require.Len(t, network.Nodes, 4)
	// only the two |rho| >= 0.3 pairs survive
	require.Len(t, network.Edges, 2)

	// negative correlation keeps its magnitude as the edge weight
	var petrVale *domain.NetworkEdge
	for i := range network.Edges {
		e := &network.Edges[i]
		if matrix.Tickers[e.Source] == "PETR4" {
			petrVale = e
		}
	}
	require.NotNil(t, petrVale)
	require.InDelta(t, 0.7, petrVale.Weight, 1e-9)

	// the banks form one cluster, the commodity pair another
	require.Equal(t, network.Nodes[0].Cluster, network.Nodes[1].Cluster)
	require.Equal(t, network.Nodes[2].Cluster, network.Nodes[3].Cluster)
	require.NotEqual(t, network.Nodes[0].Cluster, network.Nodes[2].Cluster)

	// centrality sums the incident weights
	require.InDelta(t, 0.8, network.Nodes[0].Centrality, 1e-9)
	require.InDelta(t, 0.7, network.Nodes[3].Centrality, 1e-9)

	for _, n := range network.Nodes {
		require.False(t, math.IsNaN(n.X))
		require.False(t, math.IsNaN(n.Y))
	}
}
