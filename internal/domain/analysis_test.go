package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_AnalysisResult_UnmarshalJSON(t *testing.T) {
	t.Run("canonical shape", func(t *testing.T) {
		payload := `{
			"performance": [
				{"date": "2024-01-02", "portfolioValue": 100, "benchmarkValue": 100},
				{"date": "2024-01-03", "portfolioValue": 101, "benchmarkValue": 100.5}
			],
			"betas": {"PETR4": 1.2}
		}`
		result := AnalysisResult{}
		require.NoError(t, json.Unmarshal([]byte(payload), &result))
		require.Len(t, result.Performance, 2)
		require.Equal(t, "2024-01-03", result.Performance[1].Date.String())
		require.Equal(t, 1.2, result.Betas["PETR4"])
	})

	t.Run("legacy results nesting is normalized", func(t *testing.T) {
		payload := `{
			"results": {
				"performance": [
					{"date": "2024-01-02", "portfolioValue": 100, "benchmarkValue": 100}
				],
				"allocation": [{"ticker": "PETR4", "weight": 1}]
			}
		}`
		result := AnalysisResult{}
		require.NoError(t, json.Unmarshal([]byte(payload), &result))
		require.Len(t, result.Performance, 1)
		require.Equal(t, "PETR4", result.Allocation[0].Ticker)
	})

	t.Run("canonical shape wins when both are present", func(t *testing.T) {
		payload := `{
			"performance": [
				{"date": "2024-01-02", "portfolioValue": 1, "benchmarkValue": 1},
				{"date": "2024-01-03", "portfolioValue": 2, "benchmarkValue": 2}
			],
			"results": {
				"performance": [{"date": "2020-01-02", "portfolioValue": 9, "benchmarkValue": 9}]
			}
		}`
		result := AnalysisResult{}
		require.NoError(t, json.Unmarshal([]byte(payload), &result))
		require.Len(t, result.Performance, 2)
	})

	t.Run("timestamp dates are accepted", func(t *testing.T) {
		payload := `{"performance": [{"date": "2024-01-02T00:00:00Z", "portfolioValue": 1, "benchmarkValue": 1}]}`
		result := AnalysisResult{}
		require.NoError(t, json.Unmarshal([]byte(payload), &result))
		require.Equal(t, "2024-01-02", result.Performance[0].Date.String())
	})
}
