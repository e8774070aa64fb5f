package api

import (
	"carteira/internal/calculator"
	"carteira/internal/domain"

	"github.com/gin-gonic/gin"
)

func (m ApiHandler) getRollingRisk(c *gin.Context) {
	result := m.loadSnapshot(c)
	if result == nil {
		return
	}
	period := periodFromQuery(c)
	if period == nil {
		return
	}
	c.JSON(200, gin.H{
		"period":     *period,
		"riskSeries": domain.Window(result.RiskSeries, *period),
	})
}

// getRiskBacktest summarizes violations over the requested period rather than
// returning the stored whole-history summary, so the violation rate matches
// what the chart shows.
func (m ApiHandler) getRiskBacktest(c *gin.Context) {
	result := m.loadSnapshot(c)
	if result == nil {
		return
	}
	period := periodFromQuery(c)
	if period == nil {
		return
	}

	windowed := domain.Window(result.RiskSeries, *period)
	summary := calculator.VarBacktestSummary(windowed)
	if *period == domain.Period_All && len(result.VarBacktest) > 0 {
		summary = result.VarBacktest
	}

	c.JSON(200, gin.H{
		"period":      *period,
		"varBacktest": summary,
	})
}
