package api

import (
	"carteira/internal/calculator"
	"carteira/internal/domain"

	"github.com/gin-gonic/gin"
)

const noAnalysisMessage = "Nenhuma análise disponível. Envie suas operações primeiro."

// loadSnapshot fetches the owner's last analysis or aborts with 404.
func (m ApiHandler) loadSnapshot(c *gin.Context) *domain.AnalysisResult {
	result, err := m.AnalysisHandler.LatestAnalysis(ownerFromContext(c))
	if err != nil {
		returnError(c, err)
		return nil
	}
	if result == nil {
		returnErrorCode(c, 404, noAnalysisMessage)
		return nil
	}
	return result
}

func periodFromQuery(c *gin.Context) *domain.Period {
	period, err := domain.NewPeriod(c.Query("period"))
	if err != nil {
		returnErrorCode(c, 400, "Período inválido. Use 1M, 3M, 6M, YTD, 1Y, 5Y ou ALL.")
		return nil
	}
	return period
}

func (m ApiHandler) getAnalysis(c *gin.Context) {
	result := m.loadSnapshot(c)
	if result == nil {
		return
	}
	c.JSON(200, result)
}

func (m ApiHandler) getPerformance(c *gin.Context) {
	result := m.loadSnapshot(c)
	if result == nil {
		return
	}
	period := periodFromQuery(c)
	if period == nil {
		return
	}
	c.JSON(200, gin.H{
		"period":      *period,
		"performance": domain.Window(result.Performance, *period),
	})
}

func (m ApiHandler) getDrawdown(c *gin.Context) {
	result := m.loadSnapshot(c)
	if result == nil {
		return
	}
	period := periodFromQuery(c)
	if period == nil {
		return
	}
	c.JSON(200, gin.H{
		"period":   *period,
		"drawdown": domain.Window(result.Drawdown, *period),
	})
}

func (m ApiHandler) getHistogram(c *gin.Context) {
	result := m.loadSnapshot(c)
	if result == nil {
		return
	}

	response := gin.H{"histogram": result.Histogram}
	_, returns := calculator.PerformanceReturns(result.Performance)
	if stats, err := calculator.Summarize(returns); err == nil {
		response["stats"] = stats
	}
	c.JSON(200, response)
}

func (m ApiHandler) getAllocation(c *gin.Context) {
	result := m.loadSnapshot(c)
	if result == nil {
		return
	}
	c.JSON(200, gin.H{"allocation": result.Allocation})
}
