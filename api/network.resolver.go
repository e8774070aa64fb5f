package api

import (
	"strconv"

	"carteira/internal/app"

	"github.com/gin-gonic/gin"
)

// getNetwork returns the correlation network. The stored snapshot carries the
// layout built with the default edge threshold; passing ?threshold= rebuilds
// the graph and its layout from the stored correlation matrix.
func (m ApiHandler) getNetwork(c *gin.Context) {
	result := m.loadSnapshot(c)
	if result == nil {
		return
	}

	rawThreshold := c.Query("threshold")
	if rawThreshold == "" {
		if result.Network == nil {
			returnErrorCode(c, 404, "A análise atual não possui matriz de correlação.")
			return
		}
		c.JSON(200, result.Network)
		return
	}

	threshold, err := strconv.ParseFloat(rawThreshold, 64)
	if err != nil || threshold < 0 || threshold > 1 {
		returnErrorCode(c, 400, "O parâmetro threshold deve ser um número entre 0 e 1.")
		return
	}
	if result.Correlation == nil || len(result.Correlation.Tickers) < 2 {
		returnErrorCode(c, 404, "A análise atual não possui matriz de correlação.")
		return
	}

	network := app.BuildNetwork(result.Correlation, threshold, m.AnalysisHandler.LayoutConfig)
	c.JSON(200, network)
}
