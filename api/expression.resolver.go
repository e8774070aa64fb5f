package api

import (
	"github.com/gin-gonic/gin"
)

type expressionRequest struct {
	Expression string `json:"expression"`
}

// evaluateExpression computes a derived series from the stored analysis,
// e.g. "(portfolio - benchmark) / benchmark" or "abs(ret) * 100".
func (m ApiHandler) evaluateExpression(c *gin.Context) {
	result := m.loadSnapshot(c)
	if result == nil {
		return
	}

	var requestBody expressionRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil || requestBody.Expression == "" {
		returnErrorCode(c, 400, "Informe uma expressão para avaliar.")
		return
	}

	series, err := m.ExpressionService.EvaluateSeries(result, requestBody.Expression)
	if err != nil {
		returnErrorCode(c, 422, "Não foi possível avaliar a expressão informada.")
		return
	}

	c.JSON(200, gin.H{
		"expression": requestBody.Expression,
		"series":     series,
	})
}
