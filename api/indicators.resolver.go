package api

import (
	"strconv"

	"carteira/internal/domain"
	"carteira/internal/service"

	"github.com/gin-gonic/gin"
)

func (m ApiHandler) getIndicators(c *gin.Context) {
	result := m.loadSnapshot(c)
	if result == nil {
		return
	}
	period := periodFromQuery(c)
	if period == nil {
		return
	}

	indicator, err := service.NewIndicatorType(c.Query("type"))
	if err != nil {
		returnErrorCode(c, 400, "Indicador inválido. Use sma, ema ou rsi.")
		return
	}

	window := 14
	if raw := c.Query("window"); raw != "" {
		window, err = strconv.Atoi(raw)
		if err != nil || window < 2 || window > 252 {
			returnErrorCode(c, 400, "O parâmetro window deve ser um inteiro entre 2 e 252.")
			return
		}
	}

	points := domain.Window(result.Performance, *period)
	series, err := service.Indicator(points, *indicator, window)
	if err != nil {
		returnErrorCode(c, 422, "Série insuficiente para calcular o indicador no período selecionado.")
		return
	}

	c.JSON(200, gin.H{
		"period":    *period,
		"indicator": *indicator,
		"window":    window,
		"series":    series,
	})
}
