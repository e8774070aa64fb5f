package api

import (
	"regexp"

	"github.com/gin-gonic/gin"
)

var quoteSymbolPattern = regexp.MustCompile(`^[A-Z]{4}[0-9]{1,2}$`)

// getQuote previews the latest market quote for a ticker while the user fills
// the form. Validation mirrors the submission ticker rule.
func (m ApiHandler) getQuote(c *gin.Context) {
	symbol := c.Param("symbol")
	if !quoteSymbolPattern.MatchString(symbol) {
		returnErrorCode(c, 400, "Ticker fora do padrão (ex.: PETR4).")
		return
	}

	quote, err := m.QuoteService.LatestQuote(symbol)
	if err != nil {
		returnError(c, err)
		return
	}
	c.JSON(200, quote)
}
