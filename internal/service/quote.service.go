package service

import (
	"fmt"
	"strings"
	"time"

	"carteira/internal/domain"

	"github.com/piquette/finance-go/quote"
)

type Quote struct {
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	ChangePercent float64   `json:"changePercent"`
	Currency      string    `json:"currency"`
	Time          time.Time `json:"time"`
}

type QuoteService interface {
	LatestQuote(symbol string) (*Quote, error)
}

func NewQuoteService() QuoteService {
	return quoteServiceHandler{}
}

type quoteServiceHandler struct{}

// LatestQuote fetches the most recent market quote for a B3 symbol. Yahoo
// lists B3 tickers under the .SA suffix; callers pass the bare symbol the
// form uses (PETR4), the suffix is handled here.
func (h quoteServiceHandler) LatestQuote(symbol string) (*Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	yahooSymbol := symbol
	if !strings.Contains(yahooSymbol, ".") {
		yahooSymbol += ".SA"
	}

	q, err := quote.Get(yahooSymbol)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote for %s: %w", symbol, err)
	}
	if q == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("Cotação não encontrada para %s.", symbol))
	}

	return &Quote{
		Symbol:        symbol,
		Name:          q.ShortName,
		Price:         q.RegularMarketPrice,
		ChangePercent: q.RegularMarketChangePercent,
		Currency:      q.CurrencyID,
		Time:          time.Unix(int64(q.RegularMarketTime), 0).UTC(),
	}, nil
}
