package service

import (
	"fmt"
	"regexp"
	"time"

	"carteira/internal/domain"

	"github.com/shopspring/decimal"
)

// tickerPattern matches B3 symbols: four letters and one or two digits
// (PETR4, VALE3, BOVA11).
var tickerPattern = regexp.MustCompile(`^[A-Z]{4}[0-9]{1,2}$`)

// ValidateSubmission runs every check and reports all failures at once, so
// the form can show an itemized list instead of one error per round trip.
// Returns nil when the submission is acceptable.
func ValidateSubmission(submission domain.Submission, now time.Time) error {
	details := []string{}

	if submission.InitialValue.LessThanOrEqual(decimal.Zero) {
		details = append(details, "O valor inicial deve ser maior que zero.")
	}
	if submission.StartDate.IsZero() {
		details = append(details, "A data inicial é obrigatória.")
	} else if submission.StartDate.After(now) {
		details = append(details, "A data inicial não pode estar no futuro.")
	}
	if len(submission.Operations) == 0 {
		details = append(details, "Informe ao menos uma operação.")
	}

	boughtByTicker := map[string]decimal.Decimal{}
	for i, op := range submission.Operations {
		position := i + 1

		if op.Date.IsZero() {
			details = append(details, fmt.Sprintf("Operação %d: data ausente ou inválida.", position))
		} else {
			if !submission.StartDate.IsZero() && op.Date.Before(submission.StartDate.Time) {
				details = append(details, fmt.Sprintf("Operação %d: data anterior à data inicial da carteira.", position))
			}
			if op.Date.After(now) {
				details = append(details, fmt.Sprintf("Operação %d: data no futuro.", position))
			}
		}

		if !tickerPattern.MatchString(op.Ticker) {
			details = append(details, fmt.Sprintf("Operação %d: ticker %q fora do padrão (ex.: PETR4).", position, op.Ticker))
		}

		if op.Type != domain.OperationType_Buy && op.Type != domain.OperationType_Sell {
			details = append(details, fmt.Sprintf("Operação %d: tipo deve ser compra (buy) ou venda (sell).", position))
			continue
		}

		if op.Value.LessThanOrEqual(decimal.Zero) {
			details = append(details, fmt.Sprintf("Operação %d: o valor deve ser maior que zero.", position))
			continue
		}

		// sells must be covered by earlier buys of the same ticker; the
		// operations arrive in form order, which the UI keeps chronological
		bought := boughtByTicker[op.Ticker]
		if op.Type == domain.OperationType_Buy {
			boughtByTicker[op.Ticker] = bought.Add(op.Value)
		} else if op.Value.GreaterThan(bought) {
			details = append(details, fmt.Sprintf("Operação %d: venda de %s excede o total comprado até então.", position, op.Ticker))
		} else {
			boughtByTicker[op.Ticker] = bought.Sub(op.Value)
		}
	}

	if len(details) > 0 {
		return domain.NewValidationError(details)
	}
	return nil
}
