package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OperationType string

const (
	OperationType_Buy  OperationType = "buy"
	OperationType_Sell OperationType = "sell"
)

func NewOperationType(s string) (*OperationType, error) {
	t := OperationType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case OperationType_Buy, OperationType_Sell:
		return &t, nil
	}
	return nil, fmt.Errorf("unknown operation type %q", s)
}

// Operation is a single user-entered trade record.
type Operation struct {
	Date   Date            `json:"date"`
	Ticker string          `json:"ticker"`
	Type   OperationType   `json:"type"`
	Value  decimal.Decimal `json:"value"`
}

// Submission is the validated payload sent to the analytics engine. The wire
// contract keeps the original Portuguese field names.
type Submission struct {
	InitialValue decimal.Decimal `json:"valorInicial"`
	StartDate    Date            `json:"dataInicial"`
	Operations   []Operation     `json:"operacoes"`
}

// Draft is an in-progress operations form, persisted so the client can
// restore it on page load. Payload is stored verbatim.
type Draft struct {
	ID        string    `json:"id"`
	Owner     string    `json:"-"`
	Payload   []byte    `json:"payload"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
