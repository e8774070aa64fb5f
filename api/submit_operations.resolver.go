package api

import (
	"context"
	"strings"

	"carteira/internal/app"
	"carteira/internal/domain"
	"carteira/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// SubmitOperationsRequest is the wire form of a submission. Dates arrive as
// strings so a bad date becomes a validation detail instead of a bind error;
// all parse failures are collected and reported together.
type SubmitOperationsRequest struct {
	InitialValue decimal.Decimal    `json:"valorInicial"`
	StartDate    string             `json:"dataInicial"`
	Operations   []operationRequest `json:"operacoes"`
	DraftID      string             `json:"draftId"`
}

type operationRequest struct {
	Date   string          `json:"date"`
	Ticker string          `json:"ticker"`
	Type   string          `json:"type"`
	Value  decimal.Decimal `json:"value"`
}

func (r SubmitOperationsRequest) toSubmission() domain.Submission {
	submission := domain.Submission{
		InitialValue: r.InitialValue,
		Operations:   make([]domain.Operation, len(r.Operations)),
	}
	if startDate, err := domain.ParseDate(r.StartDate); err == nil {
		submission.StartDate = startDate
	}
	for i, op := range r.Operations {
		operation := domain.Operation{
			Ticker: strings.ToUpper(strings.TrimSpace(op.Ticker)),
			Type:   domain.OperationType(strings.ToLower(op.Type)),
			Value:  op.Value,
		}
		if date, err := domain.ParseDate(op.Date); err == nil {
			operation.Date = date
		}
		submission.Operations[i] = operation
	}
	return submission
}

func (m ApiHandler) submitOperations(c *gin.Context) {
	log := logger.FromContext(c.Request.Context())
	profile, endProfile := domain.NewProfile()
	ctx := context.WithValue(c.Request.Context(), domain.ContextProfileKey, profile) //nolint:staticcheck
	defer func() {
		endProfile()
		if bytes, err := profile.ToJsonBytes(); err == nil {
			log.Infow("submission profile", "profile", string(bytes))
		}
	}()

	var requestBody SubmitOperationsRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorCode(c, 400, "Requisição malformada. Verifique o corpo enviado.")
		return
	}

	result, err := m.AnalysisHandler.SubmitOperations(ctx, app.SubmitInput{
		Owner:      ownerFromContext(c),
		DraftID:    requestBody.DraftID,
		Submission: requestBody.toSubmission(),
	})
	if err != nil {
		returnError(c, err)
		return
	}

	c.JSON(200, result)
}
