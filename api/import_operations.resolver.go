package api

import (
	"fmt"
	"strings"

	"carteira/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

type operationCsvRow struct {
	Date   string `csv:"date"`
	Ticker string `csv:"ticker"`
	Type   string `csv:"type"`
	Value  string `csv:"value"`
}

// importOperations parses a CSV export (date,ticker,type,value) into
// operations the form can merge into its draft. Nothing is submitted here;
// unparseable rows fail the whole import with an itemized list.
func (m ApiHandler) importOperations(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		returnErrorCode(c, 400, "Envie o conteúdo CSV no corpo da requisição.")
		return
	}

	rows := []operationCsvRow{}
	if err := gocsv.UnmarshalBytes(body, &rows); err != nil {
		returnErrorCode(c, 400, "CSV malformado. Esperado cabeçalho date,ticker,type,value.")
		return
	}
	if len(rows) == 0 {
		returnErrorCode(c, 400, "O CSV não contém nenhuma operação.")
		return
	}

	details := []string{}
	operations := make([]domain.Operation, 0, len(rows))
	for i, row := range rows {
		line := i + 2 // header is line 1

		date, err := domain.ParseDate(strings.TrimSpace(row.Date))
		if err != nil {
			details = append(details, fmt.Sprintf("Linha %d: data %q inválida.", line, row.Date))
		}

		opType, err := domain.NewOperationType(row.Type)
		if err != nil {
			details = append(details, fmt.Sprintf("Linha %d: tipo %q inválido (use buy ou sell).", line, row.Type))
			continue
		}

		value, err := decimal.NewFromString(strings.TrimSpace(row.Value))
		if err != nil {
			details = append(details, fmt.Sprintf("Linha %d: valor %q inválido.", line, row.Value))
			continue
		}

		operations = append(operations, domain.Operation{
			Date:   date,
			Ticker: strings.ToUpper(strings.TrimSpace(row.Ticker)),
			Type:   *opType,
			Value:  value,
		})
	}

	if len(details) > 0 {
		returnError(c, domain.NewValidationError(details))
		return
	}

	c.JSON(200, gin.H{"operations": operations})
}
