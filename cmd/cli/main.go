package main

import (
	"fmt"
	"os"
	"strings"

	"carteira/cmd"
	"carteira/internal/domain"
	"carteira/internal/util"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "carteira",
		Short: "Portfolio risk dashboard backend",
	}
	root.AddCommand(serveCmd(), importCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var port int

	c := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(_ *cobra.Command, _ []string) error {
			deps, err := cmd.InitializeDependencies()
			if err != nil {
				return err
			}
			defer deps.Close()

			if port == 0 {
				port = deps.Port
			}
			return deps.ApiHandler.StartApi(port)
		},
	}
	c.Flags().IntVar(&port, "port", 0, "listen port (defaults to secrets.json)")
	return c
}

// importCmd parses an operations CSV and prints the wire-format operations,
// handy for sanity-checking an export before pasting it into the form.
func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Parse an operations CSV (date,ticker,type,value)",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			type csvRow struct {
				Date   string `csv:"date"`
				Ticker string `csv:"ticker"`
				Type   string `csv:"type"`
				Value  string `csv:"value"`
			}
			rows := []csvRow{}
			if err := gocsv.UnmarshalBytes(raw, &rows); err != nil {
				return fmt.Errorf("failed to parse csv: %w", err)
			}

			operations := make([]domain.Operation, 0, len(rows))
			for i, row := range rows {
				date, err := domain.ParseDate(strings.TrimSpace(row.Date))
				if err != nil {
					return fmt.Errorf("line %d: %w", i+2, err)
				}
				opType, err := domain.NewOperationType(row.Type)
				if err != nil {
					return fmt.Errorf("line %d: %w", i+2, err)
				}
				value, err := decimal.NewFromString(strings.TrimSpace(row.Value))
				if err != nil {
					return fmt.Errorf("line %d: invalid value %q", i+2, row.Value)
				}
				operations = append(operations, domain.Operation{
					Date:   date,
					Ticker: strings.ToUpper(strings.TrimSpace(row.Ticker)),
					Type:   *opType,
					Value:  value,
				})
			}

			util.Pprint(operations)
			return nil
		},
	}
}
