package main

import (
	"context"
	"fmt"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/joho/godotenv"

	"ledgerd/internal/report"
	"ledgerd/internal/store/jsonfile"
)

type Params struct {
	File    string `descr:"Path to the ledger file" default:"./data/expenses.json"`
	Format  string `descr:"Output format" alts:"table,json,xlsx" strict:"true" default:"table"`
	Output  string `descr:"Output path for xlsx format" default:"./report.xlsx"`
	Config  string `descr:"Path to a YAML report options file" default:"./report.yaml"`
	Summary bool   `descr:"Show only per-category totals, no expense listing"`
}

func main() {
	_ = godotenv.Load()

	boa.NewCmdT[Params]("ledgerd-report").
		WithShort("Render reports from a ledger file").
		WithLong("Reads the expense ledger and renders per-category totals and the expense listing as a terminal table, JSON, or an xlsx workbook.").
		WithRunFunc(func(params *Params) {
			if err := run(params); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}).
		Run()
}

func run(params *Params) error {
	store, err := jsonfile.New(params.File)
	if err != nil {
		return fmt.Errorf("opening ledger %s: %w", params.File, err)
	}

	ctx := context.Background()
	expenses, err := store.ListExpenses(ctx)
	if err != nil {
		return err
	}
	summary, err := store.ReadSummary(ctx)
	if err != nil {
		return err
	}

	opts, err := report.LoadOptions(params.Config)
	if err != nil {
		return err
	}
	if params.Summary {
		opts.ShowItems = false
	}

	switch params.Format {
	case "json":
		return report.WriteJSON(os.Stdout, summary, expenses, opts)
	case "xlsx":
		if err := report.WriteWorkbook(params.Output, expenses, summary); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", params.Output)
		return nil
	default:
		report.RenderSummary(os.Stdout, summary, opts)
		if opts.ShowItems && len(expenses) > 0 {
			fmt.Println()
			report.RenderExpenses(os.Stdout, expenses, opts)
		}
		return nil
	}
}
