package cli

import (
	"os"

	"github.com/nimasrn/finance-etl/internal/filter"
	"github.com/nimasrn/finance-etl/internal/report"
	"github.com/nimasrn/finance-etl/internal/skiplog"
	"github.com/nimasrn/finance-etl/internal/source"
	"github.com/nimasrn/finance-etl/internal/transform"
	"github.com/nimasrn/finance-etl/pkg/prom"
	"github.com/spf13/cobra"
)

type filterFlags struct {
	in  string
	out string
}

func newFilterCmd(loadConfig configLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Write normalized copies of the exports",
	}

	cards := &filterFlags{}
	cardsCmd := &cobra.Command{
		Use:   "cards",
		Short: "Normalize cards and add the status column",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFilter(cmd, loadConfig, func(r *report.Reporter) error {
				rows, err := source.ReadFile(cards.in, source.ReadCards)
				if err != nil {
					return err
				}
				out := filter.Cards(rows)
				if err = source.WriteFile(cards.out, out); err != nil {
					return err
				}
				r.Success("Wrote %d cards to %s", len(out), cards.out)
				return nil
			})
		},
	}
	bindFilterFlags(cardsCmd, cards, "cards_data.csv", "filtered/cards_data_filtered.csv")

	txns := &filterFlags{}
	txnsCmd := &cobra.Command{
		Use:   "transactions",
		Short: "Clean amounts, zips and optional text of transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFilter(cmd, loadConfig, func(r *report.Reporter) error {
				rows, err := source.ReadFile(txns.in, source.ReadTransactions)
				if err != nil {
					return err
				}
				out, rejected := filter.Transactions(rows)
				r.RowsSkipped(transform.TableTransactions, rejected)
				if err = source.WriteFile(txns.out, out); err != nil {
					return err
				}
				r.Success("Wrote %d transactions to %s", len(out), txns.out)
				return nil
			})
		},
	}
	bindFilterFlags(txnsCmd, txns, "transactions_data.csv", "filtered/transactions_data_filtered.csv")

	cmd.AddCommand(cardsCmd, txnsCmd)
	return cmd
}

func bindFilterFlags(cmd *cobra.Command, f *filterFlags, in, out string) {
	cmd.Flags().StringVar(&f.in, "in", in, "source csv file")
	cmd.Flags().StringVar(&f.out, "out", out, "normalized csv file to write")
}

func runFilter(cmd *cobra.Command, loadConfig configLoader, run func(r *report.Reporter) error) (err error) {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err = prom.Create(hostname(), cfg.AppEnv, cfg.PromNamespace); err != nil {
		return err
	}
	if err = filter.RegisterMetrics(); err != nil {
		return err
	}

	skips, err := openSkipLog(cfg.SkipLogPath)
	if err != nil {
		return err
	}
	if skips != nil {
		defer func() {
			if cerr := skips.Close(); err == nil {
				err = cerr
			}
		}()
	}

	r := report.New(cmd.OutOrStdout(), skips)
	if err = run(r); err != nil {
		r.Error("Error: %v", err)
		return err
	}
	r.Push(cfg.PromPushgatewayURL)
	return nil
}

func openSkipLog(path string) (*skiplog.Log, error) {
	if path == "" {
		return nil, nil
	}
	return skiplog.Open(path)
}

func hostname() string {
	host, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return host
}
