package cli

import (
	"context"

	"github.com/nimasrn/finance-etl/internal/loader"
	"github.com/nimasrn/finance-etl/internal/report"
	"github.com/nimasrn/finance-etl/internal/repository"
	"github.com/nimasrn/finance-etl/internal/source"
	"github.com/nimasrn/finance-etl/pkg/pg"
	"github.com/nimasrn/finance-etl/pkg/prom"
	"github.com/spf13/cobra"
)

type loadFlags struct {
	users        string
	cards        string
	transactions string
}

// loadFunc runs one or more loads against an open loader.
type loadFunc func(ctx context.Context, l *loader.Loader) ([]loader.Result, error)

func newLoadCmd(loadConfig configLoader) *cobra.Command {
	f := &loadFlags{}
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Bulk-load the exports into the database",
	}
	cmd.PersistentFlags().StringVar(&f.users, "users", "users_data.csv", "users csv file")
	cmd.PersistentFlags().StringVar(&f.cards, "cards", "cards_data.csv", "cards csv file")
	cmd.PersistentFlags().StringVar(&f.transactions, "transactions", "transactions_data.csv", "transactions csv file")

	readUsersCards := func() ([]source.UserRow, []source.CardRow, error) {
		users, err := source.ReadFile(f.users, source.ReadUsers)
		if err != nil {
			return nil, nil, err
		}
		cards, err := source.ReadFile(f.cards, source.ReadCards)
		if err != nil {
			return nil, nil, err
		}
		return users, cards, nil
	}

	usersCards := func(ctx context.Context, l *loader.Loader) ([]loader.Result, error) {
		users, cards, err := readUsersCards()
		if err != nil {
			return nil, err
		}
		return l.LoadUsersAndCards(ctx, users, cards), nil
	}
	transactions := func(ctx context.Context, l *loader.Loader) ([]loader.Result, error) {
		rows, err := source.ReadFile(f.transactions, source.ReadTransactions)
		if err != nil {
			return nil, err
		}
		return l.LoadTransactions(ctx, rows), nil
	}
	// all reads every file before the first batch is written.
	all := func(ctx context.Context, l *loader.Loader) ([]loader.Result, error) {
		users, cards, err := readUsersCards()
		if err != nil {
			return nil, err
		}
		rows, err := source.ReadFile(f.transactions, source.ReadTransactions)
		if err != nil {
			return nil, err
		}
		results := l.LoadUsersAndCards(ctx, users, cards)
		return append(results, l.LoadTransactions(ctx, rows)...), nil
	}

	cmd.AddCommand(
		newLoadSubCmd("users-cards", "Load users, then cards", loadConfig, usersCards),
		newLoadSubCmd("transactions", "Derive and load merchants, then transactions", loadConfig, transactions),
		newLoadSubCmd("all", "Load users and cards, then merchants and transactions", loadConfig, all),
	)
	return cmd
}

func newLoadSubCmd(use, short string, loadConfig configLoader, run loadFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLoad(cmd, loadConfig, run)
		},
	}
}

// runLoad opens the database once, runs the load and always closes the
// connection before reporting the final status.
func runLoad(cmd *cobra.Command, loadConfig configLoader, run loadFunc) (err error) {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err = cfg.Validate(); err != nil {
		return err
	}
	if err = prom.Create(hostname(), cfg.AppEnv, cfg.PromNamespace); err != nil {
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
	db, err := pg.Open(cfg.Postgres())
	if err != nil {
		r.Error("Error connecting to the database: %v", err)
		return err
	}
	r.Success("Connected to %s database", cfg.DBDriver)
	defer func() {
		r.Finish(db.Close())
		r.Push(cfg.PromPushgatewayURL)
	}()

	l := loader.NewLoader(repository.NewSinkRepository(db, cfg.LoadBatchSize), r)
	results, err := run(cmd.Context(), l)
	if err != nil {
		r.Error("Error: %v", err)
		return err
	}
	return loader.Failed(results)
}
