package cli

import (
	"os"

	"github.com/nimasrn/finance-etl/internal/config"
	"github.com/nimasrn/finance-etl/pkg/logger"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const defaultEnvFile = ".env"

// NewRootCmd builds the etl command tree.
func NewRootCmd() *cobra.Command {
	var envPath string

	root := &cobra.Command{
		Use:   "etl",
		Short: "Clean and load the card, user and transaction exports",
		Long: `etl normalizes the exported cards, users and transactions files and
bulk-loads them into the relational schema.

  etl filter cards|transactions   write normalized copies of an export
  etl load users-cards            load users, then cards
  etl load transactions           derive merchants, load them, then transactions
  etl load all                    both loads, in that order
  etl migrate                     create the schema

Exit Codes:
  0  - Success
  1  - Setup error (config, files, connection)
  2  - One or more batches failed`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envPath, "env", "", "dotenv file to load (default .env when present)")

	loadConfig := func() (*config.Config, error) {
		return loadEnv(envPath)
	}

	root.AddCommand(newFilterCmd(loadConfig))
	root.AddCommand(newLoadCmd(loadConfig))
	root.AddCommand(newMigrateCmd(loadConfig))
	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := NewRootCmd().Execute()
	if err != nil {
		logger.Error("etl failed", "error", err)
	}
	logger.Sync()
	return ExitCodeForError(err)
}

type configLoader func() (*config.Config, error)

// loadEnv reads configuration and rebuilds the logger for the configured
// environment. An empty path falls back to .env if it exists.
func loadEnv(path string) (*config.Config, error) {
	if path == "" {
		if _, err := os.Stat(defaultEnvFile); err == nil {
			path = defaultEnvFile
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if _, err = logger.NewLogger(logger.ConfigFor(cfg.AppEnv)); err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return cfg, nil
}
