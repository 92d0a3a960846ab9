package cli

import (
	"github.com/nimasrn/finance-etl/internal/report"
	"github.com/nimasrn/finance-etl/internal/repository"
	"github.com/nimasrn/finance-etl/migrations"
	"github.com/nimasrn/finance-etl/pkg/pg"
	"github.com/spf13/cobra"
)

func newMigrateCmd(loadConfig configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the users, cards, merchants and transactions tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err = cfg.Validate(); err != nil {
				return err
			}

			r := report.New(cmd.OutOrStdout(), nil)
			if err = migrate(cmd, cfg.Postgres()); err != nil {
				r.Error("Error migrating: %v", err)
				return err
			}
			r.Success("Schema is up to date")
			return nil
		},
	}
}

// migrate runs the goose migrations on postgres. SQLite has no goose dialect
// wired here, so its tables come from the gorm entities.
func migrate(cmd *cobra.Command, cfg pg.Config) error {
	if cfg.Driver != pg.DriverSQLite {
		return pg.Migrate(cfg, migrations.FS, migrations.Dir)
	}

	db, err := pg.Open(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	return repository.AutoMigrate(cmd.Context(), db)
}
