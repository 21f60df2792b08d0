package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/ibrahim77gh/salary-portal-backend/db/migrations"
	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

const migrationTable = "schema_migrations"

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back the embedded database migrations",
}

func init() {
	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE:  withDB(goose.Up),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the latest migration",
			RunE:  withDB(goose.Down),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print the status of every migration",
			RunE:  withDB(goose.Status),
		},
	)
}

func withDB(run func(db *sql.DB, dir string, opts ...goose.OptionsFunc) error) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := cfg.ValidateDatabase(); err != nil {
			return err
		}

		db, err := goose.OpenDBWithDriver("pgx", cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("goose: open db: %w", err)
		}
		defer db.Close()

		goose.SetBaseFS(migrations.FS)
		goose.SetTableName(migrationTable)
		if err := goose.SetDialect("postgres"); err != nil {
			return err
		}

		return run(db, ".")
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
