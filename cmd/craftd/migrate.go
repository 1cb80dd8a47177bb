package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/craftd/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long:  `Apply the embedded PostgreSQL schema. Safe to run repeatedly.`,
	RunE:  runMigrate,
}

var migrateDatabaseURL string

func init() {
	migrateCmd.Flags().StringVar(&migrateDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = migrateDatabaseURL
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url is required")
	}

	database, err := db.Connect(cmd.Context(), cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.Migrate(cmd.Context()); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
	return nil
}
