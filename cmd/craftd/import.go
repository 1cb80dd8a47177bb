package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/craftd/internal/db"
	"github.com/jonathan/craftd/internal/portfolio"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a portfolio file into the database",
	Long: `Validate a portfolio JSON file against the portfolio schema and replace the user's
work experiences, career events and job applications with its contents in one transaction.`,
	RunE: runImport,
}

var (
	importFile        string
	importUser        string
	importDatabaseURL string
	importMigrate     bool
)

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "Path to portfolio JSON file (required)")
	importCmd.Flags().StringVarP(&importUser, "user", "u", "", "User UUID to import for (defaults to CRAFTD_USER_ID)")
	importCmd.Flags().StringVar(&importDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	importCmd.Flags().BoolVar(&importMigrate, "migrate", false, "Apply the schema before importing")

	if err := importCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("user") {
		cfg.UserID = importUser
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = importDatabaseURL
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	userID, err := cfg.ParsedUserID()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url is required")
	}

	doc, err := portfolio.Load(importFile)
	if err != nil {
		return fmt.Errorf("failed to load portfolio: %w", err)
	}

	ctx := cmd.Context()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if importMigrate {
		if err := database.Migrate(ctx); err != nil {
			return err
		}
	}

	summary, err := database.ImportPortfolio(ctx, userID, doc)
	if err != nil {
		return fmt.Errorf("failed to import portfolio: %w", err)
	}

	printImportSummary(cmd.OutOrStdout(), importFile, summary)
	return nil
}

func printImportSummary(w io.Writer, path string, s *db.ImportSummary) {
	_, _ = fmt.Fprintf(w, "Imported %s\n", path)
	_, _ = fmt.Fprintf(w, "  Work experiences: %d\n", s.WorkExperiences)
	_, _ = fmt.Fprintf(w, "  Career events:    %d\n", s.CareerEvents)
	_, _ = fmt.Fprintf(w, "  Job applications: %d\n", s.JobApplications)
	_, _ = fmt.Fprintf(w, "  Companies:        %d\n", s.Companies)
}
