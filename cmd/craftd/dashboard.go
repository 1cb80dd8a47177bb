package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/craftd/internal/careermetrics"
	"github.com/jonathan/craftd/internal/config"
	"github.com/jonathan/craftd/internal/db"
	"github.com/jonathan/craftd/internal/observability"
	"github.com/jonathan/craftd/internal/portfolio"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print a user's career dashboard",
	Long: `Compute the career dashboard for a user, reading records from PostgreSQL or,
with --file, straight from a portfolio JSON file without a database.`,
	RunE: runDashboard,
}

var (
	dashboardUser        string
	dashboardFile        string
	dashboardDatabaseURL string
	dashboardEvents      int
	dashboardJSON        bool
)

func init() {
	dashboardCmd.Flags().StringVarP(&dashboardUser, "user", "u", "", "User UUID (defaults to CRAFTD_USER_ID; optional with --file)")
	dashboardCmd.Flags().StringVarP(&dashboardFile, "file", "f", "", "Read records from a portfolio JSON file instead of the database")
	dashboardCmd.Flags().StringVar(&dashboardDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	dashboardCmd.Flags().IntVar(&dashboardEvents, "events", 0, "Number of recent career events to include")
	dashboardCmd.Flags().BoolVar(&dashboardJSON, "json", false, "Print the dashboard as JSON")
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("user") {
		cfg.UserID = dashboardUser
	}
	if cmd.Flags().Changed("file") {
		cfg.Portfolio = dashboardFile
		cfg.DatabaseURL = ""
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = dashboardDatabaseURL
	}
	if cmd.Flags().Changed("events") {
		cfg.RecentEventLimit = dashboardEvents
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	repo, userID, closeRepo, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	svc := careermetrics.NewService(repo, careermetrics.WithRecentEventLimit(cfg.RecentEventLimit))
	data, err := svc.Dashboard(ctx, userID)
	if err != nil {
		return err
	}

	if dashboardJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
	printDashboard(cmd.OutOrStdout(), data)
	if cfg.Verbose {
		_, _ = fmt.Fprintln(cmd.OutOrStdout())
		observability.NewPrinter(cmd.OutOrStdout()).PrintDetails(data)
	}
	return nil
}

// openRepository picks the record source: a portfolio file when one is
// configured, PostgreSQL otherwise.
func openRepository(ctx context.Context, cfg config.Config) (careermetrics.Repository, uuid.UUID, func(), error) {
	if cfg.Portfolio != "" {
		userID := uuid.New()
		if cfg.UserID != "" {
			var err error
			if userID, err = cfg.ParsedUserID(); err != nil {
				return nil, uuid.Nil, nil, err
			}
		}
		repo, err := loadPortfolioRepository(cfg.Portfolio, userID)
		if err != nil {
			return nil, uuid.Nil, nil, err
		}
		return repo, userID, func() {}, nil
	}

	userID, err := cfg.ParsedUserID()
	if err != nil {
		return nil, uuid.Nil, nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, uuid.Nil, nil, fmt.Errorf("DATABASE_URL environment variable, --db-url or --file is required")
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, uuid.Nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return database, userID, database.Close, nil
}

func loadPortfolioRepository(path string, userID uuid.UUID) (*portfolio.MemoryRepository, error) {
	doc, err := portfolio.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}
	recs, err := doc.Records(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid portfolio: %w", err)
	}
	repo := portfolio.NewMemoryRepository()
	repo.Put(userID, recs)
	return repo, nil
}

func printDashboard(w io.Writer, d *careermetrics.CareerDashboardData) {
	fm := d.FinancialMetrics
	cp := d.CareerProgression
	am := d.JobApplicationMetrics

	_, _ = fmt.Fprintf(w, "Career dashboard (%s)\n\n", d.GeneratedAt.Format("2006-01-02"))

	_, _ = fmt.Fprintln(w, "Compensation")
	_, _ = fmt.Fprintf(w, "  Current salary:       %s\n", careermetrics.FormatCurrency(fm.CurrentSalary))
	_, _ = fmt.Fprintf(w, "  Current total comp:   %s\n", careermetrics.FormatCurrency(fm.CurrentTotalComp))
	_, _ = fmt.Fprintf(w, "  First salary:         %s\n", careermetrics.FormatCurrency(fm.FirstSalary))
	_, _ = fmt.Fprintf(w, "  Career growth:        %s\n", careermetrics.FormatPercentage(fm.TotalCareerGrowth, 1))
	_, _ = fmt.Fprintf(w, "  Annual growth (CAGR): %s\n", careermetrics.FormatPercentage(fm.CompoundAnnualGrowthRate, 1))
	_, _ = fmt.Fprintf(w, "  Total bonuses:        %s\n", careermetrics.FormatCurrency(fm.TotalBonuses))

	_, _ = fmt.Fprintln(w, "\nProgression")
	if cp.CurrentRole != "" {
		_, _ = fmt.Fprintf(w, "  Current role:         %s at %s\n", cp.CurrentRole, cp.CurrentCompany)
	}
	_, _ = fmt.Fprintf(w, "  Experience:           %.1f years\n", cp.TotalExperience)
	_, _ = fmt.Fprintf(w, "  Promotions:           %d\n", cp.PromotionCount)
	_, _ = fmt.Fprintf(w, "  Job changes:          %d\n", cp.JobChangeCount)
	_, _ = fmt.Fprintf(w, "  Average tenure:       %.1f years\n", cp.AverageTenurePerJob)

	_, _ = fmt.Fprintln(w, "\nJob search")
	_, _ = fmt.Fprintf(w, "  Applications:         %d (%d active)\n", am.TotalApplications, am.ActiveApplications)
	_, _ = fmt.Fprintf(w, "  Response rate:        %s\n", careermetrics.FormatPercentage(am.ResponseRate, 1))
	_, _ = fmt.Fprintf(w, "  Interview rate:       %s\n", careermetrics.FormatPercentage(am.InterviewRate, 1))
	_, _ = fmt.Fprintf(w, "  Offer rate:           %s\n", careermetrics.FormatPercentage(am.OfferRate, 1))
	_, _ = fmt.Fprintf(w, "  Acceptance rate:      %s\n", careermetrics.FormatPercentage(am.AcceptanceRate, 1))

	if len(d.RecentEvents) > 0 {
		_, _ = fmt.Fprintln(w, "\nRecent events")
		for _, ev := range d.RecentEvents {
			_, _ = fmt.Fprintf(w, "  %s  %-12s %s\n", ev.EventDate.Format("2006-01-02"), ev.EventType, ev.Title)
		}
	}
}
