package careermetrics

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/craftd/internal/types"
)

// DefaultRecentEventLimit bounds the career events shown on the dashboard.
const DefaultRecentEventLimit = 10

// Repository supplies one user's records. Work experiences must be ordered
// by ascending start date. A limit <= 0 means no limit.
type Repository interface {
	ListWorkExperiences(ctx context.Context, userID uuid.UUID) ([]types.WorkExperience, error)
	ListCareerEvents(ctx context.Context, userID uuid.UUID, limit int) ([]types.CareerEvent, error)
	ListJobApplications(ctx context.Context, userID uuid.UUID) ([]types.JobApplication, error)
}

// WorkExperienceWithFinancials is an experience with its resolved figures.
type WorkExperienceWithFinancials struct {
	types.WorkExperience
	CurrentSalary          int64   `json:"current_salary"`
	CurrentTotalComp       int64   `json:"current_total_comp"`
	TotalBonuses           int64   `json:"total_bonuses"`
	TenureYears            float64 `json:"tenure_years"`
	SalaryGrowthPercentage float64 `json:"salary_growth_percentage"`
}

// Salary progression point kinds
const (
	SalaryPointStart      = "start"
	SalaryPointAdjustment = "adjustment"
)

// SalaryPoint is one salary change over time.
type SalaryPoint struct {
	Date    time.Time `json:"date"`
	Salary  int64     `json:"salary"`
	Company string    `json:"company"`
	Role    string    `json:"role"`
	Kind    string    `json:"kind"`
	Reason  string    `json:"reason,omitempty"`
}

// CareerDashboardData is everything the career dashboard renders.
type CareerDashboardData struct {
	FinancialMetrics      FinancialMetrics               `json:"financial_metrics"`
	CareerProgression     CareerProgressionSummary       `json:"career_progression"`
	JobApplicationMetrics JobApplicationMetrics          `json:"job_application_metrics"`
	WorkExperiences       []WorkExperienceWithFinancials `json:"work_experiences"`
	RecentEvents          []types.CareerEvent            `json:"recent_events"`
	SalaryProgression     []SalaryPoint                  `json:"salary_progression"`
	ApplicationFunnel     []FunnelStage                  `json:"application_funnel"`
	CompensationWaterfall []WaterfallStep                `json:"compensation_waterfall"`
	CareerTimeline        []TimelineEntry                `json:"career_timeline"`
	GeneratedAt           time.Time                      `json:"generated_at"`
}

// Service reads a user's records from a Repository and runs the builders.
type Service struct {
	repo             Repository
	now              func() time.Time
	recentEventLimit int
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the source of "now".
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRecentEventLimit sets how many career events the dashboard includes.
func WithRecentEventLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.recentEventLimit = limit
		}
	}
}

// NewService creates a Service over repo.
func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:             repo,
		now:              time.Now,
		recentEventLimit: DefaultRecentEventLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) experiences(ctx context.Context, userID uuid.UUID) ([]types.WorkExperience, error) {
	exps, err := s.repo.ListWorkExperiences(ctx, userID)
	if err != nil {
		return nil, &FetchError{Dataset: "work experiences", Cause: err}
	}
	return exps, nil
}

func (s *Service) events(ctx context.Context, userID uuid.UUID, limit int) ([]types.CareerEvent, error) {
	events, err := s.repo.ListCareerEvents(ctx, userID, limit)
	if err != nil {
		return nil, &FetchError{Dataset: "career events", Cause: err}
	}
	return events, nil
}

func (s *Service) applications(ctx context.Context, userID uuid.UUID) ([]types.JobApplication, error) {
	apps, err := s.repo.ListJobApplications(ctx, userID)
	if err != nil {
		return nil, &FetchError{Dataset: "job applications", Cause: err}
	}
	return apps, nil
}

// FinancialMetrics builds the user's compensation metrics.
func (s *Service) FinancialMetrics(ctx context.Context, userID uuid.UUID) (FinancialMetrics, error) {
	exps, err := s.experiences(ctx, userID)
	if err != nil {
		return FinancialMetrics{}, err
	}
	return BuildFinancialMetrics(exps, s.now()), nil
}

// CompensationWaterfall builds the waterfall chart from financial metrics.
func (s *Service) CompensationWaterfall(ctx context.Context, userID uuid.UUID) ([]WaterfallStep, error) {
	fm, err := s.FinancialMetrics(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BuildCompensationWaterfall(fm), nil
}

// CareerProgression builds the user's progression summary over all events.
func (s *Service) CareerProgression(ctx context.Context, userID uuid.UUID) (CareerProgressionSummary, error) {
	summary, _, err := s.progressionView(ctx, userID)
	return summary, err
}

// CareerTimeline builds the chronological timeline chart.
func (s *Service) CareerTimeline(ctx context.Context, userID uuid.UUID) ([]TimelineEntry, error) {
	_, timeline, err := s.progressionView(ctx, userID)
	return timeline, err
}

func (s *Service) progressionView(ctx context.Context, userID uuid.UUID) (CareerProgressionSummary, []TimelineEntry, error) {
	exps, err := s.experiences(ctx, userID)
	if err != nil {
		return CareerProgressionSummary{}, nil, err
	}
	events, err := s.events(ctx, userID, 0)
	if err != nil {
		return CareerProgressionSummary{}, nil, err
	}
	return BuildCareerProgression(exps, events, s.now()), BuildCareerTimeline(exps, events), nil
}

// JobApplicationMetrics builds the user's job search metrics.
func (s *Service) JobApplicationMetrics(ctx context.Context, userID uuid.UUID) (JobApplicationMetrics, error) {
	metrics, _, err := s.applicationView(ctx, userID)
	return metrics, err
}

// ApplicationFunnel builds the funnel chart.
func (s *Service) ApplicationFunnel(ctx context.Context, userID uuid.UUID) ([]FunnelStage, error) {
	_, funnel, err := s.applicationView(ctx, userID)
	return funnel, err
}

func (s *Service) applicationView(ctx context.Context, userID uuid.UUID) (JobApplicationMetrics, []FunnelStage, error) {
	apps, err := s.applications(ctx, userID)
	if err != nil {
		return JobApplicationMetrics{}, nil, err
	}
	return BuildJobApplicationMetrics(apps), BuildApplicationFunnel(apps), nil
}

// WorkExperiencesWithFinancials resolves salary, bonuses and tenure per experience.
func (s *Service) WorkExperiencesWithFinancials(ctx context.Context, userID uuid.UUID) ([]WorkExperienceWithFinancials, error) {
	exps, err := s.experiences(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()

	out := make([]WorkExperienceWithFinancials, 0, len(exps))
	for _, exp := range exps {
		salary := CurrentSalary(exp)
		item := WorkExperienceWithFinancials{
			WorkExperience:         exp,
			CurrentSalary:          salary,
			CurrentTotalComp:       totalCompOr(exp, salary),
			SalaryGrowthPercentage: PercentageChange(float64(exp.BaseSalary), float64(salary)),
		}
		for _, b := range exp.BonusHistory {
			item.TotalBonuses += b.Amount
		}
		if exp.StartDate != nil {
			item.TenureYears = YearsBetween(*exp.StartDate, orNow(exp.EndDate, now))
		}
		out = append(out, item)
	}
	return out, nil
}

// RecentCareerEvents returns the newest events, at most limit of them
// (DefaultRecentEventLimit when limit <= 0).
func (s *Service) RecentCareerEvents(ctx context.Context, userID uuid.UUID, limit int) ([]types.CareerEvent, error) {
	if limit <= 0 {
		limit = DefaultRecentEventLimit
	}
	events, err := s.events(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].EventDate.After(events[j].EventDate)
	})
	if len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

// SalaryProgression lists every starting salary and adjustment in date order.
func (s *Service) SalaryProgression(ctx context.Context, userID uuid.UUID) ([]SalaryPoint, error) {
	exps, err := s.experiences(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BuildSalaryProgression(exps), nil
}

// BuildSalaryProgression lists the starting salary of each dated experience
// and each of its adjustments, ordered by date.
func BuildSalaryProgression(exps []types.WorkExperience) []SalaryPoint {
	points := []SalaryPoint{}
	for _, exp := range exps {
		if exp.StartDate == nil || exp.BaseSalary == 0 {
			continue
		}
		points = append(points, SalaryPoint{
			Date:    *exp.StartDate,
			Salary:  exp.BaseSalary,
			Company: exp.Company,
			Role:    exp.Role,
			Kind:    SalaryPointStart,
		})
		for _, adj := range exp.SalaryAdjustments {
			points = append(points, SalaryPoint{
				Date:    adj.EffectiveDate,
				Salary:  adj.NewSalary,
				Company: exp.Company,
				Role:    exp.Role,
				Kind:    SalaryPointAdjustment,
				Reason:  adj.Reason,
			})
		}
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}

// Dashboard fetches and builds every dashboard section concurrently. If any
// section fails the whole call fails with a *DashboardError.
func (s *Service) Dashboard(ctx context.Context, userID uuid.UUID) (*CareerDashboardData, error) {
	data := &CareerDashboardData{GeneratedAt: s.now()}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		fm, err := s.FinancialMetrics(gCtx, userID)
		if err != nil {
			return err
		}
		data.FinancialMetrics = fm
		data.CompensationWaterfall = BuildCompensationWaterfall(fm)
		return nil
	})

	g.Go(func() error {
		summary, timeline, err := s.progressionView(gCtx, userID)
		if err != nil {
			return err
		}
		data.CareerProgression = summary
		data.CareerTimeline = timeline
		return nil
	})

	g.Go(func() error {
		metrics, funnel, err := s.applicationView(gCtx, userID)
		if err != nil {
			return err
		}
		data.JobApplicationMetrics = metrics
		data.ApplicationFunnel = funnel
		return nil
	})

	g.Go(func() error {
		exps, err := s.WorkExperiencesWithFinancials(gCtx, userID)
		if err != nil {
			return err
		}
		data.WorkExperiences = exps
		return nil
	})

	g.Go(func() error {
		events, err := s.RecentCareerEvents(gCtx, userID, s.recentEventLimit)
		if err != nil {
			return err
		}
		data.RecentEvents = events
		return nil
	})

	g.Go(func() error {
		points, err := s.SalaryProgression(gCtx, userID)
		if err != nil {
			return err
		}
		data.SalaryProgression = points
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Printf("[dashboard] Error fetching career dashboard for user %s: %v", userID, err)
		return nil, &DashboardError{Message: DashboardErrorMessage, Cause: err}
	}
	return data, nil
}
