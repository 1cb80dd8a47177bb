package careermetrics

import (
	"log"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jonathan/craftd/internal/types"
)

// CareerProgressionSummary describes how a career has developed over time.
type CareerProgressionSummary struct {
	TotalExperience       float64              `json:"total_experience"`
	PromotionCount        int                  `json:"promotion_count"`
	JobChangeCount        int                  `json:"job_change_count"`
	AverageTenurePerJob   float64              `json:"average_tenure_per_job"`
	HighestSalaryIncrease SalaryIncreaseRecord `json:"highest_salary_increase"`
	SalaryByYear          []YearlySalary       `json:"salary_by_year"`
	LevelProgression      []LevelPeriod        `json:"level_progression"`
	CurrentCompany        string               `json:"current_company,omitempty"`
	CurrentRole           string               `json:"current_role,omitempty"`
	CurrentLevel          string               `json:"current_level,omitempty"`
}

// SalaryIncreaseRecord is the single largest raise found in career events.
type SalaryIncreaseRecord struct {
	Amount     int64      `json:"amount"`
	Percentage float64    `json:"percentage"`
	Date       *time.Time `json:"date,omitempty"`
	EventType  string     `json:"event_type,omitempty"`
}

// YearlySalary is the prorated compensation earned in one calendar year,
// summed over every experience overlapping that year.
type YearlySalary struct {
	Year              int     `json:"year"`
	Salary            int64   `json:"salary"`
	TotalCompensation int64   `json:"total_compensation"`
	MonthsWorked      float64 `json:"months_worked"`
}

// LevelPeriod is the time spent at one seniority level.
type LevelPeriod struct {
	Level          string     `json:"level"`
	Company        string     `json:"company"`
	StartDate      time.Time  `json:"start_date"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	DurationMonths int        `json:"duration_months"`
}

func emptyCareerProgression() CareerProgressionSummary {
	return CareerProgressionSummary{
		SalaryByYear:     []YearlySalary{},
		LevelProgression: []LevelPeriod{},
	}
}

// BuildCareerProgression summarizes experiences (ascending start date) and
// career events for one user.
func BuildCareerProgression(exps []types.WorkExperience, events []types.CareerEvent, now time.Time) CareerProgressionSummary {
	if len(exps) == 0 {
		return emptyCareerProgression()
	}

	summary := emptyCareerProgression()

	first := exps[0]
	current := exps[currentExperienceIndex(exps)]
	summary.CurrentCompany = current.Company
	summary.CurrentRole = current.Role
	summary.CurrentLevel = current.SeniorityLevel

	summary.TotalExperience = YearsBetween(orNow(first.StartDate, now), now)
	summary.JobChangeCount = len(exps) - 1

	for _, ev := range events {
		if ev.EventType == types.EventPromotion {
			summary.PromotionCount++
		}
	}

	var tenure float64
	var dated int
	for _, exp := range exps {
		if exp.StartDate == nil {
			continue
		}
		tenure += YearsBetween(*exp.StartDate, orNow(exp.EndDate, now))
		dated++
	}
	if dated > 0 {
		summary.AverageTenurePerJob = tenure / float64(dated)
	}

	summary.HighestSalaryIncrease = highestSalaryIncrease(events)
	summary.SalaryByYear = proratedSalaryByYear(exps, now)
	summary.LevelProgression = levelProgression(exps, now)
	return summary
}

// highestSalaryIncrease returns the event with the largest positive salary
// increase; the first one wins on ties.
func highestSalaryIncrease(events []types.CareerEvent) SalaryIncreaseRecord {
	var best SalaryIncreaseRecord
	for _, ev := range events {
		if ev.SalaryIncrease == nil || *ev.SalaryIncrease <= best.Amount {
			continue
		}
		date := ev.EventDate
		best = SalaryIncreaseRecord{
			Amount:     *ev.SalaryIncrease,
			Percentage: parsePercentage(ev.IncreasePercentage),
			Date:       &date,
			EventType:  ev.EventType,
		}
	}
	return best
}

func parsePercentage(s *string) float64 {
	if s == nil || *s == "" {
		return 0
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		log.Printf("[careermetrics] Warning: invalid increase percentage %q: %v", *s, err)
		return 0
	}
	return d.InexactFloat64()
}

// proratedSalaryByYear scales each experience's annual salary by the months
// it covers in every calendar year it overlaps.
func proratedSalaryByYear(exps []types.WorkExperience, now time.Time) []YearlySalary {
	byYear := make(map[int]*YearlySalary)
	for _, exp := range exps {
		if exp.StartDate == nil || exp.BaseSalary == 0 {
			continue
		}
		salary := CurrentSalary(exp)
		totalComp := totalCompOr(exp, salary)
		start := *exp.StartDate
		end := orNow(exp.EndDate, now)

		for _, year := range EmploymentYears(exp.StartDate, exp.EndDate, now) {
			months := monthsWorkedInYear(start, end, year)
			if months <= 0 {
				continue
			}
			entry, ok := byYear[year]
			if !ok {
				entry = &YearlySalary{Year: year}
				byYear[year] = entry
			}
			entry.Salary += int64(math.Round(float64(salary) * months / 12))
			entry.TotalCompensation += int64(math.Round(float64(totalComp) * months / 12))
			entry.MonthsWorked += months
		}
	}

	out := make([]YearlySalary, 0, len(byYear))
	for _, entry := range byYear {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// monthsWorkedInYear returns the fractional months of [start, end] falling
// in year. Partial months count by day: starting on day d of an n-day month
// forfeits (d-1)/n of it, ending on day d keeps d/n.
func monthsWorkedInYear(start, end time.Time, year int) float64 {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	s := dateOnly(start)
	if s.Before(yearStart) {
		s = yearStart
	}
	e := dateOnly(end)
	if e.After(yearEnd) {
		e = yearEnd
	}
	if e.Before(s) {
		return 0
	}

	whole := (e.Year()*12 + int(e.Month())) - (s.Year()*12 + int(s.Month()))
	startFrac := float64(s.Day()-1) / float64(daysInMonth(s))
	endFrac := float64(e.Day()) / float64(daysInMonth(e))

	months := float64(whole) + endFrac - startFrac
	return math.Max(0, math.Min(12, months))
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// levelProgression lists seniority periods. A closed period ends at its own
// end date; an open one ends where the next experience starts, if any.
func levelProgression(exps []types.WorkExperience, now time.Time) []LevelPeriod {
	periods := []LevelPeriod{}
	for i, exp := range exps {
		if exp.SeniorityLevel == "" || exp.StartDate == nil {
			continue
		}
		end := exp.EndDate
		if end == nil && i+1 < len(exps) {
			end = exps[i+1].StartDate
		}
		periods = append(periods, LevelPeriod{
			Level:          exp.SeniorityLevel,
			Company:        exp.Company,
			StartDate:      *exp.StartDate,
			EndDate:        end,
			DurationMonths: int(math.Round(YearsBetween(*exp.StartDate, orNow(end, now)) * 12)),
		})
	}
	return periods
}
