package careermetrics

import (
	"time"

	"github.com/jonathan/craftd/internal/types"
)

// FinancialMetrics summarizes compensation across a career. Amounts are in cents.
type FinancialMetrics struct {
	CurrentSalary            int64                `json:"current_salary"`
	CurrentTotalComp         int64                `json:"current_total_comp"`
	FirstSalary              int64                `json:"first_salary"`
	TotalCareerGrowth        float64              `json:"total_career_growth"`
	CompoundAnnualGrowthRate float64              `json:"compound_annual_growth_rate"`
	YearsOfExperience        float64              `json:"years_of_experience"`
	TotalBonuses             int64                `json:"total_bonuses"`
	SalaryHistory            []SalaryHistoryEntry `json:"salary_history"`
	JobChangeImpact          []JobChangeImpact    `json:"job_change_impact"`
}

// SalaryHistoryEntry is one calendar year of one experience. Figures are
// annual and not prorated; overlapping experiences each get their own row.
type SalaryHistoryEntry struct {
	Year              int    `json:"year"`
	Salary            int64  `json:"salary"`
	TotalCompensation int64  `json:"total_compensation"`
	Bonuses           int64  `json:"bonuses"`
	EquityValue       int64  `json:"equity_value"`
	Company           string `json:"company"`
	Role              string `json:"role"`
}

// JobChangeImpact is the compensation delta when moving between two
// consecutive experiences.
type JobChangeImpact struct {
	ChangeDate         *time.Time `json:"change_date,omitempty"`
	FromCompany        string     `json:"from_company"`
	ToCompany          string     `json:"to_company"`
	FromSalary         int64      `json:"from_salary"`
	ToSalary           int64      `json:"to_salary"`
	SalaryIncrease     int64      `json:"salary_increase"`
	PercentageIncrease float64    `json:"percentage_increase"`
	TotalCompIncrease  int64      `json:"total_comp_increase"`
}

func emptyFinancialMetrics() FinancialMetrics {
	return FinancialMetrics{
		SalaryHistory:   []SalaryHistoryEntry{},
		JobChangeImpact: []JobChangeImpact{},
	}
}

// currentExperienceIndex returns the first open-ended experience, else the
// last one in slice order. Callers supply experiences sorted by ascending
// start date; the slice is not re-sorted here.
func currentExperienceIndex(exps []types.WorkExperience) int {
	for i, exp := range exps {
		if exp.IsCurrent() {
			return i
		}
	}
	return len(exps) - 1
}

// BuildFinancialMetrics computes compensation metrics for one user's
// experiences, expected in ascending start-date order. It never fails;
// missing values count as zero.
func BuildFinancialMetrics(exps []types.WorkExperience, now time.Time) FinancialMetrics {
	if len(exps) == 0 {
		return emptyFinancialMetrics()
	}

	metrics := emptyFinancialMetrics()

	current := exps[currentExperienceIndex(exps)]
	metrics.CurrentSalary = CurrentSalary(current)
	metrics.CurrentTotalComp = totalCompOr(current, metrics.CurrentSalary)

	first := exps[0]
	metrics.FirstSalary = first.BaseSalary
	metrics.TotalCareerGrowth = PercentageChange(float64(metrics.FirstSalary), float64(metrics.CurrentSalary))

	years := 1.0
	if first.StartDate != nil {
		years = YearsBetween(*first.StartDate, now)
	}
	metrics.YearsOfExperience = years
	metrics.CompoundAnnualGrowthRate = CAGR(float64(metrics.FirstSalary), float64(metrics.CurrentSalary), years)

	for _, exp := range exps {
		for _, b := range exp.BonusHistory {
			metrics.TotalBonuses += b.Amount
		}

		if exp.StartDate == nil || exp.BaseSalary == 0 {
			continue
		}
		salary := CurrentSalary(exp)
		totalComp := totalCompOr(exp, salary)
		equity := valueOr(exp.EquityValue, 0)
		for _, year := range EmploymentYears(exp.StartDate, exp.EndDate, now) {
			metrics.SalaryHistory = append(metrics.SalaryHistory, SalaryHistoryEntry{
				Year:              year,
				Salary:            salary,
				TotalCompensation: totalComp,
				Bonuses:           BonusesForYear(exp.BonusHistory, year),
				EquityValue:       equity,
				Company:           exp.Company,
				Role:              exp.Role,
			})
		}
	}

	metrics.JobChangeImpact = buildJobChangeImpact(exps)
	return metrics
}

// buildJobChangeImpact compares each experience with the next one in slice
// order: the salary held when leaving against the base salary on arrival.
func buildJobChangeImpact(exps []types.WorkExperience) []JobChangeImpact {
	impacts := []JobChangeImpact{}
	for i := 1; i < len(exps); i++ {
		prev, next := exps[i-1], exps[i]

		fromSalary := CurrentSalary(prev)
		toSalary := next.BaseSalary
		if fromSalary <= 0 || toSalary <= 0 {
			continue
		}

		impacts = append(impacts, JobChangeImpact{
			ChangeDate:         next.StartDate,
			FromCompany:        prev.Company,
			ToCompany:          next.Company,
			FromSalary:         fromSalary,
			ToSalary:           toSalary,
			SalaryIncrease:     toSalary - fromSalary,
			PercentageIncrease: PercentageChange(float64(fromSalary), float64(toSalary)),
			TotalCompIncrease:  totalCompOr(next, toSalary) - totalCompOr(prev, fromSalary),
		})
	}
	return impacts
}
