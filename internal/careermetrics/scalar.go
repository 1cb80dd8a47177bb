// Package careermetrics derives financial, career-progression and job-search
// analytics from work experiences, career events and job applications.
//
// Every builder is a pure function of its inputs and an explicit "now"
// instant. Monetary values stay in cents; percentages are in the 0-100 range.
package careermetrics

import (
	"math"
	"time"

	"github.com/jonathan/craftd/internal/types"
)

const (
	msPerDay     = 24 * 60 * 60 * 1000
	daysPerYear  = 365.25
	daysPerMonth = 30.44
)

// CentsToDollars converts cents to whole dollars, rounding half away from zero.
// A nil amount is 0.
func CentsToDollars(cents *int64) int64 {
	if cents == nil {
		return 0
	}
	return int64(math.Round(float64(*cents) / 100))
}

// DollarsToCents converts a dollar amount to cents.
func DollarsToCents(dollars float64) int64 {
	return int64(math.Round(dollars * 100))
}

// YearsBetween returns the fractional years from start to end. The result is
// negative when end is before start.
func YearsBetween(start, end time.Time) float64 {
	return float64(end.Sub(start).Milliseconds()) / (msPerDay * daysPerYear)
}

// MonthsBetween returns the fractional months from start to end using a
// 30.44 day month.
func MonthsBetween(start, end time.Time) float64 {
	return float64(end.Sub(start).Milliseconds()) / (msPerDay * daysPerMonth)
}

// PercentageChange returns the change from oldValue to newValue in percent,
// or 0 when oldValue is 0.
func PercentageChange(oldValue, newValue float64) float64 {
	if oldValue == 0 {
		return 0
	}
	return (newValue - oldValue) / oldValue * 100
}

// CAGR returns the compound annual growth rate in percent, or 0 when any
// input is non-positive.
func CAGR(initial, final, years float64) float64 {
	if initial <= 0 || final <= 0 || years <= 0 {
		return 0
	}
	return (math.Pow(final/initial, 1/years) - 1) * 100
}

// BonusesForYear sums the bonuses paid in the given calendar year.
func BonusesForYear(bonuses []types.Bonus, year int) int64 {
	var total int64
	for _, b := range bonuses {
		if b.Date.UTC().Year() == year {
			total += b.Amount
		}
	}
	return total
}

// EmploymentYears lists the UTC calendar years from start through end
// inclusive. A nil end means now; a nil start yields an empty list.
func EmploymentYears(start, end *time.Time, now time.Time) []int {
	if start == nil {
		return []int{}
	}
	first := start.UTC().Year()
	last := now.UTC().Year()
	if end != nil {
		last = end.UTC().Year()
	}

	years := make([]int, 0, max(last-first+1, 0))
	for y := first; y <= last; y++ {
		years = append(years, y)
	}
	return years
}

// orNow returns *t, or now when t is nil.
func orNow(t *time.Time, now time.Time) time.Time {
	if t == nil {
		return now
	}
	return *t
}

func valueOr(v *int64, fallback int64) int64 {
	if v == nil {
		return fallback
	}
	return *v
}

// ratio returns part/total in percent, 0 when total is 0.
func ratio(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
