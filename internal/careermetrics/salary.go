package careermetrics

import (
	"sort"

	"github.com/jonathan/craftd/internal/types"
)

// CurrentSalary resolves the effective salary of an experience: the most
// recent adjustment by effective date, else the base salary. Among
// adjustments sharing an effective date the one listed last wins. An
// experience without a base salary resolves to 0.
func CurrentSalary(exp types.WorkExperience) int64 {
	if exp.BaseSalary == 0 {
		return 0
	}
	if len(exp.SalaryAdjustments) == 0 {
		return exp.BaseSalary
	}

	// Reverse first so the stable sort keeps later entries ahead on ties.
	adjustments := make([]types.SalaryAdjustment, len(exp.SalaryAdjustments))
	for i, adj := range exp.SalaryAdjustments {
		adjustments[len(adjustments)-1-i] = adj
	}
	sort.SliceStable(adjustments, func(i, j int) bool {
		return adjustments[i].EffectiveDate.After(adjustments[j].EffectiveDate)
	})
	return adjustments[0].NewSalary
}

// totalCompOr returns the experience's total compensation, or fallback when unset.
func totalCompOr(exp types.WorkExperience, fallback int64) int64 {
	return valueOr(exp.TotalCompensation, fallback)
}
