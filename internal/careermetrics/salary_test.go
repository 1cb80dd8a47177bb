package careermetrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/craftd/internal/types"
)

func TestCurrentSalary(t *testing.T) {
	tests := []struct {
		name string
		exp  types.WorkExperience
		want int64
	}{
		{
			name: "no base salary",
			exp: types.WorkExperience{
				SalaryAdjustments: []types.SalaryAdjustment{{EffectiveDate: date(2022, 1, 1), NewSalary: 50}},
			},
			want: 0,
		},
		{
			name: "base salary only",
			exp:  types.WorkExperience{BaseSalary: 100000},
			want: 100000,
		},
		{
			name: "latest adjustment by date, not position",
			exp: types.WorkExperience{
				BaseSalary: 100000,
				SalaryAdjustments: []types.SalaryAdjustment{
					{EffectiveDate: date(2022, time.January, 1), NewSalary: 110000},
					{EffectiveDate: date(2023, time.January, 1), NewSalary: 120000},
					{EffectiveDate: date(2021, time.January, 1), NewSalary: 105000},
				},
			},
			want: 120000,
		},
		{
			name: "tie on effective date goes to the later entry",
			exp: types.WorkExperience{
				BaseSalary: 100000,
				SalaryAdjustments: []types.SalaryAdjustment{
					{EffectiveDate: date(2023, time.March, 1), NewSalary: 115000},
					{EffectiveDate: date(2023, time.March, 1), NewSalary: 118000},
					{EffectiveDate: date(2022, time.March, 1), NewSalary: 109000},
				},
			},
			want: 118000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CurrentSalary(tt.exp))
		})
	}
}

func TestCurrentSalary_DoesNotReorderInput(t *testing.T) {
	adjustments := []types.SalaryAdjustment{
		{EffectiveDate: date(2021, time.January, 1), NewSalary: 1},
		{EffectiveDate: date(2023, time.January, 1), NewSalary: 3},
		{EffectiveDate: date(2022, time.January, 1), NewSalary: 2},
	}
	exp := types.WorkExperience{BaseSalary: 1, SalaryAdjustments: adjustments}

	assert.Equal(t, int64(3), CurrentSalary(exp))
	assert.Equal(t, int64(1), adjustments[0].NewSalary)
	assert.Equal(t, int64(3), adjustments[1].NewSalary)
	assert.Equal(t, int64(2), adjustments[2].NewSalary)
}
