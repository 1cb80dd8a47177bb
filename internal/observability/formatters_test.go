package observability

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/craftd/internal/careermetrics"
	"github.com/jonathan/craftd/internal/types"
)

func TestPrintJobChanges(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJobChanges([]careermetrics.JobChangeImpact{
		{FromCompany: "Acme", ToCompany: "Globex", FromSalary: 8000000, ToSalary: 12000000, PercentageIncrease: 50},
	})
	output := buf.String()

	assert.Contains(t, output, "JOB CHANGES")
	assert.Contains(t, output, "Acme → Globex")
	assert.Contains(t, output, "$80,000 → $120,000 (50.0%)")
}

func TestPrintJobChanges_Truncated(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	changes := make([]careermetrics.JobChangeImpact, 7)
	for i := range changes {
		changes[i] = careermetrics.JobChangeImpact{FromCompany: fmt.Sprintf("C%d", i), ToCompany: fmt.Sprintf("C%d", i+1)}
	}
	p.PrintJobChanges(changes)

	assert.Contains(t, buf.String(), "... and 2 more changes")
	assert.NotContains(t, buf.String(), "C5 → C6")
}

func TestPrintWorkExperiences(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	end := time.Date(2021, time.December, 31, 0, 0, 0, 0, time.UTC)
	p.PrintWorkExperiences([]careermetrics.WorkExperienceWithFinancials{
		{
			WorkExperience:         types.WorkExperience{Company: "Globex", Role: "Senior Engineer"},
			CurrentSalary:          13000000,
			TenureYears:            2.5,
			SalaryGrowthPercentage: 8.3,
		},
		{
			WorkExperience: types.WorkExperience{Company: "Acme", Role: "Engineer", EndDate: &end},
			CurrentSalary:  8000000,
			TenureYears:    2,
		},
	})
	output := buf.String()

	assert.Contains(t, output, "Positions: 2")
	assert.Contains(t, output, "★ Senior Engineer, Globex")
	assert.Contains(t, output, "2.5 years, $130,000 (8.3%)")
	assert.Contains(t, output, "• Engineer, Acme")
}

func TestPrintFunnel(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	apps := []types.JobApplication{
		{Status: types.StatusAccepted},
		{Status: types.StatusRejected},
		{Status: types.StatusApplied},
	}
	p.PrintFunnel(careermetrics.BuildApplicationFunnel(apps))
	output := buf.String()

	assert.Contains(t, output, "APPLICATION FUNNEL")
	assert.Contains(t, output, "↳")
}

func TestPrintFunnel_NoApplications(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintFunnel(careermetrics.BuildApplicationFunnel(nil))

	assert.Empty(t, buf.String())
}

func TestPrintSources(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSources([]careermetrics.SourceMetrics{
		{Source: "referral", Count: 4, ResponseRate: 75, OfferRate: 50},
		{Source: "linkedin", Count: 2, ResponseRate: 50},
	})
	output := buf.String()

	assert.Contains(t, output, "#1  referral (4)")
	assert.Contains(t, output, "Responses: 75%  Offers: 50%")
	assert.Contains(t, output, "#2  linkedin (2)")
}

func TestPrintDetails_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDetails(nil)
	p.PrintDetails(&careermetrics.CareerDashboardData{})

	assert.Empty(t, buf.String())
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSources([]careermetrics.SourceMetrics{
		{Source: "A Very Long Source Name That Should Be Truncated To Fit The Box", Count: 1},
	})
	output := buf.String()

	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "└"))
	assert.Contains(t, output, "...")
	for _, line := range strings.Split(strings.TrimSuffix(output, "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), line)
	}
}
