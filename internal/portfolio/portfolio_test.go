package portfolio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/craftd/internal/careermetrics"
	"github.com/jonathan/craftd/internal/schemas"
	"github.com/jonathan/craftd/internal/types"
)

var _ careermetrics.Repository = (*MemoryRepository)(nil)

var testUser = uuid.MustParse("22222222-2222-2222-2222-222222222222")

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func loadSample(t *testing.T) Records {
	t.Helper()
	doc, err := Load(filepath.Join("testdata", "sample.json"))
	require.NoError(t, err)
	recs, err := doc.Records(testUser)
	require.NoError(t, err)
	return recs
}

func TestLoad_Sample(t *testing.T) {
	doc, err := Load(filepath.Join("testdata", "sample.json"))
	require.NoError(t, err)

	assert.Len(t, doc.WorkExperiences, 2)
	assert.Len(t, doc.CareerEvents, 3)
	assert.Len(t, doc.JobApplications, 3)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParse_SchemaViolation(t *testing.T) {
	_, err := Parse([]byte(`{"work_experiences": [{"company": "Acme", "base_salary": -1}]}`))
	require.Error(t, err)

	var validationErr *schemas.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.GreaterOrEqual(t, len(validationErr.Errors), 2)
}

func TestRecords_WorkExperiences(t *testing.T) {
	recs := loadSample(t)
	require.Len(t, recs.WorkExperiences, 2)

	globex := recs.WorkExperiences[0]
	assert.Equal(t, testUser, globex.UserID)
	assert.NotEqual(t, uuid.Nil, globex.ID)
	assert.Nil(t, globex.EndDate)
	// The adjustment without a usable date is dropped.
	require.Len(t, globex.SalaryAdjustments, 1)
	assert.Equal(t, int64(13000000), globex.SalaryAdjustments[0].NewSalary)
	assert.Equal(t, day(2023, time.June, 1), globex.SalaryAdjustments[0].EffectiveDate)

	acme := recs.WorkExperiences[1]
	require.NotNil(t, acme.EndDate)
	assert.Equal(t, day(2021, time.December, 31), *acme.EndDate)
	require.Len(t, acme.BonusHistory, 1)
	assert.Equal(t, int64(500000), acme.BonusHistory[0].Amount)
	assert.NotNil(t, acme.SalaryAdjustments)
}

func TestRecords_CareerEventsLinkByKey(t *testing.T) {
	recs := loadSample(t)
	require.Len(t, recs.CareerEvents, 3)

	promotion := recs.CareerEvents[0]
	require.NotNil(t, promotion.WorkExperienceID)
	assert.Equal(t, recs.WorkExperiences[1].ID, *promotion.WorkExperienceID)

	raise := recs.CareerEvents[1]
	require.NotNil(t, raise.IncreasePercentage)
	assert.Equal(t, "8.33", *raise.IncreasePercentage)

	assert.Nil(t, recs.CareerEvents[2].WorkExperienceID)
}

func TestRecords_JobApplications(t *testing.T) {
	recs := loadSample(t)
	require.Len(t, recs.JobApplications, 3)

	initech := recs.JobApplications[0]
	require.NotNil(t, initech.Company.Industry)
	assert.Equal(t, "Software", *initech.Company.Industry)
	assert.Equal(t, initech.Company.ID, initech.CompanyID)

	// Derived from dates when not given.
	require.NotNil(t, initech.TimeToResponse)
	assert.Equal(t, 3, *initech.TimeToResponse)
	require.NotNil(t, initech.TimeToOffer)
	assert.Equal(t, 30, *initech.TimeToOffer)
	require.NotNil(t, initech.TimeToDecision)
	assert.Equal(t, 4, *initech.TimeToDecision)

	// Given counts are kept even when dates disagree.
	hooli := recs.JobApplications[1]
	require.NotNil(t, hooli.TimeToResponse)
	assert.Equal(t, 9, *hooli.TimeToResponse)
	assert.Nil(t, hooli.TimeToOffer)

	// Defaults, and one company per normalized name.
	principal := recs.JobApplications[2]
	assert.Equal(t, types.StatusApplied, principal.Status)
	assert.Equal(t, types.DefaultSource, principal.Source)
	assert.Equal(t, hooli.CompanyID, principal.CompanyID)
	assert.Equal(t, "Hooli", principal.Company.Name)
}

func TestRecords_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want string
	}{
		{
			name: "unknown experience key",
			doc:  Document{CareerEvents: []CareerEventRecord{{Experience: "nowhere", EventType: "raise", EventDate: "2022-01-01"}}},
			want: `career_events[0]: unknown experience "nowhere"`,
		},
		{
			name: "duplicate key",
			doc: Document{WorkExperiences: []WorkExperienceRecord{
				{Key: "a", Company: "A", Role: "R"},
				{Key: "a", Company: "B", Role: "R"},
			}},
			want: `work_experiences[1]: duplicate key "a"`,
		},
		{
			name: "end before start",
			doc: Document{WorkExperiences: []WorkExperienceRecord{
				{Company: "A", Role: "R", StartDate: "2022-01-01", EndDate: "2021-01-01"},
			}},
			want: "work_experiences[0]: end_date 2021-01-01 is before start_date 2022-01-01",
		},
		{
			name: "bad date",
			doc:  Document{JobApplications: []JobApplicationRecord{{Company: "A", Position: "P", OfferDate: "soon"}}},
			want: `job_applications[0]: offer_date: invalid date "soon"`,
		},
		{
			name: "bad status",
			doc:  Document{JobApplications: []JobApplicationRecord{{Company: "A", Position: "P", Status: "GHOSTED"}}},
			want: `job_applications[0]: unknown status "GHOSTED"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.doc.Records(testUser)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestMemoryRepository_Ordering(t *testing.T) {
	repo := NewMemoryRepository()
	repo.Put(testUser, loadSample(t))
	ctx := context.Background()

	exps, err := repo.ListWorkExperiences(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, exps, 2)
	assert.Equal(t, "Acme", exps[0].Company)
	assert.Equal(t, "Globex", exps[1].Company)

	events, err := repo.ListCareerEvents(ctx, testUser, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, day(2023, time.June, 1), events[0].EventDate)
	assert.Equal(t, day(2022, time.January, 1), events[1].EventDate)

	apps, err := repo.ListJobApplications(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, apps, 3)
	assert.Equal(t, "Principal Engineer", apps[0].Position)
}

func TestMemoryRepository_UndatedExperiencesSortLast(t *testing.T) {
	start := day(2019, time.May, 1)
	repo := NewMemoryRepository()
	repo.Put(testUser, Records{WorkExperiences: []types.WorkExperience{
		{Company: "Undated"},
		{Company: "Dated", StartDate: &start},
	}})

	exps, err := repo.ListWorkExperiences(context.Background(), testUser)
	require.NoError(t, err)
	assert.Equal(t, "Dated", exps[0].Company)
	assert.Equal(t, "Undated", exps[1].Company)
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryRepository()
	repo.Put(testUser, loadSample(t))
	ctx := context.Background()

	exps, err := repo.ListWorkExperiences(ctx, testUser)
	require.NoError(t, err)
	exps[0].Company = "Changed"

	again, err := repo.ListWorkExperiences(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, "Acme", again[0].Company)
}

func TestMemoryRepository_UnknownUserAndCancellation(t *testing.T) {
	repo := NewMemoryRepository()

	exps, err := repo.ListWorkExperiences(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, exps)
	assert.Empty(t, exps)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = repo.ListJobApplications(ctx, testUser)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryRepository_Dashboard(t *testing.T) {
	repo := NewMemoryRepository()
	repo.Put(testUser, loadSample(t))
	now := day(2024, time.June, 1)
	svc := careermetrics.NewService(repo, careermetrics.WithClock(func() time.Time { return now }))

	data, err := svc.Dashboard(context.Background(), testUser)
	require.NoError(t, err)

	fm := data.FinancialMetrics
	assert.Equal(t, int64(13000000), fm.CurrentSalary)
	assert.InDelta(t, 62.5, fm.TotalCareerGrowth, 1e-9)
	require.Len(t, fm.JobChangeImpact, 1)
	assert.Equal(t, int64(4000000), fm.JobChangeImpact[0].SalaryIncrease)
	assert.InDelta(t, 50.0, fm.JobChangeImpact[0].PercentageIncrease, 1e-9)

	assert.Equal(t, 1, data.CareerProgression.PromotionCount)
	assert.Equal(t, 1, data.CareerProgression.JobChangeCount)
	assert.InDelta(t, 8.33, data.CareerProgression.HighestSalaryIncrease.Percentage, 1e-9)

	apps := data.JobApplicationMetrics
	assert.Equal(t, 3, apps.TotalApplications)
	assert.InDelta(t, 100.0/3, apps.OfferRate, 1e-9)
	assert.InDelta(t, 100.0, apps.AcceptanceRate, 1e-9)
	assert.Len(t, data.RecentEvents, 3)
}
