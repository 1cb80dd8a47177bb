package careermetrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/craftd/internal/types"
)

func TestBuildApplicationFunnel(t *testing.T) {
	stages := BuildApplicationFunnel(sampleApplications())
	require.Len(t, stages, 5)

	want := []struct {
		stage      string
		count      int
		percent    float64
		conversion float64
	}{
		{StageApplied, 4, 100, 100},
		{StageResponded, 3, 75, 75},
		{StageInterviewed, 3, 75, 100},
		{StageOffered, 2, 50, 200.0 / 3},
		{StageAccepted, 1, 25, 50},
	}
	for i, w := range want {
		assert.Equal(t, w.stage, stages[i].Stage)
		assert.Equal(t, w.count, stages[i].Count, w.stage)
		assert.InDelta(t, w.percent, stages[i].PercentOfTotal, 1e-9, w.stage)
		assert.InDelta(t, w.conversion, stages[i].ConversionFromPrevious, 1e-9, w.stage)
	}
}

func TestBuildApplicationFunnel_Empty(t *testing.T) {
	stages := BuildApplicationFunnel(nil)
	require.Len(t, stages, 5)
	for _, s := range stages {
		assert.Zero(t, s.Count)
		assert.Zero(t, s.PercentOfTotal)
		assert.Zero(t, s.ConversionFromPrevious)
	}
}

func TestBuildCompensationWaterfall(t *testing.T) {
	steps := BuildCompensationWaterfall(BuildFinancialMetrics(twoJobCareer(), testNow))

	assert.Equal(t, []WaterfallStep{
		{Label: "Starting salary", Kind: StepStart, Delta: 8000000, Cumulative: 8000000},
		{Label: "Acme → Globex", Kind: StepJobChange, Delta: 4000000, Cumulative: 12000000},
		{Label: "Raises in current role", Kind: StepRaise, Delta: 1000000, Cumulative: 13000000},
		{Label: "Current salary", Kind: StepTotal, Delta: 0, Cumulative: 13000000},
	}, steps)
}

func TestBuildCompensationWaterfall_RaiseBeforeJobChange(t *testing.T) {
	exps := twoJobCareer()
	exps[0].SalaryAdjustments = []types.SalaryAdjustment{
		{EffectiveDate: date(2021, time.January, 1), NewSalary: 9000000},
	}

	steps := BuildCompensationWaterfall(BuildFinancialMetrics(exps, testNow))
	require.Len(t, steps, 5)
	assert.Equal(t, WaterfallStep{Label: "Raises at Acme", Kind: StepRaise, Delta: 1000000, Cumulative: 9000000}, steps[1])
	assert.Equal(t, int64(3000000), steps[2].Delta)

	last := steps[len(steps)-1]
	assert.Equal(t, StepTotal, last.Kind)
	assert.Equal(t, int64(13000000), last.Cumulative)
}

func TestBuildCompensationWaterfall_Empty(t *testing.T) {
	steps := BuildCompensationWaterfall(BuildFinancialMetrics(nil, testNow))
	require.Len(t, steps, 2)
	assert.Equal(t, StepStart, steps[0].Kind)
	assert.Equal(t, StepTotal, steps[1].Kind)
	assert.Zero(t, steps[1].Cumulative)
}

func TestBuildCareerTimeline(t *testing.T) {
	exps := twoJobCareer()
	acme := exps[0].ID
	events := []types.CareerEvent{
		{EventType: types.EventJobChange, EventDate: date(2022, time.January, 1), Title: "Joined Globex"},
		{EventType: types.EventPromotion, EventDate: date(2021, time.March, 1), WorkExperienceID: &acme},
	}

	timeline := BuildCareerTimeline(exps, events)
	require.Len(t, timeline, 5)

	assert.Equal(t, TimelineEntry{Date: date(2020, 1, 1), Kind: TimelineJobStart, Title: "Started as Engineer", Company: "Acme"}, timeline[0])
	assert.Equal(t, TimelineEntry{Date: date(2021, 3, 1), Kind: types.EventPromotion, Title: "promotion", Company: "Acme"}, timeline[1])
	assert.Equal(t, TimelineEntry{Date: date(2021, 12, 31), Kind: TimelineJobEnd, Title: "Left Acme", Company: "Acme"}, timeline[2])

	// Same day: the experience boundary comes before the event.
	assert.Equal(t, TimelineJobStart, timeline[3].Kind)
	assert.Equal(t, "Globex", timeline[3].Company)
	assert.Equal(t, "Joined Globex", timeline[4].Title)
	assert.Empty(t, timeline[4].Company)
}

func TestBuildCareerTimeline_Empty(t *testing.T) {
	timeline := BuildCareerTimeline(nil, nil)
	assert.NotNil(t, timeline)
	assert.Empty(t, timeline)
}
