package careermetrics

import (
	"fmt"
	"sort"
	"time"

	"github.com/jonathan/craftd/internal/types"
)

// Funnel stage names
const (
	StageApplied     = "applied"
	StageResponded   = "responded"
	StageInterviewed = "interviewed"
	StageOffered     = "offered"
	StageAccepted    = "accepted"
)

// Waterfall step kinds
const (
	StepStart     = "start"
	StepRaise     = "raise"
	StepJobChange = "job_change"
	StepTotal     = "total"
)

// Timeline entry kinds for experience boundaries; career events use their
// own event type.
const (
	TimelineJobStart = "job_start"
	TimelineJobEnd   = "job_end"
)

// FunnelStage is one stage of the application funnel.
type FunnelStage struct {
	Stage                  string  `json:"stage"`
	Count                  int     `json:"count"`
	PercentOfTotal         float64 `json:"percent_of_total"`
	ConversionFromPrevious float64 `json:"conversion_from_previous"`
}

// WaterfallStep is one bar of the compensation waterfall. Amounts in cents.
type WaterfallStep struct {
	Label      string `json:"label"`
	Kind       string `json:"kind"`
	Delta      int64  `json:"delta"`
	Cumulative int64  `json:"cumulative"`
}

// TimelineEntry is one dated point on the career timeline.
type TimelineEntry struct {
	Date    time.Time `json:"date"`
	Kind    string    `json:"kind"`
	Title   string    `json:"title"`
	Company string    `json:"company,omitempty"`
}

// BuildApplicationFunnel counts applications reaching each stage:
// applied, responded, interviewed, offered, accepted.
func BuildApplicationFunnel(apps []types.JobApplication) []FunnelStage {
	counts := make([]int, 5)
	for _, app := range apps {
		counts[0]++
		if app.ResponseDate != nil {
			counts[1]++
		}
		if app.FirstInterviewDate != nil {
			counts[2]++
		}
		if app.Status.IsOffer() {
			counts[3]++
		}
		if app.Status == types.StatusAccepted {
			counts[4]++
		}
	}

	names := []string{StageApplied, StageResponded, StageInterviewed, StageOffered, StageAccepted}
	stages := make([]FunnelStage, len(names))
	for i, name := range names {
		stages[i] = FunnelStage{
			Stage:          name,
			Count:          counts[i],
			PercentOfTotal: ratio(counts[i], counts[0]),
		}
		if i == 0 {
			stages[i].ConversionFromPrevious = ratio(counts[0], counts[0])
		} else {
			stages[i].ConversionFromPrevious = ratio(counts[i], counts[i-1])
		}
	}
	return stages
}

// BuildCompensationWaterfall walks from the first salary to the current one:
// raises within a job and the jump at each job change, ending with a total.
func BuildCompensationWaterfall(fm FinancialMetrics) []WaterfallStep {
	steps := []WaterfallStep{{
		Label:      "Starting salary",
		Kind:       StepStart,
		Delta:      fm.FirstSalary,
		Cumulative: fm.FirstSalary,
	}}
	cumulative := fm.FirstSalary

	for _, change := range fm.JobChangeImpact {
		if raise := change.FromSalary - cumulative; raise != 0 {
			cumulative += raise
			steps = append(steps, WaterfallStep{
				Label:      fmt.Sprintf("Raises at %s", change.FromCompany),
				Kind:       StepRaise,
				Delta:      raise,
				Cumulative: cumulative,
			})
		}
		cumulative += change.SalaryIncrease
		steps = append(steps, WaterfallStep{
			Label:      fmt.Sprintf("%s → %s", change.FromCompany, change.ToCompany),
			Kind:       StepJobChange,
			Delta:      change.SalaryIncrease,
			Cumulative: cumulative,
		})
	}

	if raise := fm.CurrentSalary - cumulative; raise != 0 {
		cumulative += raise
		steps = append(steps, WaterfallStep{
			Label:      "Raises in current role",
			Kind:       StepRaise,
			Delta:      raise,
			Cumulative: cumulative,
		})
	}

	return append(steps, WaterfallStep{
		Label:      "Current salary",
		Kind:       StepTotal,
		Delta:      0,
		Cumulative: cumulative,
	})
}

// BuildCareerTimeline merges experience boundaries and career events into
// one chronological list. Entries on the same date keep input order with
// experiences before events.
func BuildCareerTimeline(exps []types.WorkExperience, events []types.CareerEvent) []TimelineEntry {
	entries := []TimelineEntry{}
	for _, exp := range exps {
		if exp.StartDate != nil {
			entries = append(entries, TimelineEntry{
				Date:    *exp.StartDate,
				Kind:    TimelineJobStart,
				Title:   fmt.Sprintf("Started as %s", exp.Role),
				Company: exp.Company,
			})
		}
		if exp.EndDate != nil {
			entries = append(entries, TimelineEntry{
				Date:    *exp.EndDate,
				Kind:    TimelineJobEnd,
				Title:   fmt.Sprintf("Left %s", exp.Company),
				Company: exp.Company,
			})
		}
	}

	companies := make(map[string]string, len(exps))
	for _, exp := range exps {
		companies[exp.ID.String()] = exp.Company
	}
	for _, ev := range events {
		title := ev.Title
		if title == "" {
			title = ev.EventType
		}
		entry := TimelineEntry{Date: ev.EventDate, Kind: ev.EventType, Title: title}
		if ev.WorkExperienceID != nil {
			entry.Company = companies[ev.WorkExperienceID.String()]
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
	return entries
}
