package careermetrics

import (
	"sort"

	"github.com/jonathan/craftd/internal/types"
)

// JobApplicationMetrics summarizes a job search. Rates are percentages of
// TotalApplications unless noted; averages only cover applications that
// carry the underlying value.
type JobApplicationMetrics struct {
	TotalApplications          int              `json:"total_applications"`
	ActiveApplications         int              `json:"active_applications"`
	ResponseRate               float64          `json:"response_rate"`
	InterviewRate              float64          `json:"interview_rate"`
	OfferRate                  float64          `json:"offer_rate"`
	AcceptanceRate             float64          `json:"acceptance_rate"` // of offers
	AverageTimeToResponse      float64          `json:"average_time_to_response"`
	AverageTimeToOffer         float64          `json:"average_time_to_offer"`
	AverageTimeToDecision      float64          `json:"average_time_to_decision"`
	AverageSalaryOffered       float64          `json:"average_salary_offered"`
	AverageSalaryFinal         float64          `json:"average_salary_final"`
	NegotiationSuccessRate     float64          `json:"negotiation_success_rate"` // of offers
	AverageNegotiationIncrease float64          `json:"average_negotiation_increase"`
	SourceMetrics              []SourceMetrics  `json:"source_metrics"`
	StatusBreakdown            []StatusCount    `json:"status_breakdown"`
	CompanyBreakdown           []CompanySummary `json:"company_breakdown"`
}

// SourceMetrics reports conversion for one application source.
type SourceMetrics struct {
	Source       string  `json:"source"`
	Count        int     `json:"count"`
	ResponseRate float64 `json:"response_rate"`
	OfferRate    float64 `json:"offer_rate"`
}

// StatusCount is the share of applications in one status.
type StatusCount struct {
	Status     types.ApplicationStatus `json:"status"`
	Count      int                     `json:"count"`
	Percentage float64                 `json:"percentage"`
}

// CompanySummary counts applications and offers per company.
type CompanySummary struct {
	Company string `json:"company"`
	Count   int    `json:"count"`
	Offers  int    `json:"offers"`
}

func emptyJobApplicationMetrics() JobApplicationMetrics {
	return JobApplicationMetrics{
		SourceMetrics:    []SourceMetrics{},
		StatusBreakdown:  []StatusCount{},
		CompanyBreakdown: []CompanySummary{},
	}
}

// mean accumulates an average over the values that are present.
type mean struct {
	sum   float64
	count int
}

func (m *mean) addInt(v *int) {
	if v != nil {
		m.sum += float64(*v)
		m.count++
	}
}

func (m *mean) addCents(v *int64) {
	if v != nil {
		m.sum += float64(*v)
		m.count++
	}
}

func (m *mean) value() float64 {
	if m.count == 0 {
		return 0
	}
	return m.sum / float64(m.count)
}

// BuildJobApplicationMetrics computes funnel, timing, salary and breakdown
// metrics. Divisions by zero yield 0.
func BuildJobApplicationMetrics(apps []types.JobApplication) JobApplicationMetrics {
	if len(apps) == 0 {
		return emptyJobApplicationMetrics()
	}

	metrics := emptyJobApplicationMetrics()
	total := len(apps)
	metrics.TotalApplications = total

	var responded, interviewed, offers, accepted, negotiated int
	var toResponse, toOffer, toDecision, offered, final, negotiationIncrease mean

	for _, app := range apps {
		if app.ResponseDate != nil {
			responded++
		}
		if app.FirstInterviewDate != nil {
			interviewed++
		}
		if app.Status.IsOffer() {
			offers++
		}
		if app.Status == types.StatusAccepted {
			accepted++
		}
		if !app.Status.IsClosed() {
			metrics.ActiveApplications++
		}

		toResponse.addInt(app.TimeToResponse)
		toOffer.addInt(app.TimeToOffer)
		toDecision.addInt(app.TimeToDecision)
		offered.addCents(app.SalaryOffered)
		final.addCents(app.SalaryFinal)

		if app.SalaryOffered != nil && app.SalaryNegotiated != nil && *app.SalaryNegotiated > *app.SalaryOffered {
			negotiated++
			negotiationIncrease.sum += PercentageChange(float64(*app.SalaryOffered), float64(*app.SalaryNegotiated))
			negotiationIncrease.count++
		}
	}

	metrics.ResponseRate = ratio(responded, total)
	metrics.InterviewRate = ratio(interviewed, total)
	metrics.OfferRate = ratio(offers, total)
	metrics.AcceptanceRate = ratio(accepted, offers)

	metrics.AverageTimeToResponse = toResponse.value()
	metrics.AverageTimeToOffer = toOffer.value()
	metrics.AverageTimeToDecision = toDecision.value()

	metrics.AverageSalaryOffered = offered.value()
	metrics.AverageSalaryFinal = final.value()
	metrics.NegotiationSuccessRate = ratio(negotiated, offers)
	metrics.AverageNegotiationIncrease = negotiationIncrease.value()

	metrics.SourceMetrics = sourceMetrics(apps)
	metrics.StatusBreakdown = statusBreakdown(apps)
	metrics.CompanyBreakdown = companyBreakdown(apps)
	return metrics
}

// sourceMetrics groups by source, largest group first, ties by name.
func sourceMetrics(apps []types.JobApplication) []SourceMetrics {
	type tally struct{ count, responded, offers int }
	groups := make(map[string]*tally)
	for _, app := range apps {
		source := app.SourceOrDefault()
		g, ok := groups[source]
		if !ok {
			g = &tally{}
			groups[source] = g
		}
		g.count++
		if app.ResponseDate != nil {
			g.responded++
		}
		if app.Status.IsOffer() {
			g.offers++
		}
	}

	out := make([]SourceMetrics, 0, len(groups))
	for source, g := range groups {
		out = append(out, SourceMetrics{
			Source:       source,
			Count:        g.count,
			ResponseRate: ratio(g.responded, g.count),
			OfferRate:    ratio(g.offers, g.count),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Source < out[j].Source
	})
	return out
}

// statusBreakdown groups by status in funnel order; unknown statuses sort
// last by name.
func statusBreakdown(apps []types.JobApplication) []StatusCount {
	counts := make(map[types.ApplicationStatus]int)
	for _, app := range apps {
		counts[app.Status]++
	}

	out := make([]StatusCount, 0, len(counts))
	for status, count := range counts {
		out = append(out, StatusCount{
			Status:     status,
			Count:      count,
			Percentage: ratio(count, len(apps)),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		oi, oj := out[i].Status.Ordinal(), out[j].Status.Ordinal()
		if oi < 0 {
			oi = len(types.AllStatuses)
		}
		if oj < 0 {
			oj = len(types.AllStatuses)
		}
		if oi != oj {
			return oi < oj
		}
		return out[i].Status < out[j].Status
	})
	return out
}

func companyBreakdown(apps []types.JobApplication) []CompanySummary {
	index := make(map[string]int)
	out := []CompanySummary{}
	for _, app := range apps {
		name := app.Company.Name
		if name == "" {
			continue
		}
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, CompanySummary{Company: name})
		}
		out[i].Count++
		if app.Status.IsOffer() {
			out[i].Offers++
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
