package portfolio

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/craftd/internal/types"
)

// Records are a document's entries converted to engine types for one user.
type Records struct {
	WorkExperiences []types.WorkExperience
	CareerEvents    []types.CareerEvent
	JobApplications []types.JobApplication
}

// Records converts the document for userID, assigning fresh IDs. Career
// events are linked to experiences by key; applications to companies by
// normalized name within the document.
func (d *Document) Records(userID uuid.UUID) (Records, error) {
	recs := Records{
		WorkExperiences: make([]types.WorkExperience, 0, len(d.WorkExperiences)),
		CareerEvents:    make([]types.CareerEvent, 0, len(d.CareerEvents)),
		JobApplications: make([]types.JobApplication, 0, len(d.JobApplications)),
	}

	keys := make(map[string]uuid.UUID)
	for i, r := range d.WorkExperiences {
		exp, err := r.toWorkExperience(userID)
		if err != nil {
			return Records{}, fmt.Errorf("work_experiences[%d]: %w", i, err)
		}
		if r.Key != "" {
			if _, dup := keys[r.Key]; dup {
				return Records{}, fmt.Errorf("work_experiences[%d]: duplicate key %q", i, r.Key)
			}
			keys[r.Key] = exp.ID
		}
		recs.WorkExperiences = append(recs.WorkExperiences, exp)
	}

	for i, r := range d.CareerEvents {
		ev, err := r.toCareerEvent(userID, keys)
		if err != nil {
			return Records{}, fmt.Errorf("career_events[%d]: %w", i, err)
		}
		recs.CareerEvents = append(recs.CareerEvents, ev)
	}

	companies := make(map[string]types.Company)
	for i, r := range d.JobApplications {
		app, err := r.toJobApplication(userID)
		if err != nil {
			return Records{}, fmt.Errorf("job_applications[%d]: %w", i, err)
		}
		norm := normalizeCompany(app.Company.Name)
		if existing, ok := companies[norm]; ok {
			app.Company = existing
		} else {
			app.Company.ID = uuid.New()
			companies[norm] = app.Company
		}
		app.CompanyID = app.Company.ID
		recs.JobApplications = append(recs.JobApplications, app)
	}

	return recs, nil
}

func normalizeCompany(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

func (r WorkExperienceRecord) toWorkExperience(userID uuid.UUID) (types.WorkExperience, error) {
	start, err := optionalDate("start_date", r.StartDate)
	if err != nil {
		return types.WorkExperience{}, err
	}
	end, err := optionalDate("end_date", r.EndDate)
	if err != nil {
		return types.WorkExperience{}, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return types.WorkExperience{}, fmt.Errorf("end_date %s is before start_date %s", r.EndDate, r.StartDate)
	}

	return types.WorkExperience{
		ID:                uuid.New(),
		UserID:            userID,
		Company:           r.Company,
		Role:              r.Role,
		StartDate:         start,
		EndDate:           end,
		BaseSalary:        r.BaseSalary,
		TotalCompensation: r.TotalCompensation,
		EquityValue:       r.EquityValue,
		SeniorityLevel:    r.SeniorityLevel,
		SalaryAdjustments: types.DecodeSalaryAdjustments(r.SalaryAdjustments),
		BonusHistory:      types.DecodeBonusHistory(r.BonusHistory),
	}, nil
}

func (r CareerEventRecord) toCareerEvent(userID uuid.UUID, keys map[string]uuid.UUID) (types.CareerEvent, error) {
	date, ok := types.ParseDate(r.EventDate)
	if !ok {
		return types.CareerEvent{}, fmt.Errorf("event_date: invalid date %q", r.EventDate)
	}

	ev := types.CareerEvent{
		ID:             uuid.New(),
		UserID:         userID,
		EventType:      r.EventType,
		EventDate:      date,
		Title:          r.Title,
		Description:    r.Description,
		SalaryIncrease: r.SalaryIncrease,
	}
	if r.Experience != "" {
		id, ok := keys[r.Experience]
		if !ok {
			return types.CareerEvent{}, fmt.Errorf("unknown experience %q", r.Experience)
		}
		ev.WorkExperienceID = &id
	}
	if r.IncreasePercentage != nil {
		pct := r.IncreasePercentage.String()
		ev.IncreasePercentage = &pct
	}
	return ev, nil
}

func (r JobApplicationRecord) toJobApplication(userID uuid.UUID) (types.JobApplication, error) {
	app := types.JobApplication{
		ID:               uuid.New(),
		UserID:           userID,
		Company:          types.Company{Name: strings.TrimSpace(r.Company)},
		Position:         r.Position,
		Status:           types.ApplicationStatus(r.Status),
		SalaryOffered:    r.SalaryOffered,
		SalaryNegotiated: r.SalaryNegotiated,
		SalaryFinal:      r.SalaryFinal,
		Source:           r.Source,
		TimeToResponse:   r.TimeToResponse,
		TimeToOffer:      r.TimeToOffer,
		TimeToDecision:   r.TimeToDecision,
	}
	if r.Industry != "" {
		industry := r.Industry
		app.Company.Industry = &industry
	}
	if app.Status == "" {
		app.Status = types.StatusApplied
	}
	if !app.Status.Valid() {
		return types.JobApplication{}, fmt.Errorf("unknown status %q", r.Status)
	}
	if app.Source == "" {
		app.Source = types.DefaultSource
	}

	dates := []struct {
		name  string
		value string
		dst   **time.Time
	}{
		{"application_date", r.ApplicationDate, &app.ApplicationDate},
		{"response_date", r.ResponseDate, &app.ResponseDate},
		{"first_interview_date", r.FirstInterviewDate, &app.FirstInterviewDate},
		{"offer_date", r.OfferDate, &app.OfferDate},
		{"decision_date", r.DecisionDate, &app.DecisionDate},
	}
	for _, d := range dates {
		t, err := optionalDate(d.name, d.value)
		if err != nil {
			return types.JobApplication{}, err
		}
		*d.dst = t
	}

	fillDurations(&app)
	return app, nil
}

// fillDurations derives missing time-to counts from the recorded dates.
// Counts already present are kept as given.
func fillDurations(app *types.JobApplication) {
	if app.TimeToResponse == nil {
		app.TimeToResponse = daysBetween(app.ApplicationDate, app.ResponseDate)
	}
	if app.TimeToOffer == nil {
		app.TimeToOffer = daysBetween(app.ApplicationDate, app.OfferDate)
	}
	if app.TimeToDecision == nil {
		app.TimeToDecision = daysBetween(app.OfferDate, app.DecisionDate)
	}
}

func daysBetween(from, to *time.Time) *int {
	if from == nil || to == nil || to.Before(*from) {
		return nil
	}
	days := int(math.Round(to.Sub(*from).Hours() / 24))
	return &days
}

func optionalDate(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, ok := types.ParseDate(value)
	if !ok {
		return nil, fmt.Errorf("%s: invalid date %q", name, value)
	}
	return &t, nil
}
