package types

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is the pipeline stage of a job application
type ApplicationStatus string

// Application statuses in funnel order
const (
	StatusApplied        ApplicationStatus = "APPLIED"
	StatusPhoneScreen    ApplicationStatus = "PHONE_SCREEN"
	StatusInterview      ApplicationStatus = "INTERVIEW"
	StatusFinalInterview ApplicationStatus = "FINAL_INTERVIEW"
	StatusOffer          ApplicationStatus = "OFFER"
	StatusAccepted       ApplicationStatus = "ACCEPTED"
	StatusRejected       ApplicationStatus = "REJECTED"
	StatusWithdrawn      ApplicationStatus = "WITHDRAWN"
)

// AllStatuses lists every status in funnel order.
var AllStatuses = []ApplicationStatus{
	StatusApplied,
	StatusPhoneScreen,
	StatusInterview,
	StatusFinalInterview,
	StatusOffer,
	StatusAccepted,
	StatusRejected,
	StatusWithdrawn,
}

// DefaultSource is used when an application has no recorded source.
const DefaultSource = "unknown"

// Valid reports whether s is a known status.
func (s ApplicationStatus) Valid() bool {
	return s.Ordinal() >= 0
}

// Ordinal returns the position of s in AllStatuses, or -1.
func (s ApplicationStatus) Ordinal() int {
	for i, known := range AllStatuses {
		if s == known {
			return i
		}
	}
	return -1
}

// IsOffer reports whether the application reached the offer stage.
func (s ApplicationStatus) IsOffer() bool {
	return s == StatusOffer || s == StatusAccepted
}

// IsClosed reports whether no further progress is expected.
func (s ApplicationStatus) IsClosed() bool {
	return s == StatusAccepted || s == StatusRejected || s == StatusWithdrawn
}

// Company is the normalized employer referenced by job applications.
type Company struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Industry *string   `json:"industry,omitempty"`
}

// JobApplication is one application to one company. Time-to fields are
// precomputed day counts and are trusted as-is.
type JobApplication struct {
	ID                 uuid.UUID         `json:"id"`
	UserID             uuid.UUID         `json:"user_id"`
	CompanyID          uuid.UUID         `json:"company_id"`
	Company            Company           `json:"company"`
	Position           string            `json:"position"`
	Status             ApplicationStatus `json:"status"`
	ApplicationDate    *time.Time        `json:"application_date,omitempty"`
	ResponseDate       *time.Time        `json:"response_date,omitempty"`
	FirstInterviewDate *time.Time        `json:"first_interview_date,omitempty"`
	OfferDate          *time.Time        `json:"offer_date,omitempty"`
	DecisionDate       *time.Time        `json:"decision_date,omitempty"`
	SalaryOffered      *int64            `json:"salary_offered,omitempty"`
	SalaryNegotiated   *int64            `json:"salary_negotiated,omitempty"`
	SalaryFinal        *int64            `json:"salary_final,omitempty"`
	Source             string            `json:"source,omitempty"`
	TimeToResponse     *int              `json:"time_to_response,omitempty"`
	TimeToOffer        *int              `json:"time_to_offer,omitempty"`
	TimeToDecision     *int              `json:"time_to_decision,omitempty"`
}

// SourceOrDefault returns the application source, or DefaultSource when blank.
func (a JobApplication) SourceOrDefault() string {
	if a.Source == "" {
		return DefaultSource
	}
	return a.Source
}
