// Package types provides the record types shared by the career metrics engine,
// the database layer and the portfolio loader.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// Seniority levels recorded on a work experience
const (
	SeniorityIntern    = "intern"
	SeniorityJunior    = "junior"
	SeniorityMid       = "mid"
	SenioritySenior    = "senior"
	SeniorityStaff     = "staff"
	SeniorityPrincipal = "principal"
	SeniorityLead      = "lead"
	SeniorityManager   = "manager"
	SeniorityDirector  = "director"
	SeniorityVP        = "vp"
	SeniorityCLevel    = "c_level"
)

// Career event types
const (
	EventPromotion   = "promotion"
	EventRaise       = "raise"
	EventBonus       = "bonus"
	EventEquityGrant = "equity_grant"
	EventJobChange   = "job_change"
	EventRoleChange  = "role_change"
)

// WorkExperience is one employment period. Monetary values are in cents.
// A nil EndDate marks the current job.
type WorkExperience struct {
	ID                uuid.UUID          `json:"id"`
	UserID            uuid.UUID          `json:"user_id"`
	Company           string             `json:"company"`
	Role              string             `json:"role"`
	StartDate         *time.Time         `json:"start_date,omitempty"`
	EndDate           *time.Time         `json:"end_date,omitempty"`
	BaseSalary        int64              `json:"base_salary"`
	TotalCompensation *int64             `json:"total_compensation,omitempty"`
	EquityValue       *int64             `json:"equity_value,omitempty"`
	SeniorityLevel    string             `json:"seniority_level,omitempty"`
	SalaryAdjustments []SalaryAdjustment `json:"salary_adjustments"`
	BonusHistory      []Bonus            `json:"bonus_history"`
}

// IsCurrent reports whether the experience is open-ended.
func (w WorkExperience) IsCurrent() bool {
	return w.EndDate == nil
}

// SalaryAdjustment is a change to the base salary within one job.
type SalaryAdjustment struct {
	EffectiveDate  time.Time `json:"effective_date" validate:"required"`
	NewSalary      int64     `json:"new_salary" validate:"gt=0"`
	PreviousSalary *int64    `json:"previous_salary,omitempty"`
	Reason         string    `json:"reason,omitempty"`
}

// Bonus is a single bonus payout.
type Bonus struct {
	Date   time.Time `json:"date" validate:"required"`
	Amount int64     `json:"amount" validate:"gte=0"`
	Type   string    `json:"type,omitempty"`
}

// CareerEvent is a point-in-time milestone for a user.
type CareerEvent struct {
	ID                 uuid.UUID  `json:"id"`
	UserID             uuid.UUID  `json:"user_id"`
	WorkExperienceID   *uuid.UUID `json:"work_experience_id,omitempty"`
	EventType          string     `json:"event_type"`
	EventDate          time.Time  `json:"event_date"`
	Title              string     `json:"title,omitempty"`
	Description        string     `json:"description,omitempty"`
	SalaryIncrease     *int64     `json:"salary_increase,omitempty"`
	IncreasePercentage *string    `json:"increase_percentage,omitempty"` // decimal string, e.g. "12.50"
}
