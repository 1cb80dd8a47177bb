// Package portfolio reads career portfolio documents: a user's work history,
// career events and job applications in one JSON file.
package portfolio

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/jonathan/craftd/internal/schemas"
	schemafiles "github.com/jonathan/craftd/schemas"
)

// Document is the on-disk portfolio format. Dates are strings in
// YYYY-MM-DD or RFC 3339 form; money is in cents.
type Document struct {
	WorkExperiences []WorkExperienceRecord `json:"work_experiences"`
	CareerEvents    []CareerEventRecord    `json:"career_events"`
	JobApplications []JobApplicationRecord `json:"job_applications"`
}

// WorkExperienceRecord is one employment period. Key is an optional local
// name that career events use to refer to it.
type WorkExperienceRecord struct {
	Key               string          `json:"key,omitempty"`
	Company           string          `json:"company"`
	Role              string          `json:"role"`
	StartDate         string          `json:"start_date,omitempty"`
	EndDate           string          `json:"end_date,omitempty"`
	BaseSalary        int64           `json:"base_salary"`
	TotalCompensation *int64          `json:"total_compensation,omitempty"`
	EquityValue       *int64          `json:"equity_value,omitempty"`
	SeniorityLevel    string          `json:"seniority_level,omitempty"`
	SalaryAdjustments json.RawMessage `json:"salary_adjustments,omitempty"`
	BonusHistory      json.RawMessage `json:"bonus_history,omitempty"`
}

// CareerEventRecord is one milestone. Experience names a WorkExperienceRecord key.
type CareerEventRecord struct {
	Experience         string       `json:"experience,omitempty"`
	EventType          string       `json:"event_type"`
	EventDate          string       `json:"event_date"`
	Title              string       `json:"title,omitempty"`
	Description        string       `json:"description,omitempty"`
	SalaryIncrease     *int64       `json:"salary_increase,omitempty"`
	IncreasePercentage *json.Number `json:"increase_percentage,omitempty"`
}

// JobApplicationRecord is one application to one company.
type JobApplicationRecord struct {
	Company            string `json:"company"`
	Industry           string `json:"industry,omitempty"`
	Position           string `json:"position"`
	Status             string `json:"status,omitempty"`
	ApplicationDate    string `json:"application_date,omitempty"`
	ResponseDate       string `json:"response_date,omitempty"`
	FirstInterviewDate string `json:"first_interview_date,omitempty"`
	OfferDate          string `json:"offer_date,omitempty"`
	DecisionDate       string `json:"decision_date,omitempty"`
	SalaryOffered      *int64 `json:"salary_offered,omitempty"`
	SalaryNegotiated   *int64 `json:"salary_negotiated,omitempty"`
	SalaryFinal        *int64 `json:"salary_final,omitempty"`
	Source             string `json:"source,omitempty"`
	TimeToResponse     *int   `json:"time_to_response,omitempty"`
	TimeToOffer        *int   `json:"time_to_offer,omitempty"`
	TimeToDecision     *int   `json:"time_to_decision,omitempty"`
}

var (
	validatorOnce sync.Once
	validator     *schemas.Validator
	validatorErr  error
)

func documentValidator() (*schemas.Validator, error) {
	validatorOnce.Do(func() {
		validator, validatorErr = schemas.Compile("portfolio.schema.json", schemafiles.Portfolio)
	})
	return validator, validatorErr
}

// Parse validates data against the portfolio schema and decodes it.
func Parse(data []byte) (*Document, error) {
	v, err := documentValidator()
	if err != nil {
		return nil, err
	}
	if err := v.Validate(data); err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode portfolio: %w", err)
	}
	return &doc, nil
}

// Load reads and parses a portfolio file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read portfolio %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid portfolio %s: %w", path, err)
	}
	return doc, nil
}
