package db

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/craftd/internal/portfolio"
	"github.com/jonathan/craftd/internal/types"
)

// ImportSummary counts the rows written by ImportPortfolio.
type ImportSummary struct {
	WorkExperiences int `json:"work_experiences"`
	CareerEvents    int `json:"career_events"`
	JobApplications int `json:"job_applications"`
	Companies       int `json:"companies"`
}

// ImportPortfolio replaces a user's career records with the document's
// contents in a single transaction. The user row is created if missing.
func (db *DB) ImportPortfolio(ctx context.Context, userID uuid.UUID, doc *portfolio.Document) (*ImportSummary, error) {
	recs, err := doc.Records(userID)
	if err != nil {
		return nil, err
	}

	summary := &ImportSummary{}
	err = db.withTx(ctx, func(tx pgx.Tx) error {
		if err := ensureUser(ctx, tx, userID); err != nil {
			return err
		}
		if err := clearCareerRecords(ctx, tx, userID); err != nil {
			return err
		}

		for _, exp := range recs.WorkExperiences {
			if err := insertWorkExperience(ctx, tx, exp); err != nil {
				return err
			}
		}
		for _, ev := range recs.CareerEvents {
			if err := insertCareerEvent(ctx, tx, ev); err != nil {
				return err
			}
		}

		companies := make(map[uuid.UUID]uuid.UUID)
		for _, app := range recs.JobApplications {
			companyID, ok := companies[app.CompanyID]
			if !ok {
				company, err := findOrCreateCompany(ctx, tx, app.Company.Name, app.Company.Industry)
				if err != nil {
					return err
				}
				companyID = company.ID
				companies[app.CompanyID] = companyID
			}
			app.CompanyID = companyID
			if err := insertJobApplication(ctx, tx, app); err != nil {
				return err
			}
		}

		summary.WorkExperiences = len(recs.WorkExperiences)
		summary.CareerEvents = len(recs.CareerEvents)
		summary.JobApplications = len(recs.JobApplications)
		summary.Companies = len(companies)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[db] Imported portfolio for user %s: %d experiences, %d events, %d applications",
		userID, summary.WorkExperiences, summary.CareerEvents, summary.JobApplications)
	return summary, nil
}

// EnsureUser creates the user row if it does not exist.
func (db *DB) EnsureUser(ctx context.Context, userID uuid.UUID) error {
	return ensureUser(ctx, db.pool, userID)
}

func ensureUser(ctx context.Context, q querier, userID uuid.UUID) error {
	_, err := q.Exec(ctx, `INSERT INTO users (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`, userID)
	if err != nil {
		return fmt.Errorf("failed to ensure user: %w", err)
	}
	return nil
}

func clearCareerRecords(ctx context.Context, q querier, userID uuid.UUID) error {
	for _, table := range []string{"career_events", "job_applications", "work_experiences"} {
		if _, err := q.Exec(ctx, "DELETE FROM "+table+" WHERE user_id = $1", userID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

func insertWorkExperience(ctx context.Context, q querier, exp types.WorkExperience) error {
	adjustments, err := json.Marshal(exp.SalaryAdjustments)
	if err != nil {
		return fmt.Errorf("failed to marshal salary adjustments: %w", err)
	}
	bonuses, err := json.Marshal(exp.BonusHistory)
	if err != nil {
		return fmt.Errorf("failed to marshal bonus history: %w", err)
	}

	_, err = q.Exec(ctx,
		`INSERT INTO work_experiences (id, user_id, company, role, start_date, end_date, base_salary,
		                               total_compensation, equity_value, seniority_level,
		                               salary_adjustments, bonus_history)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11, $12)`,
		exp.ID, exp.UserID, exp.Company, exp.Role, exp.StartDate, exp.EndDate, exp.BaseSalary,
		exp.TotalCompensation, exp.EquityValue, exp.SeniorityLevel, adjustments, bonuses,
	)
	if err != nil {
		return fmt.Errorf("failed to insert work experience %s at %s: %w", exp.Role, exp.Company, err)
	}
	return nil
}

func insertCareerEvent(ctx context.Context, q querier, ev types.CareerEvent) error {
	_, err := q.Exec(ctx,
		`INSERT INTO career_events (id, user_id, work_experience_id, event_type, event_date, title,
		                            description, salary_increase, increase_percentage)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::numeric)`,
		ev.ID, ev.UserID, ev.WorkExperienceID, ev.EventType, ev.EventDate, ev.Title,
		ev.Description, ev.SalaryIncrease, ev.IncreasePercentage,
	)
	if err != nil {
		return fmt.Errorf("failed to insert career event %s: %w", ev.EventType, err)
	}
	return nil
}

func insertJobApplication(ctx context.Context, q querier, app types.JobApplication) error {
	_, err := q.Exec(ctx,
		`INSERT INTO job_applications (id, user_id, company_id, position, status,
		                               application_date, response_date, first_interview_date, offer_date, decision_date,
		                               salary_offered, salary_negotiated, salary_final, source,
		                               time_to_response, time_to_offer, time_to_decision)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		app.ID, app.UserID, app.CompanyID, app.Position, string(app.Status),
		app.ApplicationDate, app.ResponseDate, app.FirstInterviewDate, app.OfferDate, app.DecisionDate,
		app.SalaryOffered, app.SalaryNegotiated, app.SalaryFinal, app.SourceOrDefault(),
		app.TimeToResponse, app.TimeToOffer, app.TimeToDecision,
	)
	if err != nil {
		return fmt.Errorf("failed to insert job application %s: %w", app.Position, err)
	}
	return nil
}
