package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/craftd/internal/types"
)

// -----------------------------------------------------------------------------
// Career record queries (careermetrics.Repository)
// -----------------------------------------------------------------------------

// ListWorkExperiences returns a user's experiences by ascending start date.
// Undated experiences sort last.
func (db *DB) ListWorkExperiences(ctx context.Context, userID uuid.UUID) ([]types.WorkExperience, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, company, role, start_date, end_date, base_salary,
		        total_compensation, equity_value, COALESCE(seniority_level, ''),
		        salary_adjustments, bonus_history
		 FROM work_experiences
		 WHERE user_id = $1
		 ORDER BY start_date ASC NULLS LAST, created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list work experiences: %w", err)
	}
	defer rows.Close()

	exps := []types.WorkExperience{}
	for rows.Next() {
		var exp types.WorkExperience
		// JSONB scans into decoded values; nil when the column is NULL.
		var adjustments, bonuses any
		if err := rows.Scan(&exp.ID, &exp.UserID, &exp.Company, &exp.Role, &exp.StartDate, &exp.EndDate,
			&exp.BaseSalary, &exp.TotalCompensation, &exp.EquityValue, &exp.SeniorityLevel,
			&adjustments, &bonuses); err != nil {
			return nil, fmt.Errorf("failed to scan work experience: %w", err)
		}
		exp.SalaryAdjustments = types.DecodeSalaryAdjustments(adjustments)
		exp.BonusHistory = types.DecodeBonusHistory(bonuses)
		exps = append(exps, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read work experiences: %w", err)
	}
	return exps, nil
}

// careerEventsQuery builds the newest-first event query; limit <= 0 is unbounded.
func careerEventsQuery(userID uuid.UUID, limit int) (string, []any) {
	query := `SELECT id, user_id, work_experience_id, event_type, event_date, title, description,
		       salary_increase, increase_percentage::text
		FROM career_events
		WHERE user_id = $1
		ORDER BY event_date DESC, created_at DESC`
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}
	return query, args
}

// ListCareerEvents returns a user's career events, newest first.
func (db *DB) ListCareerEvents(ctx context.Context, userID uuid.UUID, limit int) ([]types.CareerEvent, error) {
	query, args := careerEventsQuery(userID, limit)
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list career events: %w", err)
	}
	defer rows.Close()

	events := []types.CareerEvent{}
	for rows.Next() {
		var ev types.CareerEvent
		if err := rows.Scan(&ev.ID, &ev.UserID, &ev.WorkExperienceID, &ev.EventType, &ev.EventDate,
			&ev.Title, &ev.Description, &ev.SalaryIncrease, &ev.IncreasePercentage); err != nil {
			return nil, fmt.Errorf("failed to scan career event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read career events: %w", err)
	}
	return events, nil
}

// ListJobApplications returns a user's applications with their company,
// most recent application first.
func (db *DB) ListJobApplications(ctx context.Context, userID uuid.UUID) ([]types.JobApplication, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT a.id, a.user_id, a.company_id, c.name, c.industry, a.position, a.status,
		        a.application_date, a.response_date, a.first_interview_date, a.offer_date, a.decision_date,
		        a.salary_offered, a.salary_negotiated, a.salary_final, a.source,
		        a.time_to_response, a.time_to_offer, a.time_to_decision
		 FROM job_applications a
		 JOIN companies c ON c.id = a.company_id
		 WHERE a.user_id = $1
		 ORDER BY a.application_date DESC NULLS LAST, a.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list job applications: %w", err)
	}
	defer rows.Close()

	apps := []types.JobApplication{}
	for rows.Next() {
		var app types.JobApplication
		var status string
		if err := rows.Scan(&app.ID, &app.UserID, &app.CompanyID, &app.Company.Name, &app.Company.Industry,
			&app.Position, &status,
			&app.ApplicationDate, &app.ResponseDate, &app.FirstInterviewDate, &app.OfferDate, &app.DecisionDate,
			&app.SalaryOffered, &app.SalaryNegotiated, &app.SalaryFinal, &app.Source,
			&app.TimeToResponse, &app.TimeToOffer, &app.TimeToDecision); err != nil {
			return nil, fmt.Errorf("failed to scan job application: %w", err)
		}
		app.Status = types.ApplicationStatus(status)
		app.Company.ID = app.CompanyID
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read job applications: %w", err)
	}
	return apps, nil
}
