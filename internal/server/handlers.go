package server

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/craftd/internal/careermetrics"
	"github.com/jonathan/craftd/internal/server/middleware"
)

// careerEventsParams are the query parameters of GET /api/career-events.
type careerEventsParams struct {
	Limit int `validate:"min=1,max=100"`
}

// requireUser returns the authenticated user or writes a 401.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.writeError(w, &ErrUnauthenticated{})
		return uuid.Nil, false
	}
	return userID, true
}

// serveSection runs one read-only query for the authenticated user and
// writes its result as JSON.
func serveSection[T any](s *Server, w http.ResponseWriter, r *http.Request, section string,
	fetch func(context.Context, uuid.UUID) (T, error)) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	result, err := fetch(r.Context(), userID)
	if err != nil {
		log.Printf("[%s] Failed for user %s: %v", section, userID, err)
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleDashboard returns the composed career dashboard. Any dataset failure
// fails the whole request with one generic message.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	start := time.Now()
	data, err := s.service.Dashboard(r.Context(), userID)
	s.metrics.dashboardDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.dashboardFailures.Inc()
		log.Printf("[dashboard] Failed for user %s: %v", userID, err)
		s.errorResponse(w, http.StatusInternalServerError, careermetrics.DashboardErrorMessage)
		return
	}
	s.jsonResponse(w, http.StatusOK, data)
}

func (s *Server) handleFinancialMetrics(w http.ResponseWriter, r *http.Request) {
	serveSection(s, w, r, "financial", s.service.FinancialMetrics)
}

func (s *Server) handleCareerProgression(w http.ResponseWriter, r *http.Request) {
	serveSection(s, w, r, "progression", s.service.CareerProgression)
}

func (s *Server) handleApplicationMetrics(w http.ResponseWriter, r *http.Request) {
	serveSection(s, w, r, "applications", s.service.JobApplicationMetrics)
}

func (s *Server) handleWorkExperiences(w http.ResponseWriter, r *http.Request) {
	serveSection(s, w, r, "work-experiences", s.service.WorkExperiencesWithFinancials)
}

func (s *Server) handleSalaryProgression(w http.ResponseWriter, r *http.Request) {
	serveSection(s, w, r, "salary-progression", s.service.SalaryProgression)
}

func (s *Server) handleFunnelChart(w http.ResponseWriter, r *http.Request) {
	serveSection(s, w, r, "charts", s.service.ApplicationFunnel)
}

func (s *Server) handleWaterfallChart(w http.ResponseWriter, r *http.Request) {
	serveSection(s, w, r, "charts", s.service.CompensationWaterfall)
}

func (s *Server) handleTimelineChart(w http.ResponseWriter, r *http.Request) {
	serveSection(s, w, r, "charts", s.service.CareerTimeline)
}

// handleCareerEvents returns the newest career events, ?limit=N (1..100).
func (s *Server) handleCareerEvents(w http.ResponseWriter, r *http.Request) {
	params := careerEventsParams{Limit: careermetrics.DefaultRecentEventLimit}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, &ErrValidation{Field: "limit", Message: "must be an integer"})
			return
		}
		params.Limit = limit
	}
	if err := s.validator.Struct(params); err != nil {
		s.writeError(w, err)
		return
	}

	serveSection(s, w, r, "career-events", func(ctx context.Context, userID uuid.UUID) (any, error) {
		return s.service.RecentCareerEvents(ctx, userID, params.Limit)
	})
}
