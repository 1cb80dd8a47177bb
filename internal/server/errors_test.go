package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/craftd/internal/careermetrics"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "limit", Message: "must be an integer"}
	assert.Equal(t, "validation error: limit - must be an integer", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	fieldErr := validator.New().Struct(careerEventsParams{Limit: 0})

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &ErrValidation{Field: "limit"}, http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("query: %w", &ErrValidation{Field: "limit"}), http.StatusBadRequest},
		{"validator field errors", fieldErr, http.StatusBadRequest},
		{"unauthenticated", &ErrUnauthenticated{}, http.StatusUnauthorized},
		{"deadline", &careermetrics.FetchError{Dataset: "job applications", Cause: context.DeadlineExceeded}, http.StatusGatewayTimeout},
		{"dashboard", &careermetrics.DashboardError{Message: careermetrics.DashboardErrorMessage, Cause: errors.New("boom")}, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestPublicMessage(t *testing.T) {
	fieldErr := validator.New().Struct(careerEventsParams{Limit: 101})

	assert.Equal(t, "validation error: Limit - max", publicMessage(fieldErr))
	assert.Equal(t, "authentication required", publicMessage(&ErrUnauthenticated{}))
	assert.Equal(t, careermetrics.DashboardErrorMessage,
		publicMessage(&careermetrics.DashboardError{Message: careermetrics.DashboardErrorMessage, Cause: errors.New("pg down")}))
	assert.Equal(t, "internal server error", publicMessage(errors.New("connection refused to 10.0.0.5")))
}
