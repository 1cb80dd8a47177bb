package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/craftd/internal/careermetrics"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnauthenticated indicates the request carried no user identity.
type ErrUnauthenticated struct{}

func (e *ErrUnauthenticated) Error() string {
	return "authentication required"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		unauthErr     *ErrUnauthenticated
		fieldErrs     validator.ValidationErrors
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &fieldErrs):
		return http.StatusBadRequest
	case errors.As(err, &unauthErr):
		return http.StatusUnauthorized
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage is the error text safe to return to API callers.
func publicMessage(err error) string {
	var (
		validationErr *ErrValidation
		unauthErr     *ErrUnauthenticated
		dashboardErr  *careermetrics.DashboardError
		fieldErrs     validator.ValidationErrors
	)
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Error()
	case errors.As(err, &fieldErrs) && len(fieldErrs) > 0:
		fe := fieldErrs[0]
		return fmt.Sprintf("validation error: %s - %s", fe.Field(), fe.Tag())
	case errors.As(err, &unauthErr):
		return unauthErr.Error()
	case errors.As(err, &dashboardErr):
		return careermetrics.DashboardErrorMessage
	default:
		return "internal server error"
	}
}
