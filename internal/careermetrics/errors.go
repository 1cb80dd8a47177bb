package careermetrics

import "fmt"

// DashboardErrorMessage is the only failure reported to dashboard callers.
const DashboardErrorMessage = "failed to fetch career dashboard data"

// DashboardError is returned when any part of the dashboard could not be
// fetched. No partial dashboard accompanies it.
type DashboardError struct {
	Message string
	Cause   error
}

func (e *DashboardError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DashboardError) Unwrap() error {
	return e.Cause
}

// FetchError wraps a repository failure with the dataset being read.
type FetchError struct {
	Dataset string
	Cause   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Dataset, e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}
