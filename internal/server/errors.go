// Package server provides the HTTP REST API for the ATS scoring service.
package server

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUploadTooLarge indicates the request body exceeded the upload limit
type ErrUploadTooLarge struct {
	Limit int64
}

func (e *ErrUploadTooLarge) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}

// ErrJobFetch indicates the job posting at a URL could not be retrieved
type ErrJobFetch struct {
	URL   string
	Cause error
}

func (e *ErrJobFetch) Error() string {
	return fmt.Sprintf("failed to fetch job description from %s: %v", e.URL, e.Cause)
}

func (e *ErrJobFetch) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		tooLargeErr   *ErrUploadTooLarge
		fetchErr      *ErrJobFetch
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr), errors.As(err, &tooLargeErr), errors.As(err, &fetchErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
