// Package types provides type definitions for structured data used throughout the ATS scoring service.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var requestValidator = validator.New(validator.WithRequiredStructEnabled())

// ScoreTextRequest asks for a resume that is already plain text to be scored.
type ScoreTextRequest struct {
	ResumeText     string `json:"resume_text" validate:"required"`
	JobDescription string `json:"job_description,omitempty" validate:"max=1048576"`
	JobURL         string `json:"job_url,omitempty" validate:"omitempty,http_url,excluded_with=JobDescription"`
}

// Validate validates the ScoreTextRequest using the validator.
func (r *ScoreTextRequest) Validate() error {
	return requestValidator.Struct(r)
}

// ValidationMessage turns a validator error into a single client-facing line.
func ValidationMessage(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
	}
	return "validation error: invalid request"
}
