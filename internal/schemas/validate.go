// Package schemas provides JSON Schema validation of scoring results.
package schemas

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed ats_result.schema.json
var resultSchemaJSON string

// ResultSchemaName names the embedded result schema in errors.
const ResultSchemaName = "ats_result.schema.json"

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

var (
	resultSchemaOnce sync.Once
	resultSchema     *gojsonschema.Schema
	resultSchemaErr  error
)

// ResultSchema returns the raw JSON of the embedded result schema.
func ResultSchema() string {
	return resultSchemaJSON
}

func compiledResultSchema() (*gojsonschema.Schema, error) {
	resultSchemaOnce.Do(func() {
		resultSchema, resultSchemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(resultSchemaJSON))
		if resultSchemaErr != nil {
			resultSchemaErr = &SchemaLoadError{Path: ResultSchemaName, Message: "invalid schema", Cause: resultSchemaErr}
		}
	})
	return resultSchema, resultSchemaErr
}

// ValidateResult checks that v, marshalled to JSON, conforms to the result schema.
func ValidateResult(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	return ValidateResultJSON(data)
}

// ValidateResultJSON checks a JSON document against the result schema.
func ValidateResultJSON(data []byte) error {
	schema, err := compiledResultSchema()
	if err != nil {
		return err
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}
	return toValidationError(result)
}

// ValidateResultFile checks a saved result file against the result schema.
func ValidateResultFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("JSON file not found: %s", path)
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ValidateResultJSON(data)
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaContent),
		gojsonschema.NewStringLoader(jsonContent),
	)
	if err != nil {
		return &SchemaLoadError{
			Path:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}
	return toValidationError(result)
}

func toValidationError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
