package errors

import (
	"fmt"
	"sort"
	"strings"
)

const metaValidationErrors = "validation_errors"

// ValidationError collects field level problems, typically missing dependencies
// in a component Config
type ValidationError struct {
	Fields map[string][]string `json:"fields"`
}

// Error implements the error interface. Fields are reported in name order.
func (v *ValidationError) Error() string {
	if len(v.Fields) == 0 {
		return "validation failed"
	}

	names := make([]string, 0, len(v.Fields))
	for field := range v.Fields {
		names = append(names, field)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, field := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(v.Fields[field], ", ")))
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(parts, "; "))
}

// NewValidationError creates an empty validation error
func NewValidationError() *ValidationError {
	return &ValidationError{
		Fields: make(map[string][]string),
	}
}

// AddFieldError adds an error for a specific field
func (v *ValidationError) AddFieldError(field, message string) {
	v.Fields[field] = append(v.Fields[field], message)
}

// HasErrors returns true if there are any validation errors
func (v *ValidationError) HasErrors() bool {
	return len(v.Fields) > 0
}

// ToError converts the validation error to an InvalidArgument *Error
func (v *ValidationError) ToError() *Error {
	if !v.HasErrors() {
		return nil
	}

	return InvalidArgument(v.Error()).WithMeta(metaValidationErrors, v.Fields)
}

// ValidationBuilder accumulates field errors and builds nil when there are none
type ValidationBuilder struct {
	err *ValidationError
}

// NewValidationBuilder creates a new validation builder
func NewValidationBuilder() *ValidationBuilder {
	return &ValidationBuilder{
		err: NewValidationError(),
	}
}

// Field adds a validation error for a field
func (vb *ValidationBuilder) Field(field, message string) *ValidationBuilder {
	vb.err.AddFieldError(field, message)
	return vb
}

// RequiredField adds a required field error
func (vb *ValidationBuilder) RequiredField(field string) *ValidationBuilder {
	return vb.Field(field, "is required")
}

// Build returns the error if there are validation errors, nil otherwise
func (vb *ValidationBuilder) Build() error {
	if vb.err.HasErrors() {
		return vb.err.ToError()
	}
	return nil
}

// InvalidBatch rejects a whole command batch. The message is the newline-joined
// list so it can be shown to the agent as-is.
func InvalidBatch(messages []string) *Error {
	list := append([]string(nil), messages...)
	return InvalidArgument(strings.Join(list, "\n")).WithMeta(metaValidationErrors, list)
}

// BatchMessages returns the individual messages of an InvalidBatch error, or nil
func BatchMessages(err error) []string {
	switch msgs := GetMeta(err)[metaValidationErrors].(type) {
	case []string:
		return msgs
	case []any:
		out := make([]string, 0, len(msgs))
		for _, m := range msgs {
			out = append(out, fmt.Sprint(m))
		}
		return out
	default:
		return nil
	}
}
