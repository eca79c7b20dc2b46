// Package domain defines error types for LakeXpress command handling.
package domain

import (
	"fmt"
	"strings"
)

// FieldError is a single validation failure, tagged with the dotted path of
// the field that caused it (e.g. "config_create.output_dir").
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}

// ValidationErrors collects every violation found in a request so a caller
// can fix all of them in one round trip.
type ValidationErrors struct {
	Errors []FieldError
}

func (e *ValidationErrors) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// Add appends a violation for the given field path.
func (e *ValidationErrors) Add(field, message string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: message})
}

// AsError returns the collection as an error, or nil when no violation was
// recorded.
func (e *ValidationErrors) AsError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// ConfigurationError indicates the LakeXpress binary is missing, not a
// regular file, or not executable. It is raised once at startup and cached
// as a permanent unusable state rather than retried per request.
type ConfigurationError struct {
	Path    string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Path)
}

// ExecutionError indicates the external process timed out or could not be
// launched. A non-zero exit code is a normal result, not an ExecutionError.
type ExecutionError struct {
	Message string
	Timeout bool
	Cause   error
}

func (e *ExecutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("execution failed: %s (%v)", e.Message, e.Cause)
	}
	return fmt.Sprintf("execution failed: %s", e.Message)
}

func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// DetectionError indicates the version probe failed (timeout, missing
// binary, unparseable output). It never surfaces as a request error; the
// resolver degrades to the newest known capability set instead.
type DetectionError struct {
	Message string
	Cause   error
}

func (e *DetectionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("version detection failed: %s (%v)", e.Message, e.Cause)
	}
	return fmt.Sprintf("version detection failed: %s", e.Message)
}

func (e *DetectionError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError creates a new ConfigurationError.
func NewConfigurationError(path, message string) *ConfigurationError {
	return &ConfigurationError{Path: path, Message: message}
}

// NewExecutionError creates a new ExecutionError.
func NewExecutionError(message string, timeout bool, cause error) *ExecutionError {
	return &ExecutionError{Message: message, Timeout: timeout, Cause: cause}
}

// NewDetectionError creates a new DetectionError.
func NewDetectionError(message string, cause error) *DetectionError {
	return &DetectionError{Message: message, Cause: cause}
}
