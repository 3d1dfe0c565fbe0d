package domain

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeFileNotFound      = "FILE_NOT_FOUND"
	ErrCodeParseError        = "PARSE_ERROR"
	ErrCodeAnalysisError     = "ANALYSIS_ERROR"
	ErrCodeConfigError       = "CONFIG_ERROR"
	ErrCodeOutputError       = "OUTPUT_ERROR"
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"

	// Report reconstruction failures
	ErrCodeMalformedReport = "MALFORMED_REPORT"
	ErrCodeUnrecognizedTag = "UNRECOGNIZED_TAG"
	ErrCodeStreamError     = "STREAM_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

// Error implements the error interface
func (e DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e DomainError) Unwrap() error {
	return e.Cause
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string, cause error) error {
	return DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewInvalidInputError creates an invalid input error
func NewInvalidInputError(message string, cause error) error {
	return NewDomainError(ErrCodeInvalidInput, message, cause)
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string, cause error) error {
	return NewDomainError(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path), cause)
}

// NewParseError wraps any failure raised while reconstructing a report.
// The specific kind stays reachable through errors.As on the cause.
func NewParseError(source string, cause error) error {
	return NewDomainError(ErrCodeParseError, fmt.Sprintf("failed to parse report %s", source), cause)
}

// NewAnalysisError creates an analysis error
func NewAnalysisError(message string, cause error) error {
	return NewDomainError(ErrCodeAnalysisError, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) error {
	return NewDomainError(ErrCodeConfigError, message, cause)
}

// NewOutputError creates an output error
func NewOutputError(message string, cause error) error {
	return NewDomainError(ErrCodeOutputError, message, cause)
}

// NewUnsupportedFormatError creates an unsupported format error
func NewUnsupportedFormatError(format string) error {
	return NewDomainError(ErrCodeUnsupportedFormat, fmt.Sprintf("unsupported format: %s", format), nil)
}

// NewValidationError creates a validation error
func NewValidationError(message string) error {
	return NewDomainError(ErrCodeInvalidInput, message, nil)
}

// NewMalformedReportError reports a structurally inconsistent document
func NewMalformedReportError(message string) error {
	return NewDomainError(ErrCodeMalformedReport, message, nil)
}

// NewUnrecognizedTagError reports a tag the parser has no handler for
func NewUnrecognizedTagError(tag string) error {
	return NewDomainError(ErrCodeUnrecognizedTag, fmt.Sprintf("unrecognized tag %s", tag), nil)
}

// NewStreamError reports a read or decode failure of the underlying stream
func NewStreamError(cause error) error {
	return NewDomainError(ErrCodeStreamError, "failed to read report stream", cause)
}

// ErrorCodeOf returns the code of the innermost DomainError in the chain,
// or an empty string when err carries none.
func ErrorCodeOf(err error) string {
	code := ""
	for err != nil {
		var de DomainError
		if !errors.As(err, &de) {
			break
		}
		code = de.Code
		err = de.Cause
	}
	return code
}

// HasErrorCode reports whether any DomainError in the error tree carries
// code. Joined errors are searched branch by branch.
func HasErrorCode(err error, code string) bool {
	switch e := err.(type) {
	case nil:
		return false
	case DomainError:
		return e.Code == code || HasErrorCode(e.Cause, code)
	case *DomainError:
		return e.Code == code || HasErrorCode(e.Cause, code)
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			if HasErrorCode(inner, code) {
				return true
			}
		}
		return false
	case interface{ Unwrap() error }:
		return HasErrorCode(e.Unwrap(), code)
	default:
		return false
	}
}
