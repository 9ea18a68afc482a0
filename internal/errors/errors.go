package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput      = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON     = errors.New("invalid JSON format")
	ErrMultipleJSON    = errors.New("multiple JSON values found at the root, only one is allowed")
	ErrFileNotFound    = errors.New("file not found")
	ErrFileEmpty       = errors.New("file is empty")
	ErrNoInput         = errors.New("no input provided: please pass a file or pipe JSON data to stdin")
	ErrInvalidFilePath = errors.New("invalid file path")
	ErrRootNotObject   = errors.New("top-level JSON value must be an object")
	ErrNullValue       = errors.New("null values are not supported")
	ErrEmptyArray      = errors.New("empty arrays have no element to infer a type from")
	ErrInvalidConfig   = errors.New("invalid configuration")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput     ErrorType = "input"
	ErrorTypeParsing   ErrorType = "parsing"
	ErrorTypeConfig    ErrorType = "config"
	ErrorTypeStructure ErrorType = "structure"
	ErrorTypeInvariant ErrorType = "invariant"
	ErrorTypeFormat    ErrorType = "format"
	ErrorTypeOutput    ErrorType = "output"
	ErrorTypeUnknown   ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeInput, Message: message, Err: err}
}

// NewParsingError creates a new error related to JSON parsing
func NewParsingError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeParsing, Message: message, Err: err}
}

// NewConfigError creates a new error related to configuration loading
func NewConfigError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeConfig, Message: message, Err: err}
}

// NewStructureError creates a new error for a document whose shape cannot be generated
func NewStructureError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeStructure, Message: message, Err: err}
}

// NewInvariantError creates a new error from a recovered InvariantViolation
func NewInvariantError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeInvariant, Message: message, Err: err}
}

// NewFormatError creates a new error related to output formatting
func NewFormatError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeFormat, Message: message, Err: err}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeOutput, Message: message, Err: err}
}

// InvariantViolation is the panic payload raised when the generator meets a value it
// does not model. It is a programming-contract fault, not a user error.
type InvariantViolation struct {
	// Key is the JSON property whose value could not be typed.
	Key string
	Err error
}

func (v *InvariantViolation) Error() string {
	return fmt.Sprintf("property %q: %v", v.Key, v.Err)
}

func (v *InvariantViolation) Unwrap() error {
	return v.Err
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeParsing:
			return fmt.Sprintf("JSON parsing error: %s", appErr.Message)
		case ErrorTypeConfig:
			return fmt.Sprintf("Configuration error: %s", appErr.Message)
		case ErrorTypeStructure:
			return fmt.Sprintf("Unsupported document: %s", appErr.Message)
		case ErrorTypeInvariant:
			if appErr.Err != nil {
				return fmt.Sprintf("Unsupported value: %s (%v)", appErr.Message, appErr.Err)
			}
			return fmt.Sprintf("Unsupported value: %s", appErr.Message)
		case ErrorTypeFormat:
			return fmt.Sprintf("Output formatting error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide valid JSON data."
	}
	if errors.Is(err, ErrInvalidJSON) {
		return "Error: The input contains invalid JSON. Please check your JSON syntax."
	}
	if errors.Is(err, ErrMultipleJSON) {
		return "Error: Multiple JSON values found. Please provide a single JSON object."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The specified file is empty. Please provide a file with valid JSON content."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please pass a file or pipe JSON data to stdin."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}
	if errors.Is(err, ErrRootNotObject) {
		return "Error: The top-level JSON value must be an object."
	}

	return fmt.Sprintf("Error: %v", err)
}
