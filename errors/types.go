package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Repository detection errors
	ErrCodeRepoDetect   ErrorCode = "REPO_DETECT"
	ErrCodeRepoNotFound ErrorCode = "REPO_NOT_FOUND"

	// Status collection errors
	ErrCodeJJCollect  ErrorCode = "JJ_COLLECT"
	ErrCodeGitCollect ErrorCode = "GIT_COLLECT"

	// Configuration errors
	ErrCodeConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// Command execution errors
	ErrCodeCommandTimeout  ErrorCode = "COMMAND_TIMEOUT"
	ErrCodeCommandNotFound ErrorCode = "COMMAND_NOT_FOUND"
	ErrCodeCommandFailed   ErrorCode = "COMMAND_FAILED"

	// Starship integration errors
	ErrCodeStarshipConfig ErrorCode = "STARSHIP_CONFIG"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// PromptError represents a structured error with context
type PromptError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *PromptError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PromptError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *PromptError) WithDetail(key string, value interface{}) *PromptError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *PromptError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new PromptError
func New(code ErrorCode, message string) *PromptError {
	return &PromptError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a PromptError
func Wrap(err error, code ErrorCode, message string) *PromptError {
	return &PromptError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific PromptError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	promptErr, ok := err.(*PromptError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return promptErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	promptErr, ok := err.(*PromptError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return promptErr.Code
}
