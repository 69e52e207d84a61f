package errors

import (
	"errors"
	"fmt"
	"os/exec"
)

// Exit codes for lp3
const (
	ExitSuccess             = 0
	ExitGeneralError        = 1
	ExitInvalidInput        = 2
	ExitPromptCancelled     = 3
	ExitDestinationConflict = 4
	ExitToolMissing         = 5
)

// GenError is the base error type for lp3
type GenError struct {
	Code    int
	Message string
	Cause   error
}

func (e *GenError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *GenError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *GenError) ExitCode() int {
	return e.Code
}

// New creates a new GenError
func New(code int, message string) *GenError {
	return &GenError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a GenError
func Wrap(code int, message string, cause error) *GenError {
	return &GenError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// InvalidInput returns an error for a rejected answer or flag value
func InvalidInput(message string) *GenError {
	return New(ExitInvalidInput, message)
}

// PromptCancelled returns an error for an interrupted prompt
func PromptCancelled(cause error) *GenError {
	return Wrap(ExitPromptCancelled, "prompt cancelled", cause)
}

// DestinationConflict returns an error when the project directory cannot be used
func DestinationConflict(path string) *GenError {
	return New(ExitDestinationConflict, fmt.Sprintf("destination %s is not empty; use --force to generate into it", path))
}

// ToolMissing returns an error when a required executable is not on PATH
func ToolMissing(name string, cause error) *GenError {
	return Wrap(ExitToolMissing, fmt.Sprintf("%s not found on PATH", name), cause)
}

// CommandFailed wraps a failed external command. If the command ran and
// exited non-zero, its exit code becomes the CLI's exit code.
func CommandFailed(command string, cause error) *GenError {
	code := ExitGeneralError
	var exitErr *exec.ExitError
	if errors.As(cause, &exitErr) && exitErr.ExitCode() > 0 {
		code = exitErr.ExitCode()
	}
	return Wrap(code, fmt.Sprintf("command %q failed", command), cause)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var genErr *GenError
	if errors.As(err, &genErr) {
		return genErr.ExitCode()
	}
	return ExitGeneralError
}
