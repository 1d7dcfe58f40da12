package clierror

import (
	"encoding/json"
	"fmt"
	"io"
)

// Exit codes. Denied is distinct from invalid input so callers can script
// around the verdict; both are non-zero because the pipeline fails closed.
const (
	ExitSuccess = 0 // Requirement satisfied
	ExitGeneral = 1 // Unknown/unhandled error
	ExitDenied  = 2 // Requirement evaluated and not satisfied
	ExitInvalid = 3 // Requirement expression failed validation
	ExitInput   = 4 // Held-permission input could not be read or parsed
)

// Error codes (strings) for programmatic error handling.
const (
	CodeDenied             = "DENIED"
	CodeInvalidRequirement = "INVALID_REQUIREMENT"
	CodeBadInput           = "BAD_INPUT"
	CodeInternalError      = "INTERNAL_ERROR"
)

// CLIError represents a structured error for CLI output.
type CLIError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Hint     string `json:"hint,omitempty"`
	ExitCode int    `json:"-"` // Not serialized, used for os.Exit
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	return e.Message
}

// Denied creates an error for an evaluated-but-unsatisfied requirement.
func Denied(requirement string) *CLIError {
	return &CLIError{
		Code:     CodeDenied,
		Message:  fmt.Sprintf("requirement %s is not satisfied by the held permissions", requirement),
		ExitCode: ExitDenied,
	}
}

// InvalidRequirement creates an error for a requirement that failed
// structural validation.
func InvalidRequirement(detail string) *CLIError {
	return &CLIError{
		Code:     CodeInvalidRequirement,
		Message:  fmt.Sprintf("invalid requirement expression: %s", detail),
		Hint:     "A requirement is a string, a JSON array, or an object with \"permissions\" and \"mode\"",
		ExitCode: ExitInvalid,
	}
}

// BadInput creates an error for unreadable or unparseable input.
func BadInput(what string, err error) *CLIError {
	return &CLIError{
		Code:     CodeBadInput,
		Message:  fmt.Sprintf("cannot read %s: %v", what, err),
		Hint:     "Held permissions are a JSON or YAML list of strings",
		ExitCode: ExitInput,
	}
}

// Internal creates an error for unexpected failures.
func Internal(err error) *CLIError {
	return &CLIError{
		Code:     CodeInternalError,
		Message:  fmt.Sprintf("internal error: %v", err),
		ExitCode: ExitGeneral,
	}
}

// Render writes the error to w, as JSON when jsonOut is set and as a
// human-readable message (with hint) otherwise.
func (e *CLIError) Render(w io.Writer, jsonOut bool) {
	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		_ = enc.Encode(e)
		return
	}
	fmt.Fprintf(w, "Error: %s\n", e.Message)
	if e.Hint != "" {
		fmt.Fprintf(w, "Hint: %s\n", e.Hint)
	}
}
