package main

import "fmt"

// Exit codes for the dashkit CLI.
const (
	ExitOK           = 0 // Success.
	ExitInvalidArgs  = 1 // Invalid arguments, widget values, or runtime failure.
	ExitConfigError  = 2 // Config file unreadable or invalid.
	ExitDatasetError = 3 // A dataset could not be loaded or lacks required columns.
)

// exitCodeError carries a non-zero exit code through cobra's error handling.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError. If msg is empty, the error message is
// set to a generic description of the exit code.
func exitError(code int, format string, args ...any) *exitCodeError {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		switch code {
		case ExitConfigError:
			msg = "dashkit: invalid configuration"
		case ExitDatasetError:
			msg = "dashkit: dataset errors"
		default:
			msg = "dashkit: error"
		}
	}
	return &exitCodeError{code: code, msg: msg}
}
