package output

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitCodeConstants(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		expected int
	}{
		{"ExitSuccess", ExitSuccess, 0},
		{"ExitUserError", ExitUserError, 1},
		{"ExitSystemError", ExitSystemError, 2},
		{"ExitDataError", ExitDataError, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code != tt.expected {
				t.Errorf("%s = %d, want %d", tt.name, tt.code, tt.expected)
			}
		})
	}
}

func TestExitError_Constructors(t *testing.T) {
	cause := errors.New("underlying")
	tests := []struct {
		name      string
		err       *ExitError
		wantCode  int
		wantCause bool
	}{
		{"user", NewUserError("unknown release 2.0"), ExitUserError, false},
		{"user with cause", NewUserErrorWithCause("bad config", cause), ExitUserError, true},
		{"system", NewSystemErrorWithCause("write failed", cause), ExitSystemError, true},
		{"data", NewDataErrorWithCause("mail.yaml missing", cause), ExitDataError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", tt.err.Code, tt.wantCode)
			}
			if tt.err.Error() != tt.err.Message {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.err.Message)
			}
			if got := errors.Is(tt.err, cause); got != tt.wantCause {
				t.Errorf("errors.Is(cause) = %v, want %v", got, tt.wantCause)
			}
		})
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, ExitSuccess},
		{"user", NewUserError("bad input"), ExitUserError},
		{"system", NewSystemErrorWithCause("disk full", errors.New("ENOSPC")), ExitSystemError},
		{"data", NewDataErrorWithCause("malformed", errors.New("x")), ExitDataError},
		{"wrapped", fmt.Errorf("context: %w", NewDataErrorWithCause("malformed", nil)), ExitDataError},
		{"plain error", errors.New("unknown flag"), ExitUserError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.expected {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}
