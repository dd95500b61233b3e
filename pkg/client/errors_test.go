package client

import (
	"errors"
	"fmt"
	"testing"
)

func TestServiceError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ServiceError
		expected string
	}{
		{
			name: "network error with wrapped error",
			err: &ServiceError{
				ErrorClass: ErrorClassNetwork,
				Message:    "request failed",
				Err:        errors.New("connection refused"),
			},
			expected: "service network error: request failed: connection refused",
		},
		{
			name: "status error",
			err: &ServiceError{
				StatusCode: 404,
				ErrorClass: ErrorClassStatus,
				Message:    "404 Not Found",
			},
			expected: "service status error (status 404): 404 Not Found",
		},
		{
			name: "decode error",
			err: &ServiceError{
				StatusCode: 200,
				ErrorClass: ErrorClassDecode,
				Message:    "malformed records",
				Err:        errors.New("record 0: missing email"),
			},
			expected: "service decode error (status 200): malformed records: record 0: missing email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestServiceError_Is(t *testing.T) {
	tests := []struct {
		class    ErrorClass
		matches  error
		excludes []error
	}{
		{ErrorClassNetwork, ErrNetwork, []error{ErrDecode, ErrStatus}},
		{ErrorClassDecode, ErrDecode, []error{ErrNetwork, ErrStatus}},
		{ErrorClassStatus, ErrStatus, []error{ErrNetwork, ErrDecode}},
	}

	for _, tt := range tests {
		t.Run(string(tt.class), func(t *testing.T) {
			err := fmt.Errorf("fetch: %w", &ServiceError{ErrorClass: tt.class})

			if !errors.Is(err, tt.matches) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.matches)
			}
			for _, other := range tt.excludes {
				if errors.Is(err, other) {
					t.Errorf("errors.Is(%v, %v) = true", err, other)
				}
			}
		})
	}
}

func TestServiceError_UnknownClass(t *testing.T) {
	err := &ServiceError{ErrorClass: "mystery"}
	for _, sentinel := range []error{ErrNetwork, ErrDecode, ErrStatus} {
		if errors.Is(err, sentinel) {
			t.Errorf("unknown class matched %v", sentinel)
		}
	}
}

func TestServiceError_Unwrap(t *testing.T) {
	wrappedErr := errors.New("wrapped error")
	svcErr := &ServiceError{
		ErrorClass: ErrorClassNetwork,
		Message:    "request failed",
		Err:        wrappedErr,
	}

	if svcErr.Unwrap() != wrappedErr {
		t.Errorf("Unwrap() = %v, want %v", svcErr.Unwrap(), wrappedErr)
	}
	if !errors.Is(svcErr, wrappedErr) {
		t.Error("errors.Is should work with wrapped error")
	}
	if (&ServiceError{}).Unwrap() != nil {
		t.Error("Unwrap() of empty error should be nil")
	}
}

func TestClass(t *testing.T) {
	if got := Class(&ServiceError{ErrorClass: ErrorClassDecode}); got != ErrorClassDecode {
		t.Errorf("Class() = %q, want decode", got)
	}
	if got := Class(fmt.Errorf("outer: %w", &ServiceError{ErrorClass: ErrorClassStatus})); got != ErrorClassStatus {
		t.Errorf("Class() of wrapped = %q, want status", got)
	}
	if got := Class(errors.New("plain")); got != "" {
		t.Errorf("Class() of plain error = %q, want empty", got)
	}
	if got := Class(nil); got != "" {
		t.Errorf("Class(nil) = %q, want empty", got)
	}
}
