package client

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by ServiceError.Is, one per ErrorClass.
var (
	// ErrNetwork matches transport and connectivity failures.
	ErrNetwork = errors.New("network error")

	// ErrDecode matches responses that do not parse into records.
	ErrDecode = errors.New("decode error")

	// ErrStatus matches non-2xx answers from the service.
	ErrStatus = errors.New("unexpected status")
)

// ErrorClass represents a classification of gateway errors.
type ErrorClass string

const (
	// ErrorClassNetwork represents transport, connectivity and body read errors.
	ErrorClassNetwork ErrorClass = "network"

	// ErrorClassDecode represents a response that is not the expected record shape.
	ErrorClassDecode ErrorClass = "decode"

	// ErrorClassStatus represents a non-2xx HTTP status.
	ErrorClassStatus ErrorClass = "status"
)

// sentinel returns the sentinel error matching the class.
func (c ErrorClass) sentinel() error {
	switch c {
	case ErrorClassNetwork:
		return ErrNetwork
	case ErrorClassDecode:
		return ErrDecode
	case ErrorClassStatus:
		return ErrStatus
	default:
		return nil
	}
}

// ServiceError is the error returned by FetchAll.
type ServiceError struct {
	StatusCode int
	ErrorClass ErrorClass
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	msg := fmt.Sprintf("service %s error", e.ErrorClass)
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel of this error's class.
func (e *ServiceError) Is(target error) bool {
	sentinel := e.ErrorClass.sentinel()
	return sentinel != nil && target == sentinel
}

// Class returns the ErrorClass of err, or "" if err is not a ServiceError.
func Class(err error) ErrorClass {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.ErrorClass
	}
	return ""
}
