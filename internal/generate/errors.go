// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest is matched by every ValidationError.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrService is matched by every ServiceError.
	ErrService = errors.New("generative service failure")

	// ErrEmptyMessage is returned by Converse for a blank chat message.
	ErrEmptyMessage = errors.New("message is empty")
)

// ValidationError reports a request rejected before any service call.
// Err is usually a validation.Errors map keyed by field name.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %v", e.Err)
}

func (e *ValidationError) Unwrap() []error { return []error{ErrInvalidRequest, e.Err} }

// ErrorKind classifies a service failure.
type ErrorKind int

const (
	// KindNetwork means no response was received (DNS, connect, timeout).
	KindNetwork ErrorKind = iota + 1
	// KindStatus means the service answered with a non-success status.
	KindStatus
	// KindMalformed means the response could not be used as a document.
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindStatus:
		return "status"
	case KindMalformed:
		return "malformed response"
	}
	return "unknown"
}

// ServiceError reports a failed generation or edit call. StatusCode is set
// for KindStatus.
type ServiceError struct {
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("generative service: %s %d: %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("generative service: %s: %v", e.Kind, e.Err)
}

func (e *ServiceError) Unwrap() []error { return []error{ErrService, e.Err} }

func malformed(format string, args ...any) *ServiceError {
	return &ServiceError{Kind: KindMalformed, Err: fmt.Errorf(format, args...)}
}
