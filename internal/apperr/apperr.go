// Package apperr defines the error taxonomy shared by the store and the HTTP
// layer: validation failures carry every problem found in a request, missing
// items and lost conditional writes are both reported as not-found, and
// unexpected store failures surface as opaque internal errors tagged with a
// correlation id for out-of-band diagnosis.
package apperr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound covers both genuinely missing items and failed
// existence/ownership conditions on writes. The two cases are deliberately
// indistinguishable so the existence of another user's resource never leaks.
var ErrNotFound = errors.New("not found")

// ErrUnauthorized is produced by the credential resolver, never by the store.
var ErrUnauthorized = errors.New("unauthorized")

// ValidationError aggregates every structural problem found in a request.
// A request with three bad labels reports three messages, not one.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// NewValidation creates a ValidationError from one or more messages.
func NewValidation(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

// IsValidation reports whether err is a ValidationError and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// InternalError wraps an unexpected infrastructure failure. The cause is
// logged server-side under CorrelationID; clients only ever see the id.
type InternalError struct {
	CorrelationID string
	cause         error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error [%s]: %v", e.CorrelationID, e.cause)
}

func (e *InternalError) Unwrap() error { return e.cause }

// Internal wraps cause with a fresh correlation id. If cause is already an
// InternalError it is returned as-is so the id assigned at the failure site
// survives rewrapping on the way up.
func Internal(cause error) *InternalError {
	var ie *InternalError
	if errors.As(cause, &ie) {
		return ie
	}
	return &InternalError{
		CorrelationID: uuid.NewString(),
		cause:         cause,
	}
}

// IsInternal reports whether err is an InternalError and returns it.
func IsInternal(err error) (*InternalError, bool) {
	var ie *InternalError
	ok := errors.As(err, &ie)
	return ie, ok
}
