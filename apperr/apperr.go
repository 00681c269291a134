package apperr

import (
	"errors"
	"fmt"
)

// Authorization denial reasons
const (
	ReasonNotOwner  = "not-owner"
	ReasonNotAdmin  = "not-admin"
	ReasonNotMember = "not-member"
)

// ValidationError reports a required field that is missing or malformed
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("%s is required", e.Field)
}

// Validation returns a missing-field error for the named field
func Validation(field string) error {
	return &ValidationError{Field: field}
}

// Validationf returns a malformed-field error for the named field
func Validationf(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports that a referenced entity is absent
type NotFoundError struct {
	Kind string
	ID   uint
}

func (e *NotFoundError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("%s not found", e.Kind)
	}
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// NotFound returns an absent-entity error for the given kind and id
func NotFound(kind string, id uint) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// AuthenticationError reports that no acting user could be resolved
type AuthenticationError struct{}

func (e *AuthenticationError) Error() string { return "unauthenticated" }

// Unauthenticated returns the no-resolvable-actor error
func Unauthenticated() error {
	return &AuthenticationError{}
}

// AuthorizationError reports that the actor resolved but lacks the right
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string {
	return "forbidden: " + e.Reason
}

// Forbidden returns an authorization denial with a distinguishable reason
func Forbidden(reason string) error {
	return &AuthorizationError{Reason: reason}
}

// ConflictError reports a duplicate unique constraint
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// Conflict returns a duplicate-unique-constraint error
func Conflict(format string, args ...interface{}) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// InternalError wraps an unexpected store failure. The underlying cause
// is kept for logging but never exposed to callers.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string { return "internal error" }

func (e *InternalError) Unwrap() error { return e.Err }

// Internal wraps err as an internal failure
func Internal(err error) error {
	if err == nil {
		return nil
	}
	return &InternalError{Err: err}
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsNotFound reports whether err is a NotFoundError
func IsNotFound(err error) bool {
	var v *NotFoundError
	return errors.As(err, &v)
}

// IsConflict reports whether err is a ConflictError
func IsConflict(err error) bool {
	var v *ConflictError
	return errors.As(err, &v)
}

// IsForbidden reports whether err is an AuthorizationError with the
// given reason
func IsForbidden(err error, reason string) bool {
	var v *AuthorizationError
	return errors.As(err, &v) && v.Reason == reason
}
