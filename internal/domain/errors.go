package domain

import "errors"

// Error categories. Concrete errors below wrap exactly one of them, so callers
// can match either the specific failure or its class with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrCapacityExceeded   = errors.New("capacity exceeded")
	ErrConflict           = errors.New("conflict")
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrValidation         = errors.New("validation error")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

var (
	ErrEventNotFound        = newError(ErrNotFound, "event_not_found", "event not found")
	ErrRegistrationNotFound = newError(ErrNotFound, "registration_not_found", "registration not found")
)

var (
	ErrEventFull = newError(ErrCapacityExceeded, "event_full", "event is full")
)

var (
	ErrAlreadyRegistered       = newError(ErrConflict, "already_registered", "user is already registered for this event")
	ErrNotRegistered           = newError(ErrConflict, "not_registered", "user is not registered for this event")
	ErrCapacityBelowRegistered = newError(ErrConflict, "capacity_below_registered", "capacity cannot be lower than the number of registered users")
	ErrEventHasRegistrations   = newError(ErrConflict, "event_has_registrations", "event still has active registrations")
	ErrRegistrationClosed      = newError(ErrConflict, "registration_closed", "registration is closed for past events")
	ErrEventNotStarted         = newError(ErrConflict, "event_not_started", "event has not started yet")
)

// Error is a concrete failure tagged with its category and a stable code for
// API clients.
type Error struct {
	kind error
	code string
	msg  string
}

func newError(kind error, code, msg string) *Error {
	return &Error{kind: kind, code: code, msg: msg}
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

func (e *Error) Code() string { return e.code }

// Code returns the API code of the first domain error in err's chain.
func Code(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.code
	}

	switch {
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, ErrStorageUnavailable):
		return "storage_unavailable"
	default:
		return "internal_error"
	}
}

// StorageError marks err as a storage failure while keeping the cause in the chain.
func StorageError(err error) error {
	if err == nil {
		return nil
	}
	return errors.Join(ErrStorageUnavailable, err)
}
