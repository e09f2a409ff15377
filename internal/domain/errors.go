package domain

import "errors"

// Sentinel errors shared across services. Business-rule violations are typed
// so the delivery layer can map them to HTTP statuses.
var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput is returned when a field-level validation fails
	// (bad email, non-positive capacity, end time before start time).
	ErrInvalidInput = errors.New("invalid input")

	// ErrBusy is returned when the event row lock could not be acquired in
	// time. Callers should retry with backoff.
	ErrBusy = errors.New("resource busy, retry later")

	ErrDuplicateRegistration = errors.New("user already registered for this event")
	ErrCapacityExceeded      = errors.New("no seats available for this event")
	ErrInvalidTransition     = errors.New("invalid participation state transition")

	ErrDuplicateMembership = errors.New("user is already a member of the group")
	ErrMembershipNotFound  = errors.New("user is not a member of the group")
	ErrGroupLimitReached   = errors.New("user reached the maximum number of groups")

	ErrDuplicateGroupName = errors.New("group name already in use")
)
