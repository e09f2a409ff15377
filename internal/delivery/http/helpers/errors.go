package helpers

import (
	"errors"
	"net/http"

	"agoraun/internal/domain"
)

// WriteDomainError maps a service error to its HTTP status and error code and
// writes the JSON error envelope. Returns false if the error is not a typed
// domain error, in which case the caller should log it and respond 500.
func WriteDomainError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrUserNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, "user not found")
	case errors.Is(err, domain.ErrMembershipNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		WriteJSONError(w, http.StatusForbidden, ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrBusy):
		WriteJSONError(w, http.StatusServiceUnavailable, ErrCodeBusy, err.Error())
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrDuplicateRegistration),
		errors.Is(err, domain.ErrCapacityExceeded),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrDuplicateMembership),
		errors.Is(err, domain.ErrGroupLimitReached),
		errors.Is(err, domain.ErrDuplicateGroupName),
		errors.Is(err, domain.ErrDuplicateEmail):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	default:
		return false
	}
	return true
}
