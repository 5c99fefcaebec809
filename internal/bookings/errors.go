package bookings

import "errors"

var (
	// ErrNotFound is returned when a patient or confirmation record is
	// absent. A code lookup translates this into a user-facing "not found",
	// never a system error.
	ErrNotFound = errors.New("bookings: record not found")

	// ErrIncompleteDraft is returned when the booking transaction is
	// invoked with required fields missing.
	ErrIncompleteDraft = errors.New("bookings: draft is missing required fields")
)
