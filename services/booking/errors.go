package booking

import (
	"errors"
	"fmt"

	"festivo/models"
)

var (
	// ErrServiceNotFound is returned when the booked service does not exist.
	ErrServiceNotFound = errors.New("service not found")
	// ErrBookingNotFound is returned when the referenced booking is absent.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrInvalidServiceType rejects unknown service type tags.
	ErrInvalidServiceType = errors.New("invalid service type")
	// ErrInvalidInterval rejects requests where eventEnd is not after
	// eventStart.
	ErrInvalidInterval = errors.New("eventEnd must be after eventStart")
	// ErrInvalidStatus rejects unknown lifecycle states.
	ErrInvalidStatus = errors.New("invalid booking status")
	// ErrNotAllowed is returned on an ownership mismatch between the acting
	// account and the booking.
	ErrNotAllowed = errors.New("not allowed to modify this booking")
	// ErrBusy is returned when the per-service lock could not be acquired;
	// callers should retry shortly.
	ErrBusy = errors.New("service is busy with another booking, try again")
)

// SlotUnavailableError reports a booking conflict together with every
// colliding interval so the client can offer alternatives.
type SlotUnavailableError struct {
	Conflicts []models.Interval
}

func (e *SlotUnavailableError) Error() string {
	return fmt.Sprintf("time slot is already booked (%d conflicting bookings)", len(e.Conflicts))
}
