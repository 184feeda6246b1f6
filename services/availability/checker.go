package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "festivo/database/repository/booking"
	"festivo/models"
)

// ErrInvalidServiceType rejects unknown service type tags before any store
// access.
var ErrInvalidServiceType = errors.New("invalid service type")

// Result is the outcome of an availability check. Conflicts carries every
// colliding interval so a client can present alternatives.
type Result struct {
	Available bool              `json:"available"`
	Conflicts []models.Interval `json:"conflicts,omitempty"`
}

// Checker decides whether a requested interval may be booked against a
// service without overlapping an existing active booking. The check is
// advisory: it reserves nothing. Booking creation re-runs the same query
// inside its transaction.
type Checker interface {
	CheckAvailability(ctx context.Context, serviceType models.ServiceType, serviceID string, start, end time.Time) (*Result, error)
}

// DefaultChecker implements Checker against the booking repository.
type DefaultChecker struct {
	Bookings bookingRepo.BookingRepository
}

func NewDefaultChecker(bookings bookingRepo.BookingRepository) *DefaultChecker {
	return &DefaultChecker{Bookings: bookings}
}

// CheckAvailability expects start < end; callers validate the interval before
// calling. The overlap classification itself lives in the repository query so
// that the transactional booking path and this advisory path share it.
func (c *DefaultChecker) CheckAvailability(ctx context.Context, serviceType models.ServiceType, serviceID string, start, end time.Time) (*Result, error) {
	if _, err := models.ParseServiceType(string(serviceType)); err != nil {
		return nil, ErrInvalidServiceType
	}

	conflicting, err := c.Bookings.FindConflicting(ctx, serviceType, serviceID, start, end)
	if err != nil {
		return nil, fmt.Errorf("availability query failed: %w", err)
	}

	if len(conflicting) == 0 {
		return &Result{Available: true}, nil
	}

	conflicts := make([]models.Interval, 0, len(conflicting))
	for _, b := range conflicting {
		conflicts = append(conflicts, models.Interval{Start: b.EventStart, End: b.EventEnd})
	}
	return &Result{Available: false, Conflicts: conflicts}, nil
}
