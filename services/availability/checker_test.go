package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"festivo/models"
)

// stubBookings answers FindConflicting from a fixed slice using the half-open
// overlap rule the repository documents.
type stubBookings struct {
	existing []models.Booking
	lastCall struct {
		serviceType models.ServiceType
		serviceID   string
		start, end  time.Time
	}
}

func (s *stubBookings) Create(ctx context.Context, b *models.Booking) error { return nil }
func (s *stubBookings) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return nil, nil
}
func (s *stubBookings) ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	return nil, nil
}
func (s *stubBookings) ListByVendor(ctx context.Context, vendorID string) ([]models.Booking, error) {
	return nil, nil
}

func (s *stubBookings) FindConflicting(ctx context.Context, serviceType models.ServiceType, serviceID string, start, end time.Time) ([]models.Booking, error) {
	s.lastCall.serviceType = serviceType
	s.lastCall.serviceID = serviceID
	s.lastCall.start = start
	s.lastCall.end = end

	var out []models.Booking
	for _, b := range s.existing {
		if b.ServiceType != serviceType || b.ServiceID != serviceID || b.Status == models.BookingStatusCancelled {
			continue
		}
		if b.EventStart.Before(end) && start.Before(b.EventEnd) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *stubBookings) UpdateStatus(ctx context.Context, id, status string) error { return nil }
func (s *stubBookings) UpdatePayment(ctx context.Context, id, paymentStatus string, details models.PaymentDetails) error {
	return nil
}
func (s *stubBookings) EnsureIndexes() error { return nil }

func at(hour int) time.Time {
	return time.Date(2026, 9, 12, hour, 0, 0, 0, time.UTC)
}

func booked(startHour, endHour int, status string) models.Booking {
	return models.Booking{
		ServiceType: models.ServiceTypeHall,
		ServiceID:   "hall-1",
		EventStart:  at(startHour),
		EventEnd:    at(endHour),
		Status:      status,
	}
}

func TestCheckAvailability(t *testing.T) {
	cases := []struct {
		name      string
		existing  []models.Booking
		start     int
		end       int
		available bool
	}{
		{
			name:      "empty calendar",
			start:     10,
			end:       14,
			available: true,
		},
		{
			name:      "partial overlap",
			existing:  []models.Booking{booked(12, 16, models.BookingStatusConfirmed)},
			start:     10,
			end:       14,
			available: false,
		},
		{
			name:      "request contains existing",
			existing:  []models.Booking{booked(12, 13, models.BookingStatusPending)},
			start:     10,
			end:       14,
			available: false,
		},
		{
			name:      "existing contains request",
			existing:  []models.Booking{booked(8, 20, models.BookingStatusConfirmed)},
			start:     10,
			end:       14,
			available: false,
		},
		{
			name:      "touching at existing end",
			existing:  []models.Booking{booked(8, 10, models.BookingStatusConfirmed)},
			start:     10,
			end:       14,
			available: true,
		},
		{
			name:      "touching at existing start",
			existing:  []models.Booking{booked(14, 18, models.BookingStatusConfirmed)},
			start:     10,
			end:       14,
			available: true,
		},
		{
			name:      "cancelled bookings do not block",
			existing:  []models.Booking{booked(10, 14, models.BookingStatusCancelled)},
			start:     10,
			end:       14,
			available: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			checker := NewDefaultChecker(&stubBookings{existing: tc.existing})
			result, err := checker.CheckAvailability(context.Background(), models.ServiceTypeHall, "hall-1", at(tc.start), at(tc.end))
			require.NoError(t, err)
			assert.Equal(t, tc.available, result.Available)
			if tc.available {
				assert.Empty(t, result.Conflicts)
			} else {
				assert.NotEmpty(t, result.Conflicts)
			}
		})
	}
}

func TestCheckAvailability_ReportsConflictIntervals(t *testing.T) {
	stub := &stubBookings{existing: []models.Booking{booked(12, 16, models.BookingStatusConfirmed)}}
	checker := NewDefaultChecker(stub)

	result, err := checker.CheckAvailability(context.Background(), models.ServiceTypeHall, "hall-1", at(10), at(14))
	require.NoError(t, err)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, at(12), result.Conflicts[0].Start)
	assert.Equal(t, at(16), result.Conflicts[0].End)

	assert.Equal(t, "hall-1", stub.lastCall.serviceID)
	assert.Equal(t, models.ServiceTypeHall, stub.lastCall.serviceType)
}

func TestCheckAvailability_InvalidServiceType(t *testing.T) {
	checker := NewDefaultChecker(&stubBookings{})
	_, err := checker.CheckAvailability(context.Background(), "spaceship", "hall-1", at(10), at(14))
	assert.ErrorIs(t, err, ErrInvalidServiceType)
}
