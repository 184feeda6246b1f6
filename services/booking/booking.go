package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"festivo/models"
	"festivo/utils"
)

// CreateBooking resolves the service, then re-runs the conflict query and
// inserts the booking inside one transaction. The per-service advisory lock
// serializes concurrent creators for the same service so both cannot pass the
// check before either writes. Notifications go out only after commit and
// never fail the booking.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, in CreateInput) (*models.Booking, error) {
	logger := utils.GetLogger()

	if _, err := models.ParseServiceType(string(in.ServiceType)); err != nil {
		return nil, ErrInvalidServiceType
	}
	if !in.EventEnd.After(in.EventStart) {
		return nil, ErrInvalidInterval
	}

	repo, err := s.Catalog.For(in.ServiceType)
	if err != nil {
		return nil, ErrInvalidServiceType
	}
	svc, err := repo.GetByID(ctx, in.ServiceID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolve service: %w", err)
	}

	if err := s.Locks.Acquire(ctx, in.ServiceType, in.ServiceID); err != nil {
		return nil, ErrBusy
	}
	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Locks.Release(releaseCtx, in.ServiceType, in.ServiceID); err != nil {
			logger.Warn("failed to release booking lock",
				zap.String("serviceId", in.ServiceID), zap.Error(err))
		}
	}()

	status := in.Status
	if status == "" {
		status = models.BookingStatusPending
	}
	paymentStatus := in.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = models.PaymentStatusPending
	}

	b := &models.Booking{
		CustomerID:    in.CustomerID,
		ServiceType:   in.ServiceType,
		ServiceID:     in.ServiceID,
		VendorID:      svc.VendorID,
		BookingDate:   in.BookingDate,
		EventStart:    in.EventStart,
		EventEnd:      in.EventEnd,
		Location:      in.Location,
		TotalAmount:   in.TotalAmount,
		Status:        status,
		PaymentStatus: paymentStatus,
		OtherDetails:  in.OtherDetails,
	}

	err = s.Txn.WithTransaction(ctx, func(txCtx context.Context) error {
		conflicting, err := s.Bookings.FindConflicting(txCtx, in.ServiceType, in.ServiceID, in.EventStart, in.EventEnd)
		if err != nil {
			return fmt.Errorf("conflict query: %w", err)
		}
		if len(conflicting) > 0 {
			conflicts := make([]models.Interval, 0, len(conflicting))
			for _, c := range conflicting {
				conflicts = append(conflicts, models.Interval{Start: c.EventStart, End: c.EventEnd})
			}
			return &SlotUnavailableError{Conflicts: conflicts}
		}
		return s.Bookings.Create(txCtx, b)
	})
	if err != nil {
		return nil, err
	}

	s.notifyBooked(ctx, b, svc.Title)
	return b, nil
}

// notifyBooked tells both parties about the new booking. Best-effort.
func (s *DefaultBookingService) notifyBooked(ctx context.Context, b *models.Booking, serviceTitle string) {
	if s.Notifier == nil {
		return
	}
	logger := utils.GetLogger()
	meta := map[string]string{"bookingId": b.ID}

	if _, err := s.Notifier.Send(ctx, b.VendorID, models.RecipientVendor,
		"New booking received",
		fmt.Sprintf("%s was booked for %s.", serviceTitle, b.EventStart.Format(time.RFC1123)),
		models.NotificationTypeBooking, meta); err != nil {
		logger.Warn("vendor booking notification failed", zap.Error(err))
	}

	if _, err := s.Notifier.Send(ctx, b.CustomerID, models.RecipientCustomer,
		"Booking placed",
		fmt.Sprintf("Your booking for %s is %s.", serviceTitle, b.Status),
		models.NotificationTypeBooking, meta); err != nil {
		logger.Warn("customer booking notification failed", zap.Error(err))
	}
}

func (s *DefaultBookingService) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *DefaultBookingService) ListForCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	return s.Bookings.ListByCustomer(ctx, customerID)
}

func (s *DefaultBookingService) ListForVendor(ctx context.Context, vendorID string) ([]models.Booking, error) {
	return s.Bookings.ListByVendor(ctx, vendorID)
}

// UpdateStatus applies a customer- or vendor-driven lifecycle transition.
// Terminal states cannot transition further.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, bookingID, actorID, actorRole, status string) (*models.Booking, error) {
	if !models.ValidBookingStatus(status) {
		return nil, ErrInvalidStatus
	}

	b, err := s.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	switch actorRole {
	case models.RecipientCustomer:
		if b.CustomerID != actorID {
			return nil, ErrNotAllowed
		}
	case models.RecipientVendor:
		if b.VendorID != actorID {
			return nil, ErrNotAllowed
		}
	default:
		return nil, ErrNotAllowed
	}

	if b.Status == models.BookingStatusCancelled || b.Status == models.BookingStatusCompleted {
		return nil, fmt.Errorf("%w: booking already %s", ErrInvalidStatus, b.Status)
	}

	if err := s.Bookings.UpdateStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}
	b.Status = status
	return b, nil
}

// RecordPayment stores the outcome reported by the payment collaborator.
func (s *DefaultBookingService) RecordPayment(ctx context.Context, bookingID, customerID, paymentStatus string, details models.PaymentDetails) (*models.Booking, error) {
	if paymentStatus != models.PaymentStatusPaid && paymentStatus != models.PaymentStatusFailed {
		return nil, fmt.Errorf("%w: payment status %q", ErrInvalidStatus, paymentStatus)
	}

	b, err := s.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != customerID {
		return nil, ErrNotAllowed
	}

	if paymentStatus == models.PaymentStatusPaid && details.PaidAt == nil {
		now := time.Now()
		details.PaidAt = &now
	}
	if err := s.Bookings.UpdatePayment(ctx, bookingID, paymentStatus, details); err != nil {
		return nil, err
	}
	b.PaymentStatus = paymentStatus
	b.PaymentDetails = details
	return b, nil
}
