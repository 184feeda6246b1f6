package booking

import (
	"context"
	"time"

	"festivo/database"
	bookingRepo "festivo/database/repository/booking"
	catalogRepo "festivo/database/repository/catalog"
	"festivo/models"
	"festivo/services/notification"
)

// CreateInput carries a booking request after the HTTP layer has bound it.
type CreateInput struct {
	CustomerID   string
	ServiceType  models.ServiceType
	ServiceID    string
	BookingDate  time.Time
	EventStart   time.Time
	EventEnd     time.Time
	Location     string
	TotalAmount  float64
	OtherDetails map[string]any
	// Status/PaymentStatus overrides for vendor-recorded offline bookings;
	// empty means the pending defaults.
	Status        string
	PaymentStatus string
}

// BookingService places and manages bookings. CreateBooking runs the conflict
// check and the insert inside one transaction under a per-service advisory
// lock, so two concurrent overlapping requests cannot both succeed.
type BookingService interface {
	CreateBooking(ctx context.Context, in CreateInput) (*models.Booking, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	ListForCustomer(ctx context.Context, customerID string) ([]models.Booking, error)
	ListForVendor(ctx context.Context, vendorID string) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, bookingID, actorID, actorRole, status string) (*models.Booking, error)
	RecordPayment(ctx context.Context, bookingID, customerID, paymentStatus string, details models.PaymentDetails) (*models.Booking, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Catalog  *catalogRepo.Registry
	Bookings bookingRepo.BookingRepository
	Locks    bookingRepo.LockRepository
	Txn      database.TxnRunner
	Notifier notification.NotificationService
}
