package bookingRepo

import (
	"context"
	"time"

	"festivo/database"
	"festivo/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository persists bookings and answers the overlap query the
// conflict checker is built on.
type BookingRepository interface {
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error)
	ListByVendor(ctx context.Context, vendorID string) ([]models.Booking, error)

	// FindConflicting returns every non-cancelled booking for the service
	// whose interval overlaps [start, end) under the three-clause rule.
	FindConflicting(ctx context.Context, serviceType models.ServiceType, serviceID string, start, end time.Time) ([]models.Booking, error)

	UpdateStatus(ctx context.Context, id, status string) error
	UpdatePayment(ctx context.Context, id, paymentStatus string, details models.PaymentDetails) error
	EnsureIndexes() error
}

// LockRepository hands out per-service advisory locks. Acquire fails with
// ErrLockHeld while another creator holds the lock; locks are TTL-expired so
// a crashed holder cannot wedge a service.
type LockRepository interface {
	Acquire(ctx context.Context, serviceType models.ServiceType, serviceID string) error
	Release(ctx context.Context, serviceType models.ServiceType, serviceID string) error
	EnsureIndexes() error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	return &mongoBookingRepo{coll: database.DB().Collection("bookings")}
}

type mongoLockRepo struct {
	coll *mongo.Collection
}

// NewMongoLockRepo constructs a new MongoDB LockRepository.
func NewMongoLockRepo() LockRepository {
	return &mongoLockRepo{coll: database.DB().Collection("booking_locks")}
}
