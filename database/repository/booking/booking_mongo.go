package bookingRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"festivo/models"
)

func (r *mongoBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	b.CreatedAt = now
	b.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, b)
	return err
}

func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var b models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *mongoBookingRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"customer": customerID})
}

func (r *mongoBookingRepo) ListByVendor(ctx context.Context, vendorID string) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"vendor": vendorID})
}

func (r *mongoBookingRepo) list(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "eventStart", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindConflicting classifies an existing booking B as conflicting with the
// requested [start, end) when any of:
//  1. B covers the requested start: B.start <= start && B.end > start
//  2. B covers the requested end:   B.start < end && B.end >= end
//  3. B is contained:               B.start >= start && B.end <= end
//
// Intervals are half-open, so a booking ending exactly at `start` (or
// starting exactly at `end`) does not conflict and back-to-back bookings are
// allowed.
func (r *mongoBookingRepo) FindConflicting(ctx context.Context, serviceType models.ServiceType, serviceID string, start, end time.Time) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"service":     serviceID,
		"serviceType": serviceType,
		"status":      bson.M{"$ne": models.BookingStatusCancelled},
		"$or": bson.A{
			bson.M{
				"eventStart": bson.M{"$lte": start},
				"eventEnd":   bson.M{"$gt": start},
			},
			bson.M{
				"eventStart": bson.M{"$lt": end},
				"eventEnd":   bson.M{"$gte": end},
			},
			bson.M{
				"eventStart": bson.M{"$gte": start},
				"eventEnd":   bson.M{"$lte": end},
			},
		},
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *mongoBookingRepo) UpdateStatus(ctx context.Context, id, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoBookingRepo) UpdatePayment(ctx context.Context, id, paymentStatus string, details models.PaymentDetails) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"paymentStatus":  paymentStatus,
		"paymentDetails": details,
		"updatedAt":      time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
