package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the bookings collection.
func (r *mongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Primary overlap-query pattern: equality on service+type+status,
		// range on the interval fields.
		{
			Keys: bson.D{
				{Key: "service", Value: 1},
				{Key: "serviceType", Value: 1},
				{Key: "status", Value: 1},
				{Key: "eventStart", Value: 1},
				{Key: "eventEnd", Value: 1},
			},
			Options: options.Index().SetName("service_status_interval_idx"),
		},
		{
			Keys:    bson.D{{Key: "customer", Value: 1}},
			Options: options.Index().SetName("customer_idx"),
		},
		{
			Keys:    bson.D{{Key: "vendor", Value: 1}},
			Options: options.Index().SetName("vendor_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
