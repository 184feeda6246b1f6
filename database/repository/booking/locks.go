package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"festivo/models"
)

// ErrLockHeld signals that another booking attempt currently holds the
// service's advisory lock.
var ErrLockHeld = errors.New("service is locked by another booking attempt")

type lockDoc struct {
	ID        string    `bson:"_id"`
	CreatedAt time.Time `bson:"createdAt"`
}

func lockID(serviceType models.ServiceType, serviceID string) string {
	return string(serviceType) + ":" + serviceID
}

// Acquire inserts a lock document keyed by service; the unique _id turns a
// concurrent acquire into a duplicate-key error.
func (r *mongoLockRepo) Acquire(ctx context.Context, serviceType models.ServiceType, serviceID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, lockDoc{
		ID:        lockID(serviceType, serviceID),
		CreatedAt: time.Now(),
	})
	if mongo.IsDuplicateKeyError(err) {
		return ErrLockHeld
	}
	return err
}

func (r *mongoLockRepo) Release(ctx context.Context, serviceType models.ServiceType, serviceID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": lockID(serviceType, serviceID)})
	return err
}

// EnsureIndexes sets a TTL so a crashed lock holder cannot wedge a service.
func (r *mongoLockRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(30).SetName("lock_ttl"),
	}
	if _, err := r.coll.Indexes().CreateOne(ctx, model); err != nil {
		return fmt.Errorf("failed to create booking lock indexes: %w", err)
	}
	return nil
}
