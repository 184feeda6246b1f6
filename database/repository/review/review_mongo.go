package reviewRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"festivo/models"
)

func (r *mongoReviewRepo) Create(ctx context.Context, rv *models.Review) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	if rv.ID == "" {
		rv.ID = uuid.New().String()
	}
	rv.CreatedAt = now
	rv.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, rv)
	return err
}

func (r *mongoReviewRepo) GetByID(ctx context.Context, id string) (*models.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rv models.Review
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&rv); err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *mongoReviewRepo) ListByService(ctx context.Context, serviceType models.ServiceType, serviceID string) ([]models.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"serviceId": serviceID, "serviceType": serviceType}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// UpdateContent mutates rating and comment only; link fields stay immutable.
func (r *mongoReviewRepo) UpdateContent(ctx context.Context, id string, rating int, comment string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"rating":    rating,
		"comment":   comment,
		"updatedAt": time.Now(),
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

func (r *mongoReviewRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// EnsureIndexes creates the review collection indexes.
func (r *mongoReviewRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "serviceId", Value: 1}, {Key: "serviceType", Value: 1}},
			Options: options.Index().SetName("service_idx"),
		},
		{
			Keys:    bson.D{{Key: "vendorId", Value: 1}},
			Options: options.Index().SetName("vendor_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create review indexes: %w", err)
	}
	return nil
}
