package catalogRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"festivo/models"
)

func (r *mongoServiceRepo) Create(ctx context.Context, svc *models.Service) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	if svc.ID == "" {
		svc.ID = uuid.New().String()
	}
	if svc.Images == nil {
		svc.Images = []string{}
	}
	svc.Rating = 0
	svc.NumberOfReviews = 0
	svc.CreatedAt = now
	svc.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, svc)
	return err
}

func (r *mongoServiceRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var svc models.Service
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&svc); err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *mongoServiceRepo) List(ctx context.Context) ([]models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (r *mongoServiceRepo) ListByVendor(ctx context.Context, vendorID string) ([]models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"vendorId": vendorID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, err
	}
	return services, nil
}

// Update rewrites the listing fields. Rating and review count are owned by
// the aggregator and are never touched here.
func (r *mongoServiceRepo) Update(ctx context.Context, svc *models.Service) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"title":         svc.Title,
		"description":   svc.Description,
		"location":      svc.Location,
		"pricePerUnit":  svc.PricePerUnit,
		"images":        svc.Images,
		"capacity":      svc.Capacity,
		"hasParking":    svc.HasParking,
		"indoor":        svc.Indoor,
		"cuisineTypes":  svc.CuisineTypes,
		"perHeadCost":   svc.PerHeadCost,
		"includesDecor": svc.IncludesDecor,
		"brand":         svc.Brand,
		"model":         svc.Model,
		"seats":         svc.Seats,
		"year":          svc.Year,
		"theme":         svc.Theme,
		"availability":  svc.Availability,
		"updatedAt":     time.Now(),
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": svc.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoServiceRepo) Delete(ctx context.Context, id string) error {
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

func (r *mongoServiceRepo) UpdateAggregates(ctx context.Context, id string, rating float64, count, expectedCount int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "numberOfReviews": expectedCount}
	update := bson.M{"$set": bson.M{
		"rating":          rating,
		"numberOfReviews": count,
		"updatedAt":       time.Now(),
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrStaleAggregate
	}
	return nil
}
