package reviewRepo

import (
	"context"

	"festivo/database"
	"festivo/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ReviewRepository persists reviews. Link fields (serviceId, serviceType,
// vendorId) are written once at creation and never updated.
type ReviewRepository interface {
	Create(ctx context.Context, rv *models.Review) error
	GetByID(ctx context.Context, id string) (*models.Review, error)
	ListByService(ctx context.Context, serviceType models.ServiceType, serviceID string) ([]models.Review, error)
	UpdateContent(ctx context.Context, id string, rating int, comment string) error
	Delete(ctx context.Context, id string) error
	EnsureIndexes() error
}

type mongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo constructs a new MongoDB ReviewRepository.
func NewMongoReviewRepo() ReviewRepository {
	return &mongoReviewRepo{coll: database.DB().Collection("reviews")}
}
