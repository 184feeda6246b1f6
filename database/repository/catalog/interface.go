package catalogRepo

import (
	"context"
	"fmt"

	"festivo/database"
	"festivo/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ServiceRepository is the per-variant persistence surface. One mongo
// implementation is bound to each variant collection; the aggregator and the
// booking flow never care which variant they are talking to.
type ServiceRepository interface {
	Create(ctx context.Context, svc *models.Service) error
	GetByID(ctx context.Context, id string) (*models.Service, error)
	List(ctx context.Context) ([]models.Service, error)
	ListByVendor(ctx context.Context, vendorID string) ([]models.Service, error)
	Update(ctx context.Context, svc *models.Service) error
	Delete(ctx context.Context, id string) error

	// UpdateAggregates writes (rating, count) only if the stored count still
	// equals expectedCount. ErrStaleAggregate signals a concurrent review
	// operation won the race; callers retry the whole transaction.
	UpdateAggregates(ctx context.Context, id string, rating float64, count, expectedCount int) error

	EnsureIndexes() error
}

// ErrStaleAggregate reports a lost compare-and-swap on (rating, numberOfReviews).
var ErrStaleAggregate = fmt.Errorf("service aggregate changed concurrently")

// Registry maps each ServiceType to its repository. The switch in
// models.ParseServiceType plus AllServiceTypes keep the table exhaustive at
// compile time; there is no dynamic string lookup.
type Registry struct {
	repos map[models.ServiceType]ServiceRepository
}

// NewMongoRegistry binds one mongo repository per variant collection.
func NewMongoRegistry() *Registry {
	db := database.DB()
	repos := make(map[models.ServiceType]ServiceRepository, len(models.AllServiceTypes()))
	for _, t := range models.AllServiceTypes() {
		repos[t] = newMongoServiceRepo(db.Collection(t.Collection()))
	}
	return &Registry{repos: repos}
}

// NewRegistry assembles a registry from explicit repositories (used by tests).
func NewRegistry(repos map[models.ServiceType]ServiceRepository) *Registry {
	return &Registry{repos: repos}
}

// For resolves the repository for a service type.
func (r *Registry) For(t models.ServiceType) (ServiceRepository, error) {
	repo, ok := r.repos[t]
	if !ok {
		return nil, fmt.Errorf("no repository for service type %q", t)
	}
	return repo, nil
}

// EnsureIndexes creates indexes on every variant collection.
func (r *Registry) EnsureIndexes() error {
	for t, repo := range r.repos {
		if err := repo.EnsureIndexes(); err != nil {
			return fmt.Errorf("ensure indexes for %s: %w", t, err)
		}
	}
	return nil
}

type mongoServiceRepo struct {
	coll *mongo.Collection
}

func newMongoServiceRepo(coll *mongo.Collection) ServiceRepository {
	return &mongoServiceRepo{coll: coll}
}
