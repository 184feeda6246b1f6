package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	catalogRepo "festivo/database/repository/catalog"
	"festivo/models"
)

var (
	// ErrServiceNotFound is returned when the listing does not exist.
	ErrServiceNotFound = errors.New("service not found")
	// ErrInvalidServiceType rejects unknown service type tags.
	ErrInvalidServiceType = errors.New("invalid service type")
	// ErrNotOwner is returned when a vendor mutates a listing it does not own.
	ErrNotOwner = errors.New("service belongs to another vendor")
	// ErrMissingFields rejects listings without the required fields.
	ErrMissingFields = errors.New("title and pricePerUnit are required")
)

// CatalogService manages vendor service listings across all four variants.
type CatalogService interface {
	Create(ctx context.Context, t models.ServiceType, vendorID string, svc *models.Service) (*models.Service, error)
	Get(ctx context.Context, t models.ServiceType, id string) (*models.Service, error)
	List(ctx context.Context, t models.ServiceType) ([]models.Service, error)
	ListForVendor(ctx context.Context, vendorID string) (map[models.ServiceType][]models.Service, error)
	Update(ctx context.Context, t models.ServiceType, id, vendorID string, svc *models.Service) (*models.Service, error)
	Delete(ctx context.Context, t models.ServiceType, id, vendorID string) error
}

// DefaultCatalogService implements CatalogService on the dispatch registry.
type DefaultCatalogService struct {
	Registry *catalogRepo.Registry
}

func (s *DefaultCatalogService) repoFor(t models.ServiceType) (catalogRepo.ServiceRepository, error) {
	if _, err := models.ParseServiceType(string(t)); err != nil {
		return nil, ErrInvalidServiceType
	}
	repo, err := s.Registry.For(t)
	if err != nil {
		return nil, ErrInvalidServiceType
	}
	return repo, nil
}

func (s *DefaultCatalogService) Create(ctx context.Context, t models.ServiceType, vendorID string, svc *models.Service) (*models.Service, error) {
	repo, err := s.repoFor(t)
	if err != nil {
		return nil, err
	}
	if svc.Title == "" || svc.PricePerUnit <= 0 {
		return nil, ErrMissingFields
	}

	svc.VendorID = vendorID
	if err := repo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("create %s listing: %w", t, err)
	}
	return svc, nil
}

func (s *DefaultCatalogService) Get(ctx context.Context, t models.ServiceType, id string) (*models.Service, error) {
	repo, err := s.repoFor(t)
	if err != nil {
		return nil, err
	}
	svc, err := repo.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *DefaultCatalogService) List(ctx context.Context, t models.ServiceType) ([]models.Service, error) {
	repo, err := s.repoFor(t)
	if err != nil {
		return nil, err
	}
	return repo.List(ctx)
}

func (s *DefaultCatalogService) ListForVendor(ctx context.Context, vendorID string) (map[models.ServiceType][]models.Service, error) {
	out := make(map[models.ServiceType][]models.Service, len(models.AllServiceTypes()))
	for _, t := range models.AllServiceTypes() {
		repo, err := s.Registry.For(t)
		if err != nil {
			return nil, err
		}
		services, err := repo.ListByVendor(ctx, vendorID)
		if err != nil {
			return nil, err
		}
		out[t] = services
	}
	return out, nil
}

func (s *DefaultCatalogService) Update(ctx context.Context, t models.ServiceType, id, vendorID string, svc *models.Service) (*models.Service, error) {
	repo, err := s.repoFor(t)
	if err != nil {
		return nil, err
	}

	existing, err := repo.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}
	if existing.VendorID != vendorID {
		return nil, ErrNotOwner
	}

	svc.ID = id
	if err := repo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return repo.GetByID(ctx, id)
}

func (s *DefaultCatalogService) Delete(ctx context.Context, t models.ServiceType, id, vendorID string) error {
	repo, err := s.repoFor(t)
	if err != nil {
		return err
	}

	existing, err := repo.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrServiceNotFound
	}
	if err != nil {
		return err
	}
	if existing.VendorID != vendorID {
		return ErrNotOwner
	}

	// Reviews referencing the deleted service become orphaned; the review
	// flow tolerates that and skips their aggregates.
	return repo.Delete(ctx, id)
}
