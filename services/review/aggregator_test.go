package review

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"festivo/database"
	catalogRepo "festivo/database/repository/catalog"
	vendorRepo "festivo/database/repository/vendor"
	"festivo/models"
)

// memServiceRepo is an in-memory ServiceRepository honoring the
// compare-and-swap contract of UpdateAggregates.
type memServiceRepo struct {
	services map[string]*models.Service
	// failCAS makes the next n UpdateAggregates calls lose the CAS.
	failCAS int
	// failWith, when set, makes every UpdateAggregates call fail hard.
	failWith error
}

func newMemServiceRepo(services ...*models.Service) *memServiceRepo {
	r := &memServiceRepo{services: make(map[string]*models.Service)}
	for _, s := range services {
		copied := *s
		r.services[s.ID] = &copied
	}
	return r
}

func (r *memServiceRepo) Create(ctx context.Context, svc *models.Service) error {
	copied := *svc
	r.services[svc.ID] = &copied
	return nil
}

func (r *memServiceRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	svc, ok := r.services[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *svc
	return &copied, nil
}

func (r *memServiceRepo) List(ctx context.Context) ([]models.Service, error) { return nil, nil }
func (r *memServiceRepo) ListByVendor(ctx context.Context, vendorID string) ([]models.Service, error) {
	return nil, nil
}
func (r *memServiceRepo) Update(ctx context.Context, svc *models.Service) error { return nil }
func (r *memServiceRepo) Delete(ctx context.Context, id string) error {
	delete(r.services, id)
	return nil
}

func (r *memServiceRepo) UpdateAggregates(ctx context.Context, id string, rating float64, count, expectedCount int) error {
	if r.failWith != nil {
		return r.failWith
	}
	if r.failCAS > 0 {
		r.failCAS--
		return catalogRepo.ErrStaleAggregate
	}
	svc, ok := r.services[id]
	if !ok || svc.NumberOfReviews != expectedCount {
		return catalogRepo.ErrStaleAggregate
	}
	svc.Rating = rating
	svc.NumberOfReviews = count
	return nil
}

func (r *memServiceRepo) EnsureIndexes() error { return nil }

type memVendorRepo struct {
	vendors  map[string]*models.Vendor
	failWith error
}

func newMemVendorRepo(vendors ...*models.Vendor) *memVendorRepo {
	r := &memVendorRepo{vendors: make(map[string]*models.Vendor)}
	for _, v := range vendors {
		copied := *v
		r.vendors[v.ID] = &copied
	}
	return r
}

func (r *memVendorRepo) Create(ctx context.Context, v *models.Vendor) error { return nil }

func (r *memVendorRepo) GetByID(ctx context.Context, id string) (*models.Vendor, error) {
	v, ok := r.vendors[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *v
	return &copied, nil
}

func (r *memVendorRepo) GetByEmail(ctx context.Context, email string) (*models.Vendor, error) {
	return nil, mongo.ErrNoDocuments
}

func (r *memVendorRepo) UpdateAggregates(ctx context.Context, id string, rating float64, count, expectedCount int) error {
	if r.failWith != nil {
		return r.failWith
	}
	v, ok := r.vendors[id]
	if !ok || v.NumberOfReviews != expectedCount {
		return vendorRepo.ErrStaleAggregate
	}
	v.Rating = rating
	v.NumberOfReviews = count
	return nil
}

func (r *memVendorRepo) EnsureIndexes() error { return nil }

type memReviewRepo struct {
	reviews map[string]*models.Review
	nextID  int
}

func newMemReviewRepo(reviews ...*models.Review) *memReviewRepo {
	r := &memReviewRepo{reviews: make(map[string]*models.Review)}
	for _, rv := range reviews {
		copied := *rv
		r.reviews[rv.ID] = &copied
	}
	return r
}

func (r *memReviewRepo) Create(ctx context.Context, rv *models.Review) error {
	if rv.ID == "" {
		r.nextID++
		rv.ID = fmt.Sprintf("review-%d", r.nextID)
	}
	copied := *rv
	r.reviews[rv.ID] = &copied
	return nil
}

func (r *memReviewRepo) GetByID(ctx context.Context, id string) (*models.Review, error) {
	rv, ok := r.reviews[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *rv
	return &copied, nil
}

func (r *memReviewRepo) ListByService(ctx context.Context, serviceType models.ServiceType, serviceID string) ([]models.Review, error) {
	var out []models.Review
	for _, rv := range r.reviews {
		if rv.ServiceType == serviceType && rv.ServiceID == serviceID {
			out = append(out, *rv)
		}
	}
	return out, nil
}

func (r *memReviewRepo) UpdateContent(ctx context.Context, id string, rating int, comment string) error {
	rv, ok := r.reviews[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	rv.Rating = rating
	rv.Comment = comment
	return nil
}

func (r *memReviewRepo) Delete(ctx context.Context, id string) error {
	delete(r.reviews, id)
	return nil
}

func (r *memReviewRepo) EnsureIndexes() error { return nil }

// rollbackTxn mimics transaction semantics over the in-memory fakes: state is
// snapshotted before fn and restored when fn errors.
type rollbackTxn struct {
	services *memServiceRepo
	vendors  *memVendorRepo
	reviews  *memReviewRepo
}

func (t *rollbackTxn) WithTransaction(ctx context.Context, fn database.TxnFunc) error {
	svcSnap := make(map[string]models.Service, len(t.services.services))
	for id, s := range t.services.services {
		svcSnap[id] = *s
	}
	venSnap := make(map[string]models.Vendor, len(t.vendors.vendors))
	for id, v := range t.vendors.vendors {
		venSnap[id] = *v
	}
	revSnap := make(map[string]models.Review, len(t.reviews.reviews))
	for id, rv := range t.reviews.reviews {
		revSnap[id] = *rv
	}

	err := fn(ctx)
	if err != nil {
		t.services.services = make(map[string]*models.Service, len(svcSnap))
		for id, s := range svcSnap {
			copied := s
			t.services.services[id] = &copied
		}
		t.vendors.vendors = make(map[string]*models.Vendor, len(venSnap))
		for id, v := range venSnap {
			copied := v
			t.vendors.vendors[id] = &copied
		}
		t.reviews.reviews = make(map[string]*models.Review, len(revSnap))
		for id, rv := range revSnap {
			copied := rv
			t.reviews.reviews[id] = &copied
		}
	}
	return err
}

type aggregatorFixture struct {
	svc      *DefaultReviewService
	services *memServiceRepo
	vendors  *memVendorRepo
	reviews  *memReviewRepo
}

func newAggregatorFixture(services *memServiceRepo, vendors *memVendorRepo, reviews *memReviewRepo) *aggregatorFixture {
	return &aggregatorFixture{
		svc: &DefaultReviewService{
			Catalog: catalogRepo.NewRegistry(map[models.ServiceType]catalogRepo.ServiceRepository{
				models.ServiceTypeHall: services,
			}),
			Vendors: vendors,
			Reviews: reviews,
			Txn:     &rollbackTxn{services: services, vendors: vendors, reviews: reviews},
		},
		services: services,
		vendors:  vendors,
		reviews:  reviews,
	}
}

func freshHall() *models.Service {
	return &models.Service{ID: "hall-1", VendorID: "vendor-1", Title: "Grand Hall", PricePerUnit: 100}
}

func freshVendor() *models.Vendor {
	return &models.Vendor{ID: "vendor-1", BusinessName: "Grand Events"}
}

func TestCreateReview_FirstReviewSetsMean(t *testing.T) {
	f := newAggregatorFixture(newMemServiceRepo(freshHall()), newMemVendorRepo(freshVendor()), newMemReviewRepo())

	rv, svc, err := f.svc.CreateReview(context.Background(), CreateInput{
		ServiceType: models.ServiceTypeHall,
		ServiceID:   "hall-1",
		UserID:      "user-1",
		Rating:      4,
		Comment:     "Lovely venue",
	})
	require.NoError(t, err)

	assert.Equal(t, "vendor-1", rv.VendorID, "vendor must be denormalized from the service")
	assert.InDelta(t, 4.0, svc.Rating, 1e-9)
	assert.Equal(t, 1, svc.NumberOfReviews)

	stored, err := f.services.GetByID(context.Background(), "hall-1")
	require.NoError(t, err)
	assert.InDelta(t, 4.0, stored.Rating, 1e-9)
	assert.Equal(t, 1, stored.NumberOfReviews)

	vendor, err := f.vendors.GetByID(context.Background(), "vendor-1")
	require.NoError(t, err)
	assert.InDelta(t, 4.0, vendor.Rating, 1e-9)
	assert.Equal(t, 1, vendor.NumberOfReviews)
}

func TestCreateReview_SecondReviewExtendsMean(t *testing.T) {
	f := newAggregatorFixture(newMemServiceRepo(freshHall()), newMemVendorRepo(freshVendor()), newMemReviewRepo())
	ctx := context.Background()

	_, _, err := f.svc.CreateReview(ctx, CreateInput{ServiceType: models.ServiceTypeHall, ServiceID: "hall-1", UserID: "user-1", Rating: 4, Comment: "good"})
	require.NoError(t, err)
	_, svc, err := f.svc.CreateReview(ctx, CreateInput{ServiceType: models.ServiceTypeHall, ServiceID: "hall-1", UserID: "user-2", Rating: 2, Comment: "meh"})
	require.NoError(t, err)

	assert.InDelta(t, 3.0, svc.Rating, 1e-9)
	assert.Equal(t, 2, svc.NumberOfReviews)
}

func TestCreateReview_Validation(t *testing.T) {
	f := newAggregatorFixture(newMemServiceRepo(freshHall()), newMemVendorRepo(freshVendor()), newMemReviewRepo())
	ctx := context.Background()

	_, _, err := f.svc.CreateReview(ctx, CreateInput{ServiceType: "spaceship", ServiceID: "hall-1", Rating: 4, Comment: "x"})
	assert.ErrorIs(t, err, ErrInvalidServiceType)

	_, _, err = f.svc.CreateReview(ctx, CreateInput{ServiceType: models.ServiceTypeHall, ServiceID: "hall-1", Rating: 6, Comment: "x"})
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, _, err = f.svc.CreateReview(ctx, CreateInput{ServiceType: models.ServiceTypeHall, ServiceID: "hall-1", Rating: 4, Comment: "   "})
	assert.ErrorIs(t, err, ErrEmptyComment)

	_, _, err = f.svc.CreateReview(ctx, CreateInput{ServiceType: models.ServiceTypeHall, ServiceID: "nope", Rating: 4, Comment: "x"})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestCreateReview_RetriesLostCAS(t *testing.T) {
	services := newMemServiceRepo(freshHall())
	services.failCAS = 1
	f := newAggregatorFixture(services, newMemVendorRepo(freshVendor()), newMemReviewRepo())

	_, svc, err := f.svc.CreateReview(context.Background(), CreateInput{
		ServiceType: models.ServiceTypeHall, ServiceID: "hall-1", UserID: "user-1", Rating: 5, Comment: "great",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, svc.NumberOfReviews)
}

func TestCreateReview_ExhaustedRetriesSurfaceConflict(t *testing.T) {
	services := newMemServiceRepo(freshHall())
	services.failCAS = maxAggregateRetries
	f := newAggregatorFixture(services, newMemVendorRepo(freshVendor()), newMemReviewRepo())

	_, _, err := f.svc.CreateReview(context.Background(), CreateInput{
		ServiceType: models.ServiceTypeHall, ServiceID: "hall-1", UserID: "user-1", Rating: 5, Comment: "great",
	})
	assert.ErrorIs(t, err, catalogRepo.ErrStaleAggregate)
	assert.Empty(t, f.reviews.reviews, "no review may land when the aggregate write never succeeded")
}

func TestCreateReview_VendorWriteFailureRollsBackEverything(t *testing.T) {
	services := newMemServiceRepo(freshHall())
	vendors := newMemVendorRepo(freshVendor())
	vendors.failWith = errors.New("connection reset")
	f := newAggregatorFixture(services, vendors, newMemReviewRepo())

	_, _, err := f.svc.CreateReview(context.Background(), CreateInput{
		ServiceType: models.ServiceTypeHall, ServiceID: "hall-1", UserID: "user-1", Rating: 5, Comment: "great",
	})
	require.Error(t, err)

	stored, err := f.services.GetByID(context.Background(), "hall-1")
	require.NoError(t, err)
	assert.Equal(t, 0, stored.NumberOfReviews, "service aggregate must roll back with the failed transaction")
	assert.InDelta(t, 0.0, stored.Rating, 1e-9)
	assert.Empty(t, f.reviews.reviews)
}

func seededFixture(t *testing.T) *aggregatorFixture {
	t.Helper()
	f := newAggregatorFixture(newMemServiceRepo(freshHall()), newMemVendorRepo(freshVendor()), newMemReviewRepo())
	ctx := context.Background()
	_, _, err := f.svc.CreateReview(ctx, CreateInput{ServiceType: models.ServiceTypeHall, ServiceID: "hall-1", UserID: "user-1", Rating: 4, Comment: "good"})
	require.NoError(t, err)
	_, _, err = f.svc.CreateReview(ctx, CreateInput{ServiceType: models.ServiceTypeHall, ServiceID: "hall-1", UserID: "user-2", Rating: 2, Comment: "meh"})
	require.NoError(t, err)
	return f
}

func reviewIDByUser(t *testing.T, f *aggregatorFixture, userID string) string {
	t.Helper()
	for id, rv := range f.reviews.reviews {
		if rv.UserID == userID {
			return id
		}
	}
	t.Fatalf("no review for user %s", userID)
	return ""
}

func TestUpdateReview_SwapsRatingKeepsCount(t *testing.T) {
	f := seededFixture(t)
	id := reviewIDByUser(t, f, "user-2")

	rv, err := f.svc.UpdateReview(context.Background(), id, "user-2", 5, "changed my mind")
	require.NoError(t, err)
	assert.Equal(t, 5, rv.Rating)
	assert.Equal(t, "changed my mind", rv.Comment)

	stored, err := f.services.GetByID(context.Background(), "hall-1")
	require.NoError(t, err)
	// (4 + 2) -> (4 + 5), count stays 2.
	assert.InDelta(t, 4.5, stored.Rating, 1e-9)
	assert.Equal(t, 2, stored.NumberOfReviews)

	vendor, err := f.vendors.GetByID(context.Background(), "vendor-1")
	require.NoError(t, err)
	assert.InDelta(t, 4.5, vendor.Rating, 1e-9)
	assert.Equal(t, 2, vendor.NumberOfReviews)
}

func TestUpdateReview_OwnershipEnforced(t *testing.T) {
	f := seededFixture(t)
	id := reviewIDByUser(t, f, "user-2")

	_, err := f.svc.UpdateReview(context.Background(), id, "someone-else", 5, "hijack")
	assert.ErrorIs(t, err, ErrNotReviewOwner)
}

func TestUpdateReview_OrphanedServiceSkipped(t *testing.T) {
	f := seededFixture(t)
	id := reviewIDByUser(t, f, "user-2")
	require.NoError(t, f.services.Delete(context.Background(), "hall-1"))

	rv, err := f.svc.UpdateReview(context.Background(), id, "user-2", 5, "still fine")
	require.NoError(t, err)
	assert.Equal(t, 5, rv.Rating)

	// The vendor aggregate is still corrected.
	vendor, err := f.vendors.GetByID(context.Background(), "vendor-1")
	require.NoError(t, err)
	assert.InDelta(t, 4.5, vendor.Rating, 1e-9)
}

func TestDeleteReview_ReversesContribution(t *testing.T) {
	f := seededFixture(t)
	id := reviewIDByUser(t, f, "user-2")

	require.NoError(t, f.svc.DeleteReview(context.Background(), id, "user-2"))

	stored, err := f.services.GetByID(context.Background(), "hall-1")
	require.NoError(t, err)
	assert.InDelta(t, 4.0, stored.Rating, 1e-9)
	assert.Equal(t, 1, stored.NumberOfReviews)

	vendor, err := f.vendors.GetByID(context.Background(), "vendor-1")
	require.NoError(t, err)
	assert.InDelta(t, 4.0, vendor.Rating, 1e-9)
	assert.Equal(t, 1, vendor.NumberOfReviews)
}

func TestDeleteReview_LastReviewLeavesAggregateUntouched(t *testing.T) {
	f := newAggregatorFixture(newMemServiceRepo(freshHall()), newMemVendorRepo(freshVendor()), newMemReviewRepo())
	ctx := context.Background()
	rv, _, err := f.svc.CreateReview(ctx, CreateInput{ServiceType: models.ServiceTypeHall, ServiceID: "hall-1", UserID: "user-1", Rating: 4, Comment: "good"})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteReview(ctx, rv.ID, "user-1"))

	assert.Empty(t, f.reviews.reviews, "the review itself is gone")

	// The aggregate deliberately keeps the stale value; see
	// keepAggregateOnLastReviewDelete.
	stored, err := f.services.GetByID(ctx, "hall-1")
	require.NoError(t, err)
	assert.InDelta(t, 4.0, stored.Rating, 1e-9)
	assert.Equal(t, 1, stored.NumberOfReviews)
}

func TestDeleteReview_OwnershipEnforced(t *testing.T) {
	f := seededFixture(t)
	id := reviewIDByUser(t, f, "user-1")

	err := f.svc.DeleteReview(context.Background(), id, "someone-else")
	assert.ErrorIs(t, err, ErrNotReviewOwner)
	assert.Len(t, f.reviews.reviews, 2)
}

func TestDeleteReview_NotFound(t *testing.T) {
	f := seededFixture(t)
	err := f.svc.DeleteReview(context.Background(), "missing", "user-1")
	assert.ErrorIs(t, err, ErrReviewNotFound)
}
