package review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	catalogRepo "festivo/database/repository/catalog"
	vendorRepo "festivo/database/repository/vendor"
	"festivo/models"
	"festivo/utils"
)

// keepAggregateOnLastReviewDelete preserves the long-standing production
// behavior: when the sole remaining review is deleted, the aggregate is left
// untouched (count stays 1 and the old rating remains visible) instead of
// being reset to zero. Pending a product decision; do not flip without one.
const keepAggregateOnLastReviewDelete = true

// maxAggregateRetries bounds how often a review operation is replayed after
// losing the compare-and-swap on an aggregate to a concurrent operation.
const maxAggregateRetries = 3

func isStaleAggregate(err error) bool {
	return errors.Is(err, catalogRepo.ErrStaleAggregate) || errors.Is(err, vendorRepo.ErrStaleAggregate)
}

// retryOnConflict replays fn while it loses aggregate CAS races.
func (s *DefaultReviewService) retryOnConflict(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt < maxAggregateRetries; attempt++ {
		err = s.Txn.WithTransaction(ctx, fn)
		if err == nil || !isStaleAggregate(err) {
			return err
		}
		utils.GetLogger().Debug("review aggregate conflict, retrying", zap.Int("attempt", attempt+1))
	}
	return err
}

// CreateReview attributes a new review to a service: the service mean is
// extended by the new rating, the vendor mean likewise against the vendor's
// own running state, and the review document is inserted with the vendor
// denormalized from the service. All three writes share one transaction.
func (s *DefaultReviewService) CreateReview(ctx context.Context, in CreateInput) (*models.Review, *models.Service, error) {
	if _, err := models.ParseServiceType(string(in.ServiceType)); err != nil {
		return nil, nil, ErrInvalidServiceType
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, nil, ErrInvalidRating
	}
	if strings.TrimSpace(in.Comment) == "" {
		return nil, nil, ErrEmptyComment
	}

	repo, err := s.Catalog.For(in.ServiceType)
	if err != nil {
		return nil, nil, ErrInvalidServiceType
	}

	var created *models.Review
	var updated *models.Service

	err = s.retryOnConflict(ctx, func(txCtx context.Context) error {
		svc, err := repo.GetByID(txCtx, in.ServiceID)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrServiceNotFound
		}
		if err != nil {
			return fmt.Errorf("resolve service: %w", err)
		}

		newServiceRating := (svc.Rating*float64(svc.NumberOfReviews) + float64(in.Rating)) / float64(svc.NumberOfReviews+1)
		if err := repo.UpdateAggregates(txCtx, svc.ID, newServiceRating, svc.NumberOfReviews+1, svc.NumberOfReviews); err != nil {
			return err
		}

		vendor, err := s.Vendors.GetByID(txCtx, svc.VendorID)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrVendorNotFound
		}
		if err != nil {
			return fmt.Errorf("resolve vendor: %w", err)
		}

		newVendorRating := (vendor.Rating*float64(vendor.NumberOfReviews) + float64(in.Rating)) / float64(vendor.NumberOfReviews+1)
		if err := s.Vendors.UpdateAggregates(txCtx, vendor.ID, newVendorRating, vendor.NumberOfReviews+1, vendor.NumberOfReviews); err != nil {
			return err
		}

		rv := &models.Review{
			ServiceID:   in.ServiceID,
			ServiceType: in.ServiceType,
			VendorID:    svc.VendorID,
			UserID:      in.UserID,
			Rating:      in.Rating,
			Comment:     in.Comment,
		}
		if err := s.Reviews.Create(txCtx, rv); err != nil {
			return fmt.Errorf("insert review: %w", err)
		}

		snapshot := *svc
		snapshot.Rating = newServiceRating
		snapshot.NumberOfReviews = svc.NumberOfReviews + 1
		created = rv
		updated = &snapshot
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if s.Notifier != nil {
		_, nerr := s.Notifier.Send(ctx, created.VendorID, models.RecipientVendor,
			"New review received",
			fmt.Sprintf("Your %s listing received a %d-star review.", in.ServiceType, in.Rating),
			models.NotificationTypeReview,
			map[string]string{"reviewId": created.ID, "serviceId": in.ServiceID})
		if nerr != nil {
			utils.GetLogger().Warn("review notification failed", zap.Error(nerr))
		}
	}

	return created, updated, nil
}

// UpdateReview changes a review's rating and comment. The attributed review
// count does not change, so both aggregates are corrected by swapping the old
// rating for the new one in the running sum. A service or vendor that has
// since been deleted is skipped silently.
func (s *DefaultReviewService) UpdateReview(ctx context.Context, reviewID, userID string, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	if strings.TrimSpace(comment) == "" {
		return nil, ErrEmptyComment
	}

	var updated *models.Review

	err := s.retryOnConflict(ctx, func(txCtx context.Context) error {
		rv, err := s.Reviews.GetByID(txCtx, reviewID)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrReviewNotFound
		}
		if err != nil {
			return fmt.Errorf("resolve review: %w", err)
		}
		if userID != "" && rv.UserID != userID {
			return ErrNotReviewOwner
		}

		oldRating := rv.Rating
		if err := s.Reviews.UpdateContent(txCtx, reviewID, rating, comment); err != nil {
			return fmt.Errorf("update review: %w", err)
		}

		if err := s.adjustAggregates(txCtx, rv, oldRating, rating); err != nil {
			return err
		}

		copied := *rv
		copied.Rating = rating
		copied.Comment = comment
		updated = &copied
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// adjustAggregates swaps oldRating for newRating in both running means,
// leaving counts unchanged.
func (s *DefaultReviewService) adjustAggregates(ctx context.Context, rv *models.Review, oldRating, newRating int) error {
	repo, err := s.Catalog.For(rv.ServiceType)
	if err != nil {
		return ErrInvalidServiceType
	}

	svc, err := repo.GetByID(ctx, rv.ServiceID)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		// Orphaned review: the service was deleted out from under it.
	case err != nil:
		return fmt.Errorf("resolve service: %w", err)
	case svc.NumberOfReviews > 0:
		newServiceRating := (svc.Rating*float64(svc.NumberOfReviews) - float64(oldRating) + float64(newRating)) / float64(svc.NumberOfReviews)
		if err := repo.UpdateAggregates(ctx, svc.ID, newServiceRating, svc.NumberOfReviews, svc.NumberOfReviews); err != nil {
			return err
		}
	}

	vendor, err := s.Vendors.GetByID(ctx, rv.VendorID)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
	case err != nil:
		return fmt.Errorf("resolve vendor: %w", err)
	case vendor.NumberOfReviews > 0:
		newVendorRating := (vendor.Rating*float64(vendor.NumberOfReviews) - float64(oldRating) + float64(newRating)) / float64(vendor.NumberOfReviews)
		if err := s.Vendors.UpdateAggregates(ctx, vendor.ID, newVendorRating, vendor.NumberOfReviews, vendor.NumberOfReviews); err != nil {
			return err
		}
	}

	return nil
}

// DeleteReview removes a review and reverses its contribution to both
// aggregates — unless it is the last attributed review, in which case the
// aggregate is left as-is (see keepAggregateOnLastReviewDelete).
func (s *DefaultReviewService) DeleteReview(ctx context.Context, reviewID, userID string) error {
	return s.retryOnConflict(ctx, func(txCtx context.Context) error {
		rv, err := s.Reviews.GetByID(txCtx, reviewID)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrReviewNotFound
		}
		if err != nil {
			return fmt.Errorf("resolve review: %w", err)
		}
		if userID != "" && rv.UserID != userID {
			return ErrNotReviewOwner
		}

		if err := s.Reviews.Delete(txCtx, reviewID); err != nil {
			return fmt.Errorf("delete review: %w", err)
		}

		repo, err := s.Catalog.For(rv.ServiceType)
		if err != nil {
			return ErrInvalidServiceType
		}

		svc, err := repo.GetByID(txCtx, rv.ServiceID)
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			// Orphaned review; nothing to reverse.
		case err != nil:
			return fmt.Errorf("resolve service: %w", err)
		case svc.NumberOfReviews > 1:
			newRating := (svc.Rating*float64(svc.NumberOfReviews) - float64(rv.Rating)) / float64(svc.NumberOfReviews-1)
			if err := repo.UpdateAggregates(txCtx, svc.ID, newRating, svc.NumberOfReviews-1, svc.NumberOfReviews); err != nil {
				return err
			}
		case !keepAggregateOnLastReviewDelete:
			if err := repo.UpdateAggregates(txCtx, svc.ID, 0, 0, svc.NumberOfReviews); err != nil {
				return err
			}
		}

		vendor, err := s.Vendors.GetByID(txCtx, rv.VendorID)
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
		case err != nil:
			return fmt.Errorf("resolve vendor: %w", err)
		case vendor.NumberOfReviews > 1:
			newRating := (vendor.Rating*float64(vendor.NumberOfReviews) - float64(rv.Rating)) / float64(vendor.NumberOfReviews-1)
			if err := s.Vendors.UpdateAggregates(txCtx, vendor.ID, newRating, vendor.NumberOfReviews-1, vendor.NumberOfReviews); err != nil {
				return err
			}
		case !keepAggregateOnLastReviewDelete:
			if err := s.Vendors.UpdateAggregates(txCtx, vendor.ID, 0, 0, vendor.NumberOfReviews); err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *DefaultReviewService) ListByService(ctx context.Context, serviceType models.ServiceType, serviceID string) ([]models.Review, error) {
	if _, err := models.ParseServiceType(string(serviceType)); err != nil {
		return nil, ErrInvalidServiceType
	}
	return s.Reviews.ListByService(ctx, serviceType, serviceID)
}
