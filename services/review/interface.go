package review

import (
	"context"

	"festivo/database"
	catalogRepo "festivo/database/repository/catalog"
	reviewRepo "festivo/database/repository/review"
	vendorRepo "festivo/database/repository/vendor"
	"festivo/models"
	"festivo/services/notification"
)

// CreateInput carries everything needed to attribute a new review.
type CreateInput struct {
	ServiceType models.ServiceType
	ServiceID   string
	UserID      string
	Rating      int
	Comment     string
}

// ReviewService creates, edits and deletes reviews while keeping the service
// and vendor rating aggregates exact. Every mutation runs the review write
// and both aggregate writes in one multi-document transaction.
type ReviewService interface {
	CreateReview(ctx context.Context, in CreateInput) (*models.Review, *models.Service, error)
	UpdateReview(ctx context.Context, reviewID, userID string, rating int, comment string) (*models.Review, error)
	DeleteReview(ctx context.Context, reviewID, userID string) error
	ListByService(ctx context.Context, serviceType models.ServiceType, serviceID string) ([]models.Review, error)
}

// DefaultReviewService implements ReviewService.
type DefaultReviewService struct {
	Catalog *catalogRepo.Registry
	Vendors vendorRepo.VendorRepository
	Reviews reviewRepo.ReviewRepository
	Txn     database.TxnRunner
	// Notifier is optional; when set the owning vendor is told about new
	// reviews, best-effort.
	Notifier notification.NotificationService
}
