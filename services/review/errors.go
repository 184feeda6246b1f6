package review

import "errors"

var (
	// ErrReviewNotFound is returned when the referenced review does not exist.
	ErrReviewNotFound = errors.New("review not found")
	// ErrServiceNotFound is returned on creation when the reviewed service
	// does not exist. Update and delete tolerate a missing service instead
	// (the service may have been deleted after the review was written).
	ErrServiceNotFound = errors.New("service not found")
	// ErrVendorNotFound is returned when the service's owner cannot be
	// resolved.
	ErrVendorNotFound = errors.New("vendor not found")
	// ErrInvalidServiceType rejects unknown service type tags.
	ErrInvalidServiceType = errors.New("invalid service type")
	// ErrInvalidRating rejects ratings outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	// ErrEmptyComment rejects blank comments.
	ErrEmptyComment = errors.New("comment is required")
	// ErrNotReviewOwner is returned when a customer edits someone else's
	// review.
	ErrNotReviewOwner = errors.New("review belongs to another user")
)
