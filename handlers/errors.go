package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"festivo/services/auth"
	"festivo/services/availability"
	"festivo/services/booking"
	"festivo/services/catalog"
	"festivo/services/review"
	"festivo/utils"
)

// respondError maps service-layer errors onto the HTTP error taxonomy.
// Conflicts carry the colliding intervals in the response body so clients can
// offer alternatives.
func respondError(c *gin.Context, err error) {
	var slotErr *booking.SlotUnavailableError
	if errors.As(err, &slotErr) {
		c.JSON(http.StatusConflict, gin.H{
			"status":           false,
			"msg":              "This time slot is already booked. Please choose a different time.",
			"existingBookings": slotErr.Conflicts,
		})
		return
	}

	switch {
	case errors.Is(err, availability.ErrInvalidServiceType),
		errors.Is(err, booking.ErrInvalidServiceType),
		errors.Is(err, booking.ErrInvalidInterval),
		errors.Is(err, booking.ErrInvalidStatus),
		errors.Is(err, catalog.ErrInvalidServiceType),
		errors.Is(err, catalog.ErrMissingFields),
		errors.Is(err, review.ErrInvalidServiceType),
		errors.Is(err, review.ErrInvalidRating),
		errors.Is(err, review.ErrEmptyComment):
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())

	case errors.Is(err, booking.ErrServiceNotFound),
		errors.Is(err, booking.ErrBookingNotFound),
		errors.Is(err, catalog.ErrServiceNotFound),
		errors.Is(err, review.ErrReviewNotFound),
		errors.Is(err, review.ErrServiceNotFound),
		errors.Is(err, review.ErrVendorNotFound),
		errors.Is(err, mongo.ErrNoDocuments):
		utils.JSONError(c, http.StatusNotFound, "not found", err.Error())

	case errors.Is(err, booking.ErrNotAllowed),
		errors.Is(err, catalog.ErrNotOwner),
		errors.Is(err, review.ErrNotReviewOwner):
		utils.JSONError(c, http.StatusForbidden, "forbidden", err.Error())

	case errors.Is(err, booking.ErrBusy):
		utils.JSONError(c, http.StatusConflict, "conflict", err.Error())

	case errors.Is(err, auth.ErrEmailTaken):
		utils.JSONError(c, http.StatusConflict, "conflict", err.Error())

	case errors.Is(err, auth.ErrInvalidCredentials):
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", err.Error())

	default:
		utils.JSONError(c, http.StatusServiceUnavailable, "service unavailable", "a storage error occurred, please retry")
	}
}
