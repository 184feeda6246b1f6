package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"festivo/middleware"
	"festivo/models"
	"festivo/services/availability"
	"festivo/services/booking"
)

// BookingHandler exposes the availability pre-check and the booking flow.
type BookingHandler struct {
	Svc     booking.BookingService
	Checker availability.Checker
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, checker availability.Checker, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Checker: checker, Logger: logger}
}

type availabilityRequest struct {
	ServiceType string    `json:"serviceType" binding:"required"`
	ServiceID   string    `json:"serviceId" binding:"required"`
	EventStart  time.Time `json:"eventStart" binding:"required"`
	EventEnd    time.Time `json:"eventEnd" binding:"required"`
}

// CheckAvailability is the advisory pre-check used by UIs. It reserves
// nothing; creation re-checks transactionally.
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if !req.EventEnd.After(req.EventStart) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "eventEnd must be after eventStart"})
		return
	}

	result, err := h.Checker.CheckAvailability(c.Request.Context(), models.ServiceType(req.ServiceType), req.ServiceID, req.EventStart, req.EventEnd)
	if err != nil {
		respondError(c, err)
		return
	}

	if !result.Available {
		c.JSON(http.StatusOK, gin.H{
			"status":           false,
			"msg":              "This time slot is already booked. Please choose a different time.",
			"existingBookings": result.Conflicts,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "msg": "Time slot is available"})
}

type createBookingRequest struct {
	ServiceType  string         `json:"serviceType" binding:"required"`
	ServiceID    string         `json:"serviceId" binding:"required"`
	BookingDate  time.Time      `json:"bookingDate" binding:"required"`
	EventStart   time.Time      `json:"eventStart" binding:"required"`
	EventEnd     time.Time      `json:"eventEnd" binding:"required"`
	Location     string         `json:"location" binding:"required"`
	TotalAmount  float64        `json:"totalAmount" binding:"required"`
	OtherDetails map[string]any `json:"otherDetails"`
}

// Create places a booking for the authenticated customer.
func (h *BookingHandler) Create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	customerID := c.GetString(middleware.CtxCustomerID)

	b, err := h.Svc.CreateBooking(c.Request.Context(), booking.CreateInput{
		CustomerID:   customerID,
		ServiceType:  models.ServiceType(req.ServiceType),
		ServiceID:    req.ServiceID,
		BookingDate:  req.BookingDate,
		EventStart:   req.EventStart,
		EventEnd:     req.EventEnd,
		Location:     req.Location,
		TotalAmount:  req.TotalAmount,
		OtherDetails: req.OtherDetails,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

// ListForCustomer returns the authenticated customer's bookings.
func (h *BookingHandler) ListForCustomer(c *gin.Context) {
	customerID := c.GetString(middleware.CtxCustomerID)
	bookings, err := h.Svc.ListForCustomer(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// ListForVendor returns bookings against the authenticated vendor's services.
func (h *BookingHandler) ListForVendor(c *gin.Context) {
	vendorID := c.GetString(middleware.CtxVendorID)
	bookings, err := h.Svc.ListForVendor(c.Request.Context(), vendorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// Get returns one booking; only a party to the booking may read it.
func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	customerID := c.GetString(middleware.CtxCustomerID)
	vendorID := c.GetString(middleware.CtxVendorID)
	if b.CustomerID != customerID && b.VendorID != vendorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a party to this booking"})
		return
	}
	c.JSON(http.StatusOK, b)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus applies a lifecycle transition driven by either party.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	actorID := c.GetString(middleware.CtxCustomerID)
	actorRole := models.RecipientCustomer
	if actorID == "" {
		actorID = c.GetString(middleware.CtxVendorID)
		actorRole = models.RecipientVendor
	}

	b, err := h.Svc.UpdateStatus(c.Request.Context(), c.Param("id"), actorID, actorRole, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
