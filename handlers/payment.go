package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"festivo/middleware"
	"festivo/models"
	"festivo/services/booking"
	"festivo/services/payment"
)

// PaymentHandler creates payment intents for bookings and records their
// reported outcomes.
type PaymentHandler struct {
	Payments payment.PaymentService
	Bookings booking.BookingService
}

func NewPaymentHandler(payments payment.PaymentService, bookings booking.BookingService) *PaymentHandler {
	return &PaymentHandler{Payments: payments, Bookings: bookings}
}

type intentRequest struct {
	BookingID string `json:"bookingId" binding:"required"`
}

// CreateIntent handles POST /api/payment/intent. Only the booking's customer
// may initiate payment.
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req intentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := h.Bookings.GetByID(c.Request.Context(), req.BookingID)
	if err != nil {
		respondError(c, err)
		return
	}
	if b.CustomerID != c.GetString(middleware.CtxCustomerID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a party to this booking"})
		return
	}
	if b.PaymentStatus == models.PaymentStatusPaid {
		c.JSON(http.StatusConflict, gin.H{"error": "booking is already paid"})
		return
	}

	intent, err := h.Payments.CreateIntent(c.Request.Context(), b)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, intent)
}

type confirmPaymentRequest struct {
	BookingID     string `json:"bookingId" binding:"required"`
	PaymentStatus string `json:"paymentStatus" binding:"required,oneof=paid failed"`
	TransactionID string `json:"transactionId"`
	PaymentMethod string `json:"paymentMethod"`
}

// Confirm handles POST /api/payment/confirm, recording the reported outcome on
// the booking.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	var req confirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := h.Bookings.RecordPayment(c.Request.Context(), req.BookingID, c.GetString(middleware.CtxCustomerID), req.PaymentStatus, models.PaymentDetails{
		TransactionID: req.TransactionID,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
