package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"festivo/middleware"
	"festivo/models"
	"festivo/services/availability"
	"festivo/services/booking"
)

type stubChecker struct {
	result *availability.Result
	err    error
}

func (s *stubChecker) CheckAvailability(ctx context.Context, serviceType models.ServiceType, serviceID string, start, end time.Time) (*availability.Result, error) {
	return s.result, s.err
}

type stubBookingService struct {
	created *models.Booking
	err     error
}

func (s *stubBookingService) CreateBooking(ctx context.Context, in booking.CreateInput) (*models.Booking, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.created, nil
}
func (s *stubBookingService) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return nil, booking.ErrBookingNotFound
}
func (s *stubBookingService) ListForCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	return nil, nil
}
func (s *stubBookingService) ListForVendor(ctx context.Context, vendorID string) ([]models.Booking, error) {
	return nil, nil
}
func (s *stubBookingService) UpdateStatus(ctx context.Context, bookingID, actorID, actorRole, status string) (*models.Booking, error) {
	return nil, booking.ErrBookingNotFound
}
func (s *stubBookingService) RecordPayment(ctx context.Context, bookingID, customerID, paymentStatus string, details models.PaymentDetails) (*models.Booking, error) {
	return nil, booking.ErrBookingNotFound
}

func availabilityRouter(h *BookingHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/booking/availability", h.CheckAvailability)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCheckAvailabilityEndpoint_Available(t *testing.T) {
	h := NewBookingHandler(&stubBookingService{}, &stubChecker{result: &availability.Result{Available: true}}, zap.NewNop())
	r := availabilityRouter(h)

	w := postJSON(t, r, "/api/booking/availability", gin.H{
		"serviceType": "hall",
		"serviceId":   "hall-1",
		"eventStart":  "2026-09-12T10:00:00Z",
		"eventEnd":    "2026-09-12T14:00:00Z",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["status"])
	assert.Equal(t, "Time slot is available", body["msg"])
}

func TestCheckAvailabilityEndpoint_Conflict(t *testing.T) {
	conflict := models.Interval{
		Start: time.Date(2026, 9, 12, 12, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 9, 12, 16, 0, 0, 0, time.UTC),
	}
	h := NewBookingHandler(&stubBookingService{}, &stubChecker{result: &availability.Result{
		Available: false,
		Conflicts: []models.Interval{conflict},
	}}, zap.NewNop())
	r := availabilityRouter(h)

	w := postJSON(t, r, "/api/booking/availability", gin.H{
		"serviceType": "hall",
		"serviceId":   "hall-1",
		"eventStart":  "2026-09-12T10:00:00Z",
		"eventEnd":    "2026-09-12T14:00:00Z",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["status"])
	assert.NotEmpty(t, body["existingBookings"])
}

func TestCheckAvailabilityEndpoint_RejectsInvertedInterval(t *testing.T) {
	h := NewBookingHandler(&stubBookingService{}, &stubChecker{result: &availability.Result{Available: true}}, zap.NewNop())
	r := availabilityRouter(h)

	w := postJSON(t, r, "/api/booking/availability", gin.H{
		"serviceType": "hall",
		"serviceId":   "hall-1",
		"eventStart":  "2026-09-12T14:00:00Z",
		"eventEnd":    "2026-09-12T10:00:00Z",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookingEndpoint_SlotConflictMapsTo409(t *testing.T) {
	slotErr := &booking.SlotUnavailableError{Conflicts: []models.Interval{{
		Start: time.Date(2026, 9, 12, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 9, 12, 14, 0, 0, 0, time.UTC),
	}}}
	h := NewBookingHandler(&stubBookingService{err: slotErr}, &stubChecker{}, zap.NewNop())

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/booking/create", func(c *gin.Context) {
		c.Set(middleware.CtxCustomerID, "customer-1")
		h.Create(c)
	})

	w := postJSON(t, r, "/api/booking/create", gin.H{
		"serviceType": "hall",
		"serviceId":   "hall-1",
		"bookingDate": "2026-09-12T00:00:00Z",
		"eventStart":  "2026-09-12T10:00:00Z",
		"eventEnd":    "2026-09-12T14:00:00Z",
		"location":    "Main Street 1",
		"totalAmount": 500,
	})

	require.Equal(t, http.StatusConflict, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["status"])
	assert.NotEmpty(t, body["existingBookings"])
}
