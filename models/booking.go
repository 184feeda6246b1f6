package models

import "time"

// Booking lifecycle states.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// Payment states.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// Booking reserves the half-open interval [EventStart, EventEnd) against one
// service for one customer. For a given service+serviceType no two bookings
// with status != cancelled may overlap.
type Booking struct {
	ID             string         `bson:"id" json:"id"`
	CustomerID     string         `bson:"customer" json:"customer"`
	ServiceType    ServiceType    `bson:"serviceType" json:"serviceType"`
	ServiceID      string         `bson:"service" json:"service"`
	VendorID       string         `bson:"vendor" json:"vendor"`
	BookingDate    time.Time      `bson:"bookingDate" json:"bookingDate"`
	EventStart     time.Time      `bson:"eventStart" json:"eventStart"`
	EventEnd       time.Time      `bson:"eventEnd" json:"eventEnd"`
	Location       string         `bson:"location,omitempty" json:"location,omitempty"`
	TotalAmount    float64        `bson:"totalAmount" json:"totalAmount"`
	Status         string         `bson:"status" json:"status"`
	PaymentStatus  string         `bson:"paymentStatus" json:"paymentStatus"`
	PaymentDetails PaymentDetails `bson:"paymentDetails,omitempty" json:"paymentDetails,omitempty"`
	OtherDetails   map[string]any `bson:"otherDetails,omitempty" json:"otherDetails,omitempty"`
	CreatedAt      time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// PaymentDetails records the outcome of the external payment collaborator.
type PaymentDetails struct {
	TransactionID string     `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	PaymentMethod string     `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	PaidAt        *time.Time `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
}

// Interval is a conflicting time range returned to clients so they can
// present alternatives.
type Interval struct {
	Start time.Time `bson:"start" json:"start"`
	End   time.Time `bson:"end" json:"end"`
}

// ValidBookingStatus reports whether s is a known lifecycle state.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}
