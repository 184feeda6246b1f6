package models

import "time"

// Notification recipient kinds.
const (
	RecipientCustomer = "customer"
	RecipientVendor   = "vendor"
)

// Notification categories.
const (
	NotificationTypeBooking = "booking"
	NotificationTypeReview  = "review"
	NotificationTypeSystem  = "system"
	NotificationTypeCustom  = "custom"
)

// Notification is a stored in-app message for a customer or vendor. Delivery
// of the matching push is queued separately and is best-effort.
type Notification struct {
	ID            string            `bson:"id" json:"id"`
	RecipientID   string            `bson:"recipient" json:"recipient"`
	RecipientType string            `bson:"recipientType" json:"recipientType"`
	Title         string            `bson:"title" json:"title"`
	Message       string            `bson:"message" json:"message"`
	Type          string            `bson:"type" json:"type"`
	IsRead        bool              `bson:"isRead" json:"isRead"`
	Metadata      map[string]string `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt     time.Time         `bson:"createdAt" json:"createdAt"`
}
