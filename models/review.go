package models

import "time"

// Review is a rating+comment left by a customer against a service. ServiceID,
// ServiceType and VendorID are immutable once created; VendorID is
// denormalized from the service at creation so vendor aggregates can be
// updated without re-resolving the service's owner on every read.
type Review struct {
	ID          string      `bson:"id" json:"id"`
	ServiceID   string      `bson:"serviceId" json:"serviceId"`
	ServiceType ServiceType `bson:"serviceType" json:"serviceType"`
	VendorID    string      `bson:"vendorId" json:"vendorId"`
	UserID      string      `bson:"userId" json:"userId"`
	Rating      int         `bson:"rating" json:"rating" binding:"required,min=1,max=5"`
	Comment     string      `bson:"comment" json:"comment" binding:"required"`
	CreatedAt   time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time   `bson:"updatedAt" json:"updatedAt"`
}
