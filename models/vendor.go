package models

import "time"

// Vendor is a business account offering one or more services. Rating and
// NumberOfReviews aggregate across all reviews of all the vendor's services
// (not a mean of service means) and are maintained by the rating aggregator.
type Vendor struct {
	ID              string    `bson:"id" json:"id"`
	Name            string    `bson:"name" json:"name"`
	Email           string    `bson:"email" json:"email"`
	PasswordHash    string    `bson:"passwordHash" json:"-"`
	BusinessName    string    `bson:"businessName" json:"businessName"`
	Phone           string    `bson:"phone" json:"phone"`
	Address         string    `bson:"address" json:"address"`
	IsVerified      bool      `bson:"isVerified" json:"isVerified"`
	FCMToken        string    `bson:"fcmToken,omitempty" json:"-"`
	Rating          float64   `bson:"rating" json:"rating"`
	NumberOfReviews int       `bson:"numberOfReviews" json:"numberOfReviews"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}
