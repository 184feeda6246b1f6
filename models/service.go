package models

import "time"

// Service is a bookable offering owned by a vendor. All four variants share
// this document shape; variant-specific fields are optional and omitted when
// empty. Rating is always the arithmetic mean of the currently attributed
// review ratings and NumberOfReviews their count; both are maintained
// exclusively by the rating aggregator.
type Service struct {
	ID              string    `bson:"id" json:"id"`
	VendorID        string    `bson:"vendorId" json:"vendorId"`
	Title           string    `bson:"title" json:"title"`
	Description     string    `bson:"description,omitempty" json:"description,omitempty"`
	Location        string    `bson:"location,omitempty" json:"location,omitempty"`
	PricePerUnit    float64   `bson:"pricePerUnit" json:"pricePerUnit"`
	Images          []string  `bson:"images" json:"images"`
	Rating          float64   `bson:"rating" json:"rating"`
	NumberOfReviews int       `bson:"numberOfReviews" json:"numberOfReviews"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`

	// Hall fields.
	Capacity   int  `bson:"capacity,omitempty" json:"capacity,omitempty"`
	HasParking bool `bson:"hasParking,omitempty" json:"hasParking,omitempty"`
	Indoor     bool `bson:"indoor,omitempty" json:"indoor,omitempty"`

	// Catering fields.
	CuisineTypes  []string `bson:"cuisineTypes,omitempty" json:"cuisineTypes,omitempty"`
	PerHeadCost   float64  `bson:"perHeadCost,omitempty" json:"perHeadCost,omitempty"`
	IncludesDecor bool     `bson:"includesDecor,omitempty" json:"includesDecor,omitempty"`

	// Car fields.
	Brand string `bson:"brand,omitempty" json:"brand,omitempty"`
	Model string `bson:"model,omitempty" json:"model,omitempty"`
	Seats int    `bson:"seats,omitempty" json:"seats,omitempty"`
	Year  int    `bson:"year,omitempty" json:"year,omitempty"`

	// Decoration fields.
	Theme        string `bson:"theme,omitempty" json:"theme,omitempty"`
	Availability string `bson:"availability,omitempty" json:"availability,omitempty"`
}
