package location

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies a submitted place
type Category string

const (
	CategoryRestroom       Category = "restroom"
	CategoryRestaurant     Category = "restaurant"
	CategoryPublicBuilding Category = "public building"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryRestroom, CategoryRestaurant, CategoryPublicBuilding:
		return true
	}
	return false
}

// Location represents a submitted place with accessibility metadata and
// geocoded coordinates.
type Location struct {
	ID uuid.UUID

	Name       string
	Address    string
	City       string
	Province   string
	PostalCode string
	Country    string

	Latitude  float64
	Longitude float64

	Category      Category
	Accessibility string

	// SubmittedBy holds the submitting user's username.
	SubmittedBy string

	// Denormalized review aggregate, maintained in step with the reviews
	// table on every review create, rating edit, and delete.
	AverageRating float64
	ReviewCount   int64

	CreatedAt time.Time
}

// FullAddress builds the comma-joined address handed to the geocoder.
func (l *Location) FullAddress() string {
	return l.Address + ", " + l.City + ", " + l.Province + ", " + l.PostalCode + ", " + l.Country
}
