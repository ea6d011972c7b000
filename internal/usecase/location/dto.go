package location

import (
	"time"

	domainLocation "accessmap/internal/domain/location"

	"github.com/google/uuid"
)

// Request DTOs
type CreateLocationRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=255"`
	Address       string `json:"address" validate:"required,max=255"`
	City          string `json:"city" validate:"required,max=100"`
	Province      string `json:"province" validate:"required,max=100"`
	PostalCode    string `json:"postalCode" validate:"required,max=20"`
	Country       string `json:"country" validate:"required,max=100"`
	Category      string `json:"type" validate:"required,location_category"`
	Accessibility string `json:"accessibility" validate:"required,max=5000"`
}

// Response DTOs
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type LocationResponse struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	Address       string      `json:"address"`
	City          string      `json:"city"`
	Province      string      `json:"province"`
	PostalCode    string      `json:"postalCode"`
	Country       string      `json:"country"`
	Coordinates   Coordinates `json:"coordinates"`
	Category      string      `json:"type"`
	Accessibility string      `json:"accessibility"`
	SubmittedBy   string      `json:"user"`
	AverageRating float64     `json:"averageAccessibilityRating"`
	ReviewCount   int64       `json:"reviewCount"`
	CreatedAt     time.Time   `json:"createdAt"`
}

func ToLocationResponse(loc *domainLocation.Location) *LocationResponse {
	return &LocationResponse{
		ID:         loc.ID,
		Name:       loc.Name,
		Address:    loc.Address,
		City:       loc.City,
		Province:   loc.Province,
		PostalCode: loc.PostalCode,
		Country:    loc.Country,
		Coordinates: Coordinates{
			Lat: loc.Latitude,
			Lng: loc.Longitude,
		},
		Category:      string(loc.Category),
		Accessibility: loc.Accessibility,
		SubmittedBy:   loc.SubmittedBy,
		AverageRating: loc.AverageRating,
		ReviewCount:   loc.ReviewCount,
		CreatedAt:     loc.CreatedAt,
	}
}

func ToLocationResponses(locations []*domainLocation.Location) []*LocationResponse {
	responses := make([]*LocationResponse, len(locations))
	for i, loc := range locations {
		responses[i] = ToLocationResponse(loc)
	}
	return responses
}
