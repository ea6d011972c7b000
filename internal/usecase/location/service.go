package location

import (
	"context"

	domainLocation "accessmap/internal/domain/location"
	"accessmap/internal/geocoding"
	"accessmap/internal/logger"
	appErrors "accessmap/pkg/errors"
	"accessmap/pkg/utils"

	"go.uber.org/zap"
)

// Service implements location use cases
type Service struct {
	locationRepo domainLocation.Repository
	geocoder     geocoding.Provider
}

// NewService creates a new location service
func NewService(locationRepo domainLocation.Repository, geocoder geocoding.Provider) *Service {
	return &Service{
		locationRepo: locationRepo,
		geocoder:     geocoder,
	}
}

// Create geocodes the submitted address and stores the location with a
// zeroed review aggregate. A geocoder miss is a client error, not a server
// failure.
func (s *Service) Create(ctx context.Context, username string, req *CreateLocationRequest) (*LocationResponse, error) {
	// An unknown category gets its own sentinel; the struct tags would fold
	// it into a generic validation failure.
	if req.Category != "" && !domainLocation.Category(req.Category).Valid() {
		return nil, domainLocation.ErrInvalidCategory
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Missing required fields", err)
	}

	loc := &domainLocation.Location{
		Name:          req.Name,
		Address:       req.Address,
		City:          req.City,
		Province:      req.Province,
		PostalCode:    req.PostalCode,
		Country:       req.Country,
		Category:      domainLocation.Category(req.Category),
		Accessibility: req.Accessibility,
		SubmittedBy:   username,
	}

	coords, err := s.geocoder.Geocode(ctx, loc.FullAddress())
	if err != nil {
		return nil, err
	}
	loc.Latitude = coords.Lat
	loc.Longitude = coords.Lng

	if err := s.locationRepo.Create(ctx, loc); err != nil {
		return nil, err
	}

	logger.Info("Location submitted",
		zap.String("location_id", loc.ID.String()),
		zap.String("name", loc.Name),
		zap.String("category", string(loc.Category)),
		zap.String("submitted_by", username),
		zap.String("event", "location_submitted"),
	)

	return ToLocationResponse(loc), nil
}

// List returns all locations, newest first.
func (s *Service) List(ctx context.Context) ([]*LocationResponse, error) {
	locations, err := s.locationRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return ToLocationResponses(locations), nil
}

// Submissions returns the locations submitted by username, newest first.
func (s *Service) Submissions(ctx context.Context, username string) ([]*LocationResponse, error) {
	locations, err := s.locationRepo.GetBySubmitter(ctx, username)
	if err != nil {
		return nil, err
	}

	return ToLocationResponses(locations), nil
}
