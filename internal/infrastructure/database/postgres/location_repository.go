package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"accessmap/internal/domain/location"
	"accessmap/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LocationRepository implements the location domain Repository interface
type LocationRepository struct {
	db *DB
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *DB) location.Repository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) Create(ctx context.Context, loc *location.Location) error {
	loc.ID = uuid.New()
	loc.CreatedAt = time.Now()

	dbModel := toLocationModel(loc)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create location: %w", err)
	}

	loc.ID = dbModel.ID
	loc.CreatedAt = dbModel.CreatedAt

	return nil
}

func (r *LocationRepository) GetByID(ctx context.Context, locationID uuid.UUID) (*location.Location, error) {
	var dbModel models.LocationModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", locationID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, location.ErrLocationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get location: %w", err)
	}

	return toLocationEntity(&dbModel), nil
}

func (r *LocationRepository) GetAll(ctx context.Context) ([]*location.Location, error) {
	var dbModels []models.LocationModel
	err := r.db.DB.WithContext(ctx).Order("created_at DESC").Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get locations: %w", err)
	}

	return toLocationEntities(dbModels), nil
}

func (r *LocationRepository) GetByIDs(ctx context.Context, locationIDs []uuid.UUID) ([]*location.Location, error) {
	if len(locationIDs) == 0 {
		return []*location.Location{}, nil
	}

	var dbModels []models.LocationModel
	err := r.db.DB.WithContext(ctx).Where("id IN ?", locationIDs).Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get locations: %w", err)
	}

	return toLocationEntities(dbModels), nil
}

func (r *LocationRepository) GetBySubmitter(ctx context.Context, username string) ([]*location.Location, error) {
	var dbModels []models.LocationModel
	err := r.db.DB.WithContext(ctx).
		Where("submitted_by = ?", username).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get submissions: %w", err)
	}

	return toLocationEntities(dbModels), nil
}

func toLocationEntities(dbModels []models.LocationModel) []*location.Location {
	locations := make([]*location.Location, len(dbModels))
	for i := range dbModels {
		locations[i] = toLocationEntity(&dbModels[i])
	}
	return locations
}

func toLocationModel(loc *location.Location) *models.LocationModel {
	return &models.LocationModel{
		ID:            loc.ID,
		Name:          loc.Name,
		Address:       loc.Address,
		City:          loc.City,
		Province:      loc.Province,
		PostalCode:    loc.PostalCode,
		Country:       loc.Country,
		Latitude:      loc.Latitude,
		Longitude:     loc.Longitude,
		Category:      string(loc.Category),
		Accessibility: loc.Accessibility,
		SubmittedBy:   loc.SubmittedBy,
		AverageRating: loc.AverageRating,
		ReviewCount:   loc.ReviewCount,
		CreatedAt:     loc.CreatedAt,
	}
}

func toLocationEntity(m *models.LocationModel) *location.Location {
	return &location.Location{
		ID:            m.ID,
		Name:          m.Name,
		Address:       m.Address,
		City:          m.City,
		Province:      m.Province,
		PostalCode:    m.PostalCode,
		Country:       m.Country,
		Latitude:      m.Latitude,
		Longitude:     m.Longitude,
		Category:      location.Category(m.Category),
		Accessibility: m.Accessibility,
		SubmittedBy:   m.SubmittedBy,
		AverageRating: m.AverageRating,
		ReviewCount:   m.ReviewCount,
		CreatedAt:     m.CreatedAt,
	}
}
