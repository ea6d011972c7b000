package location

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for location repository operations
type Repository interface {
	Create(ctx context.Context, loc *Location) error
	GetByID(ctx context.Context, locationID uuid.UUID) (*Location, error)
	GetAll(ctx context.Context) ([]*Location, error)
	GetByIDs(ctx context.Context, locationIDs []uuid.UUID) ([]*Location, error)
	GetBySubmitter(ctx context.Context, username string) ([]*Location, error)
}
