package geocoding

import (
	"context"
	"errors"
	"time"
)

// ErrNoResults is returned when no coordinates exist for an address.
var ErrNoResults = errors.New("could not find coordinates for the address")

// Coordinates represents geographical coordinates
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Provider converts an address to coordinates.
type Provider interface {
	Geocode(ctx context.Context, address string) (*Coordinates, error)
}

// Cache is the byte cache the provider uses for geocoded results. A nil
// cache disables caching.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}
