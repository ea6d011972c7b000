package geocoding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"accessmap/internal/config"
)

const defaultHTTPTimeout = 8 * time.Second

// NominatimProvider implements Provider against the OpenStreetMap Nominatim
// search API, with cache-aside on successful lookups.
type NominatimProvider struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	cache      Cache
	cacheTTL   time.Duration
}

// NewNominatimProvider creates a Nominatim-backed geocoder.
func NewNominatimProvider(cfg *config.GeocoderConfig, cache Cache) *NominatimProvider {
	return NewNominatimProviderWithClient(cfg, cache, nil)
}

// NewNominatimProviderWithClient allows overriding the HTTP client (used for tests).
func NewNominatimProviderWithClient(cfg *config.GeocoderConfig, cache Cache, httpClient *http.Client) *NominatimProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}

	return &NominatimProvider{
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		httpClient: httpClient,
		cache:      cache,
		cacheTTL:   time.Duration(cfg.CacheTTLHours) * time.Hour,
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves an address to coordinates. ErrNoResults is returned when
// Nominatim finds nothing for the address.
func (p *NominatimProvider) Geocode(ctx context.Context, address string) (*Coordinates, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return nil, fmt.Errorf("address is required")
	}

	cacheKey := "geocode:" + hashKey(strings.ToLower(trimmed))
	if p.cache != nil {
		if cached, err := p.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			var coords Coordinates
			if err := json.Unmarshal(cached, &coords); err == nil {
				return &coords, nil
			}
			// Evict entries that no longer decode and fall through to a
			// fresh lookup.
			_ = p.cache.Delete(ctx, cacheKey)
		}
	}

	query := url.Values{}
	query.Set("format", "json")
	query.Set("q", trimmed)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode request returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read geocode response: %w", err)
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("failed to decode geocode response: %w", err)
	}

	if len(results) == 0 {
		return nil, ErrNoResults
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude in geocode response: %w", err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude in geocode response: %w", err)
	}

	coords := &Coordinates{Lat: lat, Lng: lng}

	if p.cache != nil {
		if payload, err := json.Marshal(coords); err == nil {
			_ = p.cache.Set(ctx, cacheKey, payload, p.cacheTTL)
		}
	}

	return coords, nil
}

func hashKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
