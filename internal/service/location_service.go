package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/gemline/repair-service/internal/domain"
	"github.com/gemline/repair-service/internal/persistence"
	"github.com/gemline/repair-service/internal/repository"
	apperrors "github.com/gemline/repair-service/pkg/util"
)

const (
	locationsCacheKey = "locations:all"
	locationsCacheTTL = time.Hour
)

// LocationService serves the Thai administrative-area lookup, caching the
// full list in Redis since the table is read-only reference data.
type LocationService struct {
	locations repository.LocationRepository
	redis     *persistence.Redis
	logger    *zap.Logger
}

// NewLocationService constructs the service.
func NewLocationService(locations repository.LocationRepository, redis *persistence.Redis, logger *zap.Logger) *LocationService {
	return &LocationService{locations: locations, redis: redis, logger: logger}
}

// List returns all locations, served from cache when possible. Cache errors
// fall through to the database.
func (s *LocationService) List(ctx context.Context) ([]domain.Location, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	locations, err := s.locations.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.toCache(ctx, locations)
	return locations, nil
}

func (s *LocationService) fromCache(ctx context.Context) ([]domain.Location, bool) {
	if s.redis == nil || s.redis.Client == nil {
		return nil, false
	}
	raw, err := s.redis.Client.Get(ctx, locationsCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var locations []domain.Location
	if err := json.Unmarshal(raw, &locations); err != nil {
		s.logger.Warn("corrupt locations cache entry", zap.Error(err))
		return nil, false
	}
	return locations, true
}

func (s *LocationService) toCache(ctx context.Context, locations []domain.Location) {
	if s.redis == nil || s.redis.Client == nil {
		return
	}
	raw, err := json.Marshal(locations)
	if err != nil {
		return
	}
	if err := s.redis.Client.Set(ctx, locationsCacheKey, raw, locationsCacheTTL).Err(); err != nil {
		s.logger.Warn("failed to cache locations", zap.Error(err))
	}
}
