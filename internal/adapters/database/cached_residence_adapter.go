package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/zatekoja/shortstay/backend/internal/domain/entities"
	"github.com/zatekoja/shortstay/backend/internal/domain/providers"
	"github.com/zatekoja/shortstay/backend/internal/domain/repositories"
	"github.com/zatekoja/shortstay/backend/internal/infrastructure/observability"
)

// Cache TTLs (in seconds)
const (
	residenceByIDTTL        = 300
	mostPopularResidenceTTL = 120
)

func residenceCacheKey(id int64) string {
	return fmt.Sprintf("residence:%d", id)
}

// CachedResidenceAdapter wraps a ResidenceRepository with read-through caching.
// evictions counts local evictions; a read-through write that overlapped one
// is removed again so a row read before a write never outlives it.
type CachedResidenceAdapter struct {
	repositories.ResidenceRepository
	cache     providers.CacheProvider
	metrics   *observability.Metrics
	evictions atomic.Uint64
}

// NewCachedResidenceAdapter creates a new cached residence adapter
func NewCachedResidenceAdapter(adapter repositories.ResidenceRepository, cache providers.CacheProvider, metrics *observability.Metrics) repositories.ResidenceRepository {
	return &CachedResidenceAdapter{
		ResidenceRepository: adapter,
		cache:               cache,
		metrics:             metrics,
	}
}

// GetByID retrieves a residence by ID with caching
func (a *CachedResidenceAdapter) GetByID(ctx context.Context, id int64) (*entities.Residence, error) {
	key := residenceCacheKey(id)

	var residence entities.Residence
	if a.readCache(ctx, key, &residence) {
		return &residence, nil
	}

	generation := a.evictions.Load()
	fetched, err := a.ResidenceRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a.writeCache(ctx, key, fetched, residenceByIDTTL, generation)
	return fetched, nil
}

// MostPopularSince serves the report from cache. The cached value is keyed
// only by report name, so callers must pass a since derived from "now".
func (a *CachedResidenceAdapter) MostPopularSince(ctx context.Context, since time.Time) (*entities.ResidencePopularity, error) {
	var report entities.ResidencePopularity
	if a.readCache(ctx, providers.CacheKeyMostPopularResidence, &report) {
		return &report, nil
	}

	generation := a.evictions.Load()
	fetched, err := a.ResidenceRepository.MostPopularSince(ctx, since)
	if err != nil {
		return nil, err
	}

	a.writeCache(ctx, providers.CacheKeyMostPopularResidence, fetched, mostPopularResidenceTTL, generation)
	return fetched, nil
}

// Update updates the residence and evicts its cached copy
func (a *CachedResidenceAdapter) Update(ctx context.Context, residence *entities.Residence) error {
	if err := a.ResidenceRepository.Update(ctx, residence); err != nil {
		return err
	}
	a.evict(ctx, residenceCacheKey(residence.ID), providers.CacheKeyMostPopularResidence)
	return nil
}

// Delete deletes the residence and evicts its cached copy
func (a *CachedResidenceAdapter) Delete(ctx context.Context, id int64) error {
	if err := a.ResidenceRepository.Delete(ctx, id); err != nil {
		return err
	}
	a.evict(ctx, residenceCacheKey(id), providers.CacheKeyMostPopularResidence)
	return nil
}

// DeleteAll deletes every residence and evicts all cached residences
func (a *CachedResidenceAdapter) DeleteAll(ctx context.Context) (int64, error) {
	removed, err := a.ResidenceRepository.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}

	a.evictions.Add(1)
	if err := a.cache.DeletePattern(ctx, providers.CacheKeyResidencePattern); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to evict cached residences")
	}
	a.evict(ctx, providers.CacheKeyMostPopularResidence)
	return removed, nil
}

func (a *CachedResidenceAdapter) readCache(ctx context.Context, key string, dest interface{}) bool {
	cached, err := a.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, providers.ErrCacheMiss) {
			observability.LoggerFromContext(ctx).Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		observability.RecordCacheMiss(ctx, a.metrics, key)
		return false
	}

	if err := json.Unmarshal(cached, dest); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("key", key).Msg("failed to unmarshal cached value")
		observability.RecordCacheMiss(ctx, a.metrics, key)
		return false
	}

	observability.RecordCacheHit(ctx, a.metrics, key)
	return true
}

// writeCache stores a value read while the eviction count was generation.
// If an eviction happened since, the entry may predate a write and is dropped.
func (a *CachedResidenceAdapter) writeCache(ctx context.Context, key string, value interface{}, ttl int, generation uint64) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	logger := observability.LoggerFromContext(ctx)
	if err := a.cache.Set(ctx, key, data, ttl); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("failed to write cache")
		return
	}

	if a.evictions.Load() != generation {
		if err := a.cache.Delete(ctx, key); err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("failed to drop stale cache entry")
		}
	}
}

func (a *CachedResidenceAdapter) evict(ctx context.Context, keys ...string) {
	a.evictions.Add(1)
	if err := a.cache.Delete(ctx, keys...); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Strs("keys", keys).Msg("failed to evict cache")
	}
}
