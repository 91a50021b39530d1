package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/zatekoja/shortstay/backend/internal/domain/entities"
	"github.com/zatekoja/shortstay/backend/internal/domain/providers"
	"github.com/zatekoja/shortstay/backend/internal/infrastructure/observability"
)

// CacheInvalidationService evicts cached reports when bookings change
type CacheInvalidationService struct {
	cache    providers.CacheProvider
	eventBus providers.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(cache providers.CacheProvider, eventBus providers.EventBus) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		cache:    cache,
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins listening for booking events
func (s *CacheInvalidationService) Start() error {
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelBookings)
	if err != nil {
		return fmt.Errorf("failed to subscribe to booking events: %w", err)
	}

	s.wg.Add(1)
	go s.processEvents(eventChan)
	observability.GetLogger().Info().Msg("cache invalidation service started")
	return nil
}

// Stop stops listening and waits for the in-flight event to finish
func (s *CacheInvalidationService) Stop() {
	s.cancel()
	s.wg.Wait()
	observability.GetLogger().Info().Msg("cache invalidation service stopped")
}

func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.BookingEvent) {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if event == nil {
				continue
			}
			s.handleEvent(event)
		}
	}
}

// handleEvent evicts the popularity report, which any booking change can move
func (s *CacheInvalidationService) handleEvent(event *entities.BookingEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger := observability.GetLogger().With().
		Str("event_id", event.ID).
		Str("event_type", string(event.EventType)).
		Int64("residence_id", event.ResidenceID).
		Logger()

	if err := s.cache.Delete(ctx, providers.CacheKeyMostPopularResidence); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate residence report cache")
		return
	}
	logger.Debug().Msg("invalidated residence report cache")
}

// InvalidateResidenceCaches drops every cached residence and report
func (s *CacheInvalidationService) InvalidateResidenceCaches(ctx context.Context) error {
	if err := s.cache.DeletePattern(ctx, providers.CacheKeyResidencePattern); err != nil {
		return fmt.Errorf("failed to invalidate residence caches: %w", err)
	}
	if err := s.cache.Delete(ctx, providers.CacheKeyMostPopularResidence); err != nil {
		return fmt.Errorf("failed to invalidate residence report cache: %w", err)
	}
	return nil
}
