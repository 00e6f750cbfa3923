package service

import (
	"context"
	"time"

	"locallibrary/internal/domains/catalog"
	"locallibrary/pkg/cache"
	"locallibrary/pkg/logger"
)

const countsCacheKey = "catalog:counts"

// cachedCatalogService cache kết quả Counts trong thời gian ngắn.
// Cache lỗi => fallback về service gốc, không fail request.
type cachedCatalogService struct {
	next  catalog.Service
	cache cache.Cache
	ttl   time.Duration
}

func NewCachedCatalogService(next catalog.Service, c cache.Cache, ttl time.Duration) catalog.Service {
	return &cachedCatalogService{next: next, cache: c, ttl: ttl}
}

func (s *cachedCatalogService) Counts(ctx context.Context) (*catalog.Counts, error) {
	var cached catalog.Counts
	found, err := s.cache.Get(ctx, countsCacheKey, &cached)
	if err != nil {
		logger.Warn("catalog counts cache read failed", map[string]interface{}{"error": err.Error()})
	}
	if found {
		return &cached, nil
	}

	counts, err := s.next.Counts(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, countsCacheKey, counts, s.ttl); err != nil {
		logger.Warn("catalog counts cache write failed", map[string]interface{}{"error": err.Error()})
	}
	return counts, nil
}
