package outscraper

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hotel-search-service/internal/domain"
	"github.com/hotel-search-service/internal/domain/repository"
	"go.uber.org/zap"
)

const geocodeCacheKeyPrefix = "geocoding:v1:search:"

type geocoder struct {
	client    *Client
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// NewGeocoder создает геокодер поверх Outscraper с кешированием ответов.
// Геоданные меняются редко, поэтому TTL у этого кеша длинный.
func NewGeocoder(
	client *Client,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) repository.GeocodingRepository {
	return &geocoder{
		client:    client,
		cacheRepo: cacheRepo,
		logger:    logger,
		cacheTTL:  cacheTTL,
	}
}

func (g *geocoder) Geocode(ctx context.Context, query string) ([]domain.GeocodingResult, error) {
	key := geocodeCacheKeyPrefix + query

	if data, err := g.cacheRepo.Get(ctx, key); err == nil && data != nil {
		var cached []domain.GeocodingResult
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		// Битая запись в кеше - перезапросим и перезапишем
		g.logger.Warn("Failed to unmarshal cached geocoding result", zap.String("query", query))
	}

	results, err := g.client.Geocode(ctx, query)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(results); err == nil {
		if err := g.cacheRepo.Set(ctx, key, data, g.cacheTTL); err != nil {
			g.logger.Warn("Failed to cache geocoding result",
				zap.String("query", query), zap.Error(err))
		}
	}

	return results, nil
}
