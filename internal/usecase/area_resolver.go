package usecase

import (
	"context"

	"github.com/hotel-search-service/internal/domain"
	"github.com/hotel-search-service/internal/domain/repository"
	"go.uber.org/zap"
)

// areaResolver мемоизирует геокодирование областей поиска в рамках одного
// вызова поиска: одна и та же область не геокодируется дважды. Резолвер
// живет один вызов и умирает вместе с ним - межзапросного состояния нет.
type areaResolver struct {
	geocoder repository.GeocodingRepository
	logger   *zap.Logger
	areas    map[string]*domain.GeocodingResult
}

func newAreaResolver(geocoder repository.GeocodingRepository, logger *zap.Logger) *areaResolver {
	return &areaResolver{
		geocoder: geocoder,
		logger:   logger,
		areas:    make(map[string]*domain.GeocodingResult),
	}
}

// Resolve возвращает лучшую догадку геокодера для области поиска или nil,
// если область не разрешилась. Ошибки геокодера не прерывают поиск:
// область просто считается неразрешенной.
func (r *areaResolver) Resolve(ctx context.Context, location string) *domain.GeocodingResult {
	key := normalizeText(location)
	if cached, ok := r.areas[key]; ok {
		return cached
	}

	var area *domain.GeocodingResult

	matches, err := r.geocoder.Geocode(ctx, location)
	if err != nil {
		r.logger.Warn("Failed to geocode search area",
			zap.String("location", location), zap.Error(err))
	} else if len(matches) > 0 {
		first := matches[0]
		area = &first
	}

	r.areas[key] = area
	return area
}
