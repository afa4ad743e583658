package usecase

import (
	"context"
	"strings"

	"github.com/hotel-search-service/internal/domain"
	"go.uber.org/zap"
)

// enrichLocations проходит строгую цепочку разрешения координат для каждого
// результата. Порядок шагов не переставляется: координаты провайдера всегда
// важнее любого геокодирования, а геокодирование конкретного листинга всегда
// важнее центроида области, потому что точность влияет на фильтрацию и
// ранжирование ниже по конвейеру.
//
//  1. координаты уже есть -> exact
//  2. геокод "name, address" -> geocoded
//  3. центроид области поиска результата -> centroid
//  4. ничего не вышло -> unknown
func (uc *HotelSearchUseCase) enrichLocations(
	ctx context.Context,
	results []domain.HotelResult,
	locations []string,
	resolver *areaResolver,
) []domain.HotelResult {
	for i := range results {
		result := &results[i]

		if result.HasCoordinates() {
			result.LocationPrecision = domain.PrecisionExact
			continue
		}

		if uc.enrichByListingQuery(ctx, result) {
			continue
		}

		if uc.enrichByAreaCentroid(ctx, result, locations, resolver) {
			continue
		}

		result.LocationPrecision = domain.PrecisionUnknown
	}

	return results
}

func (uc *HotelSearchUseCase) enrichByListingQuery(ctx context.Context, result *domain.HotelResult) bool {
	parts := make([]string, 0, 2)
	if result.Name != "" {
		parts = append(parts, result.Name)
	}
	if result.Address != "" {
		parts = append(parts, result.Address)
	}

	query := strings.Join(parts, ", ")
	if query == "" {
		return false
	}

	matches, err := uc.geocoder.Geocode(ctx, query)
	if err != nil {
		uc.logger.Warn("Failed to geocode listing",
			zap.String("query", query), zap.Error(err))
		return false
	}
	if len(matches) == 0 {
		return false
	}

	latitude := matches[0].Latitude
	longitude := matches[0].Longitude
	result.Latitude = &latitude
	result.Longitude = &longitude
	result.LocationPrecision = domain.PrecisionGeocoded
	return true
}

func (uc *HotelSearchUseCase) enrichByAreaCentroid(
	ctx context.Context,
	result *domain.HotelResult,
	locations []string,
	resolver *areaResolver,
) bool {
	area := resultSearchLocation(result, locations)
	if area == "" {
		return false
	}

	centroid := resolver.Resolve(ctx, area)
	if centroid == nil {
		return false
	}

	latitude := centroid.Latitude
	longitude := centroid.Longitude
	result.Latitude = &latitude
	result.Longitude = &longitude
	result.LocationPrecision = domain.PrecisionCentroid
	return true
}

// resultSearchLocation - область поиска, для которой результат был получен:
// из метаданных результата, иначе первая запрошенная локация
func resultSearchLocation(result *domain.HotelResult, locations []string) string {
	if result.Metadata != nil && result.Metadata.SearchLocation != "" {
		return result.Metadata.SearchLocation
	}
	if len(locations) > 0 {
		return locations[0]
	}
	return ""
}
