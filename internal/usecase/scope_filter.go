package usecase

import (
	"context"
	"strings"

	"github.com/hotel-search-service/internal/domain"
	"github.com/hotel-search-service/internal/pkg/utils"
)

// ScopeRadiiMeters - радиусы отсечения по специфичности разрешенной области.
// Константы подобраны вручную; совместимость поведения важнее их
// "оптимальности", поэтому значения именованные и переопределяемые.
type ScopeRadiiMeters struct {
	City      float64 // область разрешилась до города
	Region    float64 // до региона/штата без города
	Country   float64 // только до страны
	Ambiguous float64 // свободный текст с запятой без city/state/country
	Default   float64 // ничего не разрешилось
}

// DefaultScopeRadii возвращает радиусы по умолчанию
func DefaultScopeRadii() ScopeRadiiMeters {
	return ScopeRadiiMeters{
		City:      120_000,
		Region:    450_000,
		Country:   1_800_000,
		Ambiguous: 450_000,
		Default:   250_000,
	}
}

// filterOutOfArea отбрасывает результаты, чье расстояние до центроида
// области поиска превышает радиус, выведенный из специфичности области.
// Результаты без координат здесь не фильтруются - они проходят дальше,
// где их точность unknown естественно опускает их в конец выдачи.
// Возвращает оставшиеся результаты и количество отброшенных.
func (uc *HotelSearchUseCase) filterOutOfArea(
	ctx context.Context,
	results []domain.HotelResult,
	locations []string,
	resolver *areaResolver,
) ([]domain.HotelResult, int) {
	kept := make([]domain.HotelResult, 0, len(results))
	filteredOut := 0

	for i := range results {
		result := &results[i]

		if !result.HasCoordinates() {
			kept = append(kept, *result)
			continue
		}

		searchLocation := resultSearchLocation(result, locations)
		if searchLocation == "" {
			kept = append(kept, *result)
			continue
		}

		area := resolver.Resolve(ctx, searchLocation)
		if area == nil {
			kept = append(kept, *result)
			continue
		}

		distance := utils.HaversineDistanceMeters(
			*result.Latitude, *result.Longitude,
			area.Latitude, area.Longitude,
		)

		if distance > uc.scopeRadii.radiusFor(area) {
			filteredOut++
			continue
		}

		kept = append(kept, *result)
	}

	return kept, filteredOut
}

// radiusFor выбирает допустимый радиус по тому, насколько специфично
// разрешилась область поиска
func (r ScopeRadiiMeters) radiusFor(area *domain.GeocodingResult) float64 {
	if strings.TrimSpace(area.City) != "" {
		return r.City
	}
	if strings.TrimSpace(area.State) != "" {
		return r.Region
	}
	if strings.TrimSpace(area.Country) != "" {
		return r.Country
	}
	if strings.Contains(area.FormattedAddress, ",") {
		return r.Ambiguous
	}
	return r.Default
}
