package usecase

import (
	"regexp"
	"sort"
	"strings"

	"github.com/hotel-search-service/internal/domain"
	"github.com/hotel-search-service/internal/pkg/utils"
)

// duplicateDistanceMeters - максимальное расстояние между двумя листингами
// с одинаковым названием, при котором они считаются одним объектом
const duplicateDistanceMeters = 700.0

// providerReliability - вес надежности источника. Используется только как
// тай-брейк и никогда не перебивает точность/рейтинг/отзывы.
var providerReliability = map[domain.ProviderID]int{
	domain.ProviderGoogleHotels: 3,
	domain.ProviderHotelsCom:    2,
	domain.ProviderAirbnb:       1,
}

var collapseWhitespace = regexp.MustCompile(`\s+`)

func normalizeText(value string) string {
	return strings.TrimSpace(collapseWhitespace.ReplaceAllString(strings.ToLower(value), " "))
}

// compareHotels - детерминированный многоключевой компаратор.
// Возвращает отрицательное число, когда left должен стоять раньше right.
// Все ключи по убыванию: точность координат, рейтинг, количество отзывов,
// надежность провайдера, наличие цены; имя - финальный тай-брейк.
func compareHotels(left, right *domain.HotelResult) int {
	if delta := right.LocationPrecision.Rank() - left.LocationPrecision.Rank(); delta != 0 {
		return delta
	}

	if left.Rating != right.Rating {
		if right.Rating > left.Rating {
			return 1
		}
		return -1
	}

	if delta := right.ReviewsCount - left.ReviewsCount; delta != 0 {
		return delta
	}

	if delta := providerReliability[right.Provider] - providerReliability[left.Provider]; delta != 0 {
		return delta
	}

	leftHasPrice := 0
	if left.PriceText != "" {
		leftHasPrice = 1
	}
	rightHasPrice := 0
	if right.PriceText != "" {
		rightHasPrice = 1
	}
	if delta := rightHasPrice - leftHasPrice; delta != 0 {
		return delta
	}

	return strings.Compare(left.Name, right.Name)
}

// areLikelyDuplicates - эвристика "один и тот же объект у разных провайдеров":
// равные нормализованные имена плюс близкие координаты, либо (когда координат
// нет у обоих) равные непустые нормализованные адреса
func areLikelyDuplicates(left, right *domain.HotelResult) bool {
	if normalizeText(left.Name) != normalizeText(right.Name) {
		return false
	}

	if left.HasCoordinates() && right.HasCoordinates() {
		distance := utils.HaversineDistanceMeters(
			*left.Latitude, *left.Longitude,
			*right.Latitude, *right.Longitude,
		)
		return distance <= duplicateDistanceMeters
	}

	leftAddress := normalizeText(left.Address)
	rightAddress := normalizeText(right.Address)

	return leftAddress != "" && leftAddress == rightAddress
}

// rankAndDedupe сортирует результаты и схлопывает дубликаты.
// Дедупликация идет по уже отсортированному списку и жадно оставляет
// первый встреченный экземпляр группы, поэтому представителем группы
// всегда оказывается лучший по рангу результат.
func rankAndDedupe(results []domain.HotelResult) []domain.HotelResult {
	sorted := make([]domain.HotelResult, len(results))
	copy(sorted, results)

	sort.SliceStable(sorted, func(i, j int) bool {
		return compareHotels(&sorted[i], &sorted[j]) < 0
	})

	deduped := make([]domain.HotelResult, 0, len(sorted))
	for i := range sorted {
		candidate := &sorted[i]

		isDuplicate := false
		for j := range deduped {
			if areLikelyDuplicates(&deduped[j], candidate) {
				isDuplicate = true
				break
			}
		}

		if !isDuplicate {
			deduped = append(deduped, *candidate)
		}
	}

	return deduped
}
