package repository

import (
	"context"

	"github.com/hotel-search-service/internal/domain"
)

// GeocodingRepository определяет методы для геокодирования свободного текста
type GeocodingRepository interface {
	// Geocode возвращает кандидатов для текстового запроса,
	// упорядоченных по релевантности провайдера
	Geocode(ctx context.Context, query string) ([]domain.GeocodingResult, error)
}
