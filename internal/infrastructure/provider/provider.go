package provider

import (
	"context"

	"github.com/hotel-search-service/internal/domain"
	"github.com/hotel-search-service/internal/infrastructure/outscraper"
)

// APIClient - часть Outscraper-клиента, нужная адаптерам провайдеров
type APIClient interface {
	APIRequest(ctx context.Context, path string, params outscraper.SearchParams) (interface{}, error)
	GoogleMapsSearch(ctx context.Context, queries []string, limit int, language, region string) (interface{}, error)
}

// mapRows маппит развернутые строки ответа в HotelResult, привязывая каждую
// строку к области поиска, для которой она была получена
func mapRows(providerID domain.ProviderID, response interface{}, input domain.NormalizedSearchInput) []domain.HotelResult {
	fallback := ""
	if len(input.Locations) > 0 {
		fallback = input.Locations[0]
	}

	rows := ExtractRows(response)
	results := make([]domain.HotelResult, 0, len(rows))
	for i, row := range rows {
		location := InferSearchLocation(row, input.Locations, fallback)
		results = append(results, MapRow(providerID, row, location, i))
	}

	return results
}
