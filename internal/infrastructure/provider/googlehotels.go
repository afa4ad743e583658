package provider

import (
	"context"
	"fmt"
	"regexp"

	"github.com/hotel-search-service/internal/domain"
	"github.com/hotel-search-service/internal/domain/repository"
	"github.com/hotel-search-service/internal/infrastructure/outscraper"
	"go.uber.org/zap"
)

var unavailableMessagePattern = regexp.MustCompile(`(?i)404|not found|unknown endpoint|unsupported`)

type googleHotelsProvider struct {
	client       APIClient
	endpointPath string
	logger       *zap.Logger
}

// NewGoogleHotelsProvider создает адаптер поиска через Google Hotels.
// Единственный адаптер с запасной стратегией: если структурированный
// эндпоинт недоступен или упал, используется обычный поиск по Google Maps.
func NewGoogleHotelsProvider(client APIClient, endpointPath string, logger *zap.Logger) repository.HotelProvider {
	return &googleHotelsProvider{
		client:       client,
		endpointPath: endpointPath,
		logger:       logger,
	}
}

func (p *googleHotelsProvider) ID() domain.ProviderID {
	return domain.ProviderGoogleHotels
}

func (p *googleHotelsProvider) Search(ctx context.Context, input domain.NormalizedSearchInput) (*domain.ProviderResult, error) {
	var warnings []domain.SearchWarning

	results := p.searchFromEndpoint(ctx, input, &warnings)
	if len(results) == 0 {
		results = p.searchWithMapsFallback(ctx, input, &warnings)
	}

	return &domain.ProviderResult{
		Provider: p.ID(),
		Results:  results,
		Warnings: warnings,
	}, nil
}

// isUnavailableEndpoint распознает ответ "эндпоинт не поддерживается"
// по форме полезной нагрузки, в отличие от обычной ошибки данных
func isUnavailableEndpoint(response interface{}) bool {
	payload := asMap(response)
	if payload == nil {
		return false
	}

	hasError := false
	switch v := payload["error"].(type) {
	case bool:
		hasError = v
	case string:
		hasError = v != ""
	case nil:
		hasError = false
	default:
		hasError = true
	}
	if !hasError {
		return false
	}

	message := toStringValue(payload["errorMessage"])
	if message == "" {
		message = toStringValue(payload["message"])
	}

	return unavailableMessagePattern.MatchString(message)
}

func (p *googleHotelsProvider) searchFromEndpoint(
	ctx context.Context,
	input domain.NormalizedSearchInput,
	warnings *[]domain.SearchWarning,
) []domain.HotelResult {
	queries := make([]string, 0, len(input.Locations))
	for _, location := range input.Locations {
		queries = append(queries, BuildGoogleHotelsSearchURL(location, input))
	}

	response, err := p.client.APIRequest(ctx, p.endpointPath, outscraper.SearchParams{
		Queries:  queries,
		Limit:    input.LimitPerProvider,
		Language: input.Language,
		Region:   input.Region,
	})
	if err != nil {
		*warnings = append(*warnings, domain.SearchWarning{
			Provider: p.ID(),
			Code:     domain.WarningProviderFailed,
			Message:  fmt.Sprintf("Google Hotels endpoint failed: %s. Falling back to Google Maps hotels search.", err.Error()),
		})
		return nil
	}

	if isUnavailableEndpoint(response) {
		*warnings = append(*warnings, domain.SearchWarning{
			Provider: p.ID(),
			Code:     domain.WarningProviderUnavailable,
			Message:  "Google Hotels endpoint unavailable. Falling back to Google Maps hotels search.",
		})
		return nil
	}

	return mapRows(p.ID(), response, input)
}

func (p *googleHotelsProvider) searchWithMapsFallback(
	ctx context.Context,
	input domain.NormalizedSearchInput,
	warnings *[]domain.SearchWarning,
) []domain.HotelResult {
	queries := make([]string, 0, len(input.Locations))
	for _, location := range input.Locations {
		if input.Guests > 0 {
			queries = append(queries, fmt.Sprintf("hotels for %d people in %s", input.Guests, location))
		} else {
			queries = append(queries, fmt.Sprintf("hotels in %s", location))
		}
	}

	response, err := p.client.GoogleMapsSearch(ctx, queries, input.LimitPerProvider, input.Language, input.Region)
	if err != nil {
		*warnings = append(*warnings, domain.SearchWarning{
			Provider: p.ID(),
			Code:     domain.WarningProviderFailed,
			Message:  fmt.Sprintf("Google Maps fallback failed: %s", err.Error()),
		})
		return nil
	}

	p.logger.Debug("Google Maps fallback used", zap.Int("locations", len(input.Locations)))

	return mapRows(p.ID(), response, input)
}
