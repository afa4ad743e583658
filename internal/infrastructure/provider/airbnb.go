package provider

import (
	"context"

	"github.com/hotel-search-service/internal/domain"
	"github.com/hotel-search-service/internal/domain/repository"
	"github.com/hotel-search-service/internal/infrastructure/outscraper"
	"go.uber.org/zap"
)

type airbnbProvider struct {
	client       APIClient
	endpointPath string
	logger       *zap.Logger
}

// NewAirbnbProvider создает адаптер поиска жилья через Airbnb
func NewAirbnbProvider(client APIClient, endpointPath string, logger *zap.Logger) repository.HotelProvider {
	return &airbnbProvider{
		client:       client,
		endpointPath: endpointPath,
		logger:       logger,
	}
}

func (p *airbnbProvider) ID() domain.ProviderID {
	return domain.ProviderAirbnb
}

func (p *airbnbProvider) Search(ctx context.Context, input domain.NormalizedSearchInput) (*domain.ProviderResult, error) {
	queries := make([]string, 0, len(input.Locations))
	for _, location := range input.Locations {
		queries = append(queries, BuildAirbnbSearchURL(location, input))
	}

	response, err := p.client.APIRequest(ctx, p.endpointPath, outscraper.SearchParams{
		Queries:  queries,
		Limit:    input.LimitPerProvider,
		Language: input.Language,
		Currency: input.Currency,
		Region:   input.Region,
	})
	if err != nil {
		return nil, err
	}

	results := mapRows(p.ID(), response, input)

	p.logger.Debug("Airbnb search completed",
		zap.Int("locations", len(input.Locations)),
		zap.Int("results", len(results)))

	return &domain.ProviderResult{
		Provider: p.ID(),
		Results:  results,
	}, nil
}
