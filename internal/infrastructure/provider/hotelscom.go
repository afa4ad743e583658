package provider

import (
	"context"

	"github.com/hotel-search-service/internal/domain"
	"github.com/hotel-search-service/internal/domain/repository"
	"github.com/hotel-search-service/internal/infrastructure/outscraper"
	"go.uber.org/zap"
)

type hotelsComProvider struct {
	client       APIClient
	endpointPath string
	logger       *zap.Logger
}

// NewHotelsComProvider создает адаптер поиска отелей через Hotels.com
func NewHotelsComProvider(client APIClient, endpointPath string, logger *zap.Logger) repository.HotelProvider {
	return &hotelsComProvider{
		client:       client,
		endpointPath: endpointPath,
		logger:       logger,
	}
}

func (p *hotelsComProvider) ID() domain.ProviderID {
	return domain.ProviderHotelsCom
}

func (p *hotelsComProvider) Search(ctx context.Context, input domain.NormalizedSearchInput) (*domain.ProviderResult, error) {
	queries := make([]string, 0, len(input.Locations))
	for _, location := range input.Locations {
		queries = append(queries, BuildHotelsComSearchURL(location, input))
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

	p.logger.Debug("Hotels.com search completed",
		zap.Int("locations", len(input.Locations)),
		zap.Int("results", len(results)))

	return &domain.ProviderResult{
		Provider: p.ID(),
		Results:  results,
	}, nil
}
