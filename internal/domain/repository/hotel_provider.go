package repository

import (
	"context"

	"github.com/hotel-search-service/internal/domain"
)

// HotelProvider - контракт адаптера внешнего источника отелей.
// Каждый адаптер сам строит провайдер-специфичные запросы и маппит
// сырые строки ответа в domain.HotelResult.
type HotelProvider interface {
	// ID возвращает идентификатор источника
	ID() domain.ProviderID

	// Search выполняет один пакетный запрос, покрывающий все локации
	Search(ctx context.Context, input domain.NormalizedSearchInput) (*domain.ProviderResult, error)
}
