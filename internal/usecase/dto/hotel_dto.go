package dto

import "github.com/hotel-search-service/internal/domain"

// HotelSearchRequest - запрос на поиск отелей
type HotelSearchRequest struct {
	Locations        []string `json:"locations" validate:"required,min=1,dive,min=1"`
	CheckIn          string   `json:"checkIn,omitempty"`
	CheckOut         string   `json:"checkOut,omitempty"`
	Guests           *int     `json:"guests,omitempty"`
	Providers        []string `json:"providers,omitempty" validate:"omitempty,dive,oneof=airbnb hotels_com google_hotels"`
	LimitPerProvider int      `json:"limitPerProvider,omitempty" validate:"omitempty,min=1"`
	Currency         string   `json:"currency,omitempty" validate:"omitempty,len=3"`
	Language         string   `json:"language,omitempty"`
	Region           string   `json:"region,omitempty"`
}

// ToDomain конвертирует запрос в доменный вход поиска
func (r *HotelSearchRequest) ToDomain() domain.SearchInput {
	providers := make([]domain.ProviderID, 0, len(r.Providers))
	for _, provider := range r.Providers {
		providers = append(providers, domain.ProviderID(provider))
	}

	return domain.SearchInput{
		Locations:        r.Locations,
		CheckIn:          r.CheckIn,
		CheckOut:         r.CheckOut,
		Guests:           r.Guests,
		Providers:        providers,
		LimitPerProvider: r.LimitPerProvider,
		Currency:         r.Currency,
		Language:         r.Language,
		Region:           r.Region,
	}
}

// HotelSearchResponse - ответ на поиск отелей
type HotelSearchResponse struct {
	Results  []domain.HotelResult   `json:"results"`
	Warnings []domain.SearchWarning `json:"warnings"`
	Total    int                    `json:"total"`
}

// FromSearchResponse конвертирует доменный ответ поиска в DTO
func FromSearchResponse(response *domain.SearchResponse) HotelSearchResponse {
	return HotelSearchResponse{
		Results:  response.Results,
		Warnings: response.Warnings,
		Total:    len(response.Results),
	}
}
