package domain

import "regexp"

// ProviderID - идентификатор внешнего источника данных об отелях
type ProviderID string

const (
	ProviderAirbnb       ProviderID = "airbnb"
	ProviderHotelsCom    ProviderID = "hotels_com"
	ProviderGoogleHotels ProviderID = "google_hotels"
)

// DefaultProviderOrder - порядок провайдеров по умолчанию (от самого надежного)
var DefaultProviderOrder = []ProviderID{
	ProviderGoogleHotels,
	ProviderHotelsCom,
	ProviderAirbnb,
}

// IsSupported проверяет, что провайдер входит в фиксированный набор источников
func (p ProviderID) IsSupported() bool {
	switch p {
	case ProviderAirbnb, ProviderHotelsCom, ProviderGoogleHotels:
		return true
	}
	return false
}

// LocationPrecision - уровень доверия к координатам результата
type LocationPrecision string

const (
	PrecisionExact    LocationPrecision = "exact"    // координаты от провайдера
	PrecisionGeocoded LocationPrecision = "geocoded" // геокодинг по name+address
	PrecisionCentroid LocationPrecision = "centroid" // центроид области поиска
	PrecisionUnknown  LocationPrecision = "unknown"  // координаты не получены
)

// Rank возвращает числовой ранг точности для сортировки (exact > geocoded > centroid > unknown)
func (p LocationPrecision) Rank() int {
	switch p {
	case PrecisionExact:
		return 3
	case PrecisionGeocoded:
		return 2
	case PrecisionCentroid:
		return 1
	default:
		return 0
	}
}

// HotelResult - каноническая единица выдачи поиска отелей
type HotelResult struct {
	CanonicalID       string            `json:"canonicalId"`
	Provider          ProviderID        `json:"provider"`
	Name              string            `json:"name"`
	Address           string            `json:"address,omitempty"`
	Latitude          *float64          `json:"latitude,omitempty"`
	Longitude         *float64          `json:"longitude,omitempty"`
	Rating            float64           `json:"rating,omitempty"`
	ReviewsCount      int               `json:"reviewsCount,omitempty"`
	PriceText         string            `json:"priceText,omitempty"`
	ImageURL          string            `json:"imageUrl,omitempty"`
	ImageURLs         []string          `json:"imageUrls,omitempty"`
	URL               string            `json:"url,omitempty"`
	Category          string            `json:"category"`
	LocationPrecision LocationPrecision `json:"locationPrecision"`
	Metadata          *ResultMetadata   `json:"metadata,omitempty"`
}

// HasCoordinates - есть ли у результата обе координаты
func (r *HotelResult) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// ResultMetadata - служебные данные результата: сырая строка провайдера
// и область поиска, для которой результат был получен
type ResultMetadata struct {
	Raw            map[string]interface{} `json:"raw,omitempty"`
	SearchLocation string                 `json:"searchLocation,omitempty"`
}

// WarningCode - код предупреждения в ответе поиска
type WarningCode string

const (
	WarningProviderFailed      WarningCode = "provider_failed"
	WarningProviderUnavailable WarningCode = "provider_unavailable"
	WarningUnmappable          WarningCode = "unmappable"
	WarningInvalidInput        WarningCode = "invalid_input"
	WarningOutOfAreaFiltered   WarningCode = "out_of_area_filtered"
)

// SearchWarning - информационное предупреждение, не прерывающее ответ
type SearchWarning struct {
	Provider ProviderID  `json:"provider,omitempty"`
	Location string      `json:"location,omitempty"`
	Code     WarningCode `json:"code"`
	Message  string      `json:"message"`
}

// ProviderResult - результат одного провайдера до объединения
type ProviderResult struct {
	Provider ProviderID      `json:"provider"`
	Results  []HotelResult   `json:"results"`
	Warnings []SearchWarning `json:"warnings,omitempty"`
}

// SearchResponse - итоговый ответ поиска отелей
type SearchResponse struct {
	Results  []HotelResult   `json:"results"`
	Warnings []SearchWarning `json:"warnings"`
}

var canonicalIDPattern = regexp.MustCompile(`^(airbnb|hotels_com|google_hotels):`)

// IsCanonicalHotelID проверяет, что id принадлежит пространству имен этого сервиса
// ({provider}:{slug}); чужие id не считаются ошибкой, просто не наши
func IsCanonicalHotelID(id string) bool {
	return canonicalIDPattern.MatchString(id)
}
