package domain

// GeocodingResult - результат геокодирования свободного текста.
// Записи упорядочены по релевантности провайдера, первая - лучшая догадка.
type GeocodingResult struct {
	Query            string  `json:"query,omitempty"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Country          string  `json:"country,omitempty"`
	State            string  `json:"state,omitempty"`
	City             string  `json:"city,omitempty"`
	Borough          string  `json:"borough,omitempty"`
	Street           string  `json:"street,omitempty"`
	PostalCode       string  `json:"postalCode,omitempty"`
	FormattedAddress string  `json:"formattedAddress,omitempty"`
	PlaceID          string  `json:"placeId,omitempty"`
	Timezone         string  `json:"timezone,omitempty"`
}
