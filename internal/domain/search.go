package domain

// SearchInput - входной запрос на поиск отелей до нормализации
type SearchInput struct {
	Locations        []string     `json:"locations"`
	CheckIn          string       `json:"checkIn,omitempty"`
	CheckOut         string       `json:"checkOut,omitempty"`
	Guests           *int         `json:"guests,omitempty"`
	Providers        []ProviderID `json:"providers,omitempty"`
	LimitPerProvider int          `json:"limitPerProvider,omitempty"`
	Currency         string       `json:"currency,omitempty"`
	Language         string       `json:"language,omitempty"`
	Region           string       `json:"region,omitempty"`
}

// NormalizedSearchInput - проверенный и нормализованный запрос,
// который передается адаптерам провайдеров. Порядок json-полей фиксирован,
// сериализация используется как детерминированный ключ кеша.
type NormalizedSearchInput struct {
	Locations        []string     `json:"locations"`
	CheckIn          string       `json:"checkIn,omitempty"`
	CheckOut         string       `json:"checkOut,omitempty"`
	Guests           int          `json:"guests,omitempty"`
	Providers        []ProviderID `json:"providers"`
	LimitPerProvider int          `json:"limitPerProvider"`
	Currency         string       `json:"currency"`
	Language         string       `json:"language"`
	Region           string       `json:"region"`
}
