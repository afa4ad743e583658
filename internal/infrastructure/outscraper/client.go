package outscraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hotel-search-service/internal/config"
	"github.com/hotel-search-service/internal/domain"
	"go.uber.org/zap"
)

const googleMapsSearchPath = "/maps/search-v3"

// Client - клиент для Outscraper API
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

// NewClient создает новый клиент для Outscraper API
func NewClient(cfg *config.OutscraperConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		logger:  logger,
	}
}

// SearchParams - параметры пакетного поискового запроса.
// Queries передаются повторяющимся query-параметром, один вызов
// покрывает все области поиска сразу.
type SearchParams struct {
	Queries  []string
	Limit    int
	Language string
	Currency string
	Region   string
}

// APIRequest выполняет синхронный запрос к произвольному эндпоинту Outscraper
// и возвращает декодированный JSON как есть (форма ответа у эндпоинтов разная)
func (c *Client) APIRequest(ctx context.Context, path string, params SearchParams) (interface{}, error) {
	if len(params.Queries) == 0 {
		return nil, fmt.Errorf("queries cannot be empty")
	}

	values := url.Values{}
	for _, q := range params.Queries {
		values.Add("query", q)
	}
	if params.Limit > 0 {
		values.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Language != "" {
		values.Set("language", params.Language)
	}
	if params.Currency != "" {
		values.Set("currency", params.Currency)
	}
	if params.Region != "" {
		values.Set("region", params.Region)
	}
	values.Set("async", "false")

	requestURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, values.Encode())

	c.logger.Debug("Calling Outscraper API",
		zap.String("path", path),
		zap.Int("queries_count", len(params.Queries)),
		zap.Int("limit", params.Limit))

	body, err := c.do(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	var payload interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		c.logger.Error("Failed to decode response", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return payload, nil
}

// GoogleMapsSearch выполняет поиск по Google Maps (запасной источник
// для провайдера google_hotels)
func (c *Client) GoogleMapsSearch(ctx context.Context, queries []string, limit int, language, region string) (interface{}, error) {
	return c.APIRequest(ctx, googleMapsSearchPath, SearchParams{
		Queries:  queries,
		Limit:    limit,
		Language: language,
		Region:   region,
	})
}

type geocodingRow struct {
	Query            string  `json:"query"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Country          string  `json:"country"`
	State            string  `json:"state"`
	City             string  `json:"city"`
	Borough          string  `json:"borough"`
	Street           string  `json:"street"`
	PostalCode       string  `json:"postal_code"`
	FormattedAddress string  `json:"formatted_address"`
	PlaceID          string  `json:"place_id"`
	TimeZone         string  `json:"time_zone"`
}

// Geocode геокодирует текстовый запрос; записи упорядочены по релевантности
func (c *Client) Geocode(ctx context.Context, query string) ([]domain.GeocodingResult, error) {
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	values := url.Values{}
	values.Set("query", query)
	requestURL := fmt.Sprintf("%s/geocoding?%s", c.baseURL, values.Encode())

	body, err := c.do(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	var rows []geocodingRow
	if err := json.Unmarshal(body, &rows); err != nil {
		c.logger.Error("Failed to decode geocoding response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode geocoding response: %w", err)
	}

	results := make([]domain.GeocodingResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, domain.GeocodingResult{
			Query:            row.Query,
			Latitude:         row.Latitude,
			Longitude:        row.Longitude,
			Country:          row.Country,
			State:            row.State,
			City:             row.City,
			Borough:          row.Borough,
			Street:           row.Street,
			PostalCode:       row.PostalCode,
			FormattedAddress: row.FormattedAddress,
			PlaceID:          row.PlaceID,
			Timezone:         row.TimeZone,
		})
	}

	return results, nil
}

func (c *Client) do(ctx context.Context, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Outscraper API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("outscraper API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
