package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hotel-search-service/internal/config"
	httpDelivery "github.com/hotel-search-service/internal/delivery/http"
	"github.com/hotel-search-service/internal/delivery/http/handler"
	"github.com/hotel-search-service/internal/domain"
	"github.com/hotel-search-service/internal/domain/repository"
	"github.com/hotel-search-service/internal/usecase"
)

// MockHotelProvider is a mock of HotelProvider
type MockHotelProvider struct {
	mock.Mock
	id domain.ProviderID
}

func (m *MockHotelProvider) ID() domain.ProviderID {
	return m.id
}

func (m *MockHotelProvider) Search(ctx context.Context, input domain.NormalizedSearchInput) (*domain.ProviderResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProviderResult), args.Error(1)
}

// MockGeocodingRepository is a mock of GeocodingRepository
type MockGeocodingRepository struct {
	mock.Mock
}

func (m *MockGeocodingRepository) Geocode(ctx context.Context, query string) ([]domain.GeocodingResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeocodingResult), args.Error(1)
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.entries[key]
	if !ok {
		return nil, nil
	}
	return value, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *memoryCache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok, nil
}

func float64Ptr(v float64) *float64 {
	return &v
}

func newTestServer(t *testing.T) *httpDelivery.Server {
	t.Helper()

	logger := zap.NewNop()

	provider := &MockHotelProvider{id: domain.ProviderGoogleHotels}
	provider.On("Search", mock.Anything, mock.Anything).Return(&domain.ProviderResult{
		Provider: domain.ProviderGoogleHotels,
		Results: []domain.HotelResult{{
			CanonicalID:       "google_hotels:hotel-a",
			Provider:          domain.ProviderGoogleHotels,
			Name:              "Hotel A",
			Rating:            4.5,
			Latitude:          float64Ptr(38.72),
			Longitude:         float64Ptr(-9.14),
			LocationPrecision: domain.PrecisionExact,
		}},
	}, nil)

	geocoder := &MockGeocodingRepository{}
	geocoder.On("Geocode", mock.Anything, mock.Anything).Return([]domain.GeocodingResult{{
		Latitude:  38.7223,
		Longitude: -9.1393,
		City:      "Lisbon",
		Country:   "Portugal",
	}}, nil)

	uc := usecase.NewHotelSearchUseCase(
		map[domain.ProviderID]repository.HotelProvider{domain.ProviderGoogleHotels: provider},
		newMemoryCache(),
		geocoder,
		logger,
		time.Hour,
		usecase.DefaultScopeRadii(),
	)

	hotelHandler := handler.NewHotelHandler(uc, logger)

	return httpDelivery.NewServer(&config.Config{}, logger, hotelHandler)
}

func TestHotelHandler_Search(t *testing.T) {
	server := newTestServer(t)

	t.Run("successful search", func(t *testing.T) {
		body, _ := json.Marshal(map[string]interface{}{
			"locations": []string{"Lisbon"},
		})

		req := httptest.NewRequest("POST", "/api/v1/hotels/search", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := server.App().Test(req, 5000)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var payload struct {
			Data struct {
				Results  []domain.HotelResult   `json:"results"`
				Warnings []domain.SearchWarning `json:"warnings"`
				Total    int                    `json:"total"`
			} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		require.Len(t, payload.Data.Results, 1)
		assert.Equal(t, "google_hotels:hotel-a", payload.Data.Results[0].CanonicalID)
		assert.Equal(t, 1, payload.Data.Total)
		assert.NotNil(t, payload.Data.Warnings)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/hotels/search", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")

		resp, err := server.App().Test(req, 5000)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("empty locations", func(t *testing.T) {
		body, _ := json.Marshal(map[string]interface{}{
			"locations": []string{},
		})

		req := httptest.NewRequest("POST", "/api/v1/hotels/search", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := server.App().Test(req, 5000)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("invalid guests", func(t *testing.T) {
		body, _ := json.Marshal(map[string]interface{}{
			"locations": []string{"Lisbon"},
			"guests":    0,
		})

		req := httptest.NewRequest("POST", "/api/v1/hotels/search", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := server.App().Test(req, 5000)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)

		var payload struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		assert.Equal(t, "INVALID_INPUT", payload.Error.Code)
	})

	t.Run("unsupported provider", func(t *testing.T) {
		body, _ := json.Marshal(map[string]interface{}{
			"locations": []string{"Lisbon"},
			"providers": []string{"booking"},
		})

		req := httptest.NewRequest("POST", "/api/v1/hotels/search", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := server.App().Test(req, 5000)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})
}

func TestHotelHandler_GetByCanonicalID(t *testing.T) {
	server := newTestServer(t)

	// Сначала прогреваем кеш результатов поиском
	body, _ := json.Marshal(map[string]interface{}{
		"locations": []string{"Lisbon"},
	})
	req := httptest.NewRequest("POST", "/api/v1/hotels/search", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := server.App().Test(req, 5000)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	t.Run("cached result is returned", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/hotels/google_hotels:hotel-a", nil)

		resp, err := server.App().Test(req, 5000)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var payload struct {
			Data domain.HotelResult `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		assert.Equal(t, "Hotel A", payload.Data.Name)
	})

	t.Run("unknown id gives 404", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/hotels/airbnb:never-seen", nil)

		resp, err := server.App().Test(req, 5000)
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("foreign namespace gives 404", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/hotels/booking:hotel-a", nil)

		resp, err := server.App().Test(req, 5000)
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})
}
