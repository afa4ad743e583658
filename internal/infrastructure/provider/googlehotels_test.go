package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hotel-search-service/internal/domain"
	"github.com/hotel-search-service/internal/infrastructure/outscraper"
)

// MockAPIClient is a mock of APIClient
type MockAPIClient struct {
	mock.Mock
}

func (m *MockAPIClient) APIRequest(ctx context.Context, path string, params outscraper.SearchParams) (interface{}, error) {
	args := m.Called(ctx, path, params)
	return args.Get(0), args.Error(1)
}

func (m *MockAPIClient) GoogleMapsSearch(ctx context.Context, queries []string, limit int, language, region string) (interface{}, error) {
	args := m.Called(ctx, queries, limit, language, region)
	return args.Get(0), args.Error(1)
}

func testInput() domain.NormalizedSearchInput {
	return domain.NormalizedSearchInput{
		Locations:        []string{"Lisbon"},
		Providers:        []domain.ProviderID{domain.ProviderGoogleHotels},
		LimitPerProvider: 10,
		Currency:         "USD",
		Language:         "en",
		Region:           "us",
	}
}

func TestGoogleHotelsProvider_Search(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("endpoint success needs no fallback", func(t *testing.T) {
		client := &MockAPIClient{}
		client.On("APIRequest", mock.Anything, "/google-hotels-search", mock.Anything).Return([]interface{}{
			map[string]interface{}{"name": "Hotel Tivoli", "place_id": "abc"},
		}, nil)

		p := NewGoogleHotelsProvider(client, "/google-hotels-search", logger)

		result, err := p.Search(ctx, testInput())

		require.NoError(t, err)
		assert.Len(t, result.Results, 1)
		assert.Empty(t, result.Warnings)
		client.AssertNotCalled(t, "GoogleMapsSearch")
	})

	t.Run("unavailable endpoint falls back to maps search", func(t *testing.T) {
		client := &MockAPIClient{}
		client.On("APIRequest", mock.Anything, "/google-hotels-search", mock.Anything).Return(map[string]interface{}{
			"error":        true,
			"errorMessage": "404: unknown endpoint",
		}, nil)
		client.On("GoogleMapsSearch", mock.Anything, []string{"hotels in Lisbon"}, 10, "en", "us").Return([]interface{}{
			map[string]interface{}{"name": "Hotel Mundial", "place_id": "xyz"},
		}, nil)

		p := NewGoogleHotelsProvider(client, "/google-hotels-search", logger)

		result, err := p.Search(ctx, testInput())

		require.NoError(t, err)
		assert.Len(t, result.Results, 1)
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, domain.WarningProviderUnavailable, result.Warnings[0].Code)
		client.AssertExpectations(t)
	})

	t.Run("endpoint error falls back to maps search", func(t *testing.T) {
		client := &MockAPIClient{}
		client.On("APIRequest", mock.Anything, "/google-hotels-search", mock.Anything).Return(nil, errors.New("boom"))
		client.On("GoogleMapsSearch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]interface{}{
			map[string]interface{}{"name": "Hotel Mundial"},
		}, nil)

		p := NewGoogleHotelsProvider(client, "/google-hotels-search", logger)

		result, err := p.Search(ctx, testInput())

		require.NoError(t, err)
		assert.Len(t, result.Results, 1)
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, domain.WarningProviderFailed, result.Warnings[0].Code)
		assert.Contains(t, result.Warnings[0].Message, "boom")
	})

	t.Run("guests are encoded into the fallback query", func(t *testing.T) {
		client := &MockAPIClient{}
		client.On("APIRequest", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("boom"))
		client.On("GoogleMapsSearch", mock.Anything, []string{"hotels for 2 people in Lisbon"}, 10, "en", "us").Return([]interface{}{}, nil)

		input := testInput()
		input.Guests = 2

		p := NewGoogleHotelsProvider(client, "/google-hotels-search", logger)

		_, err := p.Search(ctx, input)

		require.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("fallback failure never becomes an error", func(t *testing.T) {
		client := &MockAPIClient{}
		client.On("APIRequest", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("endpoint down"))
		client.On("GoogleMapsSearch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("maps down"))

		p := NewGoogleHotelsProvider(client, "/google-hotels-search", logger)

		result, err := p.Search(ctx, testInput())

		require.NoError(t, err)
		assert.Empty(t, result.Results)
		require.Len(t, result.Warnings, 2)
		assert.Equal(t, domain.WarningProviderFailed, result.Warnings[0].Code)
		assert.Equal(t, domain.WarningProviderFailed, result.Warnings[1].Code)
	})
}

func TestIsUnavailableEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		payload  interface{}
		expected bool
	}{
		{
			name:     "error flag with 404 message",
			payload:  map[string]interface{}{"error": true, "errorMessage": "404 not found"},
			expected: true,
		},
		{
			name:     "error flag with unsupported message",
			payload:  map[string]interface{}{"error": "yes", "message": "endpoint unsupported"},
			expected: true,
		},
		{
			name:     "error flag with a data error message",
			payload:  map[string]interface{}{"error": true, "errorMessage": "rate limit exceeded"},
			expected: false,
		},
		{
			name:     "no error flag",
			payload:  map[string]interface{}{"data": []interface{}{}},
			expected: false,
		},
		{
			name:     "array payload",
			payload:  []interface{}{},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isUnavailableEndpoint(tt.payload))
		})
	}
}
