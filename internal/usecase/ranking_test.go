package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hotel-search-service/internal/domain"
)

func coordPtr(v float64) *float64 {
	return &v
}

func TestCompareHotels(t *testing.T) {
	base := func() domain.HotelResult {
		return domain.HotelResult{
			Provider:          domain.ProviderAirbnb,
			Name:              "Hotel",
			Rating:            4.0,
			ReviewsCount:      100,
			PriceText:         "$100",
			LocationPrecision: domain.PrecisionExact,
		}
	}

	t.Run("precision beats rating", func(t *testing.T) {
		left := base()
		left.LocationPrecision = domain.PrecisionExact
		left.Rating = 3.0

		right := base()
		right.LocationPrecision = domain.PrecisionCentroid
		right.Rating = 5.0

		assert.Less(t, compareHotels(&left, &right), 0)
	})

	t.Run("rating beats reviews count", func(t *testing.T) {
		left := base()
		left.Rating = 4.8
		left.ReviewsCount = 10

		right := base()
		right.Rating = 4.2
		right.ReviewsCount = 5000

		assert.Less(t, compareHotels(&left, &right), 0)
	})

	t.Run("missing rating loses to any rating", func(t *testing.T) {
		left := base()
		left.Rating = 0

		right := base()
		right.Rating = 1.5

		assert.Greater(t, compareHotels(&left, &right), 0)
	})

	t.Run("reviews count breaks rating tie", func(t *testing.T) {
		left := base()
		left.ReviewsCount = 2000

		right := base()
		right.ReviewsCount = 100

		assert.Less(t, compareHotels(&left, &right), 0)
	})

	t.Run("provider reliability breaks reviews tie", func(t *testing.T) {
		left := base()
		left.Provider = domain.ProviderGoogleHotels

		right := base()
		right.Provider = domain.ProviderAirbnb

		assert.Less(t, compareHotels(&left, &right), 0)
	})

	t.Run("having a price breaks reliability tie", func(t *testing.T) {
		left := base()
		left.PriceText = "$120"

		right := base()
		right.PriceText = ""

		assert.Less(t, compareHotels(&left, &right), 0)
	})

	t.Run("name is the final tie-break", func(t *testing.T) {
		left := base()
		left.Name = "Alfa"

		right := base()
		right.Name = "Beta"

		assert.Less(t, compareHotels(&left, &right), 0)
	})
}

func TestAreLikelyDuplicates(t *testing.T) {
	t.Run("same name within 700 meters", func(t *testing.T) {
		left := domain.HotelResult{
			Name:      "Grand Hotel",
			Latitude:  coordPtr(38.7223),
			Longitude: coordPtr(-9.1393),
		}
		right := domain.HotelResult{
			Name:      "grand  hotel",
			Latitude:  coordPtr(38.7250),
			Longitude: coordPtr(-9.1400),
		}

		assert.True(t, areLikelyDuplicates(&left, &right))
	})

	t.Run("same name far apart is not a duplicate", func(t *testing.T) {
		left := domain.HotelResult{
			Name:      "Grand Hotel",
			Latitude:  coordPtr(38.7223),
			Longitude: coordPtr(-9.1393),
		}
		right := domain.HotelResult{
			Name:      "Grand Hotel",
			Latitude:  coordPtr(40.4168),
			Longitude: coordPtr(-3.7038),
		}

		assert.False(t, areLikelyDuplicates(&left, &right))
	})

	t.Run("coordless pair with equal addresses", func(t *testing.T) {
		left := domain.HotelResult{Name: "Casa Azul", Address: "Rua Augusta 10, Lisboa"}
		right := domain.HotelResult{Name: "Casa Azul", Address: "rua augusta 10, lisboa"}

		assert.True(t, areLikelyDuplicates(&left, &right))
	})

	t.Run("coordless pair with empty addresses is not a duplicate", func(t *testing.T) {
		left := domain.HotelResult{Name: "Casa Azul"}
		right := domain.HotelResult{Name: "Casa Azul"}

		assert.False(t, areLikelyDuplicates(&left, &right))
	})

	t.Run("one with coordinates and one without falls back to addresses", func(t *testing.T) {
		left := domain.HotelResult{
			Name:      "Casa Azul",
			Address:   "Rua Augusta 10",
			Latitude:  coordPtr(38.7223),
			Longitude: coordPtr(-9.1393),
		}
		right := domain.HotelResult{Name: "Casa Azul", Address: "Rua Augusta 10"}

		assert.True(t, areLikelyDuplicates(&left, &right))
	})

	t.Run("different names are never duplicates", func(t *testing.T) {
		left := domain.HotelResult{Name: "Casa Azul", Address: "Rua Augusta 10"}
		right := domain.HotelResult{Name: "Casa Verde", Address: "Rua Augusta 10"}

		assert.False(t, areLikelyDuplicates(&left, &right))
	})
}

func TestRankAndDedupe(t *testing.T) {
	t.Run("keeps the best ranked duplicate", func(t *testing.T) {
		results := []domain.HotelResult{
			{
				CanonicalID:       "airbnb:casa-1",
				Provider:          domain.ProviderAirbnb,
				Name:              "Casa Azul",
				Rating:            4.2,
				Latitude:          coordPtr(38.7223),
				Longitude:         coordPtr(-9.1393),
				LocationPrecision: domain.PrecisionExact,
			},
			{
				CanonicalID:       "google_hotels:casa-2",
				Provider:          domain.ProviderGoogleHotels,
				Name:              "Casa Azul",
				Rating:            4.8,
				Latitude:          coordPtr(38.7224),
				Longitude:         coordPtr(-9.1394),
				LocationPrecision: domain.PrecisionExact,
			},
		}

		deduped := rankAndDedupe(results)

		assert.Len(t, deduped, 1)
		assert.Equal(t, "google_hotels:casa-2", deduped[0].CanonicalID)
		assert.Equal(t, 4.8, deduped[0].Rating)
	})

	t.Run("does not mutate the input slice", func(t *testing.T) {
		results := []domain.HotelResult{
			{Name: "B", Rating: 1, LocationPrecision: domain.PrecisionExact},
			{Name: "A", Rating: 5, LocationPrecision: domain.PrecisionExact},
		}

		_ = rankAndDedupe(results)

		assert.Equal(t, "B", results[0].Name)
	})

	t.Run("sorts by the full key chain", func(t *testing.T) {
		results := []domain.HotelResult{
			{Name: "Unknown precision", Rating: 5, LocationPrecision: domain.PrecisionUnknown},
			{Name: "Centroid", Rating: 3, LocationPrecision: domain.PrecisionCentroid},
			{Name: "Exact low rating", Rating: 2, LocationPrecision: domain.PrecisionExact},
			{Name: "Exact high rating", Rating: 4.5, LocationPrecision: domain.PrecisionExact},
		}

		sorted := rankAndDedupe(results)

		assert.Equal(t, "Exact high rating", sorted[0].Name)
		assert.Equal(t, "Exact low rating", sorted[1].Name)
		assert.Equal(t, "Centroid", sorted[2].Name)
		assert.Equal(t, "Unknown precision", sorted[3].Name)
	})
}

func TestScopeRadiusFor(t *testing.T) {
	radii := DefaultScopeRadii()

	tests := []struct {
		name     string
		area     domain.GeocodingResult
		expected float64
	}{
		{
			name:     "city resolved",
			area:     domain.GeocodingResult{City: "Lisbon", State: "Lisboa", Country: "Portugal"},
			expected: radii.City,
		},
		{
			name:     "state without city",
			area:     domain.GeocodingResult{State: "Bavaria", Country: "Germany"},
			expected: radii.Region,
		},
		{
			name:     "country only",
			area:     domain.GeocodingResult{Country: "Portugal"},
			expected: radii.Country,
		},
		{
			name:     "free text with comma",
			area:     domain.GeocodingResult{FormattedAddress: "somewhere, earth"},
			expected: radii.Ambiguous,
		},
		{
			name:     "nothing resolved",
			area:     domain.GeocodingResult{FormattedAddress: "somewhere"},
			expected: radii.Default,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, radii.radiusFor(&tt.area))
		})
	}
}
