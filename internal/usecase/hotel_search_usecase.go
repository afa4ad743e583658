package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/hotel-search-service/internal/domain"
	"github.com/hotel-search-service/internal/domain/repository"
	"github.com/hotel-search-service/internal/pkg/errors"
	"go.uber.org/zap"
)

const (
	maxLocationsPerSearch   = 5
	maxLimitPerProvider     = 20
	defaultLimitPerProvider = 10

	defaultCurrency = "USD"
	defaultLanguage = "en"
	defaultRegion   = "us"

	searchCacheKeyPrefix = "hotel-search:v1:search:"
	resultCacheKeyPrefix = "hotel-search:v1:result:"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// HotelSearchUseCase - бизнес-логика поиска отелей: нормализация запроса,
// параллельный опрос провайдеров, обогащение координат, фильтрация по области,
// ранжирование, дедупликация и двухуровневое кеширование
type HotelSearchUseCase struct {
	providers  map[domain.ProviderID]repository.HotelProvider
	cacheRepo  repository.CacheRepository
	geocoder   repository.GeocodingRepository
	logger     *zap.Logger
	cacheTTL   time.Duration
	scopeRadii ScopeRadiiMeters
}

// NewHotelSearchUseCase создает новый use case поиска отелей
func NewHotelSearchUseCase(
	providers map[domain.ProviderID]repository.HotelProvider,
	cacheRepo repository.CacheRepository,
	geocoder repository.GeocodingRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
	scopeRadii ScopeRadiiMeters,
) *HotelSearchUseCase {
	return &HotelSearchUseCase{
		providers:  providers,
		cacheRepo:  cacheRepo,
		geocoder:   geocoder,
		logger:     logger,
		cacheTTL:   cacheTTL,
		scopeRadii: scopeRadii,
	}
}

// normalizeInput проверяет и нормализует входной запрос. Любая ошибка здесь
// жесткая: до сети и кеша дело не доходит.
func (uc *HotelSearchUseCase) normalizeInput(input domain.SearchInput) (*domain.NormalizedSearchInput, error) {
	locations := make([]string, 0, len(input.Locations))
	seenLocations := make(map[string]bool)
	for _, location := range input.Locations {
		trimmed := strings.TrimSpace(location)
		if trimmed == "" {
			continue
		}
		key := normalizeText(trimmed)
		if seenLocations[key] {
			continue
		}
		seenLocations[key] = true
		locations = append(locations, trimmed)
	}
	if len(locations) == 0 {
		return nil, errors.ErrNoLocations
	}
	if len(locations) > maxLocationsPerSearch {
		locations = locations[:maxLocationsPerSearch]
	}

	requested := input.Providers
	if len(requested) == 0 {
		requested = domain.DefaultProviderOrder
	}
	providers := make([]domain.ProviderID, 0, len(requested))
	seenProviders := make(map[domain.ProviderID]bool)
	for _, providerID := range requested {
		if !providerID.IsSupported() {
			continue
		}
		if _, registered := uc.providers[providerID]; !registered {
			continue
		}
		if seenProviders[providerID] {
			continue
		}
		seenProviders[providerID] = true
		providers = append(providers, providerID)
	}
	if len(providers) == 0 {
		return nil, errors.ErrNoValidProviders
	}

	limit := input.LimitPerProvider
	if limit <= 0 {
		limit = defaultLimitPerProvider
	}
	if limit > maxLimitPerProvider {
		limit = maxLimitPerProvider
	}

	checkIn := strings.TrimSpace(input.CheckIn)
	checkOut := strings.TrimSpace(input.CheckOut)
	if checkIn != "" {
		if err := validateDate(checkIn); err != nil {
			return nil, errors.ErrInvalidCheckIn
		}
	}
	if checkOut != "" {
		if err := validateDate(checkOut); err != nil {
			return nil, errors.ErrInvalidCheckOut
		}
	}
	if (checkIn == "") != (checkOut == "") {
		return nil, errors.ErrUnpairedDates
	}
	if checkIn != "" && checkOut <= checkIn {
		return nil, errors.ErrCheckOutBeforeCheckIn
	}

	guests := 0
	if input.Guests != nil {
		if *input.Guests < 1 || *input.Guests > 100 {
			return nil, errors.ErrInvalidGuests
		}
		guests = *input.Guests
	}

	currency := strings.TrimSpace(input.Currency)
	if currency == "" {
		currency = defaultCurrency
	}
	language := strings.TrimSpace(input.Language)
	if language == "" {
		language = defaultLanguage
	}
	region := strings.TrimSpace(input.Region)
	if region == "" {
		region = defaultRegion
	}

	return &domain.NormalizedSearchInput{
		Locations:        locations,
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		Guests:           guests,
		Providers:        providers,
		LimitPerProvider: limit,
		Currency:         currency,
		Language:         language,
		Region:           region,
	}, nil
}

func validateDate(value string) error {
	if !datePattern.MatchString(value) {
		return fmt.Errorf("date %q does not match YYYY-MM-DD", value)
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return fmt.Errorf("invalid date %q: %w", value, err)
	}
	return nil
}

// searchCacheKey - детерминированный ключ кеша ответа: json нормализованного
// запроса с фиксированным порядком полей
func searchCacheKey(input *domain.NormalizedSearchInput) (string, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("failed to marshal search input: %w", err)
	}
	return searchCacheKeyPrefix + string(payload), nil
}

// SearchHotels выполняет поиск отелей по нормализованному запросу.
// После успешной валидации метод всегда возвращает ответ: отказ любого
// подмножества провайдеров превращается в предупреждения, а не в ошибку.
func (uc *HotelSearchUseCase) SearchHotels(ctx context.Context, input domain.SearchInput) (*domain.SearchResponse, error) {
	normalized, err := uc.normalizeInput(input)
	if err != nil {
		return nil, err
	}

	cacheKey, err := searchCacheKey(normalized)
	if err != nil {
		return nil, err
	}

	if cached, err := uc.cacheRepo.Get(ctx, cacheKey); err == nil && cached != nil {
		var response domain.SearchResponse
		if unmarshalErr := json.Unmarshal(cached, &response); unmarshalErr != nil {
			uc.logger.Warn("Failed to unmarshal cached search response", zap.Error(unmarshalErr))
		} else {
			uc.logger.Debug("Search cache hit", zap.String("key", cacheKey))
			return &response, nil
		}
	}

	uc.logger.Info("Searching hotels",
		zap.Strings("locations", normalized.Locations),
		zap.Int("providers", len(normalized.Providers)),
		zap.Int("limit_per_provider", normalized.LimitPerProvider))

	outcomes := uc.fanOut(ctx, normalized)

	results := make([]domain.HotelResult, 0)
	warnings := make([]domain.SearchWarning, 0)
	for _, outcome := range outcomes {
		results = append(results, outcome.Results...)
		warnings = append(warnings, outcome.Warnings...)
	}

	resolver := newAreaResolver(uc.geocoder, uc.logger)

	results = uc.enrichLocations(ctx, results, normalized.Locations, resolver)

	results, filteredOut := uc.filterOutOfArea(ctx, results, normalized.Locations, resolver)
	if filteredOut > 0 {
		warnings = append(warnings, domain.SearchWarning{
			Code:    domain.WarningOutOfAreaFiltered,
			Message: fmt.Sprintf("%d results were outside the searched area and were removed", filteredOut),
		})
	}

	results = rankAndDedupe(results)

	unknownCount := 0
	for i := range results {
		if results[i].LocationPrecision == domain.PrecisionUnknown {
			unknownCount++
		}
	}
	if unknownCount > 0 {
		warnings = append(warnings, domain.SearchWarning{
			Code:    domain.WarningUnmappable,
			Message: fmt.Sprintf("%d results could not be resolved to coordinates", unknownCount),
		})
	}

	response := &domain.SearchResponse{
		Results:  results,
		Warnings: warnings,
	}

	uc.storeResponse(ctx, cacheKey, response)

	uc.logger.Info("Hotel search completed",
		zap.Int("results", len(response.Results)),
		zap.Int("warnings", len(response.Warnings)))

	return response, nil
}

// fanOut опрашивает всех выбранных провайдеров параллельно и дожидается
// каждого: медленный или упавший провайдер не блокирует и не отменяет
// остальных. Каждая горутина пишет только в свой слот среза.
func (uc *HotelSearchUseCase) fanOut(ctx context.Context, input *domain.NormalizedSearchInput) []domain.ProviderResult {
	outcomes := make([]domain.ProviderResult, len(input.Providers))

	var wg sync.WaitGroup
	for i, providerID := range input.Providers {
		wg.Add(1)
		go func(slot int, id domain.ProviderID) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					uc.logger.Error("Provider panicked",
						zap.String("provider", string(id)), zap.Any("panic", r))
					outcomes[slot] = domain.ProviderResult{
						Provider: id,
						Warnings: []domain.SearchWarning{{
							Provider: id,
							Code:     domain.WarningProviderFailed,
							Message:  fmt.Sprintf("Provider %s failed: internal error", id),
						}},
					}
				}
			}()

			result, err := uc.providers[id].Search(ctx, *input)
			if err != nil {
				uc.logger.Warn("Provider search failed",
					zap.String("provider", string(id)), zap.Error(err))
				outcomes[slot] = domain.ProviderResult{
					Provider: id,
					Warnings: []domain.SearchWarning{{
						Provider: id,
						Code:     domain.WarningProviderFailed,
						Message:  fmt.Sprintf("Provider %s failed: %s", id, err.Error()),
					}},
				}
				return
			}

			outcomes[slot] = *result
		}(i, providerID)
	}
	wg.Wait()

	return outcomes
}

// storeResponse кеширует ответ целиком и каждый результат по каноническому id.
// Ошибки кеша не влияют на ответ клиенту.
func (uc *HotelSearchUseCase) storeResponse(ctx context.Context, cacheKey string, response *domain.SearchResponse) {
	payload, err := json.Marshal(response)
	if err != nil {
		uc.logger.Warn("Failed to marshal search response for cache", zap.Error(err))
		return
	}
	if err := uc.cacheRepo.Set(ctx, cacheKey, payload, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache search response", zap.Error(err))
	}

	for i := range response.Results {
		result := &response.Results[i]
		if result.CanonicalID == "" {
			continue
		}
		entry, err := json.Marshal(result)
		if err != nil {
			uc.logger.Warn("Failed to marshal hotel result for cache",
				zap.String("canonical_id", result.CanonicalID), zap.Error(err))
			continue
		}
		key := resultCacheKeyPrefix + result.CanonicalID
		if err := uc.cacheRepo.Set(ctx, key, entry, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache hotel result",
				zap.String("canonical_id", result.CanonicalID), zap.Error(err))
		}
	}
}

// GetCachedResult возвращает ранее закешированный результат по каноническому id.
// Возвращает nil без ошибки для чужих id, промахов кеша и битых записей:
// отсутствие результата - нормальный исход, а не сбой.
func (uc *HotelSearchUseCase) GetCachedResult(ctx context.Context, canonicalID string) (*domain.HotelResult, error) {
	if !domain.IsCanonicalHotelID(canonicalID) {
		return nil, nil
	}

	cached, err := uc.cacheRepo.Get(ctx, resultCacheKeyPrefix+canonicalID)
	if err != nil {
		return nil, err
	}
	if cached == nil {
		return nil, nil
	}

	var result domain.HotelResult
	if err := json.Unmarshal(cached, &result); err != nil {
		uc.logger.Warn("Failed to unmarshal cached hotel result",
			zap.String("canonical_id", canonicalID), zap.Error(err))
		return nil, nil
	}
	if result.CanonicalID == "" || result.Provider == "" {
		return nil, nil
	}

	return &result, nil
}
