package provider

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/hotel-search-service/internal/domain"
)

// Утилиты маппинга сырых строк Outscraper в domain.HotelResult.
// Форма ответа у эндпоинтов разная и нестабильная, поэтому все
// извлечение данных - best-effort по спискам ключей-кандидатов.

const maxImageWalkDepth = 4

var (
	nameKeys    = []string{"name", "title", "listing_name", "hotel_name", "property_name"}
	addressKeys = []string{"address", "full_address", "formatted_address", "location", "city", "area", "neighborhood"}
	latKeys     = []string{"latitude", "lat", "y"}
	lngKeys     = []string{"longitude", "lng", "lon", "x"}
	ratingKeys  = []string{"rating", "stars", "review_score"}
	reviewsKeys = []string{"reviews", "reviews_count", "review_count", "reviewsCount"}
	priceKeys   = []string{"price", "price_text", "price_per_night", "display_price", "rate"}
	urlKeys     = []string{"url", "link", "listing_url", "hotel_url"}

	externalIDKeys = []string{"id", "listing_id", "hotel_id", "property_id", "place_id", "google_id", "cid", "url", "link"}

	imageContainerKeys = []string{"images", "photos", "contextual_pictures", "picture_urls", "photo_urls", "gallery"}
	directImageKeys    = []string{"image", "image_url", "thumbnail", "thumbnail_url", "photo", "photo_url", "cover"}
	nestedImageKeys    = []string{"url", "image", "image_url", "src"}
)

var (
	imageKeyPattern   = regexp.MustCompile(`(?i)(image|images|photo|photos|picture|thumbnail|cover)`)
	httpURLPattern    = regexp.MustCompile(`(?i)^https?://`)
	imageExtPattern   = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|webp|gif|avif)(\?|$)`)
	imageHintPattern  = regexp.MustCompile(`(?i)(image|photo|picture|thumbnail|muscache|airbnbusercontent)`)
	slugStripPattern  = regexp.MustCompile(`[^a-z0-9:/._-]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	nonNumericPattern = regexp.MustCompile(`[^\d.-]`)
)

func asMap(value interface{}) map[string]interface{} {
	m, ok := value.(map[string]interface{})
	if !ok {
		return nil
	}
	return m
}

func toNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false
		}
		// Отбрасываем валюту и прочий мусор вокруг числа
		cleaned := nonNumericPattern.ReplaceAllString(trimmed, "")
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}

func toStringValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}

func pickString(row map[string]interface{}, keys []string) string {
	for _, key := range keys {
		if candidate := toStringValue(row[key]); candidate != "" {
			return candidate
		}
	}
	return ""
}

func pickNumber(row map[string]interface{}, keys []string) (float64, bool) {
	for _, key := range keys {
		if candidate, ok := toNumber(row[key]); ok {
			return candidate, true
		}
	}
	return 0, false
}

// ExtractRows разворачивает произвольный ответ Outscraper в плоский список
// строк: массив, массив массивов (пакетный запрос) или объект-обертка
// с полем data/results. Записи, не являющиеся объектами, отбрасываются.
func ExtractRows(response interface{}) []map[string]interface{} {
	if items, ok := response.([]interface{}); ok {
		if len(items) > 0 {
			if _, nested := items[0].([]interface{}); nested {
				var rows []map[string]interface{}
				for _, item := range items {
					if inner, ok := item.([]interface{}); ok {
						for _, entry := range inner {
							if m := asMap(entry); m != nil {
								rows = append(rows, m)
							}
						}
					} else if m := asMap(item); m != nil {
						rows = append(rows, m)
					}
				}
				return rows
			}
		}

		var rows []map[string]interface{}
		for _, item := range items {
			if m := asMap(item); m != nil {
				rows = append(rows, m)
			}
		}
		return rows
	}

	root := asMap(response)
	if root == nil {
		return nil
	}

	if data, ok := root["data"].([]interface{}); ok {
		return ExtractRows(data)
	}
	if results, ok := root["results"].([]interface{}); ok {
		return ExtractRows(results)
	}

	return []map[string]interface{}{root}
}

func isLikelyImageURL(value string) bool {
	return httpURLPattern.MatchString(value) &&
		(imageExtPattern.MatchString(value) || imageHintPattern.MatchString(value))
}

func firstImageURL(row map[string]interface{}) string {
	if direct := pickString(row, directImageKeys); direct != "" {
		return direct
	}

	if images, ok := row["images"].([]interface{}); ok {
		for _, item := range images {
			image := asMap(item)
			if image == nil {
				continue
			}
			if u := pickString(image, nestedImageKeys); u != "" {
				return u
			}
		}
	}

	return ""
}

type imageSet struct {
	urls []string
}

func (s *imageSet) add(u string) {
	for _, existing := range s.urls {
		if existing == u {
			return
		}
	}
	s.urls = append(s.urls, u)
}

// collectImageCandidates рекурсивно обходит вложенное значение в поисках
// URL картинок. Глубина ограничена, чтобы гарантировать завершение на
// кривых или самоподобных структурах.
func collectImageCandidates(value interface{}, set *imageSet, keyHint string, depth int) {
	if depth > maxImageWalkDepth {
		return
	}

	switch v := value.(type) {
	case string:
		trimmed := strings.TrimSpace(v)
		if isLikelyImageURL(trimmed) && (keyHint == "" || imageKeyPattern.MatchString(keyHint)) {
			set.add(trimmed)
		}
	case []interface{}:
		for _, item := range v {
			collectImageCandidates(item, set, keyHint, depth+1)
		}
	case map[string]interface{}:
		// Детерминированный порядок обхода
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, entryKey := range keys {
			normalizedKey := strings.ToLower(entryKey)
			childHint := normalizedKey
			if imageKeyPattern.MatchString(normalizedKey) ||
				(keyHint != "" && imageKeyPattern.MatchString(keyHint)) {
				if keyHint != "" {
					childHint = keyHint
				}
			}
			collectImageCandidates(v[entryKey], set, childHint, depth+1)
		}
	}
}

// CollectImageURLs собирает URL картинок из сырой строки: сначала прямые
// ключи, затем ограниченный по глубине обход контейнеров-кандидатов
func CollectImageURLs(row map[string]interface{}) []string {
	set := &imageSet{}

	if direct := firstImageURL(row); direct != "" {
		set.add(direct)
	}

	for _, key := range imageContainerKeys {
		collectImageCandidates(row[key], set, key, 0)
	}

	return set.urls
}

// BuildCanonicalID синтезирует стабильный id вида {provider}:{slug} из
// собственных идентификаторов провайдера; fallbackSeed используется,
// только когда провайдер не дал ничего пригодного
func BuildCanonicalID(providerID domain.ProviderID, row map[string]interface{}, fallbackSeed string) string {
	externalID := pickString(row, externalIDKeys)
	if externalID == "" {
		externalID = fallbackSeed
	}

	slug := strings.ToLower(strings.TrimSpace(externalID))
	slug = whitespacePattern.ReplaceAllString(slug, "-")
	slug = slugStripPattern.ReplaceAllString(slug, "")

	if slug == "" {
		slug = fallbackSeed
	}

	return fmt.Sprintf("%s:%s", providerID, slug)
}

// MapRow маппит одну сырую строку провайдера в HotelResult
func MapRow(providerID domain.ProviderID, row map[string]interface{}, location string, index int) domain.HotelResult {
	name := pickString(row, nameKeys)
	if name == "" {
		name = "Hotel result"
	}

	var latitude, longitude *float64
	if lat, ok := pickNumber(row, latKeys); ok {
		latitude = &lat
	}
	if lng, ok := pickNumber(row, lngKeys); ok {
		longitude = &lng
	}

	precision := domain.PrecisionUnknown
	if latitude != nil && longitude != nil {
		precision = domain.PrecisionExact
	}

	rating, _ := pickNumber(row, ratingKeys)
	reviews, _ := pickNumber(row, reviewsKeys)

	imageURLs := CollectImageURLs(row)
	imageURL := ""
	if len(imageURLs) > 0 {
		imageURL = imageURLs[0]
	}

	return domain.HotelResult{
		CanonicalID:       BuildCanonicalID(providerID, row, fmt.Sprintf("%s-%d", location, index)),
		Provider:          providerID,
		Name:              name,
		Address:           pickString(row, addressKeys),
		Latitude:          latitude,
		Longitude:         longitude,
		Rating:            rating,
		ReviewsCount:      int(reviews),
		PriceText:         pickString(row, priceKeys),
		ImageURL:          imageURL,
		ImageURLs:         imageURLs,
		URL:               pickString(row, urlKeys),
		Category:          "hotel",
		LocationPrecision: precision,
		Metadata: &domain.ResultMetadata{
			Raw:            row,
			SearchLocation: location,
		},
	}
}

func normalizeMatchText(value string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(strings.ToLower(value), " "))
}

// InferSearchLocation определяет, для какой из запрошенных областей поиска
// провайдер вернул строку: по query/url из строки, затем по подсказкам
// city/location/area, иначе fallback
func InferSearchLocation(row map[string]interface{}, locations []string, fallback string) string {
	if len(locations) == 1 {
		if locations[0] != "" {
			return locations[0]
		}
		return fallback
	}

	rawQuery := pickString(row, []string{"query", "search_query", "input", "url"})

	var queryCandidates []string
	if rawQuery != "" {
		queryCandidates = append(queryCandidates, normalizeMatchText(rawQuery))
		if decoded, err := url.QueryUnescape(rawQuery); err == nil {
			queryCandidates = append(queryCandidates, normalizeMatchText(decoded))
		}
	}

	type locationCandidate struct {
		original   string
		normalized string
		encoded    string
	}

	candidates := make([]locationCandidate, 0, len(locations))
	for _, location := range locations {
		candidates = append(candidates, locationCandidate{
			original:   location,
			normalized: normalizeMatchText(location),
			encoded:    strings.ToLower(url.QueryEscape(location)),
		})
	}

	for _, queryText := range queryCandidates {
		for _, candidate := range candidates {
			if strings.Contains(queryText, candidate.normalized) ||
				strings.Contains(queryText, candidate.encoded) {
				return candidate.original
			}
		}
	}

	if cityHint := pickString(row, []string{"city", "location", "area"}); cityHint != "" {
		normalizedHint := normalizeMatchText(cityHint)
		for _, candidate := range candidates {
			if strings.Contains(candidate.normalized, normalizedHint) ||
				strings.Contains(normalizedHint, candidate.normalized) {
				return candidate.original
			}
		}
	}

	return fallback
}
