package provider

import (
	"net/url"
	"strconv"

	"github.com/hotel-search-service/internal/domain"
)

// Построение провайдер-специфичных поисковых URL: Outscraper скрейпит
// публичные страницы, поэтому запрос кодируется прямо в URL источника.

func BuildAirbnbSearchURL(location string, input domain.NormalizedSearchInput) string {
	u := url.URL{
		Scheme: "https",
		Host:   "www.airbnb.com",
		Path:   "/s/" + location + "/homes",
	}

	query := url.Values{}
	if input.CheckIn != "" {
		query.Set("checkin", input.CheckIn)
	}
	if input.CheckOut != "" {
		query.Set("checkout", input.CheckOut)
	}
	if input.Guests > 0 {
		query.Set("adults", strconv.Itoa(input.Guests))
	}

	u.RawQuery = query.Encode()
	return u.String()
}

func BuildHotelsComSearchURL(location string, input domain.NormalizedSearchInput) string {
	u := url.URL{
		Scheme: "https",
		Host:   "www.hotels.com",
		Path:   "/Hotel-Search",
	}

	query := url.Values{}
	query.Set("destination", location)
	query.Set("sort", "RECOMMENDED")
	if input.CheckIn != "" {
		query.Set("startDate", input.CheckIn)
	}
	if input.CheckOut != "" {
		query.Set("endDate", input.CheckOut)
	}
	if input.Guests > 0 {
		query.Set("adults", strconv.Itoa(input.Guests))
	}

	u.RawQuery = query.Encode()
	return u.String()
}

func BuildGoogleHotelsSearchURL(location string, input domain.NormalizedSearchInput) string {
	u := url.URL{
		Scheme: "https",
		Host:   "www.google.com",
		Path:   "/travel/hotels",
	}

	query := url.Values{}
	query.Set("q", location)
	if input.CheckIn != "" {
		query.Set("checkin", input.CheckIn)
	}
	if input.CheckOut != "" {
		query.Set("checkout", input.CheckOut)
	}
	if input.Guests > 0 {
		query.Set("adults", strconv.Itoa(input.Guests))
	}

	u.RawQuery = query.Encode()
	return u.String()
}
