package errors

import "net/http"

const CodeInvalidInput = "INVALID_INPUT"

var (
	ErrNoLocations = New(
		CodeInvalidInput,
		"At least one location is required",
		http.StatusBadRequest,
	)

	ErrNoValidProviders = New(
		CodeInvalidInput,
		"At least one valid hotel provider must be selected",
		http.StatusBadRequest,
	)

	ErrInvalidCheckIn = New(
		CodeInvalidInput,
		"checkIn must be a valid date in YYYY-MM-DD format",
		http.StatusBadRequest,
	)

	ErrInvalidCheckOut = New(
		CodeInvalidInput,
		"checkOut must be a valid date in YYYY-MM-DD format",
		http.StatusBadRequest,
	)

	ErrUnpairedDates = New(
		CodeInvalidInput,
		"Both checkIn and checkOut must be provided together",
		http.StatusBadRequest,
	)

	ErrCheckOutBeforeCheckIn = New(
		CodeInvalidInput,
		"checkOut must be later than checkIn",
		http.StatusBadRequest,
	)

	ErrInvalidGuests = New(
		CodeInvalidInput,
		"guests must be an integer between 1 and 100",
		http.StatusBadRequest,
	)

	ErrHotelNotFound = New(
		"HOTEL_NOT_FOUND",
		"Hotel result not found in cache",
		http.StatusNotFound,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
