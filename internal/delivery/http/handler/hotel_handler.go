package handler

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hotel-search-service/internal/pkg/errors"
	"github.com/hotel-search-service/internal/pkg/utils"
	"github.com/hotel-search-service/internal/pkg/validator"
	"github.com/hotel-search-service/internal/usecase"
	"github.com/hotel-search-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// HotelHandler - обработчик запросов поиска отелей
type HotelHandler struct {
	hotelSearchUC *usecase.HotelSearchUseCase
	logger        *zap.Logger
}

// NewHotelHandler - создание нового HotelHandler
func NewHotelHandler(hotelSearchUC *usecase.HotelSearchUseCase, logger *zap.Logger) *HotelHandler {
	return &HotelHandler{
		hotelSearchUC: hotelSearchUC,
		logger:        logger,
	}
}

// Search godoc
// @Summary Поиск отелей по нескольким локациям
// @Description Параллельно опрашивает выбранных провайдеров (Airbnb, Hotels.com, Google Hotels), обогащает результаты координатами, фильтрует выбросы за пределами области поиска, ранжирует и схлопывает дубликаты. Отказ части провайдеров не прерывает ответ и отражается в warnings.
// @Tags Hotels
// @Accept json
// @Produce json
// @Param request body dto.HotelSearchRequest true "Параметры поиска"
// @Success 200 {object} utils.SuccessResponse{data=dto.HotelSearchResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/hotels/search [post]
func (h *HotelHandler) Search(c *fiber.Ctx) error {
	var req dto.HotelSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage(err.Error()))
	}

	start := time.Now()

	result, err := h.hotelSearchUC.SearchHotels(c.Context(), req.ToDomain())
	if err != nil {
		return utils.SendError(c, err)
	}

	response := dto.FromSearchResponse(result)

	return utils.SendSuccess(c, response, &utils.Meta{
		Total:    response.Total,
		Warnings: len(response.Warnings),
		TimeMSec: float64(time.Since(start).Microseconds()) / 1000.0,
	})
}

// GetByCanonicalID godoc
// @Summary Получение результата поиска по каноническому id
// @Description Возвращает ранее найденный отель из кеша по id вида {provider}:{slug}. Результаты живут столько же, сколько кеш поиска; истекший или чужой id дает 404.
// @Tags Hotels
// @Produce json
// @Param canonical_id path string true "Канонический id результата, например google_hotels:chij..."
// @Success 200 {object} utils.SuccessResponse{data=domain.HotelResult}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/hotels/{canonical_id} [get]
func (h *HotelHandler) GetByCanonicalID(c *fiber.Ctx) error {
	canonicalID := c.Params("canonical_id")
	if decoded, err := url.PathUnescape(canonicalID); err == nil {
		canonicalID = decoded
	}

	result, err := h.hotelSearchUC.GetCachedResult(c.Context(), canonicalID)
	if err != nil {
		h.logger.Error("Failed to read cached hotel result",
			zap.String("canonical_id", canonicalID), zap.Error(err))
		return utils.SendError(c, err)
	}
	if result == nil {
		return utils.SendError(c, errors.ErrHotelNotFound)
	}

	return utils.SendSuccess(c, result, nil)
}
