package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Logger - middleware для логирования HTTP запросов. Каждому запросу
// присваивается request id, который возвращается клиенту в заголовке
// X-Request-ID и попадает во все записи лога этого запроса.
func Logger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("X-Request-ID", requestID)
		c.Locals("request_id", requestID)

		start := time.Now()
		err := c.Next()
		elapsed := time.Since(start)

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", elapsed),
			zap.String("ip", c.IP()),
		}

		if err != nil {
			fields = append(fields, zap.Error(err))
			logger.Error("HTTP request", fields...)
			return err
		}

		if c.Response().StatusCode() >= 500 {
			logger.Error("HTTP request", fields...)
		} else {
			logger.Info("HTTP request", fields...)
		}

		return nil
	}
}
