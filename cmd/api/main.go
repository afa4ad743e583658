package main

// @title Hotel Search Service API
// @version 1.0.0
// @description Сервис агрегации поиска отелей. Один запрос параллельно опрашивает несколько провайдеров (Airbnb, Hotels.com, Google Hotels) через Outscraper, обогащает результаты координатами через геокодирование, фильтрует выбросы за пределами области поиска, ранжирует, схлопывает дубликаты и кеширует ответы в Redis.
// @description
// @description Основные возможности:
// @description - Поиск отелей по нескольким локациям за один запрос
// @description - Частичные результаты: отказ провайдера превращается в warning, а не в ошибку
// @description - Обогащение координат с цепочкой fallback (exact -> geocoded -> centroid)
// @description - Получение закешированного результата по каноническому id

// @contact.name API Support
// @contact.email support@hotel-search-service.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/hotel-search-service/docs"
	"github.com/hotel-search-service/internal/config"
	httpDelivery "github.com/hotel-search-service/internal/delivery/http"
	"github.com/hotel-search-service/internal/delivery/http/handler"
	"github.com/hotel-search-service/internal/domain"
	"github.com/hotel-search-service/internal/domain/repository"
	"github.com/hotel-search-service/internal/infrastructure/outscraper"
	"github.com/hotel-search-service/internal/infrastructure/provider"
	"github.com/hotel-search-service/internal/pkg/logger"
	"github.com/hotel-search-service/internal/repository/cache"
	"github.com/hotel-search-service/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Hotel Search Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 4. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 5. Initialize Repositories
	cacheRepo := cache.NewCacheRepository(redisClient)

	log.Info("Repositories initialized")

	// 6. Initialize Outscraper client, geocoder and providers
	outscraperClient := outscraper.NewClient(&cfg.Outscraper, log)
	geocoder := outscraper.NewGeocoder(outscraperClient, cacheRepo, log, cfg.Cache.GeocodeCacheTTL)

	providers := map[domain.ProviderID]repository.HotelProvider{
		domain.ProviderAirbnb:       provider.NewAirbnbProvider(outscraperClient, cfg.Outscraper.AirbnbSearchPath, log),
		domain.ProviderHotelsCom:    provider.NewHotelsComProvider(outscraperClient, cfg.Outscraper.HotelsSearchPath, log),
		domain.ProviderGoogleHotels: provider.NewGoogleHotelsProvider(outscraperClient, cfg.Outscraper.GoogleHotelsSearchPath, log),
	}

	log.Info("Hotel providers initialized", zap.Int("count", len(providers)))

	// 7. Initialize Use Cases
	hotelSearchUC := usecase.NewHotelSearchUseCase(
		providers,
		cacheRepo,
		geocoder,
		log,
		cfg.Cache.SearchCacheTTL,
		usecase.DefaultScopeRadii(),
	)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	hotelHandler := handler.NewHotelHandler(hotelSearchUC, log)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(cfg, log, hotelHandler)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
