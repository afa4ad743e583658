package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Redis      RedisConfig
	Cache      CacheConfig
	Outscraper OutscraperConfig
	Log        LogConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	// SearchCacheTTL - горизонт жизни ответа поиска и отдельных результатов;
	// ценовые данные быстро устаревают
	SearchCacheTTL time.Duration
	// GeocodeCacheTTL - горизонт жизни результатов геокодирования
	GeocodeCacheTTL time.Duration
}

type OutscraperConfig struct {
	BaseURL        string
	APIKey         string
	RequestTimeout int // seconds

	AirbnbSearchPath       string
	HotelsSearchPath       string
	GoogleHotelsSearchPath string
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			SearchCacheTTL:  time.Duration(viper.GetInt("HOTEL_SEARCH_CACHE_TTL")) * time.Second,
			GeocodeCacheTTL: time.Duration(viper.GetInt("GEOCODE_CACHE_TTL")) * time.Second,
		},
		Outscraper: OutscraperConfig{
			BaseURL:                viper.GetString("OUTSCRAPER_BASE_URL"),
			APIKey:                 viper.GetString("OUTSCRAPER_API_KEY"),
			RequestTimeout:         viper.GetInt("OUTSCRAPER_REQUEST_TIMEOUT"),
			AirbnbSearchPath:       viper.GetString("OUTSCRAPER_AIRBNB_SEARCH_PATH"),
			HotelsSearchPath:       viper.GetString("OUTSCRAPER_HOTELS_SEARCH_PATH"),
			GoogleHotelsSearchPath: viper.GetString("OUTSCRAPER_GOOGLE_HOTELS_SEARCH_PATH"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	// Set default values if not provided
	if cfg.Cache.SearchCacheTTL == 0 {
		cfg.Cache.SearchCacheTTL = 6 * time.Hour
	}
	if cfg.Cache.GeocodeCacheTTL == 0 {
		cfg.Cache.GeocodeCacheTTL = 30 * 24 * time.Hour
	}
	if cfg.Outscraper.BaseURL == "" {
		cfg.Outscraper.BaseURL = "https://api.outscraper.cloud"
	}
	if cfg.Outscraper.RequestTimeout == 0 {
		cfg.Outscraper.RequestTimeout = 60
	}
	if cfg.Outscraper.AirbnbSearchPath == "" {
		cfg.Outscraper.AirbnbSearchPath = "/airbnb-search"
	}
	if cfg.Outscraper.HotelsSearchPath == "" {
		cfg.Outscraper.HotelsSearchPath = "/hotels-search"
	}
	if cfg.Outscraper.GoogleHotelsSearchPath == "" {
		cfg.Outscraper.GoogleHotelsSearchPath = "/google-hotels-search"
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
