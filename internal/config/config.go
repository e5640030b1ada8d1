package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит конфигурацию сервиса
type Config struct {
	Port            int
	MaxPrincipal    float64
	MaxAge          int
	MaxBalanceCap   float64
	OTELEndpoint    string
	OTELServiceName string
	LogLevel        string
	CatalogPath     string
	RedisAddr       string
	CacheTTL        time.Duration
	CacheSize       int
	RandomSeed      uint64
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	// Загружаем .env файл, если он существует (игнорируем ошибку)
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnvInt("PORT", 8000),
		MaxPrincipal:    getEnvFloat("MAX_PRINCIPAL", 1e9),
		MaxAge:          getEnvInt("MAX_AGE", 120),
		MaxBalanceCap:   getEnvFloat("MAX_BALANCE_CAP", 1e12),
		OTELEndpoint:    getEnvString("OTEL_ENDPOINT", ""),
		OTELServiceName: getEnvString("OTEL_SERVICE_NAME", "deposit-calculator"),
		LogLevel:        getEnvString("LOG_LEVEL", "INFO"),
		CatalogPath:     getEnvString("CATALOG_PATH", ""),
		RedisAddr:       getEnvString("REDIS_ADDR", ""),
		CacheTTL:        getEnvDuration("CACHE_TTL", 10*time.Minute),
		CacheSize:       getEnvInt("CACHE_SIZE", 10000),
		RandomSeed:      getEnvUint("RANDOM_SEED", 0),
	}

	return cfg, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvUint(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if uintValue, err := strconv.ParseUint(value, 10, 64); err == nil {
			return uintValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// BalanceCap возвращает максимальный баланс для защиты от переполнения
func (c *Config) BalanceCap() float64 {
	return c.MaxBalanceCap
}
