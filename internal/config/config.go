package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"trainmice/internal/cache"
	"trainmice/internal/external"
	"trainmice/internal/messaging"
)

// Config содержит конфигурацию приложения
type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	LogFormat      string
	RequestTimeout time.Duration

	// AdminTokens are the bearer tokens accepted on the gateway API.
	AdminTokens []string

	// SweepInterval is how often the consumers process triggers the
	// expired-event completion batch on the core API.
	SweepInterval time.Duration

	Core   external.CoreConfig
	NATS   messaging.Config
	Valkey cache.Config
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8082"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SEC", 30)) * time.Second,

		AdminTokens: getEnvList("ADMIN_TOKENS", nil),

		SweepInterval: time.Duration(getEnvInt("EVENT_SWEEP_INTERVAL_MIN", 30)) * time.Minute,

		Core: external.CoreConfig{
			BaseURL: getEnv("CORE_API_URL", "http://localhost:8080"),
			Token:   getEnv("CORE_API_TOKEN", ""),
			Timeout: time.Duration(getEnvInt("CORE_API_TIMEOUT_SEC", 30)) * time.Second,
		},

		NATS: messaging.Config{
			URL:       getEnv("NATS_URL", "nats://localhost:4222"),
			ClusterID: getEnv("NATS_CLUSTER_ID", "trainmice"),
			ClientID:  getEnv("NATS_CLIENT_ID", "trainmice-admin-api"),
		},

		Valkey: cache.Config{
			Addr:       getEnv("VALKEY_ADDR", "localhost:6379"),
			Password:   getEnv("VALKEY_PASSWORD", ""),
			MonthTTL:   time.Duration(getEnvInt("CALENDAR_CACHE_TTL_SEC", 60)) * time.Second,
			SessionTTL: time.Duration(getEnvInt("SESSION_TTL_MIN", 15)) * time.Minute,
		},
	}
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает целочисленное значение переменной окружения
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvList разбирает список значений, разделенных запятыми
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
