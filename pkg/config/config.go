package config

import (
	"log"
	"os"
	"time"

	"github.com/code-100-precent/lingrx/pkg/cache"
	"github.com/code-100-precent/lingrx/pkg/constants"
	"github.com/code-100-precent/lingrx/pkg/logger"
	"github.com/code-100-precent/lingrx/pkg/utils"
)

// Config represents the system configuration
type Config struct {
	Mode      string `env:"MODE"`
	Addr      string `env:"ADDR"`
	APIPrefix string `env:"API_PREFIX"`
	DBDriver  string `env:"DB_DRIVER"`
	DSN       string `env:"DSN"`
	Log       logger.LogConfig
	Cache     cache.Config
	Rx        RxConfig
}

// RxConfig selects the reactive implementation handed to consumers
type RxConfig struct {
	// Implementation is the registered name to use; empty means builtin
	Implementation string `env:"RX_IMPLEMENTATION"`
	// AllowFallback resolves an unknown Implementation to builtin instead of failing
	AllowFallback bool `env:"RX_ALLOW_FALLBACK"`
	// LogDropped routes errors and values nobody receives to the logger
	LogDropped bool `env:"RX_LOG_DROPPED"`
	// Heartbeat is a cron spec for keepalive values on the entry stream; empty disables it
	Heartbeat string `env:"RX_HEARTBEAT"`
}

// GlobalConfig is the global configuration instance
var GlobalConfig *Config

// Load loads configuration from environment variables
func Load() error {
	env := os.Getenv(constants.ENV_APP_ENV)
	if err := utils.LoadEnv(env); err != nil {
		log.Printf("Note: .env file not found or failed to load: %v (using default values)", err)
	}

	// CACHE_* is read through the current cache, then every later lookup goes
	// through the backend it selects.
	cacheConfig := loadCacheConfig()
	utils.InitEnvCache(cache.New(cacheConfig))

	GlobalConfig = &Config{
		Mode:      getStringOrDefault(constants.ENV_MODE, "development"),
		Addr:      getStringOrDefault(constants.ENV_ADDR, ":7072"),
		APIPrefix: getStringOrDefault("API_PREFIX", "/api"),
		DBDriver:  getStringOrDefault(constants.ENV_DB_DRIVER, "sqlite"),
		DSN:       getStringOrDefault(constants.ENV_DSN, "./lingrx.db"),
		Log: logger.LogConfig{
			Level:      getStringOrDefault("LOG_LEVEL", "info"),
			Filename:   getStringOrDefault("LOG_FILENAME", "./logs/app.log"),
			MaxSize:    getIntOrDefault("LOG_MAX_SIZE", 100),
			MaxAge:     getIntOrDefault("LOG_MAX_AGE", 30),
			MaxBackups: getIntOrDefault("LOG_MAX_BACKUPS", 5),
			Daily:      getBoolOrDefault("LOG_DAILY", true),
		},
		Cache: cacheConfig,
		Rx: RxConfig{
			Implementation: getStringOrDefault(constants.ENV_RX_IMPLEMENTATION, constants.BuiltinImplementation),
			AllowFallback:  getBoolOrDefault(constants.ENV_RX_ALLOW_FALLBACK, true),
			LogDropped:     getBoolOrDefault(constants.ENV_RX_LOG_DROPPED, true),
			Heartbeat:      utils.GetEnv(constants.ENV_RX_HEARTBEAT),
		},
	}
	return nil
}

// getStringOrDefault gets environment variable value, returns default if empty
func getStringOrDefault(key, defaultValue string) string {
	value := utils.GetEnv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getBoolOrDefault gets boolean environment variable value, returns default if empty
func getBoolOrDefault(key string, defaultValue bool) bool {
	value := utils.GetEnv(key)
	if value == "" {
		return defaultValue
	}
	return utils.GetBoolEnv(key)
}

// getIntOrDefault gets integer environment variable value, returns default if zero
func getIntOrDefault(key string, defaultValue int) int {
	value := utils.GetIntEnv(key)
	if value == 0 {
		return defaultValue
	}
	return int(value)
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(utils.GetEnv(key))
	if err != nil {
		return defaultValue
	}
	return d
}

func loadCacheConfig() cache.Config {
	return cache.Config{
		Type: getStringOrDefault("CACHE_TYPE", cache.TypeLRU),
		Local: cache.LocalConfig{
			MaxSize:           getIntOrDefault("LOCAL_CACHE_MAX_SIZE", 1000),
			DefaultExpiration: getDurationOrDefault("LOCAL_CACHE_DEFAULT_EXPIRATION", 5*time.Minute),
			CleanupInterval:   getDurationOrDefault("LOCAL_CACHE_CLEANUP_INTERVAL", 10*time.Minute),
		},
	}
}
