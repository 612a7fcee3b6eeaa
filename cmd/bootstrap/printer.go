package bootstrap

import (
	"github.com/code-100-precent/lingrx/pkg/config"
	"github.com/code-100-precent/lingrx/pkg/logger"
	"go.uber.org/zap"
)

// LogConfigInfo Print global configuration information
func LogConfigInfo() {
	cfg := config.GlobalConfig
	if cfg == nil {
		return
	}
	logger.Info("system config load finished")
	logger.Info("base config",
		zap.String("mode", cfg.Mode),
		zap.String("addr", cfg.Addr),
		zap.String("api_prefix", cfg.APIPrefix),
		zap.String("db_driver", cfg.DBDriver),
	)

	logger.Info("log config",
		zap.String("log_level", cfg.Log.Level),
		zap.String("log_filename", cfg.Log.Filename),
		zap.Int("log_max_size", cfg.Log.MaxSize),
		zap.Int("log_max_age", cfg.Log.MaxAge),
		zap.Int("log_max_backups", cfg.Log.MaxBackups),
	)

	logger.Info("cache config",
		zap.String("cache_type", cfg.Cache.Type),
		zap.Int("cache_max_size", cfg.Cache.Local.MaxSize),
		zap.Duration("cache_default_expiration", cfg.Cache.Local.DefaultExpiration),
	)

	logger.Info("rx config",
		zap.String("rx_implementation", cfg.Rx.Implementation),
		zap.Bool("rx_allow_fallback", cfg.Rx.AllowFallback),
		zap.Bool("rx_log_dropped", cfg.Rx.LogDropped),
	)
}
