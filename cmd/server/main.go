package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/code-100-precent/lingrx/cmd/bootstrap"
	"github.com/code-100-precent/lingrx/internal/handlers"
	"github.com/code-100-precent/lingrx/pkg/config"
	"github.com/code-100-precent/lingrx/pkg/logger"
	"github.com/code-100-precent/lingrx/pkg/middleware"
	"github.com/code-100-precent/lingrx/pkg/reactive/rxcron"
	"github.com/code-100-precent/lingrx/pkg/rxprovider"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LingRxApp struct {
	db       *gorm.DB
	handlers *handlers.Handlers
}

func NewLingRxApp(impl rxprovider.Implementation, db *gorm.DB) *LingRxApp {
	return &LingRxApp{
		db:       db,
		handlers: handlers.NewHandlers(impl, db, logger.Named("handlers")),
	}
}

func (app *LingRxApp) RegisterRoutes(r *gin.Engine) {
	app.handlers.Register(r, config.GlobalConfig.APIPrefix)
}

// Close ends open entry streams so Shutdown does not wait on them
func (app *LingRxApp) Close() {
	app.handlers.Close()
}

func main() {
	// 1. Parse Command Line Parameters
	mode := flag.String("mode", "", "running environment (development, test, production)")
	initSQL := flag.String("init-sql", "", "path to database init .sql script (optional)")
	addr := flag.String("addr", "", "HTTP serve address, overrides ADDR")
	flag.Parse()

	// 2. Set Environment Variables
	if *mode != "" {
		os.Setenv("APP_ENV", *mode)
	}

	// 3. Load Global Configuration
	if err := config.Load(); err != nil {
		panic("config load failed: " + err.Error())
	}
	if *addr != "" {
		config.GlobalConfig.Addr = *addr
	}

	// 4. Load Log Configuration
	if err := logger.Init(&config.GlobalConfig.Log, config.GlobalConfig.Mode); err != nil {
		panic(err)
	}
	defer logger.Sync()

	// 5. Print Configuration
	bootstrap.LogConfigInfo()

	// 6. Choose the reactive implementation
	registry, err := rxprovider.NewRegistry(logger.Named("rxprovider"))
	if err != nil {
		logger.Fatal("rx registry failed", zap.Error(err))
	}
	impl, err := registry.Resolve(config.GlobalConfig.Rx)
	if err != nil {
		logger.Fatal("rx implementation unavailable", zap.Error(err))
	}
	if config.GlobalConfig.Rx.LogDropped {
		rxprovider.InstallDropLogging(logger.Lg)
	}
	logger.Info("rx implementation selected", zap.String("name", impl.Name()))

	// 7. Load Data Source
	db, err := bootstrap.SetupDatabase(os.Stdout, &bootstrap.Options{
		InitSQLPath: *initSQL,
		AutoMigrate: true,
		SeedNonProd: config.GlobalConfig.Mode != "production",
	})
	if err != nil {
		logger.Error("database setup failed", zap.Error(err))
		return
	}

	app := NewLingRxApp(impl, db)

	scheduler := rxcron.NewScheduler()
	if spec := config.GlobalConfig.Rx.Heartbeat; spec != "" {
		keepAlive := app.handlers.KeepAlive(scheduler.Ticks(spec))
		defer keepAlive.Dispose()
		scheduler.Start()
		defer scheduler.Stop()
	}

	// 8. Initialize Gin Routing
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Disable automatic redirects to avoid CORS issues caused by 307 redirects
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware(zap.L()))
	r.Use(middleware.RecoveryMiddleware(zap.L()))

	app.RegisterRoutes(r)

	// 9. Start HTTP Server. WriteTimeout stays zero: SSE responses are long lived.
	httpServer := &http.Server{
		Addr:              config.GlobalConfig.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server run failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	app.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
}
