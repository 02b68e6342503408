package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"lab-inventory/internal/integrations/inventoryapi"
	"lab-inventory/internal/repositories"
	"lab-inventory/internal/routes"
	"lab-inventory/pkg/config"
	"lab-inventory/pkg/customvalidator"
	apperrors "lab-inventory/pkg/errors"
	applogger "lab-inventory/pkg/logger"
	appmiddleware "lab-inventory/pkg/middleware"
	"lab-inventory/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// 1. config and logger
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log.Level, cfg.Log.File)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e := echo.New()
	e.HideBanner = true

	// 2. middleware
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("panic recovered",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Error interno del servidor", err, nil)
				_ = utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(middleware.RequestID())
	e.Use(appmiddleware.RequestLogger(logger))
	e.Use(appmiddleware.InjectLogger(logger))

	// 3. validator
	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("failed to register validation rules", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	// 4. view state store
	var cache repositories.CacheRepositoryInterface
	switch cfg.Session.Store {
	case "redis":
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		if _, err := redisClient.Ping(ctx).Result(); err != nil {
			logger.Fatal("redis is not reachable", zap.Error(err), zap.String("address", cfg.Redis.Address))
		}
		cache = repositories.NewRedisCacheRepository(redisClient)
	default:
		cache = repositories.NewMemoryCacheRepository()
	}
	logger.Info("view state store ready", zap.String("store", cfg.Session.Store))

	// 5. inventory API and routes
	api := inventoryapi.New(cfg.Inventory.BaseURL, cfg.Inventory.Timeout, logger)
	loggers := &routes.Loggers{
		Main:       logger,
		Laboratory: logger.Named("laboratory"),
		Report:     logger.Named("report"),
	}
	if err := routes.InitRouter(ctx, e, api, cache, loggers, cfg); err != nil {
		logger.Fatal("failed to build routes", zap.Error(err))
	}

	// 6. serve until a signal arrives
	go func() {
		logger.Info("server started", zap.String("port", cfg.Server.Port), zap.String("inventory_api", cfg.Inventory.BaseURL))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
