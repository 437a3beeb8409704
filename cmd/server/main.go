package main

import (
	"log"
	"net/http"

	_ "agenda/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"agenda/internal/cache"
	"agenda/internal/config"
	"agenda/internal/db"
	"agenda/internal/handler"
	"agenda/internal/logger"
	"agenda/internal/model"
	"agenda/internal/repository"
	"agenda/internal/router"
	"agenda/internal/service"
)

// @title Agenda Calendar API
// @version 1.0
// @description Calendar event API with per-user scoping, recurrence expansion on read, and iCalendar import/export.
// @host localhost:8000
// @BasePath /
// @schemes http
func main() {
	cfg := config.Load()

	zlog, err := logger.New()
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer zlog.Sync()

	e := echo.New()
	e.Use(middleware.RequestID())

	userRepo, eventRepo, err := buildRepositories(cfg)
	if err != nil {
		zlog.Fatal("store init", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	zlog.Info("record store ready", zap.String("driver", cfg.StoreDriver))

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize services
	userService := service.NewUserService(userRepo, cacheClient)
	eventService := service.NewEventService(userService, eventRepo, cacheClient)
	feedService := service.NewFeedService(userService, eventRepo, cacheClient)

	// Initialize handlers
	eventHandler := handler.NewEventHandler(eventService)
	feedHandler := handler.NewFeedHandler(feedService)

	// Register routes
	router.Register(e, eventHandler, feedHandler)

	swaggerHost := cfg.SwaggerHost
	if swaggerHost == "" {
		swaggerHost = "localhost:" + cfg.ServerPort
	}
	zlog.Info("swagger ui", zap.String("url", "http://"+swaggerHost+"/swagger/index.html"))

	addr := ":" + cfg.ServerPort
	zlog.Info("server starting", zap.String("addr", addr))
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		zlog.Fatal("server start", zap.Error(err))
	}
}

// buildRepositories connects the configured store driver and returns the two
// record collections behind their repository interfaces.
func buildRepositories(cfg *config.Config) (repository.UserRepository, repository.EventRepository, error) {
	switch cfg.StoreDriver {
	case config.DriverSurreal:
		sdb, err := db.NewSurreal(cfg.SurrealURL, cfg.SurrealUser, cfg.SurrealPass, cfg.SurrealNS, cfg.SurrealDB)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewSurrealUserRepository(sdb), repository.NewSurrealEventRepository(sdb), nil
	default:
		gormDB, err := db.NewMySQL(cfg.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := gormDB.AutoMigrate(&model.User{}, &model.Event{}); err != nil {
			return nil, nil, err
		}
		return repository.NewUserRepository(gormDB), repository.NewEventRepository(gormDB), nil
	}
}
