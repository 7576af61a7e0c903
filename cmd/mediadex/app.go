package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/ldary/mediadex/internal/config"
	"github.com/ldary/mediadex/internal/database"
	"github.com/ldary/mediadex/internal/handlers"
	"github.com/ldary/mediadex/internal/middleware"
	"github.com/ldary/mediadex/internal/services"
	"github.com/ldary/mediadex/pkg/logger"
)

// app holds the wired application. Everything is constructed here and passed
// down; no package-level state.
type app struct {
	cfg       *config.Config
	log       logger.Logger
	db        database.Database
	container *services.Container
	router    *gin.Engine
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.NewWithWriter(os.Stdout, logger.ParseLevel(cfg.LogLevel))

	db, err := database.NewBolt(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	log.Infof("[App] details cache database opened at %s", cfg.DatabasePath)

	container, err := services.NewContainer(cfg, db, log)
	if err != nil {
		db.Close()
		return nil, err
	}
	log.Infof("[App] providers registered: %v, active: %s",
		container.Registry.List(), container.Registry.ActiveName())

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(log))
	router.Use(middleware.CORS())
	router.Use(middleware.Gzip())

	handlers.New(container, cfg).RegisterRoutes(router)

	return &app{
		cfg:       cfg,
		log:       log,
		db:        db,
		container: container,
		router:    router,
	}, nil
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		a.log.Errorf("[App] failed to close database: %v", err)
	}
}
