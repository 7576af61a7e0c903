package services

import (
	"github.com/ldary/mediadex/internal/bridge"
	"github.com/ldary/mediadex/internal/cache"
	"github.com/ldary/mediadex/internal/config"
	"github.com/ldary/mediadex/internal/constants"
	"github.com/ldary/mediadex/internal/database"
	"github.com/ldary/mediadex/internal/fallback"
	"github.com/ldary/mediadex/pkg/logger"
)

// Container holds all application services for dependency injection.
type Container struct {
	Registry *Registry
	Bridge   *bridge.IdentifierBridge
	Fallback *fallback.Engine
	Cache    *cache.LRUCache
	DB       database.Database
	Logger   logger.Logger
}

// NewContainer wires the adapters from configuration. Every provider is
// registered; the configured default becomes active. Providers whose keys are
// missing are still registered so they can report their own configuration
// error on use.
func NewContainer(cfg *config.Config, db database.Database, log logger.Logger) (*Container, error) {
	memCache := cache.New(cfg.CacheSize, cfg.CacheTTL)
	br := bridge.New()
	fb := fallback.New(log)

	tmdb := NewTMDB(cfg.TMDBAPIKey, memCache, log)
	tmdb.SetDB(db)
	omdb := NewOMDB(cfg.OMDBAPIKey, br, fb, memCache, log)
	omdb.SetDB(db)
	offline := NewOffline(log)

	registry := NewRegistry()
	for _, provider := range []MediaProvider{tmdb, omdb, offline} {
		if err := registry.Register(provider); err != nil {
			return nil, err
		}
	}
	if err := registry.SetActive(cfg.DefaultProvider); err != nil {
		return nil, err
	}

	if cfg.DefaultProvider != constants.ProviderOffline {
		if err := cfg.ValidateProvider(cfg.DefaultProvider); err != nil {
			return nil, err
		}
	}

	return &Container{
		Registry: registry,
		Bridge:   br,
		Fallback: fb,
		Cache:    memCache,
		DB:       db,
		Logger:   log,
	}, nil
}
