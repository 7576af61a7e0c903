// Package handlers implements the HTTP API consumed by the mobile app.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ldary/mediadex/internal/config"
	"github.com/ldary/mediadex/internal/models"
	"github.com/ldary/mediadex/internal/services"
)

// Handler handles HTTP requests for the media API.
type Handler struct {
	services *services.Container
	config   *config.Config
}

// New creates a new Handler with the provided services and configuration.
func New(services *services.Container, config *config.Config) *Handler {
	return &Handler{
		services: services,
		config:   config,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.handleHealth)

	api := r.Group("/api")
	{
		api.GET("/providers", h.handleProviders)
		api.POST("/providers/:name/activate", h.handleActivateProvider)

		api.GET("/search", h.handleSearch)

		api.GET("/:type/trending", h.handleTrending)
		api.GET("/:type/discover", h.handleDiscover)

		api.GET("/:type/:id", h.handleDetails)
		api.GET("/:type/:id/credits", h.handleCredits)
		api.GET("/:type/:id/watch-providers", h.handleWatchProviders)
		api.GET("/:type/:id/trailer", h.handleTrailer)
		api.GET("/:type/:id/recommendations", h.handleRecommendations)
	}
}

func (h *Handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"provider": h.services.Registry.ActiveName(),
	})
}

// handleProviders lists the registered adapters and which one is active.
func (h *Handler) handleProviders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"providers": h.services.Registry.List(),
		"active":    h.services.Registry.ActiveName(),
	})
}

// handleActivateProvider switches the active adapter after checking the
// provider's configuration, so a switch to an unconfigured provider fails
// here instead of on the next content request.
func (h *Handler) handleActivateProvider(c *gin.Context) {
	name := c.Param("name")
	if err := h.config.ValidateProvider(name); err != nil {
		h.services.Logger.Warnf("[ProviderHandler] activation of %s rejected: %v", name, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.services.Registry.SetActive(name); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	h.services.Logger.Infof("[ProviderHandler] active provider switched to %s", name)
	c.JSON(http.StatusOK, gin.H{"active": name})
}

// provider resolves the adapter serving this request: the active one, or the
// one named by the provider query parameter.
func (h *Handler) provider(c *gin.Context) (services.MediaProvider, bool) {
	name := c.Query("provider")
	if name == "" {
		return h.services.Registry.Active(), true
	}
	p, ok := h.services.Registry.Get(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown provider: " + name})
		return nil, false
	}
	return p, true
}

// mediaType parses the :type path segment.
func mediaType(c *gin.Context) (models.MediaType, bool) {
	switch c.Param("type") {
	case "movie":
		return models.MediaTypeMovie, true
	case "tv":
		return models.MediaTypeTV, true
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be movie or tv"})
		return "", false
	}
}
