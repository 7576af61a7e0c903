package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apperrors "github.com/ldary/mediadex/internal/errors"
	"github.com/ldary/mediadex/internal/models"
	"github.com/ldary/mediadex/internal/services"
)

// Meta endpoints are per-title, so unlike catalogs they surface failures:
// a missing title is 404 and a provider failure is 502.

func (h *Handler) handleDetails(c *gin.Context) {
	p, mt, id, ok := h.metaParams(c)
	if !ok {
		return
	}

	details, err := p.GetDetails(c.Request.Context(), mt, id)
	if err != nil {
		h.metaError(c, "details", err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *Handler) handleCredits(c *gin.Context) {
	p, mt, id, ok := h.metaParams(c)
	if !ok {
		return
	}

	cast, err := p.GetCredits(c.Request.Context(), mt, id)
	if err != nil {
		h.metaError(c, "credits", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cast": cast})
}

func (h *Handler) handleWatchProviders(c *gin.Context) {
	p, mt, id, ok := h.metaParams(c)
	if !ok {
		return
	}
	region := c.DefaultQuery("region", "US")

	providers, err := p.GetWatchProviders(c.Request.Context(), mt, id, region)
	if err != nil {
		h.metaError(c, "watch providers", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"region": region, "providers": providers})
}

func (h *Handler) handleTrailer(c *gin.Context) {
	p, mt, id, ok := h.metaParams(c)
	if !ok {
		return
	}

	key, err := p.GetTrailerKey(c.Request.Context(), mt, id)
	if err != nil {
		h.metaError(c, "trailer", err)
		return
	}
	if key == "" {
		c.JSON(http.StatusOK, gin.H{"trailerKey": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trailerKey": key})
}

func (h *Handler) handleRecommendations(c *gin.Context) {
	p, mt, id, ok := h.metaParams(c)
	if !ok {
		return
	}
	page := queryInt(c, "page", 1)

	result, err := p.GetRecommendations(c.Request.Context(), mt, id, page)
	if err != nil {
		h.metaError(c, "recommendations", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) metaParams(c *gin.Context) (services.MediaProvider, models.MediaType, int, bool) {
	prov, ok := h.provider(c)
	if !ok {
		return nil, "", 0, false
	}
	mt, ok := mediaType(c)
	if !ok {
		return nil, "", 0, false
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a non-negative integer"})
		return nil, "", 0, false
	}
	return prov, mt, id, true
}

func (h *Handler) metaError(c *gin.Context, operation string, err error) {
	if apperrors.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	h.services.Logger.Errorf("[MetaHandler] %s failed: %v", operation, err)
	c.JSON(http.StatusBadGateway, gin.H{"error": "provider request failed"})
}
