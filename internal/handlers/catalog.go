package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ldary/mediadex/internal/models"
)

// Catalog endpoints degrade rather than fail: a provider error yields an
// empty page with status 200 so the app's lists render, just empty.

func (h *Handler) handleTrending(c *gin.Context) {
	p, ok := h.provider(c)
	if !ok {
		return
	}
	mt, ok := mediaType(c)
	if !ok {
		return
	}
	window := c.DefaultQuery("window", "week")
	page := queryInt(c, "page", 1)

	result, err := p.GetTrending(c.Request.Context(), mt, window, page)
	if err != nil {
		h.services.Logger.Errorf("[CatalogHandler] trending failed: %v", err)
		c.JSON(http.StatusOK, models.EmptyPage[models.TrendingItem](page))
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) handleSearch(c *gin.Context) {
	p, ok := h.provider(c)
	if !ok {
		return
	}
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter is required"})
		return
	}
	page := queryInt(c, "page", 1)

	result, err := p.SearchMulti(c.Request.Context(), query, page)
	if err != nil {
		h.services.Logger.Errorf("[CatalogHandler] search failed: %v", err)
		c.JSON(http.StatusOK, models.EmptyPage[models.MediaItem](page))
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) handleDiscover(c *gin.Context) {
	p, ok := h.provider(c)
	if !ok {
		return
	}
	mt, ok := mediaType(c)
	if !ok {
		return
	}
	country := c.Query("country")
	if country == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "country parameter is required"})
		return
	}
	opts := models.DiscoverOptions{
		Page:    queryInt(c, "page", 1),
		Year:    queryInt(c, "year", 0),
		GenreID: queryInt(c, "genre", 0),
		SortBy:  c.Query("sort"),
	}

	result, err := p.DiscoverByCountry(c.Request.Context(), mt, country, opts)
	if err != nil {
		h.services.Logger.Errorf("[CatalogHandler] discover failed: %v", err)
		c.JSON(http.StatusOK, models.EmptyPage[models.MediaItem](opts.Page))
		return
	}
	c.JSON(http.StatusOK, result)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return v
}
