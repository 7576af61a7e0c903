package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ldary/mediadex/internal/config"
	"github.com/ldary/mediadex/internal/models"
	"github.com/ldary/mediadex/internal/services"
	"github.com/ldary/mediadex/pkg/logger"
)

// failingProvider errors on every operation, for exercising the handlers'
// degradation paths.
type failingProvider struct{}

var errProviderDown = errors.New("provider down")

func (f *failingProvider) Name() string { return "broken" }
func (f *failingProvider) GetTrending(ctx context.Context, mediaType models.MediaType, window string, page int) (*models.Paginated[models.TrendingItem], error) {
	return nil, errProviderDown
}
func (f *failingProvider) SearchMulti(ctx context.Context, query string, page int) (*models.Paginated[models.MediaItem], error) {
	return nil, errProviderDown
}
func (f *failingProvider) GetDetails(ctx context.Context, mediaType models.MediaType, id int) (*models.MediaDetails, error) {
	return nil, errProviderDown
}
func (f *failingProvider) GetCredits(ctx context.Context, mediaType models.MediaType, id int) ([]models.CastMember, error) {
	return nil, errProviderDown
}
func (f *failingProvider) GetWatchProviders(ctx context.Context, mediaType models.MediaType, id int, region string) ([]models.StreamingProvider, error) {
	return nil, errProviderDown
}
func (f *failingProvider) GetTrailerKey(ctx context.Context, mediaType models.MediaType, id int) (string, error) {
	return "", errProviderDown
}
func (f *failingProvider) GetRecommendations(ctx context.Context, mediaType models.MediaType, id, page int) (*models.Paginated[models.MediaItem], error) {
	return nil, errProviderDown
}
func (f *failingProvider) DiscoverByCountry(ctx context.Context, mediaType models.MediaType, country string, opts models.DiscoverOptions) (*models.Paginated[models.MediaItem], error) {
	return nil, errProviderDown
}
func (f *failingProvider) ImageURL(path, size string) string { return path }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewWithWriter(io.Discard, logger.LevelError)
	registry := services.NewRegistry()
	require.NoError(t, registry.Register(services.NewOffline(log)))
	require.NoError(t, registry.Register(&failingProvider{}))
	require.NoError(t, registry.SetActive("offline"))

	container := &services.Container{Registry: registry, Logger: log}
	cfg := &config.Config{TMDBAPIKey: "valid-key-123", DefaultProvider: "offline"}

	router := gin.New()
	New(container, cfg).RegisterRoutes(router)
	return router
}

func doRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "offline", body["provider"])
}

func TestProvidersList(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/providers")
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Providers []string `json:"providers"`
		Active    string   `json:"active"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"broken", "offline"}, body.Providers)
	assert.Equal(t, "offline", body.Active)
}

func TestActivateProvider(t *testing.T) {
	router := newTestRouter(t)

	// OMDb has no key configured, so activation is rejected up front.
	w := doRequest(router, http.MethodPost, "/api/providers/omdb/activate")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodPost, "/api/providers/netflix/activate")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodPost, "/api/providers/offline/activate")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTrending(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/movie/trending?page=1")
	assert.Equal(t, http.StatusOK, w.Code)

	var body models.Paginated[models.TrendingItem]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Items)
	assert.Equal(t, 1, body.Items[0].Rank)
}

func TestTrendingRejectsBadType(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/podcast/trending")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrendingDegradesOnProviderFailure(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/movie/trending?provider=broken")
	assert.Equal(t, http.StatusOK, w.Code)

	var body models.Paginated[models.TrendingItem]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body.Items)
	assert.NotNil(t, body.Items)
}

func TestSearchRequiresQuery(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/search")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodGet, "/api/search?query=harbor")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSearchUnknownProviderParam(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/search?query=x&provider=netflix")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDetails(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/movie/9001")
	assert.Equal(t, http.StatusOK, w.Code)

	var details models.MediaDetails
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &details))
	assert.Equal(t, 9001, details.ID)
	assert.NotEmpty(t, details.Title)
}

func TestDetailsNotFound(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/movie/123456789")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDetailsRejectsBadID(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/movie/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDetailsProviderFailure(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/movie/9001?provider=broken")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestCredits(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/tv/9101/credits")
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Cast []models.CastMember `json:"cast"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Cast)
}

func TestWatchProviders(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/movie/9001/watch-providers?region=GB")
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Region    string                     `json:"region"`
		Providers []models.StreamingProvider `json:"providers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "GB", body.Region)
	assert.NotNil(t, body.Providers)
}

func TestTrailerNullWhenAbsent(t *testing.T) {
	router := newTestRouter(t)

	// 9003 has no trailer in the offline catalog.
	w := doRequest(router, http.MethodGet, "/api/movie/9003/trailer")
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]*string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	value, present := body["trailerKey"]
	require.True(t, present)
	assert.Nil(t, value)
}

func TestDiscoverRequiresCountry(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/movie/discover")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodGet, "/api/movie/discover?country=US")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecommendations(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/movie/9001/recommendations")
	assert.Equal(t, http.StatusOK, w.Code)

	var body models.Paginated[models.MediaItem]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Items, 2)
}
