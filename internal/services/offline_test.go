package services

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/ldary/mediadex/internal/errors"
	"github.com/ldary/mediadex/internal/models"
)

func TestOfflineTrendingRanksByRating(t *testing.T) {
	svc := NewOffline(testLogger())

	result, err := svc.GetTrending(context.Background(), models.MediaTypeMovie, "week", 1)
	require.NoError(t, err)

	require.NotEmpty(t, result.Items)
	for i, item := range result.Items {
		assert.Equal(t, i+1, item.Rank)
		assert.Equal(t, models.MediaTypeMovie, item.MediaType)
		if i > 0 {
			assert.GreaterOrEqual(t, *result.Items[i-1].VoteAverage, *item.VoteAverage)
		}
	}
}

func TestOfflineTrendingIsDeterministic(t *testing.T) {
	svc := NewOffline(testLogger())

	first, err := svc.GetTrending(context.Background(), models.MediaTypeTV, "week", 1)
	require.NoError(t, err)
	second, err := svc.GetTrending(context.Background(), models.MediaTypeTV, "week", 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestOfflineSearchMulti(t *testing.T) {
	svc := NewOffline(testLogger())

	result, err := svc.SearchMulti(context.Background(), "harbor", 1)
	require.NoError(t, err)

	require.Len(t, result.Items, 2)
	titles := []string{result.Items[0].Title, result.Items[1].Title}
	assert.ElementsMatch(t, []string{"The Quiet Harbor", "Harbor Lights"}, titles)

	none, err := svc.SearchMulti(context.Background(), "nonexistent", 1)
	require.NoError(t, err)
	assert.Empty(t, none.Items)
	assert.NotNil(t, none.Items)
}

func TestOfflineDetailsAndCredits(t *testing.T) {
	svc := NewOffline(testLogger())

	details, err := svc.GetDetails(context.Background(), models.MediaTypeTV, 9101)
	require.NoError(t, err)
	assert.Equal(t, "Northern Static", details.Title)
	require.NotNil(t, details.NumberOfSeasons)
	assert.Equal(t, 3, *details.NumberOfSeasons)
	require.NotEmpty(t, details.Genres)
	assert.Equal(t, "Drama", details.Genres[0].Name)

	cast, err := svc.GetCredits(context.Background(), models.MediaTypeTV, 9101)
	require.NoError(t, err)
	require.Len(t, cast, 3)
	assert.Equal(t, 0, cast[0].Order)
}

func TestOfflineUnknownTitle(t *testing.T) {
	svc := NewOffline(testLogger())

	_, err := svc.GetDetails(context.Background(), models.MediaTypeMovie, 404404)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	// A known id under the wrong media type is also not found.
	_, err = svc.GetDetails(context.Background(), models.MediaTypeMovie, 9101)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestOfflineDiscoverByCountry(t *testing.T) {
	svc := NewOffline(testLogger())

	result, err := svc.DiscoverByCountry(context.Background(), models.MediaTypeMovie, "us", models.DiscoverOptions{Page: 1})
	require.NoError(t, err)

	require.NotEmpty(t, result.Items)
	for _, item := range result.Items {
		assert.Equal(t, models.MediaTypeMovie, item.MediaType)
	}
}

func TestOfflineRecommendations(t *testing.T) {
	svc := NewOffline(testLogger())

	result, err := svc.GetRecommendations(context.Background(), models.MediaTypeMovie, 9001, 1)
	require.NoError(t, err)
	require.Len(t, result.Items, 2)

	// Titles with no related entries yield an empty page, not an error.
	none, err := svc.GetRecommendations(context.Background(), models.MediaTypeMovie, 9003, 1)
	require.NoError(t, err)
	assert.Empty(t, none.Items)
	assert.NotNil(t, none.Items)
}

// jsonKeys marshals v and returns its top-level object keys.
func jsonKeys(t *testing.T, v interface{}) map[string]struct{} {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &m))

	keys := make(map[string]struct{}, len(m))
	for k := range m {
		keys[k] = struct{}{}
	}
	return keys
}

// TestAdapterDetailsShapeParity checks that a details payload serialized from
// the synthetic adapter exposes the same top-level JSON keys as one produced
// by the live TMDB adapter, so app clients cannot tell providers apart by
// shape.
func TestAdapterDetailsShapeParity(t *testing.T) {
	offline := NewOffline(testLogger())
	offlineDetails, err := offline.GetDetails(context.Background(), models.MediaTypeMovie, 9001)
	require.NoError(t, err)

	tmdb := newTestTMDB(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, models.TMDBDetails{
			ID: 603, Title: "The Matrix", ReleaseDate: "1999-03-31", Runtime: 136,
			Genres: []models.TMDBGenre{{ID: 28, Name: "Action"}},
		})
	}))
	tmdbDetails, err := tmdb.GetDetails(context.Background(), models.MediaTypeMovie, 603)
	require.NoError(t, err)

	assert.Equal(t, jsonKeys(t, tmdbDetails), jsonKeys(t, offlineDetails))
}

func TestAdapterTrendingShapeParity(t *testing.T) {
	offline := NewOffline(testLogger())
	offlineTrending, err := offline.GetTrending(context.Background(), models.MediaTypeMovie, "week", 1)
	require.NoError(t, err)
	require.NotEmpty(t, offlineTrending.Items)

	tmdb := newTestTMDB(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, models.TMDBPagedResponse{
			Page: 1, TotalPages: 1, TotalResults: 1,
			Results: []models.TMDBResult{{ID: 603, Title: "The Matrix"}},
		})
	}))
	tmdbTrending, err := tmdb.GetTrending(context.Background(), models.MediaTypeMovie, "week", 1)
	require.NoError(t, err)
	require.NotEmpty(t, tmdbTrending.Items)

	assert.Equal(t, jsonKeys(t, tmdbTrending), jsonKeys(t, offlineTrending))
	assert.Equal(t, jsonKeys(t, tmdbTrending.Items[0]), jsonKeys(t, offlineTrending.Items[0]))
}

func TestRegistryDispatch(t *testing.T) {
	registry := NewRegistry()
	offline := NewOffline(testLogger())

	require.NoError(t, registry.Register(offline))
	assert.Equal(t, "offline", registry.ActiveName())

	// Duplicate registration is rejected.
	require.Error(t, registry.Register(NewOffline(testLogger())))

	p, ok := registry.Get("offline")
	require.True(t, ok)
	assert.Equal(t, offline, p)

	_, ok = registry.Get("tmdb")
	assert.False(t, ok)
	require.Error(t, registry.SetActive("tmdb"))
	assert.Equal(t, []string{"offline"}, registry.List())
}
