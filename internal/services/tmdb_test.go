package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ldary/mediadex/internal/cache"
	apperrors "github.com/ldary/mediadex/internal/errors"
	"github.com/ldary/mediadex/internal/models"
	"github.com/ldary/mediadex/pkg/fetch"
	"github.com/ldary/mediadex/pkg/logger"
)

func testLogger() logger.Logger {
	return logger.NewWithWriter(io.Discard, logger.LevelError)
}

func noSleep(ctx context.Context, d time.Duration) error {
	return nil
}

func newTestTMDB(t *testing.T, handler http.Handler) *TMDB {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc := NewTMDB("test-key", cache.New(16, time.Hour), testLogger())
	svc.SetBaseURL(server.URL)
	svc.SetFetchClient(fetch.New(fetch.WithSleep(noSleep)))
	return svc
}

func writeJSON(t *testing.T, w http.ResponseWriter, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestTMDBGetTrending(t *testing.T) {
	svc := newTestTMDB(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/trending/movie/week", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))

		writeJSON(t, w, models.TMDBPagedResponse{
			Page:         2,
			TotalPages:   40,
			TotalResults: 800,
			Results: []models.TMDBResult{
				{ID: 603, Title: "The Matrix", ReleaseDate: "1999-03-31", VoteAverage: 8.2, PosterPath: "/p1.jpg"},
				{ID: 604, Title: "The Matrix Reloaded", ReleaseDate: "2003-05-15", VoteAverage: 7.0},
			},
		})
	}))

	result, err := svc.GetTrending(context.Background(), models.MediaTypeMovie, "week", 2)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 40, result.TotalPages)
	require.Len(t, result.Items, 2)
	assert.Equal(t, 1, result.Items[0].Rank)
	assert.Equal(t, 2, result.Items[1].Rank)
	assert.Equal(t, "The Matrix", result.Items[0].Title)
	assert.Equal(t, models.MediaTypeMovie, result.Items[0].MediaType)
	require.NotNil(t, result.Items[0].PosterPath)
	assert.Equal(t, "/p1.jpg", *result.Items[0].PosterPath)
	assert.Nil(t, result.Items[1].PosterPath)
}

func TestTMDBSearchMultiDropsNonMedia(t *testing.T) {
	svc := newTestTMDB(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/multi", r.URL.Path)
		assert.Equal(t, "keanu", r.URL.Query().Get("query"))

		writeJSON(t, w, models.TMDBPagedResponse{
			Page: 1, TotalPages: 1, TotalResults: 3,
			Results: []models.TMDBResult{
				{ID: 603, Title: "The Matrix", MediaType: "movie"},
				{ID: 6384, Name: "Speed City", MediaType: "tv", FirstAirDate: "2020-01-01"},
				{ID: 6382, Name: "Keanu Reeves", MediaType: "person"},
			},
		})
	}))

	result, err := svc.SearchMulti(context.Background(), "keanu", 1)
	require.NoError(t, err)

	require.Len(t, result.Items, 2)
	assert.Equal(t, models.MediaTypeMovie, result.Items[0].MediaType)
	assert.Equal(t, models.MediaTypeTV, result.Items[1].MediaType)
	assert.Equal(t, "Speed City", result.Items[1].Title)
	assert.Equal(t, "2020-01-01", result.Items[1].ReleaseDate)
}

func TestTMDBGetDetails(t *testing.T) {
	svc := newTestTMDB(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tv/1396", r.URL.Path)

		writeJSON(t, w, models.TMDBDetails{
			ID: 1396, Name: "Breaking Bad", FirstAirDate: "2008-01-20",
			EpisodeRunTime: []int{47}, VoteAverage: 8.9, VoteCount: 12000,
			Genres:           []models.TMDBGenre{{ID: 18, Name: "Drama"}},
			Status:           "Ended",
			NumberOfSeasons:  5,
			NumberOfEpisodes: 62,
			ProductionCountries: []models.TMDBProductionCountry{
				{ISO3166_1: "US", Name: "United States of America"},
			},
		})
	}))

	details, err := svc.GetDetails(context.Background(), models.MediaTypeTV, 1396)
	require.NoError(t, err)

	assert.Equal(t, "Breaking Bad", details.Title)
	assert.Equal(t, "2008-01-20", details.ReleaseDate)
	require.NotNil(t, details.Runtime)
	assert.Equal(t, 47, *details.Runtime)
	assert.Equal(t, []int{18}, details.GenreIDs)
	require.NotNil(t, details.NumberOfSeasons)
	assert.Equal(t, 5, *details.NumberOfSeasons)
	require.Len(t, details.ProductionCountries, 1)
	assert.Equal(t, "US", details.ProductionCountries[0].Code)
}

func TestTMDBGetDetailsNotFound(t *testing.T) {
	svc := newTestTMDB(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := svc.GetDetails(context.Background(), models.MediaTypeMovie, 999999)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestTMDBGetDetailsUsesMemoryCache(t *testing.T) {
	hits := 0
	svc := newTestTMDB(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		writeJSON(t, w, models.TMDBDetails{ID: 603, Title: "The Matrix"})
	}))

	for i := 0; i < 3; i++ {
		details, err := svc.GetDetails(context.Background(), models.MediaTypeMovie, 603)
		require.NoError(t, err)
		assert.Equal(t, "The Matrix", details.Title)
	}
	assert.Equal(t, 1, hits)
}

func TestTMDBGetCreditsSortedByOrder(t *testing.T) {
	svc := newTestTMDB(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/603/credits", r.URL.Path)

		writeJSON(t, w, models.TMDBCreditsResponse{
			ID: 603,
			Cast: []models.TMDBCastMember{
				{ID: 2, Name: "Laurence Fishburne", Character: "Morpheus", Order: 1},
				{ID: 1, Name: "Keanu Reeves", Character: "Neo", Order: 0},
			},
		})
	}))

	cast, err := svc.GetCredits(context.Background(), models.MediaTypeMovie, 603)
	require.NoError(t, err)

	require.Len(t, cast, 2)
	assert.Equal(t, "Keanu Reeves", cast[0].Name)
	assert.Equal(t, "Laurence Fishburne", cast[1].Name)
}

func TestTMDBGetWatchProviders(t *testing.T) {
	svc := newTestTMDB(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, models.TMDBWatchProvidersResponse{
			ID: 603,
			Results: map[string]models.TMDBRegionProviders{
				"FR": {
					Link:     "https://example.org/fr/matrix",
					Flatrate: []models.TMDBWatchProvider{{ProviderID: 8, ProviderName: "Netflix"}},
					Rent:     []models.TMDBWatchProvider{{ProviderID: 2, ProviderName: "Apple TV"}},
				},
			},
		})
	}))

	providers, err := svc.GetWatchProviders(context.Background(), models.MediaTypeMovie, 603, "fr")
	require.NoError(t, err)

	require.Len(t, providers, 2)
	assert.Equal(t, "Netflix", providers[0].ProviderName)
	assert.Equal(t, models.StreamingTypeFlatrate, providers[0].Type)
	assert.Equal(t, models.StreamingTypeRent, providers[1].Type)
	assert.True(t, providers[0].IsAvailable)
	assert.Equal(t, "https://example.org/fr/matrix", providers[0].Link)

	// Unknown region degrades to an empty, non-nil list.
	none, err := svc.GetWatchProviders(context.Background(), models.MediaTypeMovie, 603, "ZZ")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestTMDBGetTrailerKeyPrefersOfficialTrailer(t *testing.T) {
	svc := newTestTMDB(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, models.TMDBVideosResponse{
			ID: 603,
			Results: []models.TMDBVideo{
				{Key: "teaser1", Site: "YouTube", Type: "Teaser"},
				{Key: "fanvid", Site: "Vimeo", Type: "Trailer", Official: true},
				{Key: "unofficial", Site: "YouTube", Type: "Trailer"},
				{Key: "official1", Site: "YouTube", Type: "Trailer", Official: true},
			},
		})
	}))

	key, err := svc.GetTrailerKey(context.Background(), models.MediaTypeMovie, 603)
	require.NoError(t, err)
	assert.Equal(t, "official1", key)
}

func TestTMDBGetTrailerKeyEmptyWhenNoVideos(t *testing.T) {
	svc := newTestTMDB(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, models.TMDBVideosResponse{ID: 603})
	}))

	key, err := svc.GetTrailerKey(context.Background(), models.MediaTypeMovie, 603)
	require.NoError(t, err)
	assert.Equal(t, "", key)
}

func TestTMDBDiscoverByCountry(t *testing.T) {
	svc := newTestTMDB(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/discover/tv", r.URL.Path)
		assert.Equal(t, "KR", r.URL.Query().Get("with_origin_country"))
		assert.Equal(t, "2021", r.URL.Query().Get("first_air_date_year"))
		assert.Equal(t, "18", r.URL.Query().Get("with_genres"))

		writeJSON(t, w, models.TMDBPagedResponse{
			Page: 1, TotalPages: 3, TotalResults: 50,
			Results: []models.TMDBResult{{ID: 93405, Name: "Squid Game"}},
		})
	}))

	result, err := svc.DiscoverByCountry(context.Background(), models.MediaTypeTV, "kr", models.DiscoverOptions{
		Page: 1, Year: 2021, GenreID: 18,
	})
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	assert.Equal(t, "Squid Game", result.Items[0].Title)
	assert.Equal(t, models.MediaTypeTV, result.Items[0].MediaType)
}

func TestTMDBRetriesServerErrors(t *testing.T) {
	hits := 0
	svc := newTestTMDB(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeJSON(t, w, models.TMDBPagedResponse{Page: 1, TotalPages: 1, TotalResults: 0})
	}))

	_, err := svc.GetTrending(context.Background(), models.MediaTypeMovie, "week", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, hits)
}

func TestTMDBMissingAPIKey(t *testing.T) {
	svc := NewTMDB("", cache.New(16, time.Hour), testLogger())

	_, err := svc.GetTrending(context.Background(), models.MediaTypeMovie, "week", 1)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrorTypeAPIKeyMissing, appErr.Type)
	assert.Contains(t, appErr.Message, "TMDB_API_KEY")
}

func TestTMDBRejectsUnknownMediaType(t *testing.T) {
	svc := NewTMDB("test-key", cache.New(16, time.Hour), testLogger())

	_, err := svc.GetDetails(context.Background(), models.MediaType("podcast"), 1)
	require.Error(t, err)
}

func TestTMDBImageURL(t *testing.T) {
	svc := NewTMDB("test-key", cache.New(16, time.Hour), testLogger())

	assert.Equal(t, "https://image.tmdb.org/t/p/w500/abc.jpg", svc.ImageURL("/abc.jpg", ""))
	assert.Equal(t, "https://image.tmdb.org/t/p/original/abc.jpg", svc.ImageURL("/abc.jpg", "original"))
	assert.Equal(t, "https://cdn.example.org/x.jpg", svc.ImageURL("https://cdn.example.org/x.jpg", "w500"))
	assert.Equal(t, "", svc.ImageURL("", "w500"))
}
