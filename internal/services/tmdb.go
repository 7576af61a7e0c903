package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ldary/mediadex/internal/cache"
	"github.com/ldary/mediadex/internal/constants"
	"github.com/ldary/mediadex/internal/database"
	apperrors "github.com/ldary/mediadex/internal/errors"
	"github.com/ldary/mediadex/internal/models"
	"github.com/ldary/mediadex/pkg/fetch"
	"github.com/ldary/mediadex/pkg/httputil"
	"github.com/ldary/mediadex/pkg/logger"
	"github.com/ldary/mediadex/pkg/ratelimiter"
)

const (
	tmdbBaseURL      = "https://api.themoviedb.org/3"
	tmdbImageBaseURL = "https://image.tmdb.org/t/p"

	tmdbDefaultImageSize = "w500"
	tmdbDefaultRegion    = "US"
)

// TMDB is the numeric-id provider adapter. Its native identifiers are already
// app-compatible integers, so every contract operation maps directly onto one
// retryable API call with no identifier bridging and no fallback policies.
type TMDB struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	fetcher      *fetch.Client
	retryCfg     fetch.Config
	rateLimiter  ratelimiter.RateLimiter
	cache        *cache.LRUCache
	db           database.Database
	logger       logger.Logger
}

// NewTMDB creates the TMDB adapter.
func NewTMDB(apiKey string, memCache *cache.LRUCache, log logger.Logger) *TMDB {
	return &TMDB{
		apiKey:       apiKey,
		baseURL:      tmdbBaseURL,
		imageBaseURL: tmdbImageBaseURL,
		fetcher:      fetch.New(fetch.WithHTTPClient(httputil.NewHTTPClient(constants.ProviderCallTimeout))),
		retryCfg: fetch.Config{
			MaxAttempts: constants.RetryMaxAttempts,
			BaseDelay:   constants.RetryBaseDelay,
			MaxDelay:    constants.RetryMaxDelay,
		},
		rateLimiter: ratelimiter.NewTokenBucket(constants.TMDBRateLimit, constants.TMDBRateBurst),
		cache:       memCache,
		logger:      log,
	}
}

// SetDB attaches the persistent details cache.
func (t *TMDB) SetDB(db database.Database) {
	t.db = db
}

// SetBaseURL overrides the API endpoint, used by tests.
func (t *TMDB) SetBaseURL(base string) {
	t.baseURL = strings.TrimSuffix(base, "/")
}

// SetFetchClient overrides the fetch client, used by tests to inject a fake
// sleep and by callers that need a custom HTTP client.
func (t *TMDB) SetFetchClient(c *fetch.Client) {
	t.fetcher = c
}

// SetRetryConfig overrides the per-call retry configuration.
func (t *TMDB) SetRetryConfig(cfg fetch.Config) {
	t.retryCfg = cfg
}

// Name returns the provider id.
func (t *TMDB) Name() string {
	return constants.ProviderTMDB
}

// GetTrending returns one page of trending titles for the window.
func (t *TMDB) GetTrending(ctx context.Context, mediaType models.MediaType, window string, page int) (*models.Paginated[models.TrendingItem], error) {
	path, err := tmdbMediaPath(mediaType)
	if err != nil {
		return nil, err
	}
	if window != "day" && window != "week" {
		window = "week"
	}

	var resp models.TMDBPagedResponse
	endpoint := fmt.Sprintf("%s/trending/%s/%s", t.baseURL, path, window)
	if err := t.get(ctx, endpoint, url.Values{"page": {strconv.Itoa(page)}}, &resp); err != nil {
		return nil, wrapProviderError(t.Name(), "failed to fetch trending", err)
	}

	out := &models.Paginated[models.TrendingItem]{
		Items:        []models.TrendingItem{},
		Page:         resp.Page,
		TotalPages:   resp.TotalPages,
		TotalResults: resp.TotalResults,
	}
	for i, result := range resp.Results {
		out.Items = append(out.Items, models.TrendingItem{
			MediaItem: t.mapResult(result, mediaType),
			Rank:      i + 1,
		})
	}
	return out, nil
}

// SearchMulti searches movies and TV shows in one request. Results that are
// neither movies nor TV (people, collections) are dropped.
func (t *TMDB) SearchMulti(ctx context.Context, query string, page int) (*models.Paginated[models.MediaItem], error) {
	var resp models.TMDBPagedResponse
	endpoint := t.baseURL + "/search/multi"
	params := url.Values{
		"query": {query},
		"page":  {strconv.Itoa(page)},
	}
	if err := t.get(ctx, endpoint, params, &resp); err != nil {
		return nil, wrapProviderError(t.Name(), "search failed", err)
	}

	out := &models.Paginated[models.MediaItem]{
		Items:        []models.MediaItem{},
		Page:         resp.Page,
		TotalPages:   resp.TotalPages,
		TotalResults: resp.TotalResults,
	}
	for _, result := range resp.Results {
		switch result.MediaType {
		case "movie":
			out.Items = append(out.Items, t.mapResult(result, models.MediaTypeMovie))
		case "tv":
			out.Items = append(out.Items, t.mapResult(result, models.MediaTypeTV))
		}
	}
	return out, nil
}

// GetDetails returns the full record for one title, served from the memory
// cache, then the persistent cache, then the API.
func (t *TMDB) GetDetails(ctx context.Context, mediaType models.MediaType, id int) (*models.MediaDetails, error) {
	path, err := tmdbMediaPath(mediaType)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("tmdb:details:%s:%d", mediaType, id)
	if cached := t.checkDetailsCaches(mediaType, id, cacheKey); cached != nil {
		return cached, nil
	}

	var resp models.TMDBDetails
	endpoint := fmt.Sprintf("%s/%s/%d", t.baseURL, path, id)
	if err := t.get(ctx, endpoint, nil, &resp); err != nil {
		if isFetchStatus(err, 404) {
			return nil, apperrors.NewEntityNotFoundError(t.Name(), string(mediaType), id)
		}
		return nil, wrapProviderError(t.Name(), "failed to fetch details", err)
	}

	details := t.mapDetails(resp, mediaType)
	t.storeDetailsCaches(details, cacheKey)
	return details, nil
}

// GetCredits returns the cast sorted by billing order.
func (t *TMDB) GetCredits(ctx context.Context, mediaType models.MediaType, id int) ([]models.CastMember, error) {
	path, err := tmdbMediaPath(mediaType)
	if err != nil {
		return nil, err
	}

	var resp models.TMDBCreditsResponse
	endpoint := fmt.Sprintf("%s/%s/%d/credits", t.baseURL, path, id)
	if err := t.get(ctx, endpoint, nil, &resp); err != nil {
		if isFetchStatus(err, 404) {
			return nil, apperrors.NewEntityNotFoundError(t.Name(), string(mediaType), id)
		}
		return nil, wrapProviderError(t.Name(), "failed to fetch credits", err)
	}

	return mapTMDBCast(resp.Cast), nil
}

// GetWatchProviders returns the streaming availability in the given region.
// An unknown region or a title with no providers yields an empty list.
func (t *TMDB) GetWatchProviders(ctx context.Context, mediaType models.MediaType, id int, region string) ([]models.StreamingProvider, error) {
	path, err := tmdbMediaPath(mediaType)
	if err != nil {
		return nil, err
	}
	if region == "" {
		region = tmdbDefaultRegion
	}

	var resp models.TMDBWatchProvidersResponse
	endpoint := fmt.Sprintf("%s/%s/%d/watch/providers", t.baseURL, path, id)
	if err := t.get(ctx, endpoint, nil, &resp); err != nil {
		return nil, wrapProviderError(t.Name(), "failed to fetch watch providers", err)
	}

	regionProviders, ok := resp.Results[strings.ToUpper(region)]
	if !ok {
		return []models.StreamingProvider{}, nil
	}
	return flattenWatchProviders(regionProviders), nil
}

// GetTrailerKey returns the key of the best available YouTube trailer, or ""
// when the title has none.
func (t *TMDB) GetTrailerKey(ctx context.Context, mediaType models.MediaType, id int) (string, error) {
	path, err := tmdbMediaPath(mediaType)
	if err != nil {
		return "", err
	}

	var resp models.TMDBVideosResponse
	endpoint := fmt.Sprintf("%s/%s/%d/videos", t.baseURL, path, id)
	if err := t.get(ctx, endpoint, nil, &resp); err != nil {
		return "", wrapProviderError(t.Name(), "failed to fetch videos", err)
	}

	return pickTrailerKey(resp.Results), nil
}

// GetRecommendations returns titles related to the given one.
func (t *TMDB) GetRecommendations(ctx context.Context, mediaType models.MediaType, id, page int) (*models.Paginated[models.MediaItem], error) {
	path, err := tmdbMediaPath(mediaType)
	if err != nil {
		return nil, err
	}

	var resp models.TMDBPagedResponse
	endpoint := fmt.Sprintf("%s/%s/%d/recommendations", t.baseURL, path, id)
	if err := t.get(ctx, endpoint, url.Values{"page": {strconv.Itoa(page)}}, &resp); err != nil {
		return nil, wrapProviderError(t.Name(), "failed to fetch recommendations", err)
	}

	out := &models.Paginated[models.MediaItem]{
		Items:        []models.MediaItem{},
		Page:         resp.Page,
		TotalPages:   resp.TotalPages,
		TotalResults: resp.TotalResults,
	}
	for _, result := range resp.Results {
		out.Items = append(out.Items, t.mapResult(result, mediaType))
	}
	return out, nil
}

// DiscoverByCountry lists titles originating from the given country.
func (t *TMDB) DiscoverByCountry(ctx context.Context, mediaType models.MediaType, country string, opts models.DiscoverOptions) (*models.Paginated[models.MediaItem], error) {
	path, err := tmdbMediaPath(mediaType)
	if err != nil {
		return nil, err
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}
	params := url.Values{
		"with_origin_country": {strings.ToUpper(country)},
		"page":                {strconv.Itoa(page)},
	}
	if opts.Year > 0 {
		if mediaType == models.MediaTypeMovie {
			params.Set("primary_release_year", strconv.Itoa(opts.Year))
		} else {
			params.Set("first_air_date_year", strconv.Itoa(opts.Year))
		}
	}
	if opts.GenreID > 0 {
		params.Set("with_genres", strconv.Itoa(opts.GenreID))
	}
	if opts.SortBy != "" {
		params.Set("sort_by", opts.SortBy)
	}

	var resp models.TMDBPagedResponse
	endpoint := fmt.Sprintf("%s/discover/%s", t.baseURL, path)
	if err := t.get(ctx, endpoint, params, &resp); err != nil {
		return nil, wrapProviderError(t.Name(), "discover failed", err)
	}

	out := &models.Paginated[models.MediaItem]{
		Items:        []models.MediaItem{},
		Page:         resp.Page,
		TotalPages:   resp.TotalPages,
		TotalResults: resp.TotalResults,
	}
	for _, result := range resp.Results {
		out.Items = append(out.Items, t.mapResult(result, mediaType))
	}
	return out, nil
}

// ImageURL resolves a TMDB image path into a full CDN URL. Absolute URLs and
// empty paths pass through unchanged.
func (t *TMDB) ImageURL(path, size string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if size == "" {
		size = tmdbDefaultImageSize
	}
	return fmt.Sprintf("%s/%s%s", t.imageBaseURL, size, path)
}

// get performs one rate-limited, retrying API call.
func (t *TMDB) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	if t.apiKey == "" {
		return apperrors.NewAPIKeyMissingError(t.Name(), constants.EnvTMDBAPIKey)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", t.apiKey)

	t.rateLimiter.Wait()

	fullURL := endpoint + "?" + params.Encode()
	t.logger.Debugf("[TMDB] GET %s", endpoint)
	return t.fetcher.FetchJSON(ctx, fullURL, out, t.retryCfg)
}

// checkDetailsCaches consults the memory cache and then the persistent cache.
func (t *TMDB) checkDetailsCaches(mediaType models.MediaType, id int, cacheKey string) *models.MediaDetails {
	if t.cache != nil {
		if data, found := t.cache.Get(cacheKey); found {
			return data.(*models.MediaDetails)
		}
	}

	if t.db == nil {
		return nil
	}
	cached, err := t.db.GetCachedDetails(t.Name(), string(mediaType), id)
	if err != nil || cached == nil {
		return nil
	}
	if time.Since(cached.CreatedAt) > constants.DefaultCacheTTL*time.Hour {
		return nil
	}

	var details models.MediaDetails
	if err := json.Unmarshal(cached.Payload, &details); err != nil {
		t.logger.Errorf("[TMDB] failed to decode cached details: %v", err)
		return nil
	}
	if t.cache != nil {
		t.cache.Set(cacheKey, &details)
	}
	return &details
}

// storeDetailsCaches writes through both cache tiers.
func (t *TMDB) storeDetailsCaches(details *models.MediaDetails, cacheKey string) {
	if t.cache != nil {
		t.cache.Set(cacheKey, details)
	}
	if t.db == nil {
		return
	}

	payload, err := json.Marshal(details)
	if err != nil {
		t.logger.Errorf("[TMDB] failed to encode details for cache: %v", err)
		return
	}
	err = t.db.StoreDetails(&database.DetailsCache{
		Provider:  t.Name(),
		MediaType: string(details.MediaType),
		ID:        details.ID,
		Payload:   payload,
	})
	if err != nil {
		t.logger.Errorf("[TMDB] failed to store details cache: %v", err)
	}
}

// isFetchStatus reports whether err is a fetch error with the given status.
func isFetchStatus(err error, status int) bool {
	var fe *fetch.Error
	if errors.As(err, &fe) {
		return fe.StatusCode == status
	}
	return false
}

// wrapProviderError classifies err as a provider failure unless it already
// carries an application error type (missing key, not found).
func wrapProviderError(provider, message string, err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.NewProviderError(provider, message, err)
}
