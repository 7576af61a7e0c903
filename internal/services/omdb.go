package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ldary/mediadex/internal/bridge"
	"github.com/ldary/mediadex/internal/cache"
	"github.com/ldary/mediadex/internal/constants"
	"github.com/ldary/mediadex/internal/database"
	apperrors "github.com/ldary/mediadex/internal/errors"
	"github.com/ldary/mediadex/internal/fallback"
	"github.com/ldary/mediadex/internal/models"
	"github.com/ldary/mediadex/pkg/fetch"
	"github.com/ldary/mediadex/pkg/httputil"
	"github.com/ldary/mediadex/pkg/logger"
	"github.com/ldary/mediadex/pkg/ratelimiter"
)

const (
	omdbBaseURL = "https://www.omdbapi.com"

	// Display name used in logs and fallback diagnostics.
	omdbDiagnosticName = "OMDb"
)

// OMDB is the string-id provider adapter. OMDb keys titles by opaque IMDb ids
// ("tt0133093"), so every id crossing the contract boundary goes through the
// identifier bridge, and the capabilities OMDb lacks natively (trending,
// discover, watch providers, trailers, recommendations) are served by the
// fallback engine.
type OMDB struct {
	apiKey      string
	baseURL     string
	fetcher     *fetch.Client
	retryCfg    fetch.Config
	rateLimiter ratelimiter.RateLimiter
	cache       *cache.LRUCache
	db          database.Database
	bridge      *bridge.IdentifierBridge
	fallback    *fallback.Engine
	logger      logger.Logger
}

// NewOMDB creates the OMDb adapter. The bridge and fallback engine are shared
// process-wide and injected rather than owned.
func NewOMDB(apiKey string, br *bridge.IdentifierBridge, fb *fallback.Engine, memCache *cache.LRUCache, log logger.Logger) *OMDB {
	return &OMDB{
		apiKey:  apiKey,
		baseURL: omdbBaseURL,
		fetcher: fetch.New(fetch.WithHTTPClient(httputil.NewHTTPClient(constants.ProviderCallTimeout))),
		retryCfg: fetch.Config{
			MaxAttempts: constants.RetryMaxAttempts,
			BaseDelay:   constants.RetryBaseDelay,
			MaxDelay:    constants.RetryMaxDelay,
		},
		rateLimiter: ratelimiter.NewTokenBucket(constants.OMDBRateLimit, constants.OMDBRateBurst),
		cache:       memCache,
		bridge:      br,
		fallback:    fb,
		logger:      log,
	}
}

// SetDB attaches the persistent details cache.
func (o *OMDB) SetDB(db database.Database) {
	o.db = db
}

// SetBaseURL overrides the API endpoint, used by tests.
func (o *OMDB) SetBaseURL(base string) {
	o.baseURL = strings.TrimSuffix(base, "/")
}

// SetFetchClient overrides the fetch client, used by tests.
func (o *OMDB) SetFetchClient(c *fetch.Client) {
	o.fetcher = c
}

// SetRetryConfig overrides the per-call retry configuration.
func (o *OMDB) SetRetryConfig(cfg fetch.Config) {
	o.retryCfg = cfg
}

// Name returns the provider id.
func (o *OMDB) Name() string {
	return constants.ProviderOMDB
}

// SearchMulti is OMDb's one native listing capability. Every returned title
// registers its IMDb id with the bridge so later detail lookups can reverse
// the numeric id.
func (o *OMDB) SearchMulti(ctx context.Context, query string, page int) (*models.Paginated[models.MediaItem], error) {
	if page < 1 {
		page = 1
	}

	var resp models.OMDBSearchResponse
	params := url.Values{
		"s":    {query},
		"page": {strconv.Itoa(page)},
	}
	if err := o.get(ctx, params, &resp); err != nil {
		return nil, wrapProviderError(o.Name(), "search failed", err)
	}

	// OMDb reports "no matches" inside a 200 response; that is an empty
	// page, not a failure.
	if resp.Response != "True" {
		return models.EmptyPage[models.MediaItem](page), nil
	}

	totalResults, _ := strconv.Atoi(resp.TotalResults)
	out := &models.Paginated[models.MediaItem]{
		Items:        []models.MediaItem{},
		Page:         page,
		TotalPages:   (totalResults + constants.OMDBPageSize - 1) / constants.OMDBPageSize,
		TotalResults: totalResults,
	}
	for _, item := range resp.Search {
		mediaType, ok := omdbMediaType(item.Type)
		if !ok {
			continue
		}
		out.Items = append(out.Items, o.mapSearchItem(item, mediaType))
	}
	return out, nil
}

// GetDetails reverses the numeric id through the bridge and fetches the full
// record. An id the bridge has never seen yields an empty shell with only the
// id and media type set; losing a mapping is degraded data, not an error.
func (o *OMDB) GetDetails(ctx context.Context, mediaType models.MediaType, id int) (*models.MediaDetails, error) {
	nativeID, ok := o.bridge.NativeID(id)
	if !ok {
		o.logger.Debugf("[OMDb] no native id registered for %d, returning empty details", id)
		return emptyOMDBDetails(mediaType, id), nil
	}

	cacheKey := fmt.Sprintf("omdb:details:%s:%d", mediaType, id)
	if cached := o.checkDetailsCaches(mediaType, id, cacheKey); cached != nil {
		return cached, nil
	}

	raw, err := o.fetchDetails(ctx, nativeID, mediaType, id)
	if err != nil {
		return nil, err
	}

	details := o.mapDetails(raw, mediaType, id)
	o.storeDetailsCaches(details, cacheKey)
	return details, nil
}

// GetCredits parses OMDb's comma-separated actor list into cast entries in
// billing order. OMDb has no person ids, so each actor's numeric id is bridged
// from the name.
func (o *OMDB) GetCredits(ctx context.Context, mediaType models.MediaType, id int) ([]models.CastMember, error) {
	nativeID, ok := o.bridge.NativeID(id)
	if !ok {
		o.logger.Debugf("[OMDb] no native id registered for %d, returning empty credits", id)
		return []models.CastMember{}, nil
	}

	raw, err := o.fetchDetails(ctx, nativeID, mediaType, id)
	if err != nil {
		return nil, err
	}

	actors := normalizeOMDBValue(raw.Actors)
	if actors == "" {
		return []models.CastMember{}, nil
	}

	names := strings.Split(actors, ",")
	cast := make([]models.CastMember, 0, len(names))
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		cast = append(cast, models.CastMember{
			ID:    o.bridge.GenerateNumericID(name),
			Name:  name,
			Order: i,
		})
	}
	return cast, nil
}

// GetTrending is not native to OMDb; the fallback engine derives it from
// seed searches.
func (o *OMDB) GetTrending(ctx context.Context, mediaType models.MediaType, window string, page int) (*models.Paginated[models.TrendingItem], error) {
	return o.fallback.Trending(ctx, omdbDiagnosticName, o, mediaType, page), nil
}

// DiscoverByCountry is not native to OMDb; the fallback engine derives it
// from country-specific seed searches.
func (o *OMDB) DiscoverByCountry(ctx context.Context, mediaType models.MediaType, country string, opts models.DiscoverOptions) (*models.Paginated[models.MediaItem], error) {
	return o.fallback.DiscoverByCountry(ctx, omdbDiagnosticName, o, mediaType, country, opts.Page), nil
}

// GetWatchProviders is not native to OMDb; the fallback is always empty.
func (o *OMDB) GetWatchProviders(ctx context.Context, mediaType models.MediaType, id int, region string) ([]models.StreamingProvider, error) {
	return o.fallback.WatchProviders(omdbDiagnosticName), nil
}

// GetTrailerKey is not native to OMDb; the fallback is always "".
func (o *OMDB) GetTrailerKey(ctx context.Context, mediaType models.MediaType, id int) (string, error) {
	return o.fallback.TrailerKey(omdbDiagnosticName), nil
}

// GetRecommendations is not native to OMDb; the fallback is an empty page.
func (o *OMDB) GetRecommendations(ctx context.Context, mediaType models.MediaType, id, page int) (*models.Paginated[models.MediaItem], error) {
	return o.fallback.Recommendations(omdbDiagnosticName, page), nil
}

// ImageURL passes through: OMDb poster fields are already absolute URLs.
func (o *OMDB) ImageURL(path, size string) string {
	return path
}

// fetchDetails performs the raw i= lookup and maps OMDb's in-band "not found"
// onto the entity-not-found error type.
func (o *OMDB) fetchDetails(ctx context.Context, nativeID string, mediaType models.MediaType, id int) (*models.OMDBDetails, error) {
	var resp models.OMDBDetails
	params := url.Values{
		"i":    {nativeID},
		"plot": {"full"},
	}
	if err := o.get(ctx, params, &resp); err != nil {
		return nil, wrapProviderError(o.Name(), "failed to fetch details", err)
	}
	if resp.Response != "True" {
		return nil, apperrors.NewEntityNotFoundError(o.Name(), string(mediaType), id)
	}
	return &resp, nil
}

// get performs one rate-limited, retrying API call. OMDb has a single
// endpoint; the query parameters select the operation.
func (o *OMDB) get(ctx context.Context, params url.Values, out interface{}) error {
	if o.apiKey == "" {
		return apperrors.NewAPIKeyMissingError(o.Name(), constants.EnvOMDBAPIKey)
	}

	params.Set("apikey", o.apiKey)

	o.rateLimiter.Wait()

	fullURL := o.baseURL + "/?" + params.Encode()
	o.logger.Debugf("[OMDb] GET %s", o.baseURL)
	return o.fetcher.FetchJSON(ctx, fullURL, out, o.retryCfg)
}

func (o *OMDB) checkDetailsCaches(mediaType models.MediaType, id int, cacheKey string) *models.MediaDetails {
	if o.cache != nil {
		if data, found := o.cache.Get(cacheKey); found {
			return data.(*models.MediaDetails)
		}
	}

	if o.db == nil {
		return nil
	}
	cached, err := o.db.GetCachedDetails(o.Name(), string(mediaType), id)
	if err != nil || cached == nil {
		return nil
	}
	if time.Since(cached.CreatedAt) > constants.DefaultCacheTTL*time.Hour {
		return nil
	}

	var details models.MediaDetails
	if err := json.Unmarshal(cached.Payload, &details); err != nil {
		o.logger.Errorf("[OMDb] failed to decode cached details: %v", err)
		return nil
	}
	if o.cache != nil {
		o.cache.Set(cacheKey, &details)
	}
	return &details
}

func (o *OMDB) storeDetailsCaches(details *models.MediaDetails, cacheKey string) {
	if o.cache != nil {
		o.cache.Set(cacheKey, details)
	}
	if o.db == nil {
		return
	}

	payload, err := json.Marshal(details)
	if err != nil {
		o.logger.Errorf("[OMDb] failed to encode details for cache: %v", err)
		return
	}
	err = o.db.StoreDetails(&database.DetailsCache{
		Provider:  o.Name(),
		MediaType: string(details.MediaType),
		ID:        details.ID,
		Payload:   payload,
	})
	if err != nil {
		o.logger.Errorf("[OMDb] failed to store details cache: %v", err)
	}
}
