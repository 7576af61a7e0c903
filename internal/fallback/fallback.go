// Package fallback synthesizes deterministic substitute results for contract
// capabilities a provider does not natively support. Substitutes are always
// valid, contract-shaped values, never errors, and every invocation emits
// exactly one warning diagnostic naming the adapter and the capability so
// operators can detect provider capability drift.
package fallback

import (
	"context"
	"strings"

	"github.com/ldary/mediadex/internal/constants"
	"github.com/ldary/mediadex/internal/models"
	"github.com/ldary/mediadex/pkg/logger"
)

// Capability names used in diagnostics.
const (
	CapabilityTrending          = "getTrending"
	CapabilityDiscoverByCountry = "discoverByCountry"
	CapabilityWatchProviders    = "getWatchProviders"
	CapabilityTrailerKey        = "getTrailerKey"
	CapabilityRecommendations   = "getRecommendations"
)

// trendingSeedTerms drive the search-derived trending substitute. The terms
// are popularity-oriented: short words common in high-traffic titles.
var trendingSeedTerms = []string{"star", "war", "love", "dark", "world"}

// countrySeedTerms replace the generic seeds for discover-by-country.
var countrySeedTerms = map[string][]string{
	"US": {"american", "new york", "california"},
	"GB": {"london", "british", "england"},
	"FR": {"paris", "french", "amour"},
	"DE": {"berlin", "german"},
	"IN": {"mumbai", "india", "singh"},
	"JP": {"tokyo", "japan", "samurai"},
	"KR": {"seoul", "korea"},
	"IT": {"roma", "italian"},
	"ES": {"madrid", "spanish"},
}

// defaultCountrySeeds is used for countries with no configured terms.
var defaultCountrySeeds = []string{"world", "city"}

// Searcher is the one native capability the engine derives substitutes from.
type Searcher interface {
	SearchMulti(ctx context.Context, query string, page int) (*models.Paginated[models.MediaItem], error)
}

// Engine generates the substitute results. The logger is the injectable
// diagnostic sink required by the fallback-usage contract.
type Engine struct {
	logger logger.Logger
}

// New creates an Engine emitting diagnostics through log.
func New(log logger.Logger) *Engine {
	return &Engine{logger: log}
}

// emit produces the single mandatory diagnostic per fallback invocation.
func (e *Engine) emit(adapter, capability string) {
	e.logger.Warnf("[%s] Fallback: %s", adapter, capability)
}

// Trending derives a trending-like page from popularity-oriented seed
// searches. Ranks are assigned sequentially from 1 in result order and
// totalPages is capped regardless of the underlying counts.
func (e *Engine) Trending(ctx context.Context, adapter string, s Searcher, mediaType models.MediaType, page int) *models.Paginated[models.TrendingItem] {
	e.emit(adapter, CapabilityTrending)

	derived := e.derive(ctx, s, mediaType, page, trendingSeedTerms)
	out := &models.Paginated[models.TrendingItem]{
		Items:        []models.TrendingItem{},
		Page:         derived.Page,
		TotalPages:   derived.TotalPages,
		TotalResults: derived.TotalResults,
	}
	for i, item := range derived.Items {
		out.Items = append(out.Items, models.TrendingItem{MediaItem: item, Rank: i + 1})
	}
	return out
}

// DiscoverByCountry derives a discover-like page seeded by the requested
// country's configured search terms. Same derivation and totalPages cap as
// Trending, minus the rank decoration.
func (e *Engine) DiscoverByCountry(ctx context.Context, adapter string, s Searcher, mediaType models.MediaType, country string, page int) *models.Paginated[models.MediaItem] {
	e.emit(adapter, CapabilityDiscoverByCountry)

	seeds, ok := countrySeedTerms[strings.ToUpper(country)]
	if !ok {
		seeds = defaultCountrySeeds
	}
	return e.derive(ctx, s, mediaType, page, seeds)
}

// WatchProviders always returns an empty list: a provider without this
// capability has no availability signal worth synthesizing.
func (e *Engine) WatchProviders(adapter string) []models.StreamingProvider {
	e.emit(adapter, CapabilityWatchProviders)
	return []models.StreamingProvider{}
}

// TrailerKey always reports "not available".
func (e *Engine) TrailerKey(adapter string) string {
	e.emit(adapter, CapabilityTrailerKey)
	return ""
}

// Recommendations returns an empty page. Recommendation quality from seed
// searches is too poor to be worth the extra provider calls.
func (e *Engine) Recommendations(adapter string, page int) *models.Paginated[models.MediaItem] {
	e.emit(adapter, CapabilityRecommendations)
	return models.EmptyPage[models.MediaItem](page)
}

// derive runs the seed searches and assembles one deduplicated page in
// result order. Individual seed failures are skipped: a fallback result
// degrades, it never errors.
func (e *Engine) derive(ctx context.Context, s Searcher, mediaType models.MediaType, page int, seeds []string) *models.Paginated[models.MediaItem] {
	if page < 1 {
		page = 1
	}

	var (
		collected    []models.MediaItem
		seen         = make(map[int]bool)
		totalResults int
		totalPages   int
	)

	for _, seed := range seeds {
		result, err := s.SearchMulti(ctx, seed, page)
		if err != nil {
			continue
		}

		totalResults += result.TotalResults
		if result.TotalPages > totalPages {
			totalPages = result.TotalPages
		}

		for _, item := range result.Items {
			if mediaType != "" && item.MediaType != mediaType {
				continue
			}
			if seen[item.ID] {
				continue
			}
			seen[item.ID] = true
			collected = append(collected, item)
		}
	}

	if totalPages > constants.FallbackMaxTotalPages {
		totalPages = constants.FallbackMaxTotalPages
	}

	out := &models.Paginated[models.MediaItem]{
		Items:        []models.MediaItem{},
		Page:         page,
		TotalPages:   totalPages,
		TotalResults: totalResults,
	}

	// Pages past the cap are not addressable through this substitute.
	if page > constants.FallbackMaxTotalPages {
		return out
	}

	if len(collected) > constants.TMDBPageSize {
		collected = collected[:constants.TMDBPageSize]
	}
	out.Items = append(out.Items, collected...)
	return out
}
