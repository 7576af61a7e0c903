package services

import (
	"context"
	"sort"

	"github.com/ldary/mediadex/internal/constants"
	apperrors "github.com/ldary/mediadex/internal/errors"
	"github.com/ldary/mediadex/internal/models"
	"github.com/ldary/mediadex/pkg/logger"
)

// offlineTitle is one fixture entry. The catalog is small and fully in
// memory; the adapter exists so the app runs with no API keys and so
// cross-adapter behavior can be compared against a provider with every
// capability native.
type offlineTitle struct {
	item       models.MediaItem
	runtime    int
	tagline    string
	country    models.ProductionCountry
	language   models.SpokenLanguage
	cast       []models.CastMember
	providers  []models.StreamingProvider
	trailerKey string
	related    []int
	seasons    int
	episodes   int
}

// Offline is the synthetic provider adapter. Every contract capability is
// served natively from the fixture catalog, with stable ordering and no I/O.
type Offline struct {
	logger logger.Logger
	titles map[int]*offlineTitle
	order  []int
}

// NewOffline creates the offline adapter with the built-in catalog.
func NewOffline(log logger.Logger) *Offline {
	o := &Offline{
		logger: log,
		titles: make(map[int]*offlineTitle),
	}
	for i := range offlineCatalog {
		t := &offlineCatalog[i]
		o.titles[t.item.ID] = t
		o.order = append(o.order, t.item.ID)
	}
	sort.Ints(o.order)
	return o
}

// Name returns the provider id.
func (o *Offline) Name() string {
	return constants.ProviderOffline
}

// GetTrending returns the catalog ordered by rating, ranked from 1.
func (o *Offline) GetTrending(ctx context.Context, mediaType models.MediaType, window string, page int) (*models.Paginated[models.TrendingItem], error) {
	items := o.byType(mediaType)
	sort.SliceStable(items, func(i, j int) bool {
		return *items[i].VoteAverage > *items[j].VoteAverage
	})

	out := &models.Paginated[models.TrendingItem]{
		Items:        []models.TrendingItem{},
		Page:         1,
		TotalPages:   1,
		TotalResults: len(items),
	}
	if page > 1 {
		out.Page = page
		return out, nil
	}
	for i, item := range items {
		out.Items = append(out.Items, models.TrendingItem{MediaItem: item, Rank: i + 1})
	}
	return out, nil
}

// SearchMulti matches case-insensitive title substrings.
func (o *Offline) SearchMulti(ctx context.Context, query string, page int) (*models.Paginated[models.MediaItem], error) {
	items := []models.MediaItem{}
	for _, id := range o.order {
		t := o.titles[id]
		if containsFold(t.item.Title, query) {
			items = append(items, t.item)
		}
	}

	out := &models.Paginated[models.MediaItem]{
		Items:        []models.MediaItem{},
		Page:         1,
		TotalPages:   1,
		TotalResults: len(items),
	}
	if len(items) == 0 {
		out.TotalPages = 0
	}
	if page > 1 {
		out.Page = page
		return out, nil
	}
	out.Items = items
	return out, nil
}

// GetDetails returns the fixture's full record.
func (o *Offline) GetDetails(ctx context.Context, mediaType models.MediaType, id int) (*models.MediaDetails, error) {
	t, err := o.lookup(mediaType, id)
	if err != nil {
		return nil, err
	}

	details := &models.MediaDetails{
		MediaItem:           t.item,
		Runtime:             intPtr(t.runtime),
		Genres:              offlineGenres(t.item.GenreIDs),
		Tagline:             t.tagline,
		Status:              "Released",
		ProductionCountries: []models.ProductionCountry{t.country},
		SpokenLanguages:     []models.SpokenLanguage{t.language},
	}
	if mediaType == models.MediaTypeTV {
		details.NumberOfSeasons = intPtr(t.seasons)
		details.NumberOfEpisodes = intPtr(t.episodes)
	}
	return details, nil
}

// GetCredits returns the fixture cast in billing order.
func (o *Offline) GetCredits(ctx context.Context, mediaType models.MediaType, id int) ([]models.CastMember, error) {
	t, err := o.lookup(mediaType, id)
	if err != nil {
		return nil, err
	}
	out := make([]models.CastMember, len(t.cast))
	copy(out, t.cast)
	return out, nil
}

// GetWatchProviders returns the fixture availability; the region is ignored.
func (o *Offline) GetWatchProviders(ctx context.Context, mediaType models.MediaType, id int, region string) ([]models.StreamingProvider, error) {
	t, err := o.lookup(mediaType, id)
	if err != nil {
		return nil, err
	}
	out := make([]models.StreamingProvider, len(t.providers))
	copy(out, t.providers)
	return out, nil
}

// GetTrailerKey returns the fixture trailer key, "" when the title has none.
func (o *Offline) GetTrailerKey(ctx context.Context, mediaType models.MediaType, id int) (string, error) {
	t, err := o.lookup(mediaType, id)
	if err != nil {
		return "", err
	}
	return t.trailerKey, nil
}

// GetRecommendations returns the fixture's related titles.
func (o *Offline) GetRecommendations(ctx context.Context, mediaType models.MediaType, id, page int) (*models.Paginated[models.MediaItem], error) {
	t, err := o.lookup(mediaType, id)
	if err != nil {
		return nil, err
	}

	out := &models.Paginated[models.MediaItem]{
		Items:        []models.MediaItem{},
		Page:         1,
		TotalPages:   1,
		TotalResults: len(t.related),
	}
	if len(t.related) == 0 {
		out.TotalPages = 0
	}
	if page > 1 {
		out.Page = page
		return out, nil
	}
	for _, relatedID := range t.related {
		if related, ok := o.titles[relatedID]; ok {
			out.Items = append(out.Items, related.item)
		}
	}
	return out, nil
}

// DiscoverByCountry filters the catalog by production country code.
func (o *Offline) DiscoverByCountry(ctx context.Context, mediaType models.MediaType, country string, opts models.DiscoverOptions) (*models.Paginated[models.MediaItem], error) {
	items := []models.MediaItem{}
	for _, id := range o.order {
		t := o.titles[id]
		if t.item.MediaType != mediaType {
			continue
		}
		if !equalFold(t.country.Code, country) {
			continue
		}
		items = append(items, t.item)
	}

	out := &models.Paginated[models.MediaItem]{
		Items:        []models.MediaItem{},
		Page:         1,
		TotalPages:   1,
		TotalResults: len(items),
	}
	if len(items) == 0 {
		out.TotalPages = 0
	}
	if opts.Page > 1 {
		out.Page = opts.Page
		return out, nil
	}
	out.Items = items
	return out, nil
}

// ImageURL passes through; fixture poster paths are synthetic URLs already.
func (o *Offline) ImageURL(path, size string) string {
	return path
}

func (o *Offline) lookup(mediaType models.MediaType, id int) (*offlineTitle, error) {
	t, ok := o.titles[id]
	if !ok || t.item.MediaType != mediaType {
		return nil, apperrors.NewEntityNotFoundError(o.Name(), string(mediaType), id)
	}
	return t, nil
}

func (o *Offline) byType(mediaType models.MediaType) []models.MediaItem {
	items := []models.MediaItem{}
	for _, id := range o.order {
		t := o.titles[id]
		if t.item.MediaType == mediaType {
			items = append(items, t.item)
		}
	}
	return items
}

func offlineGenres(ids []int) []models.Genre {
	out := make([]models.Genre, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Genre{ID: id, Name: constants.TMDBGenreNames[id]})
	}
	return out
}
