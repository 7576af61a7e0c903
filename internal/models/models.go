// Package models defines the data structures exchanged between the provider
// adapters and the rest of the application. Adapters normalize every external
// response into these types before returning; the DTOs are never mutated
// after construction.
package models

// MediaType identifies the kind of media an item refers to.
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// MediaItem is the app-wide representation of one movie or TV entry.
type MediaItem struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	OriginalTitle string    `json:"originalTitle"`
	PosterPath    *string   `json:"posterPath"`
	BackdropPath  *string   `json:"backdropPath"`
	Overview      string    `json:"overview"`
	ReleaseDate   string    `json:"releaseDate"` // ISO date, may be empty
	VoteAverage   *float64  `json:"voteAverage"` // 0-10, nil when the provider has no rating
	VoteCount     int       `json:"voteCount"`
	MediaType     MediaType `json:"mediaType"`
	GenreIDs      []int     `json:"genreIds"`
}

// TrendingItem is a MediaItem with its 1-based position in a trending page.
// Within any returned list, ranks strictly increase by list position.
type TrendingItem struct {
	MediaItem
	Rank int `json:"rank"`
}

// Genre is an id/name pair as reported by a provider.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProductionCountry identifies a country involved in production.
type ProductionCountry struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// SpokenLanguage identifies a language spoken in the media.
type SpokenLanguage struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// MediaDetails extends MediaItem with the fields only available from a
// dedicated details lookup.
type MediaDetails struct {
	MediaItem
	Runtime             *int                `json:"runtime"` // minutes
	Genres              []Genre             `json:"genres"`
	Tagline             string              `json:"tagline"`
	Status              string              `json:"status"`
	ProductionCountries []ProductionCountry `json:"productionCountries"`
	SpokenLanguages     []SpokenLanguage    `json:"spokenLanguages"`

	// TV only
	NumberOfSeasons  *int `json:"numberOfSeasons,omitempty"`
	NumberOfEpisodes *int `json:"numberOfEpisodes,omitempty"`
}

// CastMember is one credited performer. Lower Order means higher billing.
type CastMember struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profilePath"`
	Order       int     `json:"order"`
}

// Streaming availability types
const (
	StreamingTypeFlatrate = "flatrate"
	StreamingTypeRent     = "rent"
	StreamingTypeBuy      = "buy"
)

// StreamingProvider describes where a title can be streamed, rented or bought.
type StreamingProvider struct {
	ProviderID   int    `json:"providerId"`
	ProviderName string `json:"providerName"`
	LogoPath     string `json:"logoPath"`
	Link         string `json:"link"`
	Type         string `json:"type"`
	IsAvailable  bool   `json:"isAvailable"`
}

// Paginated is one page of an ordered result set.
type Paginated[T any] struct {
	Items        []T `json:"items"`
	Page         int `json:"page"`
	TotalPages   int `json:"totalPages"`
	TotalResults int `json:"totalResults"`
}

// EmptyPage returns a valid, contract-shaped empty page. Items is always a
// non-nil list so callers and JSON consumers never see null.
func EmptyPage[T any](page int) *Paginated[T] {
	if page < 1 {
		page = 1
	}
	return &Paginated[T]{
		Items:        []T{},
		Page:         page,
		TotalPages:   0,
		TotalResults: 0,
	}
}

// DiscoverOptions carries the page and optional filters for discover-by-country.
type DiscoverOptions struct {
	Page    int    `json:"page,omitempty"`
	Year    int    `json:"year,omitempty"`
	GenreID int    `json:"genreId,omitempty"`
	SortBy  string `json:"sortBy,omitempty"`
}
