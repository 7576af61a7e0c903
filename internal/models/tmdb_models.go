// Package models defines data structures for TMDB API responses.
package models

// TMDBResult is one entry of a paged TMDB listing. Movie and TV entries share
// the struct: movies fill Title/ReleaseDate, TV fills Name/FirstAirDate, and
// multi-search additionally sets MediaType.
type TMDBResult struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	Name          string  `json:"name"`
	OriginalTitle string  `json:"original_title"`
	OriginalName  string  `json:"original_name"`
	Overview      string  `json:"overview"`
	PosterPath    string  `json:"poster_path"`
	BackdropPath  string  `json:"backdrop_path"`
	ReleaseDate   string  `json:"release_date"`
	FirstAirDate  string  `json:"first_air_date"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int     `json:"vote_count"`
	GenreIDs      []int   `json:"genre_ids"`
	MediaType     string  `json:"media_type"`
	Popularity    float64 `json:"popularity"`
}

// TMDBPagedResponse is the envelope of every TMDB listing endpoint.
type TMDBPagedResponse struct {
	Page         int          `json:"page"`
	Results      []TMDBResult `json:"results"`
	TotalPages   int          `json:"total_pages"`
	TotalResults int          `json:"total_results"`
}

type TMDBGenre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type TMDBProductionCountry struct {
	ISO3166_1 string `json:"iso_3166_1"`
	Name      string `json:"name"`
}

type TMDBSpokenLanguage struct {
	ISO639_1 string `json:"iso_639_1"`
	Name     string `json:"english_name"`
}

// TMDBDetails is a movie or TV details response. Movie-only and TV-only
// fields are both present; the zero values of the other kind are ignored.
type TMDBDetails struct {
	ID                  int                     `json:"id"`
	Title               string                  `json:"title"`
	Name                string                  `json:"name"`
	OriginalTitle       string                  `json:"original_title"`
	OriginalName        string                  `json:"original_name"`
	Overview            string                  `json:"overview"`
	PosterPath          string                  `json:"poster_path"`
	BackdropPath        string                  `json:"backdrop_path"`
	ReleaseDate         string                  `json:"release_date"`
	FirstAirDate        string                  `json:"first_air_date"`
	Runtime             int                     `json:"runtime"`
	EpisodeRunTime      []int                   `json:"episode_run_time"`
	VoteAverage         float64                 `json:"vote_average"`
	VoteCount           int                     `json:"vote_count"`
	Genres              []TMDBGenre             `json:"genres"`
	Tagline             string                  `json:"tagline"`
	Status              string                  `json:"status"`
	ProductionCountries []TMDBProductionCountry `json:"production_countries"`
	SpokenLanguages     []TMDBSpokenLanguage    `json:"spoken_languages"`
	NumberOfSeasons     int                     `json:"number_of_seasons"`
	NumberOfEpisodes    int                     `json:"number_of_episodes"`
	IMDBId              string                  `json:"imdb_id"`
}

type TMDBCastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
	Order       int    `json:"order"`
}

type TMDBCreditsResponse struct {
	ID   int              `json:"id"`
	Cast []TMDBCastMember `json:"cast"`
}

type TMDBWatchProvider struct {
	ProviderID      int    `json:"provider_id"`
	ProviderName    string `json:"provider_name"`
	LogoPath        string `json:"logo_path"`
	DisplayPriority int    `json:"display_priority"`
}

// TMDBRegionProviders is the per-region block of a watch/providers response.
type TMDBRegionProviders struct {
	Link     string              `json:"link"`
	Flatrate []TMDBWatchProvider `json:"flatrate"`
	Rent     []TMDBWatchProvider `json:"rent"`
	Buy      []TMDBWatchProvider `json:"buy"`
}

type TMDBWatchProvidersResponse struct {
	ID      int                            `json:"id"`
	Results map[string]TMDBRegionProviders `json:"results"`
}

type TMDBVideo struct {
	Key      string `json:"key"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

type TMDBVideosResponse struct {
	ID      int         `json:"id"`
	Results []TMDBVideo `json:"results"`
}

// TMDBStatusResponse is the error envelope TMDB returns alongside non-2xx
// statuses (status_code 34 = resource not found).
type TMDBStatusResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}
