// Package constants defines application-wide constants and default values.
package constants

const (
	// Service metadata
	AppName        = "mediadex"
	AppVersion     = "1.0.0"
	AppDescription = "Movie and TV discovery backend with pluggable metadata providers"

	// Default configuration values
	DefaultPort     = "5000"
	DefaultLogLevel = "info"

	// Cache settings
	DefaultCacheSize = 1000
	DefaultCacheTTL  = 24 // hours

	// Rate limiting
	TMDBRateLimit = 20 // requests per second
	TMDBRateBurst = 5  // burst capacity
	OMDBRateLimit = 5  // requests per second
	OMDBRateBurst = 2  // burst capacity
)

// TMDBGenreNames maps well-known TMDB genre ids to display names. The OMDb
// adapter uses the inverse mapping to normalize genre names into ids so both
// live providers produce the same DTO shape.
var TMDBGenreNames = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
	10759: "Action & Adventure",
	10762: "Kids",
	10763: "News",
	10764: "Reality",
	10765: "Sci-Fi & Fantasy",
	10766: "Soap",
	10767: "Talk",
	10768: "War & Politics",
}

// GenreIDByName is the inverse of TMDBGenreNames plus common aliases seen in
// OMDb responses.
var GenreIDByName = func() map[string]int {
	m := make(map[string]int, len(TMDBGenreNames)+4)
	for id, name := range TMDBGenreNames {
		m[name] = id
	}
	m["Sci-Fi"] = 878
	m["Musical"] = 10402
	m["Biography"] = 36
	m["Film-Noir"] = 80
	return m
}()
