package constants

// Provider name constants for consistent usage across internal packages
const (
	ProviderTMDB    = "tmdb"
	ProviderOMDB    = "omdb"
	ProviderOffline = "offline"
)

// Environment variables holding provider API keys
const (
	EnvTMDBAPIKey = "TMDB_API_KEY"
	EnvOMDBAPIKey = "OMDB_API_KEY"
)
