// Package constants defines numerical limits used by the adapter layer.
package constants

const (
	// Results per page for providers that paginate in fixed blocks
	TMDBPageSize = 20
	OMDBPageSize = 10

	// Ceiling applied to total_pages on fallback-derived catalogs
	FallbackMaxTotalPages = 10
)
