// Package services implements the provider adapters behind the shared media
// capability contract, and the registry that dispatches to them.
package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ldary/mediadex/internal/models"
)

// MediaProvider is the capability contract every adapter satisfies. It is
// provider-agnostic by construction: the rest of the application consumes
// only this interface and the normalized DTOs in internal/models.
type MediaProvider interface {
	// Name returns the registry id of the adapter
	Name() string

	// GetTrending returns the trending page for the window ("day" or "week")
	GetTrending(ctx context.Context, mediaType models.MediaType, window string, page int) (*models.Paginated[models.TrendingItem], error)
	// SearchMulti searches movies and TV in one call
	SearchMulti(ctx context.Context, query string, page int) (*models.Paginated[models.MediaItem], error)
	// GetDetails returns the full record for one title
	GetDetails(ctx context.Context, mediaType models.MediaType, id int) (*models.MediaDetails, error)
	// GetCredits returns the cast in billing order
	GetCredits(ctx context.Context, mediaType models.MediaType, id int) ([]models.CastMember, error)
	// GetWatchProviders returns streaming availability for a region
	GetWatchProviders(ctx context.Context, mediaType models.MediaType, id int, region string) ([]models.StreamingProvider, error)
	// GetTrailerKey returns a video site key, or "" when no trailer is available
	GetTrailerKey(ctx context.Context, mediaType models.MediaType, id int) (string, error)
	// GetRecommendations returns titles related to the given one
	GetRecommendations(ctx context.Context, mediaType models.MediaType, id, page int) (*models.Paginated[models.MediaItem], error)
	// DiscoverByCountry lists titles originating from a country
	DiscoverByCountry(ctx context.Context, mediaType models.MediaType, country string, opts models.DiscoverOptions) (*models.Paginated[models.MediaItem], error)
	// ImageURL resolves an image reference to a fetchable URL
	ImageURL(path, size string) string
}

// Registry holds the configured adapters and dispatches by explicit provider
// id. There is no runtime capability probing and no global instance: whoever
// constructs the adapter layer owns the registry.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]MediaProvider
	active    string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]MediaProvider),
	}
}

// Register adds a provider under its name. The first registered provider
// becomes the active one until SetActive says otherwise.
func (r *Registry) Register(provider MediaProvider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := provider.Name()
	if _, exists := r.providers[name]; exists {
		return fmt.Errorf("provider %s already registered", name)
	}

	r.providers[name] = provider
	if r.active == "" {
		r.active = name
	}
	return nil
}

// Get returns a provider by name.
func (r *Registry) Get(name string) (MediaProvider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, exists := r.providers[name]
	return provider, exists
}

// Active returns the currently active provider, or nil when none is registered.
func (r *Registry) Active() MediaProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.providers[r.active]
}

// ActiveName returns the name of the active provider.
func (r *Registry) ActiveName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// SetActive switches the active provider.
func (r *Registry) SetActive(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[name]; !exists {
		return fmt.Errorf("provider %s not found", name)
	}
	r.active = name
	return nil
}

// List returns the registered provider names in stable order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
