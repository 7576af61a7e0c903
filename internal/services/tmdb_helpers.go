package services

import (
	"fmt"
	"sort"

	apperrors "github.com/ldary/mediadex/internal/errors"
	"github.com/ldary/mediadex/internal/models"
)

func invalidMediaTypeError(mediaType models.MediaType) error {
	return apperrors.NewAppError(apperrors.ErrorTypeInvalidID,
		fmt.Sprintf("unsupported media type %q", mediaType), nil)
}

// strPtr returns nil for empty strings so optional image paths serialize as null.
func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// floatPtr boxes a vote average.
func floatPtr(f float64) *float64 {
	return &f
}

// intPtr returns nil for non-positive values.
func intPtr(v int) *int {
	if v <= 0 {
		return nil
	}
	return &v
}

// mapResult normalizes one TMDB listing entry. mediaType is the caller's
// expectation for single-type endpoints; multi-search entries carry their own.
func (t *TMDB) mapResult(r models.TMDBResult, mediaType models.MediaType) models.MediaItem {
	if r.MediaType == "movie" {
		mediaType = models.MediaTypeMovie
	} else if r.MediaType == "tv" {
		mediaType = models.MediaTypeTV
	}

	title, originalTitle, releaseDate := r.Title, r.OriginalTitle, r.ReleaseDate
	if mediaType == models.MediaTypeTV {
		title, originalTitle, releaseDate = r.Name, r.OriginalName, r.FirstAirDate
	}

	genreIDs := r.GenreIDs
	if genreIDs == nil {
		genreIDs = []int{}
	}

	return models.MediaItem{
		ID:            r.ID,
		Title:         title,
		OriginalTitle: originalTitle,
		PosterPath:    strPtr(r.PosterPath),
		BackdropPath:  strPtr(r.BackdropPath),
		Overview:      r.Overview,
		ReleaseDate:   releaseDate,
		VoteAverage:   floatPtr(r.VoteAverage),
		VoteCount:     r.VoteCount,
		MediaType:     mediaType,
		GenreIDs:      genreIDs,
	}
}

// mapDetails normalizes a details response.
func (t *TMDB) mapDetails(d models.TMDBDetails, mediaType models.MediaType) *models.MediaDetails {
	title, originalTitle, releaseDate := d.Title, d.OriginalTitle, d.ReleaseDate
	if mediaType == models.MediaTypeTV {
		title, originalTitle, releaseDate = d.Name, d.OriginalName, d.FirstAirDate
	}

	runtime := d.Runtime
	if mediaType == models.MediaTypeTV && runtime == 0 && len(d.EpisodeRunTime) > 0 {
		runtime = d.EpisodeRunTime[0]
	}

	genres := make([]models.Genre, 0, len(d.Genres))
	genreIDs := make([]int, 0, len(d.Genres))
	for _, g := range d.Genres {
		genres = append(genres, models.Genre{ID: g.ID, Name: g.Name})
		genreIDs = append(genreIDs, g.ID)
	}

	countries := make([]models.ProductionCountry, 0, len(d.ProductionCountries))
	for _, c := range d.ProductionCountries {
		countries = append(countries, models.ProductionCountry{Code: c.ISO3166_1, Name: c.Name})
	}

	languages := make([]models.SpokenLanguage, 0, len(d.SpokenLanguages))
	for _, l := range d.SpokenLanguages {
		languages = append(languages, models.SpokenLanguage{Code: l.ISO639_1, Name: l.Name})
	}

	details := &models.MediaDetails{
		MediaItem: models.MediaItem{
			ID:            d.ID,
			Title:         title,
			OriginalTitle: originalTitle,
			PosterPath:    strPtr(d.PosterPath),
			BackdropPath:  strPtr(d.BackdropPath),
			Overview:      d.Overview,
			ReleaseDate:   releaseDate,
			VoteAverage:   floatPtr(d.VoteAverage),
			VoteCount:     d.VoteCount,
			MediaType:     mediaType,
			GenreIDs:      genreIDs,
		},
		Runtime:             intPtr(runtime),
		Genres:              genres,
		Tagline:             d.Tagline,
		Status:              d.Status,
		ProductionCountries: countries,
		SpokenLanguages:     languages,
	}

	if mediaType == models.MediaTypeTV {
		details.NumberOfSeasons = intPtr(d.NumberOfSeasons)
		details.NumberOfEpisodes = intPtr(d.NumberOfEpisodes)
	}
	return details
}

// mapTMDBCast converts and sorts a credits list by billing order.
func mapTMDBCast(cast []models.TMDBCastMember) []models.CastMember {
	out := make([]models.CastMember, 0, len(cast))
	for _, c := range cast {
		out = append(out, models.CastMember{
			ID:          c.ID,
			Name:        c.Name,
			Character:   c.Character,
			ProfilePath: strPtr(c.ProfilePath),
			Order:       c.Order,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// flattenWatchProviders merges the flatrate/rent/buy blocks of one region
// into a single typed list.
func flattenWatchProviders(region models.TMDBRegionProviders) []models.StreamingProvider {
	out := []models.StreamingProvider{}

	appendBlock := func(providers []models.TMDBWatchProvider, kind string) {
		for _, p := range providers {
			out = append(out, models.StreamingProvider{
				ProviderID:   p.ProviderID,
				ProviderName: p.ProviderName,
				LogoPath:     p.LogoPath,
				Link:         region.Link,
				Type:         kind,
				IsAvailable:  true,
			})
		}
	}

	appendBlock(region.Flatrate, models.StreamingTypeFlatrate)
	appendBlock(region.Rent, models.StreamingTypeRent)
	appendBlock(region.Buy, models.StreamingTypeBuy)
	return out
}

// pickTrailerKey chooses an official YouTube trailer first, then any YouTube
// trailer, then any YouTube teaser.
func pickTrailerKey(videos []models.TMDBVideo) string {
	var trailer, teaser string
	for _, v := range videos {
		if v.Site != "YouTube" || v.Key == "" {
			continue
		}
		switch v.Type {
		case "Trailer":
			if v.Official {
				return v.Key
			}
			if trailer == "" {
				trailer = v.Key
			}
		case "Teaser":
			if teaser == "" {
				teaser = v.Key
			}
		}
	}
	if trailer != "" {
		return trailer
	}
	return teaser
}

// tmdbMediaPath maps a media type onto the provider's URL segment.
func tmdbMediaPath(mediaType models.MediaType) (string, error) {
	switch mediaType {
	case models.MediaTypeMovie:
		return "movie", nil
	case models.MediaTypeTV:
		return "tv", nil
	default:
		return "", invalidMediaTypeError(mediaType)
	}
}
