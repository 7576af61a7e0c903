package services

import (
	"strconv"
	"strings"

	"github.com/ldary/mediadex/internal/constants"
	"github.com/ldary/mediadex/internal/models"
)

// normalizeOMDBValue maps OMDb's "N/A" sentinel to the empty string.
func normalizeOMDBValue(s string) string {
	if s == "N/A" {
		return ""
	}
	return s
}

// omdbMediaType converts OMDb's Type field. Episodes and games do not fit the
// movie/tv contract and are dropped.
func omdbMediaType(omdbType string) (models.MediaType, bool) {
	switch omdbType {
	case "movie":
		return models.MediaTypeMovie, true
	case "series":
		return models.MediaTypeTV, true
	default:
		return "", false
	}
}

// omdbYearToDate converts "1999" or "1999–2003" into an ISO date. OMDb only
// reports the year, so the date is pinned to January 1st.
func omdbYearToDate(year string) string {
	year = normalizeOMDBValue(year)
	if len(year) < 4 {
		return ""
	}
	year = year[:4]
	if _, err := strconv.Atoi(year); err != nil {
		return ""
	}
	return year + "-01-01"
}

// omdbRuntimeMinutes parses "136 min" into 136.
func omdbRuntimeMinutes(runtime string) int {
	runtime = normalizeOMDBValue(runtime)
	fields := strings.Fields(runtime)
	if len(fields) == 0 {
		return 0
	}
	minutes, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0
	}
	return minutes
}

// omdbRating parses "8.7" into a rating pointer, nil when absent.
func omdbRating(rating string) *float64 {
	rating = normalizeOMDBValue(rating)
	if rating == "" {
		return nil
	}
	v, err := strconv.ParseFloat(rating, 64)
	if err != nil {
		return nil
	}
	return &v
}

// omdbVotes parses "2,134,075" into 2134075.
func omdbVotes(votes string) int {
	votes = strings.ReplaceAll(normalizeOMDBValue(votes), ",", "")
	v, err := strconv.Atoi(votes)
	if err != nil {
		return 0
	}
	return v
}

// omdbGenres resolves OMDb's comma-separated genre names into the id/name
// pairs the contract uses. Names without a known id are kept with id 0 so the
// display name survives.
func omdbGenres(genre string) ([]models.Genre, []int) {
	genre = normalizeOMDBValue(genre)
	if genre == "" {
		return []models.Genre{}, []int{}
	}

	names := strings.Split(genre, ",")
	genres := make([]models.Genre, 0, len(names))
	ids := make([]int, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		id := constants.GenreIDByName[name]
		genres = append(genres, models.Genre{ID: id, Name: name})
		if id != 0 {
			ids = append(ids, id)
		}
	}
	return genres, ids
}

// omdbCountries maps the comma-separated country names. OMDb reports no ISO
// codes, so Code stays empty.
func omdbCountries(country string) []models.ProductionCountry {
	country = normalizeOMDBValue(country)
	if country == "" {
		return []models.ProductionCountry{}
	}
	names := strings.Split(country, ",")
	out := make([]models.ProductionCountry, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, models.ProductionCountry{Name: name})
	}
	return out
}

func omdbLanguages(language string) []models.SpokenLanguage {
	language = normalizeOMDBValue(language)
	if language == "" {
		return []models.SpokenLanguage{}
	}
	names := strings.Split(language, ",")
	out := make([]models.SpokenLanguage, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, models.SpokenLanguage{Name: name})
	}
	return out
}

// mapSearchItem normalizes one search result, bridging its IMDb id. Search
// results carry no rating or overview; those stay at their zero values.
func (o *OMDB) mapSearchItem(item models.OMDBSearchItem, mediaType models.MediaType) models.MediaItem {
	return models.MediaItem{
		ID:            o.bridge.GenerateNumericID(item.ImdbID),
		Title:         item.Title,
		OriginalTitle: item.Title,
		PosterPath:    strPtr(normalizeOMDBValue(item.Poster)),
		ReleaseDate:   omdbYearToDate(item.Year),
		MediaType:     mediaType,
		GenreIDs:      []int{},
	}
}

// mapDetails normalizes a full details response onto the contract shape. id is
// the caller's numeric id; re-deriving it from the payload's imdbID would give
// the same value, but the caller's copy is already authoritative.
func (o *OMDB) mapDetails(raw *models.OMDBDetails, mediaType models.MediaType, id int) *models.MediaDetails {
	genres, genreIDs := omdbGenres(raw.Genre)

	details := &models.MediaDetails{
		MediaItem: models.MediaItem{
			ID:            id,
			Title:         raw.Title,
			OriginalTitle: raw.Title,
			PosterPath:    strPtr(normalizeOMDBValue(raw.Poster)),
			Overview:      normalizeOMDBValue(raw.Plot),
			ReleaseDate:   omdbYearToDate(raw.Year),
			VoteAverage:   omdbRating(raw.ImdbRating),
			VoteCount:     omdbVotes(raw.ImdbVotes),
			MediaType:     mediaType,
			GenreIDs:      genreIDs,
		},
		Runtime:             intPtr(omdbRuntimeMinutes(raw.Runtime)),
		Genres:              genres,
		Status:              omdbStatus(raw.Type, raw.Year),
		ProductionCountries: omdbCountries(raw.Country),
		SpokenLanguages:     omdbLanguages(raw.Language),
	}

	if mediaType == models.MediaTypeTV {
		if seasons, err := strconv.Atoi(normalizeOMDBValue(raw.TotalSeasons)); err == nil {
			details.NumberOfSeasons = intPtr(seasons)
		}
	}
	return details
}

// omdbStatus approximates the release status: a series year range with an
// open end ("2008–") is still airing, anything else is released.
func omdbStatus(omdbType, year string) string {
	if omdbType == "series" && strings.HasSuffix(normalizeOMDBValue(year), "–") {
		return "Returning Series"
	}
	return "Released"
}

// emptyOMDBDetails is the contract-shaped shell returned when the bridge has
// no native id for a numeric id. Every collection field is non-nil so JSON
// consumers never see null where a list belongs.
func emptyOMDBDetails(mediaType models.MediaType, id int) *models.MediaDetails {
	return &models.MediaDetails{
		MediaItem: models.MediaItem{
			ID:        id,
			MediaType: mediaType,
			GenreIDs:  []int{},
		},
		Genres:              []models.Genre{},
		ProductionCountries: []models.ProductionCountry{},
		SpokenLanguages:     []models.SpokenLanguage{},
	}
}
