package services

import (
	"strings"

	"github.com/ldary/mediadex/internal/models"
)

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func equalFold(a, b string) bool {
	return strings.EqualFold(a, b)
}

const offlinePosterBase = "https://static.mediadex.local/posters"

func offlineItem(id int, title, releaseDate string, rating float64, votes int, mediaType models.MediaType, genreIDs []int) models.MediaItem {
	poster := offlinePosterBase + "/" + title[:1] + ".jpg"
	return models.MediaItem{
		ID:            id,
		Title:         title,
		OriginalTitle: title,
		PosterPath:    &poster,
		Overview:      "A " + string(mediaType) + " from the built-in offline catalog.",
		ReleaseDate:   releaseDate,
		VoteAverage:   floatPtr(rating),
		VoteCount:     votes,
		MediaType:     mediaType,
		GenreIDs:      genreIDs,
	}
}

func offlineCast(members ...string) []models.CastMember {
	out := make([]models.CastMember, 0, len(members))
	for i, name := range members {
		out = append(out, models.CastMember{
			ID:    900000 + i,
			Name:  name,
			Order: i,
		})
	}
	return out
}

// offlineCatalog is deterministic by construction: ids, order, and every
// field are fixed at compile time. Ids live in a 9xxx range no live provider
// uses.
var offlineCatalog = []offlineTitle{
	{
		item:       offlineItem(9001, "Signal Lost", "2019-03-15", 7.8, 1204, models.MediaTypeMovie, []int{878, 53}),
		runtime:    112,
		tagline:    "The last transmission was a warning.",
		country:    models.ProductionCountry{Code: "US", Name: "United States of America"},
		language:   models.SpokenLanguage{Code: "en", Name: "English"},
		cast:       offlineCast("Dana Reyes", "Marcus Cole", "Priya Anand"),
		providers:  []models.StreamingProvider{{ProviderID: 9101, ProviderName: "Offline Play", Type: models.StreamingTypeFlatrate, IsAvailable: true}},
		trailerKey: "off-sl-trailer",
		related:    []int{9002, 9004},
	},
	{
		item:       offlineItem(9002, "The Quiet Harbor", "2021-09-02", 8.1, 3420, models.MediaTypeMovie, []int{18}),
		runtime:    126,
		tagline:    "Some storms never reach the shore.",
		country:    models.ProductionCountry{Code: "GB", Name: "United Kingdom"},
		language:   models.SpokenLanguage{Code: "en", Name: "English"},
		cast:       offlineCast("Eleanor Moss", "Tomas Keating"),
		providers:  []models.StreamingProvider{{ProviderID: 9102, ProviderName: "Offline Rent", Type: models.StreamingTypeRent, IsAvailable: true}},
		trailerKey: "off-qh-trailer",
		related:    []int{9001},
	},
	{
		item:      offlineItem(9003, "Paper Lanterns", "2017-11-20", 7.2, 856, models.MediaTypeMovie, []int{10749, 18}),
		runtime:   98,
		tagline:   "Light finds a way.",
		country:   models.ProductionCountry{Code: "JP", Name: "Japan"},
		language:  models.SpokenLanguage{Code: "ja", Name: "Japanese"},
		cast:      offlineCast("Aiko Tanabe", "Kenji Mori", "Yuki Sato"),
		providers: []models.StreamingProvider{},
		related:   []int{},
	},
	{
		item:       offlineItem(9004, "Vector Run", "2023-06-30", 6.9, 2210, models.MediaTypeMovie, []int{28, 878}),
		runtime:    104,
		tagline:    "Outrun the algorithm.",
		country:    models.ProductionCountry{Code: "US", Name: "United States of America"},
		language:   models.SpokenLanguage{Code: "en", Name: "English"},
		cast:       offlineCast("Jo Okafor", "Lena Brandt"),
		providers:  []models.StreamingProvider{{ProviderID: 9101, ProviderName: "Offline Play", Type: models.StreamingTypeFlatrate, IsAvailable: true}, {ProviderID: 9103, ProviderName: "Offline Store", Type: models.StreamingTypeBuy, IsAvailable: true}},
		trailerKey: "off-vr-trailer",
		related:    []int{9001},
	},
	{
		item:       offlineItem(9101, "Northern Static", "2020-01-12", 8.4, 5120, models.MediaTypeTV, []int{18, 9648}),
		runtime:    52,
		tagline:    "Every frequency hides a voice.",
		country:    models.ProductionCountry{Code: "US", Name: "United States of America"},
		language:   models.SpokenLanguage{Code: "en", Name: "English"},
		cast:       offlineCast("Ruth Calloway", "Dev Sharma", "Ingrid Holm"),
		providers:  []models.StreamingProvider{{ProviderID: 9101, ProviderName: "Offline Play", Type: models.StreamingTypeFlatrate, IsAvailable: true}},
		trailerKey: "off-ns-trailer",
		related:    []int{9102},
		seasons:    3,
		episodes:   24,
	},
	{
		item:      offlineItem(9102, "Harbor Lights", "2018-04-08", 7.5, 1980, models.MediaTypeTV, []int{18}),
		runtime:   45,
		tagline:   "A town, a tide, a secret.",
		country:   models.ProductionCountry{Code: "GB", Name: "United Kingdom"},
		language:  models.SpokenLanguage{Code: "en", Name: "English"},
		cast:      offlineCast("Niall Brady", "Sine Doyle"),
		providers: []models.StreamingProvider{},
		related:   []int{9101},
		seasons:   2,
		episodes:  16,
	},
}
