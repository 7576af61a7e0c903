// Package models defines data structures for OMDb API responses. OMDb keys
// everything by opaque IMDb string ids and encodes numbers as formatted
// strings, so these types stay close to the wire and the adapter normalizes.
package models

// OMDBSearchItem is one result of an OMDb search call.
type OMDBSearchItem struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	ImdbID string `json:"imdbID"`
	Type   string `json:"Type"` // "movie", "series", "episode", "game"
	Poster string `json:"Poster"`
}

// OMDBSearchResponse is the envelope of an OMDb search. Response is the
// string "True" or "False"; Error is set when it is "False".
type OMDBSearchResponse struct {
	Search       []OMDBSearchItem `json:"Search"`
	TotalResults string           `json:"totalResults"`
	Response     string           `json:"Response"`
	Error        string           `json:"Error"`
}

// OMDBDetails is a full title lookup (i= or t=). All numeric fields arrive
// as display strings ("136 min", "8.7", "2,134,075", "N/A").
type OMDBDetails struct {
	Title        string `json:"Title"`
	Year         string `json:"Year"`
	Rated        string `json:"Rated"`
	Released     string `json:"Released"` // "02 Jun 1999"
	Runtime      string `json:"Runtime"`  // "136 min"
	Genre        string `json:"Genre"`    // "Action, Sci-Fi"
	Director     string `json:"Director"`
	Actors       string `json:"Actors"` // "A, B, C" in billing order
	Plot         string `json:"Plot"`
	Language     string `json:"Language"`
	Country      string `json:"Country"`
	Poster       string `json:"Poster"`
	ImdbRating   string `json:"imdbRating"`
	ImdbVotes    string `json:"imdbVotes"`
	ImdbID       string `json:"imdbID"`
	Type         string `json:"Type"`
	TotalSeasons string `json:"totalSeasons"`
	Response     string `json:"Response"`
	Error        string `json:"Error"`
}
