package models

import "encoding/json"

// Manifest describes the addon to the client: which catalogs exist for the
// current configuration, which resources are served and which id prefixes the
// meta endpoint understands.
type Manifest struct {
	ID            string         `json:"id"`
	Version       string         `json:"version"`
	Favicon       string         `json:"favicon,omitempty"`
	Logo          string         `json:"logo,omitempty"`
	Background    string         `json:"background,omitempty"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Resources     []string       `json:"resources"`
	Types         []string       `json:"types"`
	IDPrefixes    []string       `json:"idPrefixes"`
	BehaviorHints BehaviorHints  `json:"behaviorHints"`
	Catalogs      []CatalogEntry `json:"catalogs"`
}

type BehaviorHints struct {
	Configurable          bool `json:"configurable"`
	ConfigurationRequired bool `json:"configurationRequired"`
}

// CatalogEntry is a manifest-level catalog descriptor.
type CatalogEntry struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Name     string       `json:"name"`
	PageSize int          `json:"pageSize,omitempty"`
	Extra    []ExtraField `json:"extra"`
}

// ExtraField is a catalog filter descriptor (genre, search, skip).
type ExtraField struct {
	Name       string   `json:"name"`
	Options    []string `json:"options,omitempty"`
	IsRequired bool     `json:"isRequired,omitempty"`
}

// Meta is the canonical per-title record served by the meta endpoint.
// IMDBRating is always present as a string ("N/A" when no source was usable).
// Logo is omitted entirely when no valid URL was resolved.
type Meta struct {
	ID             string             `json:"id,omitempty"`
	IMDBID         string             `json:"imdb_id,omitempty"`
	Type           string             `json:"type,omitempty"`
	Name           string             `json:"name,omitempty"`
	Slug           string             `json:"slug,omitempty"`
	Description    string             `json:"description,omitempty"`
	Genre          []string           `json:"genre,omitempty"`
	Genres         []string           `json:"genres,omitempty"`
	Country        string             `json:"country,omitempty"`
	Released       string             `json:"released,omitempty"`
	Year           string             `json:"year"`
	ReleaseInfo    string             `json:"releaseInfo"`
	Status         string             `json:"status,omitempty"`
	Runtime        string             `json:"runtime,omitempty"`
	Cast           []string           `json:"cast,omitempty"`
	Director       []string           `json:"director,omitempty"`
	Writer         []string           `json:"writer,omitempty"`
	Poster         string             `json:"poster,omitempty"`
	Background     string             `json:"background,omitempty"`
	Logo           string             `json:"logo,omitempty"`
	IMDBRating     string             `json:"imdbRating"`
	Trailers       []Trailer          `json:"trailers,omitempty"`
	TrailerStreams []TrailerStream    `json:"trailerStreams,omitempty"`
	Links          []MetaLink         `json:"links,omitempty"`
	Videos         []VideoItem        `json:"videos,omitempty"`
	BehaviorHints  *MetaBehaviorHints `json:"behaviorHints,omitempty"`
}

// MetaBehaviorHints carries playback hints for the client. DefaultVideoID is
// null for series, which carry their videos list instead.
type MetaBehaviorHints struct {
	DefaultVideoID     *string `json:"defaultVideoId"`
	HasScheduledVideos bool    `json:"hasScheduledVideos"`
}

// MetaPreview is the lightweight record used in catalog listings. It
// deliberately omits the expensive fields (logo, cast, episodes, rating)
// that only the single-item meta endpoint computes.
type MetaPreview struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Poster      string   `json:"poster,omitempty"`
	Background  string   `json:"background,omitempty"`
	Description string   `json:"description,omitempty"`
	ReleaseInfo string   `json:"releaseInfo,omitempty"`
	Year        string   `json:"year,omitempty"`
	Genre       []string `json:"genre,omitempty"`
	Genres      []string `json:"genres,omitempty"`
}

// MetaLink links to a page within the client (rating, share, genre, people).
type MetaLink struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	URL      string `json:"url"`
}

// Trailer is the legacy trailer shape (YouTube id + type).
type Trailer struct {
	Source string `json:"source"`
	Type   string `json:"type"`
}

// TrailerStream is the stream-shaped trailer entry.
type TrailerStream struct {
	Title string `json:"title"`
	YtID  string `json:"ytId"`
}

// VideoItem is one episode of a series, flattened across seasons.
type VideoItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Season    int    `json:"season"`
	Episode   int    `json:"episode"`
	Released  string `json:"released,omitempty"`
	Overview  string `json:"overview,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// CatalogResponse wraps a catalog listing.
type CatalogResponse struct {
	Metas []MetaPreview `json:"metas"`
}

// MetaResponse wraps a single canonical meta. A nil Meta serializes as
// {"meta": {}} so a single bad title never produces a hard failure.
type MetaResponse struct {
	Meta *Meta `json:"meta"`
}

func (r MetaResponse) MarshalJSON() ([]byte, error) {
	if r.Meta == nil {
		return []byte(`{"meta": {}}`), nil
	}
	type alias MetaResponse
	return json.Marshal(alias(r))
}
