package models

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// UserConfig is decoded from the opaque configuration segment of the request
// path. It is decoded once per request and threaded explicitly through every
// call; it is never stored server-side.
type UserConfig struct {
	Language              string          `json:"language"`
	TMDBPrefix            string          `json:"tmdbPrefix"`
	ProvideIMDBID         string          `json:"provideImdbId"`
	SessionID             string          `json:"sessionId"`
	Catalogs              []CatalogSelect `json:"catalogs"`
	SearchEnabled         string          `json:"searchEnabled"`
	RPDBKey               string          `json:"rpdbkey"`
	HideEpisodeThumbnails string          `json:"hideEpisodeThumbnails"`
}

// CatalogSelect picks one catalog definition for the manifest, in order.
type CatalogSelect struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	ShowInHome bool   `json:"showInHome"`
}

// ParseUserConfig decodes the opaque path segment: a URL-escaped JSON object.
// An empty segment yields the zero config (all defaults). A present but
// undecodable segment is a configuration error.
func ParseUserConfig(segment string) (UserConfig, error) {
	var cfg UserConfig
	if strings.TrimSpace(segment) == "" {
		return cfg, nil
	}
	decoded, err := url.QueryUnescape(segment)
	if err != nil {
		return cfg, fmt.Errorf("unescape config segment: %w", err)
	}
	if err := json.Unmarshal([]byte(decoded), &cfg); err != nil {
		return cfg, fmt.Errorf("decode config segment: %w", err)
	}
	return cfg, nil
}

// TMDBPrefixEnabled reports whether catalog names carry the "TMDB - " prefix.
func (c UserConfig) TMDBPrefixEnabled() bool { return c.TMDBPrefix == "true" }

// ProvideIMDBIDEnabled reports whether the addon advertises imdb id support.
func (c UserConfig) ProvideIMDBIDEnabled() bool { return c.ProvideIMDBID == "true" }

// SearchDisabled reports whether the synthetic search catalogs are suppressed.
// Search is on unless explicitly turned off, matching the configure UI.
func (c UserConfig) SearchDisabled() bool { return c.SearchEnabled == "false" }

// HideEpisodeThumbnailsEnabled reports whether episode thumbnails are dropped.
func (c UserConfig) HideEpisodeThumbnailsEnabled() bool {
	return c.HideEpisodeThumbnails == "true"
}
