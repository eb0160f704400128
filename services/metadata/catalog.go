package metadata

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/facuparedes/tmdb-addon/models"
)

const listingPageSize = 20

// GetCatalog executes one catalog listing request into a page of lightweight
// meta summaries. Results are cached per language, type, id, filter, rpdb key
// and page. The account catalogs are private per-session lists and never go
// through the cache.
func (s *Service) GetCatalog(ctx context.Context, cfg models.UserConfig, mediaType, catalogID string, extra models.CatalogExtra) ([]models.MetaPreview, error) {
	language := cfg.Language
	if language == "" {
		language = defaultLanguage
	}
	page := pageFromSkip(extra.Skip)

	if def, ok := catalogDefinition(catalogID); ok && def.requiresAuth {
		return s.listCatalog(ctx, cfg, mediaType, catalogID, language, page, extra)
	}

	key := fmt.Sprintf("%s:%s:%s:%s:%s:%s:%d", language, mediaType, catalogID, extra.Genre, extra.Search, cfg.RPDBKey, page)
	v, err := s.cache.wrap(cacheNamespaceCatalog, key, func() (any, error) {
		return s.listCatalog(ctx, cfg, mediaType, catalogID, language, page, extra)
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.MetaPreview), nil
}

func (s *Service) listCatalog(ctx context.Context, cfg models.UserConfig, mediaType, catalogID, language string, page int, extra models.CatalogExtra) ([]models.MetaPreview, error) {
	genres, err := s.genreList(ctx, mediaType, language)
	if err != nil {
		log.Printf("[catalog] genre names unavailable for %s/%s: %v", mediaType, language, err)
	}

	items, err := s.fetchListing(ctx, cfg, mediaType, catalogID, language, page, extra)
	if err != nil {
		return nil, err
	}

	metas := make([]models.MetaPreview, 0, len(items))
	for _, item := range items {
		metas = append(metas, s.parseMedia(item, mediaType, language, cfg.RPDBKey, genres))
	}
	return metas, nil
}

// fetchListing routes the request to the right upstream path. A search term
// always wins over the catalog id; the trending and account catalogs have
// dedicated endpoints; everything else goes through discover with filters
// derived from the catalog definition.
func (s *Service) fetchListing(ctx context.Context, cfg models.UserConfig, mediaType, catalogID, language string, page int, extra models.CatalogExtra) ([]tmdbMediaItem, error) {
	if extra.Search != "" {
		return s.tmdb.search(ctx, mediaType, language, extra.Search, page)
	}

	switch catalogID {
	case "tmdb.trending":
		return s.tmdb.trending(ctx, mediaType, trendingWindow(language, extra.Genre), language, page)
	case "tmdb.favorites":
		if cfg.SessionID == "" {
			return nil, fmt.Errorf("favorites catalog requires a session")
		}
		return s.tmdb.favorites(ctx, mediaType, language, cfg.SessionID, page)
	case "tmdb.watchlist":
		if cfg.SessionID == "" {
			return nil, fmt.Errorf("watchlist catalog requires a session")
		}
		return s.tmdb.watchlist(ctx, mediaType, language, cfg.SessionID, page)
	}

	def, ok := catalogDefinition(catalogID)
	if !ok {
		// Unknown ids are a no-op listing, mirroring the manifest filter.
		log.Printf("[catalog] unknown catalog id %q requested", catalogID)
		return nil, nil
	}
	filters, err := s.discoverFilters(ctx, def, mediaType, language, extra.Genre)
	if err != nil {
		return nil, err
	}
	return s.tmdb.discover(ctx, mediaType, language, page, filters)
}

// discoverFilters translates the genre extra into discover query parameters.
// The "year" and "language" catalogs reuse the genre slot for their option
// value; the plain genre browse maps the display name back to its id, with
// "Top" meaning no filter at all.
func (s *Service) discoverFilters(ctx context.Context, def catalogDef, mediaType, language, genre string) (url.Values, error) {
	filters := url.Values{}
	if genre == "" {
		return filters, nil
	}

	switch def.nameKey {
	case "year":
		if mediaType == "movie" {
			filters.Set("primary_release_year", genre)
		} else {
			filters.Set("first_air_date_year", genre)
		}
	case "language":
		languages, err := s.supportedLanguages(ctx)
		if err != nil {
			return nil, err
		}
		tag := languageTag(languages, genre)
		if tag == "" {
			return nil, fmt.Errorf("unknown language option %q", genre)
		}
		filters.Set("with_original_language", languageCode(tag))
	default:
		if genre == "Top" {
			break
		}
		genres, err := s.genreList(ctx, mediaType, language)
		if err != nil {
			return nil, err
		}
		id := genreIDByName(genres, genre)
		if id == 0 {
			return nil, fmt.Errorf("unknown genre option %q", genre)
		}
		filters.Set("with_genres", strconv.FormatInt(id, 10))
	}
	return filters, nil
}

// parseMedia converts one listing item into the lightweight catalog shape.
// The expensive fields (logo, cast, rating, episodes) are deliberately never
// computed here.
func (s *Service) parseMedia(item tmdbMediaItem, mediaType, language, rpdbKey string, genres []tmdbGenre) models.MetaPreview {
	name := item.Title
	date := item.ReleaseDate
	if mediaType == "series" {
		name = item.Name
		date = item.FirstAirDate
	}
	genreNames := genreNamesByID(genres, item.GenreIDs)
	return models.MetaPreview{
		ID:          fmt.Sprintf("tmdb:%d", item.ID),
		Type:        mediaType,
		Name:        name,
		Poster:      s.poster(mediaType, strconv.FormatInt(item.ID, 10), item.PosterPath, language, rpdbKey),
		Background:  backdropURL(item.BackdropPath),
		Description: item.Overview,
		Year:        releaseYear(date),
		ReleaseInfo: releaseYear(date),
		Genre:       genreNames,
		Genres:      genreNames,
	}
}

// pageFromSkip converts the skip extra to a 1-based upstream page number:
// ceil(skip/20)+1, never below 1.
func pageFromSkip(skip int) int {
	if skip <= 0 {
		return 1
	}
	return (skip+listingPageSize-1)/listingPageSize + 1
}
