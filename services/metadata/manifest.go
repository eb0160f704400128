package metadata

import (
	"context"
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/facuparedes/tmdb-addon/models"
)

const (
	addonID          = "tmdb-addon"
	addonVersion     = "3.1.4"
	addonName        = "The Movie Database Addon"
	addonDescription = "Provides rich metadata for movies and series from The Movie Database"
)

// GetManifest assembles the manifest for one decoded configuration: the
// user's catalog selection resolved against the static definitions, with
// genre, year and language filter options filled in dynamically.
func (s *Service) GetManifest(ctx context.Context, cfg models.UserConfig) (*models.Manifest, error) {
	language := cfg.Language
	if language == "" {
		language = defaultLanguage
	}
	translated := loadTranslations(language)
	userCatalogs := cfg.Catalogs
	if len(userCatalogs) == 0 {
		userCatalogs = defaultCatalogSelection()
	}

	var (
		movieGenres, seriesGenres []tmdbGenre
		languages                 []filterLanguage
	)
	var wg conc.WaitGroup
	wg.Go(func() {
		var err error
		if movieGenres, err = s.genreList(ctx, "movie", language); err != nil {
			log.Printf("[manifest] movie genres unavailable: %v", err)
		}
	})
	wg.Go(func() {
		var err error
		if seriesGenres, err = s.genreList(ctx, "series", language); err != nil {
			log.Printf("[manifest] series genres unavailable: %v", err)
		}
	})
	wg.Go(func() {
		var err error
		if languages, err = s.supportedLanguages(ctx); err != nil {
			log.Printf("[manifest] languages unavailable: %v", err)
		}
	})
	wg.Wait()

	opts := manifestOptions{
		years:        yearOptions(20),
		movieGenres:  sortedGenreNames(movieGenres),
		seriesGenres: sortedGenreNames(seriesGenres),
		languages:    orderedLanguageNames(language, languages),
	}

	catalogs := make([]models.CatalogEntry, 0, len(userCatalogs)+2)
	for _, sel := range userCatalogs {
		def, ok := catalogDefinition(sel.ID)
		if !ok {
			continue
		}
		if def.requiresAuth && cfg.SessionID == "" {
			continue
		}
		catalogs = append(catalogs, buildCatalogEntry(sel, def, opts, translated, cfg.TMDBPrefixEnabled()))
	}

	if !cfg.SearchDisabled() {
		for _, mediaType := range []string{"movie", "series"} {
			catalogs = append(catalogs, models.CatalogEntry{
				ID:   "tmdb.search",
				Type: mediaType,
				Name: catalogName(translated["search"], cfg.TMDBPrefixEnabled()),
				Extra: []models.ExtraField{
					{Name: "search", IsRequired: true, Options: []string{}},
				},
			})
		}
	}

	description := addonDescription + "."
	if language != defaultLanguage {
		description = addonDescription + " with " + language + " language."
	}

	idPrefixes := []string{"tmdb:"}
	if cfg.ProvideIMDBIDEnabled() {
		idPrefixes = []string{"tmdb:", "tt"}
	}

	return &models.Manifest{
		ID:          addonID,
		Version:     addonVersion,
		Favicon:     s.hostName + "/favicon.png",
		Logo:        s.hostName + "/logo.png",
		Background:  s.hostName + "/background.png",
		Name:        addonName,
		Description: description,
		Resources:   []string{"catalog", "meta"},
		Types:       []string{"movie", "series"},
		IDPrefixes:  idPrefixes,
		BehaviorHints: models.BehaviorHints{
			Configurable:          true,
			ConfigurationRequired: false,
		},
		Catalogs: catalogs,
	}, nil
}

type manifestOptions struct {
	years        []string
	movieGenres  []string
	seriesGenres []string
	languages    []string
}

func buildCatalogEntry(sel models.CatalogSelect, def catalogDef, opts manifestOptions, translated map[string]string, tmdbPrefix bool) models.CatalogEntry {
	entry := models.CatalogEntry{
		ID:       sel.ID,
		Type:     sel.Type,
		Name:     catalogName(translated[def.nameKey], tmdbPrefix),
		PageSize: 20,
		Extra:    []models.ExtraField{},
	}
	if def.supports("genre") {
		entry.Extra = append(entry.Extra, models.ExtraField{
			Name:       "genre",
			Options:    optionsForCatalog(sel, def, opts, translated),
			IsRequired: !sel.ShowInHome,
		})
	}
	if def.supports("search") {
		entry.Extra = append(entry.Extra, models.ExtraField{Name: "search"})
	}
	if def.supports("skip") {
		entry.Extra = append(entry.Extra, models.ExtraField{Name: "skip"})
	}
	return entry
}

// optionsForCatalog resolves the genre-filter option list. Fixed option lists
// are translated; genre-backed lists get a synthetic "Top" prepended unless
// the catalog is pinned to the home screen.
func optionsForCatalog(sel models.CatalogSelect, def catalogDef, opts manifestOptions, translated map[string]string) []string {
	if len(def.defaultOptions) > 0 {
		out := make([]string, 0, len(def.defaultOptions))
		for _, option := range def.defaultOptions {
			if t, ok := translated[option]; ok {
				out = append(out, t)
			} else {
				out = append(out, option)
			}
		}
		return out
	}
	switch def.nameKey {
	case "year":
		return opts.years
	case "language":
		return opts.languages
	}
	genres := opts.movieGenres
	if sel.Type == "series" {
		genres = opts.seriesGenres
	}
	if sel.ShowInHome {
		return genres
	}
	return append([]string{"Top"}, genres...)
}

func catalogName(name string, tmdbPrefix bool) string {
	if tmdbPrefix {
		return "TMDB - " + name
	}
	return name
}

func defaultCatalogSelection() []models.CatalogSelect {
	sel := make([]models.CatalogSelect, 0, len(defaultCatalogOrder)*2)
	for _, id := range defaultCatalogOrder {
		for _, mediaType := range []string{"movie", "series"} {
			sel = append(sel, models.CatalogSelect{
				ID:         "tmdb." + id,
				Type:       mediaType,
				ShowInHome: true,
			})
		}
	}
	return sel
}

// yearOptions lists the years from the current one back maxYears, descending.
func yearOptions(maxYears int) []string {
	max := time.Now().Year()
	years := make([]string, 0, maxYears+1)
	for y := max; y >= max-maxYears; y-- {
		years = append(years, strconv.Itoa(y))
	}
	return years
}

func sortedGenreNames(genres []tmdbGenre) []string {
	names := genreNames(genres)
	sort.Strings(names)
	return names
}

// orderedLanguageNames puts the selected language's name first, sorts the
// rest alphabetically and drops duplicate names. The input slice is never
// mutated.
func orderedLanguageNames(selected string, languages []filterLanguage) []string {
	rest := make([]filterLanguage, 0, len(languages))
	var first string
	for _, l := range languages {
		if first == "" && l.ISO6391 == selected {
			first = l.Name
			continue
		}
		rest = append(rest, l)
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i].Name < rest[j].Name })

	seen := make(map[string]bool, len(languages))
	out := make([]string, 0, len(languages))
	if first != "" {
		seen[first] = true
		out = append(out, first)
	}
	for _, l := range rest {
		if seen[l.Name] {
			continue
		}
		seen[l.Name] = true
		out = append(out, l.Name)
	}
	return out
}
