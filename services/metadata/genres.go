package metadata

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc"
)

// filterLanguage is one entry of the language filter: the primary translation
// tag ("pt-BR") paired with the language's English display name.
type filterLanguage struct {
	ISO6391 string
	Name    string
}

// genreList returns the genre taxonomy for one media type, cached under the
// catalog namespace so repeated manifest and listing requests stay cheap.
func (s *Service) genreList(ctx context.Context, mediaType, language string) ([]tmdbGenre, error) {
	key := fmt.Sprintf("genres:%s:%s", language, mediaType)
	v, err := s.cache.wrap(cacheNamespaceCatalog, key, func() (any, error) {
		return s.tmdb.genreList(ctx, mediaType, language)
	})
	if err != nil {
		return nil, err
	}
	return v.([]tmdbGenre), nil
}

// genreIDByName resolves a display name back to its numeric id, 0 when the
// name is not part of the taxonomy.
func genreIDByName(genres []tmdbGenre, name string) int64 {
	for _, g := range genres {
		if g.Name == name {
			return g.ID
		}
	}
	return 0
}

// genreNamesByID maps a listing item's genre ids to display names, keeping
// the upstream order and skipping unknown ids.
func genreNamesByID(genres []tmdbGenre, ids []int64) []string {
	if len(ids) == 0 {
		return nil
	}
	byID := make(map[int64]string, len(genres))
	for _, g := range genres {
		byID[g.ID] = g.Name
	}
	var names []string
	for _, id := range ids {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		}
	}
	return names
}

// supportedLanguages joins the primary translation tags with the language
// table's English names. Both lookups run concurrently; the joined result is
// cached under the catalog namespace.
func (s *Service) supportedLanguages(ctx context.Context) ([]filterLanguage, error) {
	v, err := s.cache.wrap(cacheNamespaceCatalog, "languages", func() (any, error) {
		var (
			translations []string
			languages    []tmdbLanguage
			terr, lerr   error
		)
		var wg conc.WaitGroup
		wg.Go(func() { translations, terr = s.tmdb.primaryTranslations(ctx) })
		wg.Go(func() { languages, lerr = s.tmdb.languages(ctx) })
		wg.Wait()
		if terr != nil {
			return nil, terr
		}
		if lerr != nil {
			return nil, lerr
		}

		byCode := make(map[string]string, len(languages))
		for _, l := range languages {
			byCode[l.ISO6391] = l.EnglishName
		}
		out := make([]filterLanguage, 0, len(translations))
		for _, tag := range translations {
			name, ok := byCode[languageCode(tag)]
			if !ok {
				continue
			}
			out = append(out, filterLanguage{ISO6391: tag, Name: name})
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]filterLanguage), nil
}

// languageTag resolves a display name from the language filter back to its
// translation tag ("Portuguese" -> "pt-BR"), empty when unknown.
func languageTag(languages []filterLanguage, name string) string {
	for _, l := range languages {
		if l.Name == name {
			return l.ISO6391
		}
	}
	return ""
}
