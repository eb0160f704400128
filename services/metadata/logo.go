package metadata

import (
	"context"
	"log"
	"strings"

	"github.com/sourcegraph/conc"
)

// Fanart responds with this "The Crime" logo for every id it considers
// invalid; treat it as no result.
const blacklistedLogoURL = "https://assets.fanart.tv/fanart/tv/0/hdtvlogo/-60a02798b7eea.png"

// pickFanartLogo selects the best-fit logo: request language first, then the
// title's original language, then English, then whatever comes first.
func pickFanartLogo(logos []fanartLogo, language, originalLanguage string) string {
	if len(logos) == 0 {
		return ""
	}
	lang := languageCode(language)
	for _, want := range []string{lang, originalLanguage, "en"} {
		for _, l := range logos {
			if l.Lang == want {
				return l.URL
			}
		}
	}
	return logos[0].URL
}

// pickTMDBLogo applies the same preference order to TMDB image listings.
func pickTMDBLogo(logos []tmdbImage, language, originalLanguage string) string {
	lang := languageCode(language)
	for _, want := range []string{lang, originalLanguage, "en"} {
		for _, l := range logos {
			if l.ISO6391 == want {
				return tmdbImageBaseURL + l.FilePath
			}
		}
	}
	return ""
}

// languageCode strips the region from a BCP 47 tag ("pt-BR" -> "pt").
func languageCode(language string) string {
	if i := strings.IndexByte(language, '-'); i >= 0 {
		return language[:i]
	}
	return language
}

// sanitizeLogoURL drops the known-bad fanart URL and upgrades the scheme.
func sanitizeLogoURL(logoURL string) string {
	if logoURL == "" || logoURL == blacklistedLogoURL {
		return ""
	}
	return strings.Replace(logoURL, "http://", "https://", 1)
}

// movieLogo resolves the best movie logo across both providers. Fanart wins
// when both respond; provider failures are absent results, never errors.
func (s *Service) movieLogo(ctx context.Context, tmdbID, language, originalLanguage string) string {
	var fanartURL, tmdbURL string

	var wg conc.WaitGroup
	if s.fanart.isConfigured() {
		wg.Go(func() {
			logos, err := s.fanart.movieLogos(ctx, tmdbID)
			if err != nil {
				log.Printf("[logo] fanart movie lookup failed for %s: %v", tmdbID, err)
				return
			}
			fanartURL = pickFanartLogo(logos, language, originalLanguage)
		})
	}
	wg.Go(func() {
		images, err := s.tmdb.movieImages(ctx, tmdbID)
		if err != nil {
			log.Printf("[logo] tmdb movie images failed for %s: %v", tmdbID, err)
			return
		}
		tmdbURL = pickTMDBLogo(images.Logos, language, originalLanguage)
	})
	wg.Wait()

	if url := sanitizeLogoURL(fanartURL); url != "" {
		return url
	}
	return sanitizeLogoURL(tmdbURL)
}

// tvLogo resolves the best series logo. Fanart is keyed by TVDB id, the TMDB
// fallback by TMDB id; either id may be absent.
func (s *Service) tvLogo(ctx context.Context, tvdbID int64, tmdbID, language, originalLanguage string) string {
	var fanartURL, tmdbURL string

	var wg conc.WaitGroup
	if s.fanart.isConfigured() && tvdbID > 0 {
		wg.Go(func() {
			logos, err := s.fanart.showLogos(ctx, tvdbID)
			if err != nil {
				log.Printf("[logo] fanart show lookup failed for tvdb %d: %v", tvdbID, err)
				return
			}
			fanartURL = pickFanartLogo(logos, language, originalLanguage)
		})
	}
	if tmdbID != "" {
		wg.Go(func() {
			images, err := s.tmdb.tvImages(ctx, tmdbID)
			if err != nil {
				log.Printf("[logo] tmdb tv images failed for %s: %v", tmdbID, err)
				return
			}
			tmdbURL = pickTMDBLogo(images.Logos, language, originalLanguage)
		})
	}
	wg.Wait()

	if url := sanitizeLogoURL(fanartURL); url != "" {
		return url
	}
	return sanitizeLogoURL(tmdbURL)
}
