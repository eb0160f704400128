package metadata

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/facuparedes/tmdb-addon/models"
)

const castLimit = 5

// movieMeta fetches a movie record and normalizes it into the canonical
// shape. Enrichment failures (rating, logo) degrade per field; only the
// primary fetch is fatal.
func (s *Service) movieMeta(ctx context.Context, tmdbID, language string, cfg models.UserConfig) (*models.Meta, error) {
	res, err := s.tmdb.movieInfo(ctx, tmdbID, language)
	if err != nil {
		return nil, fmt.Errorf("movie %s: %w", tmdbID, err)
	}

	imdbID := res.IMDBID
	if imdbID == "" {
		imdbID = res.ExternalIDs.IMDBID
	}
	rating := s.resolveRating(ctx, imdbID, "movie", res.VoteAverage)

	meta := &models.Meta{
		ID:             "tmdb:" + tmdbID,
		IMDBID:         imdbID,
		Type:           "movie",
		Name:           res.Title,
		Slug:           parseSlug("movie", res.Title, imdbID),
		Description:    res.Overview,
		Genre:          genreNames(res.Genres),
		Genres:         genreNames(res.Genres),
		Country:        parseCountry(res.ProductionCountries),
		Released:       parseReleased(res.ReleaseDate),
		Year:           releaseYear(res.ReleaseDate),
		ReleaseInfo:    releaseYear(res.ReleaseDate),
		Runtime:        parseRuntime(res.Runtime),
		Cast:           parseCast(res.Credits),
		Director:       parseDirector(res.Credits),
		Writer:         parseMovieWriters(res.Credits),
		Poster:         s.poster("movie", tmdbID, res.PosterPath, language, cfg.RPDBKey),
		Background:     backdropURL(res.BackdropPath),
		IMDBRating:     rating,
		Trailers:       parseTrailers(res.Videos),
		TrailerStreams: parseTrailerStreams(res.Videos),
		BehaviorHints: &models.MetaBehaviorHints{
			DefaultVideoID:     defaultVideoID(imdbID, res.ID),
			HasScheduledVideos: false,
		},
	}
	meta.Links = s.buildLinks(rating, imdbID, res.Title, "movie", language, res.Genres, res.Credits)
	meta.Logo = s.movieLogo(ctx, tmdbID, language, res.OriginalLanguage)
	return meta, nil
}

// tvMeta fetches a series record and normalizes it, expanding all seasons
// into the flattened videos list. Episode failures leave a partial list.
func (s *Service) tvMeta(ctx context.Context, tmdbID, language string, cfg models.UserConfig) (*models.Meta, error) {
	res, err := s.tmdb.tvInfo(ctx, tmdbID, language)
	if err != nil {
		return nil, fmt.Errorf("tv %s: %w", tmdbID, err)
	}

	imdbID := res.ExternalIDs.IMDBID
	rating := s.resolveRating(ctx, imdbID, "series", res.VoteAverage)
	runtime := seriesRuntime(res)

	meta := &models.Meta{
		ID:             "tmdb:" + tmdbID,
		IMDBID:         imdbID,
		Type:           "series",
		Name:           res.Name,
		Slug:           parseSlug("series", res.Name, imdbID),
		Description:    res.Overview,
		Genre:          genreNames(res.Genres),
		Genres:         genreNames(res.Genres),
		Country:        parseCountry(res.ProductionCountries),
		Released:       parseReleased(res.FirstAirDate),
		Year:           seriesYears(res.Status, res.FirstAirDate, res.LastAirDate),
		ReleaseInfo:    seriesYears(res.Status, res.FirstAirDate, res.LastAirDate),
		Status:         res.Status,
		Runtime:        parseRuntime(runtime),
		Cast:           parseCast(res.Credits),
		Writer:         parseCreatedBy(res.CreatedBy),
		Poster:         s.poster("series", tmdbID, res.PosterPath, language, cfg.RPDBKey),
		Background:     backdropURL(res.BackdropPath),
		IMDBRating:     rating,
		Trailers:       parseTrailers(res.Videos),
		TrailerStreams: parseTrailerStreams(res.Videos),
		BehaviorHints: &models.MetaBehaviorHints{
			HasScheduledVideos: true,
		},
	}
	meta.Links = s.buildLinks(rating, imdbID, res.Name, "series", language, res.Genres, res.Credits)
	meta.Logo = s.tvLogo(ctx, res.ExternalIDs.TVDBID, tmdbID, language, res.OriginalLanguage)

	videos, err := s.expandEpisodes(ctx, tmdbID, imdbID, language, res.Seasons, cfg.HideEpisodeThumbnailsEnabled())
	if err != nil {
		log.Printf("[meta] episodes unavailable for tmdb:%s: %v", tmdbID, err)
	}
	meta.Videos = videos
	return meta, nil
}

// resolveRating prefers the external rating source, then the provider's own
// average to one decimal, then "N/A". Lookup failures degrade silently.
func (s *Service) resolveRating(ctx context.Context, imdbID, mediaType string, voteAverage float64) string {
	if imdbID != "" {
		rating, err := s.ratings.imdbRating(ctx, imdbID, mediaType)
		if err != nil {
			log.Printf("[meta] rating lookup failed for %s: %v", imdbID, err)
		} else if rating != "" {
			return rating
		}
	}
	if voteAverage > 0 {
		return fmt.Sprintf("%.1f", voteAverage)
	}
	return "N/A"
}

// poster returns the RPDB rating poster when the user configured a key,
// otherwise the provider's own poster image.
func (s *Service) poster(mediaType, tmdbID, posterPath, language, rpdbKey string) string {
	if rpdbKey != "" {
		tier := "poster-default"
		lang := languageCode(language)
		u := fmt.Sprintf("https://api.ratingposterdb.com/%s/tmdb/%s/%s-%s.jpg?fallback=true", rpdbKey, tier, mediaType, tmdbID)
		if lang != "" && lang != "en" {
			u += "&lang=" + lang
		}
		return u
	}
	if posterPath == "" {
		return ""
	}
	return tmdbImageBaseURL + posterPath
}

func (s *Service) buildLinks(rating, imdbID, name, mediaType, language string, genres []tmdbGenre, credits tmdbCredits) []models.MetaLink {
	links := make([]models.MetaLink, 0, 2+len(genres)+castLimit)
	if imdbID != "" {
		links = append(links, models.MetaLink{
			Name:     rating,
			Category: "imdb",
			URL:      "https://imdb.com/title/" + imdbID,
		})
		links = append(links, models.MetaLink{
			Name:     name,
			Category: "share",
			URL:      "https://www.strem.io/s/" + parseSlug(mediaType, name, imdbID),
		})
	}
	manifestURL := url.QueryEscape(s.hostName + "/" + language + "/manifest.json")
	for _, g := range genres {
		links = append(links, models.MetaLink{
			Name:     g.Name,
			Category: "Genres",
			URL:      fmt.Sprintf("stremio:///discover/%s/%s/tmdb.top?genre=%s", manifestURL, mediaType, url.QueryEscape(g.Name)),
		})
	}
	for _, name := range parseCast(credits) {
		links = append(links, models.MetaLink{
			Name:     name,
			Category: "Cast",
			URL:      "stremio:///search?search=" + url.QueryEscape(name),
		})
	}
	for _, name := range parseDirector(credits) {
		links = append(links, models.MetaLink{
			Name:     name,
			Category: "Directors",
			URL:      "stremio:///search?search=" + url.QueryEscape(name),
		})
	}
	return links
}

func defaultVideoID(imdbID string, tmdbID int64) *string {
	id := imdbID
	if id == "" {
		id = fmt.Sprintf("tmdb:%d", tmdbID)
	}
	return &id
}

func genreNames(genres []tmdbGenre) []string {
	if len(genres) == 0 {
		return nil
	}
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	return names
}

func parseCountry(countries []tmdbProductionCountry) string {
	names := make([]string, 0, len(countries))
	for _, c := range countries {
		names = append(names, c.Name)
	}
	return strings.Join(names, ", ")
}

// parseCast keeps upstream billing order, dropping duplicates, capped at
// castLimit names.
func parseCast(credits tmdbCredits) []string {
	seen := make(map[string]bool, castLimit)
	var names []string
	for _, member := range credits.Cast {
		if seen[member.Name] {
			continue
		}
		seen[member.Name] = true
		names = append(names, member.Name)
		if len(names) == castLimit {
			break
		}
	}
	return names
}

func parseDirector(credits tmdbCredits) []string {
	var names []string
	for _, member := range credits.Crew {
		if member.Job == "Director" {
			names = append(names, member.Name)
		}
	}
	return names
}

func parseMovieWriters(credits tmdbCredits) []string {
	var names []string
	for _, member := range credits.Crew {
		if member.Job == "Writer" || member.Job == "Screenplay" {
			names = append(names, member.Name)
		}
	}
	return names
}

func parseCreatedBy(creators []tmdbCreatedBy) []string {
	var names []string
	for _, c := range creators {
		names = append(names, c.Name)
	}
	return names
}

// parseSlug builds "type/lower-cased-title-1234567" with the imdb prefix
// stripped from the id.
func parseSlug(mediaType, name, imdbID string) string {
	slug := strings.ToLower(name)
	slug = nonSlugChars.Replace(slug)
	var b strings.Builder
	lastDash := true
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastDash = false
		} else if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	cleaned := strings.TrimRight(b.String(), "-")
	return mediaType + "/" + cleaned + "-" + strings.TrimPrefix(imdbID, "tt")
}

var nonSlugChars = strings.NewReplacer("'", "", "’", "")

func parseRuntime(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	return fmt.Sprintf("%d min", minutes)
}

// seriesRuntime picks the first known per-episode runtime.
func seriesRuntime(res *tmdbTVDetails) int {
	if len(res.EpisodeRunTime) > 0 {
		return res.EpisodeRunTime[0]
	}
	if res.LastEpisodeToAir != nil && res.LastEpisodeToAir.Runtime > 0 {
		return res.LastEpisodeToAir.Runtime
	}
	if res.NextEpisodeToAir != nil {
		return res.NextEpisodeToAir.Runtime
	}
	return 0
}

func releaseYear(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}

// seriesYears renders "2008-2013" for ended shows and "2008-" for running
// ones. Missing dates collapse to the empty string.
func seriesYears(status, firstAirDate, lastAirDate string) string {
	start := releaseYear(firstAirDate)
	if start == "" {
		return ""
	}
	if status == "Ended" || status == "Canceled" {
		return start + "-" + releaseYear(lastAirDate)
	}
	return start + "-"
}

func parseReleased(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

func parseTrailers(videos tmdbVideosResponse) []models.Trailer {
	var trailers []models.Trailer
	for _, v := range videos.Results {
		if v.Site == "YouTube" && v.Type == "Trailer" {
			trailers = append(trailers, models.Trailer{Source: v.Key, Type: "Trailer"})
		}
	}
	return trailers
}

func parseTrailerStreams(videos tmdbVideosResponse) []models.TrailerStream {
	var streams []models.TrailerStream
	for _, v := range videos.Results {
		if v.Site == "YouTube" && v.Type == "Trailer" {
			streams = append(streams, models.TrailerStream{Title: v.Name, YtID: v.Key})
		}
	}
	return streams
}

func backdropURL(path string) string {
	if path == "" {
		return ""
	}
	return tmdbImageBaseURL + path
}
