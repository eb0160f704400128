package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	tmdbBaseURL      = "https://api.themoviedb.org/3"
	tmdbImageBaseURL = "https://image.tmdb.org/t/p/original"
)

type tmdbClient struct {
	apiKey  string
	baseURL string
	httpc   *http.Client

	// Rate limiting
	throttleMu  sync.Mutex
	lastRequest time.Time
	minInterval time.Duration
}

func newTMDBClient(apiKey string, httpc *http.Client) *tmdbClient {
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	return &tmdbClient{
		apiKey:      strings.TrimSpace(apiKey),
		baseURL:     tmdbBaseURL,
		httpc:       httpc,
		minInterval: 20 * time.Millisecond, // TMDB has generous rate limits
	}
}

func (c *tmdbClient) isConfigured() bool {
	return c != nil && c.apiKey != ""
}

func (c *tmdbClient) endpoint(path string, q url.Values) string {
	if q == nil {
		q = url.Values{}
	}
	q.Set("api_key", c.apiKey)
	return c.baseURL + path + "?" + q.Encode()
}

// doGET performs an HTTP GET with rate limiting and retry with exponential
// backoff on 429 and server errors. Client errors (4xx) fail immediately.
func (c *tmdbClient) doGET(ctx context.Context, endpoint string, v any) error {
	if !c.isConfigured() {
		return errors.New("tmdb api key not configured")
	}

	var lastErr error
	backoff := 300 * time.Millisecond

	for attempt := 0; attempt < 3; attempt++ {
		c.throttleMu.Lock()
		since := time.Since(c.lastRequest)
		if since < c.minInterval {
			time.Sleep(c.minInterval - since)
		}
		c.lastRequest = time.Now()
		c.throttleMu.Unlock()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}

		resp, err := c.httpc.Do(req)
		if err != nil {
			lastErr = err
			log.Printf("[tmdb] http error (attempt %d/3): %v", attempt+1, err)
			time.Sleep(backoff)
			backoff *= 2
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			resp.Body.Close()
			log.Printf("[tmdb] rate limited or server error (attempt %d/3): status %d", attempt+1, resp.StatusCode)
			lastErr = fmt.Errorf("tmdb request failed: %s", resp.Status)
			time.Sleep(backoff)
			backoff *= 2
			continue
		}

		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return fmt.Errorf("tmdb request failed: %s", resp.Status)
		}

		err = json.NewDecoder(resp.Body).Decode(v)
		resp.Body.Close()
		if err != nil {
			return err
		}
		return nil
	}

	return lastErr
}

// apiMediaType maps the addon's media types to TMDB path segments.
func apiMediaType(mediaType string) string {
	if mediaType == "movie" {
		return "movie"
	}
	return "tv"
}

func (c *tmdbClient) movieInfo(ctx context.Context, tmdbID, language string) (*tmdbMovieDetails, error) {
	q := url.Values{}
	q.Set("language", language)
	q.Set("append_to_response", "videos,credits,external_ids")
	var payload tmdbMovieDetails
	if err := c.doGET(ctx, c.endpoint("/movie/"+tmdbID, q), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *tmdbClient) tvInfo(ctx context.Context, tmdbID, language string) (*tmdbTVDetails, error) {
	q := url.Values{}
	q.Set("language", language)
	q.Set("append_to_response", "videos,credits,external_ids")
	var payload tmdbTVDetails
	if err := c.doGET(ctx, c.endpoint("/tv/"+tmdbID, q), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// findByIMDB resolves an IMDb id to a TMDB id for the requested media type.
// Returns 0 when nothing matched.
func (c *tmdbClient) findByIMDB(ctx context.Context, mediaType, imdbID string) (int64, error) {
	if !strings.HasPrefix(imdbID, "tt") {
		imdbID = "tt" + imdbID
	}
	q := url.Values{}
	q.Set("external_source", "imdb_id")
	var payload tmdbFindResponse
	if err := c.doGET(ctx, c.endpoint("/find/"+imdbID, q), &payload); err != nil {
		return 0, err
	}
	if mediaType == "movie" {
		if len(payload.MovieResults) > 0 {
			return payload.MovieResults[0].ID, nil
		}
		return 0, nil
	}
	if len(payload.TVResults) > 0 {
		return payload.TVResults[0].ID, nil
	}
	return 0, nil
}

func (c *tmdbClient) genreList(ctx context.Context, mediaType, language string) ([]tmdbGenre, error) {
	q := url.Values{}
	q.Set("language", language)
	var payload tmdbGenreListResponse
	if err := c.doGET(ctx, c.endpoint("/genre/"+apiMediaType(mediaType)+"/list", q), &payload); err != nil {
		return nil, err
	}
	return payload.Genres, nil
}

func (c *tmdbClient) languages(ctx context.Context) ([]tmdbLanguage, error) {
	var payload []tmdbLanguage
	if err := c.doGET(ctx, c.endpoint("/configuration/languages", nil), &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *tmdbClient) primaryTranslations(ctx context.Context) ([]string, error) {
	var payload []string
	if err := c.doGET(ctx, c.endpoint("/configuration/primary_translations", nil), &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *tmdbClient) trending(ctx context.Context, mediaType, timeWindow, language string, page int) ([]tmdbMediaItem, error) {
	if timeWindow != "week" {
		timeWindow = "day"
	}
	q := url.Values{}
	q.Set("language", language)
	q.Set("page", fmt.Sprintf("%d", page))
	var payload tmdbListResponse
	if err := c.doGET(ctx, c.endpoint("/trending/"+apiMediaType(mediaType)+"/"+timeWindow, q), &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

// discover runs the generic discovery listing with caller-supplied filters
// (with_genres, primary_release_year, with_original_language, sort_by...).
func (c *tmdbClient) discover(ctx context.Context, mediaType, language string, page int, filters url.Values) ([]tmdbMediaItem, error) {
	q := url.Values{}
	for k, vs := range filters {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("language", language)
	q.Set("page", fmt.Sprintf("%d", page))
	var payload tmdbListResponse
	if err := c.doGET(ctx, c.endpoint("/discover/"+apiMediaType(mediaType), q), &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

func (c *tmdbClient) search(ctx context.Context, mediaType, language, query string, page int) ([]tmdbMediaItem, error) {
	q := url.Values{}
	q.Set("language", language)
	q.Set("query", query)
	q.Set("page", fmt.Sprintf("%d", page))
	var payload tmdbListResponse
	if err := c.doGET(ctx, c.endpoint("/search/"+apiMediaType(mediaType), q), &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

func (c *tmdbClient) movieImages(ctx context.Context, tmdbID string) (*tmdbImagesResponse, error) {
	var payload tmdbImagesResponse
	if err := c.doGET(ctx, c.endpoint("/movie/"+tmdbID+"/images", nil), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *tmdbClient) tvImages(ctx context.Context, tmdbID string) (*tmdbImagesResponse, error) {
	var payload tmdbImagesResponse
	if err := c.doGET(ctx, c.endpoint("/tv/"+tmdbID+"/images", nil), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *tmdbClient) seasonDetails(ctx context.Context, tmdbID string, seasonNumber int, language string) (*tmdbSeasonDetails, error) {
	q := url.Values{}
	q.Set("language", language)
	var payload tmdbSeasonDetails
	endpoint := c.endpoint(fmt.Sprintf("/tv/%s/season/%d", tmdbID, seasonNumber), q)
	if err := c.doGET(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// accountID resolves the numeric account for a session.
func (c *tmdbClient) accountID(ctx context.Context, sessionID string) (int64, error) {
	q := url.Values{}
	q.Set("session_id", sessionID)
	var payload tmdbAccount
	if err := c.doGET(ctx, c.endpoint("/account", q), &payload); err != nil {
		return 0, err
	}
	return payload.ID, nil
}

func (c *tmdbClient) accountList(ctx context.Context, list, mediaType, language, sessionID string, page int) ([]tmdbMediaItem, error) {
	if sessionID == "" {
		return nil, errors.New("tmdb session required")
	}
	accountID, err := c.accountID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	segment := "movies"
	if mediaType != "movie" {
		segment = "tv"
	}
	q := url.Values{}
	q.Set("session_id", sessionID)
	q.Set("language", language)
	q.Set("page", fmt.Sprintf("%d", page))
	q.Set("sort_by", "created_at.desc")
	path := fmt.Sprintf("/account/%d/%s/%s", accountID, list, segment)
	var payload tmdbListResponse
	if err := c.doGET(ctx, c.endpoint(path, q), &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

func (c *tmdbClient) favorites(ctx context.Context, mediaType, language, sessionID string, page int) ([]tmdbMediaItem, error) {
	return c.accountList(ctx, "favorite", mediaType, language, sessionID, page)
}

func (c *tmdbClient) watchlist(ctx context.Context, mediaType, language, sessionID string, page int) ([]tmdbMediaItem, error) {
	return c.accountList(ctx, "watchlist", mediaType, language, sessionID, page)
}

func (c *tmdbClient) requestToken(ctx context.Context) (*tmdbRequestTokenResponse, error) {
	var payload tmdbRequestTokenResponse
	if err := c.doGET(ctx, c.endpoint("/authentication/token/new", nil), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *tmdbClient) createSession(ctx context.Context, requestToken string) (*tmdbSessionResponse, error) {
	q := url.Values{}
	q.Set("request_token", requestToken)
	var payload tmdbSessionResponse
	if err := c.doGET(ctx, c.endpoint("/authentication/session/new", q), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
