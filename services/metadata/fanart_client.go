package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

const fanartBaseURL = "https://webservice.fanart.tv/v3"

// fanartClient talks to the Fanart.tv artwork API. Every call is bounded by
// a short timeout and retried once on transient failure; callers treat any
// error as "no result from this provider".
type fanartClient struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

func newFanartClient(apiKey string, httpc *http.Client) *fanartClient {
	if httpc == nil {
		httpc = &http.Client{Timeout: 5 * time.Second}
	}
	return &fanartClient{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: fanartBaseURL,
		httpc:   httpc,
	}
}

func (c *fanartClient) isConfigured() bool {
	return c != nil && c.apiKey != ""
}

type fanartLogo struct {
	URL  string `json:"url"`
	Lang string `json:"lang"`
}

type fanartMovieImages struct {
	HDMovieLogo []fanartLogo `json:"hdmovielogo"`
}

type fanartShowImages struct {
	HDTVLogo []fanartLogo `json:"hdtvlogo"`
}

func (c *fanartClient) doGET(ctx context.Context, path string, v any) error {
	if !c.isConfigured() {
		return errors.New("fanart api key not configured")
	}
	endpoint := fmt.Sprintf("%s%s?api_key=%s", c.baseURL, path, c.apiKey)

	return retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("Accept", "application/json")

			resp, err := c.httpc.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusNotFound {
				return retry.Unrecoverable(fmt.Errorf("fanart: no data for %s", path))
			}
			if resp.StatusCode >= 400 {
				return fmt.Errorf("fanart request failed: %s", resp.Status)
			}
			return json.NewDecoder(resp.Body).Decode(v)
		},
		retry.Context(ctx),
		retry.Attempts(2), // one retry on transient failure, like the upstream client
		retry.Delay(250*time.Millisecond),
		retry.LastErrorOnly(true),
	)
}

// movieLogos returns the HD movie logos for a TMDB id.
func (c *fanartClient) movieLogos(ctx context.Context, tmdbID string) ([]fanartLogo, error) {
	var payload fanartMovieImages
	if err := c.doGET(ctx, "/movies/"+tmdbID, &payload); err != nil {
		return nil, err
	}
	return payload.HDMovieLogo, nil
}

// showLogos returns the HD tv logos for a TVDB id.
func (c *fanartClient) showLogos(ctx context.Context, tvdbID int64) ([]fanartLogo, error) {
	if tvdbID <= 0 {
		return nil, errors.New("fanart: tvdb id required")
	}
	var payload fanartShowImages
	if err := c.doGET(ctx, fmt.Sprintf("/tv/%d", tvdbID), &payload); err != nil {
		return nil, err
	}
	return payload.HDTVLogo, nil
}
