package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
)

// ratingsClient fetches a supplementary IMDb score from the MDBList
// aggregated ratings API. It is strictly best-effort: callers fall back to
// the TMDB vote average when anything here fails.
type ratingsClient struct {
	baseURL string
	httpc   *http.Client

	// Rate limiting
	throttleMu  sync.Mutex
	lastRequest time.Time
	minInterval time.Duration
}

func newRatingsClient(httpc *http.Client) *ratingsClient {
	if httpc == nil {
		httpc = &http.Client{Timeout: 5 * time.Second}
	}
	return &ratingsClient{
		baseURL:     "https://api.mdblist.com",
		httpc:       httpc,
		minInterval: 100 * time.Millisecond,
	}
}

type ratingsResponse struct {
	Ratings []struct {
		Source string   `json:"source"`
		Value  *float64 `json:"value"`
	} `json:"ratings"`
}

// imdbRating returns the IMDb score for an IMDb id formatted to one decimal
// place, or "" when no usable score exists.
func (c *ratingsClient) imdbRating(ctx context.Context, imdbID, mediaType string) (string, error) {
	imdbID = strings.TrimSpace(imdbID)
	if imdbID == "" {
		return "", nil
	}
	if !strings.HasPrefix(imdbID, "tt") {
		imdbID = "tt" + imdbID
	}
	kind := "movie"
	if mediaType != "movie" {
		kind = "show"
	}

	c.throttleMu.Lock()
	since := time.Since(c.lastRequest)
	if since < c.minInterval {
		time.Sleep(c.minInterval - since)
	}
	c.lastRequest = time.Now()
	c.throttleMu.Unlock()

	endpoint := fmt.Sprintf("%s/imdb/%s/%s", c.baseURL, kind, imdbID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ratings request failed: %s", resp.Status)
	}

	var payload ratingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}

	for _, r := range payload.Ratings {
		if r.Source != "imdb" || r.Value == nil || *r.Value <= 0 {
			continue
		}
		return fmt.Sprintf("%.1f", *r.Value), nil
	}
	log.Printf("[ratings] no imdb score for %s %s", kind, imdbID)
	return "", nil
}
