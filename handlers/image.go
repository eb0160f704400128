package handlers

import (
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

const blurServiceBaseURL = "https://images.weserv.nl/"

// ImageHandler proxies poster images through a third-party transform service
// to produce blurred variants for the configure UI previews.
type ImageHandler struct {
	baseURL string
	httpc   *http.Client
}

func NewImageHandler() *ImageHandler {
	return &ImageHandler{
		baseURL: blurServiceBaseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (h *ImageHandler) Blur(w http.ResponseWriter, r *http.Request) {
	sourceURL := r.URL.Query().Get("url")
	if sourceURL == "" {
		http.Error(w, "url parameter required", http.StatusBadRequest)
		return
	}

	q := url.Values{}
	q.Set("url", sourceURL)
	q.Set("blur", "20")
	q.Set("output", "webp")

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, h.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		http.Error(w, "image processing failed", http.StatusInternalServerError)
		return
	}
	resp, err := h.httpc.Do(req)
	if err != nil {
		log.Printf("[image] blur fetch failed for %s: %v", sourceURL, err)
		http.Error(w, "image processing failed", http.StatusInternalServerError)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[image] blur service returned %d for %s", resp.StatusCode, sourceURL)
		http.Error(w, "image processing failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/webp")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Printf("[image] blur stream interrupted for %s: %v", sourceURL, err)
	}
}
