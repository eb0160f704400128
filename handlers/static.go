package handlers

import (
	"net/http"
	"os"
	"path/filepath"
)

// StaticHandler serves the configure UI and its assets from the static
// directory. The bare root redirects into the configure page.
type StaticHandler struct {
	dir string
}

func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{dir: dir}
}

func (h *StaticHandler) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/configure", http.StatusMovedPermanently)
}

func (h *StaticHandler) Configure(w http.ResponseWriter, r *http.Request) {
	page := filepath.Join(h.dir, "configure.html")
	if _, err := os.Stat(page); err != nil {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, page)
}

// Assets serves everything else under the static directory, falling back to
// a plain 404 for paths that match no file.
func (h *StaticHandler) Assets() http.Handler {
	return http.FileServer(http.Dir(h.dir))
}

// Stats reports lightweight usage information for the configure UI.
func Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]int{"uniqueUserCount": 0})
}
