package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/facuparedes/tmdb-addon/handlers"
)

// RegisterRoutes attaches every route to the router. Order matters: the
// config-prefixed patterns and the specific endpoints are registered before
// the static fallthrough, first match wins.
func RegisterRoutes(
	r *mux.Router,
	addon *handlers.AddonHandler,
	session *handlers.SessionHandler,
	image *handlers.ImageHandler,
	static *handlers.StaticHandler,
) {
	r.HandleFunc("/", static.Root).Methods(http.MethodGet)
	r.HandleFunc("/configure", static.Configure).Methods(http.MethodGet)
	r.HandleFunc("/{config}/configure", static.Configure).Methods(http.MethodGet)

	r.HandleFunc("/request_token", session.RequestToken).Methods(http.MethodGet)
	r.HandleFunc("/session_id", session.SessionID).Methods(http.MethodGet)
	r.HandleFunc("/api/image/blur", image.Blur).Methods(http.MethodGet)
	r.HandleFunc("/stats", handlers.Stats).Methods(http.MethodGet)

	r.HandleFunc("/manifest.json", addon.Manifest).Methods(http.MethodGet)
	r.HandleFunc("/{config}/manifest.json", addon.Manifest).Methods(http.MethodGet)

	r.HandleFunc("/catalog/{type}/{id}.json", addon.Catalog).Methods(http.MethodGet)
	r.HandleFunc("/catalog/{type}/{id}/{extra}", addon.Catalog).Methods(http.MethodGet)
	r.HandleFunc("/{config}/catalog/{type}/{id}.json", addon.Catalog).Methods(http.MethodGet)
	r.HandleFunc("/{config}/catalog/{type}/{id}/{extra}", addon.Catalog).Methods(http.MethodGet)

	r.HandleFunc("/meta/{type}/{id}", addon.Meta).Methods(http.MethodGet)
	r.HandleFunc("/{config}/meta/{type}/{id}", addon.Meta).Methods(http.MethodGet)

	// Everything else falls through to static assets.
	r.PathPrefix("/").Handler(static.Assets())
}
