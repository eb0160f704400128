package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/facuparedes/tmdb-addon/models"
)

type addonService interface {
	GetManifest(context.Context, models.UserConfig) (*models.Manifest, error)
	GetCatalog(context.Context, models.UserConfig, string, string, models.CatalogExtra) ([]models.MetaPreview, error)
	GetMeta(context.Context, models.UserConfig, string, string) (*models.Meta, error)
}

// AddonHandler serves the addon contract: manifest, catalog and meta
// documents, all parameterized by the opaque config path segment.
type AddonHandler struct {
	Service addonService
}

func NewAddonHandler(s addonService) *AddonHandler {
	return &AddonHandler{Service: s}
}

func (h *AddonHandler) Manifest(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.userConfig(w, r)
	if !ok {
		return
	}
	manifest, err := h.Service.GetManifest(r.Context(), cfg)
	if err != nil {
		log.Printf("[addon] manifest failed: %v", err)
		http.Error(w, "manifest unavailable", http.StatusNotFound)
		return
	}
	writeJSON(w, manifest)
}

func (h *AddonHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.userConfig(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	mediaType := vars["type"]
	catalogID := strings.TrimSuffix(vars["id"], ".json")
	extra := models.ParseCatalogExtra(strings.TrimSuffix(vars["extra"], ".json"))

	metas, err := h.Service.GetCatalog(r.Context(), cfg, mediaType, catalogID, extra)
	if err != nil {
		log.Printf("[addon] catalog %s/%s failed: %v", mediaType, catalogID, err)
		http.Error(w, "catalog unavailable", http.StatusNotFound)
		return
	}
	if metas == nil {
		metas = []models.MetaPreview{}
	}
	writeJSON(w, models.CatalogResponse{Metas: metas})
}

// Meta serves the canonical record for one title. A title that cannot be
// resolved yields {"meta": {}} with status 200; the contract promises a
// document, never a hard failure for a single bad id.
func (h *AddonHandler) Meta(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.userConfig(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	mediaType := vars["type"]
	id := strings.TrimSuffix(vars["id"], ".json")

	meta, err := h.Service.GetMeta(r.Context(), cfg, mediaType, id)
	if err != nil {
		log.Printf("[addon] meta %s/%s failed: %v", mediaType, id, err)
		meta = nil
	}
	writeJSON(w, models.MetaResponse{Meta: meta})
}

// userConfig decodes the optional config path segment. A segment that is
// present but undecodable is a client error.
func (h *AddonHandler) userConfig(w http.ResponseWriter, r *http.Request) (models.UserConfig, bool) {
	segment := mux.Vars(r)["config"]
	cfg, err := models.ParseUserConfig(segment)
	if err != nil {
		log.Printf("[addon] bad config segment: %v", err)
		http.Error(w, "invalid configuration", http.StatusBadRequest)
		return models.UserConfig{}, false
	}
	return cfg, true
}

// writeJSON serializes a response document pretty-printed, matching what
// addon clients expect to see when inspecting responses by hand.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Printf("[addon] response encode failed: %v", err)
	}
}
