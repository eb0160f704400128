package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/facuparedes/tmdb-addon/models"
)

type sessionService interface {
	RequestToken(context.Context) (*models.TokenResponse, error)
	CreateSession(context.Context, string) (*models.SessionResponse, error)
}

// SessionHandler is a thin pass-through to the provider's session handshake,
// used by the configure UI to link a TMDB account.
type SessionHandler struct {
	Service sessionService
}

func NewSessionHandler(s sessionService) *SessionHandler {
	return &SessionHandler{Service: s}
}

func (h *SessionHandler) RequestToken(w http.ResponseWriter, r *http.Request) {
	token, err := h.Service.RequestToken(r.Context())
	if err != nil {
		log.Printf("[session] request token failed: %v", err)
		http.Error(w, "request token unavailable", http.StatusNotFound)
		return
	}
	writeJSON(w, token)
}

func (h *SessionHandler) SessionID(w http.ResponseWriter, r *http.Request) {
	requestToken := r.URL.Query().Get("request_token")
	if requestToken == "" {
		http.Error(w, "request_token parameter required", http.StatusBadRequest)
		return
	}
	session, err := h.Service.CreateSession(r.Context(), requestToken)
	if err != nil {
		log.Printf("[session] session creation failed: %v", err)
		http.Error(w, "session unavailable", http.StatusNotFound)
		return
	}
	writeJSON(w, session)
}
