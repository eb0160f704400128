package models

// TokenResponse is the request-token pass-through payload.
type TokenResponse struct {
	Success      bool   `json:"success"`
	RequestToken string `json:"request_token"`
	ExpiresAt    string `json:"expires_at,omitempty"`
}

// SessionResponse is the session-creation pass-through payload.
type SessionResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"session_id"`
}
