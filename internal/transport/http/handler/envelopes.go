package handler

import (
	"encoding/json"
	"net/http"
)

// MessageEnvelope is the generic response wrapper. Auth endpoints report both
// success and failure through the message field, so the client can surface it
// verbatim.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// VerifyEnvelope wraps a successful OTP verification.
type VerifyEnvelope struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// SessionEnvelope wraps the current-session response.
type SessionEnvelope struct {
	Email    string `json:"email"`
	IssuedAt string `json:"issued_at"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}
