package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/inventory-dashboard-api/internal/application/auth"
	"github.com/inventory-dashboard-api/internal/domain"
	"github.com/inventory-dashboard-api/internal/pkg/validate"
	"github.com/inventory-dashboard-api/internal/transport/http/middleware"
)

// AuthHandler handles the OTP login flow endpoints.
type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, MessageEnvelope{Message: "Email is required"})
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, MessageEnvelope{Message: "Email is required"})
		return
	}
	if err := h.svc.RequestOTP(r.Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrBadRequest) {
			writeJSON(w, http.StatusBadRequest, MessageEnvelope{Message: err.Error()})
			return
		}
		// Mail or storage trouble is not the caller's fault and not theirs to
		// debug either.
		writeJSON(w, http.StatusInternalServerError, MessageEnvelope{Message: "Failed to send OTP"})
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "OTP sent successfully"})
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, MessageEnvelope{Message: "Email and OTP are required"})
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, MessageEnvelope{Message: "Email and OTP are required"})
		return
	}
	tok, err := h.svc.VerifyOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		if errors.Is(err, domain.ErrBadRequest) {
			writeJSON(w, http.StatusBadRequest, MessageEnvelope{Message: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, MessageEnvelope{Message: "Failed to verify OTP"})
		return
	}
	writeJSON(w, http.StatusOK, VerifyEnvelope{Message: "OTP verified successfully", Token: tok})
}

// Me echoes the identity decoded from the session token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, SessionEnvelope{
		Email:    id.Email,
		IssuedAt: id.IssuedAt.UTC().Format(time.RFC3339),
	})
}
