package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"securebank/internal/adapter/http/dto"
	"securebank/internal/infrastructure/auth"
)

// Authenticator defines the behavior needed by AuthHandler.
type Authenticator interface {
	Authenticate(ctx context.Context, id, password string) bool
}

// AuthHandler exchanges a successful password authentication for a session
// token.
type AuthHandler struct {
	svc        Authenticator
	jwtManager *auth.JWTManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc Authenticator, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{svc: svc, jwtManager: jwtManager}
}

// Login verifies credentials and issues a JWT. The response is identical
// for unknown accounts and wrong passwords.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if !h.svc.Authenticate(r.Context(), req.AccountID, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid credentials", "")
		return
	}

	token, err := h.jwtManager.Generate(req.AccountID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token", "")
		return
	}

	writeJSON(w, http.StatusOK, dto.LoginResponse{Token: token, AccountID: req.AccountID})
}
