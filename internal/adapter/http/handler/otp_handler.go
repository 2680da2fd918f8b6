package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"securebank/internal/adapter/http/dto"
)

// OTPService defines the behavior needed by OTPHandler.
type OTPService interface {
	IssueOTP(ctx context.Context, accountID string) (string, error)
	VerifyOTP(ctx context.Context, challengeID, code string) bool
}

// OTPHandler handles OTP challenge endpoints.
type OTPHandler struct {
	svc OTPService
}

// NewOTPHandler creates a new OTPHandler.
func NewOTPHandler(svc OTPService) *OTPHandler {
	return &OTPHandler{svc: svc}
}

// Issue creates a challenge for the account. The response carries only the
// handle; the code travels through the delivery gateway.
func (h *OTPHandler) Issue(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	challengeID, err := h.svc.IssueOTP(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to issue challenge", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ChallengeResponse{ChallengeID: challengeID})
}

// Verify checks a user-supplied code against a pending challenge.
func (h *OTPHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	valid := h.svc.VerifyOTP(r.Context(), req.ChallengeID, req.Code)

	writeJSON(w, http.StatusOK, dto.VerifyOTPResponse{Valid: valid})
}
