package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"securebank/internal/adapter/http/dto"
	"securebank/internal/bank"
)

// TransferService defines the behavior needed by TransferHandler.
type TransferService interface {
	Transfer(ctx context.Context, input bank.TransferInput) error
}

// TransferHandler handles transfer HTTP requests.
type TransferHandler struct {
	svc TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(svc TransferService) *TransferHandler {
	return &TransferHandler{svc: svc}
}

// Create executes a transfer.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.svc.Transfer(r.Context(), req.ToBankInput()); err != nil {
		writeError(w, mapDomainError(err), "transfer rejected", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransferResponse{Status: "completed"})
}
