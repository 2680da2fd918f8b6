package handler

import "net/http"

// HealthHandler handles health check requests. The bank holds all state in
// process, so liveness is the only meaningful probe.
type HealthHandler struct {
	bankName string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(bankName string) *HealthHandler {
	return &HealthHandler{bankName: bankName}
}

// Liveness returns 200 if the service is alive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"bank":   h.bankName,
	})
}
