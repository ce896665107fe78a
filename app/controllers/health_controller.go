package controllers

import (
	"encoding/json"
	"net/http"
	"time"
)

// HealthController serves the liveness probe. It deliberately checks
// nothing beyond the process itself.
type HealthController struct{}

// NewHealthController creates a new HealthController
func NewHealthController() *HealthController {
	return &HealthController{}
}

// Status handles the health check
func (hc *HealthController) Status(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
