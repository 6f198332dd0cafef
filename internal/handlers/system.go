package handlers

import (
	"net/http"
	"time"
)

// Banner returns the API service banner.
// GET /api/
func Banner(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "CallGuard API - Bloqueur d'appels commerciaux",
	})
}

// Health reports service health with a timestamp.
// GET /api/health
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
