package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"foodcpi/internal/models"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// selection reads the dashboard controls from the query string
func selection(r *http.Request) models.SelectionState {
	return models.ParseSelection(r.URL.Query())
}

// parseLimit reads ?limit=N, falling back to the default and capping at the maximum
func parseLimit(r *http.Request) int {
	limit := defaultListLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return limit
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error":  message,
		"status": http.StatusText(status),
	})
}
