package handler

import (
	"encoding/json"
	"net/http"
)

// Health returns a liveness check handler. The service holds no state, so
// reaching it at all means it is healthy.
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}
