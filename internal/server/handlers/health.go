package handlers

import "net/http"

// Health handles GET /api/health. It reports process liveness only; database
// reachability surfaces through the sync endpoint.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
