package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/inkwell-journal/inkwell/internal/logging"
	"github.com/inkwell-journal/inkwell/internal/server/middleware"
	"github.com/inkwell-journal/inkwell/internal/server/services"
	"github.com/inkwell-journal/inkwell/internal/syncapi"
)

type SyncHandler struct {
	svc *services.SyncService
	log logging.Logger
}

func NewSyncHandler(svc *services.SyncService, log logging.Logger) *SyncHandler {
	return &SyncHandler{svc: svc, log: log}
}

// Sync handles POST /api/sync: one reconciliation exchange for the
// authenticated user.
func (h *SyncHandler) Sync(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req syncapi.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	resp, err := h.svc.Reconcile(r.Context(), userID, req)
	if err != nil {
		h.log.Error(r.Context(), "reconcile failed", "user_id", userID, "err", err)
		http.Error(w, "sync failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
