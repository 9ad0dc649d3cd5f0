package http

import (
	"net/http"

	"drivehub-backend/internal/logger"
	"drivehub-backend/internal/service"
)

type SyncHandler struct {
	report service.ReportService
}

func NewSyncHandler(report service.ReportService) *SyncHandler {
	return &SyncHandler{report: report}
}

// Sync returns the caller's dashboard snapshot: fleet state plus rentals
// scoped to the caller, with aggregate stats for admins.
func (h *SyncHandler) Sync(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r)
	view, err := h.report.Sync(r.Context(), actor)
	if err != nil {
		logger.Error("Sync failed", "email", actor.Email, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "error", "message": "Internal error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "data": view})
}
