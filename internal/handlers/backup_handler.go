package handlers

import (
	"errors"
	"log"
	"net/http"

	"familywallet/internal/service"
)

// BackupHandler serves roster export and import
type BackupHandler struct {
	backup *service.BackupService
}

// NewBackupHandler creates a new backup handler
func NewBackupHandler(backup *service.BackupService) *BackupHandler {
	return &BackupHandler{backup: backup}
}

// Export handles GET /api/backup/export
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="familywallet-backup.json"`)
	if err := h.backup.Export(w); err != nil {
		log.Printf("failed to export backup: %v", err)
	}
}

// Import handles POST /api/backup/import. A malformed payload leaves the
// roster untouched.
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	count, err := h.backup.Import(r.Body)
	if err != nil {
		if errors.Is(err, service.ErrMalformedBackup) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("failed to import backup: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to import backup")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]int{"imported": count})
}
