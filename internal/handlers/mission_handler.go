package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"familywallet/internal/service"
)

// MissionHandler serves the mission lifecycle endpoints
type MissionHandler struct {
	missions *service.MissionService
}

// NewMissionHandler creates a new mission handler
func NewMissionHandler(missions *service.MissionService) *MissionHandler {
	return &MissionHandler{missions: missions}
}

// CreateMission handles POST /api/missions
func (h *MissionHandler) CreateMission(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title          string   `json:"title"`
		Reward         int      `json:"reward"`
		Category       string   `json:"category"`
		IsRecurring    bool     `json:"is_recurring"`
		IsTeam         bool     `json:"is_team"`
		TargetChildIDs []string `json:"target_child_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	mission, err := h.missions.CreateMission(req.Title, req.Reward, req.Category,
		req.IsRecurring, req.IsTeam, req.TargetChildIDs)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidMission),
			errors.Is(err, service.ErrNoTargets),
			errors.Is(err, service.ErrChildNotFound):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("failed to create mission: %v", err)
			respondWithError(w, http.StatusInternalServerError, "failed to create mission")
		}
		return
	}
	respondWithJSON(w, http.StatusCreated, mission)
}

// ListForReview handles GET /api/children/{id}/missions, pending first
func (h *MissionHandler) ListForReview(w http.ResponseWriter, r *http.Request) {
	missions, err := h.missions.MissionsForReview(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrChildNotFound) {
			respondWithError(w, http.StatusNotFound, "child not found")
			return
		}
		log.Printf("failed to list missions: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to list missions")
		return
	}
	respondWithJSON(w, http.StatusOK, missions)
}

// SubmitMission handles POST /api/children/{id}/missions/{mid}/submit
func (h *MissionHandler) SubmitMission(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, h.missions.SubmitMission, "submit")
}

// ConfirmMission handles POST /api/children/{id}/missions/{mid}/confirm
func (h *MissionHandler) ConfirmMission(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, h.missions.ConfirmMission, "confirm")
}

// RejectMission handles POST /api/children/{id}/missions/{mid}/reject
func (h *MissionHandler) RejectMission(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, h.missions.RejectMission, "reject")
}

// DeleteMission handles DELETE /api/children/{id}/missions/{mid}
func (h *MissionHandler) DeleteMission(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, h.missions.DeleteMission, "delete")
}

// apply runs one lifecycle operation. Unknown ids are silent no-ops at the
// ledger level, so success and no-op both answer 204.
func (h *MissionHandler) apply(w http.ResponseWriter, r *http.Request, op func(childID, missionID string) error, name string) {
	if err := op(r.PathValue("id"), r.PathValue("mid")); err != nil {
		log.Printf("failed to %s mission: %v", name, err)
		respondWithError(w, http.StatusInternalServerError, "failed to "+name+" mission")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
