package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"familywallet/internal/service"
)

// InviteHandler serves family invite codes
type InviteHandler struct {
	invites *service.InviteService
}

// NewInviteHandler creates a new invite handler
func NewInviteHandler(invites *service.InviteService) *InviteHandler {
	return &InviteHandler{invites: invites}
}

// List handles GET /api/invites
func (h *InviteHandler) List(w http.ResponseWriter, r *http.Request) {
	invites, err := h.invites.ListInvites()
	if err != nil {
		log.Printf("failed to list invites: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to list invites")
		return
	}
	respondWithJSON(w, http.StatusOK, invites)
}

// Create handles POST /api/invites
func (h *InviteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	invite, err := h.invites.CreateInvite(r.Context(), req.Email)
	if err != nil {
		log.Printf("failed to create invite: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to create invite")
		return
	}
	respondWithJSON(w, http.StatusCreated, invite)
}
