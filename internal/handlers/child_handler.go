package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"familywallet/internal/models"
	"familywallet/internal/service"
)

// ChildHandler serves the roster endpoints
type ChildHandler struct {
	roster *service.RosterService
}

// NewChildHandler creates a new child handler
func NewChildHandler(roster *service.RosterService) *ChildHandler {
	return &ChildHandler{roster: roster}
}

// ListChildren handles GET /api/children
func (h *ChildHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	children, err := h.roster.ListChildren()
	if err != nil {
		log.Printf("failed to list children: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to list children")
		return
	}
	if children == nil {
		children = []models.Child{}
	}
	respondWithJSON(w, http.StatusOK, children)
}

// CreateChild handles POST /api/children
func (h *ChildHandler) CreateChild(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string `json:"name"`
		Avatar string `json:"avatar"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	child, err := h.roster.AddChild(req.Name, req.Avatar)
	if err != nil {
		if errors.Is(err, service.ErrEmptyName) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("failed to create child: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to create child")
		return
	}
	respondWithJSON(w, http.StatusCreated, child)
}

// GetChild handles GET /api/children/{id}
func (h *ChildHandler) GetChild(w http.ResponseWriter, r *http.Request) {
	child, err := h.roster.GetChild(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrChildNotFound) {
			respondWithError(w, http.StatusNotFound, "child not found")
			return
		}
		log.Printf("failed to get child: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to get child")
		return
	}
	respondWithJSON(w, http.StatusOK, child)
}

// UpdateChild handles PUT /api/children/{id}. The whole aggregate is
// replaced; an unknown id is a silent no-op.
func (h *ChildHandler) UpdateChild(w http.ResponseWriter, r *http.Request) {
	var child models.Child
	if err := json.NewDecoder(r.Body).Decode(&child); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	child.ID = r.PathValue("id")

	if err := h.roster.UpdateChild(child); err != nil {
		log.Printf("failed to update child: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to update child")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteChild handles DELETE /api/children/{id}
func (h *ChildHandler) DeleteChild(w http.ResponseWriter, r *http.Request) {
	if err := h.roster.RemoveChild(r.PathValue("id")); err != nil {
		if errors.Is(err, service.ErrLastChild) {
			respondWithError(w, http.StatusConflict, err.Error())
			return
		}
		log.Printf("failed to delete child: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to delete child")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SelectChild handles POST /api/children/{id}/select
func (h *ChildHandler) SelectChild(w http.ResponseWriter, r *http.Request) {
	if err := h.roster.SelectChild(r.PathValue("id")); err != nil {
		log.Printf("failed to select child: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to select child")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SelectedChild handles GET /api/children/selected
func (h *ChildHandler) SelectedChild(w http.ResponseWriter, r *http.Request) {
	child, err := h.roster.SelectedChild()
	if err != nil {
		if errors.Is(err, service.ErrChildNotFound) {
			respondWithError(w, http.StatusNotFound, "roster is empty")
			return
		}
		log.Printf("failed to resolve selected child: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to resolve selected child")
		return
	}
	respondWithJSON(w, http.StatusOK, child)
}

// UpdateDream handles PUT /api/children/{id}/dream
func (h *ChildHandler) UpdateDream(w http.ResponseWriter, r *http.Request) {
	var dream models.Dream
	if err := json.NewDecoder(r.Body).Decode(&dream); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if dream.Price <= 0 {
		respondWithError(w, http.StatusBadRequest, "dream price must be positive")
		return
	}

	if err := h.roster.UpdateDream(r.PathValue("id"), dream); err != nil {
		log.Printf("failed to update dream: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to update dream")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
