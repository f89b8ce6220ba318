package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"familywallet/internal/service"
)

// InsightHandler serves the AI-generated display content. Adapter failures
// never surface as errors here; clients get fallback text or no image.
type InsightHandler struct {
	roster   *service.RosterService
	insights *service.InsightService
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(roster *service.RosterService, insights *service.InsightService) *InsightHandler {
	return &InsightHandler{roster: roster, insights: insights}
}

// ChildInsight handles GET /api/children/{id}/insight
func (h *InsightHandler) ChildInsight(w http.ResponseWriter, r *http.Request) {
	child, err := h.roster.GetChild(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrChildNotFound) {
			respondWithError(w, http.StatusNotFound, "child not found")
			return
		}
		log.Printf("failed to load child for insight: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to load child")
		return
	}

	text := h.insights.ChildInsight(r.Context(), *child)
	respondWithJSON(w, http.StatusOK, map[string]string{"insight": text})
}

// Ideas handles POST /api/ai/ideas
func (h *InsightHandler) Ideas(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind    string `json:"kind"`
		Context string `json:"context"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	text, items, err := h.insights.Ideas(r.Context(), req.Kind, req.Context)
	if err != nil {
		if errors.Is(err, service.ErrUnknownIdeaKind) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("failed to generate ideas: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to generate ideas")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"text":  text,
		"items": items,
	})
}

// EditDreamImage handles POST /api/children/{id}/dream/image. On success the
// child's dream image is replaced with the edited one; on failure the dream
// stays as it was and the response carries no image.
func (h *InsightHandler) EditDreamImage(w http.ResponseWriter, r *http.Request) {
	childID := r.PathValue("id")

	var req struct {
		Image    string `json:"image"` // base64
		MimeType string `json:"mime_type"`
		Prompt   string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Image == "" || req.Prompt == "" {
		respondWithError(w, http.StatusBadRequest, "image and prompt are required")
		return
	}

	source, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "image must be base64 encoded")
		return
	}
	if req.MimeType == "" {
		req.MimeType = "image/png"
	}

	child, err := h.roster.GetChild(childID)
	if err != nil {
		if errors.Is(err, service.ErrChildNotFound) {
			respondWithError(w, http.StatusNotFound, "child not found")
			return
		}
		log.Printf("failed to load child for image edit: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to load child")
		return
	}

	edited, mimeType := h.insights.EditDreamImage(r.Context(), childID, source, req.MimeType, req.Prompt)
	if edited == nil {
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"image": nil})
		return
	}

	dataURI := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(edited)
	dream := child.Dream
	dream.ImageURL = dataURI
	if err := h.roster.UpdateDream(childID, dream); err != nil {
		log.Printf("failed to save edited dream image: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to save dream image")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"image": dataURI})
}
