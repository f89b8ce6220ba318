package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"familywallet/internal/ledger"
	"familywallet/internal/service"
)

// ShopHandler serves the prize catalog and issuance endpoints
type ShopHandler struct {
	shop *service.ShopService
}

// NewShopHandler creates a new shop handler
func NewShopHandler(shop *service.ShopService) *ShopHandler {
	return &ShopHandler{shop: shop}
}

// Catalog handles GET /api/prizes
func (h *ShopHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	prizes, err := h.shop.Catalog()
	if err != nil {
		log.Printf("failed to list prizes: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to list prizes")
		return
	}
	respondWithJSON(w, http.StatusOK, prizes)
}

// CreatePrize handles POST /api/prizes
func (h *ShopHandler) CreatePrize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name           string   `json:"name"`
		Cost           int      `json:"cost"`
		IsOneTime      bool     `json:"is_one_time"`
		TargetChildIDs []string `json:"target_child_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	prize, err := h.shop.CreatePrize(req.Name, req.Cost, req.IsOneTime, req.TargetChildIDs)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPrize) || errors.Is(err, service.ErrNoTargets) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("failed to create prize: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to create prize")
		return
	}
	respondWithJSON(w, http.StatusCreated, prize)
}

// DeletePrize handles DELETE /api/prizes/{id}
func (h *ShopHandler) DeletePrize(w http.ResponseWriter, r *http.Request) {
	if err := h.shop.DeletePrize(r.PathValue("id")); err != nil {
		log.Printf("failed to delete prize: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to delete prize")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AwardPrize handles POST /api/children/{id}/prizes/{pid}/award
func (h *ShopHandler) AwardPrize(w http.ResponseWriter, r *http.Request) {
	err := h.shop.AwardPrize(r.PathValue("id"), r.PathValue("pid"))
	if err != nil {
		if errors.Is(err, ledger.ErrInsufficientBalance) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("failed to award prize: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to award prize")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// IssuePrize handles POST /api/children/{id}/prizes/{pid}/issue
func (h *ShopHandler) IssuePrize(w http.ResponseWriter, r *http.Request) {
	if err := h.shop.IssuePrize(r.PathValue("id"), r.PathValue("pid")); err != nil {
		log.Printf("failed to issue prize: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to issue prize")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
