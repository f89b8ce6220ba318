package models

import "time"

// Prize is a catalog item purchasable with confirmed stars. The catalog is
// shared across the whole roster. IsOneTime marks a single consumable
// instance rather than a reusable slot.
type Prize struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Cost      int       `json:"cost"`
	ImageURL  string    `json:"image_url"`
	IsOneTime bool      `json:"is_one_time"`
	CreatedAt time.Time `json:"created_at"`
}

// PendingPrize is an awarded prize instance on a child awaiting physical
// hand-off. Name and cost are snapshots of the catalog entry at award time.
// Issuing removes it; there is no further state.
type PendingPrize struct {
	ID        string    `json:"id"`
	PrizeID   string    `json:"prize_id"`
	Name      string    `json:"name"`
	Cost      int       `json:"cost"`
	ImageURL  string    `json:"image_url"`
	AwardedAt time.Time `json:"awarded_at"`
}
