package models

import "time"

// Dream is a child's savings target. Progress is informational and not
// derived from the balance automatically.
type Dream struct {
	Title    string `json:"title"`
	Price    int    `json:"price"`
	Current  int    `json:"current"`
	ImageURL string `json:"image_url"`
}

// Balance tracks a child's reward stars. Confirmed is spendable; Pending is
// the sum reserved for missions awaiting review and never goes negative.
type Balance struct {
	Confirmed int `json:"confirmed"`
	Pending   int `json:"pending"`
}

// Child is the aggregate root for one family member: balances, missions,
// awarded prizes and the activity log. It is replaced wholesale on every
// ledger operation, never mutated in place.
type Child struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Avatar        string         `json:"avatar"`
	Dream         Dream          `json:"dream"`
	Balance       Balance        `json:"balance"`
	InviteCode    string         `json:"invite_code"`
	Missions      []Mission      `json:"missions"`
	PendingPrizes []PendingPrize `json:"pending_prizes"`
	Activities    []Activity     `json:"activities"`
	CreatedAt     time.Time      `json:"created_at"`
}

// Clone returns a deep copy of the child so callers can build a replacement
// aggregate without touching the original.
func (c Child) Clone() Child {
	clone := c
	clone.Missions = append([]Mission(nil), c.Missions...)
	clone.PendingPrizes = append([]PendingPrize(nil), c.PendingPrizes...)
	clone.Activities = append([]Activity(nil), c.Activities...)
	for i, m := range clone.Missions {
		clone.Missions[i].AssignedToNames = append([]string(nil), m.AssignedToNames...)
	}
	return clone
}
