package models

import "time"

// Activity types
const (
	ActivityTypeMission    = "mission"
	ActivityTypePurchase   = "purchase"
	ActivityTypeAdjustment = "adjustment"
)

// Activity is one entry in a child's append-only history. Amount is signed:
// positive for credits, negative for debits. Date is the display string shown
// to the family; CreatedAt orders the log.
type Activity struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Amount      int       `json:"amount"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}
