package models

import "time"

// Invite is a family invite code, optionally tied to the email it was sent to
type Invite struct {
	Code      string    `json:"code"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
