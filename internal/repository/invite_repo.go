package repository

import (
	"fmt"

	"familywallet/internal/database"
	"familywallet/internal/models"
)

// InviteRepository persists family invite codes
type InviteRepository struct{}

// NewInviteRepository creates a new invite repository
func NewInviteRepository() *InviteRepository {
	return &InviteRepository{}
}

// List returns all invites, newest first
func (r *InviteRepository) List(q database.Querier) ([]models.Invite, error) {
	rows, err := q.Query(`
		SELECT code, email, created_at
		FROM invites
		ORDER BY created_at DESC, code ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query invites: %w", err)
	}
	defer rows.Close()

	invites := []models.Invite{}
	for rows.Next() {
		var invite models.Invite
		if err := rows.Scan(&invite.Code, &invite.Email, &invite.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan invite: %w", err)
		}
		invites = append(invites, invite)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invites: %w", err)
	}
	return invites, nil
}

// Create stores a new invite code
func (r *InviteRepository) Create(q database.Querier, invite models.Invite) error {
	_, err := q.Exec(`
		INSERT INTO invites (code, email, created_at)
		VALUES (?, ?, ?)
	`, invite.Code, invite.Email, invite.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create invite: %w", err)
	}
	return nil
}
