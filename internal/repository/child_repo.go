package repository

import (
	"database/sql"
	"fmt"

	"familywallet/internal/database"
	"familywallet/internal/models"
)

// ChildRepository persists the child aggregate: the profile row plus its
// missions, pending prizes and activities. Every method takes a Querier so
// callers decide whether to run inside a transaction.
type ChildRepository struct {
	missions   *MissionRepository
	prizes     *PrizeRepository
	activities *ActivityRepository
}

// NewChildRepository creates a new child repository
func NewChildRepository(missions *MissionRepository, prizes *PrizeRepository, activities *ActivityRepository) *ChildRepository {
	return &ChildRepository{
		missions:   missions,
		prizes:     prizes,
		activities: activities,
	}
}

// GetAll returns the full roster in insertion order
func (r *ChildRepository) GetAll(q database.Querier) ([]models.Child, error) {
	rows, err := q.Query(`
		SELECT id, name, avatar, dream_title, dream_price, dream_current, dream_image_url,
		       balance_confirmed, balance_pending, invite_code, created_at
		FROM children
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query children: %w", err)
	}
	defer rows.Close()

	var children []models.Child
	for rows.Next() {
		child, err := scanChild(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan child: %w", err)
		}
		children = append(children, child)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate children: %w", err)
	}

	for i := range children {
		if err := r.loadAggregate(q, &children[i]); err != nil {
			return nil, err
		}
	}
	return children, nil
}

// GetByID returns one child aggregate, or nil if the id is unknown
func (r *ChildRepository) GetByID(q database.Querier, id string) (*models.Child, error) {
	row := q.QueryRow(`
		SELECT id, name, avatar, dream_title, dream_price, dream_current, dream_image_url,
		       balance_confirmed, balance_pending, invite_code, created_at
		FROM children
		WHERE id = ?
	`, id)

	child, err := scanChild(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}

	if err := r.loadAggregate(q, &child); err != nil {
		return nil, err
	}
	return &child, nil
}

// Count returns the roster size
func (r *ChildRepository) Count(q database.Querier) (int, error) {
	var count int
	if err := q.QueryRow("SELECT COUNT(*) FROM children").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count children: %w", err)
	}
	return count, nil
}

// Create appends a child to the end of the roster
func (r *ChildRepository) Create(q database.Querier, child models.Child) error {
	_, err := q.Exec(`
		INSERT INTO children (id, name, avatar, dream_title, dream_price, dream_current, dream_image_url,
		                      balance_confirmed, balance_pending, invite_code, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
		        (SELECT COALESCE(MAX(p.position), 0) + 1 FROM (SELECT position FROM children) p), ?)
	`, child.ID, child.Name, child.Avatar,
		child.Dream.Title, child.Dream.Price, child.Dream.Current, child.Dream.ImageURL,
		child.Balance.Confirmed, child.Balance.Pending, child.InviteCode, child.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create child: %w", err)
	}
	return r.saveAggregate(q, child)
}

// Save replaces the whole aggregate with the given state. The roster position
// is preserved; an unknown id is a no-op. Existence is checked explicitly:
// RowsAffected can't serve here because MySQL reports rows changed, not rows
// matched, so an update that only touches the sublists would look like a miss.
func (r *ChildRepository) Save(q database.Querier, child models.Child) error {
	var exists int
	if err := q.QueryRow("SELECT COUNT(*) FROM children WHERE id = ?", child.ID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check child: %w", err)
	}
	if exists == 0 {
		return nil
	}

	_, err := q.Exec(`
		UPDATE children
		SET name = ?, avatar = ?, dream_title = ?, dream_price = ?, dream_current = ?, dream_image_url = ?,
		    balance_confirmed = ?, balance_pending = ?, invite_code = ?
		WHERE id = ?
	`, child.Name, child.Avatar,
		child.Dream.Title, child.Dream.Price, child.Dream.Current, child.Dream.ImageURL,
		child.Balance.Confirmed, child.Balance.Pending, child.InviteCode, child.ID)
	if err != nil {
		return fmt.Errorf("failed to update child: %w", err)
	}
	return r.saveAggregate(q, child)
}

// Delete removes a child and its owned records
func (r *ChildRepository) Delete(q database.Querier, id string) error {
	if err := r.deleteOwned(q, id); err != nil {
		return err
	}
	if _, err := q.Exec("DELETE FROM children WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete child: %w", err)
	}
	return nil
}

// ReplaceAll swaps the entire roster for the given list, preserving its
// order. Used by backup import.
func (r *ChildRepository) ReplaceAll(q database.Querier, children []models.Child) error {
	for _, table := range []string{"activities", "pending_prizes", "missions", "children"} {
		if _, err := q.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i, child := range children {
		_, err := q.Exec(`
			INSERT INTO children (id, name, avatar, dream_title, dream_price, dream_current, dream_image_url,
			                      balance_confirmed, balance_pending, invite_code, position, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, child.ID, child.Name, child.Avatar,
			child.Dream.Title, child.Dream.Price, child.Dream.Current, child.Dream.ImageURL,
			child.Balance.Confirmed, child.Balance.Pending, child.InviteCode, i+1, child.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert child %s: %w", child.ID, err)
		}
		if err := r.saveAggregate(q, child); err != nil {
			return err
		}
	}
	return nil
}

func (r *ChildRepository) loadAggregate(q database.Querier, child *models.Child) error {
	missions, err := r.missions.ListByChild(q, child.ID)
	if err != nil {
		return err
	}
	pendingPrizes, err := r.prizes.ListPendingByChild(q, child.ID)
	if err != nil {
		return err
	}
	activities, err := r.activities.ListByChild(q, child.ID)
	if err != nil {
		return err
	}
	child.Missions = missions
	child.PendingPrizes = pendingPrizes
	child.Activities = activities
	return nil
}

func (r *ChildRepository) saveAggregate(q database.Querier, child models.Child) error {
	if err := r.missions.ReplaceForChild(q, child.ID, child.Missions); err != nil {
		return err
	}
	if err := r.prizes.ReplacePendingForChild(q, child.ID, child.PendingPrizes); err != nil {
		return err
	}
	if err := r.activities.ReplaceForChild(q, child.ID, child.Activities); err != nil {
		return err
	}
	return nil
}

func (r *ChildRepository) deleteOwned(q database.Querier, childID string) error {
	for _, table := range []string{"activities", "pending_prizes", "missions"} {
		if _, err := q.Exec("DELETE FROM "+table+" WHERE child_id = ?", childID); err != nil {
			return fmt.Errorf("failed to delete child %s: %w", table, err)
		}
	}
	return nil
}

// scanner covers both sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanChild(s scanner) (models.Child, error) {
	var child models.Child
	err := s.Scan(
		&child.ID, &child.Name, &child.Avatar,
		&child.Dream.Title, &child.Dream.Price, &child.Dream.Current, &child.Dream.ImageURL,
		&child.Balance.Confirmed, &child.Balance.Pending, &child.InviteCode, &child.CreatedAt,
	)
	return child, err
}
