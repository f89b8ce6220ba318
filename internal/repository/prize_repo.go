package repository

import (
	"database/sql"
	"fmt"

	"familywallet/internal/database"
	"familywallet/internal/models"
)

// PrizeRepository persists the roster-wide prize catalog and the
// awaiting-delivery prize instances attached to children.
type PrizeRepository struct{}

// NewPrizeRepository creates a new prize repository
func NewPrizeRepository() *PrizeRepository {
	return &PrizeRepository{}
}

// GetCatalog returns all catalog prizes, oldest first
func (r *PrizeRepository) GetCatalog(q database.Querier) ([]models.Prize, error) {
	rows, err := q.Query(`
		SELECT id, name, cost, image_url, is_one_time, created_at
		FROM prizes
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query prizes: %w", err)
	}
	defer rows.Close()

	prizes := []models.Prize{}
	for rows.Next() {
		var prize models.Prize
		err := rows.Scan(&prize.ID, &prize.Name, &prize.Cost, &prize.ImageURL,
			&prize.IsOneTime, &prize.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prize: %w", err)
		}
		prizes = append(prizes, prize)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate prizes: %w", err)
	}
	return prizes, nil
}

// GetByID returns one catalog prize, or nil if the id is unknown
func (r *PrizeRepository) GetByID(q database.Querier, id string) (*models.Prize, error) {
	var prize models.Prize
	err := q.QueryRow(`
		SELECT id, name, cost, image_url, is_one_time, created_at
		FROM prizes
		WHERE id = ?
	`, id).Scan(&prize.ID, &prize.Name, &prize.Cost, &prize.ImageURL,
		&prize.IsOneTime, &prize.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prize: %w", err)
	}
	return &prize, nil
}

// Create adds a prize to the catalog
func (r *PrizeRepository) Create(q database.Querier, prize models.Prize) error {
	_, err := q.Exec(`
		INSERT INTO prizes (id, name, cost, image_url, is_one_time, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, prize.ID, prize.Name, prize.Cost, prize.ImageURL, prize.IsOneTime, prize.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create prize: %w", err)
	}
	return nil
}

// Delete removes a prize from the catalog
func (r *PrizeRepository) Delete(q database.Querier, id string) error {
	if _, err := q.Exec("DELETE FROM prizes WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete prize: %w", err)
	}
	return nil
}

// ListPendingByChild returns a child's awaiting-delivery prizes in award order
func (r *PrizeRepository) ListPendingByChild(q database.Querier, childID string) ([]models.PendingPrize, error) {
	rows, err := q.Query(`
		SELECT id, prize_id, name, cost, image_url, awarded_at
		FROM pending_prizes
		WHERE child_id = ?
		ORDER BY position ASC
	`, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending prizes: %w", err)
	}
	defer rows.Close()

	pending := []models.PendingPrize{}
	for rows.Next() {
		var p models.PendingPrize
		err := rows.Scan(&p.ID, &p.PrizeID, &p.Name, &p.Cost, &p.ImageURL, &p.AwardedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pending prize: %w", err)
		}
		pending = append(pending, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pending prizes: %w", err)
	}
	return pending, nil
}

// ReplacePendingForChild swaps a child's pending prize list wholesale
func (r *PrizeRepository) ReplacePendingForChild(q database.Querier, childID string, pending []models.PendingPrize) error {
	if _, err := q.Exec("DELETE FROM pending_prizes WHERE child_id = ?", childID); err != nil {
		return fmt.Errorf("failed to clear pending prizes: %w", err)
	}

	for i, p := range pending {
		_, err := q.Exec(`
			INSERT INTO pending_prizes (child_id, id, prize_id, name, cost, image_url, position, awarded_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, childID, p.ID, p.PrizeID, p.Name, p.Cost, p.ImageURL, i+1, p.AwardedAt)
		if err != nil {
			return fmt.Errorf("failed to insert pending prize %s: %w", p.ID, err)
		}
	}
	return nil
}
