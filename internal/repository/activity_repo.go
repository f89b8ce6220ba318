package repository

import (
	"fmt"

	"familywallet/internal/database"
	"familywallet/internal/models"
)

// ActivityRepository persists a child's append-only history. Lists are stored
// most-recent-first, matching the in-memory convention.
type ActivityRepository struct{}

// NewActivityRepository creates a new activity repository
func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{}
}

// ListByChild returns a child's activities, most recent first
func (r *ActivityRepository) ListByChild(q database.Querier, childID string) ([]models.Activity, error) {
	rows, err := q.Query(`
		SELECT id, type, description, amount, date_label, created_at
		FROM activities
		WHERE child_id = ?
		ORDER BY position ASC
	`, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	activities := []models.Activity{}
	for rows.Next() {
		var activity models.Activity
		err := rows.Scan(&activity.ID, &activity.Type, &activity.Description,
			&activity.Amount, &activity.Date, &activity.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activities: %w", err)
	}
	return activities, nil
}

// ReplaceForChild swaps a child's activity log wholesale, preserving order
func (r *ActivityRepository) ReplaceForChild(q database.Querier, childID string, activities []models.Activity) error {
	if _, err := q.Exec("DELETE FROM activities WHERE child_id = ?", childID); err != nil {
		return fmt.Errorf("failed to clear activities: %w", err)
	}

	for i, activity := range activities {
		_, err := q.Exec(`
			INSERT INTO activities (child_id, id, type, description, amount, date_label, position, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, childID, activity.ID, activity.Type, activity.Description,
			activity.Amount, activity.Date, i+1, activity.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert activity %s: %w", activity.ID, err)
		}
	}
	return nil
}
