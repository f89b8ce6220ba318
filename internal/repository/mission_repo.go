package repository

import (
	"encoding/json"
	"fmt"

	"familywallet/internal/database"
	"familywallet/internal/models"
)

// MissionRepository persists the mission lists owned by child aggregates.
// Mission ids are shared across children for team missions, so rows are keyed
// by (child_id, id).
type MissionRepository struct{}

// NewMissionRepository creates a new mission repository
func NewMissionRepository() *MissionRepository {
	return &MissionRepository{}
}

// ListByChild returns a child's missions in insertion order
func (r *MissionRepository) ListByChild(q database.Querier, childID string) ([]models.Mission, error) {
	rows, err := q.Query(`
		SELECT id, title, reward, status, category, is_recurring, is_team, assigned_to_names, created_at
		FROM missions
		WHERE child_id = ?
		ORDER BY position ASC
	`, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to query missions: %w", err)
	}
	defer rows.Close()

	missions := []models.Mission{}
	for rows.Next() {
		var mission models.Mission
		var namesJSON string
		err := rows.Scan(&mission.ID, &mission.Title, &mission.Reward, &mission.Status,
			&mission.Category, &mission.IsRecurring, &mission.IsTeam, &namesJSON, &mission.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mission: %w", err)
		}
		if namesJSON != "" {
			if err := json.Unmarshal([]byte(namesJSON), &mission.AssignedToNames); err != nil {
				return nil, fmt.Errorf("failed to decode assigned names: %w", err)
			}
		}
		missions = append(missions, mission)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate missions: %w", err)
	}
	return missions, nil
}

// ReplaceForChild swaps a child's mission list wholesale, preserving order
func (r *MissionRepository) ReplaceForChild(q database.Querier, childID string, missions []models.Mission) error {
	if _, err := q.Exec("DELETE FROM missions WHERE child_id = ?", childID); err != nil {
		return fmt.Errorf("failed to clear missions: %w", err)
	}

	for i, mission := range missions {
		namesJSON := ""
		if len(mission.AssignedToNames) > 0 {
			encoded, err := json.Marshal(mission.AssignedToNames)
			if err != nil {
				return fmt.Errorf("failed to encode assigned names: %w", err)
			}
			namesJSON = string(encoded)
		}

		_, err := q.Exec(`
			INSERT INTO missions (child_id, id, title, reward, status, category, is_recurring, is_team, assigned_to_names, position, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, childID, mission.ID, mission.Title, mission.Reward, mission.Status,
			mission.Category, mission.IsRecurring, mission.IsTeam, namesJSON, i+1, mission.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert mission %s: %w", mission.ID, err)
		}
	}
	return nil
}
