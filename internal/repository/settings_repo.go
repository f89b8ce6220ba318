package repository

import (
	"database/sql"
	"fmt"

	"familywallet/internal/database"
)

// SettingsRepository stores small key/value pairs such as the currently
// selected child.
type SettingsRepository struct {
	dialect database.Dialect
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *database.DB) *SettingsRepository {
	return &SettingsRepository{dialect: db.Dialect()}
}

// Get returns the value for a key, or "" when the key is unset
func (r *SettingsRepository) Get(q database.Querier, key string) (string, error) {
	var value string
	err := q.QueryRow("SELECT value FROM settings WHERE name = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, nil
}

// Set inserts or updates a key. The upsert statement is dialect-specific and
// already carries its own placeholder style.
func (r *SettingsRepository) Set(q database.Querier, key, value string) error {
	if _, err := q.Exec(r.dialect.UpsertSettings(), key, value); err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}

// Delete removes a key
func (r *SettingsRepository) Delete(q database.Querier, key string) error {
	if _, err := q.Exec("DELETE FROM settings WHERE name = ?", key); err != nil {
		return fmt.Errorf("failed to delete setting %s: %w", key, err)
	}
	return nil
}
