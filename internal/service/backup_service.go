package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"familywallet/internal/database"
	"familywallet/internal/models"
	"familywallet/internal/repository"
)

// ErrMalformedBackup is returned when an import payload is not a list of
// child records. The roster is left untouched.
var ErrMalformedBackup = errors.New("backup payload must be a list of child records")

// BackupService serializes the roster as a flat ordered list of child
// records and restores it wholesale.
type BackupService struct {
	db       *database.DB
	children *repository.ChildRepository
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB, children *repository.ChildRepository) *BackupService {
	return &BackupService{db: db, children: children}
}

// Export writes the full roster as JSON
func (s *BackupService) Export(w io.Writer) error {
	roster, err := s.children.GetAll(s.db)
	if err != nil {
		return err
	}
	if roster == nil {
		roster = []models.Child{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(roster); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	return nil
}

// Import replaces the entire roster with the list read from r. The payload is
// validated before any write; on failure the roster stays as it was.
func (s *BackupService) Import(r io.Reader) (int, error) {
	payload, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("failed to read backup: %w", err)
	}

	roster, err := parseRoster(payload)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.children.ReplaceAll(tx, roster); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return len(roster), nil
}

// parseRoster validates the top-level shape and the minimal per-record
// requirements (id and name present, no duplicate ids).
func parseRoster(payload []byte) ([]models.Child, error) {
	var roster []models.Child
	if err := json.Unmarshal(payload, &roster); err != nil {
		return nil, ErrMalformedBackup
	}

	seen := make(map[string]bool, len(roster))
	for i, child := range roster {
		if child.ID == "" || child.Name == "" {
			return nil, fmt.Errorf("%w: record %d is missing id or name", ErrMalformedBackup, i)
		}
		if seen[child.ID] {
			return nil, fmt.Errorf("%w: duplicate child id %s", ErrMalformedBackup, child.ID)
		}
		seen[child.ID] = true

		// pending balance can never be negative
		if child.Balance.Pending < 0 {
			roster[i].Balance.Pending = 0
		}
	}
	return roster, nil
}
