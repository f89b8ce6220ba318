package service

import (
	"errors"
	"fmt"
	"time"

	"familywallet/internal/credentials"
	"familywallet/internal/database"
	"familywallet/internal/ledger"
	"familywallet/internal/models"
	"familywallet/internal/repository"
)

var (
	// ErrChildNotFound is returned when a read targets an unknown child
	ErrChildNotFound = errors.New("child not found")
	// ErrEmptyName is returned when a child is created without a name
	ErrEmptyName = errors.New("child name cannot be empty")
	// ErrLastChild is returned when removal would empty the roster
	ErrLastChild = errors.New("cannot remove the last child")
)

// settings key for the currently selected child
const settingSelectedChild = "selected_child_id"

// RosterService manages the ordered collection of children and the current
// selection. Mutating a missing child is a silent no-op; only pure reads
// report ErrChildNotFound.
type RosterService struct {
	db       *database.DB
	children *repository.ChildRepository
	settings *repository.SettingsRepository
}

// NewRosterService creates a new roster service
func NewRosterService(db *database.DB, children *repository.ChildRepository, settings *repository.SettingsRepository) *RosterService {
	return &RosterService{db: db, children: children, settings: settings}
}

// ListChildren returns the full roster in order
func (s *RosterService) ListChildren() ([]models.Child, error) {
	return s.children.GetAll(s.db)
}

// GetChild returns one child aggregate
func (s *RosterService) GetChild(id string) (*models.Child, error) {
	child, err := s.children.GetByID(s.db, id)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, ErrChildNotFound
	}
	return child, nil
}

// AddChild creates a child profile with a fresh invite code and makes it the
// selected child.
func (s *RosterService) AddChild(name, avatar string) (models.Child, error) {
	if name == "" {
		return models.Child{}, ErrEmptyName
	}

	inviteCode, err := credentials.GenerateInviteCode()
	if err != nil {
		return models.Child{}, err
	}
	child := ledger.NewChild(name, avatar, inviteCode, time.Now())

	tx, err := s.db.Begin()
	if err != nil {
		return models.Child{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.children.Create(tx, child); err != nil {
		return models.Child{}, err
	}
	if err := s.settings.Set(tx, settingSelectedChild, child.ID); err != nil {
		return models.Child{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Child{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return child, nil
}

// UpdateChild replaces the roster entry whose id matches the given aggregate.
// An unknown id is a no-op.
func (s *RosterService) UpdateChild(updated models.Child) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.children.Save(tx, updated); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateDream sets a child's savings target
func (s *RosterService) UpdateDream(childID string, dream models.Dream) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	child, err := s.children.GetByID(tx, childID)
	if err != nil {
		return err
	}
	if child == nil {
		return nil
	}

	updated := child.Clone()
	updated.Dream = dream
	if err := s.children.Save(tx, updated); err != nil {
		return err
	}
	return tx.Commit()
}

// RemoveChild deletes a child unless it is the last one on the roster. When
// the removed child was selected, selection moves to the first remaining
// entry.
func (s *RosterService) RemoveChild(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	child, err := s.children.GetByID(tx, id)
	if err != nil {
		return err
	}
	if child == nil {
		return nil
	}

	count, err := s.children.Count(tx)
	if err != nil {
		return err
	}
	if count <= 1 {
		return ErrLastChild
	}

	if err := s.children.Delete(tx, id); err != nil {
		return err
	}

	selected, err := s.settings.Get(tx, settingSelectedChild)
	if err != nil {
		return err
	}
	if selected == id {
		remaining, err := s.children.GetAll(tx)
		if err != nil {
			return err
		}
		if len(remaining) > 0 {
			if err := s.settings.Set(tx, settingSelectedChild, remaining[0].ID); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

// SelectChild records the selection. Existence is not validated; reads fall
// back to the first roster entry when the stored id is gone.
func (s *RosterService) SelectChild(id string) error {
	return s.settings.Set(s.db, settingSelectedChild, id)
}

// SelectedChild resolves the current selection
func (s *RosterService) SelectedChild() (*models.Child, error) {
	selected, err := s.settings.Get(s.db, settingSelectedChild)
	if err != nil {
		return nil, err
	}
	if selected != "" {
		child, err := s.children.GetByID(s.db, selected)
		if err != nil {
			return nil, err
		}
		if child != nil {
			return child, nil
		}
	}

	roster, err := s.children.GetAll(s.db)
	if err != nil {
		return nil, err
	}
	if len(roster) == 0 {
		return nil, ErrChildNotFound
	}
	return &roster[0], nil
}
