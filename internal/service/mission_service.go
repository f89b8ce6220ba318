package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"familywallet/internal/database"
	"familywallet/internal/ledger"
	"familywallet/internal/models"
	"familywallet/internal/repository"
)

var (
	// ErrInvalidMission is returned when title is empty or reward not positive
	ErrInvalidMission = errors.New("mission requires a title and a positive reward")
	// ErrNoTargets is returned when no target children are selected
	ErrNoTargets = errors.New("at least one target child is required")
)

// MissionService applies mission lifecycle operations through the ledger and
// persists each resulting aggregate in a single transaction.
type MissionService struct {
	db       *database.DB
	children *repository.ChildRepository
}

// NewMissionService creates a new mission service
func NewMissionService(db *database.DB, children *repository.ChildRepository) *MissionService {
	return &MissionService{db: db, children: children}
}

// CreateMission appends one shared mission record to every target child. Team
// missions snapshot the target names at creation time; the label is not
// recomputed on later renames.
func (s *MissionService) CreateMission(title string, reward int, category string, isRecurring, isTeam bool, targetChildIDs []string) (models.Mission, error) {
	if title == "" || reward <= 0 {
		return models.Mission{}, ErrInvalidMission
	}
	if len(targetChildIDs) == 0 {
		return models.Mission{}, ErrNoTargets
	}
	if category != "" && !models.ValidMissionCategory(category) {
		return models.Mission{}, fmt.Errorf("unknown mission category: %s", category)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.Mission{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	targets := make([]models.Child, 0, len(targetChildIDs))
	seen := make(map[string]bool, len(targetChildIDs))
	for _, id := range targetChildIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		child, err := s.children.GetByID(tx, id)
		if err != nil {
			return models.Mission{}, err
		}
		if child == nil {
			return models.Mission{}, ErrChildNotFound
		}
		targets = append(targets, *child)
	}

	mission := models.Mission{
		ID:          uuid.New().String(),
		Title:       title,
		Reward:      reward,
		Status:      models.MissionStatusActive,
		Category:    category,
		IsRecurring: isRecurring,
		IsTeam:      isTeam,
		CreatedAt:   time.Now(),
	}
	if isTeam {
		names := make([]string, len(targets))
		for i, child := range targets {
			names[i] = child.Name
		}
		mission.AssignedToNames = names
	}

	for _, child := range targets {
		updated := child.Clone()
		updated.Missions = append(updated.Missions, mission)
		if err := s.children.Save(tx, updated); err != nil {
			return models.Mission{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Mission{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return mission, nil
}

// MissionsForReview returns a child's missions with pending ones first
func (s *MissionService) MissionsForReview(childID string) ([]models.Mission, error) {
	child, err := s.children.GetByID(s.db, childID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, ErrChildNotFound
	}
	return ledger.SortMissionsForReview(child.Missions), nil
}

// SubmitMission sends an active mission into review
func (s *MissionService) SubmitMission(childID, missionID string) error {
	return s.applyToChild(childID, func(child models.Child) (models.Child, bool) {
		return ledger.SubmitMission(child, missionID)
	})
}

// ConfirmMission credits a pending mission's reward
func (s *MissionService) ConfirmMission(childID, missionID string) error {
	return s.applyToChild(childID, func(child models.Child) (models.Child, bool) {
		return ledger.ConfirmMission(child, missionID, time.Now())
	})
}

// RejectMission sends a mission back without crediting it
func (s *MissionService) RejectMission(childID, missionID string) error {
	return s.applyToChild(childID, func(child models.Child) (models.Child, bool) {
		return ledger.RejectMission(child, missionID)
	})
}

// DeleteMission removes a mission regardless of status
func (s *MissionService) DeleteMission(childID, missionID string) error {
	return s.applyToChild(childID, func(child models.Child) (models.Child, bool) {
		return ledger.DeleteMission(child, missionID)
	})
}

// applyToChild runs a ledger operation over one child aggregate inside a
// transaction. Unknown child or mission ids are silent no-ops.
func (s *MissionService) applyToChild(childID string, op func(models.Child) (models.Child, bool)) error {
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

	updated, ok := op(*child)
	if !ok {
		return nil
	}

	if err := s.children.Save(tx, updated); err != nil {
		return err
	}
	return tx.Commit()
}
