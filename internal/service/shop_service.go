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

// ErrInvalidPrize is returned when name is empty or cost not positive
var ErrInvalidPrize = errors.New("prize requires a name and a positive cost")

// ShopService manages the roster-wide prize catalog, awards and deliveries.
type ShopService struct {
	db       *database.DB
	children *repository.ChildRepository
	prizes   *repository.PrizeRepository
}

// NewShopService creates a new shop service
func NewShopService(db *database.DB, children *repository.ChildRepository, prizes *repository.PrizeRepository) *ShopService {
	return &ShopService{db: db, children: children, prizes: prizes}
}

// Catalog returns all prizes
func (s *ShopService) Catalog() ([]models.Prize, error) {
	return s.prizes.GetCatalog(s.db)
}

// CreatePrize adds a prize to the shared catalog. Target children are
// accepted for display filtering on the client but the catalog itself is
// roster-independent, so they are not persisted.
func (s *ShopService) CreatePrize(name string, cost int, isOneTime bool, targetChildIDs []string) (models.Prize, error) {
	if name == "" || cost <= 0 {
		return models.Prize{}, ErrInvalidPrize
	}
	if len(targetChildIDs) == 0 {
		return models.Prize{}, ErrNoTargets
	}

	prize := models.Prize{
		ID:        uuid.New().String(),
		Name:      name,
		Cost:      cost,
		IsOneTime: isOneTime,
		CreatedAt: time.Now(),
	}
	if err := s.prizes.Create(s.db, prize); err != nil {
		return models.Prize{}, err
	}
	return prize, nil
}

// DeletePrize removes a catalog entry. Already-awarded instances on children
// are unaffected.
func (s *ShopService) DeletePrize(id string) error {
	return s.prizes.Delete(s.db, id)
}

// AwardPrize buys a catalog prize for a child: the cost is deducted from the
// confirmed balance and an awaiting-delivery instance is attached. A one-time
// prize is consumed from the catalog on award.
func (s *ShopService) AwardPrize(childID, prizeID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	child, err := s.children.GetByID(tx, childID)
	if err != nil {
		return err
	}
	prize, err := s.prizes.GetByID(tx, prizeID)
	if err != nil {
		return err
	}
	if child == nil || prize == nil {
		return nil
	}

	updated, err := ledger.AwardPrize(*child, *prize, time.Now())
	if err != nil {
		return err
	}
	if err := s.children.Save(tx, updated); err != nil {
		return err
	}

	if prize.IsOneTime {
		if err := s.prizes.Delete(tx, prize.ID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// IssuePrize marks an awarded prize as handed over. Unknown ids are silent
// no-ops, so repeated calls are safe.
func (s *ShopService) IssuePrize(childID, pendingPrizeID string) error {
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

	updated, ok := ledger.IssuePrize(*child, pendingPrizeID)
	if !ok {
		return nil
	}
	if err := s.children.Save(tx, updated); err != nil {
		return err
	}
	return tx.Commit()
}
