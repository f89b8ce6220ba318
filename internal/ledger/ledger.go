// Package ledger implements the reward state machine for a child aggregate.
// Every operation is a pure function: it takes a child, returns a replacement
// copy, and never mutates its input. Lookup misses return the input unchanged
// with ok=false so callers can treat them as silent no-ops.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"familywallet/internal/models"
)

// ErrInsufficientBalance is returned when a prize costs more than the child's
// confirmed balance.
var ErrInsufficientBalance = errors.New("insufficient confirmed balance")

const (
	defaultDreamTitle = "Первая мечта..."
	defaultDreamPrice = 100
	defaultDreamImage = "https://picsum.photos/seed/gift/400/300"
)

// NewChild constructs a fresh child profile with zero balances, empty
// histories and the default dream.
func NewChild(name, avatar, inviteCode string, now time.Time) models.Child {
	if avatar == "" {
		avatar = "https://api.dicebear.com/7.x/avataaars/svg?seed=" + name
	}
	return models.Child{
		ID:     uuid.New().String(),
		Name:   name,
		Avatar: avatar,
		Dream: models.Dream{
			Title:    defaultDreamTitle,
			Price:    defaultDreamPrice,
			Current:  0,
			ImageURL: defaultDreamImage,
		},
		Balance:       models.Balance{Confirmed: 0, Pending: 0},
		InviteCode:    inviteCode,
		Missions:      []models.Mission{},
		PendingPrizes: []models.PendingPrize{},
		Activities:    []models.Activity{},
		CreatedAt:     now,
	}
}

// SubmitMission moves an active mission into review and reserves its reward
// in the pending balance.
func SubmitMission(child models.Child, missionID string) (models.Child, bool) {
	index := findMission(child.Missions, missionID)
	if index == -1 {
		return child, false
	}
	if child.Missions[index].Status != models.MissionStatusActive {
		return child, false
	}

	updated := child.Clone()
	updated.Missions[index].Status = models.MissionStatusPending
	updated.Balance.Pending += updated.Missions[index].Reward
	return updated, true
}

// ConfirmMission credits the mission reward to the confirmed balance,
// releases the pending reservation and records a mission activity. Recurring
// missions reset to active; one-shot missions are consumed.
func ConfirmMission(child models.Child, missionID string, now time.Time) (models.Child, bool) {
	index := findMission(child.Missions, missionID)
	if index == -1 {
		return child, false
	}

	updated := child.Clone()
	mission := updated.Missions[index]

	updated.Balance.Confirmed += mission.Reward
	updated.Balance.Pending = clampNonNegative(updated.Balance.Pending - mission.Reward)

	activity := models.Activity{
		ID:          uuid.New().String(),
		Type:        models.ActivityTypeMission,
		Description: fmt.Sprintf("Миссия: %s", mission.Title),
		Amount:      mission.Reward,
		Date:        displayDate(now),
		CreatedAt:   now,
	}
	updated.Activities = append([]models.Activity{activity}, updated.Activities...)

	if mission.IsRecurring {
		updated.Missions[index].Status = models.MissionStatusActive
	} else {
		updated.Missions = append(updated.Missions[:index], updated.Missions[index+1:]...)
	}
	return updated, true
}

// RejectMission sends a mission back to active and releases its pending
// reservation. The mission is kept even when it is not recurring, and the
// confirmed balance is untouched.
func RejectMission(child models.Child, missionID string) (models.Child, bool) {
	index := findMission(child.Missions, missionID)
	if index == -1 {
		return child, false
	}

	updated := child.Clone()
	reward := updated.Missions[index].Reward
	updated.Missions[index].Status = models.MissionStatusActive
	updated.Balance.Pending = clampNonNegative(updated.Balance.Pending - reward)
	return updated, true
}

// DeleteMission removes a mission regardless of its status. This is an
// administrative action with no balance effect.
func DeleteMission(child models.Child, missionID string) (models.Child, bool) {
	index := findMission(child.Missions, missionID)
	if index == -1 {
		return child, false
	}

	updated := child.Clone()
	updated.Missions = append(updated.Missions[:index], updated.Missions[index+1:]...)
	return updated, true
}

// AwardPrize deducts the prize cost from the confirmed balance, attaches an
// awaiting-delivery instance to the child and records a purchase activity.
func AwardPrize(child models.Child, prize models.Prize, now time.Time) (models.Child, error) {
	if child.Balance.Confirmed < prize.Cost {
		return child, ErrInsufficientBalance
	}

	updated := child.Clone()
	updated.Balance.Confirmed -= prize.Cost

	updated.PendingPrizes = append(updated.PendingPrizes, models.PendingPrize{
		ID:        uuid.New().String(),
		PrizeID:   prize.ID,
		Name:      prize.Name,
		Cost:      prize.Cost,
		ImageURL:  prize.ImageURL,
		AwardedAt: now,
	})

	activity := models.Activity{
		ID:          uuid.New().String(),
		Type:        models.ActivityTypePurchase,
		Description: fmt.Sprintf("Награда: %s", prize.Name),
		Amount:      -prize.Cost,
		Date:        displayDate(now),
		CreatedAt:   now,
	}
	updated.Activities = append([]models.Activity{activity}, updated.Activities...)
	return updated, nil
}

// IssuePrize marks an awarded prize as delivered by removing its pending
// instance. Issuing an unknown id is a no-op, so repeated calls are safe.
func IssuePrize(child models.Child, pendingPrizeID string) (models.Child, bool) {
	index := -1
	for i, p := range child.PendingPrizes {
		if p.ID == pendingPrizeID {
			index = i
			break
		}
	}
	if index == -1 {
		return child, false
	}

	updated := child.Clone()
	updated.PendingPrizes = append(updated.PendingPrizes[:index], updated.PendingPrizes[index+1:]...)
	return updated, true
}

// SortMissionsForReview returns missions with pending ones first, preserving
// insertion order within each group.
func SortMissionsForReview(missions []models.Mission) []models.Mission {
	sorted := make([]models.Mission, 0, len(missions))
	for _, m := range missions {
		if m.Status == models.MissionStatusPending {
			sorted = append(sorted, m)
		}
	}
	for _, m := range missions {
		if m.Status != models.MissionStatusPending {
			sorted = append(sorted, m)
		}
	}
	return sorted
}

func findMission(missions []models.Mission, missionID string) int {
	for i, m := range missions {
		if m.ID == missionID {
			return i
		}
	}
	return -1
}

func clampNonNegative(value int) int {
	if value < 0 {
		return 0
	}
	return value
}

// displayDate renders the activity date the way the family sees it
func displayDate(now time.Time) string {
	return "Сегодня, " + now.Format("15:04")
}
