package models

import "time"

// Mission status values. No lifecycle transition produces completed (a
// confirmed one-shot mission is removed instead), but imported data and
// external clients may carry it; anything non-pending sorts after pending in
// review order.
const (
	MissionStatusActive    = "active"
	MissionStatusPending   = "pending"
	MissionStatusCompleted = "completed"
)

// Mission categories
const (
	MissionCategoryChores    = "chores"
	MissionCategoryEducation = "education"
	MissionCategorySports    = "sports"
)

// Mission is a task with a star reward. Team missions carry a snapshot of the
// assignees' display names taken at creation time; later renames do not
// update it.
type Mission struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Reward          int       `json:"reward"`
	Status          string    `json:"status"`
	Category        string    `json:"category"`
	IsRecurring     bool      `json:"is_recurring"`
	IsTeam          bool      `json:"is_team"`
	AssignedToNames []string  `json:"assigned_to_names,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// ValidMissionCategory reports whether category is one of the known values
func ValidMissionCategory(category string) bool {
	switch category {
	case MissionCategoryChores, MissionCategoryEducation, MissionCategorySports:
		return true
	}
	return false
}
