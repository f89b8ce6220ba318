package ledger

import (
	"errors"
	"testing"
	"time"

	"familywallet/internal/models"
)

var testNow = time.Date(2025, 6, 14, 18, 30, 0, 0, time.UTC)

func testChild(confirmed, pending int, missions ...models.Mission) models.Child {
	return models.Child{
		ID:            "child-1",
		Name:          "Mia",
		Balance:       models.Balance{Confirmed: confirmed, Pending: pending},
		Missions:      missions,
		PendingPrizes: []models.PendingPrize{},
		Activities:    []models.Activity{},
	}
}

func TestNewChild(t *testing.T) {
	child := NewChild("Leo", "", "AB12-CD34", testNow)

	if child.ID == "" {
		t.Error("expected generated id")
	}
	if child.Name != "Leo" {
		t.Errorf("name = %q, want Leo", child.Name)
	}
	if child.Avatar == "" {
		t.Error("expected default avatar for empty input")
	}
	if child.Balance.Confirmed != 0 || child.Balance.Pending != 0 {
		t.Errorf("expected zero balances, got %+v", child.Balance)
	}
	if child.Dream.Price != 100 || child.Dream.Current != 0 {
		t.Errorf("unexpected default dream: %+v", child.Dream)
	}
	if child.InviteCode != "AB12-CD34" {
		t.Errorf("invite code = %q", child.InviteCode)
	}
	if len(child.Missions) != 0 || len(child.Activities) != 0 || len(child.PendingPrizes) != 0 {
		t.Error("expected empty histories")
	}
}

func TestSubmitMission(t *testing.T) {
	child := testChild(0, 0, models.Mission{ID: "m1", Title: "Dishes", Reward: 10, Status: models.MissionStatusActive})

	updated, ok := SubmitMission(child, "m1")
	if !ok {
		t.Fatal("expected submit to succeed")
	}
	if updated.Missions[0].Status != models.MissionStatusPending {
		t.Errorf("status = %q, want pending", updated.Missions[0].Status)
	}
	if updated.Balance.Pending != 10 {
		t.Errorf("pending = %d, want 10", updated.Balance.Pending)
	}

	// resubmitting a pending mission must not double-reserve
	if _, ok := SubmitMission(updated, "m1"); ok {
		t.Error("expected submit of a pending mission to be a no-op")
	}

	if child.Missions[0].Status != models.MissionStatusActive || child.Balance.Pending != 0 {
		t.Error("input child was mutated")
	}
}

func TestConfirmMissionBalanceMath(t *testing.T) {
	tests := []struct {
		name          string
		confirmed     int
		pending       int
		reward        int
		wantConfirmed int
		wantPending   int
	}{
		{name: "normal transfer", confirmed: 20, pending: 15, reward: 15, wantConfirmed: 35, wantPending: 0},
		{name: "partial pending left", confirmed: 0, pending: 25, reward: 10, wantConfirmed: 10, wantPending: 15},
		{name: "pending clamped at zero", confirmed: 5, pending: 3, reward: 10, wantConfirmed: 15, wantPending: 0},
		{name: "zero pending stays zero", confirmed: 0, pending: 0, reward: 7, wantConfirmed: 7, wantPending: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			child := testChild(tt.confirmed, tt.pending,
				models.Mission{ID: "m1", Title: "Dishes", Reward: tt.reward, Status: models.MissionStatusPending})

			updated, ok := ConfirmMission(child, "m1", testNow)
			if !ok {
				t.Fatal("expected confirm to succeed")
			}
			if updated.Balance.Confirmed != tt.wantConfirmed {
				t.Errorf("confirmed = %d, want %d", updated.Balance.Confirmed, tt.wantConfirmed)
			}
			if updated.Balance.Pending != tt.wantPending {
				t.Errorf("pending = %d, want %d", updated.Balance.Pending, tt.wantPending)
			}
		})
	}
}

func TestConfirmMissionDisposition(t *testing.T) {
	t.Run("one-shot mission is consumed", func(t *testing.T) {
		child := testChild(0, 15, models.Mission{ID: "m1", Title: "Dishes", Reward: 15, Status: models.MissionStatusPending})

		updated, ok := ConfirmMission(child, "m1", testNow)
		if !ok {
			t.Fatal("expected confirm to succeed")
		}
		if len(updated.Missions) != 0 {
			t.Errorf("mission list should be empty, has %d entries", len(updated.Missions))
		}
		if updated.Balance.Confirmed != 15 || updated.Balance.Pending != 0 {
			t.Errorf("balance = %+v, want {15 0}", updated.Balance)
		}
	})

	t.Run("recurring mission resets to active", func(t *testing.T) {
		child := testChild(0, 15, models.Mission{ID: "m1", Title: "Dishes", Reward: 15, Status: models.MissionStatusPending, IsRecurring: true})

		updated, ok := ConfirmMission(child, "m1", testNow)
		if !ok {
			t.Fatal("expected confirm to succeed")
		}
		if len(updated.Missions) != 1 {
			t.Fatalf("recurring mission must stay in the list, has %d entries", len(updated.Missions))
		}
		if updated.Missions[0].Status != models.MissionStatusActive {
			t.Errorf("status = %q, want active", updated.Missions[0].Status)
		}
	})
}

func TestConfirmMissionRecordsActivity(t *testing.T) {
	child := testChild(0, 10, models.Mission{ID: "m1", Title: "Помыть посуду", Reward: 10, Status: models.MissionStatusPending})
	child.Activities = []models.Activity{{ID: "old", Description: "earlier"}}

	updated, ok := ConfirmMission(child, "m1", testNow)
	if !ok {
		t.Fatal("expected confirm to succeed")
	}
	if len(updated.Activities) != 2 {
		t.Fatalf("expected activity prepended, got %d entries", len(updated.Activities))
	}
	latest := updated.Activities[0]
	if latest.Type != models.ActivityTypeMission {
		t.Errorf("activity type = %q, want mission", latest.Type)
	}
	if latest.Description != "Миссия: Помыть посуду" {
		t.Errorf("activity description = %q", latest.Description)
	}
	if latest.Amount != 10 {
		t.Errorf("activity amount = %d, want 10", latest.Amount)
	}
	if updated.Activities[1].ID != "old" {
		t.Error("existing activities must stay behind the new entry")
	}
}

func TestConfirmMissionUnknownID(t *testing.T) {
	child := testChild(5, 5, models.Mission{ID: "m1", Reward: 5, Status: models.MissionStatusPending})

	updated, ok := ConfirmMission(child, "missing", testNow)
	if ok {
		t.Error("expected unknown mission id to be a no-op")
	}
	if updated.Balance != child.Balance || len(updated.Missions) != 1 {
		t.Error("no-op must leave the child unchanged")
	}
}

func TestRejectMission(t *testing.T) {
	child := testChild(0, 15, models.Mission{ID: "m1", Title: "Dishes", Reward: 15, Status: models.MissionStatusPending})

	updated, ok := RejectMission(child, "m1")
	if !ok {
		t.Fatal("expected reject to succeed")
	}
	if updated.Balance.Confirmed != 0 {
		t.Errorf("confirmed = %d, must be unchanged", updated.Balance.Confirmed)
	}
	if updated.Balance.Pending != 0 {
		t.Errorf("pending = %d, want 0", updated.Balance.Pending)
	}
	if len(updated.Missions) != 1 {
		t.Fatalf("rejected mission must be kept, has %d entries", len(updated.Missions))
	}
	if updated.Missions[0].Status != models.MissionStatusActive {
		t.Errorf("status = %q, want active", updated.Missions[0].Status)
	}
	if len(updated.Activities) != 0 {
		t.Error("reject must not record an activity")
	}
}

func TestRejectMissionClampsPending(t *testing.T) {
	child := testChild(0, 3, models.Mission{ID: "m1", Reward: 10, Status: models.MissionStatusPending})

	updated, _ := RejectMission(child, "m1")
	if updated.Balance.Pending != 0 {
		t.Errorf("pending = %d, want clamp at 0", updated.Balance.Pending)
	}
}

func TestDeleteMission(t *testing.T) {
	child := testChild(0, 10,
		models.Mission{ID: "m1", Reward: 10, Status: models.MissionStatusPending},
		models.Mission{ID: "m2", Reward: 5, Status: models.MissionStatusActive},
	)

	updated, ok := DeleteMission(child, "m1")
	if !ok {
		t.Fatal("expected delete to succeed")
	}
	if len(updated.Missions) != 1 || updated.Missions[0].ID != "m2" {
		t.Errorf("unexpected mission list: %+v", updated.Missions)
	}
	// destructive admin action leaves balances alone
	if updated.Balance.Pending != 10 {
		t.Errorf("pending = %d, delete must not touch balances", updated.Balance.Pending)
	}

	if _, ok := DeleteMission(updated, "m1"); ok {
		t.Error("expected second delete to be a no-op")
	}
}

func TestAwardPrize(t *testing.T) {
	prize := models.Prize{ID: "p1", Name: "Большая Пицца", Cost: 40}
	child := testChild(50, 0)

	updated, err := AwardPrize(child, prize, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Balance.Confirmed != 10 {
		t.Errorf("confirmed = %d, want 10", updated.Balance.Confirmed)
	}
	if len(updated.PendingPrizes) != 1 {
		t.Fatalf("expected one pending prize, got %d", len(updated.PendingPrizes))
	}
	if updated.PendingPrizes[0].PrizeID != "p1" || updated.PendingPrizes[0].Cost != 40 {
		t.Errorf("unexpected pending prize: %+v", updated.PendingPrizes[0])
	}
	if len(updated.Activities) != 1 {
		t.Fatal("expected a purchase activity")
	}
	if updated.Activities[0].Type != models.ActivityTypePurchase || updated.Activities[0].Amount != -40 {
		t.Errorf("unexpected activity: %+v", updated.Activities[0])
	}
}

func TestAwardPrizeInsufficientBalance(t *testing.T) {
	prize := models.Prize{ID: "p1", Name: "Bike", Cost: 200}
	child := testChild(50, 0)

	updated, err := AwardPrize(child, prize, testNow)
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if updated.Balance.Confirmed != 50 || len(updated.PendingPrizes) != 0 {
		t.Error("failed award must leave the child unchanged")
	}
}

func TestIssuePrizeIdempotent(t *testing.T) {
	child := testChild(0, 0)
	child.PendingPrizes = []models.PendingPrize{
		{ID: "pp1", PrizeID: "p1", Name: "Cinema ticket"},
		{ID: "pp2", PrizeID: "p2", Name: "Ice cream"},
	}

	once, ok := IssuePrize(child, "pp1")
	if !ok {
		t.Fatal("expected first issue to succeed")
	}
	if len(once.PendingPrizes) != 1 || once.PendingPrizes[0].ID != "pp2" {
		t.Errorf("unexpected pending prizes after issue: %+v", once.PendingPrizes)
	}

	twice, ok := IssuePrize(once, "pp1")
	if ok {
		t.Error("expected repeated issue to be a no-op")
	}
	if len(twice.PendingPrizes) != 1 {
		t.Errorf("repeated issue changed state: %+v", twice.PendingPrizes)
	}
}

func TestSortMissionsForReview(t *testing.T) {
	missions := []models.Mission{
		{ID: "m1", Status: models.MissionStatusActive},
		{ID: "m2", Status: models.MissionStatusPending},
		{ID: "m3", Status: models.MissionStatusCompleted},
		{ID: "m4", Status: models.MissionStatusPending},
	}

	sorted := SortMissionsForReview(missions)

	wantOrder := []string{"m2", "m4", "m1", "m3"}
	for i, id := range wantOrder {
		if sorted[i].ID != id {
			t.Errorf("position %d = %q, want %q", i, sorted[i].ID, id)
		}
	}

	// input order untouched
	if missions[0].ID != "m1" {
		t.Error("input slice was reordered")
	}
}

func TestConfirmScenario(t *testing.T) {
	// child with {confirmed:0, pending:15} and one pending one-shot mission
	child := testChild(0, 15, models.Mission{ID: "m1", Title: "Dishes", Reward: 15, Status: models.MissionStatusPending})

	updated, ok := ConfirmMission(child, "m1", testNow)
	if !ok {
		t.Fatal("expected confirm to succeed")
	}
	if updated.Balance.Confirmed != 15 || updated.Balance.Pending != 0 {
		t.Errorf("balance = %+v, want {15 0}", updated.Balance)
	}
	if len(updated.Missions) != 0 {
		t.Errorf("mission list should be empty, has %d entries", len(updated.Missions))
	}
}

func TestRejectScenario(t *testing.T) {
	// same starting state as the confirm scenario
	child := testChild(0, 15, models.Mission{ID: "m1", Title: "Dishes", Reward: 15, Status: models.MissionStatusPending})

	updated, ok := RejectMission(child, "m1")
	if !ok {
		t.Fatal("expected reject to succeed")
	}
	if updated.Balance.Confirmed != 0 || updated.Balance.Pending != 0 {
		t.Errorf("balance = %+v, want {0 0}", updated.Balance)
	}
	if len(updated.Missions) != 1 || updated.Missions[0].Status != models.MissionStatusActive {
		t.Errorf("unexpected missions: %+v", updated.Missions)
	}
}
