package store

import (
	"context"
	"testing"
	"time"

	"github.com/ChathunKurera/hydratrack/models"
)

func TestDrinksBetweenHalfOpenRange(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	start := time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	for _, ts := range []time.Time{
		start.Add(-time.Second), // before
		start,                   // inclusive start
		start.Add(12 * time.Hour),
		end, // exclusive end
	} {
		d := models.NewDrinkEntry(1, 250, models.DrinkWater, "", ts)
		if err := mem.InsertDrink(ctx, d); err != nil {
			t.Fatalf("InsertDrink: %v", err)
		}
	}

	drinks, err := mem.DrinksBetween(ctx, 1, start, end)
	if err != nil {
		t.Fatalf("DrinksBetween: %v", err)
	}
	if len(drinks) != 2 {
		t.Fatalf("got %d drinks, want 2", len(drinks))
	}
	if !drinks[0].Timestamp.Equal(start) {
		t.Fatalf("results not in ascending order: first = %v", drinks[0].Timestamp)
	}
}

func TestDrinksAreScopedToUser(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	ts := time.Date(2025, 6, 18, 9, 0, 0, 0, time.UTC)
	mine := models.NewDrinkEntry(1, 250, models.DrinkWater, "", ts)
	theirs := models.NewDrinkEntry(2, 250, models.DrinkWater, "", ts)
	_ = mem.InsertDrink(ctx, mine)
	_ = mem.InsertDrink(ctx, theirs)

	if d, _ := mem.DrinkByID(ctx, 1, theirs.ID); d != nil {
		t.Fatal("DrinkByID leaked another user's entry")
	}
	if err := mem.DeleteDrink(ctx, 1, theirs.ID); err != nil {
		t.Fatalf("DeleteDrink: %v", err)
	}
	if d, _ := mem.DrinkByID(ctx, 2, theirs.ID); d == nil {
		t.Fatal("delete crossed user boundary")
	}
}

func TestOverrideUpsertAndDelete(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()
	date := time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)

	if o, err := mem.OverrideForDate(ctx, 1, date); err != nil || o != nil {
		t.Fatalf("empty lookup = %v, %v, want nil, nil", o, err)
	}

	if err := mem.UpsertOverride(ctx, 1, date, 1800); err != nil {
		t.Fatalf("UpsertOverride: %v", err)
	}
	if err := mem.UpsertOverride(ctx, 1, date, 2200); err != nil {
		t.Fatalf("second UpsertOverride: %v", err)
	}

	o, err := mem.OverrideForDate(ctx, 1, date)
	if err != nil || o == nil || o.GoalMl != 2200 {
		t.Fatalf("override = %+v, %v, want 2200", o, err)
	}

	if err := mem.DeleteOverride(ctx, 1, date); err != nil {
		t.Fatalf("DeleteOverride: %v", err)
	}
	if o, _ := mem.OverrideForDate(ctx, 1, date); o != nil {
		t.Fatalf("override after delete = %+v, want nil", o)
	}
}

func TestLatestGoalOnOrBefore(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	day := func(d int) time.Time { return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC) }
	_ = mem.UpsertGoalHistory(ctx, 1, day(1), 2000)
	_ = mem.UpsertGoalHistory(ctx, 1, day(10), 2500)

	h, err := mem.LatestGoalOnOrBefore(ctx, 1, day(5))
	if err != nil || h == nil || h.GoalMl != 2000 {
		t.Fatalf("goal on day 5 = %+v, want 2000", h)
	}
	h, _ = mem.LatestGoalOnOrBefore(ctx, 1, day(10))
	if h == nil || h.GoalMl != 2500 {
		t.Fatalf("goal on day 10 = %+v, want 2500 (inclusive)", h)
	}
	if h, _ := mem.LatestGoalOnOrBefore(ctx, 1, day(1).AddDate(0, 0, -1)); h != nil {
		t.Fatalf("goal before any history = %+v, want nil", h)
	}
}

func TestUnlockBookkeeping(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	unlocked, err := mem.IsUnlocked(ctx, 1, "first_goal")
	if err != nil || unlocked {
		t.Fatalf("IsUnlocked on empty store = %v, %v", unlocked, err)
	}

	now := time.Date(2025, 6, 18, 14, 0, 0, 0, time.UTC)
	_ = mem.InsertUnlock(ctx, &models.AchievementUnlock{UserID: 1, AchievementID: "first_goal", UnlockedAt: now})
	_ = mem.InsertUnlock(ctx, &models.AchievementUnlock{UserID: 1, AchievementID: "streak_7", UnlockedAt: now.Add(time.Hour)})

	unlocks, err := mem.Unlocks(ctx, 1)
	if err != nil || len(unlocks) != 2 {
		t.Fatalf("unlocks = %d, %v, want 2", len(unlocks), err)
	}
	if unlocks[0].AchievementID != "streak_7" {
		t.Fatalf("unlocks not newest first: %s", unlocks[0].AchievementID)
	}

	count, _ := mem.CountUnseenUnlocks(ctx, 1)
	if count != 2 {
		t.Fatalf("unseen = %d, want 2", count)
	}
	if err := mem.MarkUnlocksSeen(ctx, 1); err != nil {
		t.Fatalf("MarkUnlocksSeen: %v", err)
	}
	if count, _ := mem.CountUnseenUnlocks(ctx, 1); count != 0 {
		t.Fatalf("unseen after mark = %d, want 0", count)
	}
}

func TestTotalEffectiveHydration(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	ts := time.Date(2025, 6, 18, 9, 0, 0, 0, time.UTC)
	_ = mem.InsertDrink(ctx, models.NewDrinkEntry(1, 1000, models.DrinkWater, "", ts))
	_ = mem.InsertDrink(ctx, models.NewDrinkEntry(1, 1000, models.DrinkSoda, "", ts))

	total, err := mem.TotalEffectiveHydration(ctx, 1)
	if err != nil || total != 1800 {
		t.Fatalf("total = %d, %v, want 1800", total, err)
	}
}
