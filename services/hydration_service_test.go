package services

import (
	"context"
	"testing"
	"time"

	"github.com/ChathunKurera/hydratrack/models"
	"github.com/ChathunKurera/hydratrack/store"
)

// testNow is a Wednesday afternoon; weekly tests depend on the weekday.
var testNow = time.Date(2025, 6, 18, 14, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*HydrationService, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	svc := NewHydrationService(mem)
	svc.now = func() time.Time { return testNow }
	return svc, mem
}

// logWater records a goal-relevant water entry `daysAgo` days back at 14:00.
func logWater(t *testing.T, svc *HydrationService, userID uint, volumeMl, daysAgo int) {
	t.Helper()
	ts := testNow.AddDate(0, 0, -daysAgo)
	if _, err := svc.AddDrink(context.Background(), userID, volumeMl, models.DrinkWater, "", &ts); err != nil {
		t.Fatalf("AddDrink: %v", err)
	}
}

func setupProfile(t *testing.T, svc *HydrationService, userID uint) *models.UserProfile {
	t.Helper()
	p, err := svc.CreateProfile(context.Background(), userID, 30, 70, models.GenderFemale, models.ActivityLightlyActive)
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	return p
}

func setCustomGoal(t *testing.T, svc *HydrationService, userID uint, goal int) {
	t.Helper()
	if err := svc.SetCustomGoal(context.Background(), userID, &goal); err != nil {
		t.Fatalf("SetCustomGoal: %v", err)
	}
}

func TestAddDrinkValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddDrink(ctx, 1, 0, models.DrinkWater, "", nil); err != ErrInvalidVolume {
		t.Fatalf("expected ErrInvalidVolume, got %v", err)
	}
	if _, err := svc.AddDrink(ctx, 1, 250, models.DrinkType("wine"), "", nil); err != ErrInvalidType {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}

	d, err := svc.AddDrink(ctx, 1, 250, models.DrinkCoffee, "", nil)
	if err != nil {
		t.Fatalf("AddDrink: %v", err)
	}
	if d.EffectiveHydrationMl != 213 { // round(250 * 0.85)
		t.Fatalf("effective hydration = %d, want 213", d.EffectiveHydrationMl)
	}
	if d.Name != "Coffee" {
		t.Fatalf("default name = %q, want Coffee", d.Name)
	}
	if !d.Timestamp.Equal(testNow) {
		t.Fatalf("timestamp = %v, want injected now", d.Timestamp)
	}
}

func TestEditDrinkRecomputesHydration(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	d, err := svc.AddDrink(ctx, 1, 250, models.DrinkWater, "", nil)
	if err != nil {
		t.Fatalf("AddDrink: %v", err)
	}

	edited, err := svc.EditDrink(ctx, 1, d.ID, 400, models.DrinkSoda, testNow)
	if err != nil {
		t.Fatalf("EditDrink: %v", err)
	}
	if edited.EffectiveHydrationMl != 320 { // 400 * 0.8
		t.Fatalf("effective hydration = %d, want 320", edited.EffectiveHydrationMl)
	}

	if _, err := svc.EditDrink(ctx, 1, d.ID, 0, models.DrinkWater, testNow); err != ErrInvalidVolume {
		t.Fatalf("expected ErrInvalidVolume, got %v", err)
	}

	other, _ := svc.AddDrink(ctx, 2, 100, models.DrinkWater, "", nil)
	if _, err := svc.EditDrink(ctx, 1, other.ID, 100, models.DrinkWater, testNow); err != ErrDrinkNotFound {
		t.Fatalf("editing another user's drink: got %v, want ErrDrinkNotFound", err)
	}
}

func TestDeleteDrink(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	d, _ := svc.AddDrink(ctx, 1, 250, models.DrinkWater, "", nil)
	if err := svc.DeleteDrink(ctx, 1, d.ID); err != nil {
		t.Fatalf("DeleteDrink: %v", err)
	}
	if got := len(svc.TodayDrinks(ctx, 1)); got != 0 {
		t.Fatalf("drinks after delete = %d, want 0", got)
	}
}

func TestTodayIntakeIgnoresOtherDays(t *testing.T) {
	svc, _ := newTestService(t)

	logWater(t, svc, 1, 500, 0)
	logWater(t, svc, 1, 300, 0)
	logWater(t, svc, 1, 1000, 1)

	if got := svc.TodayIntake(context.Background(), 1); got != 800 {
		t.Fatalf("today intake = %d, want 800", got)
	}
}

func TestLastDrinkAt(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if svc.LastDrinkAt(ctx, 1) != nil {
		t.Fatal("expected nil with no drinks")
	}
	logWater(t, svc, 1, 200, 3)
	logWater(t, svc, 1, 200, 1)

	last := svc.LastDrinkAt(ctx, 1)
	if last == nil || !last.Equal(testNow.AddDate(0, 0, -1)) {
		t.Fatalf("last drink = %v, want 1 day ago", last)
	}
}

func TestLast7DaysIntake(t *testing.T) {
	svc, _ := newTestService(t)

	logWater(t, svc, 1, 1000, 6)
	logWater(t, svc, 1, 2000, 0)
	logWater(t, svc, 1, 9999, 7) // outside the window

	days := svc.Last7DaysIntake(context.Background(), 1)
	if len(days) != 7 {
		t.Fatalf("len = %d, want 7", len(days))
	}
	if days[0].IntakeMl != 1000 {
		t.Fatalf("oldest day intake = %d, want 1000", days[0].IntakeMl)
	}
	if days[6].IntakeMl != 2000 {
		t.Fatalf("today intake = %d, want 2000", days[6].IntakeMl)
	}
	for i := 1; i < 6; i++ {
		if days[i].IntakeMl != 0 {
			t.Fatalf("day %d intake = %d, want 0", i, days[i].IntakeMl)
		}
	}
}

func TestDayBucketsUseQueryLocation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// 03:00 June 19 at +05:00 is 22:00 June 18 in the query clock's zone.
	// Every aggregate must file it under June 18.
	zone := time.FixedZone("UTC+5", 5*60*60)
	ts := time.Date(2025, 6, 19, 3, 0, 0, 0, zone)
	if _, err := svc.AddDrink(ctx, 1, 500, models.DrinkWater, "", &ts); err != nil {
		t.Fatalf("AddDrink: %v", err)
	}

	if got := svc.TodayIntake(ctx, 1); got != 500 {
		t.Fatalf("today intake = %d, want 500", got)
	}
	days := svc.Last7DaysIntake(ctx, 1)
	if days[6].IntakeMl != 500 {
		t.Fatalf("last7 today = %d, want 500: bucketing keyed off the entry's zone", days[6].IntakeMl)
	}
}

func TestEffectiveGoalNowUsesInjectedClock(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// The override is written for the injected clock's date; a wall-clock
	// read would miss it and fall back to the default.
	if err := svc.SetTodayOverride(ctx, 1, 1800); err != nil {
		t.Fatalf("SetTodayOverride: %v", err)
	}
	if got := svc.EffectiveGoalNow(ctx, 1); got != 1800 {
		t.Fatalf("goal = %d, want 1800", got)
	}
}

func TestEffectiveGoalDefaultWithoutProfile(t *testing.T) {
	svc, _ := newTestService(t)
	if got := svc.EffectiveGoal(context.Background(), 1, testNow); got != models.DefaultGoalMl {
		t.Fatalf("goal = %d, want %d", got, models.DefaultGoalMl)
	}
}

func TestEffectiveGoalResolutionOrder(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// 30y, 70kg, lightly active: 30*70 + 350 = 2450.
	setupProfile(t, svc, 1)
	if got := svc.EffectiveGoal(ctx, 1, testNow); got != 2450 {
		t.Fatalf("goal from profile history = %d, want 2450", got)
	}

	setCustomGoal(t, svc, 1, 3000)
	if got := svc.EffectiveGoal(ctx, 1, testNow); got != 3000 {
		t.Fatalf("goal after custom = %d, want 3000", got)
	}

	if err := svc.SetTodayOverride(ctx, 1, 1800); err != nil {
		t.Fatalf("SetTodayOverride: %v", err)
	}
	if got := svc.EffectiveGoal(ctx, 1, testNow); got != 1800 {
		t.Fatalf("goal with override = %d, want 1800", got)
	}
	if o := svc.TodayOverride(ctx, 1); o == nil || *o != 1800 {
		t.Fatalf("TodayOverride = %v, want 1800", o)
	}

	if err := svc.ClearTodayOverride(ctx, 1); err != nil {
		t.Fatalf("ClearTodayOverride: %v", err)
	}
	if got := svc.EffectiveGoal(ctx, 1, testNow); got != 3000 {
		t.Fatalf("goal after clearing override = %d, want 3000", got)
	}
}

func TestEffectiveGoalHistoryIsDateScoped(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	setupProfile(t, svc, 1) // writes history for today at 2450

	tenDaysAgo := dayStart(testNow).AddDate(0, 0, -10)
	if err := mem.UpsertGoalHistory(ctx, 1, tenDaysAgo, 2000); err != nil {
		t.Fatalf("UpsertGoalHistory: %v", err)
	}

	// Between the two history entries the older one governs.
	if got := svc.EffectiveGoal(ctx, 1, testNow.AddDate(0, 0, -5)); got != 2000 {
		t.Fatalf("goal 5 days ago = %d, want 2000", got)
	}
	// Before any history: live profile value.
	if got := svc.EffectiveGoal(ctx, 1, testNow.AddDate(0, 0, -20)); got != 2450 {
		t.Fatalf("goal 20 days ago = %d, want 2450", got)
	}
}

func TestCompletionDataRounding(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	setupProfile(t, svc, 1)
	setCustomGoal(t, svc, 1, 2000)

	logWater(t, svc, 1, 1010, 0)
	logWater(t, svc, 1, 2500, 1)

	data := svc.CompletionData(ctx, 1, 3)
	if len(data) != 3 {
		t.Fatalf("len = %d, want 3", len(data))
	}
	today := dayStart(testNow).Format(dayKeyFormat)
	yesterday := dayStart(testNow).AddDate(0, 0, -1).Format(dayKeyFormat)
	if data[today] != 51 { // 1010/2000 rounds to 51
		t.Fatalf("today = %d%%, want 51", data[today])
	}
	if data[yesterday] != 125 { // not capped at 100
		t.Fatalf("yesterday = %d%%, want 125", data[yesterday])
	}
}

func TestCurrentStreak(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	setupProfile(t, svc, 1)
	setCustomGoal(t, svc, 1, 2000)

	for daysAgo := 1; daysAgo <= 5; daysAgo++ {
		logWater(t, svc, 1, 2000, daysAgo)
	}

	// Today not yet met: the walk starts yesterday.
	if got := svc.CurrentStreak(ctx, 1); got != 5 {
		t.Fatalf("streak = %d, want 5", got)
	}

	logWater(t, svc, 1, 2000, 0)
	if got := svc.CurrentStreak(ctx, 1); got != 6 {
		t.Fatalf("streak with today met = %d, want 6", got)
	}
}

func TestCurrentStreakIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	setupProfile(t, svc, 1)
	setCustomGoal(t, svc, 1, 2000)
	logWater(t, svc, 1, 2000, 0)
	logWater(t, svc, 1, 2000, 1)

	first := svc.CurrentStreak(ctx, 1)
	second := svc.CurrentStreak(ctx, 1)
	if first != second || first != 2 {
		t.Fatalf("repeated reads = %d then %d, want 2 both times", first, second)
	}
}

func TestStreakWithFreezeBridgesOneMiss(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	setupProfile(t, svc, 1)
	setCustomGoal(t, svc, 1, 2000)

	// Met on days 0-2 and 4-6; day 3 missed; day 7 missed.
	for _, daysAgo := range []int{0, 1, 2, 4, 5, 6} {
		logWater(t, svc, 1, 2000, daysAgo)
	}

	streak, frozen := svc.CurrentStreakWithFreeze(ctx, 1)
	if streak != 7 || !frozen {
		t.Fatalf("streak = (%d, %v), want (7, true)", streak, frozen)
	}

	// The plain streak stops at the miss.
	if got := svc.CurrentStreak(ctx, 1); got != 3 {
		t.Fatalf("plain streak = %d, want 3", got)
	}
}

func TestStreakWithFreezeUnusedPardon(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	setupProfile(t, svc, 1)
	setCustomGoal(t, svc, 1, 2000)

	// Met on days 0-2 only; days 3 and 4 missed. The pardon never bridges
	// anything, so it does not count and frozen stays false.
	for _, daysAgo := range []int{0, 1, 2} {
		logWater(t, svc, 1, 2000, daysAgo)
	}

	streak, frozen := svc.CurrentStreakWithFreeze(ctx, 1)
	if streak != 3 || frozen {
		t.Fatalf("streak = (%d, %v), want (3, false)", streak, frozen)
	}
}

func TestRoundTo50(t *testing.T) {
	cases := []struct{ in, want int }{
		{2000, 2000},
		{2024, 2000},
		{2025, 2050},
		{2049, 2050},
		{2751, 2750},
		{2775, 2800},
	}
	for _, c := range cases {
		if got := roundTo50(c.in); got != c.want {
			t.Errorf("roundTo50(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestGoalIncreaseSuggestion(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	setupProfile(t, svc, 1)
	setCustomGoal(t, svc, 1, 2500)

	// Seven days before today at 2800: 12% average excess -> 10% raise.
	for daysAgo := 1; daysAgo <= 7; daysAgo++ {
		logWater(t, svc, 1, 2800, daysAgo)
	}

	s := svc.CheckGoalAdjustment(ctx, 1)
	if s == nil {
		t.Fatal("expected an increase suggestion")
	}
	if s.Type != models.AdjustmentIncrease {
		t.Fatalf("type = %s, want increase", s.Type)
	}
	if s.SuggestedGoal != 2750 {
		t.Fatalf("suggested = %d, want 2750", s.SuggestedGoal)
	}
	if s.CurrentGoal != 2500 || s.AverageIntake != 2800 {
		t.Fatalf("current/average = %d/%d, want 2500/2800", s.CurrentGoal, s.AverageIntake)
	}
	if s.ChangeAmount() != 250 || s.ChangePercentage() != 10 {
		t.Fatalf("change = %d (%d%%), want 250 (10%%)", s.ChangeAmount(), s.ChangePercentage())
	}
}

func TestGoalIncreaseNeedsSevenDays(t *testing.T) {
	svc, _ := newTestService(t)

	setupProfile(t, svc, 1)
	setCustomGoal(t, svc, 1, 2500)

	for daysAgo := 1; daysAgo <= 6; daysAgo++ {
		logWater(t, svc, 1, 3000, daysAgo)
	}

	if s := svc.CheckGoalAdjustment(context.Background(), 1); s != nil {
		t.Fatalf("expected no suggestion after 6 days, got %+v", s)
	}
}

func TestGoalIncreaseCappedAtMax(t *testing.T) {
	svc, _ := newTestService(t)

	setupProfile(t, svc, 1)
	setCustomGoal(t, svc, 1, 4500)

	for daysAgo := 1; daysAgo <= 7; daysAgo++ {
		logWater(t, svc, 1, 6000, daysAgo)
	}

	// 4500 is already the ceiling; no raise to suggest.
	if s := svc.CheckGoalAdjustment(context.Background(), 1); s != nil {
		t.Fatalf("expected no suggestion at ceiling, got %+v", s)
	}
}

func TestGoalDecreaseSuggestion(t *testing.T) {
	svc, _ := newTestService(t)

	setupProfile(t, svc, 1)
	setCustomGoal(t, svc, 1, 3000)

	// Three days at 60% of goal. Suggested = round50(1800/0.9) = 2000.
	for daysAgo := 1; daysAgo <= 3; daysAgo++ {
		logWater(t, svc, 1, 1800, daysAgo)
	}

	s := svc.CheckGoalAdjustment(context.Background(), 1)
	if s == nil {
		t.Fatal("expected a decrease suggestion")
	}
	if s.Type != models.AdjustmentDecrease {
		t.Fatalf("type = %s, want decrease", s.Type)
	}
	if s.SuggestedGoal != 2000 {
		t.Fatalf("suggested = %d, want 2000", s.SuggestedGoal)
	}
}

func TestGoalDecreaseSkipsEmptyDays(t *testing.T) {
	svc, _ := newTestService(t)

	setupProfile(t, svc, 1)
	setCustomGoal(t, svc, 1, 3000)

	// Day 2 has nothing logged: treated as not tracking, not undershooting.
	logWater(t, svc, 1, 1800, 1)
	logWater(t, svc, 1, 1800, 3)

	if s := svc.CheckGoalAdjustment(context.Background(), 1); s != nil {
		t.Fatalf("expected no suggestion across an empty day, got %+v", s)
	}
}

func TestGoalDecreaseFloor(t *testing.T) {
	svc, _ := newTestService(t)

	setupProfile(t, svc, 1)
	setCustomGoal(t, svc, 1, 2500)

	for daysAgo := 1; daysAgo <= 3; daysAgo++ {
		logWater(t, svc, 1, 400, daysAgo)
	}

	s := svc.CheckGoalAdjustment(context.Background(), 1)
	if s == nil || s.SuggestedGoal != models.MinGoalMl {
		t.Fatalf("suggestion = %+v, want floor %d", s, models.MinGoalMl)
	}
}

func TestApplyGoalAdjustment(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.ApplyGoalAdjustment(ctx, 1, 2750); err != ErrNoProfile {
		t.Fatalf("expected ErrNoProfile, got %v", err)
	}

	setupProfile(t, svc, 1)
	if err := svc.ApplyGoalAdjustment(ctx, 1, 2750); err != nil {
		t.Fatalf("ApplyGoalAdjustment: %v", err)
	}

	p, err := svc.Profile(ctx, 1)
	if err != nil || p == nil {
		t.Fatalf("Profile: %v, %v", p, err)
	}
	if p.CustomGoalMl == nil || *p.CustomGoalMl != 2750 {
		t.Fatalf("custom goal = %v, want 2750", p.CustomGoalMl)
	}
	if got := svc.EffectiveGoal(ctx, 1, testNow); got != 2750 {
		t.Fatalf("effective goal = %d, want 2750", got)
	}
}

func TestUpdateProfileVersionsGoalChange(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	setupProfile(t, svc, 1)

	// Heavier and more active: 30*80 + 700 = 3100.
	p, err := svc.UpdateProfile(ctx, 1, 30, 80, models.GenderFemale, models.ActivityModeratelyActive)
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if got := p.DailyGoalMl(); got != 3100 {
		t.Fatalf("daily goal = %d, want 3100", got)
	}
	if got := svc.EffectiveGoal(ctx, 1, testNow); got != 3100 {
		t.Fatalf("effective goal = %d, want 3100", got)
	}
}

func TestSetCustomGoalRequiresProfile(t *testing.T) {
	svc, _ := newTestService(t)
	goal := 2000
	if err := svc.SetCustomGoal(context.Background(), 1, &goal); err != ErrNoProfile {
		t.Fatalf("expected ErrNoProfile, got %v", err)
	}
}

func TestEnsureGoalHistoryBackfill(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	// Legacy account: profile exists but no goal history was ever written.
	err := mem.SaveProfile(ctx, &models.UserProfile{
		UserID:        1,
		Age:           30,
		WeightKg:      70,
		Gender:        models.GenderMale,
		ActivityLevel: models.ActivityLightlyActive,
		CreatedAt:     testNow.AddDate(0, 0, -30),
		UpdatedAt:     testNow.AddDate(0, 0, -30),
	})
	if err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	logWater(t, svc, 1, 500, 10)

	if err := svc.EnsureGoalHistoryExists(ctx, 1); err != nil {
		t.Fatalf("EnsureGoalHistoryExists: %v", err)
	}

	// History is anchored at the earliest drink.
	if got := svc.EffectiveGoal(ctx, 1, testNow.AddDate(0, 0, -10)); got != 2450 {
		t.Fatalf("backfilled goal = %d, want 2450", got)
	}
	has, err := mem.HasGoalHistory(ctx, 1)
	if err != nil || !has {
		t.Fatalf("HasGoalHistory = %v, %v", has, err)
	}

	// Second call is a no-op.
	if err := svc.EnsureGoalHistoryExists(ctx, 1); err != nil {
		t.Fatalf("second EnsureGoalHistoryExists: %v", err)
	}
}
