package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ChathunKurera/hydratrack/models"
	"github.com/ChathunKurera/hydratrack/store"
)

var (
	ErrNoProfile     = errors.New("no profile for user")
	ErrInvalidVolume = errors.New("volume must be positive")
	ErrInvalidType   = errors.New("unknown drink type")
	ErrDrinkNotFound = errors.New("drink not found")
)

// streakScanLimit bounds the backward walk so a corrupt history can never
// loop forever.
const streakScanLimit = 365

// HydrationService computes goals, intake aggregates, streaks and
// goal-adjustment suggestions. Everything is recomputed from the store on
// each call; there is no cached state. Reads degrade to zero values on
// storage failure so a flaky store never breaks drink logging.
type HydrationService struct {
	store store.Store
	now   func() time.Time
}

func NewHydrationService(st store.Store) *HydrationService {
	return &HydrationService{store: st, now: time.Now}
}

// ---------- Day helpers ----------

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func startOfWeek(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return dayStart(t).AddDate(0, 0, -(wd - 1)) // Monday
}

const dayKeyFormat = "2006-01-02"

// ---------- Drink operations ----------

func (s *HydrationService) AddDrink(ctx context.Context, userID uint, volumeMl int, drinkType models.DrinkType, name string, timestamp *time.Time) (*models.DrinkEntry, error) {
	if volumeMl <= 0 {
		return nil, ErrInvalidVolume
	}
	if !drinkType.Valid() {
		return nil, ErrInvalidType
	}
	ts := s.now()
	if timestamp != nil {
		ts = *timestamp
	}
	d := models.NewDrinkEntry(userID, volumeMl, drinkType, name, ts)
	if err := s.store.InsertDrink(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// EditDrink updates volume, type and timestamp of an existing entry and
// recomputes its effective hydration.
func (s *HydrationService) EditDrink(ctx context.Context, userID uint, id uuid.UUID, volumeMl int, drinkType models.DrinkType, timestamp time.Time) (*models.DrinkEntry, error) {
	if volumeMl <= 0 {
		return nil, ErrInvalidVolume
	}
	if !drinkType.Valid() {
		return nil, ErrInvalidType
	}
	d, err := s.store.DrinkByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrDrinkNotFound
	}
	d.VolumeMl = volumeMl
	d.DrinkType = drinkType
	d.Timestamp = timestamp
	d.RecomputeEffectiveHydration()
	if err := s.store.UpdateDrink(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *HydrationService) DeleteDrink(ctx context.Context, userID uint, id uuid.UUID) error {
	return s.store.DeleteDrink(ctx, userID, id)
}

// TodayDrinks returns today's entries, newest first.
func (s *HydrationService) TodayDrinks(ctx context.Context, userID uint) []models.DrinkEntry {
	start := dayStart(s.now())
	drinks, err := s.store.DrinksBetween(ctx, userID, start, start.AddDate(0, 0, 1))
	if err != nil {
		return nil
	}
	sort.Slice(drinks, func(i, j int) bool { return drinks[i].Timestamp.After(drinks[j].Timestamp) })
	return drinks
}

func (s *HydrationService) TodayIntake(ctx context.Context, userID uint) int {
	return s.intakeForDay(ctx, userID, s.now())
}

// LastDrinkAt reports the most recent logged drink, or nil if none exists.
func (s *HydrationService) LastDrinkAt(ctx context.Context, userID uint) *time.Time {
	d, err := s.store.LatestDrink(ctx, userID)
	if err != nil || d == nil {
		return nil
	}
	ts := d.Timestamp
	return &ts
}

func (s *HydrationService) intakeForDay(ctx context.Context, userID uint, date time.Time) int {
	start := dayStart(date)
	drinks, err := s.store.DrinksBetween(ctx, userID, start, start.AddDate(0, 0, 1))
	if err != nil {
		return 0
	}
	total := 0
	for _, d := range drinks {
		total += d.EffectiveHydrationMl
	}
	return total
}

// dailyIntakes fetches [startDay, startDay+days) in one range query and
// buckets effective hydration by calendar day.
func (s *HydrationService) dailyIntakes(ctx context.Context, userID uint, startDay time.Time, days int) map[string]int {
	out := make(map[string]int, days)
	end := startDay.AddDate(0, 0, days)
	drinks, err := s.store.DrinksBetween(ctx, userID, startDay, end)
	if err != nil {
		return out
	}
	// Stored timestamps may carry any zone offset; bucket keys always use the
	// query clock's location so they line up with the callers' day walks.
	loc := s.now().Location()
	for _, d := range drinks {
		key := dayStart(d.Timestamp.In(loc)).Format(dayKeyFormat)
		out[key] += d.EffectiveHydrationMl
	}
	return out
}

// Last7DaysIntake returns today and the six preceding days, oldest first.
func (s *HydrationService) Last7DaysIntake(ctx context.Context, userID uint) []models.DayIntake {
	today := dayStart(s.now())
	first := today.AddDate(0, 0, -6)
	intakes := s.dailyIntakes(ctx, userID, first, 7)

	result := make([]models.DayIntake, 0, 7)
	for i := 0; i < 7; i++ {
		day := first.AddDate(0, 0, i)
		result = append(result, models.DayIntake{
			Date:     day,
			IntakeMl: intakes[day.Format(dayKeyFormat)],
		})
	}
	return result
}

// ---------- Effective goal ----------

// EffectiveGoal resolves the goal actually in force on a date:
// daily override, then the latest goal-history entry on or before the date,
// then the live profile goal, then the pre-onboarding default.
func (s *HydrationService) EffectiveGoal(ctx context.Context, userID uint, date time.Time) int {
	day := dayStart(date)

	if o, err := s.store.OverrideForDate(ctx, userID, day); err == nil && o != nil {
		return o.GoalMl
	}

	if h, err := s.store.LatestGoalOnOrBefore(ctx, userID, day); err == nil && h != nil {
		return h.GoalMl
	}

	if p, err := s.store.Profile(ctx, userID); err == nil && p != nil {
		return p.DailyGoalMl()
	}
	return models.DefaultGoalMl
}

// EffectiveGoalNow resolves today's goal against the service clock.
func (s *HydrationService) EffectiveGoalNow(ctx context.Context, userID uint) int {
	return s.EffectiveGoal(ctx, userID, s.now())
}

// ---------- Completion & streaks ----------

// CompletionData maps each of the trailing `days` calendar days (today
// included) to its completion percentage against the goal in effect that
// day. Percentages are not capped at 100.
func (s *HydrationService) CompletionData(ctx context.Context, userID uint, days int) map[string]int {
	result := make(map[string]int, days)
	if days <= 0 {
		return result
	}
	today := dayStart(s.now())
	first := today.AddDate(0, 0, -(days - 1))
	intakes := s.dailyIntakes(ctx, userID, first, days)

	for i := 0; i < days; i++ {
		day := first.AddDate(0, 0, i)
		key := day.Format(dayKeyFormat)
		goal := s.EffectiveGoal(ctx, userID, day)
		if goal > 0 {
			result[key] = (intakes[key]*100 + goal/2) / goal
		} else {
			result[key] = 0
		}
	}
	return result
}

func (s *HydrationService) goalMet(ctx context.Context, userID uint, date time.Time) bool {
	intake := s.intakeForDay(ctx, userID, date)
	return intake >= s.EffectiveGoal(ctx, userID, date)
}

// CurrentStreak counts consecutive goal-met days walking backward. Today
// only counts once its goal is met; otherwise the walk starts yesterday.
func (s *HydrationService) CurrentStreak(ctx context.Context, userID uint) int {
	day := dayStart(s.now())
	if !s.goalMet(ctx, userID, day) {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for scanned := 0; scanned < streakScanLimit; scanned++ {
		if !s.goalMet(ctx, userID, day) {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// CurrentStreakWithFreeze is CurrentStreak with one pardonable miss: a single
// non-qualifying day inside an otherwise continuous run is bridged and counted.
// The returned bool reports whether the pardon was actually consumed to hold
// the current streak together.
func (s *HydrationService) CurrentStreakWithFreeze(ctx context.Context, userID uint) (int, bool) {
	day := dayStart(s.now())
	if !s.goalMet(ctx, userID, day) {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	frozen := false
	freezeUsed := false
	freezePending := false

	for scanned := 0; scanned < streakScanLimit; scanned++ {
		if s.goalMet(ctx, userID, day) {
			if freezePending {
				// The pardoned day bridged two qualifying stretches.
				streak++
				freezePending = false
				frozen = true
			}
			streak++
		} else {
			if freezeUsed {
				break
			}
			freezeUsed = true
			freezePending = true
		}
		day = day.AddDate(0, 0, -1)
	}
	return streak, frozen
}

// ---------- Goal adjustment ----------

func roundTo50(ml int) int {
	return ((ml + 25) / 50) * 50
}

// CheckGoalAdjustment proposes a goal change from recent behavior. The
// increase check runs first as a reward; the decrease check only applies
// when no increase does.
func (s *HydrationService) CheckGoalAdjustment(ctx context.Context, userID uint) *models.GoalAdjustmentSuggestion {
	currentGoal := models.DefaultGoalMl
	if p, err := s.store.Profile(ctx, userID); err == nil && p != nil {
		currentGoal = p.DailyGoalMl()
	}

	if suggestion := s.checkForGoalIncrease(ctx, userID, currentGoal); suggestion != nil {
		return suggestion
	}
	return s.checkForGoalDecrease(ctx, userID, currentGoal)
}

// checkForGoalIncrease requires the goal met on each of the seven days
// before today. The suggested raise scales with how far above goal the
// week averaged, capped at 15% and 4500 mL.
func (s *HydrationService) checkForGoalIncrease(ctx context.Context, userID uint, currentGoal int) *models.GoalAdjustmentSuggestion {
	consecutiveDays := 0
	totalIntake := 0
	totalExcess := 0

	for daysAgo := 1; daysAgo <= 7; daysAgo++ {
		date := dayStart(s.now()).AddDate(0, 0, -daysAgo)
		intake := s.intakeForDay(ctx, userID, date)
		goal := s.EffectiveGoal(ctx, userID, date)

		if intake < goal {
			break
		}
		consecutiveDays++
		totalIntake += intake
		totalExcess += intake - goal
	}

	if consecutiveDays < 7 {
		return nil
	}

	averageIntake := totalIntake / 7
	averageExcess := totalExcess / 7
	excessPct := 0
	if currentGoal > 0 {
		excessPct = (averageExcess * 100) / currentGoal
	}

	increasePct := 5
	if excessPct > 20 {
		increasePct = 15
	} else if excessPct > 10 {
		increasePct = 10
	}

	suggested := currentGoal + (currentGoal * increasePct / 100)
	if suggested > 4500 {
		suggested = 4500
	}
	suggested = roundTo50(suggested)

	if suggested <= currentGoal {
		return nil
	}

	return &models.GoalAdjustmentSuggestion{
		Type:          models.AdjustmentIncrease,
		CurrentGoal:   currentGoal,
		SuggestedGoal: suggested,
		Reason:        "You've crushed your goal 7 days in a row! Time to level up?",
		AverageIntake: averageIntake,
	}
}

// checkForGoalDecrease fires after three consecutive days below 75% of goal
// (ignoring days with nothing logged). The new goal is set so the recent
// average lands at 90% of it, floored at the minimum goal.
func (s *HydrationService) checkForGoalDecrease(ctx context.Context, userID uint, currentGoal int) *models.GoalAdjustmentSuggestion {
	consecutiveUnderDays := 0
	totalIntake := 0

	for daysAgo := 1; daysAgo <= 3; daysAgo++ {
		date := dayStart(s.now()).AddDate(0, 0, -daysAgo)
		intake := s.intakeForDay(ctx, userID, date)
		goal := s.EffectiveGoal(ctx, userID, date)

		pct := 0
		if goal > 0 {
			pct = (intake * 100) / goal
		}
		if pct >= 75 || intake == 0 {
			break
		}
		consecutiveUnderDays++
		totalIntake += intake
	}

	if consecutiveUnderDays < 3 {
		return nil
	}

	averageIntake := totalIntake / 3
	suggested := roundTo50(int(float64(averageIntake) / 0.9))
	if suggested < models.MinGoalMl {
		suggested = models.MinGoalMl
	}

	if suggested >= currentGoal {
		return nil
	}

	return &models.GoalAdjustmentSuggestion{
		Type:          models.AdjustmentDecrease,
		CurrentGoal:   currentGoal,
		SuggestedGoal: suggested,
		Reason:        "Your intake has been below 75% for 3 days. Let's set a more achievable target!",
		AverageIntake: averageIntake,
	}
}

// ApplyGoalAdjustment sets the custom goal and records it in history,
// effective today.
func (s *HydrationService) ApplyGoalAdjustment(ctx context.Context, userID uint, newGoal int) error {
	p, err := s.store.Profile(ctx, userID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrNoProfile
	}
	p.CustomGoalMl = &newGoal
	p.UpdatedAt = s.now()
	if err := s.store.SaveProfile(ctx, p); err != nil {
		return err
	}
	return s.store.UpsertGoalHistory(ctx, userID, dayStart(s.now()), newGoal)
}

// ---------- Profile ----------

func (s *HydrationService) Profile(ctx context.Context, userID uint) (*models.UserProfile, error) {
	return s.store.Profile(ctx, userID)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CreateProfile creates the per-user profile at onboarding completion and
// records the initial goal in history. Inputs are clamped defensively;
// controllers reject out-of-range values before this point.
func (s *HydrationService) CreateProfile(ctx context.Context, userID uint, age int, weightKg float64, gender models.Gender, activityLevel models.ActivityLevel) (*models.UserProfile, error) {
	now := s.now()
	p := &models.UserProfile{
		UserID:        userID,
		Age:           clampInt(age, 10, 120),
		WeightKg:      clampFloat(weightKg, 30, 300),
		Gender:        gender,
		ActivityLevel: activityLevel,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.SaveProfile(ctx, p); err != nil {
		return nil, err
	}
	if err := s.store.UpsertGoalHistory(ctx, userID, dayStart(now), p.DailyGoalMl()); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProfile edits biometric fields. A change in the resulting goal is
// versioned into history, effective today.
func (s *HydrationService) UpdateProfile(ctx context.Context, userID uint, age int, weightKg float64, gender models.Gender, activityLevel models.ActivityLevel) (*models.UserProfile, error) {
	p, err := s.store.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNoProfile
	}
	oldGoal := p.DailyGoalMl()
	p.Age = clampInt(age, 10, 120)
	p.WeightKg = clampFloat(weightKg, 30, 300)
	p.Gender = gender
	p.ActivityLevel = activityLevel
	p.UpdatedAt = s.now()
	if err := s.store.SaveProfile(ctx, p); err != nil {
		return nil, err
	}
	if newGoal := p.DailyGoalMl(); newGoal != oldGoal {
		if err := s.store.UpsertGoalHistory(ctx, userID, dayStart(s.now()), newGoal); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// SetCustomGoal overrides the calculated goal (nil reverts to it) and
// versions the change when the effective goal moved.
func (s *HydrationService) SetCustomGoal(ctx context.Context, userID uint, goalMl *int) error {
	p, err := s.store.Profile(ctx, userID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrNoProfile
	}
	oldGoal := p.DailyGoalMl()
	p.CustomGoalMl = goalMl
	p.UpdatedAt = s.now()
	if err := s.store.SaveProfile(ctx, p); err != nil {
		return err
	}
	if newGoal := p.DailyGoalMl(); newGoal != oldGoal {
		return s.store.UpsertGoalHistory(ctx, userID, dayStart(s.now()), newGoal)
	}
	return nil
}

// ---------- Daily overrides ----------

func (s *HydrationService) SetTodayOverride(ctx context.Context, userID uint, goalMl int) error {
	return s.store.UpsertOverride(ctx, userID, dayStart(s.now()), goalMl)
}

func (s *HydrationService) TodayOverride(ctx context.Context, userID uint) *int {
	o, err := s.store.OverrideForDate(ctx, userID, dayStart(s.now()))
	if err != nil || o == nil {
		return nil
	}
	return &o.GoalMl
}

func (s *HydrationService) ClearTodayOverride(ctx context.Context, userID uint) error {
	return s.store.DeleteOverride(ctx, userID, dayStart(s.now()))
}

// ---------- Goal history ----------

// EnsureGoalHistoryExists backfills a single history entry for legacy data
// recorded before goal versioning existed. Idempotent: it does nothing once
// any history is present.
func (s *HydrationService) EnsureGoalHistoryExists(ctx context.Context, userID uint) error {
	has, err := s.store.HasGoalHistory(ctx, userID)
	if err != nil || has {
		return err
	}
	p, err := s.store.Profile(ctx, userID)
	if err != nil || p == nil {
		return err
	}

	effective := p.CreatedAt
	if earliest, err := s.store.EarliestDrink(ctx, userID); err == nil && earliest != nil {
		effective = earliest.Timestamp
	}
	return s.store.UpsertGoalHistory(ctx, userID, dayStart(effective), p.DailyGoalMl())
}
