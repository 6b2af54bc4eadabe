package services

import (
	"context"
	"time"

	"github.com/ChathunKurera/hydratrack/models"
	"github.com/ChathunKurera/hydratrack/store"
)

// UnlockedAchievement joins a persisted unlock with its catalog entry.
type UnlockedAchievement struct {
	Achievement models.Achievement `json:"achievement"`
	UnlockedAt  time.Time          `json:"unlocked_at"`
	HasBeenSeen bool               `json:"has_been_seen"`
}

// AchievementService evaluates the fixed achievement catalog against drink
// history. Unlocks are terminal: once earned an achievement never reverts,
// even if the qualifying condition later stops holding. All checks are
// best-effort; a storage failure skips the affected predicate and never
// propagates to the caller.
type AchievementService struct {
	store     store.Store
	hydration *HydrationService
	checks    map[string]func(ctx context.Context, userID uint) bool
}

func NewAchievementService(st store.Store, hydration *HydrationService) *AchievementService {
	s := &AchievementService{store: st, hydration: hydration}
	s.checks = map[string]func(ctx context.Context, userID uint) bool{
		"streak_7":        s.streakAtLeast(7),
		"streak_30":       s.streakAtLeast(30),
		"streak_100":      s.streakAtLeast(100),
		"goal_120":        s.goalPercentageDays(120, 1, 90),
		"goal_120_5times": s.goalPercentageDays(120, 5, 90),
		"single_day_3000": s.singleDayVolume(3000, 90),
		"perfect_week":    s.consecutiveGoalDays(7, 30),
		"early_bird_7":    s.earlyBirdDays(7, 14),
		"consistent_30":   s.goalMetDays(25, 30),
		"first_goal":      s.streakAtLeast(1),
		"total_100L":      s.totalHydrationAtLeast(100_000),
		"total_500L":      s.totalHydrationAtLeast(500_000),
		"variety_pack":    s.varietyDay(5, 30),
		"water_purist":    s.waterOnlyRun(7, 60),
		"early_riser":     s.morningVolumeDays(500, 9, 5, 30),
		"halfway_hero":    s.halfwayByNoonDays(10, 60),
		"weekend_warrior": s.weekendRun(4, 12),
		"marathon_month":  s.consecutiveGoalDays(30, 90),
	}
	return s
}

// CheckForNewAchievements sweeps the catalog in declared order, persists any
// fresh unlocks and returns them (catalog order preserved). Calling it twice
// with no new qualifying data returns nothing the second time.
func (s *AchievementService) CheckForNewAchievements(ctx context.Context, userID uint) []models.Achievement {
	var newlyUnlocked []models.Achievement

	for _, achievement := range models.AchievementCatalog {
		unlocked, err := s.store.IsUnlocked(ctx, userID, achievement.ID)
		if err != nil || unlocked {
			continue
		}
		check, ok := s.checks[achievement.ID]
		if !ok || !check(ctx, userID) {
			continue
		}
		unlock := &models.AchievementUnlock{
			UserID:        userID,
			AchievementID: achievement.ID,
			UnlockedAt:    s.hydration.now(),
		}
		// A failed write is dropped here; the predicate still holds on the
		// next sweep, so the unlock self-heals.
		if err := s.store.InsertUnlock(ctx, unlock); err != nil {
			continue
		}
		newlyUnlocked = append(newlyUnlocked, achievement)
	}
	return newlyUnlocked
}

// GetUnlockedAchievements joins unlock records to the catalog, newest first.
// Unlocks whose ID no longer exists in the catalog are dropped.
func (s *AchievementService) GetUnlockedAchievements(ctx context.Context, userID uint) []UnlockedAchievement {
	unlocks, err := s.store.Unlocks(ctx, userID)
	if err != nil {
		return nil
	}
	out := make([]UnlockedAchievement, 0, len(unlocks))
	for _, u := range unlocks {
		achievement := models.AchievementByID(u.AchievementID)
		if achievement == nil {
			continue
		}
		out = append(out, UnlockedAchievement{
			Achievement: *achievement,
			UnlockedAt:  u.UnlockedAt,
			HasBeenSeen: u.HasBeenSeen,
		})
	}
	return out
}

func (s *AchievementService) GetNewAchievementCount(ctx context.Context, userID uint) int64 {
	count, err := s.store.CountUnseenUnlocks(ctx, userID)
	if err != nil {
		return 0
	}
	return count
}

func (s *AchievementService) MarkAllAsSeen(ctx context.Context, userID uint) error {
	return s.store.MarkUnlocksSeen(ctx, userID)
}

// ---------- Predicates ----------
//
// Each lookback window is fetched with a single range query and bucketed by
// day, rather than one query per day.

func (s *AchievementService) streakAtLeast(days int) func(context.Context, uint) bool {
	return func(ctx context.Context, userID uint) bool {
		return s.hydration.CurrentStreak(ctx, userID) >= days
	}
}

func (s *AchievementService) totalHydrationAtLeast(ml int) func(context.Context, uint) bool {
	return func(ctx context.Context, userID uint) bool {
		total, err := s.store.TotalEffectiveHydration(ctx, userID)
		return err == nil && total >= ml
	}
}

// goalPercentageDays: intake reached minPct% of the day's goal on at least
// `needed` of the trailing `lookback` days.
func (s *AchievementService) goalPercentageDays(minPct, needed, lookback int) func(context.Context, uint) bool {
	return func(ctx context.Context, userID uint) bool {
		today := dayStart(s.hydration.now())
		first := today.AddDate(0, 0, -(lookback - 1))
		intakes := s.hydration.dailyIntakes(ctx, userID, first, lookback)

		count := 0
		for i := 0; i < lookback; i++ {
			day := today.AddDate(0, 0, -i)
			goal := s.hydration.EffectiveGoal(ctx, userID, day)
			if goal <= 0 {
				continue
			}
			if (intakes[day.Format(dayKeyFormat)]*100)/goal >= minPct {
				count++
				if count >= needed {
					return true
				}
			}
		}
		return false
	}
}

func (s *AchievementService) singleDayVolume(minMl, lookback int) func(context.Context, uint) bool {
	return func(ctx context.Context, userID uint) bool {
		today := dayStart(s.hydration.now())
		intakes := s.hydration.dailyIntakes(ctx, userID, today.AddDate(0, 0, -(lookback-1)), lookback)
		for _, intake := range intakes {
			if intake >= minMl {
				return true
			}
		}
		return false
	}
}

// consecutiveGoalDays: a run of `run` goal-met days anywhere in the trailing
// `lookback` days.
func (s *AchievementService) consecutiveGoalDays(run, lookback int) func(context.Context, uint) bool {
	return func(ctx context.Context, userID uint) bool {
		today := dayStart(s.hydration.now())
		first := today.AddDate(0, 0, -(lookback - 1))
		intakes := s.hydration.dailyIntakes(ctx, userID, first, lookback)

		consecutive := 0
		for i := 0; i < lookback; i++ {
			day := today.AddDate(0, 0, -i)
			goal := s.hydration.EffectiveGoal(ctx, userID, day)
			if intakes[day.Format(dayKeyFormat)] >= goal {
				consecutive++
				if consecutive >= run {
					return true
				}
			} else {
				consecutive = 0
			}
		}
		return false
	}
}

func (s *AchievementService) goalMetDays(needed, lookback int) func(context.Context, uint) bool {
	return func(ctx context.Context, userID uint) bool {
		today := dayStart(s.hydration.now())
		first := today.AddDate(0, 0, -(lookback - 1))
		intakes := s.hydration.dailyIntakes(ctx, userID, first, lookback)

		count := 0
		for i := 0; i < lookback; i++ {
			day := today.AddDate(0, 0, -i)
			if intakes[day.Format(dayKeyFormat)] >= s.hydration.EffectiveGoal(ctx, userID, day) {
				count++
			}
		}
		return count >= needed
	}
}

// drinksByDay fetches the trailing lookback window once and groups raw
// entries per calendar day.
func (s *AchievementService) drinksByDay(ctx context.Context, userID uint, lookback int) map[string][]models.DrinkEntry {
	today := dayStart(s.hydration.now())
	first := today.AddDate(0, 0, -(lookback - 1))
	drinks, err := s.store.DrinksBetween(ctx, userID, first, today.AddDate(0, 0, 1))
	if err != nil {
		return nil
	}
	// Timestamps are normalized into the query clock's location so both the
	// day keys and the hour-of-day checks in the predicates agree with the
	// intake walks.
	loc := s.hydration.now().Location()
	byDay := make(map[string][]models.DrinkEntry)
	for _, d := range drinks {
		d.Timestamp = d.Timestamp.In(loc)
		key := dayStart(d.Timestamp).Format(dayKeyFormat)
		byDay[key] = append(byDay[key], d)
	}
	return byDay
}

// earlyBirdDays: at least one drink logged before 08:00 on `needed` of the
// trailing `lookback` days.
func (s *AchievementService) earlyBirdDays(needed, lookback int) func(context.Context, uint) bool {
	return func(ctx context.Context, userID uint) bool {
		byDay := s.drinksByDay(ctx, userID, lookback)
		count := 0
		for _, drinks := range byDay {
			for _, d := range drinks {
				if d.Timestamp.Hour() < 8 {
					count++
					break
				}
			}
			if count >= needed {
				return true
			}
		}
		return false
	}
}

// morningVolumeDays: `minMl` of effective hydration before `beforeHour` on
// `needed` of the trailing `lookback` days.
func (s *AchievementService) morningVolumeDays(minMl, beforeHour, needed, lookback int) func(context.Context, uint) bool {
	return func(ctx context.Context, userID uint) bool {
		byDay := s.drinksByDay(ctx, userID, lookback)
		count := 0
		for _, drinks := range byDay {
			morning := 0
			for _, d := range drinks {
				if d.Timestamp.Hour() < beforeHour {
					morning += d.EffectiveHydrationMl
				}
			}
			if morning >= minMl {
				count++
				if count >= needed {
					return true
				}
			}
		}
		return false
	}
}

// halfwayByNoonDays: half the day's goal reached before 12:00 on `needed` of
// the trailing `lookback` days.
func (s *AchievementService) halfwayByNoonDays(needed, lookback int) func(context.Context, uint) bool {
	return func(ctx context.Context, userID uint) bool {
		byDay := s.drinksByDay(ctx, userID, lookback)
		count := 0
		for key, drinks := range byDay {
			day, err := time.ParseInLocation(dayKeyFormat, key, s.hydration.now().Location())
			if err != nil {
				continue
			}
			goal := s.hydration.EffectiveGoal(ctx, userID, day)
			if goal <= 0 {
				continue
			}
			beforeNoon := 0
			for _, d := range drinks {
				if d.Timestamp.Hour() < 12 {
					beforeNoon += d.EffectiveHydrationMl
				}
			}
			if beforeNoon >= goal/2 {
				count++
				if count >= needed {
					return true
				}
			}
		}
		return false
	}
}

// varietyDay: `types` distinct drink types logged within a single day of the
// trailing `lookback` days.
func (s *AchievementService) varietyDay(types, lookback int) func(context.Context, uint) bool {
	return func(ctx context.Context, userID uint) bool {
		byDay := s.drinksByDay(ctx, userID, lookback)
		for _, drinks := range byDay {
			seen := make(map[models.DrinkType]struct{})
			for _, d := range drinks {
				seen[d.DrinkType] = struct{}{}
			}
			if len(seen) >= types {
				return true
			}
		}
		return false
	}
}

// waterOnlyRun: `run` consecutive days (within `lookback`) where every
// logged entry is water. Days with nothing logged reset the run.
func (s *AchievementService) waterOnlyRun(run, lookback int) func(context.Context, uint) bool {
	return func(ctx context.Context, userID uint) bool {
		byDay := s.drinksByDay(ctx, userID, lookback)
		today := dayStart(s.hydration.now())

		consecutive := 0
		for i := 0; i < lookback; i++ {
			drinks := byDay[today.AddDate(0, 0, -i).Format(dayKeyFormat)]
			if len(drinks) == 0 {
				consecutive = 0
				continue
			}
			allWater := true
			for _, d := range drinks {
				if d.DrinkType != models.DrinkWater {
					allWater = false
					break
				}
			}
			if !allWater {
				consecutive = 0
				continue
			}
			consecutive++
			if consecutive >= run {
				return true
			}
		}
		return false
	}
}

// weekendRun: goal met on both Saturday and Sunday for `weekends`
// consecutive weekends, scanning back `lookbackWeeks` weeks.
func (s *AchievementService) weekendRun(weekends, lookbackWeeks int) func(context.Context, uint) bool {
	return func(ctx context.Context, userID uint) bool {
		consecutive := 0
		for weekAgo := 0; weekAgo < lookbackWeeks; weekAgo++ {
			weekStart := startOfWeek(s.hydration.now().AddDate(0, 0, -7*weekAgo))
			saturday := weekStart.AddDate(0, 0, 5)
			sunday := weekStart.AddDate(0, 0, 6)

			if s.hydration.goalMet(ctx, userID, saturday) && s.hydration.goalMet(ctx, userID, sunday) {
				consecutive++
				if consecutive >= weekends {
					return true
				}
			} else {
				consecutive = 0
			}
		}
		return false
	}
}
