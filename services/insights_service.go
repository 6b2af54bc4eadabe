package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ChathunKurera/hydratrack/models"
	"github.com/ChathunKurera/hydratrack/store"
)

// InsightsService builds weekly/monthly/hourly aggregates and the advisory
// tips shown on top of them. Stateless; everything derives from the store on
// each call.
type InsightsService struct {
	store     store.Store
	hydration *HydrationService
}

func NewInsightsService(st store.Store, hydration *HydrationService) *InsightsService {
	return &InsightsService{store: st, hydration: hydration}
}

// daysBetween counts calendar days in [start, end) by date arithmetic.
// Dividing wall-clock hours by 24 undercounts across DST transitions.
func daysBetween(start, end time.Time) int {
	n := 0
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		n++
	}
	return n
}

// GetWeeklyInsights aggregates the week `weeksAgo` weeks back (0 = current).
// The current week only counts days elapsed so far, today included; past
// weeks always count all 7.
func (s *InsightsService) GetWeeklyInsights(ctx context.Context, userID uint, weeksAgo int) models.WeeklyInsights {
	now := s.hydration.now()
	weekStart := startOfWeek(now.AddDate(0, 0, -7*weeksAgo))
	weekEnd := weekStart.AddDate(0, 0, 6)

	daysElapsed := 7
	if weeksAgo == 0 {
		daysElapsed = daysBetween(weekStart, dayStart(now).AddDate(0, 0, 1))
		if daysElapsed > 7 {
			daysElapsed = 7
		}
	}

	intakes := s.hydration.dailyIntakes(ctx, userID, weekStart, daysElapsed)

	var (
		bestDay, worstDay *models.DayIntake
		totalVolume       int
		daysGoalMet       int
	)
	for i := 0; i < daysElapsed; i++ {
		day := weekStart.AddDate(0, 0, i)
		intake := intakes[day.Format(dayKeyFormat)]
		totalVolume += intake

		if bestDay == nil || intake > bestDay.IntakeMl {
			bestDay = &models.DayIntake{Date: day, IntakeMl: intake}
		}
		if worstDay == nil || intake < worstDay.IntakeMl {
			worstDay = &models.DayIntake{Date: day, IntakeMl: intake}
		}
		if intake >= s.hydration.EffectiveGoal(ctx, userID, day) {
			daysGoalMet++
		}
	}

	averageIntake := 0
	completionRate := 0
	if daysElapsed > 0 {
		averageIntake = totalVolume / daysElapsed
		completionRate = (daysGoalMet * 100) / daysElapsed
	}

	comparedToLastWeek := 0
	if weeksAgo == 0 {
		lastWeek := s.GetWeeklyInsights(ctx, userID, 1)
		if lastWeek.AverageIntake > 0 {
			comparedToLastWeek = ((averageIntake - lastWeek.AverageIntake) * 100) / lastWeek.AverageIntake
		}
	}

	return models.WeeklyInsights{
		WeekStart:          weekStart,
		WeekEnd:            weekEnd,
		AverageIntake:      averageIntake,
		BestDay:            bestDay,
		WorstDay:           worstDay,
		TotalVolume:        totalVolume,
		DaysGoalMet:        daysGoalMet,
		DaysElapsed:        daysElapsed,
		CompletionRate:     completionRate,
		ComparedToLastWeek: comparedToLastWeek,
	}
}

// GetMonthlyInsights aggregates the calendar month `monthsAgo` months back,
// including the longest goal-met run inside the month and the best week by
// average intake.
func (s *InsightsService) GetMonthlyInsights(ctx context.Context, userID uint, monthsAgo int) models.MonthlyInsights {
	now := s.hydration.now()
	ref := now.AddDate(0, -monthsAgo, 0)
	monthStart := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)
	daysInMonth := daysBetween(monthStart, monthEnd)

	intakes := s.hydration.dailyIntakes(ctx, userID, monthStart, daysInMonth)

	var (
		totalVolume   int
		daysGoalMet   int
		maxStreak     int
		currentStreak int
	)
	for i := 0; i < daysInMonth; i++ {
		day := monthStart.AddDate(0, 0, i)
		intake := intakes[day.Format(dayKeyFormat)]
		totalVolume += intake

		if intake >= s.hydration.EffectiveGoal(ctx, userID, day) {
			daysGoalMet++
			currentStreak++
			if currentStreak > maxStreak {
				maxStreak = currentStreak
			}
		} else {
			currentStreak = 0
		}
	}

	averageIntake := 0
	completionRate := 0
	if daysInMonth > 0 {
		averageIntake = totalVolume / daysInMonth
		completionRate = (daysGoalMet * 100) / daysInMonth
	}

	// Week labels walk forward from the month start, while the averages come
	// from week offsets counted back from now. For past months the two can
	// drift by a few days when the month does not start on a Monday.
	var bestWeek *models.BestWeek
	for weekOffset := 0; weekOffset <= 4; weekOffset++ {
		weekStart := startOfWeek(monthStart.AddDate(0, 0, 7*weekOffset))
		week := s.GetWeeklyInsights(ctx, userID, weekOffset+monthsAgo*4)
		if bestWeek == nil || week.AverageIntake > bestWeek.AverageIntake {
			bestWeek = &models.BestWeek{WeekStart: weekStart, AverageIntake: week.AverageIntake}
		}
	}

	comparedToLastMonth := 0
	if monthsAgo == 0 {
		lastMonth := s.GetMonthlyInsights(ctx, userID, 1)
		if lastMonth.AverageIntake > 0 {
			comparedToLastMonth = ((averageIntake - lastMonth.AverageIntake) * 100) / lastMonth.AverageIntake
		}
	}

	return models.MonthlyInsights{
		MonthStart:          monthStart,
		MonthEnd:            monthEnd,
		AverageIntake:       averageIntake,
		BestWeek:            bestWeek,
		TotalVolume:         totalVolume,
		DaysGoalMet:         daysGoalMet,
		CompletionRate:      completionRate,
		StreakRecord:        maxStreak,
		ComparedToLastMonth: comparedToLastMonth,
	}
}

// GetHourlyPatterns buckets the trailing 30 days of entries by hour of day
// and reports mean effective hydration per bucket; empty buckets are 0.
func (s *InsightsService) GetHourlyPatterns(ctx context.Context, userID uint) []models.HourlyPattern {
	today := dayStart(s.hydration.now())
	first := today.AddDate(0, 0, -29)
	drinks, err := s.store.DrinksBetween(ctx, userID, first, today.AddDate(0, 0, 1))
	if err != nil {
		drinks = nil
	}

	sums := make([]int, 24)
	counts := make([]int, 24)
	loc := s.hydration.now().Location()
	for _, d := range drinks {
		hour := d.Timestamp.In(loc).Hour()
		sums[hour] += d.EffectiveHydrationMl
		counts[hour]++
	}

	patterns := make([]models.HourlyPattern, 24)
	for hour := 0; hour < 24; hour++ {
		average := 0
		if counts[hour] > 0 {
			average = sums[hour] / counts[hour]
		}
		patterns[hour] = models.HourlyPattern{Hour: hour, AverageIntake: average}
	}
	return patterns
}

// GenerateInsightTips derives short advisory messages from already-computed
// weekly insights plus the hourly pattern peak.
func (s *InsightsService) GenerateInsightTips(ctx context.Context, userID uint, weekly models.WeeklyInsights) []models.InsightTip {
	var tips []models.InsightTip

	if weekly.CompletionRate >= 90 {
		tips = append(tips, models.InsightTip{
			Icon:     "star.fill",
			Message:  fmt.Sprintf("Amazing! You hit your goal %d out of %d days this week!", weekly.DaysGoalMet, weekly.DaysElapsed),
			Category: models.TipPositive,
		})
	} else if weekly.CompletionRate < 50 {
		tips = append(tips, models.InsightTip{
			Icon:     "exclamationmark.triangle.fill",
			Message:  fmt.Sprintf("Only %d%% completion so far this week. Let's aim higher!", weekly.CompletionRate),
			Category: models.TipWarning,
		})
	}

	if weekly.ComparedToLastWeek > 10 {
		tips = append(tips, models.InsightTip{
			Icon:     "arrow.up.circle.fill",
			Message:  fmt.Sprintf("You're drinking %d%% more than last week!", weekly.ComparedToLastWeek),
			Category: models.TipPositive,
		})
	} else if weekly.ComparedToLastWeek < -10 {
		tips = append(tips, models.InsightTip{
			Icon:     "arrow.down.circle.fill",
			Message:  fmt.Sprintf("Your intake dropped %d%% from last week", -weekly.ComparedToLastWeek),
			Category: models.TipSuggestion,
		})
	}

	if weekly.BestDay != nil {
		tips = append(tips, models.InsightTip{
			Icon:     "trophy.fill",
			Message:  fmt.Sprintf("%s was your best day with %dmL!", weekly.BestDay.Date.Format("Monday"), weekly.BestDay.IntakeMl),
			Category: models.TipPositive,
		})
	}

	patterns := s.GetHourlyPatterns(ctx, userID)
	var peak *models.HourlyPattern
	for i := range patterns {
		if peak == nil || patterns[i].AverageIntake > peak.AverageIntake {
			peak = &patterns[i]
		}
	}
	if peak != nil && peak.AverageIntake > 0 {
		tips = append(tips, models.InsightTip{
			Icon:     "clock.fill",
			Message:  fmt.Sprintf("You typically drink most around %s", peak.TimeLabel()),
			Category: models.TipSuggestion,
		})
	}

	return tips
}
