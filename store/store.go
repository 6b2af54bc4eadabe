// Package store is the persistence boundary for the hydration domain.
// Services depend on the Store interface, never on a database handle.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ChathunKurera/hydratrack/models"
)

// Store is the record store the analytics and achievement engines read from.
// Date parameters are day-start instants in the caller's location; range
// queries are half-open [start, end) and return entries ordered by timestamp
// ascending.
//
// Lookups return (nil, nil) when no record matches; an error means the read
// itself failed.
type Store interface {
	// Drinks
	InsertDrink(ctx context.Context, d *models.DrinkEntry) error
	UpdateDrink(ctx context.Context, d *models.DrinkEntry) error
	DeleteDrink(ctx context.Context, userID uint, id uuid.UUID) error
	DrinkByID(ctx context.Context, userID uint, id uuid.UUID) (*models.DrinkEntry, error)
	DrinksBetween(ctx context.Context, userID uint, start, end time.Time) ([]models.DrinkEntry, error)
	EarliestDrink(ctx context.Context, userID uint) (*models.DrinkEntry, error)
	LatestDrink(ctx context.Context, userID uint) (*models.DrinkEntry, error)
	TotalEffectiveHydration(ctx context.Context, userID uint) (int, error)

	// Profile
	Profile(ctx context.Context, userID uint) (*models.UserProfile, error)
	SaveProfile(ctx context.Context, p *models.UserProfile) error

	// Daily goal overrides (one per user per day)
	OverrideForDate(ctx context.Context, userID uint, date time.Time) (*models.DailyGoalOverride, error)
	UpsertOverride(ctx context.Context, userID uint, date time.Time, goalMl int) error
	DeleteOverride(ctx context.Context, userID uint, date time.Time) error

	// Goal history (one per user per day, overwrite-on-date)
	LatestGoalOnOrBefore(ctx context.Context, userID uint, date time.Time) (*models.GoalHistory, error)
	UpsertGoalHistory(ctx context.Context, userID uint, effectiveDate time.Time, goalMl int) error
	HasGoalHistory(ctx context.Context, userID uint) (bool, error)

	// Achievement unlocks (append-only)
	IsUnlocked(ctx context.Context, userID uint, achievementID string) (bool, error)
	InsertUnlock(ctx context.Context, u *models.AchievementUnlock) error
	Unlocks(ctx context.Context, userID uint) ([]models.AchievementUnlock, error)
	CountUnseenUnlocks(ctx context.Context, userID uint) (int64, error)
	MarkUnlocksSeen(ctx context.Context, userID uint) error
}
