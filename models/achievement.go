package models

import "time"

type AchievementCategory string

const (
	CategoryStreak      AchievementCategory = "streak"
	CategoryVolume      AchievementCategory = "volume"
	CategoryConsistency AchievementCategory = "consistency"
	CategoryMilestone   AchievementCategory = "milestone"
	CategoryVariety     AchievementCategory = "variety"
	CategoryTiming      AchievementCategory = "timing"
	CategoryChallenge   AchievementCategory = "challenge"
)

// Achievement is a static catalog entry. The catalog lives in memory; only
// unlocks are persisted, joined back by ID.
type Achievement struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Icon        string              `json:"icon"`
	Category    AchievementCategory `json:"category"`
	// Optional display colors (hex); nil means the client default.
	PrimaryColor   string `json:"primary_color,omitempty"`
	SecondaryColor string `json:"secondary_color,omitempty"`
}

// AchievementCatalog is the fixed, ordered achievement list. Order matters:
// the unlock sweep evaluates and reports achievements in this order.
var AchievementCatalog = []Achievement{
	{ID: "streak_7", Title: "Week Warrior", Description: "Maintain a 7-day streak", Icon: "flame.fill", Category: CategoryStreak},
	{ID: "streak_30", Title: "Month Master", Description: "Maintain a 30-day streak", Icon: "flame.circle.fill", Category: CategoryStreak},
	{ID: "streak_100", Title: "Century Club", Description: "Maintain a 100-day streak", Icon: "trophy.fill", Category: CategoryStreak},
	{ID: "goal_120", Title: "Overachiever", Description: "Reach 120% of your daily goal", Icon: "star.fill", Category: CategoryVolume},
	{ID: "goal_120_5times", Title: "Hydration Hero", Description: "Reach 120%+ of goal 5 times", Icon: "star.circle.fill", Category: CategoryVolume},
	{ID: "single_day_3000", Title: "Flood Warning", Description: "Drink 3000mL in a single day", Icon: "drop.triangle.fill", Category: CategoryVolume},
	{ID: "perfect_week", Title: "Perfect Week", Description: "Hit your goal every day for 7 days", Icon: "calendar.badge.checkmark", Category: CategoryConsistency},
	{ID: "early_bird_7", Title: "Early Bird", Description: "Log water within 30min of waking for 7 days", Icon: "sunrise.fill", Category: CategoryConsistency},
	{ID: "consistent_30", Title: "Steady Flow", Description: "Hit your goal 25 out of 30 days", Icon: "chart.line.uptrend.xyaxis", Category: CategoryConsistency},
	{ID: "first_goal", Title: "First Steps", Description: "Complete your daily goal", Icon: "checkmark.circle.fill", Category: CategoryMilestone},
	{ID: "total_100L", Title: "100 Liters", Description: "Log 100L total hydration", Icon: "waterbottle.fill", Category: CategoryMilestone},
	{ID: "total_500L", Title: "500 Liters", Description: "Log 500L total hydration", Icon: "drop.circle.fill", Category: CategoryMilestone},
	{ID: "variety_pack", Title: "Variety Pack", Description: "Log 5 different drink types in a single day", Icon: "square.grid.3x3.fill", Category: CategoryVariety},
	{ID: "water_purist", Title: "Water Purist", Description: "Drink only water for 7 consecutive days", Icon: "drop.halffull", Category: CategoryVariety},
	{ID: "early_riser", Title: "Early Riser", Description: "Reach 500mL before 9 AM for 5 days", Icon: "sun.horizon.fill", Category: CategoryTiming},
	{ID: "halfway_hero", Title: "Halfway Hero", Description: "Reach 50% of daily goal before noon for 10 days", Icon: "clock.badge.checkmark", Category: CategoryTiming},
	{ID: "weekend_warrior", Title: "Weekend Warrior", Description: "Hit goal on Saturday and Sunday for 4 consecutive weekends", Icon: "calendar.badge.plus", Category: CategoryChallenge},
	{ID: "marathon_month", Title: "Marathon Month", Description: "Complete your goal every day for 30 consecutive days", Icon: "medal.fill", Category: CategoryChallenge, PrimaryColor: "#FFD700", SecondaryColor: "#000000"},
}

// AchievementByID returns the catalog entry for id, or nil for unlocks whose
// achievement has been removed from the catalog.
func AchievementByID(id string) *Achievement {
	for i := range AchievementCatalog {
		if AchievementCatalog[i].ID == id {
			return &AchievementCatalog[i]
		}
	}
	return nil
}

// AchievementUnlock records that an achievement was earned. Unlocks are
// append-only: once created they are never re-evaluated back to locked.
type AchievementUnlock struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	UserID        uint      `gorm:"uniqueIndex:idx_unlock_user_achievement;not null" json:"-"`
	AchievementID string    `gorm:"uniqueIndex:idx_unlock_user_achievement;size:64;not null" json:"achievement_id"`
	UnlockedAt    time.Time `gorm:"not null" json:"unlocked_at"`
	HasBeenSeen   bool      `gorm:"default:false" json:"has_been_seen"`
}
