package models

import "time"

// GoalHistory records which goal value was in effect from a given day onward.
// At most one entry exists per user per calendar day; a second write for the
// same day overwrites GoalMl in place. Historical completion percentages are
// computed against these entries, never against the live profile goal.
type GoalHistory struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	UserID        uint      `gorm:"uniqueIndex:idx_goal_history_user_date;not null" json:"-"`
	EffectiveDate time.Time `gorm:"uniqueIndex:idx_goal_history_user_date;not null" json:"effective_date"`
	GoalMl        int       `gorm:"not null" json:"goal_ml"`
	CreatedAt     time.Time `json:"created_at"`
}

// DailyGoalOverride replaces the goal for a single day. It takes precedence
// over goal history for its date and is never folded into the history.
type DailyGoalOverride struct {
	ID     uint      `gorm:"primaryKey" json:"-"`
	UserID uint      `gorm:"uniqueIndex:idx_goal_override_user_date;not null" json:"-"`
	Date   time.Time `gorm:"uniqueIndex:idx_goal_override_user_date;not null" json:"date"`
	GoalMl int       `gorm:"not null" json:"goal_ml"`
}
