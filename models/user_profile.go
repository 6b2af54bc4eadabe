package models

import "time"

type Gender string

const (
	GenderMale           Gender = "male"
	GenderFemale         Gender = "female"
	GenderOther          Gender = "other"
	GenderPreferNotToSay Gender = "prefer_not_to_say"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, GenderPreferNotToSay:
		return true
	}
	return false
}

type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "sedentary"
	ActivityLightlyActive    ActivityLevel = "lightly_active"
	ActivityModeratelyActive ActivityLevel = "moderately_active"
	ActivityVeryActive       ActivityLevel = "very_active"
)

// BonusMl is the flat daily addition the activity level contributes to the
// calculated goal.
func (a ActivityLevel) BonusMl() int {
	switch a {
	case ActivityLightlyActive:
		return 350
	case ActivityModeratelyActive:
		return 700
	case ActivityVeryActive:
		return 1000
	default:
		return 0
	}
}

func (a ActivityLevel) Description() string {
	switch a {
	case ActivitySedentary:
		return "Little to no exercise"
	case ActivityLightlyActive:
		return "1-3 days/week"
	case ActivityModeratelyActive:
		return "3-5 days/week"
	case ActivityVeryActive:
		return "6-7 days/week"
	default:
		return ""
	}
}

func (a ActivityLevel) Valid() bool {
	switch a {
	case ActivitySedentary, ActivityLightlyActive, ActivityModeratelyActive, ActivityVeryActive:
		return true
	}
	return false
}

const (
	MinGoalMl     = 1500
	MaxGoalMl     = 3200
	DefaultGoalMl = 2500
)

// UserProfile holds the biometric inputs the daily goal is derived from.
// One row per user, created at onboarding.
type UserProfile struct {
	ID            uint          `gorm:"primaryKey" json:"-"`
	UserID        uint          `gorm:"uniqueIndex;not null" json:"-"`
	Age           int           `gorm:"not null" json:"age"`
	WeightKg      float64       `gorm:"not null" json:"weight_kg"`
	Gender        Gender        `gorm:"size:20;not null" json:"gender"`
	ActivityLevel ActivityLevel `gorm:"size:20;not null" json:"activity_level"`
	CustomGoalMl  *int          `json:"custom_goal_ml,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// CalculatedGoalMl derives the recommended goal from age, weight and activity
// level, clamped to [MinGoalMl, MaxGoalMl]. Users aged 65+ get the lower base
// rate of 25 mL/kg.
func (p *UserProfile) CalculatedGoalMl() int {
	baseRate := 30.0
	if p.Age >= 65 {
		baseRate = 25.0
	}
	total := int(baseRate*p.WeightKg) + p.ActivityLevel.BonusMl()
	if total < MinGoalMl {
		return MinGoalMl
	}
	if total > MaxGoalMl {
		return MaxGoalMl
	}
	return total
}

// DailyGoalMl is the goal currently in force: the custom goal when set,
// otherwise the calculated one.
func (p *UserProfile) DailyGoalMl() int {
	if p.CustomGoalMl != nil {
		return *p.CustomGoalMl
	}
	return p.CalculatedGoalMl()
}
