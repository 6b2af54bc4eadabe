package models

import (
	"fmt"
	"time"
)

// DayIntake pairs a calendar day with its summed effective hydration.
type DayIntake struct {
	Date     time.Time `json:"date"`
	IntakeMl int       `json:"intake_ml"`
}

type WeeklyInsights struct {
	WeekStart          time.Time  `json:"week_start"`
	WeekEnd            time.Time  `json:"week_end"`
	AverageIntake      int        `json:"average_intake"`
	BestDay            *DayIntake `json:"best_day,omitempty"`
	WorstDay           *DayIntake `json:"worst_day,omitempty"`
	TotalVolume        int        `json:"total_volume"`
	DaysGoalMet        int        `json:"days_goal_met"`
	DaysElapsed        int        `json:"days_elapsed"`
	CompletionRate     int        `json:"completion_rate"`
	ComparedToLastWeek int        `json:"compared_to_last_week"`
}

func (w WeeklyInsights) WeekLabel() string {
	return fmt.Sprintf("%s - %s", w.WeekStart.Format("Jan 2"), w.WeekEnd.Format("Jan 2"))
}

type BestWeek struct {
	WeekStart     time.Time `json:"week_start"`
	AverageIntake int       `json:"average_intake"`
}

type MonthlyInsights struct {
	MonthStart          time.Time `json:"month_start"`
	MonthEnd            time.Time `json:"month_end"`
	AverageIntake       int       `json:"average_intake"`
	BestWeek            *BestWeek `json:"best_week,omitempty"`
	TotalVolume         int       `json:"total_volume"`
	DaysGoalMet         int       `json:"days_goal_met"`
	CompletionRate      int       `json:"completion_rate"`
	StreakRecord        int       `json:"streak_record"`
	ComparedToLastMonth int       `json:"compared_to_last_month"`
}

func (m MonthlyInsights) MonthLabel() string {
	return m.MonthStart.Format("January 2006")
}

type HourlyPattern struct {
	Hour          int `json:"hour"`
	AverageIntake int `json:"average_intake"`
}

func (h HourlyPattern) TimeLabel() string {
	t := time.Date(2000, 1, 1, h.Hour, 0, 0, 0, time.UTC)
	return t.Format("3PM")
}

type TipCategory string

const (
	TipPositive   TipCategory = "positive"
	TipSuggestion TipCategory = "suggestion"
	TipWarning    TipCategory = "warning"
)

type InsightTip struct {
	Icon     string      `json:"icon"`
	Message  string      `json:"message"`
	Category TipCategory `json:"category"`
}

type AdjustmentType string

const (
	AdjustmentIncrease AdjustmentType = "increase"
	AdjustmentDecrease AdjustmentType = "decrease"
)

// GoalAdjustmentSuggestion proposes a new daily goal based on recent trends.
type GoalAdjustmentSuggestion struct {
	Type          AdjustmentType `json:"type"`
	CurrentGoal   int            `json:"current_goal"`
	SuggestedGoal int            `json:"suggested_goal"`
	Reason        string         `json:"reason"`
	AverageIntake int            `json:"average_intake"`
}

func (s GoalAdjustmentSuggestion) ChangeAmount() int {
	diff := s.SuggestedGoal - s.CurrentGoal
	if diff < 0 {
		return -diff
	}
	return diff
}

func (s GoalAdjustmentSuggestion) ChangePercentage() int {
	if s.CurrentGoal <= 0 {
		return 0
	}
	return (s.ChangeAmount() * 100) / s.CurrentGoal
}

// GoalBreakdown explains how a recommended goal was computed, for display
// during onboarding before any profile exists.
type GoalBreakdown struct {
	BaseCalculation  string `json:"base_calculation"`
	BaseAmount       int    `json:"base_amount"`
	ActivityBonus    int    `json:"activity_bonus"`
	TotalBeforeClamp int    `json:"total_before_clamp"`
	FinalGoal        int    `json:"final_goal"`
	WasClamped       bool   `json:"was_clamped"`
}
