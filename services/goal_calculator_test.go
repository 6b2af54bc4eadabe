package services

import (
	"testing"

	"github.com/ChathunKurera/hydratrack/models"
)

func TestGoalBreakdown(t *testing.T) {
	b := GoalBreakdownFor(30, 70, models.ActivityLightlyActive)
	if b.BaseAmount != 2100 {
		t.Fatalf("base = %d, want 2100", b.BaseAmount)
	}
	if b.ActivityBonus != 350 {
		t.Fatalf("bonus = %d, want 350", b.ActivityBonus)
	}
	if b.FinalGoal != 2450 || b.WasClamped {
		t.Fatalf("final = %d (clamped=%v), want 2450 unclamped", b.FinalGoal, b.WasClamped)
	}
	if b.BaseCalculation != "30 mL × 70 kg" {
		t.Fatalf("base calculation = %q", b.BaseCalculation)
	}
}

func TestGoalBreakdownSeniorRate(t *testing.T) {
	b := GoalBreakdownFor(70, 50, models.ActivitySedentary)
	if b.BaseAmount != 1250 {
		t.Fatalf("base = %d, want 1250 at 25 mL/kg", b.BaseAmount)
	}
	if b.FinalGoal != models.MinGoalMl || !b.WasClamped {
		t.Fatalf("final = %d (clamped=%v), want clamped to %d", b.FinalGoal, b.WasClamped, models.MinGoalMl)
	}
}

func TestGoalBreakdownUpperClamp(t *testing.T) {
	b := GoalBreakdownFor(30, 110, models.ActivityVeryActive)
	if b.TotalBeforeClamp != 4300 {
		t.Fatalf("total before clamp = %d, want 4300", b.TotalBeforeClamp)
	}
	if b.FinalGoal != models.MaxGoalMl || !b.WasClamped {
		t.Fatalf("final = %d (clamped=%v), want clamped to %d", b.FinalGoal, b.WasClamped, models.MaxGoalMl)
	}
}
