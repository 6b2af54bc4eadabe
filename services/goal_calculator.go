package services

import (
	"fmt"

	"github.com/ChathunKurera/hydratrack/models"
)

// GoalBreakdownFor computes the recommended daily goal from biometric inputs
// and explains each step. Pure function; callers validate age and weight
// ranges before display.
func GoalBreakdownFor(age int, weightKg float64, activityLevel models.ActivityLevel) models.GoalBreakdown {
	baseRate := 30.0
	if age >= 65 {
		baseRate = 25.0
	}

	baseAmount := int(baseRate * weightKg)
	activityBonus := activityLevel.BonusMl()
	totalBeforeClamp := baseAmount + activityBonus

	finalGoal := totalBeforeClamp
	if finalGoal < models.MinGoalMl {
		finalGoal = models.MinGoalMl
	}
	if finalGoal > models.MaxGoalMl {
		finalGoal = models.MaxGoalMl
	}

	return models.GoalBreakdown{
		BaseCalculation:  fmt.Sprintf("%d mL × %d kg", int(baseRate), int(weightKg)),
		BaseAmount:       baseAmount,
		ActivityBonus:    activityBonus,
		TotalBeforeClamp: totalBeforeClamp,
		FinalGoal:        finalGoal,
		WasClamped:       totalBeforeClamp != finalGoal,
	}
}
