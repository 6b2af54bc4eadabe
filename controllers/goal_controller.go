package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ChathunKurera/hydratrack/services"
)

type GoalController struct {
	Hydration *services.HydrationService
}

func NewGoalController(hydration *services.HydrationService) *GoalController {
	return &GoalController{Hydration: hydration}
}

// GetTodayGoal reports the goal in force today plus progress against it.
// An optional weather_delta (mL) is added to the displayed goal only; it is
// never persisted, so historical completion stays consistent.
func (h *GoalController) GetTodayGoal(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	weatherDelta := 0
	if v := c.Query("weather_delta"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid weather_delta"})
			return
		}
		weatherDelta = d
	}

	ctx := c.Request.Context()
	goal := h.Hydration.EffectiveGoalNow(ctx, userID)
	intake := h.Hydration.TodayIntake(ctx, userID)
	streak, frozen := h.Hydration.CurrentStreakWithFreeze(ctx, userID)

	progress := 0
	if goal > 0 {
		progress = (intake * 100) / goal
	}

	resp := gin.H{
		"effective_goal_ml": goal,
		"displayed_goal_ml": goal + weatherDelta,
		"weather_delta_ml":  weatherDelta,
		"today_intake_ml":   intake,
		"progress_percent":  progress,
		"streak":            streak,
		"streak_frozen":     frozen,
	}
	if last := h.Hydration.LastDrinkAt(ctx, userID); last != nil {
		resp["last_drink_at"] = last
	}
	c.JSON(http.StatusOK, resp)
}

func (h *GoalController) SetCustomGoal(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		GoalMl int `json:"goal_ml" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.GoalMl <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "goal_ml must be positive"})
		return
	}

	if err := h.Hydration.SetCustomGoal(c.Request.Context(), userID, &req.GoalMl); err != nil {
		if err == services.ErrNoProfile {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearCustomGoal reverts the daily goal to the calculated value.
func (h *GoalController) ClearCustomGoal(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.Hydration.SetCustomGoal(c.Request.Context(), userID, nil); err != nil {
		if err == services.ErrNoProfile {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GoalController) SetTodayOverride(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		GoalMl int `json:"goal_ml" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.GoalMl <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "goal_ml must be positive"})
		return
	}

	if err := h.Hydration.SetTodayOverride(c.Request.Context(), userID, req.GoalMl); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GoalController) GetTodayOverride(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	override := h.Hydration.TodayOverride(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"override_ml": override})
}

func (h *GoalController) ClearTodayOverride(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.Hydration.ClearTodayOverride(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GoalController) GetAdjustmentSuggestion(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	suggestion := h.Hydration.CheckGoalAdjustment(c.Request.Context(), userID)
	if suggestion == nil {
		c.JSON(http.StatusOK, gin.H{"suggestion": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"suggestion":        suggestion,
		"change_amount":     suggestion.ChangeAmount(),
		"change_percentage": suggestion.ChangePercentage(),
	})
}

func (h *GoalController) ApplyAdjustment(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		GoalMl int `json:"goal_ml" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.GoalMl <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "goal_ml must be positive"})
		return
	}

	if err := h.Hydration.ApplyGoalAdjustment(c.Request.Context(), userID, req.GoalMl); err != nil {
		if err == services.ErrNoProfile {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// GetCompletionData returns day→completion-percentage for the trailing
// `days` window (default 60, capped at 365).
func (h *GoalController) GetCompletionData(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	days := 60
	if v := c.Query("days"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil || d <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days"})
			return
		}
		days = d
	}
	if days > 365 {
		days = 365
	}

	c.JSON(http.StatusOK, gin.H{"completion": h.Hydration.CompletionData(c.Request.Context(), userID, days)})
}

// GetStreak reports both the plain streak and the freeze-aware one.
func (h *GoalController) GetStreak(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx := c.Request.Context()
	plain := h.Hydration.CurrentStreak(ctx, userID)
	frozen, isFrozen := h.Hydration.CurrentStreakWithFreeze(ctx, userID)
	c.JSON(http.StatusOK, gin.H{
		"streak":             plain,
		"streak_with_freeze": frozen,
		"is_frozen":          isFrozen,
	})
}
