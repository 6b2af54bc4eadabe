package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ChathunKurera/hydratrack/models"
	"github.com/ChathunKurera/hydratrack/services"
)

type DrinkController struct {
	Hydration    *services.HydrationService
	Achievements *services.AchievementService
	Push         *services.PushService
	Hub          *services.RealtimeHub
}

func NewDrinkController(hydration *services.HydrationService, achievements *services.AchievementService, push *services.PushService, hub *services.RealtimeHub) *DrinkController {
	return &DrinkController{Hydration: hydration, Achievements: achievements, Push: push, Hub: hub}
}

type drinkRequest struct {
	VolumeMl  int              `json:"volume_ml" binding:"required"`
	DrinkType models.DrinkType `json:"drink_type" binding:"required"`
	Name      string           `json:"name"`
	Timestamp *time.Time       `json:"timestamp"`
}

// afterMutation runs the post-log pipeline: achievement sweep, push
// notifications for fresh unlocks, realtime progress broadcast. All of it is
// best-effort and never fails the request.
func (h *DrinkController) afterMutation(c *gin.Context, userID uint) []models.Achievement {
	ctx := c.Request.Context()

	unlocked := h.Achievements.CheckForNewAchievements(ctx, userID)
	if h.Push != nil && len(unlocked) > 0 {
		h.Push.NotifyAchievements(userID, unlocked)
	}

	if h.Hub != nil {
		intake := h.Hydration.TodayIntake(ctx, userID)
		goal := h.Hydration.EffectiveGoalNow(ctx, userID)
		streak, frozen := h.Hydration.CurrentStreakWithFreeze(ctx, userID)
		h.Hub.BroadcastProgress(userID, services.ProgressSnapshot{
			IntakeMl:  intake,
			GoalMl:    goal,
			Streak:    streak,
			IsFrozen:  frozen,
			GoalMet:   goal > 0 && intake >= goal,
			DrinksLog: len(h.Hydration.TodayDrinks(ctx, userID)),
		})
	}
	return unlocked
}

func (h *DrinkController) AddDrink(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req drinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	drink, err := h.Hydration.AddDrink(c.Request.Context(), userID, req.VolumeMl, req.DrinkType, req.Name, req.Timestamp)
	if err == services.ErrInvalidVolume || err == services.ErrInvalidType {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	unlocked := h.afterMutation(c, userID)
	c.JSON(http.StatusCreated, gin.H{
		"drink":             drink,
		"newly_unlocked":    unlocked,
		"today_intake_ml":   h.Hydration.TodayIntake(c.Request.Context(), userID),
		"effective_goal_ml": h.Hydration.EffectiveGoalNow(c.Request.Context(), userID),
	})
}

func (h *DrinkController) EditDrink(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid drink id"})
		return
	}

	var req struct {
		VolumeMl  int              `json:"volume_ml" binding:"required"`
		DrinkType models.DrinkType `json:"drink_type" binding:"required"`
		Timestamp time.Time        `json:"timestamp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	drink, err := h.Hydration.EditDrink(c.Request.Context(), userID, id, req.VolumeMl, req.DrinkType, req.Timestamp)
	if err == services.ErrDrinkNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err == services.ErrInvalidVolume || err == services.ErrInvalidType {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.afterMutation(c, userID)
	c.JSON(http.StatusOK, gin.H{"drink": drink})
}

func (h *DrinkController) DeleteDrink(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid drink id"})
		return
	}

	if err := h.Hydration.DeleteDrink(c.Request.Context(), userID, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.afterMutation(c, userID)
	c.Status(http.StatusNoContent)
}

func (h *DrinkController) GetTodayDrinks(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx := c.Request.Context()
	c.JSON(http.StatusOK, gin.H{
		"drinks":          h.Hydration.TodayDrinks(ctx, userID),
		"today_intake_ml": h.Hydration.TodayIntake(ctx, userID),
	})
}

func (h *DrinkController) GetLast7Days(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": h.Hydration.Last7DaysIntake(c.Request.Context(), userID)})
}

func (h *DrinkController) GetPresets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"presets": models.PresetDrinks})
}
