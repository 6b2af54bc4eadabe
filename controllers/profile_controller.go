package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ChathunKurera/hydratrack/models"
	"github.com/ChathunKurera/hydratrack/services"
)

type ProfileController struct {
	Hydration *services.HydrationService
}

func NewProfileController(hydration *services.HydrationService) *ProfileController {
	return &ProfileController{Hydration: hydration}
}

type profileRequest struct {
	Age           int                  `json:"age" binding:"required"`
	WeightKg      float64              `json:"weight_kg" binding:"required"`
	Gender        models.Gender        `json:"gender" binding:"required"`
	ActivityLevel models.ActivityLevel `json:"activity_level" binding:"required"`
}

func (r profileRequest) validate() string {
	if r.Age < 10 || r.Age > 120 {
		return "age must be between 10 and 120"
	}
	if r.WeightKg < 30 || r.WeightKg > 300 {
		return "weight_kg must be between 30 and 300"
	}
	if !r.Gender.Valid() {
		return "invalid gender"
	}
	if !r.ActivityLevel.Valid() {
		return "invalid activity_level"
	}
	return ""
}

func (h *ProfileController) GetProfile(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	profile, err := h.Hydration.Profile(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	// Backfill for accounts created before goals were versioned.
	_ = h.Hydration.EnsureGoalHistoryExists(c.Request.Context(), userID)

	c.JSON(http.StatusOK, gin.H{
		"profile":            profile,
		"calculated_goal_ml": profile.CalculatedGoalMl(),
		"daily_goal_ml":      profile.DailyGoalMl(),
	})
}

// CreateProfile completes onboarding; the initial goal is versioned into
// history as part of creation.
func (h *ProfileController) CreateProfile(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	profile, err := h.Hydration.CreateProfile(c.Request.Context(), userID, req.Age, req.WeightKg, req.Gender, req.ActivityLevel)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"profile":       profile,
		"daily_goal_ml": profile.DailyGoalMl(),
	})
}

func (h *ProfileController) UpdateProfile(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	profile, err := h.Hydration.UpdateProfile(c.Request.Context(), userID, req.Age, req.WeightKg, req.Gender, req.ActivityLevel)
	if err == services.ErrNoProfile {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profile":       profile,
		"daily_goal_ml": profile.DailyGoalMl(),
	})
}

// GetGoalBreakdown previews the calculated goal for arbitrary inputs, usable
// before any profile exists.
func (h *ProfileController) GetGoalBreakdown(c *gin.Context) {
	var req struct {
		Age           int                  `form:"age" binding:"required"`
		WeightKg      float64              `form:"weight_kg" binding:"required"`
		ActivityLevel models.ActivityLevel `form:"activity_level" binding:"required"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Age < 10 || req.Age > 120 || req.WeightKg < 30 || req.WeightKg > 300 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "age or weight out of range"})
		return
	}
	if !req.ActivityLevel.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity_level"})
		return
	}

	c.JSON(http.StatusOK, services.GoalBreakdownFor(req.Age, req.WeightKg, req.ActivityLevel))
}
