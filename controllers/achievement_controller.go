package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ChathunKurera/hydratrack/models"
	"github.com/ChathunKurera/hydratrack/services"
)

type AchievementController struct {
	Svc *services.AchievementService
}

func NewAchievementController(svc *services.AchievementService) *AchievementController {
	return &AchievementController{Svc: svc}
}

// GetCatalog lists every achievement, locked or not. Public.
func (h *AchievementController) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"achievements": models.AchievementCatalog})
}

func (h *AchievementController) GetUnlocked(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unlocked": h.Svc.GetUnlockedAchievements(c.Request.Context(), userID)})
}

// CheckAchievements runs an on-demand sweep and returns any fresh unlocks.
func (h *AchievementController) CheckAchievements(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"newly_unlocked": h.Svc.CheckForNewAchievements(c.Request.Context(), userID)})
}

func (h *AchievementController) GetNewCount(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"new_count": h.Svc.GetNewAchievementCount(c.Request.Context(), userID)})
}

func (h *AchievementController) MarkSeen(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if err := h.Svc.MarkAllAsSeen(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
