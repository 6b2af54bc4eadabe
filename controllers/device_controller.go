package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ChathunKurera/hydratrack/services"
)

type DeviceController struct {
	Push      *services.PushService
	Hydration *services.HydrationService
}

func NewDeviceController(push *services.PushService, hydration *services.HydrationService) *DeviceController {
	return &DeviceController{Push: push, Hydration: hydration}
}

func (h *DeviceController) RegisterDevice(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if h.Push == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "push notifications not configured"})
		return
	}

	var req struct {
		Platform string `json:"platform" binding:"required"`
		Token    string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dev, err := h.Push.RegisterDevice(userID, req.Platform, req.Token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"device": dev})
}

// SendReminder triggers an immediate hydration nudge carrying the current
// goal, intake and last drink time.
func (h *DeviceController) SendReminder(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if h.Push == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "push notifications not configured"})
		return
	}

	ctx := c.Request.Context()
	goal := h.Hydration.EffectiveGoalNow(ctx, userID)
	intake := h.Hydration.TodayIntake(ctx, userID)
	h.Push.NotifyReminder(userID, goal, intake, h.Hydration.LastDrinkAt(ctx, userID))
	c.Status(http.StatusAccepted)
}
