package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ChathunKurera/hydratrack/services"
	"github.com/ChathunKurera/hydratrack/utils"
)

type InsightsController struct {
	Svc *services.InsightsService
}

func NewInsightsController(svc *services.InsightsService) *InsightsController {
	return &InsightsController{Svc: svc}
}

func offsetQuery(c *gin.Context, name string) (int, bool) {
	v := c.Query(name)
	if v == "" {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func (h *InsightsController) GetWeekly(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	weeksAgo, ok := offsetQuery(c, "weeks_ago")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid weeks_ago"})
		return
	}

	insights := h.Svc.GetWeeklyInsights(c.Request.Context(), userID, weeksAgo)
	c.JSON(http.StatusOK, gin.H{
		"insights":   insights,
		"week_label": insights.WeekLabel(),
	})
}

func (h *InsightsController) GetMonthly(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	monthsAgo, ok := offsetQuery(c, "months_ago")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid months_ago"})
		return
	}

	insights := h.Svc.GetMonthlyInsights(c.Request.Context(), userID, monthsAgo)
	c.JSON(http.StatusOK, gin.H{
		"insights":    insights,
		"month_label": insights.MonthLabel(),
	})
}

func (h *InsightsController) GetHourlyPatterns(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"patterns": h.Svc.GetHourlyPatterns(c.Request.Context(), userID)})
}

func (h *InsightsController) GetTips(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx := c.Request.Context()
	weekly := h.Svc.GetWeeklyInsights(ctx, userID, 0)
	c.JSON(http.StatusOK, gin.H{"tips": h.Svc.GenerateInsightTips(ctx, userID, weekly)})
}

// SendWeeklyEmail mails the current weekly digest to the authenticated user.
func (h *InsightsController) SendWeeklyEmail(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	email, ok := c.Get("email")
	addr, _ := email.(string)
	if !ok || addr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no email on account"})
		return
	}

	ctx := c.Request.Context()
	weekly := h.Svc.GetWeeklyInsights(ctx, userID, 0)
	tips := h.Svc.GenerateInsightTips(ctx, userID, weekly)
	if err := utils.SendWeeklySummaryEmail(addr, weekly, tips); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent_to": addr})
}
