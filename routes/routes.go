package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ChathunKurera/hydratrack/controllers"
	"github.com/ChathunKurera/hydratrack/middlewares"
)

// Controllers bundles every handler the router mounts.
type Controllers struct {
	Auth         *controllers.AuthController
	Profile      *controllers.ProfileController
	Drinks       *controllers.DrinkController
	Goals        *controllers.GoalController
	Achievements *controllers.AchievementController
	Insights     *controllers.InsightsController
	Devices      *controllers.DeviceController
	Realtime     *controllers.RealtimeController
}

func SetupRouter(ctl Controllers) *gin.Engine {
	r := gin.Default()

	// Public routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", ctl.Auth.Register)
		auth.POST("/login", ctl.Auth.Login)
	}
	r.GET("/goal-breakdown", ctl.Profile.GetGoalBreakdown)
	r.GET("/achievements/catalog", ctl.Achievements.GetCatalog)
	r.GET("/drinks/presets", ctl.Drinks.GetPresets)

	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())
	{
		api.GET("/profile", ctl.Profile.GetProfile)
		api.POST("/profile", ctl.Profile.CreateProfile)
		api.PUT("/profile", ctl.Profile.UpdateProfile)

		api.POST("/drinks", ctl.Drinks.AddDrink)
		api.PUT("/drinks/:id", ctl.Drinks.EditDrink)
		api.DELETE("/drinks/:id", ctl.Drinks.DeleteDrink)
		api.GET("/drinks/today", ctl.Drinks.GetTodayDrinks)
		api.GET("/drinks/last7days", ctl.Drinks.GetLast7Days)

		api.GET("/goal/today", ctl.Goals.GetTodayGoal)
		api.PUT("/goal/custom", ctl.Goals.SetCustomGoal)
		api.DELETE("/goal/custom", ctl.Goals.ClearCustomGoal)
		api.GET("/goal/override", ctl.Goals.GetTodayOverride)
		api.PUT("/goal/override", ctl.Goals.SetTodayOverride)
		api.DELETE("/goal/override", ctl.Goals.ClearTodayOverride)
		api.GET("/goal/adjustment", ctl.Goals.GetAdjustmentSuggestion)
		api.POST("/goal/adjustment/apply", ctl.Goals.ApplyAdjustment)
		api.GET("/goal/completion", ctl.Goals.GetCompletionData)
		api.GET("/goal/streak", ctl.Goals.GetStreak)

		api.GET("/achievements", ctl.Achievements.GetUnlocked)
		api.POST("/achievements/check", ctl.Achievements.CheckAchievements)
		api.GET("/achievements/new-count", ctl.Achievements.GetNewCount)
		api.POST("/achievements/seen", ctl.Achievements.MarkSeen)

		api.GET("/insights/weekly", ctl.Insights.GetWeekly)
		api.GET("/insights/monthly", ctl.Insights.GetMonthly)
		api.GET("/insights/hourly", ctl.Insights.GetHourlyPatterns)
		api.GET("/insights/tips", ctl.Insights.GetTips)
		api.POST("/insights/email-summary", ctl.Insights.SendWeeklyEmail)

		api.POST("/devices", ctl.Devices.RegisterDevice)
		api.POST("/devices/reminder", ctl.Devices.SendReminder)

		api.GET("/ws/progress", ctl.Realtime.Progress)
	}

	return r
}
