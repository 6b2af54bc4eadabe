package main

import (
	"log"
	"os"

	"github.com/ChathunKurera/hydratrack/config"
	"github.com/ChathunKurera/hydratrack/controllers"
	"github.com/ChathunKurera/hydratrack/routes"
	"github.com/ChathunKurera/hydratrack/services"
	"github.com/ChathunKurera/hydratrack/store"
	"github.com/ChathunKurera/hydratrack/utils"
)

func main() {
	config.InitDB()
	utils.InitMailer()

	st := store.NewGorm(config.DB)
	hydration := services.NewHydrationService(st)
	achievements := services.NewAchievementService(st, hydration)
	insights := services.NewInsightsService(st, hydration)
	auth := services.NewAuthService(config.DB)
	hub := services.NewRealtimeHub()

	push, err := services.NewPushService(config.DB)
	if err != nil {
		log.Printf("push notifications disabled: %v", err)
		push = nil
	}

	r := routes.SetupRouter(routes.Controllers{
		Auth:         controllers.NewAuthController(auth),
		Profile:      controllers.NewProfileController(hydration),
		Drinks:       controllers.NewDrinkController(hydration, achievements, push, hub),
		Goals:        controllers.NewGoalController(hydration),
		Achievements: controllers.NewAchievementController(achievements),
		Insights:     controllers.NewInsightsController(insights),
		Devices:      controllers.NewDeviceController(push, hydration),
		Realtime:     controllers.NewRealtimeController(hub, hydration),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
