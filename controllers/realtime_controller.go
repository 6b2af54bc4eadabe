package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/ChathunKurera/hydratrack/services"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type RealtimeController struct {
	Hub       *services.RealtimeHub
	Hydration *services.HydrationService
}

func NewRealtimeController(hub *services.RealtimeHub, hydration *services.HydrationService) *RealtimeController {
	return &RealtimeController{Hub: hub, Hydration: hydration}
}

// Progress upgrades to a websocket and streams progress snapshots. An initial
// snapshot is pushed on connect; subsequent ones arrive after each drink
// mutation.
func (h *RealtimeController) Progress(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := &services.WSClient{UserID: userID, Conn: conn}
	h.Hub.Register(client)

	ctx := c.Request.Context()
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

	// Reads keep the connection alive and detect the close.
	go func() {
		defer h.Hub.Unregister(client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
