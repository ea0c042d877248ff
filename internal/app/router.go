package app

import (
	"github.com/gin-gonic/gin"

	"github.com/focusgrove/focusgrove-backend/internal/server"
)

func wireRouter(h Handlers, m Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthHandler:         h.Auth,
		AuthMiddleware:      m.Auth,
		TaskHandler:         h.Task,
		WorkspaceHandler:    h.Workspace,
		PomodoroHandler:     h.Pomodoro,
		GamificationHandler: h.Gamification,
		StoreHandler:        h.Store,
		GardenHandler:       h.Garden,
	})
}
