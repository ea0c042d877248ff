package app

import (
	"github.com/focusgrove/focusgrove-backend/internal/handlers"
	"github.com/focusgrove/focusgrove-backend/internal/logger"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	Task         *handlers.TaskHandler
	Workspace    *handlers.WorkspaceHandler
	Pomodoro     *handlers.PomodoroHandler
	Gamification *handlers.GamificationHandler
	Store        *handlers.StoreHandler
	Garden       *handlers.GardenHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:         handlers.NewAuthHandler(log, s.Auth),
		Task:         handlers.NewTaskHandler(log, s.Task),
		Workspace:    handlers.NewWorkspaceHandler(log, s.Workspace),
		Pomodoro:     handlers.NewPomodoroHandler(log, s.Pomodoro),
		Gamification: handlers.NewGamificationHandler(log, s.Gamification),
		Store:        handlers.NewStoreHandler(log, s.Store),
		Garden:       handlers.NewGardenHandler(log, s.Garden),
	}
}
