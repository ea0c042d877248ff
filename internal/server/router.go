package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/focusgrove/focusgrove-backend/internal/handlers"
	"github.com/focusgrove/focusgrove-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler         *handlers.AuthHandler
	AuthMiddleware      *middleware.AuthMiddleware
	TaskHandler         *handlers.TaskHandler
	WorkspaceHandler    *handlers.WorkspaceHandler
	PomodoroHandler     *handlers.PomodoroHandler
	GamificationHandler *handlers.GamificationHandler
	StoreHandler        *handlers.StoreHandler
	GardenHandler       *handlers.GardenHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Refresh-Token"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)
	router.POST("/refresh", cfg.AuthHandler.Refresh)

	// Protected
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	protected.POST("/logout", cfg.AuthHandler.Logout)

	protected.POST("/workspaces", cfg.WorkspaceHandler.Create)
	protected.GET("/workspaces", cfg.WorkspaceHandler.List)
	protected.GET("/workspaces/:id", cfg.WorkspaceHandler.Get)
	protected.DELETE("/workspaces/:id", cfg.WorkspaceHandler.Delete)

	protected.POST("/tasks", cfg.TaskHandler.Create)
	protected.GET("/tasks", cfg.TaskHandler.List)
	protected.GET("/tasks/:id", cfg.TaskHandler.Get)
	protected.PATCH("/tasks/:id/status", cfg.TaskHandler.UpdateStatus)
	protected.DELETE("/tasks/:id", cfg.TaskHandler.Delete)

	protected.POST("/pomodoro/sessions", cfg.PomodoroHandler.Start)
	protected.POST("/pomodoro/sessions/:id/complete", cfg.PomodoroHandler.Complete)
	protected.GET("/pomodoro/sessions", cfg.PomodoroHandler.List)

	protected.GET("/gamification/profile", cfg.GamificationHandler.GetProfile)
	protected.POST("/gamification/daily-reward", cfg.GamificationHandler.ClaimDaily)
	protected.POST("/gamification/challenges", cfg.GamificationHandler.CreateChallenge)
	protected.GET("/gamification/challenges", cfg.GamificationHandler.ListChallenges)
	protected.DELETE("/gamification/challenges/:id", cfg.GamificationHandler.DeleteChallenge)
	protected.GET("/gamification/badges", cfg.GamificationHandler.ListBadges)
	protected.GET("/gamification/badge-definitions", cfg.GamificationHandler.ListBadgeDefinitions)
	protected.GET("/gamification/history", cfg.GamificationHandler.ListHistory)

	protected.GET("/store/items", cfg.StoreHandler.ListItems)
	protected.POST("/store/items/:id/purchase", cfg.StoreHandler.Purchase)

	protected.GET("/garden/plants", cfg.GardenHandler.ListPlants)
	protected.POST("/garden/plants/:id/select", cfg.GardenHandler.SelectPlant)
	protected.POST("/garden/water", cfg.GardenHandler.Water)

	return router
}
