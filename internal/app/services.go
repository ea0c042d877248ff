package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/focusgrove/focusgrove-backend/internal/bus"
	"github.com/focusgrove/focusgrove-backend/internal/facts"
	"github.com/focusgrove/focusgrove-backend/internal/gamification"
	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/services"
)

type Services struct {
	Auth         services.AuthService
	Task         services.TaskService
	Workspace    services.WorkspaceService
	Pomodoro     services.PomodoroService
	Gamification services.GamificationService
	Store        services.StoreService
	Garden       services.GardenService

	Engine       *gamification.Engine
	Seeder       *gamification.Seeder
	Rollover     *gamification.Rollover
	FactConsumer *facts.Consumer
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, factBus bus.Bus) (Services, error) {
	log.Info("Wiring services...")

	rules, err := gamification.LoadRules(cfg.RulesPath)
	if err != nil {
		return Services{}, fmt.Errorf("load reward rules: %w", err)
	}

	applicator := gamification.NewRewardApplicator(log, r.EarnedBadge, r.History)
	tracker := gamification.NewChallengeTracker(log, r.Challenge, r.ChallengeProgress, r.History, applicator)
	engine := gamification.NewEngine(log, db, rules, r.Profile, r.TaskStatistics, r.GlobalStatistics, r.History, tracker)
	seeder := gamification.NewSeeder(log, r.Challenge, r.BadgeDefinition, r.StoreItem)
	rollover := gamification.NewRollover(log, db, r.Challenge, r.ChallengeProgress, cfg.RolloverInterval)
	consumer := facts.NewConsumer(log, factBus, engine)

	authService := services.NewAuthService(
		db, log,
		r.User, r.UserToken, r.Profile, r.GlobalStatistics, r.Workspace,
		factBus,
		cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL,
	)

	return Services{
		Auth:         authService,
		Task:         services.NewTaskService(db, log, r.Task, r.Workspace, factBus),
		Workspace:    services.NewWorkspaceService(db, log, r.Workspace, r.Task),
		Pomodoro:     services.NewPomodoroService(db, log, r.Pomodoro, r.Task, factBus),
		Gamification: services.NewGamificationService(db, log, engine, r.Profile, r.Challenge, r.ChallengeProgress, r.EarnedBadge, r.BadgeDefinition, r.History),
		Store:        services.NewStoreService(db, log, r.StoreItem, r.Profile, r.Plant, r.History),
		Garden:       services.NewGardenService(db, log, r.Plant, r.Profile, r.History),
		Engine:       engine,
		Seeder:       seeder,
		Rollover:     rollover,
		FactConsumer: consumer,
	}, nil
}
