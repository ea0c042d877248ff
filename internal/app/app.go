package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/focusgrove/focusgrove-backend/internal/bus"
	"github.com/focusgrove/focusgrove-backend/internal/db"
	"github.com/focusgrove/focusgrove-backend/internal/gamification"
	"github.com/focusgrove/focusgrove-backend/internal/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
	Bus      bus.Bus
	cancel   context.CancelFunc
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("database automigrate: %w", err)
	}
	theDB := pg.DB()

	var factBus bus.Bus
	switch cfg.BusDriver {
	case "redis":
		factBus, err = bus.NewRedisBus(log)
		if err != nil {
			log.Sync()
			return nil, fmt.Errorf("init redis bus: %w", err)
		}
	default:
		factBus = bus.NewMemoryBus(log)
	}

	reposet := wireRepos(theDB, log)

	serviceset, err := wireServices(theDB, log, cfg, reposet, factBus)
	if err != nil {
		log.Sync()
		return nil, err
	}

	handlerset := wireHandlers(log, serviceset)
	middlewareset := wireMiddleware(log, serviceset)
	router := wireRouter(handlerset, middlewareset)

	return &App{
		Log:      log,
		DB:       theDB,
		Router:   router,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
		Bus:      factBus,
	}, nil
}

// Start launches the background machinery: seed catalog, fact consumer and
// the challenge period rollover.
func (a *App) Start() error {
	if a == nil || a.cancel != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	if a.Cfg.SeedPath != "" {
		seeds, err := gamification.LoadSeedFile(a.Cfg.SeedPath)
		if err != nil {
			return err
		}
		seedCtx, seedCancel := context.WithTimeout(ctx, 30*time.Second)
		defer seedCancel()
		if err := a.Services.Seeder.Apply(seedCtx, seeds, time.Now().UTC()); err != nil {
			return fmt.Errorf("apply seeds: %w", err)
		}
	}

	if err := a.Services.FactConsumer.Start(ctx); err != nil {
		return fmt.Errorf("start fact consumer: %w", err)
	}
	go a.Services.Rollover.Run(ctx)
	return nil
}

func (a *App) Run(addr string) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.Bus != nil {
		_ = a.Bus.Close()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
