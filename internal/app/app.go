package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aquademy/coachcore-backend/internal/db"
	"github.com/aquademy/coachcore-backend/internal/platform/logger"
	"github.com/aquademy/coachcore-backend/internal/platform/tracing"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Clients  Clients
	Services Services

	tracingShutdown func(context.Context) error
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

	tracingShutdown := tracing.Init(context.Background(), log, tracing.Config{
		ServiceName: "coachcore-backend",
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	reposet := wireRepos(theDB, log)

	clientset, err := wireClients(log)
	if err != nil {
		log.Sync()
		return nil, err
	}

	serviceset, err := wireServices(theDB, log, cfg, reposet, clientset)
	if err != nil {
		log.Sync()
		return nil, err
	}

	handlerset := wireHandlers(log, serviceset)
	router := wireRouter(log, handlerset)

	return &App{
		Log:             log,
		DB:              theDB,
		Router:          router,
		Cfg:             cfg,
		Repos:           reposet,
		Clients:         clientset,
		Services:        serviceset,
		tracingShutdown: tracingShutdown,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Starting HTTP server", "addr", a.Cfg.ServerAddr)
	return a.Router.Run(a.Cfg.ServerAddr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.tracingShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := a.tracingShutdown(ctx); err != nil {
			a.Log.Warn("Tracing shutdown failed", "error", err)
		}
		cancel()
		a.tracingShutdown = nil
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
