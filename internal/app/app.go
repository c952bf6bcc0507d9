package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	redisclient "github.com/yungbote/linguabridge-backend/internal/clients/redis"
	"github.com/yungbote/linguabridge-backend/internal/content"
	"github.com/yungbote/linguabridge-backend/internal/db"
	"github.com/yungbote/linguabridge-backend/internal/logger"
	"github.com/yungbote/linguabridge-backend/internal/observability"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services

	cache        *redisclient.SummaryCache
	otelShutdown func(context.Context) error
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

	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Env,
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

	catalog, err := content.Load()
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("load content catalog: %w", err)
	}

	reposet := wireRepos(theDB, log)
	serviceset, cache := wireServices(theDB, log, catalog, reposet)

	// Seed or refresh the unit/activity tables from the embedded catalog
	// before taking traffic. The sync is idempotent.
	syncCtx, cancelSync := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelSync()
	if err := serviceset.ContentSync.Sync(syncCtx); err != nil {
		log.Sync()
		return nil, fmt.Errorf("content sync: %w", err)
	}

	handlerset := wireHandlers(log, content.NewResolver(catalog), reposet, serviceset)
	router := wireRouter(log, cfg, handlerset)

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       router,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		cache:        cache,
		otelShutdown: otelShutdown,
	}, nil
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
	if a.cache != nil {
		_ = a.cache.Close()
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = a.otelShutdown(ctx)
		cancel()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
