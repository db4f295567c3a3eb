package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rahmasleam/NexusMenaV2/internal/config"
	"github.com/rahmasleam/NexusMenaV2/internal/middleware"
	"github.com/rahmasleam/NexusMenaV2/internal/modules/ai"
	"github.com/rahmasleam/NexusMenaV2/internal/modules/auth"
	"github.com/rahmasleam/NexusMenaV2/internal/modules/content"
	"github.com/rahmasleam/NexusMenaV2/internal/modules/market"
	"github.com/rahmasleam/NexusMenaV2/internal/modules/realtime"
	pkgcron "github.com/rahmasleam/NexusMenaV2/internal/pkg/cron"
	pkgredis "github.com/rahmasleam/NexusMenaV2/internal/pkg/redis"
	sessionpkg "github.com/rahmasleam/NexusMenaV2/internal/pkg/session"
	"github.com/rahmasleam/NexusMenaV2/internal/store"
	"go.uber.org/zap"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	logger *zap.Logger
	cancel context.CancelFunc

	sessions *sessionpkg.Registry
	authSvc  *auth.Service
	aiSvc    *ai.Service
	store    *store.ContentStore
	hub      *realtime.Hub
	sched    *pkgcron.Scheduler
}

// New initializes the application: config → Redis → services → routes.
// credential is the model-access key, read from the environment by the
// caller; it is handed to the AI gateway and kept nowhere else.
func New(logger *zap.Logger, cfg *config.AppConfig, credential string) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := applyRuntimeSettings(cfg, logger); err != nil {
		return nil, err
	}

	rc, err := pkgredis.Connect(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(buildCORSConfig(cfg)))

	sessions := sessionpkg.NewRegistry()
	authSvc := auth.NewService(sessions, logger)
	aiSvc := ai.NewService(cfg.AI, credential, logger)
	contentStore := store.NewSeeded()

	hub := realtime.NewHub(rc, logger, func(token string) bool {
		claims, err := middleware.ValidateTokenClaims(sessions, token)
		return err == nil && authSvc.IsAdmin(claims.UserID)
	})

	contentSvc := content.NewService(contentStore, aiSvc, hub, logger)
	marketSvc := market.NewService(aiSvc, hub, logger)

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	sched := pkgcron.New()
	registerCronJobs(sched, marketSvc, contentStore, logger)
	go sched.Start(ctx)

	app := &App{
		cfg:      cfg,
		router:   router,
		logger:   logger,
		cancel:   cancel,
		sessions: sessions,
		authSvc:  authSvc,
		aiSvc:    aiSvc,
		store:    contentStore,
		hub:      hub,
		sched:    sched,
	}
	app.registerRoutes(rc, contentSvc, marketSvc)

	return app, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return a.cfg.Addr() }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown cleans up background goroutines.
func (a *App) Shutdown() { a.cancel() }

var processStart = time.Now()
