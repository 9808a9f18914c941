package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ranked_arena_backend/internal/config"
	"ranked_arena_backend/internal/controller"
	"ranked_arena_backend/internal/repository"
	"ranked_arena_backend/internal/service"
	"ranked_arena_backend/pkg/database"
	"ranked_arena_backend/pkg/logger"
	"ranked_arena_backend/pkg/monitoring"
	"ranked_arena_backend/pkg/security"
	"ranked_arena_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user     *repository.UserRepository
	question *repository.QuestionRepository
	run      *repository.RunRepository
	rating   *repository.RatingRepository
}

type services struct {
	auth     *service.AuthService
	arena    *service.ArenaService
	rating   *service.RatingService
	question *service.QuestionService
}

type controllers struct {
	auth     *controller.AuthController
	arena    *controller.ArenaController
	ladder   *controller.LadderController
	question *controller.QuestionController
	health   *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		question: repository.NewQuestionRepository(db),
		run:      repository.NewRunRepository(db),
		rating:   repository.NewRatingRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.arena = service.NewArenaService(repos.run, repos.question, repos.rating, rdb, cfg, db)
	s.rating = service.NewRatingService(repos.run, repos.rating, rdb, cfg, db)
	s.question = service.NewQuestionService(repos.question)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		arena:    controller.NewArenaController(s.arena, s.rating),
		ladder:   controller.NewLadderController(s.rating),
		question: controller.NewQuestionController(s.question),
		health:   controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks runs the expiry sweep that moves over-budget runs to
// expired without waiting for an answer submission to notice.
func (a *App) startBackgroundTasks(s *services) {
	go func() {
		interval := time.Duration(a.Config.Arena.ExpirySweepSec) * time.Second
		ticker := time.NewTicker(interval)
		for range ticker.C {
			if err := s.arena.ExpireOverdueRuns(); err != nil {
				logger.Log.Error("run expiry sweep error", zap.Error(err))
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("ranked-arena", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	app.registerRoutes(router, controllers, repos, cfg)

	app.startBackgroundTasks(services)

	return app
}

// ReloadConfig swaps in freshly parsed settings on a config file change.
// Only values read per-request (arena tuning, rate thresholds) take effect;
// connections and listeners keep their startup configuration.
func (a *App) ReloadConfig(cfg *config.Config) {
	*a.Config = *cfg
	logger.Log.Info("Configuration reloaded")
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
