package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/iitkgp/timetable-solver/api/swagger"
	"github.com/iitkgp/timetable-solver/internal/audit"
	internalhandler "github.com/iitkgp/timetable-solver/internal/handler"
	internalmiddleware "github.com/iitkgp/timetable-solver/internal/middleware"
	"github.com/iitkgp/timetable-solver/internal/service"
	"github.com/iitkgp/timetable-solver/pkg/cache"
	"github.com/iitkgp/timetable-solver/pkg/config"
	"github.com/iitkgp/timetable-solver/pkg/database"
	"github.com/iitkgp/timetable-solver/pkg/logger"
	corsmiddleware "github.com/iitkgp/timetable-solver/pkg/middleware/cors"
	reqidmiddleware "github.com/iitkgp/timetable-solver/pkg/middleware/requestid"
	"github.com/iitkgp/timetable-solver/pkg/storage"
)

// @title Timetable Solver API
// @version 0.1.0
// @description Scheduling engine host: solve, reoptimize, validate, and recommend over a university timetable, plus timetable export.
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsSvc := service.NewMetricsService()
	metricsHandler := internalhandler.NewMetricsHandler(metricsSvc)

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to initialise database", "error", err)
	}
	defer db.Close()

	auditRepo := audit.NewRepository(db)

	var cacheCloser interface{ Close() error }
	var cacheRepo service.CacheRepository
	if client, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Sugar().Warnw("solve-result cache disabled", "error", err)
	} else {
		cacheCloser = client
		cacheRepo = cache.NewRepository(client, logr)
	}
	if cacheCloser != nil {
		defer cacheCloser.Close() //nolint:errcheck
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Scheduler.CacheTTL, logr, cacheRepo != nil)

	authSvc := service.NewAuthService(service.AuthConfig{
		Secret:   cfg.JWT.Secret,
		Issuer:   "timetable-solver",
		Audience: []string{"timetable-solver-clients"},
		Expiry:   cfg.JWT.Expiration,
	})

	solverSvc := service.NewSolverService(cacheSvc, metricsSvc, auditRepo, logr, cfg.Scheduler.SolveBudget, cfg.Scheduler.DefaultStrategy)
	validationSvc := service.NewValidationService()
	recommendationSvc := service.NewRecommendationService()
	solverHandler := internalhandler.NewSolverHandler(solverSvc, validationSvc, recommendationSvc)

	fileStore, err := storage.NewLocalStorage(cfg.Export.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init export storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Export.SignedURLSecret, cfg.Export.SignedURLTTL)
	exportHandler := internalhandler.NewExportHandler(auditRepo, fileStore, signer)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	secured := api.Group("")
	secured.Use(internalmiddleware.JWT(authSvc))
	secured.POST("/solve", solverHandler.Solve)
	secured.POST("/reoptimize", solverHandler.Reoptimize)

	optional := api.Group("")
	optional.Use(internalmiddleware.OptionalJWT(authSvc))
	optional.POST("/validate", solverHandler.Validate)
	optional.POST("/recommendations", solverHandler.Recommendations)

	exportGroup := api.Group("/schedules")
	exportGroup.Use(internalmiddleware.OptionalJWT(authSvc))
	exportGroup.GET("/:runId/export.csv", exportHandler.CSV)
	exportGroup.GET("/:runId/export.pdf", exportHandler.PDF)
	exportGroup.GET("/:runId/export-url", exportHandler.SignedDownloadURL)

	batchHandler := internalhandler.NewBatchHandler(solverSvc)
	secured.POST("/solve/batch", batchHandler.Solve)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
