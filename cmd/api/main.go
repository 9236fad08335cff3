package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/akademika/siakad-api/api/swagger"
	"github.com/akademika/siakad-api/internal/handler"
	"github.com/akademika/siakad-api/internal/middleware"
	"github.com/akademika/siakad-api/internal/models"
	"github.com/akademika/siakad-api/internal/repository"
	"github.com/akademika/siakad-api/internal/service"
	"github.com/akademika/siakad-api/pkg/cache"
	"github.com/akademika/siakad-api/pkg/config"
	"github.com/akademika/siakad-api/pkg/database"
	"github.com/akademika/siakad-api/pkg/logger"
	corsmiddleware "github.com/akademika/siakad-api/pkg/middleware/cors"
	reqidmiddleware "github.com/akademika/siakad-api/pkg/middleware/requestid"
)

// @title SIAKAD Enrollment API
// @version 1.0.0
// @description Course enrollment, transcript and grade service
// @BasePath /api/v1
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, transcript cache disabled", "error", err)
		redisClient = nil
	}

	enrollments := repository.NewEnrollmentRepository(db)
	semesters := repository.NewSemesterRepository(db)
	classes := repository.NewClassRepository(db)
	courses := repository.NewCourseRepository(db)
	students := repository.NewStudentRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metrics := service.NewMetricsService()
	tokens := service.NewTokenService(cfg.JWT)
	enrollmentSvc := service.NewEnrollmentService(enrollments, semesters, classes, courses, cacheRepo, metrics, nil, logr)
	transcriptSvc := service.NewTranscriptService(enrollments, students, cacheRepo, cfg.Academic.TranscriptCacheTTL, metrics, logr)
	gradeSvc := service.NewGradeService(enrollments, cacheRepo, metrics, nil, logr)

	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc)
	transcriptHandler := handler.NewTranscriptHandler(transcriptSvc, models.NormalizeLocale(cfg.Academic.DefaultLocale))
	gradeHandler := handler.NewGradeHandler(gradeSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(tokens))
	{
		api.POST("/enrollments", enrollmentHandler.Register)
		api.DELETE("/enrollments", enrollmentHandler.Unregister)
		api.GET("/semesters/:id/enrollment-history", enrollmentHandler.History)
		api.GET("/students/:id/transcript", transcriptHandler.Get)
		api.PUT("/grades", gradeHandler.Update)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
