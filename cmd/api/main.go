package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/drivelink/instructor-api/api/swagger"
	"github.com/drivelink/instructor-api/internal/handler"
	"github.com/drivelink/instructor-api/internal/middleware"
	"github.com/drivelink/instructor-api/internal/models"
	"github.com/drivelink/instructor-api/internal/repository"
	"github.com/drivelink/instructor-api/internal/service"
	"github.com/drivelink/instructor-api/pkg/cache"
	"github.com/drivelink/instructor-api/pkg/config"
	"github.com/drivelink/instructor-api/pkg/database"
	"github.com/drivelink/instructor-api/pkg/logger"
	corsmiddleware "github.com/drivelink/instructor-api/pkg/middleware/cors"
	reqidmiddleware "github.com/drivelink/instructor-api/pkg/middleware/requestid"
)

// @title DriveLink Instructor API
// @version 1.0.0
// @description Weekly availability, time-off and booking feed for driving instructors
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
		logr.Sugar().Warnw("redis unavailable, save locks and hidden bookings disabled", "error", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	userRepo := repository.NewUserRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	timeOffRepo := repository.NewTimeOffRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	visibilityRepo := repository.NewVisibilityRepository(redisClient)
	saveLockRepo := repository.NewSaveLockRepository(redisClient, cfg.Availability.SaveLockTTL)

	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "drivelink-instructor-api",
	})
	scheduleSvc := service.NewScheduleService(scheduleRepo, saveLockRepo, metricsSvc, nil, logr)
	timeOffSvc := service.NewTimeOffService(timeOffRepo, nil, logr, cfg.Availability.DisabledDatesLimit)
	bookingSvc := service.NewBookingService(bookingRepo, visibilityRepo, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)
	timeOffHandler := handler.NewTimeOffHandler(timeOffSvc)
	bookingHandler := handler.NewBookingHandler(bookingSvc, cfg.Bookings.DefaultLimit)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", middleware.JWT(authSvc), authHandler.Logout)

	availability := api.Group("/availability")
	availability.Use(middleware.JWT(authSvc), middleware.RequireRoles(models.RoleInstructor))
	availability.GET("/schedule", scheduleHandler.Get)
	availability.PUT("/schedule", scheduleHandler.Replace)
	availability.POST("/schedule/bulk", scheduleHandler.BulkCreate)
	availability.DELETE("/schedule/:id", scheduleHandler.Delete)
	availability.GET("/time-off", timeOffHandler.List)
	availability.POST("/time-off", timeOffHandler.Create)
	availability.DELETE("/time-off/:id", timeOffHandler.Delete)
	availability.GET("/time-off/disabled-dates", timeOffHandler.DisabledDates)

	if cfg.Bookings.Enabled {
		bookings := api.Group("/bookings")
		bookings.Use(middleware.JWT(authSvc), middleware.RequireRoles(models.RoleInstructor, models.RoleStudent))
		bookings.GET("", bookingHandler.List)
		bookings.POST("/:id/hide", bookingHandler.Hide)
		bookings.DELETE("/:id/hide", bookingHandler.Unhide)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
