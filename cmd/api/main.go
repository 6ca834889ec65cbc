package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/pranav-ms/uni-records-api/api/swagger"
	"github.com/pranav-ms/uni-records-api/internal/handler"
	"github.com/pranav-ms/uni-records-api/internal/middleware"
	"github.com/pranav-ms/uni-records-api/internal/models"
	"github.com/pranav-ms/uni-records-api/internal/repository"
	"github.com/pranav-ms/uni-records-api/internal/service"
	"github.com/pranav-ms/uni-records-api/pkg/cache"
	"github.com/pranav-ms/uni-records-api/pkg/config"
	"github.com/pranav-ms/uni-records-api/pkg/database"
	"github.com/pranav-ms/uni-records-api/pkg/logger"
	corsmiddleware "github.com/pranav-ms/uni-records-api/pkg/middleware/cors"
	reqidmiddleware "github.com/pranav-ms/uni-records-api/pkg/middleware/requestid"
	"github.com/pranav-ms/uni-records-api/pkg/storage"
)

// @title University Records API
// @version 1.0.0
// @description Course registration, grading and academic records backend
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	cacheRepo := repository.NewCacheRepository(nil)
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedis(context.Background(), cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, timetable caching disabled", zap.Error(err))
		} else {
			defer redisClient.Close() //nolint:errcheck
			cacheRepo = repository.NewCacheRepository(redisClient)
		}
	}

	files, err := storage.NewLocalStorage(cfg.Materials.StorageDir)
	if err != nil {
		logr.Fatal("failed to init material storage", zap.Error(err))
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	reevaluationRepo := repository.NewReevaluationRepository(db)
	materialRepo := repository.NewMaterialRepository(db)

	metrics := service.NewMetricsService()
	authService := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userService := service.NewUserService(userRepo, validate, logr)
	catalogService := service.NewCatalogService(catalogRepo, userRepo, validate, logr)
	timetableService := service.NewTimetableService(enrollmentRepo, cacheRepo, cfg.Timetable.CacheTTL, logr)
	registrationService := service.NewRegistrationService(enrollmentRepo, timetableService, metrics, validate, logr)
	gradingService := service.NewGradingService(enrollmentRepo, catalogRepo, metrics, validate, logr)
	reevaluationService := service.NewReevaluationService(reevaluationRepo, enrollmentRepo, validate, logr)
	recordsService := service.NewRecordsService(enrollmentRepo, logr)
	materialService := service.NewMaterialService(materialRepo, catalogRepo, files, cfg.Materials.MaxFileSizeBytes, validate, logr)

	authHandler := handler.NewAuthHandler(authService)
	studentHandler := handler.NewStudentHandler(registrationService, timetableService, recordsService, reevaluationService, catalogService, materialService)
	facultyHandler := handler.NewFacultyHandler(gradingService, recordsService, materialService)
	adminHandler := handler.NewAdminHandler(userService, catalogService, reevaluationService)
	parentHandler := handler.NewParentHandler(userService, recordsService, timetableService)

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
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	student := api.Group("/student", middleware.JWT(authService), middleware.RequireRoles(models.RoleStudent))
	{
		student.POST("/register", studentHandler.Register)
		student.GET("/classes", studentHandler.Classes)
		student.GET("/timetable", studentHandler.Timetable)
		student.GET("/records", studentHandler.Records)
		student.POST("/reevaluations", studentHandler.SubmitReevaluation)
		student.GET("/courses/:code/materials", studentHandler.Materials)
	}

	faculty := api.Group("/faculty", middleware.JWT(authService), middleware.RequireRoles(models.RoleFaculty))
	{
		faculty.POST("/marks", facultyHandler.WriteMarks)
		faculty.POST("/attendance", facultyHandler.RecordAttendance)
		faculty.GET("/classes/:id/roster", facultyHandler.Roster)
		faculty.GET("/classes/:id/roster/export", facultyHandler.ExportRoster)
		faculty.POST("/courses/:code/materials", facultyHandler.UploadMaterial)
	}

	admin := api.Group("/admin", middleware.JWT(authService), middleware.RequireRoles(models.RoleAdmin))
	{
		admin.POST("/users", adminHandler.CreateUser)
		admin.POST("/courses", adminHandler.CreateCourse)
		admin.POST("/classes", adminHandler.OpenClass)
		admin.GET("/reevaluations", adminHandler.PendingReevaluations)
		admin.POST("/reevaluations/decide", adminHandler.DecideReevaluation)
	}

	parent := api.Group("/parent", middleware.JWT(authService), middleware.RequireRoles(models.RoleParent))
	{
		parent.GET("/records", parentHandler.ChildRecords)
		parent.GET("/timetable", parentHandler.ChildTimetable)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
