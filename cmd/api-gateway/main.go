package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/campushq/scheduling-api/api/swagger"
	"github.com/campushq/scheduling-api/internal/handler"
	"github.com/campushq/scheduling-api/internal/middleware"
	"github.com/campushq/scheduling-api/internal/models"
	"github.com/campushq/scheduling-api/internal/repository"
	"github.com/campushq/scheduling-api/internal/scheduling"
	"github.com/campushq/scheduling-api/internal/service"
	"github.com/campushq/scheduling-api/internal/store"
	"github.com/campushq/scheduling-api/pkg/cache"
	"github.com/campushq/scheduling-api/pkg/config"
	"github.com/campushq/scheduling-api/pkg/database"
	"github.com/campushq/scheduling-api/pkg/jobs"
	"github.com/campushq/scheduling-api/pkg/logger"
	corsmiddleware "github.com/campushq/scheduling-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campushq/scheduling-api/pkg/middleware/requestid"
)

// @title Campus Scheduling API
// @version 1.0.0
// @description Classroom ledgers, schedule conflict checking and exam booking
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

	validate := validator.New()
	metrics := service.NewMetricsService()

	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect redis", "error", err)
		}
		defer redisClient.Close() //nolint:errcheck
	}
	var cacheRepo service.CacheRepository
	if redisClient != nil {
		cacheRepo = repository.NewCacheRepository(redisClient)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, cfg.Cache.Enabled)

	var db *sqlx.DB
	var auditRepo *repository.AuditRepository
	if cfg.Audit.Enabled {
		db, err = database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect postgres", "error", err)
		}
		defer db.Close() //nolint:errcheck
		auditRepo = repository.NewAuditRepository(db)
	}
	var auditWriter service.BookingEventWriter
	if auditRepo != nil {
		auditWriter = auditRepo
	}
	auditSvc, auditQueue := service.NewAuditService(auditWriter, jobs.QueueConfig{
		Workers:    cfg.Audit.Workers,
		MaxRetries: cfg.Audit.MaxRetries,
		RetryDelay: cfg.Audit.RetryDelay,
		Logger:     logr,
	})
	if auditQueue != nil {
		auditQueue.Start(context.Background())
		defer auditQueue.Stop()
	}

	book := scheduling.NewBook()
	classrooms := store.NewClassroomStore()
	directory := store.NewDirectoryStore()
	exams := store.NewExamStore()
	users := store.NewUserStore()
	tokens := store.NewTokenStore()

	classroomSvc := service.NewClassroomService(classrooms, book, cacheSvc, auditSvc, metrics, validate, logr)
	scheduleSvc := service.NewScheduleService(book, directory, classrooms, cacheSvc, auditSvc, metrics, validate, logr)
	examSvc := service.NewExamService(exams, book, directory, classrooms, auditSvc, metrics, validate, logr)
	directorySvc := service.NewDirectoryService(directory, validate, logr)
	authSvc := service.NewAuthService(users, tokens, validate, logr, service.AuthConfig{
		Secret:        cfg.JWT.Secret,
		AccessExpiry:  cfg.JWT.Expiration,
		RefreshExpiry: cfg.JWT.RefreshExpiration,
		Issuer:        cfg.JWT.Issuer,
	})

	seedAdminUser(cfg, users, logr)
	if cfg.Seed.Classrooms {
		seedClassrooms(classrooms, book, logr)
	}

	classroomHandler := handler.NewClassroomHandler(classroomSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)
	examHandler := handler.NewExamHandler(examSvc, cfg.Exports.Enabled)
	directoryHandler := handler.NewDirectoryHandler(directorySvc)
	authHandler := handler.NewAuthHandler(authSvc)
	metricsHandler := handler.NewMetricsHandler(metrics, db, redisClient)
	var eventReader handler.BookingEventReader
	if auditRepo != nil {
		eventReader = auditRepo
	}
	auditHandler := handler.NewAuditHandler(eventReader)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Docs.Enabled {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", middleware.JWT(authSvc), authHandler.Logout)
	auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)

	protected := middleware.JWT(authSvc)

	api.GET("/classrooms", classroomHandler.List)
	api.GET("/classrooms/:id", classroomHandler.Get)
	api.POST("/classrooms", protected, classroomHandler.Create)
	api.POST("/classrooms/:id/allocate", protected, classroomHandler.Allocate)
	api.GET("/classrooms/:id/schedules", scheduleHandler.ListByClassroom)
	api.GET("/classrooms/:id/bookings", protected, auditHandler.ListByClassroom)

	api.GET("/schedules", scheduleHandler.List)
	api.GET("/schedules/:id", scheduleHandler.Get)
	api.POST("/schedules", protected, scheduleHandler.Create)
	api.PATCH("/schedules/:id", protected, scheduleHandler.Update)

	api.POST("/exams", protected, examHandler.Schedule)
	api.GET("/exams/:id", examHandler.Info)
	api.POST("/exams/:id/results", protected, examHandler.RecordResult)
	api.GET("/exams/:id/results/export", protected, examHandler.ExportResults)

	api.GET("/courses", directoryHandler.ListCourses)
	api.GET("/courses/:id", directoryHandler.GetCourse)
	api.POST("/courses", protected, directoryHandler.CreateCourse)
	api.GET("/courses/:id/exams", examHandler.ListByCourse)
	api.GET("/professors", directoryHandler.ListProfessors)
	api.GET("/professors/:id", directoryHandler.GetProfessor)
	api.POST("/professors", protected, directoryHandler.CreateProfessor)
	api.GET("/professors/:id/schedules", scheduleHandler.ListByProfessor)
	api.GET("/students", directoryHandler.ListStudents)
	api.GET("/students/:id", directoryHandler.GetStudent)
	api.POST("/students", protected, directoryHandler.CreateStudent)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func seedAdminUser(cfg *config.Config, users *store.UserStore, logr *zap.Logger) {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		logr.Sugar().Fatalw("failed to hash admin password", "error", err)
	}
	created := users.Create(models.User{
		ID:           uuid.NewString(),
		Email:        cfg.Admin.Email,
		FullName:     cfg.Admin.FullName,
		Role:         "admin",
		PasswordHash: string(hash),
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	})
	if created {
		logr.Sugar().Infow("seeded admin user", "email", cfg.Admin.Email)
	}
}

func seedClassrooms(classrooms *store.ClassroomStore, book *scheduling.Book, logr *zap.Logger) {
	for _, room := range []models.Classroom{
		{ID: "101", Location: "Main Building, Floor 1", Capacity: 40},
		{ID: "102", Location: "Main Building, Floor 1", Capacity: 40},
		{ID: "201", Location: "Main Building, Floor 2", Capacity: 60},
		{ID: "202", Location: "Main Building, Floor 2", Capacity: 60},
	} {
		if classrooms.Create(room) {
			book.RegisterClassroom(room.ID)
		}
	}
	logr.Sugar().Infow("seeded default classrooms", "count", 4)
}
