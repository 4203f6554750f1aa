package main

import (
	"context"
	"log"
	"net/http"

	"fileshare/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"fileshare/internal/auth"
	"fileshare/internal/cache"
	"fileshare/internal/config"
	"fileshare/internal/db"
	"fileshare/internal/handler"
	"fileshare/internal/model"
	"fileshare/internal/repository"
	"fileshare/internal/router"
	"fileshare/internal/service"
	"fileshare/internal/storage"
)

// @title FileShare API
// @version 1.0
// @description File sharing service with uploads, comments, and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	// The served swagger host can differ from the bind address behind a proxy
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewPostgres(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.File{},
		&model.Comment{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	fileRepo := repository.NewFileRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)

	// Seed the default admin account on first startup
	if created, err := service.EnsureAdmin(context.Background(), userRepo, cfg.AdminPassword); err != nil {
		log.Fatalf("seed admin: %v", err)
	} else if created {
		log.Printf("seeded default admin account %q", service.AdminUsername)
	}

	// Initialize auth components and storage
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	diskStore := storage.NewDiskStore(cfg.UploadDir)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	fileService := service.NewFileService(fileRepo, diskStore, cacheClient)
	commentService := service.NewCommentService(commentRepo, fileRepo)
	adminService := service.NewAdminService(userRepo, fileRepo, commentRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	fileHandler := handler.NewFileHandler(fileService)
	commentHandler := handler.NewCommentHandler(commentService)
	adminHandler := handler.NewAdminHandler(adminService)

	// Register routes
	router.Register(
		e,
		cfg,
		jwtService,
		authHandler,
		fileHandler,
		commentHandler,
		adminHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
