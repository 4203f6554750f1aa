package main

import (
	"context"
	"log"

	"fileshare/internal/config"
	"fileshare/internal/db"
	"fileshare/internal/model"
	"fileshare/internal/repository"
	"fileshare/internal/service"
)

// Seeds the default admin account without starting the server. Useful when
// bootstrapping a fresh database from a deploy pipeline.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewPostgres(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.File{}, &model.Comment{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	created, err := service.EnsureAdmin(context.Background(), userRepo, cfg.AdminPassword)
	if err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	if created {
		log.Printf("Admin account %q created", service.AdminUsername)
	} else {
		log.Printf("Admin account %q already present, nothing to do", service.AdminUsername)
	}
}
