package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fileshare/internal/model"
	"fileshare/internal/repository"
)

// Default admin account seeded on first startup. The password comes from
// configuration; the default is only meant for local development.
const (
	AdminUsername = "admin"
	AdminEmail    = "admin@example.com"
)

// EnsureAdmin seeds the default admin account if it does not exist yet.
// It reports whether a new account was created.
func EnsureAdmin(ctx context.Context, users repository.UserRepository, password string) (bool, error) {
	_, err := users.FindByUsername(ctx, AdminUsername)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("check admin account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}

	admin := &model.User{
		Username:     AdminUsername,
		Email:        AdminEmail,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("create admin account: %w", err)
	}
	return true, nil
}
