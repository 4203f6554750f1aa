package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"fileshare/internal/auth"
	apperrors "fileshare/internal/errors"
	"fileshare/internal/model"
	"fileshare/internal/repository"
)

const (
	statsCacheKey = "admin:stats"
	statsCacheTTL = 30 * time.Second
)

// Stats holds entity counts for the admin dashboard.
type Stats struct {
	TotalUsers    int64 `json:"total_users"`
	TotalFiles    int64 `json:"total_files"`
	TotalComments int64 `json:"total_comments"`
}

// AdminService handles user management and stats, all admin-only.
type AdminService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateRole(ctx context.Context, id uint, role string) error
	DeleteUser(ctx context.Context, id uint, requester *auth.Claims) error
	Stats(ctx context.Context) (*Stats, error)
}

type adminService struct {
	users    repository.UserRepository
	files    repository.FileRepository
	comments repository.CommentRepository
	cache    Cache
}

// NewAdminService builds an AdminService over the three entity repositories.
func NewAdminService(users repository.UserRepository, files repository.FileRepository, comments repository.CommentRepository, cache Cache) AdminService {
	return &adminService{users: users, files: files, comments: comments, cache: cache}
}

func (s *adminService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// UpdateRole sets a user's role to one of the two enumerated values.
func (s *adminService) UpdateRole(ctx context.Context, id uint, role string) error {
	if !model.ValidRole(role) {
		return apperrors.ErrInvalidRole
	}

	if _, err := s.users.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if err := s.users.UpdateRole(ctx, id, role); err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	return nil
}

// DeleteUser removes an account. An admin may not delete their own account;
// that would orphan the token the request arrived with. Files and comments of
// the deleted user stay behind with their owner reference nulled out.
func (s *adminService) DeleteUser(ctx context.Context, id uint, requester *auth.Claims) error {
	if requester != nil && requester.UserID == id {
		return apperrors.ErrSelfDelete
	}

	if _, err := s.users.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// Stats returns entity counts, cached briefly so an admin dashboard polling
// the endpoint does not hammer the store.
func (s *adminService) Stats(ctx context.Context) (*Stats, error) {
	if data, _ := s.cache.Get(ctx, statsCacheKey); data != nil {
		var cached Stats
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	files, err := s.files.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count files: %w", err)
	}
	comments, err := s.comments.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}

	stats := &Stats{TotalUsers: users, TotalFiles: files, TotalComments: comments}
	if payload, err := json.Marshal(stats); err == nil {
		_ = s.cache.Set(ctx, statsCacheKey, payload, statsCacheTTL)
	}
	return stats, nil
}
