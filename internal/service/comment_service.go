package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fileshare/internal/auth"
	apperrors "fileshare/internal/errors"
	"fileshare/internal/model"
	"fileshare/internal/repository"
)

// CommentService handles creating, listing and deleting comments.
type CommentService interface {
	Create(ctx context.Context, fileID, authorID uint, content string) (*model.Comment, error)
	ListByFile(ctx context.Context, fileID uint) ([]model.Comment, error)
	Delete(ctx context.Context, id uint, requester *auth.Claims) error
}

type commentService struct {
	comments repository.CommentRepository
	files    repository.FileRepository
}

// NewCommentService builds a CommentService.
func NewCommentService(comments repository.CommentRepository, files repository.FileRepository) CommentService {
	return &commentService{comments: comments, files: files}
}

// Create posts a comment against an existing file.
func (s *commentService) Create(ctx context.Context, fileID, authorID uint, content string) (*model.Comment, error) {
	if _, err := s.files.FindByID(ctx, fileID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFileNotFound
		}
		return nil, fmt.Errorf("find file: %w", err)
	}

	comment := &model.Comment{
		FileID:  fileID,
		UserID:  &authorID,
		Content: content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	// reload with the author joined for the response
	created, err := s.comments.FindByID(ctx, comment.ID)
	if err != nil {
		return comment, nil
	}
	return created, nil
}

func (s *commentService) ListByFile(ctx context.Context, fileID uint) ([]model.Comment, error) {
	return s.comments.ListByFile(ctx, fileID)
}

// Delete removes a comment after an owner-or-admin check.
func (s *commentService) Delete(ctx context.Context, id uint, requester *auth.Claims) error {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCommentNotFound
		}
		return fmt.Errorf("find comment: %w", err)
	}

	if !ownerOrAdmin(requester, comment.UserID) {
		return apperrors.ErrNotOwner
	}

	if err := s.comments.Delete(ctx, comment.ID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
