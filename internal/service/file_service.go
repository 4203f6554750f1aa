package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fileshare/internal/auth"
	apperrors "fileshare/internal/errors"
	"fileshare/internal/model"
	"fileshare/internal/repository"
	"fileshare/internal/storage"
)

// MaxUploadSize is the cap on a single uploaded file (50 MiB). Oversized
// uploads are rejected before anything is persisted.
const MaxUploadSize = 50 << 20

const fileCacheTTL = 5 * time.Minute

// Upload carries the metadata and content of an incoming file.
type Upload struct {
	OriginalName string
	MimeType     string
	Size         int64
	Content      io.Reader
}

// FileService handles the file lifecycle: upload, read, delete.
type FileService interface {
	Upload(ctx context.Context, up Upload, uploaderID uint) (*model.File, error)
	Get(ctx context.Context, id uint) (*model.File, error)
	List(ctx context.Context) ([]model.File, error)
	Delete(ctx context.Context, id uint, requester *auth.Claims) error
}

type fileService struct {
	files repository.FileRepository
	store storage.Store
	cache Cache
}

// NewFileService builds a FileService over a metadata repository and a binary store.
func NewFileService(files repository.FileRepository, store storage.Store, cache Cache) FileService {
	return &fileService{files: files, store: store, cache: cache}
}

func (s *fileService) cacheKey(id uint) string {
	return fmt.Sprintf("file:%d", id)
}

// Upload validates the size cap, writes the binary to the store, then inserts
// the metadata row. The two steps are not atomic: a crash in between can leave
// an orphaned binary, which is accepted.
func (s *fileService) Upload(ctx context.Context, up Upload, uploaderID uint) (*model.File, error) {
	if up.Size <= 0 {
		return nil, apperrors.ErrEmptyFile
	}
	if up.Size > MaxUploadSize {
		return nil, apperrors.ErrFileTooLarge
	}

	storedName := uuid.New().String() + "_" + up.OriginalName
	path, err := s.store.Save(up.Content, storedName)
	if err != nil {
		return nil, fmt.Errorf("save binary: %w", err)
	}

	file := &model.File{
		Filename:     storedName,
		OriginalName: up.OriginalName,
		MimeType:     up.MimeType,
		Size:         up.Size,
		Path:         path,
		UploadedBy:   &uploaderID,
	}
	if err := s.files.Create(ctx, file); err != nil {
		if rmErr := s.store.Remove(path); rmErr != nil {
			log.Printf("orphaned binary %s after failed insert: %v", path, rmErr)
		}
		return nil, fmt.Errorf("create file record: %w", err)
	}

	// reload with the uploader joined for the response
	created, err := s.files.FindByID(ctx, file.ID)
	if err != nil {
		return file, nil
	}
	return created, nil
}

// cachedFile is the cache serialization of a file record. The Uploader
// relation is excluded from the model's JSON, so the display name has to be
// carried explicitly or cache hits would lose it.
type cachedFile struct {
	model.File
	UploaderName string `json:"uploader_name,omitempty"`
}

func (s *fileService) Get(ctx context.Context, id uint) (*model.File, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached cachedFile
		if err := json.Unmarshal(data, &cached); err == nil {
			file := cached.File
			if cached.UploaderName != "" {
				file.Uploader = &model.User{Username: cached.UploaderName}
			}
			return &file, nil
		}
	}

	file, err := s.files.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFileNotFound
		}
		return nil, fmt.Errorf("find file: %w", err)
	}

	entry := cachedFile{File: *file}
	if file.Uploader != nil {
		entry.UploaderName = file.Uploader.Username
	}
	if payload, err := json.Marshal(entry); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, fileCacheTTL)
	}
	return file, nil
}

func (s *fileService) List(ctx context.Context) ([]model.File, error) {
	return s.files.List(ctx)
}

// Delete removes the row (comments cascade in the store) after an
// owner-or-admin check. Binary removal is best effort: a failed unlink is
// logged for the operator but does not block the deletion.
func (s *fileService) Delete(ctx context.Context, id uint, requester *auth.Claims) error {
	file, err := s.files.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrFileNotFound
		}
		return fmt.Errorf("find file: %w", err)
	}

	if !ownerOrAdmin(requester, file.UploadedBy) {
		return apperrors.ErrNotOwner
	}

	if err := s.store.Remove(file.Path); err != nil {
		log.Printf("remove binary %s: %v", file.Path, err)
	}

	if err := s.files.Delete(ctx, file.ID); err != nil {
		return fmt.Errorf("delete file record: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(file.ID))
	return nil
}

// ownerOrAdmin implements the shared authorization rule: admins may act on
// anything; owners may act on their own resources. A resource whose owner
// reference was nulled out (owner deleted) is admin-only.
func ownerOrAdmin(requester *auth.Claims, ownerID *uint) bool {
	if requester == nil {
		return false
	}
	if requester.Role == model.RoleAdmin {
		return true
	}
	return ownerID != nil && *ownerID == requester.UserID
}
