package repository

import (
	"context"

	"gorm.io/gorm"

	"fileshare/internal/model"
)

// FileRepository defines persistence operations for file metadata.
type FileRepository interface {
	Create(ctx context.Context, file *model.File) error
	FindByID(ctx context.Context, id uint) (*model.File, error)
	List(ctx context.Context) ([]model.File, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type fileRepository struct {
	db *gorm.DB
}

// NewFileRepository builds a GORM-backed repository.
func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Create(ctx context.Context, file *model.File) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *fileRepository) FindByID(ctx context.Context, id uint) (*model.File, error) {
	var file model.File
	if err := r.db.WithContext(ctx).Preload("Uploader").First(&file, id).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *fileRepository) List(ctx context.Context) ([]model.File, error) {
	var files []model.File
	if err := r.db.WithContext(ctx).Preload("Uploader").Order("created_at DESC").Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

func (r *fileRepository) Delete(ctx context.Context, id uint) error {
	// dependent comments are removed by the store's ON DELETE CASCADE
	return r.db.WithContext(ctx).Delete(&model.File{}, id).Error
}

func (r *fileRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.File{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
