package repository

import (
	"context"

	"github.com/sefazor/meetapp-backend/internal/models"
	"gorm.io/gorm"
)

type FileRepository struct {
	db       *gorm.DB
	filesURL string
}

func NewFileRepository(db *gorm.DB, filesURL string) *FileRepository {
	return &FileRepository{db: db, filesURL: filesURL}
}

func (r *FileRepository) Create(ctx context.Context, file *models.File) error {
	if err := r.db.WithContext(ctx).Create(file).Error; err != nil {
		return translate(err)
	}
	file.ResolveURL(r.filesURL)
	return nil
}

func (r *FileRepository) GetByID(ctx context.Context, id uint) (*models.File, error) {
	var file models.File
	if err := r.db.WithContext(ctx).First(&file, id).Error; err != nil {
		return nil, translate(err)
	}
	file.ResolveURL(r.filesURL)
	return &file, nil
}
