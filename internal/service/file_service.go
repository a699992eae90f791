package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sefazor/meetapp-backend/internal/models"
	"github.com/sefazor/meetapp-backend/pkg/utils"
	"go.uber.org/zap"
)

const bannerPrefix = "banners/"

type FileService struct {
	files     FileStore
	storage   ObjectStorage
	validator *utils.Validator
	log       *zap.Logger
}

func NewFileService(files FileStore, storage ObjectStorage, validator *utils.Validator, log *zap.Logger) *FileService {
	return &FileService{
		files:     files,
		storage:   storage,
		validator: validator,
		log:       log.Named("files"),
	}
}

// Upload stores a banner under a fresh key and records it. The object is removed
// again if the record cannot be written.
func (s *FileService) Upload(ctx context.Context, req models.UploadFileRequest, src io.Reader) (*models.File, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	key := bannerPrefix + uuid.NewString() + strings.ToLower(filepath.Ext(req.Name))

	if err := s.storage.Upload(ctx, key, src, req.ContentType); err != nil {
		return nil, fmt.Errorf("store banner: %w", err)
	}

	file := &models.File{
		Name: req.Name,
		Path: key,
	}
	if err := s.files.Create(ctx, file); err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.log.Error("failed to remove orphaned banner", zap.String("key", key), zap.Error(delErr))
		}
		return nil, fmt.Errorf("record banner: %w", err)
	}

	s.log.Info("banner uploaded", zap.Uint("file_id", file.ID), zap.String("key", key))
	return file, nil
}
