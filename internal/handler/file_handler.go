package handler

import (
	"context"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/meetapp-backend/internal/models"
	"github.com/sefazor/meetapp-backend/internal/service"
	"go.uber.org/zap"
)

type FileService interface {
	Upload(ctx context.Context, req models.UploadFileRequest, src io.Reader) (*models.File, error)
}

type FileHandler struct {
	fileService FileService
	log         *zap.Logger
}

func NewFileHandler(fileService FileService, log *zap.Logger) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		log:         log,
	}
}

// UploadFile handles POST /files with a multipart "file" field.
func (h *FileHandler) UploadFile(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return respondError(c, h.log, service.ErrValidation)
	}

	src, err := header.Open()
	if err != nil {
		return respondError(c, h.log, err)
	}
	defer src.Close()

	req := models.UploadFileRequest{
		Name:        header.Filename,
		ContentType: header.Header.Get(fiber.HeaderContentType),
		Size:        header.Size,
	}

	file, err := h.fileService.Upload(c.UserContext(), req, src)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(models.SuccessResponse(file, "File uploaded successfully"))
}
