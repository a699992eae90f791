package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/meetapp-backend/internal/models"
	"github.com/sefazor/meetapp-backend/internal/service"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	CreateSession(ctx context.Context, req models.SessionRequest) (*models.SessionResponse, error)
}

type AuthHandler struct {
	authService AuthService
	log         *zap.Logger
}

func NewAuthHandler(authService AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log,
	}
}

// Register handles POST /users.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, h.log, service.ErrValidation)
	}

	user, err := h.authService.Register(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(models.SuccessResponse(user, "User created successfully"))
}

// CreateSession handles POST /sessions.
func (h *AuthHandler) CreateSession(c *fiber.Ctx) error {
	var req models.SessionRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, h.log, service.ErrValidation)
	}

	session, err := h.authService.CreateSession(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(models.SuccessResponse(session, ""))
}
