package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/meetapp-backend/internal/middleware"
	"github.com/sefazor/meetapp-backend/internal/models"
	"github.com/sefazor/meetapp-backend/internal/service"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uint) (*models.User, error)
	Update(ctx context.Context, userID uint, req models.UpdateUserRequest) (*models.User, error)
}

type UserHandler struct {
	userService UserService
	log         *zap.Logger
}

func NewUserHandler(userService UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		log:         log,
	}
}

func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	user, err := h.userService.GetProfile(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(models.SuccessResponse(user, ""))
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var req models.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, h.log, service.ErrValidation)
	}

	user, err := h.userService.Update(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(models.SuccessResponse(user, "Profile updated successfully"))
}
