package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/meetapp-backend/internal/models"
	"github.com/sefazor/meetapp-backend/internal/service"
	"go.uber.org/zap"
)

// statusFor maps a rule failure to its HTTP status. Unknown errors are 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrAlreadySubscribed),
		errors.Is(err, service.ErrUserNotFound):
		return fiber.StatusUnauthorized
	case errors.Is(err, service.ErrTimeClash),
		errors.Is(err, service.ErrUserExists):
		return fiber.StatusBadRequest
	}

	switch service.KindOf(err) {
	case service.KindValidation, service.KindNotFound:
		return fiber.StatusBadRequest
	case service.KindForbidden, service.KindPastMeetup, service.KindInvalidDate:
		return fiber.StatusUnauthorized
	case service.KindConflict:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the failure envelope. Internal errors are logged and masked.
func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(status).JSON(models.ErrorResponse("Internal server error"))
	}

	return c.Status(status).JSON(models.KindErrorResponse(string(service.KindOf(err)), err.Error()))
}

// parseID reads a positive numeric route parameter.
func parseID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}
