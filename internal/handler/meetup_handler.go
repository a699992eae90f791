package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/meetapp-backend/internal/middleware"
	"github.com/sefazor/meetapp-backend/internal/models"
	"github.com/sefazor/meetapp-backend/internal/service"
	"go.uber.org/zap"
)

type MeetupService interface {
	List(ctx context.Context, date string, page int) ([]models.Meetup, error)
	Get(ctx context.Context, id uint) (*models.Meetup, error)
	ListOrganizing(ctx context.Context, userID uint) ([]models.Meetup, error)
	Create(ctx context.Context, userID uint, req models.CreateMeetupRequest) (*models.Meetup, error)
	Update(ctx context.Context, id, userID uint, req models.UpdateMeetupRequest) (*models.Meetup, error)
	Delete(ctx context.Context, id, userID uint) error
}

type MeetupHandler struct {
	meetupService MeetupService
	log           *zap.Logger
}

func NewMeetupHandler(meetupService MeetupService, log *zap.Logger) *MeetupHandler {
	return &MeetupHandler{
		meetupService: meetupService,
		log:           log,
	}
}

// ListMeetups handles GET /meetups?date=&page=.
func (h *MeetupHandler) ListMeetups(c *fiber.Ctx) error {
	var query models.ListMeetupsQuery
	if err := c.QueryParser(&query); err != nil {
		query = models.ListMeetupsQuery{Date: c.Query("date")}
	}

	meetups, err := h.meetupService.List(c.UserContext(), query.Date, query.Page)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(models.SuccessResponse(meetups, ""))
}

func (h *MeetupHandler) GetMeetup(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondError(c, h.log, service.ErrMeetupNotFound)
	}

	meetup, err := h.meetupService.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(models.SuccessResponse(meetup, ""))
}

// ListOrganizing handles GET /organizing.
func (h *MeetupHandler) ListOrganizing(c *fiber.Ctx) error {
	meetups, err := h.meetupService.ListOrganizing(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(models.SuccessResponse(meetups, ""))
}

func (h *MeetupHandler) CreateMeetup(c *fiber.Ctx) error {
	var req models.CreateMeetupRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, h.log, service.ErrValidation)
	}

	meetup, err := h.meetupService.Create(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(models.SuccessResponse(meetup, "Meetup created successfully"))
}

func (h *MeetupHandler) UpdateMeetup(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondError(c, h.log, service.ErrMeetupNotFound)
	}

	var req models.UpdateMeetupRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, h.log, service.ErrValidation)
	}

	meetup, err := h.meetupService.Update(c.UserContext(), id, middleware.UserID(c), req)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(models.SuccessResponse(meetup, "Meetup updated successfully"))
}

func (h *MeetupHandler) DeleteMeetup(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondError(c, h.log, service.ErrMeetupNotFound)
	}

	if err := h.meetupService.Delete(c.UserContext(), id, middleware.UserID(c)); err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Meetup deleted successfully"))
}
