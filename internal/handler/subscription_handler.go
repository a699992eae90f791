package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/meetapp-backend/internal/middleware"
	"github.com/sefazor/meetapp-backend/internal/models"
	"github.com/sefazor/meetapp-backend/internal/service"
	"go.uber.org/zap"
)

type SubscriptionService interface {
	Subscribe(ctx context.Context, meetupID, userID uint) (*models.Subscription, error)
	ListUpcoming(ctx context.Context, userID uint) ([]models.Subscription, error)
	Cancel(ctx context.Context, subscriptionID, userID uint) error
}

type SubscriptionHandler struct {
	subscriptionService SubscriptionService
	log                 *zap.Logger
}

func NewSubscriptionHandler(subscriptionService SubscriptionService, log *zap.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		log:                 log,
	}
}

// Subscribe handles POST /meetups/:id/subscriptions.
func (h *SubscriptionHandler) Subscribe(c *fiber.Ctx) error {
	meetupID, ok := parseID(c, "id")
	if !ok {
		return respondError(c, h.log, service.ErrMeetupNotFound)
	}

	subscription, err := h.subscriptionService.Subscribe(c.UserContext(), meetupID, middleware.UserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(models.SuccessResponse(subscription, "Subscribed successfully"))
}

func (h *SubscriptionHandler) ListSubscriptions(c *fiber.Ctx) error {
	subscriptions, err := h.subscriptionService.ListUpcoming(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(models.SuccessResponse(subscriptions, ""))
}

func (h *SubscriptionHandler) CancelSubscription(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondError(c, h.log, service.ErrSubscriptionNotFound)
	}

	if err := h.subscriptionService.Cancel(c.UserContext(), id, middleware.UserID(c)); err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Subscription cancelled"))
}
