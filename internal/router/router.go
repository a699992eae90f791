package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/meetapp-backend/internal/handler"
	"github.com/sefazor/meetapp-backend/internal/middleware"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	File         *handler.FileHandler
	Meetup       *handler.MeetupHandler
	Subscription *handler.SubscriptionHandler
	Health       *handler.HealthHandler
}

// Setup registers every route. Reads of the meetup listing are public.
func Setup(app *fiber.App, h Handlers, tokens middleware.TokenValidator) {
	app.Get("/health", h.Health.Health)

	// Public routes
	app.Post("/users", h.Auth.Register)
	app.Post("/sessions", h.Auth.CreateSession)
	app.Get("/meetups", h.Meetup.ListMeetups)
	app.Get("/meetups/:id", h.Meetup.GetMeetup)

	// Protected routes
	auth := middleware.AuthMiddleware(tokens)

	app.Get("/users/me", auth, h.User.GetMyProfile)
	app.Put("/users", auth, h.User.UpdateProfile)

	app.Post("/files", auth, h.File.UploadFile)

	app.Post("/meetups", auth, h.Meetup.CreateMeetup)
	app.Put("/meetups/:id", auth, h.Meetup.UpdateMeetup)
	app.Delete("/meetups/:id", auth, h.Meetup.DeleteMeetup)
	app.Get("/organizing", auth, h.Meetup.ListOrganizing)

	app.Post("/meetups/:id/subscriptions", auth, h.Subscription.Subscribe)
	app.Get("/subscriptions", auth, h.Subscription.ListSubscriptions)
	app.Delete("/subscriptions/:id", auth, h.Subscription.CancelSubscription)
}
