package jobs

import (
	"time"

	"github.com/sefazor/meetapp-backend/internal/models"
)

const (
	TypeSubscriptionMail = "subscription:mail"
	TypeWelcomeMail      = "user:welcome"

	QueueMail    = "mail"
	QueueDefault = "default"
)

type OrganizerPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type MeetupPayload struct {
	ID        uint             `json:"id"`
	Title     string           `json:"title"`
	Location  string           `json:"location"`
	Date      time.Time        `json:"date"`
	Organizer OrganizerPayload `json:"organizer"`
}

// SubscriptionMailPayload tells an organizer that someone subscribed to their meetup.
type SubscriptionMailPayload struct {
	Meetup MeetupPayload `json:"meetup"`
	Name   string        `json:"name"`
	Email  string        `json:"email"`
}

// NewSubscriptionMailPayload snapshots the meetup, its organizer and the subscriber.
// meetup.User must be loaded.
func NewSubscriptionMailPayload(meetup *models.Meetup, subscriber *models.User) SubscriptionMailPayload {
	var organizer OrganizerPayload
	if meetup.User != nil {
		organizer = OrganizerPayload{Name: meetup.User.Name, Email: meetup.User.Email}
	} else if meetup.Organizer != nil {
		organizer = OrganizerPayload{Name: meetup.Organizer.Name, Email: meetup.Organizer.Email}
	}

	return SubscriptionMailPayload{
		Meetup: MeetupPayload{
			ID:        meetup.ID,
			Title:     meetup.Title,
			Location:  meetup.Location,
			Date:      meetup.Date,
			Organizer: organizer,
		},
		Name:  subscriber.Name,
		Email: subscriber.Email,
	}
}

func (p SubscriptionMailPayload) validate() bool {
	return p.Meetup.Title != "" && p.Meetup.Organizer.Email != "" && p.Email != ""
}

// WelcomeMailPayload greets a newly registered user.
type WelcomeMailPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
