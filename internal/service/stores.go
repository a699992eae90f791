package service

import (
	"context"
	"io"
	"time"

	"github.com/sefazor/meetapp-backend/internal/models"
)

type MeetupStore interface {
	Create(ctx context.Context, meetup *models.Meetup) (*models.Meetup, error)
	GetByID(ctx context.Context, id uint) (*models.Meetup, error)
	ListBetween(ctx context.Context, from, to time.Time, limit, offset int) ([]models.Meetup, error)
	ListByOrganizer(ctx context.Context, userID uint) ([]models.Meetup, error)
	Update(ctx context.Context, meetup *models.Meetup) error
	Delete(ctx context.Context, id uint) error
}

type SubscriptionStore interface {
	CreateExclusive(ctx context.Context, userID, meetupID uint, date time.Time) (*models.Subscription, error)
	GetByID(ctx context.Context, id uint) (*models.Subscription, error)
	ListUpcomingByUser(ctx context.Context, userID uint, now time.Time) ([]models.Subscription, error)
	Delete(ctx context.Context, id uint) error
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *models.User) error
}

type FileStore interface {
	Create(ctx context.Context, file *models.File) error
	GetByID(ctx context.Context, id uint) (*models.File, error)
}

// ObjectStorage holds uploaded banner bytes.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, src io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
}

// Dispatcher hands a deferred task to the queue; it never runs the task inline.
type Dispatcher interface {
	Enqueue(ctx context.Context, taskType string, payload any) error
}

// Option customizes a service at construction.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now as the source of "now" for temporal rules.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
