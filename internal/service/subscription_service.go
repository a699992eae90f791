package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sefazor/meetapp-backend/internal/jobs"
	"github.com/sefazor/meetapp-backend/internal/models"
	"github.com/sefazor/meetapp-backend/internal/repository"
	"go.uber.org/zap"
)

// SubscriptionService enforces who may subscribe to which meetup.
type SubscriptionService struct {
	meetups       MeetupStore
	subscriptions SubscriptionStore
	users         UserStore
	dispatcher    Dispatcher
	now           func() time.Time
	log           *zap.Logger
}

func NewSubscriptionService(
	meetups MeetupStore,
	subscriptions SubscriptionStore,
	users UserStore,
	dispatcher Dispatcher,
	log *zap.Logger,
	opts ...Option,
) *SubscriptionService {
	o := buildOptions(opts)
	return &SubscriptionService{
		meetups:       meetups,
		subscriptions: subscriptions,
		users:         users,
		dispatcher:    dispatcher,
		now:           o.now,
		log:           log.Named("subscriptions"),
	}
}

// Subscribe registers userID in meetupID and schedules the organizer notification.
// A failed enqueue is logged and does not undo the subscription.
func (s *SubscriptionService) Subscribe(ctx context.Context, meetupID, userID uint) (*models.Subscription, error) {
	meetup, err := s.meetups.GetByID(ctx, meetupID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMeetupNotFound
		}
		return nil, fmt.Errorf("lookup meetup: %w", err)
	}

	if meetup.UserID == userID {
		return nil, ErrOwnMeetup
	}

	if meetup.IsPast(s.now()) {
		return nil, ErrPastMeetupSubscribe
	}

	subscriber, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup subscriber: %w", err)
	}

	subscription, err := s.subscriptions.CreateExclusive(ctx, userID, meetupID, meetup.Date)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrAlreadySubscribed
		case errors.Is(err, repository.ErrTimeClash):
			return nil, ErrTimeClash
		default:
			return nil, fmt.Errorf("create subscription: %w", err)
		}
	}

	payload := jobs.NewSubscriptionMailPayload(meetup, subscriber)
	if err := s.dispatcher.Enqueue(ctx, jobs.TypeSubscriptionMail, payload); err != nil {
		s.log.Warn("failed to enqueue subscription mail",
			zap.Uint("subscription_id", subscription.ID),
			zap.Uint("meetup_id", meetupID),
			zap.Error(err),
		)
	}

	s.log.Info("subscribed",
		zap.Uint("subscription_id", subscription.ID),
		zap.Uint("meetup_id", meetupID),
		zap.Uint("user_id", userID),
	)
	return subscription, nil
}

// ListUpcoming returns the subscriptions of userID whose meetups have not happened yet.
func (s *SubscriptionService) ListUpcoming(ctx context.Context, userID uint) ([]models.Subscription, error) {
	subscriptions, err := s.subscriptions.ListUpcomingByUser(ctx, userID, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return subscriptions, nil
}

// Cancel removes a subscription owned by userID while its meetup is still upcoming.
func (s *SubscriptionService) Cancel(ctx context.Context, subscriptionID, userID uint) error {
	subscription, err := s.subscriptions.GetByID(ctx, subscriptionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSubscriptionNotFound
		}
		return fmt.Errorf("lookup subscription: %w", err)
	}

	if subscription.UserID != userID {
		return ErrNotSubscriber
	}

	if subscription.Meetup != nil && subscription.Meetup.IsPast(s.now()) {
		return ErrPastMeetupCancel
	}

	if err := s.subscriptions.Delete(ctx, subscriptionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSubscriptionNotFound
		}
		return fmt.Errorf("delete subscription: %w", err)
	}
	return nil
}
