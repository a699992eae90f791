package repository

import (
	"context"
	"time"

	"github.com/sefazor/meetapp-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepository struct {
	db       *gorm.DB
	filesURL string
}

func NewSubscriptionRepository(db *gorm.DB, filesURL string) *SubscriptionRepository {
	return &SubscriptionRepository{db: db, filesURL: filesURL}
}

func (r *SubscriptionRepository) withMeetup(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Meetup").
		Preload("Meetup.User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Preload("Meetup.Banner")
}

// CreateExclusive inserts the subscription only if the user holds neither a
// subscription to the same meetup nor one to another meetup at the same instant.
// The subscriber row is locked for the duration so concurrent attempts by the
// same user serialize; SQLite ignores the lock and relies on its single writer.
func (r *SubscriptionRepository) CreateExclusive(ctx context.Context, userID, meetupID uint, date time.Time) (*models.Subscription, error) {
	subscription := &models.Subscription{UserID: userID, MeetupID: meetupID}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var subscriber models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&subscriber, userID).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Subscription{}).
			Where("user_id = ? AND meetup_id = ?", userID, meetupID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicate
		}

		if err := tx.Model(&models.Subscription{}).
			Joins("JOIN meetups ON meetups.id = subscriptions.meetup_id").
			Where("subscriptions.user_id = ? AND subscriptions.meetup_id <> ? AND meetups.date = ?", userID, meetupID, date).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrTimeClash
		}

		return tx.Omit(clause.Associations).Create(subscription).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return subscription, nil
}

func (r *SubscriptionRepository) GetByID(ctx context.Context, id uint) (*models.Subscription, error) {
	var subscription models.Subscription
	if err := r.withMeetup(ctx).First(&subscription, id).Error; err != nil {
		return nil, translate(err)
	}
	if subscription.Meetup != nil {
		subscription.Meetup.Hydrate(r.filesURL)
	}
	return &subscription, nil
}

// ListUpcomingByUser returns the user's subscriptions to meetups dated after now, soonest first.
func (r *SubscriptionRepository) ListUpcomingByUser(ctx context.Context, userID uint, now time.Time) ([]models.Subscription, error) {
	subscriptions := []models.Subscription{}
	err := r.withMeetup(ctx).
		Joins("JOIN meetups ON meetups.id = subscriptions.meetup_id").
		Where("subscriptions.user_id = ? AND meetups.date > ?", userID, now).
		Order("meetups.date ASC").
		Find(&subscriptions).Error
	if err != nil {
		return nil, err
	}
	for i := range subscriptions {
		if subscriptions[i].Meetup != nil {
			subscriptions[i].Meetup.Hydrate(r.filesURL)
		}
	}
	return subscriptions, nil
}

func (r *SubscriptionRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Subscription{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
