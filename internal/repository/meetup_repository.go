package repository

import (
	"context"
	"time"

	"github.com/sefazor/meetapp-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MeetupRepository struct {
	db       *gorm.DB
	filesURL string
}

func NewMeetupRepository(db *gorm.DB, filesURL string) *MeetupRepository {
	return &MeetupRepository{db: db, filesURL: filesURL}
}

// withDetails preloads the organizer and banner every meetup response carries.
func (r *MeetupRepository) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Preload("Banner")
}

func (r *MeetupRepository) hydrate(meetups []models.Meetup) {
	for i := range meetups {
		meetups[i].Hydrate(r.filesURL)
	}
}

func (r *MeetupRepository) Create(ctx context.Context, meetup *models.Meetup) (*models.Meetup, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(meetup).Error; err != nil {
		return nil, translate(err)
	}
	return r.GetByID(ctx, meetup.ID)
}

func (r *MeetupRepository) GetByID(ctx context.Context, id uint) (*models.Meetup, error) {
	var meetup models.Meetup
	if err := r.withDetails(ctx).First(&meetup, id).Error; err != nil {
		return nil, translate(err)
	}
	meetup.Hydrate(r.filesURL)
	return &meetup, nil
}

// ListBetween returns one page of meetups whose date falls in [from, to].
func (r *MeetupRepository) ListBetween(ctx context.Context, from, to time.Time, limit, offset int) ([]models.Meetup, error) {
	meetups := []models.Meetup{}
	err := r.withDetails(ctx).
		Where("date BETWEEN ? AND ?", from, to).
		Order("date ASC").
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&meetups).Error
	if err != nil {
		return nil, err
	}
	r.hydrate(meetups)
	return meetups, nil
}

func (r *MeetupRepository) ListByOrganizer(ctx context.Context, userID uint) ([]models.Meetup, error) {
	meetups := []models.Meetup{}
	err := r.withDetails(ctx).
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&meetups).Error
	if err != nil {
		return nil, err
	}
	r.hydrate(meetups)
	return meetups, nil
}

// Update persists the meetup's own columns; loaded associations are not written back.
func (r *MeetupRepository) Update(ctx context.Context, meetup *models.Meetup) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(meetup).Error)
}

func (r *MeetupRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Meetup{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
