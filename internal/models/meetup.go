package models

import (
	"time"

	"gorm.io/gorm"
)

type Meetup struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	Title       string       `json:"title" gorm:"not null"`
	Description string       `json:"description" gorm:"not null"`
	Location    string       `json:"location" gorm:"not null"`
	Date        time.Time    `json:"date" gorm:"not null;index"`
	Past        bool         `json:"past" gorm:"-"`
	BannerID    uint         `json:"banner_id" gorm:"not null"`
	Banner      *File        `json:"banner,omitempty" gorm:"foreignKey:BannerID"`
	UserID      uint         `json:"user_id" gorm:"not null;index"`
	User        *User        `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Organizer   *UserSummary `json:"organizer,omitempty" gorm:"-"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// IsPast reports whether the meetup date is strictly before now.
func (m *Meetup) IsPast(now time.Time) bool {
	return m.Date.Before(now)
}

// AfterFind recomputes past on every read; it is never persisted.
func (m *Meetup) AfterFind(tx *gorm.DB) error {
	m.Past = m.IsPast(time.Now())
	return nil
}

// Hydrate fills the organizer projection and the banner URL from loaded associations.
func (m *Meetup) Hydrate(filesURL string) {
	if m.User != nil {
		summary := m.User.Summary()
		m.Organizer = &summary
	}
	m.Banner.ResolveURL(filesURL)
}

type CreateMeetupRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description" validate:"required"`
	Location    string     `json:"location" validate:"required"`
	Date        *time.Time `json:"date" validate:"required"`
	BannerID    uint       `json:"banner_id" validate:"required"`
}

// UpdateMeetupRequest carries a partial update; nil fields are left untouched.
type UpdateMeetupRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1"`
	Description *string    `json:"description" validate:"omitempty,min=1"`
	Location    *string    `json:"location" validate:"omitempty,min=1"`
	Date        *time.Time `json:"date"`
	BannerID    *uint      `json:"banner_id" validate:"omitempty,min=1"`
}

type ListMeetupsQuery struct {
	Date string `query:"date"`
	Page int    `query:"page"`
}
