package models

import "time"

// Subscription joins a subscriber to a meetup. (user_id, meetup_id) is unique.
type Subscription struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_subscriptions_user_meetup"`
	User      *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	MeetupID  uint      `json:"meetup_id" gorm:"not null;uniqueIndex:idx_subscriptions_user_meetup"`
	Meetup    *Meetup   `json:"meetup,omitempty" gorm:"foreignKey:MeetupID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
