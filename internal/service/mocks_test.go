package service

import (
	"context"
	"io"
	"time"

	"github.com/sefazor/meetapp-backend/internal/models"
	"github.com/stretchr/testify/mock"
)

type mockMeetupStore struct {
	mock.Mock
}

func (m *mockMeetupStore) Create(ctx context.Context, meetup *models.Meetup) (*models.Meetup, error) {
	args := m.Called(ctx, meetup)
	if v := args.Get(0); v != nil {
		return v.(*models.Meetup), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMeetupStore) GetByID(ctx context.Context, id uint) (*models.Meetup, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Meetup), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMeetupStore) ListBetween(ctx context.Context, from, to time.Time, limit, offset int) ([]models.Meetup, error) {
	args := m.Called(ctx, from, to, limit, offset)
	if v := args.Get(0); v != nil {
		return v.([]models.Meetup), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMeetupStore) ListByOrganizer(ctx context.Context, userID uint) ([]models.Meetup, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]models.Meetup), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMeetupStore) Update(ctx context.Context, meetup *models.Meetup) error {
	return m.Called(ctx, meetup).Error(0)
}

func (m *mockMeetupStore) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockSubscriptionStore struct {
	mock.Mock
}

func (m *mockSubscriptionStore) CreateExclusive(ctx context.Context, userID, meetupID uint, date time.Time) (*models.Subscription, error) {
	args := m.Called(ctx, userID, meetupID, date)
	if v := args.Get(0); v != nil {
		return v.(*models.Subscription), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSubscriptionStore) GetByID(ctx context.Context, id uint) (*models.Subscription, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Subscription), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSubscriptionStore) ListUpcomingByUser(ctx context.Context, userID uint, now time.Time) ([]models.Subscription, error) {
	args := m.Called(ctx, userID, now)
	if v := args.Get(0); v != nil {
		return v.([]models.Subscription), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSubscriptionStore) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserStore) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if v := args.Get(0); v != nil {
		return v.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserStore) Update(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

type mockFileStore struct {
	mock.Mock
}

func (m *mockFileStore) Create(ctx context.Context, file *models.File) error {
	return m.Called(ctx, file).Error(0)
}

func (m *mockFileStore) GetByID(ctx context.Context, id uint) (*models.File, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.File), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Upload(ctx context.Context, key string, src io.Reader, contentType string) error {
	return m.Called(ctx, key, src, contentType).Error(0)
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) Enqueue(ctx context.Context, taskType string, payload any) error {
	return m.Called(ctx, taskType, payload).Error(0)
}

type mockTokens struct {
	mock.Mock
}

func (m *mockTokens) GenerateToken(userID uint, email string) (string, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Error(1)
}

// fixedNow is the instant every service test runs at.
var fixedNow = time.Date(2026, 3, 10, 12, 30, 0, 0, time.UTC)

func fixedClock() Option {
	return WithClock(func() time.Time { return fixedNow })
}

func ptr[T any](v T) *T {
	return &v
}
