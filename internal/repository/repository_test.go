package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sefazor/meetapp-backend/internal/models"
	"github.com/sefazor/meetapp-backend/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const filesURL = "https://cdn.example.com/"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.RunMigrations(db))
	return db
}

type fixture struct {
	ctx           context.Context
	users         *UserRepository
	files         *FileRepository
	meetups       *MeetupRepository
	subscriptions *SubscriptionRepository
}

func newFixture(t *testing.T) *fixture {
	db := newTestDB(t)
	return &fixture{
		ctx:           context.Background(),
		users:         NewUserRepository(db),
		files:         NewFileRepository(db, filesURL),
		meetups:       NewMeetupRepository(db, filesURL),
		subscriptions: NewSubscriptionRepository(db, filesURL),
	}
}

func (f *fixture) user(t *testing.T, name, email string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: email, PasswordHash: "hash"}
	require.NoError(t, f.users.Create(f.ctx, u))
	return u
}

func (f *fixture) meetup(t *testing.T, organizer *models.User, date time.Time) *models.Meetup {
	t.Helper()
	banner := &models.File{Name: "banner.png", Path: "banners/" + uuid.NewString() + ".png"}
	require.NoError(t, f.files.Create(f.ctx, banner))

	m, err := f.meetups.Create(f.ctx, &models.Meetup{
		Title:       "Meetup " + date.Format(time.RFC3339),
		Description: "desc",
		Location:    "Rua A",
		Date:        date,
		BannerID:    banner.ID,
		UserID:      organizer.ID,
	})
	require.NoError(t, err)
	return m
}

func TestUserRepository(t *testing.T) {
	f := newFixture(t)
	ana := f.user(t, "Ana", "ana@example.com")

	got, err := f.users.GetByEmail(f.ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, ana.ID, got.ID)

	exists, err := f.users.EmailExists(f.ctx, "ana@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = f.users.GetByID(f.ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	err = f.users.Create(f.ctx, &models.User{Name: "Other", Email: "ana@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestMeetupRepository(t *testing.T) {
	f := newFixture(t)
	ana := f.user(t, "Ana", "ana@example.com")

	day := time.Date(2030, 5, 20, 0, 0, 0, 0, time.UTC)
	late := f.meetup(t, ana, day.Add(20*time.Hour))
	early := f.meetup(t, ana, day.Add(9*time.Hour))
	f.meetup(t, ana, day.Add(30*time.Hour))

	t.Run("create returns organizer and banner", func(t *testing.T) {
		require.NotNil(t, early.Organizer)
		assert.Equal(t, "Ana", early.Organizer.Name)
		assert.Equal(t, "ana@example.com", early.Organizer.Email)
		require.NotNil(t, early.Banner)
		assert.Equal(t, "https://cdn.example.com/"+early.Banner.Path, early.Banner.URL)
		assert.False(t, early.Past)
	})

	t.Run("list is bounded by the day and ordered by date", func(t *testing.T) {
		got, err := f.meetups.ListBetween(f.ctx, day, day.Add(24*time.Hour-time.Nanosecond), 10, 0)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, early.ID, got[0].ID)
		assert.Equal(t, late.ID, got[1].ID)

		again, err := f.meetups.ListBetween(f.ctx, day, day.Add(24*time.Hour-time.Nanosecond), 10, 0)
		require.NoError(t, err)
		assert.Equal(t, got, again)
	})

	t.Run("pagination", func(t *testing.T) {
		got, err := f.meetups.ListBetween(f.ctx, day, day.Add(24*time.Hour-time.Nanosecond), 1, 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, late.ID, got[0].ID)
	})

	t.Run("update writes own columns", func(t *testing.T) {
		m, err := f.meetups.GetByID(f.ctx, early.ID)
		require.NoError(t, err)
		m.Title = "Renamed"
		require.NoError(t, f.meetups.Update(f.ctx, m))

		got, err := f.meetups.GetByID(f.ctx, early.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Title)
	})

	t.Run("organizer listing", func(t *testing.T) {
		got, err := f.meetups.ListByOrganizer(f.ctx, ana.ID)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, f.meetups.Delete(f.ctx, late.ID))
		assert.ErrorIs(t, f.meetups.Delete(f.ctx, late.ID), ErrNotFound)

		_, err := f.meetups.GetByID(f.ctx, late.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPastIsDerivedOnRead(t *testing.T) {
	f := newFixture(t)
	ana := f.user(t, "Ana", "ana@example.com")

	m := f.meetup(t, ana, time.Now().UTC().Add(-time.Hour).Truncate(time.Second))
	assert.True(t, m.Past)
}

func TestSubscriptionRepository(t *testing.T) {
	f := newFixture(t)
	ana := f.user(t, "Ana", "ana@example.com")
	bruno := f.user(t, "Bruno", "bruno@example.com")

	date := time.Date(2030, 5, 20, 19, 0, 0, 0, time.UTC)
	first := f.meetup(t, ana, date)
	sameTime := f.meetup(t, ana, date)
	later := f.meetup(t, ana, date.Add(2*time.Hour))

	sub, err := f.subscriptions.CreateExclusive(f.ctx, bruno.ID, first.ID, first.Date)
	require.NoError(t, err)
	assert.NotZero(t, sub.ID)

	t.Run("duplicate", func(t *testing.T) {
		_, err := f.subscriptions.CreateExclusive(f.ctx, bruno.ID, first.ID, first.Date)
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("time clash with a different meetup", func(t *testing.T) {
		_, err := f.subscriptions.CreateExclusive(f.ctx, bruno.ID, sameTime.ID, sameTime.Date)
		assert.ErrorIs(t, err, ErrTimeClash)
	})

	t.Run("different time is fine", func(t *testing.T) {
		_, err := f.subscriptions.CreateExclusive(f.ctx, bruno.ID, later.ID, later.Date)
		assert.NoError(t, err)
	})

	t.Run("unknown subscriber", func(t *testing.T) {
		_, err := f.subscriptions.CreateExclusive(f.ctx, 999, later.ID, later.Date)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("upcoming listing carries meetup details", func(t *testing.T) {
		got, err := f.subscriptions.ListUpcomingByUser(f.ctx, bruno.ID, date.Add(-time.Hour))
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, first.ID, got[0].MeetupID)
		require.NotNil(t, got[0].Meetup)
		require.NotNil(t, got[0].Meetup.Organizer)
		assert.Equal(t, "Ana", got[0].Meetup.Organizer.Name)

		got, err = f.subscriptions.ListUpcomingByUser(f.ctx, bruno.ID, date.Add(time.Hour))
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("get and delete", func(t *testing.T) {
		got, err := f.subscriptions.GetByID(f.ctx, sub.ID)
		require.NoError(t, err)
		assert.Equal(t, bruno.ID, got.UserID)

		require.NoError(t, f.subscriptions.Delete(f.ctx, sub.ID))
		_, err = f.subscriptions.GetByID(f.ctx, sub.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
