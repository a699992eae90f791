package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sefazor/meetapp-backend/internal/models"
	"github.com/sefazor/meetapp-backend/internal/repository"
	"github.com/sefazor/meetapp-backend/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	organizerID = uint(1)
	strangerID  = uint(2)
)

func newMeetupService(meetups *mockMeetupStore, files *mockFileStore, loc *time.Location) *MeetupService {
	return NewMeetupService(meetups, files, utils.NewValidator(), loc, zap.NewNop(), fixedClock())
}

func sameInstant(expected time.Time) interface{} {
	return mock.MatchedBy(func(t time.Time) bool { return t.Equal(expected) })
}

func futureMeetup() *models.Meetup {
	return &models.Meetup{
		ID:       10,
		Title:    "Go Meetup",
		Date:     fixedNow.Add(48 * time.Hour),
		BannerID: 3,
		UserID:   organizerID,
	}
}

func pastMeetup() *models.Meetup {
	m := futureMeetup()
	m.Date = fixedNow.Add(-time.Hour)
	return m
}

func validCreate(date time.Time) models.CreateMeetupRequest {
	return models.CreateMeetupRequest{
		Title:       "Go Meetup",
		Description: "Talks about Go",
		Location:    "Rua A, 10",
		Date:        &date,
		BannerID:    3,
	}
}

func TestMeetupServiceList(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to today and first page", func(t *testing.T) {
		meetups := &mockMeetupStore{}
		s := newMeetupService(meetups, &mockFileStore{}, time.UTC)

		from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
		meetups.On("ListBetween", ctx, sameInstant(from), sameInstant(to), PageSize, 0).
			Return([]models.Meetup{*futureMeetup()}, nil)

		got, err := s.List(ctx, "", 0)
		require.NoError(t, err)
		assert.Len(t, got, 1)
		meetups.AssertExpectations(t)
	})

	t.Run("day window follows the configured zone", func(t *testing.T) {
		saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
		require.NoError(t, err)

		meetups := &mockMeetupStore{}
		s := newMeetupService(meetups, &mockFileStore{}, saoPaulo)

		from := time.Date(2026, 4, 2, 3, 0, 0, 0, time.UTC)
		to := time.Date(2026, 4, 3, 3, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
		meetups.On("ListBetween", ctx, sameInstant(from), sameInstant(to), PageSize, 2*PageSize).
			Return([]models.Meetup{}, nil)

		got, err := s.List(ctx, "2026-04-02", 3)
		require.NoError(t, err)
		assert.Empty(t, got)
		meetups.AssertExpectations(t)
	})

	t.Run("unparsable date yields no meetups", func(t *testing.T) {
		meetups := &mockMeetupStore{}
		s := newMeetupService(meetups, &mockFileStore{}, time.UTC)

		got, err := s.List(ctx, "next tuesday", 1)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
		meetups.AssertNotCalled(t, "ListBetween", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("same date twice returns the same set", func(t *testing.T) {
		meetups := &mockMeetupStore{}
		s := newMeetupService(meetups, &mockFileStore{}, time.UTC)

		rows := []models.Meetup{*futureMeetup()}
		meetups.On("ListBetween", ctx, mock.Anything, mock.Anything, PageSize, 0).Return(rows, nil)

		first, err := s.List(ctx, "2026-03-12", 1)
		require.NoError(t, err)
		second, err := s.List(ctx, "2026-03-12", 1)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("store failure", func(t *testing.T) {
		meetups := &mockMeetupStore{}
		s := newMeetupService(meetups, &mockFileStore{}, time.UTC)
		meetups.On("ListBetween", ctx, mock.Anything, mock.Anything, PageSize, 0).Return(nil, errors.New("db down"))

		_, err := s.List(ctx, "", 1)
		require.Error(t, err)
		assert.Empty(t, KindOf(err))
	})
}

func TestMeetupServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("tomorrow at ten is persisted for the caller", func(t *testing.T) {
		meetups := &mockMeetupStore{}
		files := &mockFileStore{}
		s := newMeetupService(meetups, files, time.UTC)

		date := time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)
		files.On("GetByID", ctx, uint(3)).Return(&models.File{ID: 3}, nil)
		meetups.On("Create", ctx, mock.MatchedBy(func(m *models.Meetup) bool {
			return m.UserID == organizerID && m.Date.Equal(date) && m.Title == "Go Meetup" && m.BannerID == 3
		})).Return(&models.Meetup{ID: 10, UserID: organizerID, Date: date}, nil)

		got, err := s.Create(ctx, organizerID, validCreate(date))
		require.NoError(t, err)
		assert.Equal(t, organizerID, got.UserID)
		meetups.AssertExpectations(t)
	})

	t.Run("one hour ago is an invalid date", func(t *testing.T) {
		meetups := &mockMeetupStore{}
		s := newMeetupService(meetups, &mockFileStore{}, time.UTC)

		_, err := s.Create(ctx, organizerID, validCreate(fixedNow.Add(-time.Hour)))
		assert.ErrorIs(t, err, ErrInvalidDate)
		meetups.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("later in the current hour is an invalid date", func(t *testing.T) {
		s := newMeetupService(&mockMeetupStore{}, &mockFileStore{}, time.UTC)

		_, err := s.Create(ctx, organizerID, validCreate(fixedNow.Add(15*time.Minute)))
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("next hour is accepted", func(t *testing.T) {
		meetups := &mockMeetupStore{}
		files := &mockFileStore{}
		s := newMeetupService(meetups, files, time.UTC)

		files.On("GetByID", ctx, uint(3)).Return(&models.File{ID: 3}, nil)
		meetups.On("Create", ctx, mock.Anything).Return(&models.Meetup{ID: 11}, nil)

		_, err := s.Create(ctx, organizerID, validCreate(time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)))
		assert.NoError(t, err)
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		s := newMeetupService(&mockMeetupStore{}, &mockFileStore{}, time.UTC)

		req := validCreate(fixedNow.Add(24 * time.Hour))
		req.Title = ""
		req.Date = nil

		_, err := s.Create(ctx, organizerID, req)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, KindValidation, KindOf(err))
	})

	t.Run("unknown banner", func(t *testing.T) {
		files := &mockFileStore{}
		s := newMeetupService(&mockMeetupStore{}, files, time.UTC)
		files.On("GetByID", ctx, uint(3)).Return(nil, repository.ErrNotFound)

		_, err := s.Create(ctx, organizerID, validCreate(fixedNow.Add(24*time.Hour)))
		assert.ErrorIs(t, err, ErrBannerNotFound)
	})
}

func TestMeetupServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("applies only supplied fields", func(t *testing.T) {
		meetups := &mockMeetupStore{}
		s := newMeetupService(meetups, &mockFileStore{}, time.UTC)

		meetups.On("GetByID", ctx, uint(10)).Return(futureMeetup(), nil)
		meetups.On("Update", ctx, mock.MatchedBy(func(m *models.Meetup) bool {
			return m.Title == "Renamed" && m.Location == "" && m.BannerID == 3
		})).Return(nil)

		got, err := s.Update(ctx, 10, organizerID, models.UpdateMeetupRequest{Title: ptr("Renamed")})
		require.NoError(t, err)
		assert.NotNil(t, got)
		meetups.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		meetups := &mockMeetupStore{}
		s := newMeetupService(meetups, &mockFileStore{}, time.UTC)
		meetups.On("GetByID", ctx, uint(99)).Return(nil, repository.ErrNotFound)

		_, err := s.Update(ctx, 99, organizerID, models.UpdateMeetupRequest{})
		assert.ErrorIs(t, err, ErrMeetupNotFound)
	})

	t.Run("stranger is forbidden whatever the payload", func(t *testing.T) {
		meetups := &mockMeetupStore{}
		s := newMeetupService(meetups, &mockFileStore{}, time.UTC)
		meetups.On("GetByID", ctx, uint(10)).Return(futureMeetup(), nil)

		past := fixedNow.Add(-24 * time.Hour)
		_, err := s.Update(ctx, 10, strangerID, models.UpdateMeetupRequest{Date: &past})
		assert.ErrorIs(t, err, ErrNotOrganizerUpdate)
		assert.Equal(t, KindForbidden, KindOf(err))
	})

	t.Run("past meetup is immutable for its organizer", func(t *testing.T) {
		meetups := &mockMeetupStore{}
		s := newMeetupService(meetups, &mockFileStore{}, time.UTC)
		meetups.On("GetByID", ctx, uint(10)).Return(pastMeetup(), nil)

		future := fixedNow.Add(72 * time.Hour)
		_, err := s.Update(ctx, 10, organizerID, models.UpdateMeetupRequest{Date: &future})
		assert.ErrorIs(t, err, ErrPastMeetupUpdate)
		meetups.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("new date must be in a future hour", func(t *testing.T) {
		meetups := &mockMeetupStore{}
		s := newMeetupService(meetups, &mockFileStore{}, time.UTC)
		meetups.On("GetByID", ctx, uint(10)).Return(futureMeetup(), nil)

		soon := fixedNow.Add(10 * time.Minute)
		_, err := s.Update(ctx, 10, organizerID, models.UpdateMeetupRequest{Date: &soon})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("empty title fails validation", func(t *testing.T) {
		s := newMeetupService(&mockMeetupStore{}, &mockFileStore{}, time.UTC)

		_, err := s.Update(ctx, 10, organizerID, models.UpdateMeetupRequest{Title: ptr("")})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("changed banner must exist", func(t *testing.T) {
		meetups := &mockMeetupStore{}
		files := &mockFileStore{}
		s := newMeetupService(meetups, files, time.UTC)
		meetups.On("GetByID", ctx, uint(10)).Return(futureMeetup(), nil)
		files.On("GetByID", ctx, uint(8)).Return(nil, repository.ErrNotFound)

		_, err := s.Update(ctx, 10, organizerID, models.UpdateMeetupRequest{BannerID: ptr(uint(8))})
		assert.ErrorIs(t, err, ErrBannerNotFound)
	})
}

func TestMeetupServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("organizer deletes a future meetup", func(t *testing.T) {
		meetups := &mockMeetupStore{}
		s := newMeetupService(meetups, &mockFileStore{}, time.UTC)
		meetups.On("GetByID", ctx, uint(10)).Return(futureMeetup(), nil)
		meetups.On("Delete", ctx, uint(10)).Return(nil)

		require.NoError(t, s.Delete(ctx, 10, organizerID))
		meetups.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		meetups := &mockMeetupStore{}
		s := newMeetupService(meetups, &mockFileStore{}, time.UTC)
		meetups.On("GetByID", ctx, uint(10)).Return(nil, repository.ErrNotFound)

		assert.ErrorIs(t, s.Delete(ctx, 10, organizerID), ErrMeetupNotFound)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		meetups := &mockMeetupStore{}
		s := newMeetupService(meetups, &mockFileStore{}, time.UTC)
		meetups.On("GetByID", ctx, uint(10)).Return(pastMeetup(), nil)

		assert.ErrorIs(t, s.Delete(ctx, 10, strangerID), ErrNotOrganizerDelete)
	})

	t.Run("past meetup cannot be deleted", func(t *testing.T) {
		meetups := &mockMeetupStore{}
		s := newMeetupService(meetups, &mockFileStore{}, time.UTC)
		meetups.On("GetByID", ctx, uint(10)).Return(pastMeetup(), nil)

		assert.ErrorIs(t, s.Delete(ctx, 10, organizerID), ErrPastMeetupDelete)
		meetups.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
