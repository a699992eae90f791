package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sefazor/meetapp-backend/internal/models"
	"github.com/sefazor/meetapp-backend/internal/repository"
	"github.com/sefazor/meetapp-backend/pkg/utils"
	"go.uber.org/zap"
)

// PageSize is the fixed number of meetups returned per List page.
const PageSize = 10

// MeetupService enforces the organizer, temporal and existence rules for meetups.
type MeetupService struct {
	meetups   MeetupStore
	files     FileStore
	validator *utils.Validator
	loc       *time.Location
	now       func() time.Time
	log       *zap.Logger
}

func NewMeetupService(
	meetups MeetupStore,
	files FileStore,
	validator *utils.Validator,
	loc *time.Location,
	log *zap.Logger,
	opts ...Option,
) *MeetupService {
	o := buildOptions(opts)
	if loc == nil {
		loc = time.UTC
	}
	return &MeetupService{
		meetups:   meetups,
		files:     files,
		validator: validator,
		loc:       loc,
		now:       o.now,
		log:       log.Named("meetups"),
	}
}

// List returns the given page of meetups happening on the calendar day of date.
// An empty date means today; an unparsable one yields no meetups.
func (s *MeetupService) List(ctx context.Context, date string, page int) ([]models.Meetup, error) {
	day := s.now().In(s.loc)
	if date != "" {
		parsed, err := utils.ParseDay(date, s.loc)
		if err != nil {
			s.log.Debug("unparsable list date", zap.String("date", date), zap.Error(err))
			return []models.Meetup{}, nil
		}
		day = parsed
	}
	if page < 1 {
		page = 1
	}

	from := utils.StartOfDay(day).UTC()
	to := utils.EndOfDay(day).UTC()

	meetups, err := s.meetups.ListBetween(ctx, from, to, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, fmt.Errorf("list meetups: %w", err)
	}
	return meetups, nil
}

func (s *MeetupService) Get(ctx context.Context, id uint) (*models.Meetup, error) {
	meetup, err := s.meetups.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(err)
	}
	return meetup, nil
}

// ListOrganizing returns every meetup organized by userID.
func (s *MeetupService) ListOrganizing(ctx context.Context, userID uint) ([]models.Meetup, error) {
	meetups, err := s.meetups.ListByOrganizer(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list organizer meetups: %w", err)
	}
	return meetups, nil
}

func (s *MeetupService) Create(ctx context.Context, userID uint, req models.CreateMeetupRequest) (*models.Meetup, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	if !s.isFutureHour(*req.Date) {
		s.log.Debug("rejected meetup date", zap.Uint("user_id", userID), zap.Time("date", *req.Date))
		return nil, ErrInvalidDate
	}

	if err := s.ensureBanner(ctx, req.BannerID); err != nil {
		return nil, err
	}

	meetup, err := s.meetups.Create(ctx, &models.Meetup{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Date:        req.Date.UTC(),
		BannerID:    req.BannerID,
		UserID:      userID,
	})
	if err != nil {
		return nil, fmt.Errorf("create meetup: %w", err)
	}

	s.log.Info("meetup created", zap.Uint("meetup_id", meetup.ID), zap.Uint("user_id", userID))
	return meetup, nil
}

// Update applies the supplied fields. Both the stored date and the new date are
// checked: a meetup that already happened is immutable.
func (s *MeetupService) Update(ctx context.Context, id, userID uint, req models.UpdateMeetupRequest) (*models.Meetup, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	meetup, err := s.meetups.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(err)
	}

	if meetup.UserID != userID {
		return nil, ErrNotOrganizerUpdate
	}

	if meetup.IsPast(s.now()) {
		return nil, ErrPastMeetupUpdate
	}

	if req.Date != nil && !s.isFutureHour(*req.Date) {
		return nil, ErrInvalidDate
	}

	if req.BannerID != nil && *req.BannerID != meetup.BannerID {
		if err := s.ensureBanner(ctx, *req.BannerID); err != nil {
			return nil, err
		}
	}

	if req.Title != nil {
		meetup.Title = *req.Title
	}
	if req.Description != nil {
		meetup.Description = *req.Description
	}
	if req.Location != nil {
		meetup.Location = *req.Location
	}
	if req.Date != nil {
		meetup.Date = req.Date.UTC()
	}
	if req.BannerID != nil {
		meetup.BannerID = *req.BannerID
	}

	if err := s.meetups.Update(ctx, meetup); err != nil {
		return nil, fmt.Errorf("update meetup: %w", err)
	}

	updated, err := s.meetups.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload meetup: %w", err)
	}
	return updated, nil
}

func (s *MeetupService) Delete(ctx context.Context, id, userID uint) error {
	meetup, err := s.meetups.GetByID(ctx, id)
	if err != nil {
		return s.lookupError(err)
	}

	if meetup.UserID != userID {
		return ErrNotOrganizerDelete
	}

	if meetup.IsPast(s.now()) {
		return ErrPastMeetupDelete
	}

	if err := s.meetups.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMeetupNotFound
		}
		return fmt.Errorf("delete meetup: %w", err)
	}

	s.log.Info("meetup deleted", zap.Uint("meetup_id", id), zap.Uint("user_id", userID))
	return nil
}

// isFutureHour reports whether the start of date's hour lies strictly after now.
func (s *MeetupService) isFutureHour(date time.Time) bool {
	return utils.StartOfHour(date).After(s.now())
}

func (s *MeetupService) ensureBanner(ctx context.Context, bannerID uint) error {
	if _, err := s.files.GetByID(ctx, bannerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBannerNotFound
		}
		return fmt.Errorf("lookup banner: %w", err)
	}
	return nil
}

func (s *MeetupService) lookupError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrMeetupNotFound
	}
	return fmt.Errorf("lookup meetup: %w", err)
}

func validationError(err error) error {
	return fmt.Errorf("%w: %v", ErrValidation, err)
}
