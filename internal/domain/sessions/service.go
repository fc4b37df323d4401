package sessions

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"fitclub-go/internal/domain/paging"
	"fitclub-go/internal/domain/trainers"
	"fitclub-go/internal/validation"
	"gorm.io/datatypes"
)

const (
	msgInvalidTrainer   = "selected trainer does not exist"
	msgInvalidDate      = "invalid session date"
	msgPastDate         = "session date cannot be in the past"
	msgInvalidStart     = "invalid start time"
	msgInvalidEnd       = "invalid end time"
	msgEndBeforeStart   = "end time must be after start time"
	msgCapacityNotInt   = "max capacity must be a whole number"
	msgCapacityOutRange = "max capacity must be between 1 and 50"
)

var scheduleMessages = validation.Messages{
	"title.required":        "title is required",
	"trainer_id.required":   "please select a trainer",
	"session_date.required": "session date is required",
	"start_time.required":   "start time is required",
	"end_time.required":     "end time is required",
	"max_capacity.min":      msgCapacityOutRange,
	"max_capacity.max":      msgCapacityOutRange,
}

type scheduleFields struct {
	Title       string `json:"title" validate:"required"`
	TrainerID   string `json:"trainer_id" validate:"required"`
	SessionDate string `json:"session_date" validate:"required"`
	StartTime   string `json:"start_time" validate:"required"`
	EndTime     string `json:"end_time" validate:"required"`
	MaxCapacity int    `json:"max_capacity" validate:"min=1,max=50"`
}

type TrainerLookup interface {
	GetTrainer(ctx context.Context, id uint) (*trainers.Trainer, error)
}

type Service struct {
	repo     Repository
	trainers TrainerLookup
	now      func() time.Time
}

func NewService(repo Repository, trainers TrainerLookup) *Service {
	return &Service{repo: repo, trainers: trainers, now: time.Now}
}

// ListSessions lists one day when q.Date is set, otherwise everything from today on.
func (s *Service) ListSessions(ctx context.Context, q Query) (paging.Page[SessionWithTrainer], error) {
	page := paging.Normalize(q.Page)
	filter := ListFilter{
		TrainerID: q.TrainerID,
		Limit:     paging.DefaultSize,
		Offset:    paging.Offset(page, paging.DefaultSize),
	}
	if q.Date != nil {
		day := civilDate(*q.Date)
		filter.Date = &day
	} else {
		today := civilDate(s.now())
		filter.From = &today
	}

	items, total, err := s.repo.ListSessions(ctx, filter)
	if err != nil {
		return paging.Page[SessionWithTrainer]{}, err
	}
	if items == nil {
		items = []SessionWithTrainer{}
	}
	return paging.Page[SessionWithTrainer]{Items: items, Total: total, Number: page, Size: paging.DefaultSize}, nil
}

func (s *Service) ListAllSessions(ctx context.Context) ([]SessionWithTrainer, error) {
	return s.repo.ListAllSessions(ctx)
}

func (s *Service) GetSession(ctx context.Context, id uint) (*WorkoutSession, error) {
	return s.repo.GetSessionByID(ctx, id)
}

// Schedule validates input and creates a session with no bookings.
func (s *Service) Schedule(ctx context.Context, input ScheduleInput) (*WorkoutSession, error) {
	input = trimScheduleInput(input)
	errs := &validation.Errors{}

	capacity := DefaultCapacity
	if input.MaxCapacity != "" {
		parsed, err := strconv.Atoi(input.MaxCapacity)
		if err != nil {
			errs.Add("max_capacity", msgCapacityNotInt)
		} else {
			capacity = parsed
		}
	}

	if err := validation.Struct(scheduleFields{
		Title:       input.Title,
		TrainerID:   input.TrainerID,
		SessionDate: input.SessionDate,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		MaxCapacity: capacity,
	}, scheduleMessages, errs); err != nil {
		return nil, err
	}

	var trainerID uint
	if !errs.Has("trainer_id") {
		id, err := s.resolveTrainer(ctx, input.TrainerID)
		if err != nil {
			return nil, err
		}
		if id == 0 {
			errs.Add("trainer_id", msgInvalidTrainer)
		}
		trainerID = id
	}

	var sessionDate time.Time
	if !errs.Has("session_date") {
		parsed, err := time.Parse(DateLayout, input.SessionDate)
		switch {
		case err != nil:
			errs.Add("session_date", msgInvalidDate)
		case parsed.Before(civilDate(s.now())):
			errs.Add("session_date", msgPastDate)
		default:
			sessionDate = parsed
		}
	}

	var start, end datatypes.Time
	startOK, endOK := false, false
	if !errs.Has("start_time") {
		parsed, err := ParseClock(input.StartTime)
		if err != nil {
			errs.Add("start_time", msgInvalidStart)
		} else {
			start, startOK = parsed, true
		}
	}
	if !errs.Has("end_time") {
		parsed, err := ParseClock(input.EndTime)
		if err != nil {
			errs.Add("end_time", msgInvalidEnd)
		} else {
			end, endOK = parsed, true
		}
	}
	if startOK && endOK && end <= start {
		errs.Add("end_time", msgEndBeforeStart)
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}

	session := WorkoutSession{
		Title:           input.Title,
		Description:     input.Description,
		TrainerID:       &trainerID,
		SessionDate:     datatypes.Date(sessionDate),
		StartTime:       start,
		EndTime:         end,
		MaxCapacity:     capacity,
		CurrentBookings: 0,
	}
	if err := s.repo.CreateSession(ctx, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Book reserves a place for memberID. The checks run in a fixed order, each with its
// own error: unknown session, missing member, full session, existing booking. The
// booking row and the counter increment commit together or not at all.
func (s *Service) Book(ctx context.Context, sessionID, memberID uint) (*BookingResult, error) {
	var result BookingResult
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		session, err := tx.LockSession(ctx, sessionID)
		if err != nil {
			return err
		}
		if memberID == 0 {
			return ErrMemberRequired
		}
		if session.IsFull() {
			return ErrSessionFull
		}

		exists, err := tx.BookingExists(ctx, memberID, sessionID)
		if err != nil {
			return err
		}
		if exists {
			return ErrAlreadyBooked
		}

		booking := Booking{
			MemberID:    memberID,
			SessionID:   sessionID,
			BookingDate: s.now().UTC(),
			Status:      BookingStatusConfirmed,
		}
		if err := tx.CreateBooking(ctx, &booking); err != nil {
			return err
		}

		incremented, err := tx.IncrementBookings(ctx, sessionID)
		if err != nil {
			return err
		}
		if !incremented {
			return ErrSessionFull
		}

		session.CurrentBookings++
		result = BookingResult{Booking: booking, Session: *session}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *Service) SessionBookings(ctx context.Context, sessionID uint) (*WorkoutSession, []BookingDetail, error) {
	session, err := s.repo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	bookings, err := s.repo.ListSessionBookings(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if bookings == nil {
		bookings = []BookingDetail{}
	}
	return session, bookings, nil
}

func (s *Service) MemberBookings(ctx context.Context, memberID uint) ([]MemberBooking, error) {
	return s.repo.ListMemberBookings(ctx, memberID)
}

// resolveTrainer returns 0 when raw does not name an existing trainer.
func (s *Service) resolveTrainer(ctx context.Context, raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, nil
	}

	if _, err := s.trainers.GetTrainer(ctx, uint(id)); err != nil {
		if errors.Is(err, trainers.ErrTrainerNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return uint(id), nil
}

func trimScheduleInput(input ScheduleInput) ScheduleInput {
	return ScheduleInput{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		TrainerID:   strings.TrimSpace(input.TrainerID),
		SessionDate: strings.TrimSpace(input.SessionDate),
		StartTime:   strings.TrimSpace(input.StartTime),
		EndTime:     strings.TrimSpace(input.EndTime),
		MaxCapacity: strings.TrimSpace(input.MaxCapacity),
	}
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
