package inmemory

import (
	"context"
	"sort"
	"time"

	sessionsdomain "fitclub-go/internal/domain/sessions"
)

type SessionsRepository struct {
	scope
}

func (r *SessionsRepository) Transaction(ctx context.Context, fn func(sessionsdomain.Repository) error) error {
	return r.begin(func(tx scope) error {
		return fn(&SessionsRepository{scope: tx})
	})
}

func sameDay(d time.Time, day time.Time) bool {
	y1, m1, d1 := d.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func notBefore(d time.Time, day time.Time) bool {
	return sameDay(d, day) || d.After(day)
}

// sessionsWithTrainer is ordered by date, start time and id.
func sessionsWithTrainer(s *state, keep func(sessionsdomain.WorkoutSession) bool) []sessionsdomain.SessionWithTrainer {
	items := make([]sessionsdomain.SessionWithTrainer, 0)
	for _, session := range s.sessions {
		if keep != nil && !keep(session) {
			continue
		}
		row := sessionsdomain.SessionWithTrainer{WorkoutSession: session}
		if session.TrainerID != nil {
			row.TrainerName = s.trainers[*session.TrainerID].Name
		}
		items = append(items, row)
	}
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		da, db := time.Time(a.SessionDate), time.Time(b.SessionDate)
		if !da.Equal(db) {
			return da.Before(db)
		}
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		return a.ID < b.ID
	})
	return items
}

func (r *SessionsRepository) ListSessions(ctx context.Context, filter sessionsdomain.ListFilter) ([]sessionsdomain.SessionWithTrainer, int64, error) {
	var (
		items []sessionsdomain.SessionWithTrainer
		total int64
	)
	err := r.read(func(s *state) error {
		matched := sessionsWithTrainer(s, func(session sessionsdomain.WorkoutSession) bool {
			day := time.Time(session.SessionDate)
			if filter.Date != nil && !sameDay(day, *filter.Date) {
				return false
			}
			if filter.Date == nil && filter.From != nil && !notBefore(day, *filter.From) {
				return false
			}
			if filter.TrainerID != nil && (session.TrainerID == nil || *session.TrainerID != *filter.TrainerID) {
				return false
			}
			return true
		})
		total = int64(len(matched))
		items = page(matched, filter.Limit, filter.Offset)
		return nil
	})
	return items, total, err
}

func (r *SessionsRepository) ListAllSessions(ctx context.Context) ([]sessionsdomain.SessionWithTrainer, error) {
	var items []sessionsdomain.SessionWithTrainer
	err := r.read(func(s *state) error {
		items = sessionsWithTrainer(s, nil)
		return nil
	})
	return items, err
}

func (r *SessionsRepository) GetSessionByID(ctx context.Context, id uint) (*sessionsdomain.WorkoutSession, error) {
	var found sessionsdomain.WorkoutSession
	err := r.read(func(s *state) error {
		session, ok := s.sessions[id]
		if !ok {
			return sessionsdomain.ErrSessionNotFound
		}
		found = session
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

// LockSession needs no extra locking: transactions already hold the store mutex.
func (r *SessionsRepository) LockSession(ctx context.Context, id uint) (*sessionsdomain.WorkoutSession, error) {
	return r.GetSessionByID(ctx, id)
}

func (r *SessionsRepository) CreateSession(ctx context.Context, session *sessionsdomain.WorkoutSession) error {
	return r.write(func(s *state) error {
		session.ID = s.nextID("workout_sessions")
		if session.CreatedAt.IsZero() {
			session.CreatedAt = r.now()
		}
		s.sessions[session.ID] = *session
		return nil
	})
}

func bookingExists(s *state, memberID, sessionID uint) bool {
	for _, booking := range s.bookings {
		if booking.MemberID == memberID && booking.SessionID == sessionID {
			return true
		}
	}
	return false
}

func (r *SessionsRepository) BookingExists(ctx context.Context, memberID, sessionID uint) (bool, error) {
	var exists bool
	err := r.read(func(s *state) error {
		exists = bookingExists(s, memberID, sessionID)
		return nil
	})
	return exists, err
}

func (r *SessionsRepository) CreateBooking(ctx context.Context, booking *sessionsdomain.Booking) error {
	return r.write(func(s *state) error {
		if _, ok := s.sessions[booking.SessionID]; !ok {
			return sessionsdomain.ErrSessionNotFound
		}
		if _, ok := s.members[booking.MemberID]; !ok {
			return sessionsdomain.ErrUnknownMember
		}
		if bookingExists(s, booking.MemberID, booking.SessionID) {
			return sessionsdomain.ErrAlreadyBooked
		}
		booking.ID = s.nextID("session_bookings")
		s.bookings[booking.ID] = *booking
		return nil
	})
}

func (r *SessionsRepository) IncrementBookings(ctx context.Context, sessionID uint) (bool, error) {
	var incremented bool
	err := r.write(func(s *state) error {
		session, ok := s.sessions[sessionID]
		if !ok || session.CurrentBookings >= session.MaxCapacity {
			return nil
		}
		session.CurrentBookings++
		s.sessions[sessionID] = session
		incremented = true
		return nil
	})
	return incremented, err
}

func (r *SessionsRepository) ListSessionBookings(ctx context.Context, sessionID uint) ([]sessionsdomain.BookingDetail, error) {
	var rows []sessionsdomain.BookingDetail
	err := r.read(func(s *state) error {
		rows = make([]sessionsdomain.BookingDetail, 0)
		for _, booking := range s.bookings {
			if booking.SessionID != sessionID {
				continue
			}
			member, ok := s.members[booking.MemberID]
			if !ok {
				continue
			}
			rows = append(rows, sessionsdomain.BookingDetail{
				Booking:     booking,
				MemberName:  member.FullName(),
				MemberEmail: member.Email,
			})
		}
		sort.Slice(rows, func(i, j int) bool {
			if !rows[i].BookingDate.Equal(rows[j].BookingDate) {
				return rows[i].BookingDate.Before(rows[j].BookingDate)
			}
			return rows[i].ID < rows[j].ID
		})
		return nil
	})
	return rows, err
}

func (r *SessionsRepository) ListMemberBookings(ctx context.Context, memberID uint) ([]sessionsdomain.MemberBooking, error) {
	var rows []sessionsdomain.MemberBooking
	err := r.read(func(s *state) error {
		rows = make([]sessionsdomain.MemberBooking, 0)
		for _, booking := range s.bookings {
			if booking.MemberID != memberID {
				continue
			}
			session, ok := s.sessions[booking.SessionID]
			if !ok {
				continue
			}
			rows = append(rows, sessionsdomain.MemberBooking{
				Booking:      booking,
				SessionTitle: session.Title,
				SessionDate:  session.SessionDate,
				StartTime:    session.StartTime,
			})
		}
		sort.Slice(rows, func(i, j int) bool {
			di, dj := time.Time(rows[i].SessionDate), time.Time(rows[j].SessionDate)
			if !di.Equal(dj) {
				return di.After(dj)
			}
			return rows[i].StartTime > rows[j].StartTime
		})
		return nil
	})
	return rows, err
}
