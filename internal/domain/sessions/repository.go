package sessions

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	ListSessions(ctx context.Context, filter ListFilter) ([]SessionWithTrainer, int64, error)
	// ListAllSessions returns every session ordered by date and start time.
	ListAllSessions(ctx context.Context) ([]SessionWithTrainer, error)
	GetSessionByID(ctx context.Context, id uint) (*WorkoutSession, error)
	// LockSession loads a session and holds it until the surrounding transaction ends.
	LockSession(ctx context.Context, id uint) (*WorkoutSession, error)
	CreateSession(ctx context.Context, session *WorkoutSession) error

	BookingExists(ctx context.Context, memberID, sessionID uint) (bool, error)
	CreateBooking(ctx context.Context, booking *Booking) error
	// IncrementBookings adds one to current_bookings only while capacity remains.
	// It reports false when the session was already full.
	IncrementBookings(ctx context.Context, sessionID uint) (bool, error)
	ListSessionBookings(ctx context.Context, sessionID uint) ([]BookingDetail, error)
	ListMemberBookings(ctx context.Context, memberID uint) ([]MemberBooking, error)
}
