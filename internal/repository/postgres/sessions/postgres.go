package sessions

import (
	"context"
	"errors"

	sessionsdomain "fitclub-go/internal/domain/sessions"
	"fitclub-go/internal/repository/postgres/pgerr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	bookingIndex      = "idx_session_bookings_member_session"
	bookingMemberFKey = "session_bookings_member_id_fkey"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(sessionsdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) withTrainer(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("workout_sessions").
		Select("workout_sessions.*, COALESCE(trainers.name, '') AS trainer_name").
		Joins("left join trainers on trainers.id = workout_sessions.trainer_id")
}

func (r *PostgresRepository) ListSessions(ctx context.Context, filter sessionsdomain.ListFilter) ([]sessionsdomain.SessionWithTrainer, int64, error) {
	apply := func(query *gorm.DB) *gorm.DB {
		if filter.Date != nil {
			query = query.Where("workout_sessions.session_date = ?", filter.Date.Format(sessionsdomain.DateLayout))
		} else if filter.From != nil {
			query = query.Where("workout_sessions.session_date >= ?", filter.From.Format(sessionsdomain.DateLayout))
		}
		if filter.TrainerID != nil {
			query = query.Where("workout_sessions.trainer_id = ?", *filter.TrainerID)
		}
		return query
	}

	var total int64
	if err := apply(r.db.WithContext(ctx).Model(&sessionsdomain.WorkoutSession{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := apply(r.withTrainer(ctx)).
		Order("workout_sessions.session_date asc, workout_sessions.start_time asc, workout_sessions.id asc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var items []sessionsdomain.SessionWithTrainer
	if err := query.Scan(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PostgresRepository) ListAllSessions(ctx context.Context) ([]sessionsdomain.SessionWithTrainer, error) {
	var items []sessionsdomain.SessionWithTrainer
	if err := r.withTrainer(ctx).
		Order("workout_sessions.session_date asc, workout_sessions.start_time asc, workout_sessions.id asc").
		Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetSessionByID(ctx context.Context, id uint) (*sessionsdomain.WorkoutSession, error) {
	var session sessionsdomain.WorkoutSession
	if err := r.db.WithContext(ctx).First(&session, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, sessionsdomain.ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *PostgresRepository) LockSession(ctx context.Context, id uint) (*sessionsdomain.WorkoutSession, error) {
	var session sessionsdomain.WorkoutSession
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&session, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, sessionsdomain.ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *PostgresRepository) CreateSession(ctx context.Context, session *sessionsdomain.WorkoutSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *PostgresRepository) BookingExists(ctx context.Context, memberID, sessionID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&sessionsdomain.Booking{}).
		Where("member_id = ? AND session_id = ?", memberID, sessionID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) CreateBooking(ctx context.Context, booking *sessionsdomain.Booking) error {
	err := r.db.WithContext(ctx).Create(booking).Error
	switch {
	case pgerr.IsUniqueViolationOn(err, bookingIndex):
		return sessionsdomain.ErrAlreadyBooked
	case pgerr.IsForeignKeyViolationOn(err, bookingMemberFKey):
		return sessionsdomain.ErrUnknownMember
	}
	return err
}

func (r *PostgresRepository) IncrementBookings(ctx context.Context, sessionID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&sessionsdomain.WorkoutSession{}).
		Where("id = ? AND current_bookings < max_capacity", sessionID).
		UpdateColumn("current_bookings", gorm.Expr("current_bookings + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *PostgresRepository) ListSessionBookings(ctx context.Context, sessionID uint) ([]sessionsdomain.BookingDetail, error) {
	var rows []sessionsdomain.BookingDetail
	if err := r.db.WithContext(ctx).
		Table("session_bookings").
		Select("session_bookings.*, members.first_name || ' ' || members.last_name AS member_name, members.email AS member_email").
		Joins("join members on members.id = session_bookings.member_id").
		Where("session_bookings.session_id = ?", sessionID).
		Order("session_bookings.booking_date asc, session_bookings.id asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) ListMemberBookings(ctx context.Context, memberID uint) ([]sessionsdomain.MemberBooking, error) {
	var rows []sessionsdomain.MemberBooking
	if err := r.db.WithContext(ctx).
		Table("session_bookings").
		Select("session_bookings.*, workout_sessions.title AS session_title, workout_sessions.session_date, workout_sessions.start_time").
		Joins("join workout_sessions on workout_sessions.id = session_bookings.session_id").
		Where("session_bookings.member_id = ?", memberID).
		Order("workout_sessions.session_date desc, workout_sessions.start_time desc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
