package sessions

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

const (
	DefaultCapacity = 10
	MinCapacity     = 1
	MaxCapacity     = 50

	BookingStatusConfirmed = "confirmed"

	DateLayout = "2006-01-02"
)

// WorkoutSession is a scheduled class with a fixed capacity.
type WorkoutSession struct {
	ID              uint           `gorm:"primaryKey"`
	Title           string         `gorm:"size:100;not null"`
	Description     string         `gorm:"type:text;not null;default:''"`
	TrainerID       *uint          `gorm:"index"`
	SessionDate     datatypes.Date `gorm:"type:date;not null;index"`
	StartTime       datatypes.Time `gorm:"type:time;not null"`
	EndTime         datatypes.Time `gorm:"type:time;not null"`
	MaxCapacity     int            `gorm:"not null;default:10"`
	CurrentBookings int            `gorm:"not null;default:0"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
}

func (WorkoutSession) TableName() string {
	return "workout_sessions"
}

func (s WorkoutSession) AvailableSpots() int {
	return s.MaxCapacity - s.CurrentBookings
}

func (s WorkoutSession) IsFull() bool {
	return s.CurrentBookings >= s.MaxCapacity
}

// SessionWithTrainer carries the trainer name; empty when no trainer is assigned.
type SessionWithTrainer struct {
	WorkoutSession
	TrainerName string
}

// Booking is a member's reservation of a session.
type Booking struct {
	ID          uint      `gorm:"primaryKey"`
	MemberID    uint      `gorm:"not null;uniqueIndex:idx_session_bookings_member_session"`
	SessionID   uint      `gorm:"not null;uniqueIndex:idx_session_bookings_member_session;index"`
	BookingDate time.Time `gorm:"not null"`
	Status      string    `gorm:"size:20;not null;default:confirmed"`
}

func (Booking) TableName() string {
	return "session_bookings"
}

type BookingDetail struct {
	Booking
	MemberName  string
	MemberEmail string
}

type MemberBooking struct {
	Booking
	SessionTitle string
	SessionDate  datatypes.Date
	StartTime    datatypes.Time
}

type BookingResult struct {
	Booking Booking
	Session WorkoutSession
}

// ListFilter restricts listings. Date selects one day; otherwise From is a lower bound.
type ListFilter struct {
	Date      *time.Time
	From      *time.Time
	TrainerID *uint
	Limit     int
	Offset    int
}

type Query struct {
	Date      *time.Time
	TrainerID *uint
	Page      int
}

// ScheduleInput carries raw form values: YYYY-MM-DD date, HH:MM times.
type ScheduleInput struct {
	Title       string
	Description string
	TrainerID   string
	SessionDate string
	StartTime   string
	EndTime     string
	MaxCapacity string
}

func ParseClock(raw string) (datatypes.Time, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return datatypes.NewTime(parsed.Hour(), parsed.Minute(), parsed.Second(), 0), nil
		}
	}
	return datatypes.Time(0), fmt.Errorf("invalid time of day %q", raw)
}

// FormatClock renders a time of day as HH:MM.
func FormatClock(t datatypes.Time) string {
	d := time.Duration(t)
	return fmt.Sprintf("%02d:%02d", int(d/time.Hour), int(d%time.Hour/time.Minute))
}

func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}
