package members

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"

	PlanStatusActive = "active"

	DateLayout = "2006-01-02"
)

// Member is a club customer.
type Member struct {
	ID               uint            `gorm:"primaryKey"`
	FirstName        string          `gorm:"size:50;not null"`
	LastName         string          `gorm:"size:50;not null"`
	Email            string          `gorm:"size:100;not null"` // unique, case-insensitive
	Phone            string          `gorm:"size:20;not null;default:''"`
	DateOfBirth      *datatypes.Date `gorm:"type:date"`
	Gender           string          `gorm:"size:10;not null;default:''"`
	EmergencyContact string          `gorm:"size:100;not null;default:''"`
	EmergencyPhone   string          `gorm:"size:20;not null;default:''"`
	JoinDate         datatypes.Date  `gorm:"type:date;not null"`
	Status           string          `gorm:"size:20;not null;default:active"`
	CreatedAt        time.Time       `gorm:"autoCreateTime"`
}

func (Member) TableName() string {
	return "members"
}

func (m Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

// Age is the number of full years between the birth date and now.
// The second result is false when no birth date is recorded.
func (m Member) Age(now time.Time) (int, bool) {
	if m.DateOfBirth == nil {
		return 0, false
	}
	dob := time.Time(*m.DateOfBirth)
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age, true
}

// MemberPlan assigns a plan to a member at a point in time.
type MemberPlan struct {
	ID        uint            `gorm:"primaryKey"`
	MemberID  uint            `gorm:"index;not null"`
	PlanID    uint            `gorm:"index;not null"`
	StartDate datatypes.Date  `gorm:"type:date;not null"`
	EndDate   *datatypes.Date `gorm:"type:date"`
	Status    string          `gorm:"size:20;not null;default:active"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}

func (MemberPlan) TableName() string {
	return "member_plans"
}

// MemberPlanDetail is an assignment joined with its plan.
type MemberPlanDetail struct {
	MemberPlan
	PlanName     string
	MonthlyPrice float64
}

// Detail is everything the member page shows. Plans are newest first.
type Detail struct {
	Member      Member
	Plans       []MemberPlanDetail
	CurrentPlan *MemberPlanDetail
}

type ListFilter struct {
	Search string
	Limit  int
	Offset int
}

// RegisterInput carries raw form values; dates are YYYY-MM-DD strings.
type RegisterInput struct {
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	DateOfBirth      string
	Gender           string
	EmergencyContact string
	EmergencyPhone   string
	PlanID           string
}

type UpdateInput struct {
	ID               uint
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	DateOfBirth      string
	Gender           string
	EmergencyContact string
	EmergencyPhone   string
	Status           string
}
