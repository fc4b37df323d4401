package trainers

import "time"

// Trainer is a staff member who leads workout sessions.
type Trainer struct {
	ID             uint      `gorm:"primaryKey"`
	Name           string    `gorm:"size:100;not null"`
	Specialization string    `gorm:"size:100;not null;default:''"`
	Email          string    `gorm:"size:100;not null;default:''"`
	Phone          string    `gorm:"size:20;not null;default:''"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (Trainer) TableName() string {
	return "trainers"
}

type CreateTrainerInput struct {
	Name           string
	Specialization string
	Email          string
	Phone          string
}
