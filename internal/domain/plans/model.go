package plans

import "time"

// Plan is a purchasable membership tier.
type Plan struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"size:50;not null"`
	Description  string    `gorm:"type:text;not null;default:''"`
	MonthlyPrice float64   `gorm:"type:numeric(10,2);not null"`
	Benefits     string    `gorm:"type:text;not null;default:''"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (Plan) TableName() string {
	return "membership_plans"
}

type CreatePlanInput struct {
	Name         string
	Description  string
	MonthlyPrice float64
	Benefits     string
}
