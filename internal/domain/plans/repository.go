package plans

import "context"

type Repository interface {
	ListPlans(ctx context.Context) ([]Plan, error)
	GetPlanByID(ctx context.Context, id uint) (*Plan, error)
	CreatePlan(ctx context.Context, plan *Plan) error
	CountPlans(ctx context.Context) (int64, error)
}
