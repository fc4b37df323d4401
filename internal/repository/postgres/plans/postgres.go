package plans

import (
	"context"
	"errors"

	plansdomain "fitclub-go/internal/domain/plans"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListPlans(ctx context.Context) ([]plansdomain.Plan, error) {
	var items []plansdomain.Plan
	if err := r.db.WithContext(ctx).Order("monthly_price asc, id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetPlanByID(ctx context.Context, id uint) (*plansdomain.Plan, error) {
	var plan plansdomain.Plan
	if err := r.db.WithContext(ctx).First(&plan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, plansdomain.ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *PostgresRepository) CreatePlan(ctx context.Context, plan *plansdomain.Plan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *PostgresRepository) CountPlans(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&plansdomain.Plan{}).Count(&count).Error
	return count, err
}
