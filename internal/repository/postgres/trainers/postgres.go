package trainers

import (
	"context"
	"errors"

	trainersdomain "fitclub-go/internal/domain/trainers"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListTrainers(ctx context.Context) ([]trainersdomain.Trainer, error) {
	var items []trainersdomain.Trainer
	if err := r.db.WithContext(ctx).Order("name asc, id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetTrainerByID(ctx context.Context, id uint) (*trainersdomain.Trainer, error) {
	var trainer trainersdomain.Trainer
	if err := r.db.WithContext(ctx).First(&trainer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, trainersdomain.ErrTrainerNotFound
		}
		return nil, err
	}
	return &trainer, nil
}

func (r *PostgresRepository) CreateTrainer(ctx context.Context, trainer *trainersdomain.Trainer) error {
	return r.db.WithContext(ctx).Create(trainer).Error
}

func (r *PostgresRepository) CountTrainers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&trainersdomain.Trainer{}).Count(&count).Error
	return count, err
}
