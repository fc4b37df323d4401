package trainers

import "context"

type Repository interface {
	ListTrainers(ctx context.Context) ([]Trainer, error)
	GetTrainerByID(ctx context.Context, id uint) (*Trainer, error)
	CreateTrainer(ctx context.Context, trainer *Trainer) error
	CountTrainers(ctx context.Context) (int64, error)
}
