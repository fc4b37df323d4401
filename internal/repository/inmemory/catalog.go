package inmemory

import (
	"context"
	"sort"

	plansdomain "fitclub-go/internal/domain/plans"
	trainersdomain "fitclub-go/internal/domain/trainers"
)

type PlansRepository struct {
	scope
}

func (r *PlansRepository) ListPlans(ctx context.Context) ([]plansdomain.Plan, error) {
	var items []plansdomain.Plan
	err := r.read(func(s *state) error {
		items = make([]plansdomain.Plan, 0, len(s.plans))
		for _, plan := range s.plans {
			items = append(items, plan)
		}
		sort.Slice(items, func(i, j int) bool {
			if items[i].MonthlyPrice != items[j].MonthlyPrice {
				return items[i].MonthlyPrice < items[j].MonthlyPrice
			}
			return items[i].ID < items[j].ID
		})
		return nil
	})
	return items, err
}

func (r *PlansRepository) GetPlanByID(ctx context.Context, id uint) (*plansdomain.Plan, error) {
	var found plansdomain.Plan
	err := r.read(func(s *state) error {
		plan, ok := s.plans[id]
		if !ok {
			return plansdomain.ErrPlanNotFound
		}
		found = plan
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *PlansRepository) CreatePlan(ctx context.Context, plan *plansdomain.Plan) error {
	return r.write(func(s *state) error {
		plan.ID = s.nextID("membership_plans")
		if plan.CreatedAt.IsZero() {
			plan.CreatedAt = r.now()
		}
		s.plans[plan.ID] = *plan
		return nil
	})
}

func (r *PlansRepository) CountPlans(ctx context.Context) (int64, error) {
	var count int64
	err := r.read(func(s *state) error {
		count = int64(len(s.plans))
		return nil
	})
	return count, err
}

type TrainersRepository struct {
	scope
}

func (r *TrainersRepository) ListTrainers(ctx context.Context) ([]trainersdomain.Trainer, error) {
	var items []trainersdomain.Trainer
	err := r.read(func(s *state) error {
		items = make([]trainersdomain.Trainer, 0, len(s.trainers))
		for _, trainer := range s.trainers {
			items = append(items, trainer)
		}
		sort.Slice(items, func(i, j int) bool {
			if items[i].Name != items[j].Name {
				return items[i].Name < items[j].Name
			}
			return items[i].ID < items[j].ID
		})
		return nil
	})
	return items, err
}

func (r *TrainersRepository) GetTrainerByID(ctx context.Context, id uint) (*trainersdomain.Trainer, error) {
	var found trainersdomain.Trainer
	err := r.read(func(s *state) error {
		trainer, ok := s.trainers[id]
		if !ok {
			return trainersdomain.ErrTrainerNotFound
		}
		found = trainer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *TrainersRepository) CreateTrainer(ctx context.Context, trainer *trainersdomain.Trainer) error {
	return r.write(func(s *state) error {
		trainer.ID = s.nextID("trainers")
		if trainer.CreatedAt.IsZero() {
			trainer.CreatedAt = r.now()
		}
		s.trainers[trainer.ID] = *trainer
		return nil
	})
}

func (r *TrainersRepository) CountTrainers(ctx context.Context) (int64, error) {
	var count int64
	err := r.read(func(s *state) error {
		count = int64(len(s.trainers))
		return nil
	})
	return count, err
}
