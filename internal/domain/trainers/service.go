package trainers

import (
	"context"
	"strings"

	"fitclub-go/internal/validation"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListTrainers(ctx context.Context) ([]Trainer, error) {
	return s.repo.ListTrainers(ctx)
}

func (s *Service) GetTrainer(ctx context.Context, id uint) (*Trainer, error) {
	return s.repo.GetTrainerByID(ctx, id)
}

func (s *Service) CreateTrainer(ctx context.Context, input CreateTrainerInput) (*Trainer, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, validation.Single("name", "trainer name is required")
	}

	trainer := Trainer{
		Name:           name,
		Specialization: strings.TrimSpace(input.Specialization),
		Email:          strings.TrimSpace(input.Email),
		Phone:          strings.TrimSpace(input.Phone),
	}
	if err := s.repo.CreateTrainer(ctx, &trainer); err != nil {
		return nil, err
	}
	return &trainer, nil
}

func (s *Service) CountTrainers(ctx context.Context) (int64, error) {
	return s.repo.CountTrainers(ctx)
}
