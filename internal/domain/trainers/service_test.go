package trainers

import (
	"context"
	"errors"
	"testing"

	"fitclub-go/internal/validation"
)

type fakeTrainerRepo struct {
	trainers []Trainer
}

func (r *fakeTrainerRepo) ListTrainers(ctx context.Context) ([]Trainer, error) {
	return r.trainers, nil
}

func (r *fakeTrainerRepo) GetTrainerByID(ctx context.Context, id uint) (*Trainer, error) {
	for _, trainer := range r.trainers {
		if trainer.ID == id {
			found := trainer
			return &found, nil
		}
	}
	return nil, ErrTrainerNotFound
}

func (r *fakeTrainerRepo) CreateTrainer(ctx context.Context, trainer *Trainer) error {
	trainer.ID = uint(len(r.trainers) + 1)
	r.trainers = append(r.trainers, *trainer)
	return nil
}

func (r *fakeTrainerRepo) CountTrainers(ctx context.Context) (int64, error) {
	return int64(len(r.trainers)), nil
}

func TestCreateTrainerTrimsInput(t *testing.T) {
	repo := &fakeTrainerRepo{}
	svc := NewService(repo)

	trainer, err := svc.CreateTrainer(context.Background(), CreateTrainerInput{Name: " Sarah Johnson ", Specialization: " Yoga"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if trainer.Name != "Sarah Johnson" || trainer.Specialization != "Yoga" {
		t.Fatalf("expected trimmed fields, got %+v", trainer)
	}

	found, err := svc.GetTrainer(context.Background(), trainer.ID)
	if err != nil || found.Name != "Sarah Johnson" {
		t.Fatalf("expected trainer lookup, got %+v %v", found, err)
	}
}

func TestCreateTrainerRequiresName(t *testing.T) {
	svc := NewService(&fakeTrainerRepo{})

	_, err := svc.CreateTrainer(context.Background(), CreateTrainerInput{Name: "  "})
	if verrs, ok := validation.As(err); !ok || verrs.Message("name") != "trainer name is required" {
		t.Fatalf("expected name error, got %v", err)
	}
}

func TestGetTrainerNotFound(t *testing.T) {
	svc := NewService(&fakeTrainerRepo{})
	if _, err := svc.GetTrainer(context.Background(), 3); !errors.Is(err, ErrTrainerNotFound) {
		t.Fatalf("expected ErrTrainerNotFound, got %v", err)
	}
}
