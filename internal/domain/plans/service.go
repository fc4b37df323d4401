package plans

import (
	"context"
	"strings"
	"time"

	"fitclub-go/internal/validation"
)

type Service struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, cache: noopCache{}}
}

// NewServiceWithCache keeps the plan catalogue in cache for ttl. Plans change rarely
// and are read by every member form.
func NewServiceWithCache(repo Repository, cache Cache, ttl time.Duration) *Service {
	if cache == nil || ttl <= 0 {
		return NewService(repo)
	}
	return &Service{repo: repo, cache: cache, cacheTTL: ttl}
}

func (s *Service) ListPlans(ctx context.Context) ([]Plan, error) {
	if cached, ok := s.cache.Get(); ok {
		return cached, nil
	}

	items, err := s.repo.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(items, s.cacheTTL)
	return items, nil
}

func (s *Service) GetPlan(ctx context.Context, id uint) (*Plan, error) {
	return s.repo.GetPlanByID(ctx, id)
}

func (s *Service) CreatePlan(ctx context.Context, input CreatePlanInput) (*Plan, error) {
	name := strings.TrimSpace(input.Name)
	errs := &validation.Errors{}
	if name == "" {
		errs.Add("name", "plan name is required")
	}
	if input.MonthlyPrice < 0 {
		errs.Add("monthly_price", "monthly price must not be negative")
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	plan := Plan{
		Name:         name,
		Description:  strings.TrimSpace(input.Description),
		MonthlyPrice: input.MonthlyPrice,
		Benefits:     strings.TrimSpace(input.Benefits),
	}
	if err := s.repo.CreatePlan(ctx, &plan); err != nil {
		return nil, err
	}

	s.cache.Clear()
	return &plan, nil
}

func (s *Service) CountPlans(ctx context.Context) (int64, error) {
	return s.repo.CountPlans(ctx)
}
