package dashboard

import (
	"context"
	"time"

	"fitclub-go/internal/domain/members"
	"fitclub-go/internal/domain/sessions"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	repo   Repository
	growth Growth
	now    func() time.Time
}

func NewService(repo Repository, growth Growth) *Service {
	return &Service{repo: repo, growth: growth, now: time.Now}
}

// Overview gathers the dashboard figures. The queries are independent and run concurrently;
// the first failure cancels the rest.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	y, m, d := s.now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	result := Overview{Growth: s.growth}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		counts, err := s.repo.MemberCounts(gctx)
		result.Members = counts
		return err
	})
	g.Go(func() error {
		counts, err := s.repo.SessionCounts(gctx, today)
		result.Sessions = counts
		return err
	})
	g.Go(func() error {
		revenue, err := s.repo.EstimatedRevenue(gctx)
		result.EstimatedRevenue = revenue
		return err
	})
	g.Go(func() error {
		popularity, err := s.repo.PlanPopularity(gctx)
		result.PlanPopularity = popularity
		return err
	})
	g.Go(func() error {
		recent, err := s.repo.RecentMembers(gctx, RecentMembersLimit)
		result.RecentMembers = recent
		return err
	})
	g.Go(func() error {
		upcoming, err := s.repo.UpcomingSessions(gctx, today, UpcomingSessionsLimit)
		result.UpcomingSessions = upcoming
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if result.PlanPopularity == nil {
		result.PlanPopularity = []PlanPopularity{}
	}
	if result.RecentMembers == nil {
		result.RecentMembers = []members.Member{}
	}
	if result.UpcomingSessions == nil {
		result.UpcomingSessions = []sessions.SessionWithTrainer{}
	}
	return &result, nil
}
