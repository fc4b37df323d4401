package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"fitclub-go/internal/domain/members"
	"fitclub-go/internal/domain/sessions"
)

type fakeDashboardRepo struct {
	sessionsErr error
	today       time.Time
	from        time.Time
	recentLimit int
}

func (r *fakeDashboardRepo) MemberCounts(ctx context.Context) (MemberCounts, error) {
	return MemberCounts{Total: 3, Active: 2, Inactive: 1}, nil
}

func (r *fakeDashboardRepo) SessionCounts(ctx context.Context, today time.Time) (SessionCounts, error) {
	r.today = today
	if r.sessionsErr != nil {
		return SessionCounts{}, r.sessionsErr
	}
	return SessionCounts{Total: 4, Today: 1, Upcoming: 3}, nil
}

func (r *fakeDashboardRepo) EstimatedRevenue(ctx context.Context) (float64, error) {
	return 79.98, nil
}

func (r *fakeDashboardRepo) PlanPopularity(ctx context.Context) ([]PlanPopularity, error) {
	return []PlanPopularity{{PlanID: 1, PlanName: "Basic", Members: 2}, {PlanID: 3, PlanName: "Elite"}}, nil
}

func (r *fakeDashboardRepo) RecentMembers(ctx context.Context, limit int) ([]members.Member, error) {
	r.recentLimit = limit
	return nil, nil
}

func (r *fakeDashboardRepo) UpcomingSessions(ctx context.Context, from time.Time, limit int) ([]sessions.SessionWithTrainer, error) {
	r.from = from
	return nil, nil
}

func TestOverviewCombinesFigures(t *testing.T) {
	repo := &fakeDashboardRepo{}
	svc := NewService(repo, Growth{Members: 12.5, Sessions: 8.3, Revenue: 15.2})
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 18, 45, 0, 0, time.UTC) }

	overview, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if overview.Members.Active != 2 || overview.Members.Inactive != 1 {
		t.Fatalf("unexpected member counts %+v", overview.Members)
	}
	if overview.Sessions.Today != 1 || overview.EstimatedRevenue != 79.98 {
		t.Fatalf("unexpected figures %+v", overview)
	}
	if len(overview.PlanPopularity) != 2 || overview.PlanPopularity[1].Members != 0 {
		t.Fatalf("expected zero-member plan kept, got %+v", overview.PlanPopularity)
	}
	if overview.RecentMembers == nil || overview.UpcomingSessions == nil {
		t.Fatalf("expected empty slices instead of nil")
	}
	if overview.Growth.Revenue != 15.2 {
		t.Fatalf("expected configured growth, got %+v", overview.Growth)
	}
	if repo.recentLimit != RecentMembersLimit {
		t.Fatalf("expected limit %d, got %d", RecentMembersLimit, repo.recentLimit)
	}
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	if !repo.today.Equal(want) || !repo.from.Equal(want) {
		t.Fatalf("expected midnight of today, got %s / %s", repo.today, repo.from)
	}
}

func TestOverviewReturnsFirstError(t *testing.T) {
	boom := errors.New("db down")
	svc := NewService(&fakeDashboardRepo{sessionsErr: boom}, Growth{})

	if _, err := svc.Overview(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected db error, got %v", err)
	}
}
