package dashboard

import (
	"context"
	"time"

	"fitclub-go/internal/domain/members"
	"fitclub-go/internal/domain/sessions"
)

type Repository interface {
	MemberCounts(ctx context.Context) (MemberCounts, error)
	SessionCounts(ctx context.Context, today time.Time) (SessionCounts, error)
	// EstimatedRevenue sums monthly_price over active assignments of active members.
	EstimatedRevenue(ctx context.Context) (float64, error)
	PlanPopularity(ctx context.Context) ([]PlanPopularity, error)
	RecentMembers(ctx context.Context, limit int) ([]members.Member, error)
	UpcomingSessions(ctx context.Context, from time.Time, limit int) ([]sessions.SessionWithTrainer, error)
}
