package members

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	ListMembers(ctx context.Context, filter ListFilter) ([]Member, int64, error)
	ListAllMembers(ctx context.Context) ([]Member, error)
	GetMemberByID(ctx context.Context, id uint) (*Member, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateMember(ctx context.Context, member *Member) error
	UpdateMember(ctx context.Context, member *Member) error
	UpdateMemberStatus(ctx context.Context, id uint, status string) error

	CreateMemberPlan(ctx context.Context, plan *MemberPlan) error
	// ListMemberPlans returns the member's assignments, most recently created first.
	ListMemberPlans(ctx context.Context, memberID uint) ([]MemberPlanDetail, error)
	// CurrentPlanNames maps member id to the plan name of its most recently created assignment.
	CurrentPlanNames(ctx context.Context, memberIDs []uint) (map[uint]string, error)
}
