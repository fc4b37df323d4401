package inmemory

import (
	"context"
	"sort"
	"time"

	dashboarddomain "fitclub-go/internal/domain/dashboard"
	membersdomain "fitclub-go/internal/domain/members"
	sessionsdomain "fitclub-go/internal/domain/sessions"
)

type DashboardRepository struct {
	scope
}

func (r *DashboardRepository) MemberCounts(ctx context.Context) (dashboarddomain.MemberCounts, error) {
	var counts dashboarddomain.MemberCounts
	err := r.read(func(s *state) error {
		for _, member := range s.members {
			counts.Total++
			if member.Status == membersdomain.StatusActive {
				counts.Active++
			}
		}
		counts.Inactive = counts.Total - counts.Active
		return nil
	})
	return counts, err
}

func (r *DashboardRepository) SessionCounts(ctx context.Context, today time.Time) (dashboarddomain.SessionCounts, error) {
	var counts dashboarddomain.SessionCounts
	err := r.read(func(s *state) error {
		for _, session := range s.sessions {
			day := time.Time(session.SessionDate)
			counts.Total++
			if sameDay(day, today) {
				counts.Today++
			}
			if notBefore(day, today) {
				counts.Upcoming++
			}
		}
		return nil
	})
	return counts, err
}

func (r *DashboardRepository) EstimatedRevenue(ctx context.Context) (float64, error) {
	var revenue float64
	err := r.read(func(s *state) error {
		for _, assignment := range s.memberPlans {
			if assignment.Status != membersdomain.PlanStatusActive {
				continue
			}
			if s.members[assignment.MemberID].Status != membersdomain.StatusActive {
				continue
			}
			revenue += s.plans[assignment.PlanID].MonthlyPrice
		}
		return nil
	})
	return revenue, err
}

func (r *DashboardRepository) PlanPopularity(ctx context.Context) ([]dashboarddomain.PlanPopularity, error) {
	var rows []dashboarddomain.PlanPopularity
	err := r.read(func(s *state) error {
		counts := make(map[uint]int64, len(s.plans))
		for _, assignment := range s.memberPlans {
			counts[assignment.PlanID]++
		}
		rows = make([]dashboarddomain.PlanPopularity, 0, len(s.plans))
		for id, plan := range s.plans {
			rows = append(rows, dashboarddomain.PlanPopularity{PlanID: id, PlanName: plan.Name, Members: counts[id]})
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].PlanID < rows[j].PlanID })
		return nil
	})
	return rows, err
}

func (r *DashboardRepository) RecentMembers(ctx context.Context, limit int) ([]membersdomain.Member, error) {
	var items []membersdomain.Member
	err := r.read(func(s *state) error {
		items = page(sortedMembers(s), limit, 0)
		return nil
	})
	return items, err
}

func (r *DashboardRepository) UpcomingSessions(ctx context.Context, from time.Time, limit int) ([]sessionsdomain.SessionWithTrainer, error) {
	var items []sessionsdomain.SessionWithTrainer
	err := r.read(func(s *state) error {
		upcoming := sessionsWithTrainer(s, func(session sessionsdomain.WorkoutSession) bool {
			return notBefore(time.Time(session.SessionDate), from)
		})
		items = page(upcoming, limit, 0)
		return nil
	})
	return items, err
}
