package inmemory

import (
	"context"
	"sort"
	"strings"

	membersdomain "fitclub-go/internal/domain/members"
)

type MembersRepository struct {
	scope
}

func (r *MembersRepository) Transaction(ctx context.Context, fn func(membersdomain.Repository) error) error {
	return r.begin(func(tx scope) error {
		return fn(&MembersRepository{scope: tx})
	})
}

func sortedMembers(s *state) []membersdomain.Member {
	items := make([]membersdomain.Member, 0, len(s.members))
	for _, member := range s.members {
		items = append(items, member)
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
	return items
}

func (r *MembersRepository) ListMembers(ctx context.Context, filter membersdomain.ListFilter) ([]membersdomain.Member, int64, error) {
	var (
		items []membersdomain.Member
		total int64
	)
	err := r.read(func(s *state) error {
		matched := make([]membersdomain.Member, 0)
		for _, member := range sortedMembers(s) {
			if filter.Search == "" ||
				containsFold(member.FirstName, filter.Search) ||
				containsFold(member.LastName, filter.Search) ||
				containsFold(member.Email, filter.Search) {
				matched = append(matched, member)
			}
		}
		total = int64(len(matched))
		items = page(matched, filter.Limit, filter.Offset)
		return nil
	})
	return items, total, err
}

func (r *MembersRepository) ListAllMembers(ctx context.Context) ([]membersdomain.Member, error) {
	var items []membersdomain.Member
	err := r.read(func(s *state) error {
		items = sortedMembers(s)
		return nil
	})
	return items, err
}

func (r *MembersRepository) GetMemberByID(ctx context.Context, id uint) (*membersdomain.Member, error) {
	var found membersdomain.Member
	err := r.read(func(s *state) error {
		member, ok := s.members[id]
		if !ok {
			return membersdomain.ErrMemberNotFound
		}
		found = member
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *MembersRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.read(func(s *state) error {
		exists = emailTaken(s, email, 0)
		return nil
	})
	return exists, err
}

func emailTaken(s *state, email string, exceptID uint) bool {
	for id, member := range s.members {
		if id != exceptID && strings.EqualFold(member.Email, email) {
			return true
		}
	}
	return false
}

func (r *MembersRepository) CreateMember(ctx context.Context, member *membersdomain.Member) error {
	return r.write(func(s *state) error {
		if emailTaken(s, member.Email, 0) {
			return membersdomain.ErrDuplicateEmail
		}
		member.ID = s.nextID("members")
		if member.CreatedAt.IsZero() {
			member.CreatedAt = r.now()
		}
		if member.Status == "" {
			member.Status = membersdomain.StatusActive
		}
		s.members[member.ID] = *member
		return nil
	})
}

func (r *MembersRepository) UpdateMember(ctx context.Context, member *membersdomain.Member) error {
	return r.write(func(s *state) error {
		existing, ok := s.members[member.ID]
		if !ok {
			return membersdomain.ErrMemberNotFound
		}
		if emailTaken(s, member.Email, member.ID) {
			return membersdomain.ErrDuplicateEmail
		}

		existing.FirstName = member.FirstName
		existing.LastName = member.LastName
		existing.Email = member.Email
		existing.Phone = member.Phone
		existing.DateOfBirth = member.DateOfBirth
		existing.Gender = member.Gender
		existing.EmergencyContact = member.EmergencyContact
		existing.EmergencyPhone = member.EmergencyPhone
		existing.Status = member.Status
		s.members[member.ID] = existing
		return nil
	})
}

func (r *MembersRepository) UpdateMemberStatus(ctx context.Context, id uint, status string) error {
	return r.write(func(s *state) error {
		member, ok := s.members[id]
		if !ok {
			return membersdomain.ErrMemberNotFound
		}
		member.Status = status
		s.members[id] = member
		return nil
	})
}

func (r *MembersRepository) CreateMemberPlan(ctx context.Context, plan *membersdomain.MemberPlan) error {
	return r.write(func(s *state) error {
		if _, ok := s.members[plan.MemberID]; !ok {
			return membersdomain.ErrMemberNotFound
		}
		plan.ID = s.nextID("member_plans")
		if plan.CreatedAt.IsZero() {
			plan.CreatedAt = r.now()
		}
		s.memberPlans[plan.ID] = *plan
		return nil
	})
}

// memberPlanHistory is newest first.
func memberPlanHistory(s *state, memberID uint) []membersdomain.MemberPlanDetail {
	history := make([]membersdomain.MemberPlanDetail, 0)
	for _, assignment := range s.memberPlans {
		if assignment.MemberID != memberID {
			continue
		}
		plan := s.plans[assignment.PlanID]
		history = append(history, membersdomain.MemberPlanDetail{
			MemberPlan:   assignment,
			PlanName:     plan.Name,
			MonthlyPrice: plan.MonthlyPrice,
		})
	}
	sort.Slice(history, func(i, j int) bool { return history[i].ID > history[j].ID })
	return history
}

func (r *MembersRepository) ListMemberPlans(ctx context.Context, memberID uint) ([]membersdomain.MemberPlanDetail, error) {
	var history []membersdomain.MemberPlanDetail
	err := r.read(func(s *state) error {
		history = memberPlanHistory(s, memberID)
		return nil
	})
	return history, err
}

func (r *MembersRepository) CurrentPlanNames(ctx context.Context, memberIDs []uint) (map[uint]string, error) {
	result := make(map[uint]string, len(memberIDs))
	err := r.read(func(s *state) error {
		for _, id := range memberIDs {
			if history := memberPlanHistory(s, id); len(history) > 0 {
				result[id] = history[0].PlanName
			}
		}
		return nil
	})
	return result, err
}
