package members

import (
	"context"
	"errors"

	membersdomain "fitclub-go/internal/domain/members"
	"fitclub-go/internal/repository/postgres/pgerr"
	"gorm.io/gorm"
)

const emailIndex = "idx_members_email"

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(membersdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListMembers(ctx context.Context, filter membersdomain.ListFilter) ([]membersdomain.Member, int64, error) {
	query := r.db.WithContext(ctx).Model(&membersdomain.Member{})
	if filter.Search != "" {
		like := "%" + pgerr.EscapeLike(filter.Search) + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", like, like, like)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at desc, id desc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var items []membersdomain.Member
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PostgresRepository) ListAllMembers(ctx context.Context) ([]membersdomain.Member, error) {
	var items []membersdomain.Member
	if err := r.db.WithContext(ctx).Order("created_at desc, id desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetMemberByID(ctx context.Context, id uint) (*membersdomain.Member, error) {
	var member membersdomain.Member
	if err := r.db.WithContext(ctx).First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, membersdomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *PostgresRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&membersdomain.Member{}).
		Where("lower(email) = lower(?)", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) CreateMember(ctx context.Context, member *membersdomain.Member) error {
	err := r.db.WithContext(ctx).Create(member).Error
	if pgerr.IsUniqueViolationOn(err, emailIndex) {
		return membersdomain.ErrDuplicateEmail
	}
	return err
}

func (r *PostgresRepository) UpdateMember(ctx context.Context, member *membersdomain.Member) error {
	result := r.db.WithContext(ctx).
		Model(&membersdomain.Member{}).
		Where("id = ?", member.ID).
		Updates(map[string]interface{}{
			"first_name":        member.FirstName,
			"last_name":         member.LastName,
			"email":             member.Email,
			"phone":             member.Phone,
			"date_of_birth":     member.DateOfBirth,
			"gender":            member.Gender,
			"emergency_contact": member.EmergencyContact,
			"emergency_phone":   member.EmergencyPhone,
			"status":            member.Status,
		})
	if pgerr.IsUniqueViolationOn(result.Error, emailIndex) {
		return membersdomain.ErrDuplicateEmail
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return membersdomain.ErrMemberNotFound
	}
	return nil
}

func (r *PostgresRepository) UpdateMemberStatus(ctx context.Context, id uint, status string) error {
	result := r.db.WithContext(ctx).
		Model(&membersdomain.Member{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return membersdomain.ErrMemberNotFound
	}
	return nil
}

func (r *PostgresRepository) CreateMemberPlan(ctx context.Context, plan *membersdomain.MemberPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *PostgresRepository) ListMemberPlans(ctx context.Context, memberID uint) ([]membersdomain.MemberPlanDetail, error) {
	var rows []membersdomain.MemberPlanDetail
	if err := r.db.WithContext(ctx).
		Table("member_plans").
		Select("member_plans.*, membership_plans.name AS plan_name, membership_plans.monthly_price AS monthly_price").
		Joins("join membership_plans on membership_plans.id = member_plans.plan_id").
		Where("member_plans.member_id = ?", memberID).
		Order("member_plans.id desc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) CurrentPlanNames(ctx context.Context, memberIDs []uint) (map[uint]string, error) {
	result := make(map[uint]string, len(memberIDs))
	if len(memberIDs) == 0 {
		return result, nil
	}

	type planRow struct {
		MemberID uint   `gorm:"column:member_id"`
		PlanName string `gorm:"column:plan_name"`
	}

	var rows []planRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT ON (member_plans.member_id) member_plans.member_id, membership_plans.name AS plan_name
		FROM member_plans
		JOIN membership_plans ON membership_plans.id = member_plans.plan_id
		WHERE member_plans.member_id IN ?
		ORDER BY member_plans.member_id, member_plans.id DESC`, memberIDs).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.MemberID] = row.PlanName
	}
	return result, nil
}
