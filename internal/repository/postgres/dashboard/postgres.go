package dashboard

import (
	"context"
	"time"

	dashboarddomain "fitclub-go/internal/domain/dashboard"
	membersdomain "fitclub-go/internal/domain/members"
	sessionsdomain "fitclub-go/internal/domain/sessions"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) MemberCounts(ctx context.Context) (dashboarddomain.MemberCounts, error) {
	var counts dashboarddomain.MemberCounts
	if err := r.db.WithContext(ctx).Model(&membersdomain.Member{}).Count(&counts.Total).Error; err != nil {
		return counts, err
	}
	if err := r.db.WithContext(ctx).
		Model(&membersdomain.Member{}).
		Where("status = ?", membersdomain.StatusActive).
		Count(&counts.Active).Error; err != nil {
		return counts, err
	}
	counts.Inactive = counts.Total - counts.Active
	return counts, nil
}

func (r *PostgresRepository) SessionCounts(ctx context.Context, today time.Time) (dashboarddomain.SessionCounts, error) {
	day := today.Format(sessionsdomain.DateLayout)

	var counts dashboarddomain.SessionCounts
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE session_date = ?) AS today,
			COUNT(*) FILTER (WHERE session_date >= ?) AS upcoming
		FROM workout_sessions`, day, day).
		Scan(&counts).Error
	return counts, err
}

func (r *PostgresRepository) EstimatedRevenue(ctx context.Context) (float64, error) {
	var revenue float64
	err := r.db.WithContext(ctx).
		Table("member_plans").
		Select("COALESCE(SUM(membership_plans.monthly_price), 0)").
		Joins("join membership_plans on membership_plans.id = member_plans.plan_id").
		Joins("join members on members.id = member_plans.member_id").
		Where("member_plans.status = ? AND members.status = ?", membersdomain.PlanStatusActive, membersdomain.StatusActive).
		Scan(&revenue).Error
	return revenue, err
}

func (r *PostgresRepository) PlanPopularity(ctx context.Context) ([]dashboarddomain.PlanPopularity, error) {
	var rows []dashboarddomain.PlanPopularity
	if err := r.db.WithContext(ctx).
		Table("membership_plans").
		Select("membership_plans.id AS plan_id, membership_plans.name AS plan_name, COUNT(member_plans.id) AS members").
		Joins("left join member_plans on member_plans.plan_id = membership_plans.id").
		Group("membership_plans.id, membership_plans.name").
		Order("membership_plans.id asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) RecentMembers(ctx context.Context, limit int) ([]membersdomain.Member, error) {
	var items []membersdomain.Member
	if err := r.db.WithContext(ctx).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) UpcomingSessions(ctx context.Context, from time.Time, limit int) ([]sessionsdomain.SessionWithTrainer, error) {
	var items []sessionsdomain.SessionWithTrainer
	if err := r.db.WithContext(ctx).
		Table("workout_sessions").
		Select("workout_sessions.*, COALESCE(trainers.name, '') AS trainer_name").
		Joins("left join trainers on trainers.id = workout_sessions.trainer_id").
		Where("workout_sessions.session_date >= ?", from.Format(sessionsdomain.DateLayout)).
		Order("workout_sessions.session_date asc, workout_sessions.start_time asc, workout_sessions.id asc").
		Limit(limit).
		Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
