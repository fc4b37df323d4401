package members

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"fitclub-go/internal/domain/paging"
	"fitclub-go/internal/domain/plans"
	"fitclub-go/internal/validation"
	"gorm.io/datatypes"
)

const (
	msgInvalidBirthDate = "invalid date of birth"
	msgFutureBirthDate  = "date of birth cannot be in the future"
	msgInvalidPlan      = "selected membership plan does not exist"
	msgInvalidStatus    = "status must be active or inactive"
)

var memberMessages = validation.Messages{
	"first_name.required": "first name is required",
	"last_name.required":  "last name is required",
	"email.required":      "email is required",
	"email.contains":      "invalid email address",
}

type registrationFields struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,contains=@"`
}

// edits only require the names and email; format and uniqueness are not rechecked
type editFields struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required"`
}

type PlanLookup interface {
	GetPlan(ctx context.Context, id uint) (*plans.Plan, error)
}

type Service struct {
	repo  Repository
	plans PlanLookup
	now   func() time.Time
}

func NewService(repo Repository, plans PlanLookup) *Service {
	return &Service{repo: repo, plans: plans, now: time.Now}
}

func (s *Service) ListMembers(ctx context.Context, search string, page int) (paging.Page[Member], error) {
	page = paging.Normalize(page)
	items, total, err := s.repo.ListMembers(ctx, ListFilter{
		Search: strings.TrimSpace(search),
		Limit:  paging.DefaultSize,
		Offset: paging.Offset(page, paging.DefaultSize),
	})
	if err != nil {
		return paging.Page[Member]{}, err
	}
	if items == nil {
		items = []Member{}
	}
	return paging.Page[Member]{Items: items, Total: total, Number: page, Size: paging.DefaultSize}, nil
}

func (s *Service) ListAllMembers(ctx context.Context) ([]Member, error) {
	return s.repo.ListAllMembers(ctx)
}

func (s *Service) CurrentPlanNames(ctx context.Context, memberIDs []uint) (map[uint]string, error) {
	return s.repo.CurrentPlanNames(ctx, memberIDs)
}

func (s *Service) GetMember(ctx context.Context, id uint) (*Member, error) {
	return s.repo.GetMemberByID(ctx, id)
}

func (s *Service) GetMemberDetail(ctx context.Context, id uint) (*Detail, error) {
	member, err := s.repo.GetMemberByID(ctx, id)
	if err != nil {
		return nil, err
	}

	history, err := s.repo.ListMemberPlans(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &Detail{Member: *member, Plans: history}
	if len(history) > 0 {
		current := history[0]
		detail.CurrentPlan = &current
	}
	return detail, nil
}

// Register validates input and creates an active member, plus a plan assignment
// when a plan is selected. All field problems are returned together as *validation.Errors.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*Member, error) {
	input = trimRegisterInput(input)

	errs := &validation.Errors{}
	if err := validation.Struct(registrationFields{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
	}, memberMessages, errs); err != nil {
		return nil, err
	}

	today := civilDate(s.now())
	dob := parseBirthDate(input.DateOfBirth, today, true, errs)

	if !errs.Has("email") {
		exists, err := s.repo.EmailExists(ctx, input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			errs.Add("email", ErrDuplicateEmail.Error())
		}
	}

	planID, err := s.resolvePlan(ctx, input.PlanID, errs)
	if err != nil {
		return nil, err
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}

	member := Member{
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		Email:            input.Email,
		Phone:            input.Phone,
		DateOfBirth:      dob,
		Gender:           input.Gender,
		EmergencyContact: input.EmergencyContact,
		EmergencyPhone:   input.EmergencyPhone,
		JoinDate:         datatypes.Date(today),
		Status:           StatusActive,
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.CreateMember(ctx, &member); err != nil {
			return err
		}
		if planID == 0 {
			return nil
		}
		return tx.CreateMemberPlan(ctx, &MemberPlan{
			MemberID:  member.ID,
			PlanID:    planID,
			StartDate: datatypes.Date(today),
			Status:    PlanStatusActive,
		})
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, validation.Single("email", ErrDuplicateEmail.Error())
		}
		return nil, err
	}

	return &member, nil
}

// UpdateMember applies an edit. Unlike Register it does not check the email format
// or uniqueness up front.
func (s *Service) UpdateMember(ctx context.Context, input UpdateInput) (*Member, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.TrimSpace(input.Email)
	input.Status = strings.ToLower(strings.TrimSpace(input.Status))
	if input.Status == "" {
		input.Status = StatusActive
	}

	errs := &validation.Errors{}
	if err := validation.Struct(editFields{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
	}, memberMessages, errs); err != nil {
		return nil, err
	}

	dob := parseBirthDate(strings.TrimSpace(input.DateOfBirth), civilDate(s.now()), false, errs)

	if input.Status != StatusActive && input.Status != StatusInactive {
		errs.Add("status", msgInvalidStatus)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	var updated Member
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		member, err := tx.GetMemberByID(ctx, input.ID)
		if err != nil {
			return err
		}

		member.FirstName = input.FirstName
		member.LastName = input.LastName
		member.Email = input.Email
		member.Phone = strings.TrimSpace(input.Phone)
		member.DateOfBirth = dob
		member.Gender = strings.TrimSpace(input.Gender)
		member.EmergencyContact = strings.TrimSpace(input.EmergencyContact)
		member.EmergencyPhone = strings.TrimSpace(input.EmergencyPhone)
		member.Status = input.Status

		if err := tx.UpdateMember(ctx, member); err != nil {
			return err
		}
		updated = *member
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// ToggleStatus flips active to inactive and anything else to active.
func (s *Service) ToggleStatus(ctx context.Context, id uint) (string, error) {
	var newStatus string
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		member, err := tx.GetMemberByID(ctx, id)
		if err != nil {
			return err
		}

		newStatus = StatusActive
		if member.Status == StatusActive {
			newStatus = StatusInactive
		}
		return tx.UpdateMemberStatus(ctx, id, newStatus)
	})
	if err != nil {
		return "", err
	}
	return newStatus, nil
}

func (s *Service) resolvePlan(ctx context.Context, raw string, errs *validation.Errors) (uint, error) {
	if raw == "" {
		return 0, nil
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		errs.Add("plan_id", msgInvalidPlan)
		return 0, nil
	}

	if _, err := s.plans.GetPlan(ctx, uint(id)); err != nil {
		if errors.Is(err, plans.ErrPlanNotFound) {
			errs.Add("plan_id", msgInvalidPlan)
			return 0, nil
		}
		return 0, err
	}
	return uint(id), nil
}

func parseBirthDate(raw string, today time.Time, rejectFuture bool, errs *validation.Errors) *datatypes.Date {
	if raw == "" {
		return nil
	}

	parsed, err := time.Parse(DateLayout, raw)
	if err != nil {
		errs.Add("date_of_birth", msgInvalidBirthDate)
		return nil
	}
	if rejectFuture && parsed.After(today) {
		errs.Add("date_of_birth", msgFutureBirthDate)
		return nil
	}

	dob := datatypes.Date(parsed)
	return &dob
}

func trimRegisterInput(input RegisterInput) RegisterInput {
	return RegisterInput{
		FirstName:        strings.TrimSpace(input.FirstName),
		LastName:         strings.TrimSpace(input.LastName),
		Email:            strings.TrimSpace(input.Email),
		Phone:            strings.TrimSpace(input.Phone),
		DateOfBirth:      strings.TrimSpace(input.DateOfBirth),
		Gender:           strings.TrimSpace(input.Gender),
		EmergencyContact: strings.TrimSpace(input.EmergencyContact),
		EmergencyPhone:   strings.TrimSpace(input.EmergencyPhone),
		PlanID:           strings.TrimSpace(input.PlanID),
	}
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
