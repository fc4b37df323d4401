package db

import (
	"context"
	_ "embed"
	"fmt"
	"strconv"
	"time"

	"fitclub-go/internal/domain/members"
	"fitclub-go/internal/domain/plans"
	"fitclub-go/internal/domain/sessions"
	"fitclub-go/internal/domain/trainers"
	"fitclub-go/pkg/logger"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

type Catalogue struct {
	Plans    []SeedPlan    `yaml:"plans"`
	Trainers []SeedTrainer `yaml:"trainers"`
	Members  []SeedMember  `yaml:"members"`
	Sessions []SeedSession `yaml:"sessions"`
}

type SeedPlan struct {
	Name         string  `yaml:"name"`
	Description  string  `yaml:"description"`
	MonthlyPrice float64 `yaml:"monthly_price"`
	Benefits     string  `yaml:"benefits"`
}

type SeedTrainer struct {
	Name           string `yaml:"name"`
	Specialization string `yaml:"specialization"`
	Email          string `yaml:"email"`
	Phone          string `yaml:"phone"`
}

type SeedMember struct {
	FirstName        string `yaml:"first_name"`
	LastName         string `yaml:"last_name"`
	Email            string `yaml:"email"`
	Phone            string `yaml:"phone"`
	DateOfBirth      string `yaml:"date_of_birth"`
	Gender           string `yaml:"gender"`
	EmergencyContact string `yaml:"emergency_contact"`
	EmergencyPhone   string `yaml:"emergency_phone"`
	Plan             string `yaml:"plan"`
}

type SeedSession struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Trainer     string   `yaml:"trainer"`
	DayOffset   int      `yaml:"day_offset"`
	StartTime   string   `yaml:"start_time"`
	EndTime     string   `yaml:"end_time"`
	MaxCapacity int      `yaml:"max_capacity"`
	Bookings    []string `yaml:"bookings"`
}

func DefaultCatalogue() (Catalogue, error) {
	return ParseCatalogue(seedYAML)
}

func ParseCatalogue(data []byte) (Catalogue, error) {
	var catalogue Catalogue
	if err := yaml.Unmarshal(data, &catalogue); err != nil {
		return Catalogue{}, fmt.Errorf("parse seed catalogue: %w", err)
	}
	return catalogue, nil
}

// Seeder writes the catalogue through the domain services so seeded rows pass the
// same validation as user input.
type Seeder struct {
	Plans    *plans.Service
	Trainers *trainers.Service
	Members  *members.Service
	Sessions *sessions.Service
	Log      logger.Logger
	Now      func() time.Time
}

type SeedReport struct {
	Skipped  bool
	Plans    int
	Trainers int
	Members  int
	Sessions int
	Bookings int
}

// Seed loads the catalogue into an empty database. A database that already has
// membership plans is left untouched.
func (s *Seeder) Seed(ctx context.Context, catalogue Catalogue) (SeedReport, error) {
	var report SeedReport

	count, err := s.Plans.CountPlans(ctx)
	if err != nil {
		return report, err
	}
	if count > 0 {
		s.Log.Info("db.seed: plans present, skipping", "plans", count)
		report.Skipped = true
		return report, nil
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	planIDs := make(map[string]uint, len(catalogue.Plans))
	for _, item := range catalogue.Plans {
		plan, err := s.Plans.CreatePlan(ctx, plans.CreatePlanInput{
			Name:         item.Name,
			Description:  item.Description,
			MonthlyPrice: item.MonthlyPrice,
			Benefits:     item.Benefits,
		})
		if err != nil {
			return report, fmt.Errorf("seed plan %q: %w", item.Name, err)
		}
		planIDs[item.Name] = plan.ID
		report.Plans++
	}

	trainerIDs := make(map[string]uint, len(catalogue.Trainers))
	for _, item := range catalogue.Trainers {
		trainer, err := s.Trainers.CreateTrainer(ctx, trainers.CreateTrainerInput{
			Name:           item.Name,
			Specialization: item.Specialization,
			Email:          item.Email,
			Phone:          item.Phone,
		})
		if err != nil {
			return report, fmt.Errorf("seed trainer %q: %w", item.Name, err)
		}
		trainerIDs[item.Name] = trainer.ID
		report.Trainers++
	}

	memberIDs := make(map[string]uint, len(catalogue.Members))
	for _, item := range catalogue.Members {
		input := members.RegisterInput{
			FirstName:        item.FirstName,
			LastName:         item.LastName,
			Email:            item.Email,
			Phone:            item.Phone,
			DateOfBirth:      item.DateOfBirth,
			Gender:           item.Gender,
			EmergencyContact: item.EmergencyContact,
			EmergencyPhone:   item.EmergencyPhone,
		}
		if item.Plan != "" {
			id, ok := planIDs[item.Plan]
			if !ok {
				return report, fmt.Errorf("seed member %q: unknown plan %q", item.Email, item.Plan)
			}
			input.PlanID = strconv.FormatUint(uint64(id), 10)
		}

		member, err := s.Members.Register(ctx, input)
		if err != nil {
			return report, fmt.Errorf("seed member %q: %w", item.Email, err)
		}
		memberIDs[item.Email] = member.ID
		report.Members++
	}

	today := now()
	for _, item := range catalogue.Sessions {
		trainerID, ok := trainerIDs[item.Trainer]
		if !ok {
			return report, fmt.Errorf("seed session %q: unknown trainer %q", item.Title, item.Trainer)
		}
		input := sessions.ScheduleInput{
			Title:       item.Title,
			Description: item.Description,
			TrainerID:   strconv.FormatUint(uint64(trainerID), 10),
			SessionDate: today.AddDate(0, 0, item.DayOffset).Format(sessions.DateLayout),
			StartTime:   item.StartTime,
			EndTime:     item.EndTime,
		}
		if item.MaxCapacity > 0 {
			input.MaxCapacity = strconv.Itoa(item.MaxCapacity)
		}

		session, err := s.Sessions.Schedule(ctx, input)
		if err != nil {
			return report, fmt.Errorf("seed session %q: %w", item.Title, err)
		}
		report.Sessions++

		for _, email := range item.Bookings {
			memberID, ok := memberIDs[email]
			if !ok {
				return report, fmt.Errorf("seed booking: unknown member %q", email)
			}
			if _, err := s.Sessions.Book(ctx, session.ID, memberID); err != nil {
				return report, fmt.Errorf("seed booking %q on %q: %w", email, item.Title, err)
			}
			report.Bookings++
		}
	}

	s.Log.Info("db.seed: done",
		"plans", report.Plans,
		"trainers", report.Trainers,
		"members", report.Members,
		"sessions", report.Sessions,
		"bookings", report.Bookings,
	)
	return report, nil
}
