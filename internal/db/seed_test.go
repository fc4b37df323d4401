package db

import (
	"context"
	"testing"

	"fitclub-go/internal/domain/members"
	"fitclub-go/internal/domain/plans"
	"fitclub-go/internal/domain/sessions"
	"fitclub-go/internal/domain/trainers"
	"fitclub-go/internal/repository/inmemory"
	"fitclub-go/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeeder(store *inmemory.Store) *Seeder {
	planService := plans.NewService(store.Plans())
	trainerService := trainers.NewService(store.Trainers())
	return &Seeder{
		Plans:    planService,
		Trainers: trainerService,
		Members:  members.NewService(store.Members(), planService),
		Sessions: sessions.NewService(store.Sessions(), trainerService),
		Log:      logger.Nop(),
	}
}

func TestDefaultCatalogue(t *testing.T) {
	catalogue, err := DefaultCatalogue()
	require.NoError(t, err)

	require.Len(t, catalogue.Plans, 3)
	assert.Equal(t, "Basic", catalogue.Plans[0].Name)
	assert.Equal(t, 79.99, catalogue.Plans[2].MonthlyPrice)
	require.Len(t, catalogue.Trainers, 3)
	assert.Equal(t, "Sarah Johnson", catalogue.Trainers[0].Name)
	assert.NotEmpty(t, catalogue.Members)
	assert.NotEmpty(t, catalogue.Sessions)
}

func TestParseCatalogueRejectsInvalidYAML(t *testing.T) {
	_, err := ParseCatalogue([]byte("plans: [unterminated"))
	assert.Error(t, err)
}

func TestSeedPopulatesEmptyStoreOnce(t *testing.T) {
	store := inmemory.NewStore()
	seeder := newSeeder(store)
	catalogue, err := DefaultCatalogue()
	require.NoError(t, err)
	ctx := context.Background()

	report, err := seeder.Seed(ctx, catalogue)
	require.NoError(t, err)
	assert.False(t, report.Skipped)
	assert.Equal(t, 3, report.Plans)
	assert.Equal(t, 3, report.Trainers)
	assert.Equal(t, len(catalogue.Members), report.Members)
	assert.Equal(t, len(catalogue.Sessions), report.Sessions)
	assert.Equal(t, 3, report.Bookings)

	names, err := store.Members().CurrentPlanNames(ctx, []uint{1})
	require.NoError(t, err)
	assert.Equal(t, "Pro", names[1])

	session, err := store.Sessions().GetSessionByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, session.CurrentBookings)

	again, err := seeder.Seed(ctx, catalogue)
	require.NoError(t, err)
	assert.True(t, again.Skipped)
	count, _ := store.Plans().CountPlans(ctx)
	assert.EqualValues(t, 3, count)
}

func TestSeedRejectsUnknownPlan(t *testing.T) {
	seeder := newSeeder(inmemory.NewStore())

	_, err := seeder.Seed(context.Background(), Catalogue{
		Members: []SeedMember{{FirstName: "A", LastName: "B", Email: "a@b.c", Plan: "Platinum"}},
	})
	assert.ErrorContains(t, err, "unknown plan")
}
