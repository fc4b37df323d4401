// Package inmemory keeps every table in process memory. It backs STORAGE=memory and the
// handler tests, and follows the same ordering and uniqueness rules as the postgres repositories.
package inmemory

import (
	"maps"
	"strings"
	"sync"
	"time"

	membersdomain "fitclub-go/internal/domain/members"
	plansdomain "fitclub-go/internal/domain/plans"
	sessionsdomain "fitclub-go/internal/domain/sessions"
	trainersdomain "fitclub-go/internal/domain/trainers"
)

type state struct {
	members     map[uint]membersdomain.Member
	memberPlans map[uint]membersdomain.MemberPlan
	plans       map[uint]plansdomain.Plan
	trainers    map[uint]trainersdomain.Trainer
	sessions    map[uint]sessionsdomain.WorkoutSession
	bookings    map[uint]sessionsdomain.Booking
	sequences   map[string]uint
}

func newState() *state {
	return &state{
		members:     make(map[uint]membersdomain.Member),
		memberPlans: make(map[uint]membersdomain.MemberPlan),
		plans:       make(map[uint]plansdomain.Plan),
		trainers:    make(map[uint]trainersdomain.Trainer),
		sessions:    make(map[uint]sessionsdomain.WorkoutSession),
		bookings:    make(map[uint]sessionsdomain.Booking),
		sequences:   make(map[string]uint),
	}
}

func (s *state) clone() *state {
	return &state{
		members:     maps.Clone(s.members),
		memberPlans: maps.Clone(s.memberPlans),
		plans:       maps.Clone(s.plans),
		trainers:    maps.Clone(s.trainers),
		sessions:    maps.Clone(s.sessions),
		bookings:    maps.Clone(s.bookings),
		sequences:   maps.Clone(s.sequences),
	}
}

func (s *state) nextID(table string) uint {
	s.sequences[table]++
	return s.sequences[table]
}

// Store guards all tables with one mutex. A transaction works on a copy of the tables
// and swaps it in only when the callback succeeds.
type Store struct {
	mu   sync.Mutex
	data *state
	now  func() time.Time
}

func NewStore() *Store {
	return &Store{data: newState(), now: time.Now}
}

func (s *Store) Members() *MembersRepository {
	return &MembersRepository{scope: scope{store: s}}
}

func (s *Store) Plans() *PlansRepository {
	return &PlansRepository{scope: scope{store: s}}
}

func (s *Store) Trainers() *TrainersRepository {
	return &TrainersRepository{scope: scope{store: s}}
}

func (s *Store) Sessions() *SessionsRepository {
	return &SessionsRepository{scope: scope{store: s}}
}

func (s *Store) Dashboard() *DashboardRepository {
	return &DashboardRepository{scope: scope{store: s}}
}

func (s *Store) view(fn func(*state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

func (s *Store) transaction(fn func(*state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.data.clone()
	if err := fn(working); err != nil {
		return err
	}
	s.data = working
	return nil
}

// scope is embedded by every repository view. Inside a transaction tx is the working
// copy and the store lock is already held.
type scope struct {
	store *Store
	tx    *state
}

func (c scope) read(fn func(*state) error) error {
	if c.tx != nil {
		return fn(c.tx)
	}
	return c.store.view(fn)
}

func (c scope) write(fn func(*state) error) error {
	if c.tx != nil {
		return fn(c.tx)
	}
	return c.store.transaction(fn)
}

func (c scope) begin(fn func(scope) error) error {
	if c.tx != nil {
		return fn(c)
	}
	return c.store.transaction(func(tx *state) error {
		return fn(scope{store: c.store, tx: tx})
	})
}

func (c scope) now() time.Time {
	return c.store.now().UTC()
}

func containsFold(value, needle string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(needle))
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
