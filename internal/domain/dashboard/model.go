package dashboard

import (
	"fitclub-go/internal/domain/members"
	"fitclub-go/internal/domain/sessions"
)

const (
	RecentMembersLimit    = 5
	UpcomingSessionsLimit = 5
)

type MemberCounts struct {
	Total    int64
	Active   int64
	Inactive int64
}

type SessionCounts struct {
	Total    int64
	Today    int64
	Upcoming int64
}

// PlanPopularity counts assignment rows per plan, including plans nobody holds.
type PlanPopularity struct {
	PlanID   uint
	PlanName string
	Members  int64
}

// Growth figures are placeholders supplied by configuration.
type Growth struct {
	Members  float64
	Sessions float64
	Revenue  float64
}

type Overview struct {
	Members          MemberCounts
	Sessions         SessionCounts
	EstimatedRevenue float64
	PlanPopularity   []PlanPopularity
	RecentMembers    []members.Member
	UpcomingSessions []sessions.SessionWithTrainer
	Growth           Growth
}
