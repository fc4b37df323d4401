package handler

import (
	"net/http"

	dashboarddomain "fitclub-go/internal/domain/dashboard"
)

type dashboardResponse struct {
	Members struct {
		Total    int64 `json:"total"`
		Active   int64 `json:"active"`
		Inactive int64 `json:"inactive"`
	} `json:"members"`
	Sessions struct {
		Total    int64 `json:"total"`
		Today    int64 `json:"today"`
		Upcoming int64 `json:"upcoming"`
	} `json:"sessions"`
	EstimatedRevenue float64                  `json:"estimated_revenue"`
	PlanPopularity   []planPopularityResponse `json:"plan_popularity"`
	RecentMembers    []memberResponse         `json:"recent_members"`
	UpcomingSessions []sessionResponse        `json:"upcoming_sessions"`
	Growth           struct {
		Members  float64 `json:"members"`
		Sessions float64 `json:"sessions"`
		Revenue  float64 `json:"revenue"`
	} `json:"growth"`
}

type planPopularityResponse struct {
	PlanID   uint   `json:"plan_id"`
	PlanName string `json:"plan_name"`
	Members  int64  `json:"members"`
}

func (h *Handlers) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.Dashboard.Overview(r.Context())
	if err != nil {
		h.writeServiceError(w, r, "load dashboard", err)
		return
	}
	writeJSON(w, http.StatusOK, h.toDashboardResponse(overview))
}

func (h *Handlers) toDashboardResponse(overview *dashboarddomain.Overview) dashboardResponse {
	var response dashboardResponse
	response.Members.Total = overview.Members.Total
	response.Members.Active = overview.Members.Active
	response.Members.Inactive = overview.Members.Inactive
	response.Sessions.Total = overview.Sessions.Total
	response.Sessions.Today = overview.Sessions.Today
	response.Sessions.Upcoming = overview.Sessions.Upcoming
	response.EstimatedRevenue = overview.EstimatedRevenue
	response.Growth.Members = overview.Growth.Members
	response.Growth.Sessions = overview.Growth.Sessions
	response.Growth.Revenue = overview.Growth.Revenue

	response.PlanPopularity = make([]planPopularityResponse, 0, len(overview.PlanPopularity))
	for _, item := range overview.PlanPopularity {
		response.PlanPopularity = append(response.PlanPopularity, planPopularityResponse{
			PlanID:   item.PlanID,
			PlanName: item.PlanName,
			Members:  item.Members,
		})
	}

	now := h.now()
	response.RecentMembers = make([]memberResponse, 0, len(overview.RecentMembers))
	for _, member := range overview.RecentMembers {
		response.RecentMembers = append(response.RecentMembers, toMemberResponse(member, now))
	}
	response.UpcomingSessions = make([]sessionResponse, 0, len(overview.UpcomingSessions))
	for _, session := range overview.UpcomingSessions {
		response.UpcomingSessions = append(response.UpcomingSessions, toSessionWithTrainerResponse(session))
	}
	return response
}
