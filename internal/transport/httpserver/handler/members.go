package handler

import (
	"net/http"
	"strings"

	membersdomain "fitclub-go/internal/domain/members"
)

type memberRequest struct {
	FirstName        formString `json:"first_name"`
	LastName         formString `json:"last_name"`
	Email            formString `json:"email"`
	Phone            formString `json:"phone"`
	DateOfBirth      formString `json:"date_of_birth"`
	Gender           formString `json:"gender"`
	EmergencyContact formString `json:"emergency_contact"`
	EmergencyPhone   formString `json:"emergency_phone"`
	PlanID           formString `json:"plan_id"`
	Status           formString `json:"status"`
}

type memberListResponse struct {
	pageResponse[memberResponse]
	Search string `json:"search"`
}

type memberDetailResponse struct {
	Member      memberResponse          `json:"member"`
	CurrentPlan *memberPlanResponse     `json:"current_plan"`
	Plans       []memberPlanResponse    `json:"plans"`
	Bookings    []memberBookingResponse `json:"bookings"`
}

type memberFormResponse struct {
	Member *memberResponse `json:"member,omitempty"`
	Plans  []planResponse  `json:"plans"`
}

func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	search := strings.TrimSpace(query.Get("search"))

	page, err := h.Members.ListMembers(r.Context(), search, parsePageParam(query.Get("page")))
	if err != nil {
		h.writeServiceError(w, r, "list members", err)
		return
	}

	ids := make([]uint, 0, len(page.Items))
	for _, member := range page.Items {
		ids = append(ids, member.ID)
	}
	currentPlans, err := h.Members.CurrentPlanNames(r.Context(), ids)
	if err != nil {
		h.writeServiceError(w, r, "list members", err)
		return
	}

	now := h.now()
	response := toPageResponse(page, func(member membersdomain.Member) memberResponse {
		item := toMemberResponse(member, now)
		if name, ok := currentPlans[member.ID]; ok {
			item.CurrentPlan = &name
		}
		return item
	})
	writeJSON(w, http.StatusOK, memberListResponse{pageResponse: response, Search: search})
}

func (h *Handlers) NewMemberForm(w http.ResponseWriter, r *http.Request) {
	items, err := h.Plans.ListPlans(r.Context())
	if err != nil {
		h.writeServiceError(w, r, "load plans", err)
		return
	}
	writeJSON(w, http.StatusOK, memberFormResponse{Plans: toPlanResponses(items)})
}

func (h *Handlers) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return
	}

	member, err := h.Members.Register(r.Context(), membersdomain.RegisterInput{
		FirstName:        req.FirstName.String(),
		LastName:         req.LastName.String(),
		Email:            req.Email.String(),
		Phone:            req.Phone.String(),
		DateOfBirth:      req.DateOfBirth.String(),
		Gender:           req.Gender.String(),
		EmergencyContact: req.EmergencyContact.String(),
		EmergencyPhone:   req.EmergencyPhone.String(),
		PlanID:           req.PlanID.String(),
	})
	if err != nil {
		h.writeServiceError(w, r, "register member", err)
		return
	}

	h.log.Info("members.register: created", "member_id", member.ID)
	writeJSON(w, http.StatusCreated, toMemberResponse(*member, h.now()))
}

func (h *Handlers) GetMember(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", membersdomain.ErrMemberNotFound.Error())
		return
	}

	detail, err := h.Members.GetMemberDetail(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, "load member", err)
		return
	}
	bookings, err := h.Sessions.MemberBookings(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, "load member", err)
		return
	}

	plans := make([]memberPlanResponse, 0, len(detail.Plans))
	for _, plan := range detail.Plans {
		plans = append(plans, toMemberPlanResponse(plan))
	}

	response := memberDetailResponse{
		Member:   toMemberResponse(detail.Member, h.now()),
		Plans:    plans,
		Bookings: toMemberBookingResponses(bookings),
	}
	if detail.CurrentPlan != nil {
		current := toMemberPlanResponse(*detail.CurrentPlan)
		response.CurrentPlan = &current
		response.Member.CurrentPlan = &current.PlanName
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) EditMemberForm(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", membersdomain.ErrMemberNotFound.Error())
		return
	}

	member, err := h.Members.GetMember(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, "load member", err)
		return
	}
	items, err := h.Plans.ListPlans(r.Context())
	if err != nil {
		h.writeServiceError(w, r, "load plans", err)
		return
	}

	response := toMemberResponse(*member, h.now())
	writeJSON(w, http.StatusOK, memberFormResponse{Member: &response, Plans: toPlanResponses(items)})
}

func (h *Handlers) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", membersdomain.ErrMemberNotFound.Error())
		return
	}

	var req memberRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return
	}

	member, err := h.Members.UpdateMember(r.Context(), membersdomain.UpdateInput{
		ID:               id,
		FirstName:        req.FirstName.String(),
		LastName:         req.LastName.String(),
		Email:            req.Email.String(),
		Phone:            req.Phone.String(),
		DateOfBirth:      req.DateOfBirth.String(),
		Gender:           req.Gender.String(),
		EmergencyContact: req.EmergencyContact.String(),
		EmergencyPhone:   req.EmergencyPhone.String(),
		Status:           req.Status.String(),
	})
	if err != nil {
		h.writeServiceError(w, r, "update member", err)
		return
	}

	h.log.Info("members.update: saved", "member_id", member.ID)
	writeJSON(w, http.StatusOK, toMemberResponse(*member, h.now()))
}

func (h *Handlers) ListPlans(w http.ResponseWriter, r *http.Request) {
	items, err := h.Plans.ListPlans(r.Context())
	if err != nil {
		h.writeServiceError(w, r, "list plans", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": toPlanResponses(items)})
}

func (h *Handlers) ListTrainers(w http.ResponseWriter, r *http.Request) {
	items, err := h.Trainers.ListTrainers(r.Context())
	if err != nil {
		h.writeServiceError(w, r, "list trainers", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": toTrainerResponses(items)})
}
