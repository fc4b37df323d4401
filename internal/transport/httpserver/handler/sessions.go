package handler

import (
	"net/http"
	"time"

	sessionsdomain "fitclub-go/internal/domain/sessions"
)

type sessionRequest struct {
	Title       formString `json:"title"`
	Description formString `json:"description"`
	TrainerID   formString `json:"trainer_id"`
	SessionDate formString `json:"session_date"`
	StartTime   formString `json:"start_time"`
	EndTime     formString `json:"end_time"`
	MaxCapacity formString `json:"max_capacity"`
}

type bookRequest struct {
	MemberID formString `json:"member_id"`
}

type sessionListResponse struct {
	pageResponse[sessionResponse]
	Date     string            `json:"date"`
	Trainer  *uint             `json:"trainer"`
	Trainers []trainerResponse `json:"trainers"`
}

type bookingResponse struct {
	ID          uint      `json:"id"`
	MemberID    uint      `json:"member_id"`
	SessionID   uint      `json:"session_id"`
	BookingDate time.Time `json:"booking_date"`
	Status      string    `json:"status"`
}

type bookResponse struct {
	Booking bookingResponse `json:"booking"`
	Session sessionResponse `json:"session"`
}

func (h *Handlers) ListSessions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	date, err := parseDateParam(query.Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_filter", "date must be YYYY-MM-DD")
		return
	}
	trainerID, err := parseUintParam(query.Get("trainer"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_filter", "trainer must be a numeric id")
		return
	}

	page, err := h.Sessions.ListSessions(r.Context(), sessionsdomain.Query{
		Date:      date,
		TrainerID: trainerID,
		Page:      parsePageParam(query.Get("page")),
	})
	if err != nil {
		h.writeServiceError(w, r, "list sessions", err)
		return
	}
	trainers, err := h.Trainers.ListTrainers(r.Context())
	if err != nil {
		h.writeServiceError(w, r, "list sessions", err)
		return
	}

	response := sessionListResponse{
		pageResponse: toPageResponse(page, toSessionWithTrainerResponse),
		Trainer:      trainerID,
		Trainers:     toTrainerResponses(trainers),
	}
	if date != nil {
		response.Date = date.Format(sessionsdomain.DateLayout)
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) NewSessionForm(w http.ResponseWriter, r *http.Request) {
	trainers, err := h.Trainers.ListTrainers(r.Context())
	if err != nil {
		h.writeServiceError(w, r, "load trainers", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"trainers":             toTrainerResponses(trainers),
		"default_max_capacity": sessionsdomain.DefaultCapacity,
	})
}

func (h *Handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return
	}

	session, err := h.Sessions.Schedule(r.Context(), sessionsdomain.ScheduleInput{
		Title:       req.Title.String(),
		Description: req.Description.String(),
		TrainerID:   req.TrainerID.String(),
		SessionDate: req.SessionDate.String(),
		StartTime:   req.StartTime.String(),
		EndTime:     req.EndTime.String(),
		MaxCapacity: req.MaxCapacity.String(),
	})
	if err != nil {
		h.writeServiceError(w, r, "schedule session", err)
		return
	}

	h.log.Info("sessions.schedule: created", "session_id", session.ID)
	writeJSON(w, http.StatusCreated, toSessionResponse(*session))
}

// BookSession books member_id onto the session. A member_id that is missing or not a
// number is treated as no member selected.
func (h *Handlers) BookSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := parseID(r, "id")
	if err != nil {
		h.metrics.ObserveBooking(sessionsdomain.ErrSessionNotFound)
		writeError(w, http.StatusNotFound, "not_found", sessionsdomain.ErrSessionNotFound.Error())
		return
	}

	var req bookRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return
	}
	var memberID uint
	if parsed, err := parseUintParam(req.MemberID.String()); err == nil && parsed != nil {
		memberID = *parsed
	}

	result, err := h.Sessions.Book(r.Context(), sessionID, memberID)
	h.metrics.ObserveBooking(err)
	if err != nil {
		h.writeServiceError(w, r, "book session", err)
		return
	}

	h.log.Info("sessions.book: booked", "session_id", sessionID, "member_id", memberID)
	writeJSON(w, http.StatusCreated, bookResponse{
		Booking: bookingResponse{
			ID:          result.Booking.ID,
			MemberID:    result.Booking.MemberID,
			SessionID:   result.Booking.SessionID,
			BookingDate: result.Booking.BookingDate,
			Status:      result.Booking.Status,
		},
		Session: toSessionResponse(result.Session),
	})
}
