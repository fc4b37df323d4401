package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	membersdomain "fitclub-go/internal/domain/members"
	sessionsdomain "fitclub-go/internal/domain/sessions"
)

type toggleStatusResponse struct {
	Success   bool   `json:"success"`
	NewStatus string `json:"new_status,omitempty"`
	Message   string `json:"message"`
}

type sessionBookingsResponse struct {
	SessionTitle    string                 `json:"session_title"`
	TotalCapacity   int                    `json:"total_capacity"`
	CurrentBookings int                    `json:"current_bookings"`
	AvailableSpots  int                    `json:"available_spots"`
	Bookings        []sessionBookingDetail `json:"bookings"`
}

type sessionBookingDetail struct {
	ID          uint      `json:"id"`
	MemberName  string    `json:"member_name"`
	MemberEmail string    `json:"member_email"`
	BookingDate time.Time `json:"booking_date"`
}

func (h *Handlers) ToggleMemberStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusNotFound, toggleStatusResponse{Message: membersdomain.ErrMemberNotFound.Error()})
		return
	}

	status, err := h.Members.ToggleStatus(r.Context(), id)
	if errors.Is(err, membersdomain.ErrMemberNotFound) {
		h.log.BusinessError("members.toggle: unknown member", err, "member_id", id)
		writeJSON(w, http.StatusNotFound, toggleStatusResponse{Message: err.Error()})
		return
	}
	if err != nil {
		h.log.InternalError("members.toggle: failed", err, "member_id", id)
		writeJSON(w, http.StatusInternalServerError, toggleStatusResponse{Message: err.Error()})
		return
	}

	h.log.Info("members.toggle: updated", "member_id", id, "status", status)
	writeJSON(w, http.StatusOK, toggleStatusResponse{
		Success:   true,
		NewStatus: status,
		Message:   fmt.Sprintf("Member status updated to %s", status),
	})
}

func (h *Handlers) SessionBookings(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", sessionsdomain.ErrSessionNotFound.Error())
		return
	}

	session, bookings, err := h.Sessions.SessionBookings(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, "load session bookings", err)
		return
	}

	details := make([]sessionBookingDetail, 0, len(bookings))
	for _, booking := range bookings {
		details = append(details, sessionBookingDetail{
			ID:          booking.ID,
			MemberName:  booking.MemberName,
			MemberEmail: booking.MemberEmail,
			BookingDate: booking.BookingDate,
		})
	}
	writeJSON(w, http.StatusOK, sessionBookingsResponse{
		SessionTitle:    session.Title,
		TotalCapacity:   session.MaxCapacity,
		CurrentBookings: session.CurrentBookings,
		AvailableSpots:  session.AvailableSpots(),
		Bookings:        details,
	})
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
