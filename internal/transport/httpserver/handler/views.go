package handler

import (
	"time"

	membersdomain "fitclub-go/internal/domain/members"
	"fitclub-go/internal/domain/paging"
	plansdomain "fitclub-go/internal/domain/plans"
	sessionsdomain "fitclub-go/internal/domain/sessions"
	trainersdomain "fitclub-go/internal/domain/trainers"
)

type pageResponse[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Pages    int   `json:"pages"`
	HasPrev  bool  `json:"has_prev"`
	HasNext  bool  `json:"has_next"`
}

func toPageResponse[S, T any](page paging.Page[S], convert func(S) T) pageResponse[T] {
	items := make([]T, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, convert(item))
	}
	return pageResponse[T]{
		Items:    items,
		Total:    page.Total,
		Page:     page.Number,
		PageSize: page.Size,
		Pages:    page.Pages(),
		HasPrev:  page.HasPrev(),
		HasNext:  page.HasNext(),
	}
}

type memberResponse struct {
	ID               uint      `json:"id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	FullName         string    `json:"full_name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	DateOfBirth      *string   `json:"date_of_birth"`
	Age              *int      `json:"age"`
	Gender           string    `json:"gender"`
	EmergencyContact string    `json:"emergency_contact"`
	EmergencyPhone   string    `json:"emergency_phone"`
	JoinDate         string    `json:"join_date"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	CurrentPlan      *string   `json:"current_plan,omitempty"`
}

func toMemberResponse(member membersdomain.Member, now time.Time) memberResponse {
	response := memberResponse{
		ID:               member.ID,
		FirstName:        member.FirstName,
		LastName:         member.LastName,
		FullName:         member.FullName(),
		Email:            member.Email,
		Phone:            member.Phone,
		Gender:           member.Gender,
		EmergencyContact: member.EmergencyContact,
		EmergencyPhone:   member.EmergencyPhone,
		JoinDate:         time.Time(member.JoinDate).Format(membersdomain.DateLayout),
		Status:           member.Status,
		CreatedAt:        member.CreatedAt,
	}
	if member.DateOfBirth != nil {
		dob := time.Time(*member.DateOfBirth).Format(membersdomain.DateLayout)
		response.DateOfBirth = &dob
	}
	if age, ok := member.Age(now); ok {
		response.Age = &age
	}
	return response
}

type memberPlanResponse struct {
	ID           uint    `json:"id"`
	PlanID       uint    `json:"plan_id"`
	PlanName     string  `json:"plan_name"`
	MonthlyPrice float64 `json:"monthly_price"`
	StartDate    string  `json:"start_date"`
	EndDate      *string `json:"end_date"`
	Status       string  `json:"status"`
}

func toMemberPlanResponse(detail membersdomain.MemberPlanDetail) memberPlanResponse {
	response := memberPlanResponse{
		ID:           detail.ID,
		PlanID:       detail.PlanID,
		PlanName:     detail.PlanName,
		MonthlyPrice: detail.MonthlyPrice,
		StartDate:    time.Time(detail.StartDate).Format(membersdomain.DateLayout),
		Status:       detail.Status,
	}
	if detail.EndDate != nil {
		end := time.Time(*detail.EndDate).Format(membersdomain.DateLayout)
		response.EndDate = &end
	}
	return response
}

type planResponse struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	MonthlyPrice float64 `json:"monthly_price"`
	Benefits     string  `json:"benefits"`
}

func toPlanResponses(items []plansdomain.Plan) []planResponse {
	response := make([]planResponse, 0, len(items))
	for _, plan := range items {
		response = append(response, planResponse{
			ID:           plan.ID,
			Name:         plan.Name,
			Description:  plan.Description,
			MonthlyPrice: plan.MonthlyPrice,
			Benefits:     plan.Benefits,
		})
	}
	return response
}

type trainerResponse struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
}

func toTrainerResponses(items []trainersdomain.Trainer) []trainerResponse {
	response := make([]trainerResponse, 0, len(items))
	for _, trainer := range items {
		response = append(response, trainerResponse{
			ID:             trainer.ID,
			Name:           trainer.Name,
			Specialization: trainer.Specialization,
			Email:          trainer.Email,
			Phone:          trainer.Phone,
		})
	}
	return response
}

type sessionResponse struct {
	ID              uint    `json:"id"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	TrainerID       *uint   `json:"trainer_id"`
	TrainerName     *string `json:"trainer_name,omitempty"`
	SessionDate     string  `json:"session_date"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	MaxCapacity     int     `json:"max_capacity"`
	CurrentBookings int     `json:"current_bookings"`
	AvailableSpots  int     `json:"available_spots"`
	IsFull          bool    `json:"is_full"`
}

func toSessionResponse(session sessionsdomain.WorkoutSession) sessionResponse {
	return sessionResponse{
		ID:              session.ID,
		Title:           session.Title,
		Description:     session.Description,
		TrainerID:       session.TrainerID,
		SessionDate:     sessionsdomain.FormatDate(session.SessionDate),
		StartTime:       sessionsdomain.FormatClock(session.StartTime),
		EndTime:         sessionsdomain.FormatClock(session.EndTime),
		MaxCapacity:     session.MaxCapacity,
		CurrentBookings: session.CurrentBookings,
		AvailableSpots:  session.AvailableSpots(),
		IsFull:          session.IsFull(),
	}
}

func toSessionWithTrainerResponse(session sessionsdomain.SessionWithTrainer) sessionResponse {
	response := toSessionResponse(session.WorkoutSession)
	if session.TrainerID != nil {
		name := session.TrainerName
		response.TrainerName = &name
	}
	return response
}

type memberBookingResponse struct {
	ID           uint      `json:"id"`
	SessionID    uint      `json:"session_id"`
	SessionTitle string    `json:"session_title"`
	SessionDate  string    `json:"session_date"`
	StartTime    string    `json:"start_time"`
	BookingDate  time.Time `json:"booking_date"`
	Status       string    `json:"status"`
}

func toMemberBookingResponses(items []sessionsdomain.MemberBooking) []memberBookingResponse {
	response := make([]memberBookingResponse, 0, len(items))
	for _, booking := range items {
		response = append(response, memberBookingResponse{
			ID:           booking.ID,
			SessionID:    booking.SessionID,
			SessionTitle: booking.SessionTitle,
			SessionDate:  sessionsdomain.FormatDate(booking.SessionDate),
			StartTime:    sessionsdomain.FormatClock(booking.StartTime),
			BookingDate:  booking.BookingDate,
			Status:       booking.Status,
		})
	}
	return response
}
