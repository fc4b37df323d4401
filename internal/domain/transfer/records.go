package transfer

import (
	"strconv"
	"strings"
	"time"

	"fitclub-go/internal/domain/members"
	"fitclub-go/internal/domain/sessions"
)

const (
	noTrainerLabel  = "No Trainer"
	statusFull      = "Full"
	statusAvailable = "Available"
)

var MemberExportHeader = []string{
	"id", "first_name", "last_name", "email", "phone", "date_of_birth", "gender",
	"status", "created_at", "emergency_contact", "emergency_phone", "current_plan",
}

var SessionExportHeader = []string{
	"id", "title", "description", "trainer", "date", "start_time", "end_time",
	"max_capacity", "current_bookings", "available_spots", "status",
}

// MemberImportColumns is the positional layout of an import file without a known header.
var MemberImportColumns = []string{
	"first_name", "last_name", "email", "phone", "date_of_birth", "gender",
	"emergency_contact", "emergency_phone",
}

func MembersFilename(now time.Time) string {
	return "members_export_" + now.Format("20060102") + ".csv"
}

func SessionsFilename(now time.Time) string {
	return "sessions_export_" + now.Format("20060102") + ".csv"
}

// MemberRecord renders one export row. Missing values are empty strings.
func MemberRecord(m members.Member, currentPlan string) []string {
	dob := ""
	if m.DateOfBirth != nil {
		dob = time.Time(*m.DateOfBirth).Format(members.DateLayout)
	}
	created := ""
	if !m.CreatedAt.IsZero() {
		created = m.CreatedAt.Format(members.DateLayout)
	}

	return []string{
		strconv.FormatUint(uint64(m.ID), 10),
		m.FirstName,
		m.LastName,
		m.Email,
		m.Phone,
		dob,
		m.Gender,
		m.Status,
		created,
		m.EmergencyContact,
		m.EmergencyPhone,
		currentPlan,
	}
}

func SessionRecord(s sessions.SessionWithTrainer) []string {
	trainer := s.TrainerName
	if trainer == "" {
		trainer = noTrainerLabel
	}
	status := statusAvailable
	if s.IsFull() {
		status = statusFull
	}

	return []string{
		strconv.FormatUint(uint64(s.ID), 10),
		s.Title,
		s.Description,
		trainer,
		sessions.FormatDate(s.SessionDate),
		sessions.FormatClock(s.StartTime),
		sessions.FormatClock(s.EndTime),
		strconv.Itoa(s.MaxCapacity),
		strconv.Itoa(s.CurrentBookings),
		strconv.Itoa(s.AvailableSpots()),
		status,
	}
}

// columnMap says where each import field lives in a record.
type columnMap map[string]int

// resolveColumns maps by header name when the header names the required columns
// (for example a file written by the exporter), otherwise falls back to position.
func resolveColumns(header []string) columnMap {
	byName := make(columnMap, len(header))
	for i, cell := range header {
		name := normalizeHeader(cell)
		if _, seen := byName[name]; !seen && name != "" {
			byName[name] = i
		}
	}

	_, hasFirst := byName["first_name"]
	_, hasLast := byName["last_name"]
	_, hasEmail := byName["email"]
	if hasFirst && hasLast && hasEmail {
		return byName
	}

	positional := make(columnMap, len(MemberImportColumns))
	for i, name := range MemberImportColumns {
		positional[name] = i
	}
	return positional
}

func (c columnMap) value(record []string, name string) string {
	idx, ok := c[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func (c columnMap) memberInput(record []string) members.RegisterInput {
	return members.RegisterInput{
		FirstName:        c.value(record, "first_name"),
		LastName:         c.value(record, "last_name"),
		Email:            c.value(record, "email"),
		Phone:            c.value(record, "phone"),
		DateOfBirth:      c.value(record, "date_of_birth"),
		Gender:           c.value(record, "gender"),
		EmergencyContact: c.value(record, "emergency_contact"),
		EmergencyPhone:   c.value(record, "emergency_phone"),
	}
}

func normalizeHeader(cell string) string {
	cell = strings.TrimPrefix(cell, "\uFEFF")
	cell = strings.ToLower(strings.TrimSpace(cell))
	return strings.ReplaceAll(cell, " ", "_")
}

func blank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
