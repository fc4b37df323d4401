package transfer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"fitclub-go/internal/domain/members"
	"fitclub-go/internal/domain/sessions"
	"fitclub-go/internal/validation"
	"fitclub-go/pkg/logger"
	"github.com/google/uuid"
)

type MemberStore interface {
	ListAllMembers(ctx context.Context) ([]members.Member, error)
	CurrentPlanNames(ctx context.Context, memberIDs []uint) (map[uint]string, error)
	Register(ctx context.Context, input members.RegisterInput) (*members.Member, error)
}

type SessionStore interface {
	ListAllSessions(ctx context.Context) ([]sessions.SessionWithTrainer, error)
}

type RowError struct {
	Line    int
	Email   string
	Message string
}

type ImportReport struct {
	ID       string
	Imported int
	Failed   int
	Errors   []RowError
}

type Service struct {
	members  MemberStore
	sessions SessionStore
	log      logger.Logger
}

func NewService(members MemberStore, sessions SessionStore, log logger.Logger) *Service {
	return &Service{members: members, sessions: sessions, log: log}
}

func (s *Service) ExportMembers(ctx context.Context, w io.Writer) (int, error) {
	items, err := s.members.ListAllMembers(ctx)
	if err != nil {
		return 0, err
	}

	ids := make([]uint, 0, len(items))
	for _, member := range items {
		ids = append(ids, member.ID)
	}
	currentPlans, err := s.members.CurrentPlanNames(ctx, ids)
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(MemberExportHeader); err != nil {
		return 0, err
	}
	for _, member := range items {
		if err := cw.Write(MemberRecord(member, currentPlans[member.ID])); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	return len(items), cw.Error()
}

func (s *Service) ExportSessions(ctx context.Context, w io.Writer) (int, error) {
	items, err := s.sessions.ListAllSessions(ctx)
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(SessionExportHeader); err != nil {
		return 0, err
	}
	for _, session := range items {
		if err := cw.Write(SessionRecord(session)); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	return len(items), cw.Error()
}

// ImportMembers registers one member per data row. Each row stands alone: a row that
// fails is recorded in the report and the import moves on to the next one.
// Rows with broken quoting count as failed rows. Only an unreadable header, a failing
// reader or a cancelled context stops the import.
func (s *Service) ImportMembers(ctx context.Context, r io.Reader) (*ImportReport, error) {
	report := &ImportReport{ID: uuid.NewString(), Errors: []RowError{}}
	log := s.log.With("import_id", report.ID)

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return report, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	columns := resolveColumns(header)

	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return report, fmt.Errorf("read csv: %w", err)
			}
			report.fail(parseErr.StartLine, "", err.Error())
			log.BusinessError("transfer.import: unreadable row", err, "line", parseErr.StartLine)
			continue
		}
		line, _ := reader.FieldPos(0)
		if blank(record) {
			continue
		}

		input := columns.memberInput(record)
		if _, err := s.members.Register(ctx, input); err != nil {
			if _, ok := validation.As(err); ok {
				log.BusinessError("transfer.import: row rejected", err, "line", line, "email", input.Email)
			} else {
				log.InternalError("transfer.import: row failed", err, "line", line, "email", input.Email)
			}
			report.fail(line, input.Email, err.Error())
			continue
		}
		report.Imported++
	}

	log.Info("transfer.import: finished", "imported", report.Imported, "failed", report.Failed)
	return report, nil
}

func (r *ImportReport) fail(line int, email, message string) {
	r.Failed++
	r.Errors = append(r.Errors, RowError{Line: line, Email: email, Message: message})
}
