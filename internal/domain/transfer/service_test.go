package transfer

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"fitclub-go/internal/domain/members"
	"fitclub-go/internal/domain/sessions"
	"fitclub-go/internal/validation"
	"fitclub-go/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type fakeMembers struct {
	items      []members.Member
	plans      map[uint]string
	registered []members.RegisterInput
	failEmail  string
}

func (f *fakeMembers) ListAllMembers(ctx context.Context) ([]members.Member, error) {
	return f.items, nil
}

func (f *fakeMembers) CurrentPlanNames(ctx context.Context, ids []uint) (map[uint]string, error) {
	return f.plans, nil
}

func (f *fakeMembers) Register(ctx context.Context, input members.RegisterInput) (*members.Member, error) {
	errs := &validation.Errors{}
	if input.FirstName == "" {
		errs.Add("first_name", "first name is required")
	}
	if !strings.Contains(input.Email, "@") {
		errs.Add("email", "invalid email address")
	}
	for _, previous := range f.registered {
		if previous.Email == input.Email {
			errs.Add("email", members.ErrDuplicateEmail.Error())
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	if input.Email == f.failEmail {
		return nil, errors.New("connection reset")
	}
	f.registered = append(f.registered, input)
	return &members.Member{ID: uint(len(f.registered)), Email: input.Email}, nil
}

type fakeSessions struct {
	items []sessions.SessionWithTrainer
}

func (f *fakeSessions) ListAllSessions(ctx context.Context) ([]sessions.SessionWithTrainer, error) {
	return f.items, nil
}

func readCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestExportMembers(t *testing.T) {
	dob := datatypes.Date(time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC))
	store := &fakeMembers{
		items: []members.Member{
			{ID: 2, FirstName: "Ann", LastName: "Lee, Jr", Email: "ann@x.io", DateOfBirth: &dob, Status: "active", CreatedAt: time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC)},
			{ID: 1, FirstName: "Bo", LastName: "Ray", Email: "bo@x.io", Status: "inactive"},
		},
		plans: map[uint]string{2: "Pro"},
	}
	svc := NewService(store, &fakeSessions{}, logger.Nop())

	var buf bytes.Buffer
	count, err := svc.ExportMembers(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	records := readCSV(t, buf.Bytes())
	require.Len(t, records, 3)
	assert.Equal(t, MemberExportHeader, records[0])
	assert.Equal(t, []string{"2", "Ann", "Lee, Jr", "ann@x.io", "", "1990-05-01", "", "active", "2025-03-01", "", "", "Pro"}, records[1])
	assert.Equal(t, "", records[2][5])
	assert.Equal(t, "", records[2][11])
}

func TestExportSessions(t *testing.T) {
	trainerID := uint(1)
	store := &fakeSessions{items: []sessions.SessionWithTrainer{
		{
			WorkoutSession: sessions.WorkoutSession{
				ID: 1, Title: "Spin", TrainerID: &trainerID,
				SessionDate: datatypes.Date(time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)),
				StartTime:   datatypes.NewTime(9, 0, 0, 0), EndTime: datatypes.NewTime(10, 30, 0, 0),
				MaxCapacity: 2, CurrentBookings: 2,
			},
			TrainerName: "Sarah Johnson",
		},
		{
			WorkoutSession: sessions.WorkoutSession{
				ID: 2, Title: "Core",
				SessionDate: datatypes.Date(time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)),
				StartTime:   datatypes.NewTime(18, 0, 0, 0), EndTime: datatypes.NewTime(19, 0, 0, 0),
				MaxCapacity: 10, CurrentBookings: 3,
			},
		},
	}}
	svc := NewService(&fakeMembers{}, store, logger.Nop())

	var buf bytes.Buffer
	count, err := svc.ExportSessions(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	records := readCSV(t, buf.Bytes())
	require.Len(t, records, 3)
	assert.Equal(t, SessionExportHeader, records[0])
	assert.Equal(t, []string{"1", "Spin", "", "Sarah Johnson", "2025-03-11", "09:00", "10:30", "2", "2", "0", "Full"}, records[1])
	assert.Equal(t, "No Trainer", records[2][3])
	assert.Equal(t, "7", records[2][9])
	assert.Equal(t, "Available", records[2][10])
}

func TestExportEmptyWritesHeaderOnly(t *testing.T) {
	svc := NewService(&fakeMembers{}, &fakeSessions{}, logger.Nop())

	var buf bytes.Buffer
	count, err := svc.ExportSessions(context.Background(), &buf)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Len(t, readCSV(t, buf.Bytes()), 1)
}

func TestImportMembersPositional(t *testing.T) {
	store := &fakeMembers{}
	svc := NewService(store, &fakeSessions{}, logger.Nop())

	input := strings.Join([]string{
		"First,Last,Mail,Phone,Born,Gender,Contact,Contact Phone",
		"Ann,Lee,ann@x.io,555,1990-05-01,female,Tom,556",
		",Ray,bo@x.io,,,,,",
		"Cy,Dee,not-an-email,,,,,",
		"",
		"Ann,Again,ann@x.io,,,,,",
		"Di,Eve,di@x.io",
	}, "\n")

	report, err := svc.ImportMembers(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, 2, report.Imported)
	assert.Equal(t, 3, report.Failed)
	require.Len(t, report.Errors, 3)
	assert.Equal(t, 3, report.Errors[0].Line)
	assert.Contains(t, report.Errors[0].Message, "first name is required")
	assert.Equal(t, "not-an-email", report.Errors[1].Email)
	assert.Contains(t, report.Errors[2].Message, "already exists")

	require.Len(t, store.registered, 2)
	assert.Equal(t, members.RegisterInput{
		FirstName: "Ann", LastName: "Lee", Email: "ann@x.io", Phone: "555",
		DateOfBirth: "1990-05-01", Gender: "female", EmergencyContact: "Tom", EmergencyPhone: "556",
	}, store.registered[0])
	assert.Equal(t, "di@x.io", store.registered[1].Email)
}

func TestImportMembersReadsExportLayout(t *testing.T) {
	dob := datatypes.Date(time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC))
	source := &fakeMembers{items: []members.Member{
		{ID: 7, FirstName: "Ann", LastName: "Lee", Email: "ann@x.io", Phone: "555", DateOfBirth: &dob, Gender: "female", Status: "active", EmergencyContact: "Tom", EmergencyPhone: "556"},
	}}
	var buf bytes.Buffer
	_, err := NewService(source, &fakeSessions{}, logger.Nop()).ExportMembers(context.Background(), &buf)
	require.NoError(t, err)

	target := &fakeMembers{}
	report, err := NewService(target, &fakeSessions{}, logger.Nop()).ImportMembers(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Imported)
	require.Len(t, target.registered, 1)
	assert.Equal(t, members.RegisterInput{
		FirstName: "Ann", LastName: "Lee", Email: "ann@x.io", Phone: "555",
		DateOfBirth: "1990-05-01", Gender: "female", EmergencyContact: "Tom", EmergencyPhone: "556",
	}, target.registered[0])
}

func TestImportMembersContinuesAfterStoreFailure(t *testing.T) {
	store := &fakeMembers{failEmail: "bad@x.io"}
	svc := NewService(store, &fakeSessions{}, logger.Nop())

	input := "first_name,last_name,email\nA,B,bad@x.io\nC,D,good@x.io\n"
	report, err := svc.ImportMembers(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Imported)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, "connection reset", report.Errors[0].Message)
}

func TestImportMembersHeaderWithByteOrderMark(t *testing.T) {
	store := &fakeMembers{}
	svc := NewService(store, &fakeSessions{}, logger.Nop())

	input := "\uFEFFEmail,First Name,Last Name\nann@x.io,Ann,Lee\n"
	report, err := svc.ImportMembers(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Imported)
	require.Len(t, store.registered, 1)
	assert.Equal(t, "Ann", store.registered[0].FirstName)
	assert.Equal(t, "ann@x.io", store.registered[0].Email)
}

func TestImportMembersSkipsMalformedRows(t *testing.T) {
	cases := []struct {
		name       string
		input      string
		imported   []string
		failedLine int
	}{
		{
			name:       "bare quote in first field",
			input:      "first_name,last_name,email\nA\"nn,Lee,ann@x.io\nBo,Ray,bo@x.io\n",
			imported:   []string{"bo@x.io"},
			failedLine: 2,
		},
		{
			name:       "bare quote mid record",
			input:      "first_name,last_name,email\nAnn,Lee,ann@x.io\nBo,R\"ay,bo@x.io\nCy,Dee,cy@x.io\n",
			imported:   []string{"ann@x.io", "cy@x.io"},
			failedLine: 3,
		},
		{
			name:       "text after closing quote",
			input:      "first_name,last_name,email\n\"Ann\"x,Lee,ann@x.io\nBo,Ray,bo@x.io\n",
			imported:   []string{"bo@x.io"},
			failedLine: 2,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeMembers{}
			svc := NewService(store, &fakeSessions{}, logger.Nop())

			report, err := svc.ImportMembers(context.Background(), strings.NewReader(tc.input))
			require.NoError(t, err)
			assert.Equal(t, len(tc.imported), report.Imported)
			assert.Equal(t, 1, report.Failed)
			require.Len(t, report.Errors, 1)
			assert.Equal(t, tc.failedLine, report.Errors[0].Line)
			assert.Empty(t, report.Errors[0].Email)

			emails := make([]string, 0, len(store.registered))
			for _, input := range store.registered {
				emails = append(emails, input.Email)
			}
			assert.Equal(t, tc.imported, emails)
		})
	}
}

type failingReader struct {
	data []byte
	read bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.read {
		return 0, errors.New("disk gone")
	}
	r.read = true
	return copy(p, r.data), nil
}

func TestImportMembersStopsOnReaderFailure(t *testing.T) {
	svc := NewService(&fakeMembers{}, &fakeSessions{}, logger.Nop())

	report, err := svc.ImportMembers(context.Background(), &failingReader{data: []byte("first_name,last_name,email\nAnn,Lee,ann@x.io\n")})
	assert.ErrorContains(t, err, "disk gone")
	require.NotNil(t, report)
	assert.Equal(t, 1, report.Imported)
}

func TestImportMembersEmptyInput(t *testing.T) {
	svc := NewService(&fakeMembers{}, &fakeSessions{}, logger.Nop())

	report, err := svc.ImportMembers(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, report.Imported)
	assert.Zero(t, report.Failed)
	assert.Empty(t, report.Errors)
}

func TestImportMembersStopsOnCancel(t *testing.T) {
	svc := NewService(&fakeMembers{}, &fakeSessions{}, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := svc.ImportMembers(ctx, strings.NewReader("h\nA,B,a@b.c\n"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, report.Imported)
}

func TestFilenames(t *testing.T) {
	now := time.Date(2025, 3, 9, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "members_export_20250309.csv", MembersFilename(now))
	assert.Equal(t, "sessions_export_20250309.csv", SessionsFilename(now))
}
