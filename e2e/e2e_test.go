//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"fitclub-go/internal/app"
	"fitclub-go/internal/config"
	"fitclub-go/internal/db"
	membersdomain "fitclub-go/internal/domain/members"
	sessionsdomain "fitclub-go/internal/domain/sessions"
	trainersdomain "fitclub-go/internal/domain/trainers"
	"fitclub-go/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	server *httptest.Server
	app    *app.App
}

func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		t.Skip("E2E_DB_DSN not set; skipping e2e tests")
	}

	cfg := config.Config{
		HTTPPort:       "0",
		Storage:        config.StoragePostgres,
		RequestTimeout: 10 * time.Second,
		DB: config.DBConfig{
			DSN:          dsn,
			MaxOpenConns: 10,
			MaxIdleConns: 5,
			AutoMigrate:  false,
		},
	}

	log := logger.Nop()
	conn, err := db.NewPostgres(cfg.DB, log)
	require.NoError(t, err, "db connect")
	require.NoError(t, db.Migrate(conn, log), "migrate")
	require.NoError(t, cleanDB(conn), "clean db")
	require.NoError(t, db.Close(conn))

	application, err := app.New(cfg, log)
	require.NoError(t, err)

	server := httptest.NewServer(application.HTTPServer().Handler)
	env := &testEnv{server: server, app: application}
	t.Cleanup(func() {
		server.Close()
		_ = application.Close()
	})
	return env
}

func cleanDB(conn *gorm.DB) error {
	return conn.WithContext(context.Background()).Exec(
		"TRUNCATE TABLE session_bookings, workout_sessions, member_plans, members, trainers, membership_plans RESTART IDENTITY CASCADE",
	).Error
}

func requestJSON(t *testing.T, client *http.Client, method, url string, payload interface{}) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, respBody
}

func TestSeedAndDashboard(t *testing.T) {
	env := setupE2E(t)

	report, err := env.app.Seed(context.Background())
	require.NoError(t, err)
	require.False(t, report.Skipped)
	assert.Equal(t, 3, report.Plans)
	assert.Equal(t, 3, report.Members)

	again, err := env.app.Seed(context.Background())
	require.NoError(t, err)
	assert.True(t, again.Skipped)

	resp, body := requestJSON(t, env.server.Client(), http.MethodGet, env.server.URL+"/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var overview struct {
		Members struct {
			Total  int64 `json:"total"`
			Active int64 `json:"active"`
		} `json:"members"`
		Sessions struct {
			Today int64 `json:"today"`
		} `json:"sessions"`
		EstimatedRevenue float64 `json:"estimated_revenue"`
	}
	require.NoError(t, json.Unmarshal(body, &overview))
	assert.EqualValues(t, 3, overview.Members.Total)
	assert.EqualValues(t, 3, overview.Members.Active)
	assert.EqualValues(t, 3, overview.Sessions.Today)
	assert.InDelta(t, 29.99+49.99+79.99, overview.EstimatedRevenue, 0.001)
}

func TestMemberEmailIsUniqueIgnoringCase(t *testing.T) {
	env := setupE2E(t)
	client := env.server.Client()

	resp, body := requestJSON(t, client, http.MethodPost, env.server.URL+"/members/new", map[string]string{
		"first_name": "Ann",
		"last_name":  "Lee",
		"email":      "ann@x.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/members/new", map[string]string{
		"first_name": "Ann",
		"last_name":  "Other",
		"email":      "Ann@X.com",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(body))

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/members?search=lee", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page struct {
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(body, &page))
	assert.EqualValues(t, 1, page.Total)
}

func TestConcurrentBookingsRespectCapacity(t *testing.T) {
	env := setupE2E(t)
	ctx := context.Background()
	services := env.app.Services()

	trainer, err := services.Trainers.CreateTrainer(ctx, trainersdomain.CreateTrainerInput{Name: "Mike Chen"})
	require.NoError(t, err)
	session, err := services.Sessions.Schedule(ctx, sessionsdomain.ScheduleInput{
		Title:       "Strength Training",
		TrainerID:   fmt.Sprint(trainer.ID),
		SessionDate: time.Now().AddDate(0, 0, 1).Format(sessionsdomain.DateLayout),
		StartTime:   "10:00",
		EndTime:     "11:00",
		MaxCapacity: "3",
	})
	require.NoError(t, err)

	const attempts = 10
	memberIDs := make([]uint, 0, attempts)
	for i := 0; i < attempts; i++ {
		member, err := services.Members.Register(ctx, membersdomain.RegisterInput{
			FirstName: "Member",
			LastName:  fmt.Sprint(i),
			Email:     fmt.Sprintf("member%d@x.com", i),
		})
		require.NoError(t, err)
		memberIDs = append(memberIDs, member.ID)
	}

	statuses := make([]int, attempts)
	var wg sync.WaitGroup
	for i, memberID := range memberIDs {
		wg.Add(1)
		go func(i int, memberID uint) {
			defer wg.Done()
			payload, _ := json.Marshal(map[string]uint{"member_id": memberID})
			resp, err := env.server.Client().Post(
				fmt.Sprintf("%s/sessions/%d/book", env.server.URL, session.ID),
				"application/json",
				bytes.NewReader(payload),
			)
			if err != nil {
				return
			}
			resp.Body.Close()
			statuses[i] = resp.StatusCode
		}(i, memberID)
	}
	wg.Wait()

	booked, full := 0, 0
	for _, status := range statuses {
		switch status {
		case http.StatusCreated:
			booked++
		case http.StatusConflict:
			full++
		}
	}
	assert.Equal(t, 3, booked)
	assert.Equal(t, attempts-3, full)

	resp, body := requestJSON(t, env.server.Client(), http.MethodGet,
		fmt.Sprintf("%s/api/sessions/%d/bookings", env.server.URL, session.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var bookings struct {
		CurrentBookings int               `json:"current_bookings"`
		AvailableSpots  int               `json:"available_spots"`
		Bookings        []json.RawMessage `json:"bookings"`
	}
	require.NoError(t, json.Unmarshal(body, &bookings))
	assert.Equal(t, 3, bookings.CurrentBookings)
	assert.Equal(t, 0, bookings.AvailableSpots)
	assert.Len(t, bookings.Bookings, 3)
}
