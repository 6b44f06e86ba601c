package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"homebooking/internal/client"
	"homebooking/internal/config"
	"homebooking/internal/database"
	"homebooking/internal/domain"
	"homebooking/internal/form"
	"homebooking/internal/modules/feed"
	"homebooking/internal/repository"
)

type e2eSuite struct {
	srv  *httptest.Server
	hub  *feed.Hub
	db   *gorm.DB
	repo *repository.BookingRowRepository
}

func setupSuite(t *testing.T, mutate ...func(*config.Config)) *e2eSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:", nil)
	require.NoError(t, err)
	repo := repository.NewBookingRowRepository(db)
	require.NoError(t, repo.EnsureHeaders(context.Background()))

	cfg := &config.Config{
		Env:               "development",
		StoreDriver:       config.StoreSQLite,
		Timezone:          "Asia/Manila",
		MaxRequestsPerMin: 100,
		ExposeBookingList: true,
	}
	for _, m := range mutate {
		m(cfg)
	}
	hub := feed.NewHub(nil, zap.NewNop())
	srv := httptest.NewServer(setupRouter(cfg, zap.NewNop(), repo, hub))
	t.Cleanup(srv.Close)

	return &e2eSuite{srv: srv, hub: hub, db: db, repo: repo}
}

func TestHealthz(t *testing.T) {
	s := setupSuite(t)

	resp, err := http.Get(s.srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

// TestWizardToSheetFlow walks a booking from the form model through the
// HTTP client and API into the store, and out through the live feed.
func TestWizardToSheetFlow(t *testing.T) {
	s := setupSuite(t)

	wsURL := "ws" + strings.TrimPrefix(s.srv.URL, "http") + "/api/bookings/feed"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return s.hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	manila, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)

	c := client.New(s.srv.URL, 5*time.Second, nil, nil)
	m := form.NewModel(c,
		form.WithLocation(manila),
		form.WithClock(func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, manila) }),
	)
	ctx := context.Background()

	m.SetField(form.FullName, "Maria Santos")
	m.SetField(form.PhoneNumber, "0917 555 1234")
	m.SetField(form.EmailAddress, "maria@example.com")
	m.SetField(form.PropertyType, "condominium")
	m.SetField(form.ServiceAddress, "Unit 12B, Tower 2, Ortigas Center, Pasig City")
	require.NoError(t, m.Next(ctx))

	m.SetServiceType("air-conditioning")
	m.SetField(form.SpecificService, "ac-cleaning")
	m.SetField(form.UrgencyLevel, "normal")
	m.SetField(form.BudgetRange, "1000-3000")
	m.SetField(form.ProblemDescription, "Split-type unit blowing warm air since last week.")
	require.NoError(t, m.Next(ctx))

	require.True(t, m.SetPreferredDate(time.Date(2025, 3, 5, 0, 0, 0, 0, manila)))
	m.SetField(form.PreferredTime, "10am-12pm")
	require.NoError(t, m.Next(ctx))

	m.SetField(form.PreferredContactMethod, "sms-text")
	m.SetField(form.BestTimeToCall, "evening")
	require.NoError(t, m.Next(ctx))

	assert.Equal(t, 1, m.Submitted())
	assert.Equal(t, form.StepClient, m.Step())

	rows, err := s.repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, domain.SheetHeaders, rows[0])
	row := rows[1]
	require.Len(t, row, domain.ColumnCount)
	assert.Equal(t, "Maria Santos", row[1])
	assert.Equal(t, "ac-cleaning", row[7])
	assert.Equal(t, "3/5/2025", row[11])
	assert.Equal(t, "", row[13])
	assert.Equal(t, "evening", row[18])

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var event struct {
		Type    string               `json:"type"`
		Payload domain.BookingRecord `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(msg, &event))
	assert.Equal(t, feed.EventBookingCreated, event.Type)
	assert.Equal(t, "Maria Santos", event.Payload.FullName)
}

func TestMissingFieldsReachTheWizard(t *testing.T) {
	s := setupSuite(t)

	res, err := client.New(s.srv.URL, 5*time.Second, nil, nil).
		Submit(context.Background(), form.Payload{FullName: "Maria Santos"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Missing required fields: phoneNumber, emailAddress, serviceType", res.Message)
}

func TestBookingListClosedByDefault(t *testing.T) {
	s := setupSuite(t, func(cfg *config.Config) {
		cfg.Env = "production"
		cfg.ExposeBookingList = false
	})

	res, err := client.New(s.srv.URL, 5*time.Second, nil, nil).
		Submit(context.Background(), form.Payload{
			FullName:     "Juan Dela Cruz",
			PhoneNumber:  "+639123456789",
			EmailAddress: "juan@example.com",
			ServiceType:  "plumbing",
		})
	require.NoError(t, err)
	require.True(t, res.Success)

	for _, path := range []string{"/api/bookings/list", "/api/bookings/feed"} {
		resp, err := http.Get(s.srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
}

func TestStoreErrorsHiddenOutsideDevelopment(t *testing.T) {
	s := setupSuite(t, func(cfg *config.Config) { cfg.Env = "staging" })

	// a dropped table makes every append fail
	require.NoError(t, s.db.Migrator().DropTable("booking_rows"))

	resp, err := http.Post(s.srv.URL+"/api/bookings", "application/json", strings.NewReader(
		`{"fullName":"Juan Dela Cruz","phoneNumber":"+639123456789","emailAddress":"juan@example.com","serviceType":"plumbing"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Internal server error. Please try again.", body.Message)
	assert.Equal(t, "Server error", body.Error)
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://book.example.com"})

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/feed", nil)
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://book.example.com")
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://evil.example.com")
	assert.False(t, check(req))

	assert.True(t, originChecker(nil)(req))
}
