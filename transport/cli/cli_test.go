package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"kampus/config"
	"kampus/infras/jwt"
	"kampus/infras/metrics"
	"kampus/infras/otel/mocks"
	facilityRepo "kampus/internal/domains/facility/repository"
	facilityService "kampus/internal/domains/facility/service"
	identityRepo "kampus/internal/domains/identity/repository"
	identityService "kampus/internal/domains/identity/service"
	reservationRepo "kampus/internal/domains/reservation/repository"
	reservationService "kampus/internal/domains/reservation/service"
	adminHandler "kampus/internal/handlers/admin"
	authHandler "kampus/internal/handlers/auth"
	facilityHandler "kampus/internal/handlers/facility"
	reservationHandler "kampus/internal/handlers/reservation"
	"kampus/internal/events"
	"kampus/internal/session"
	"kampus/internal/storage"
	"kampus/transport/cli"
	"kampus/transport/cli/middleware"
	"kampus/transport/cli/response"
	"kampus/transport/cli/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Code    int             `json:"code"`
}

type recorder struct {
	types []string
}

func (r *recorder) Publish(_ context.Context, event events.Event) {
	r.types = append(r.types, event.Type)
}

func (r *recorder) Close() error {
	return nil
}

type harness struct {
	t      *testing.T
	app    *cli.CLI
	events *recorder
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Name = "kampus"
	cfg.App.PasswordCost = bcrypt.MinCost
	cfg.JWT.AccessSecret = "access"
	cfg.JWT.RefreshSecret = "refresh"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	store := storage.NewMemory()
	ot := mocks.NewOtel()
	m := metrics.New()

	facilities := facilityService.New(facilityRepo.New(store, ot, m), ot, m)
	reservations := reservationService.New(reservationRepo.New(store, ot, m), cfg, ot, m)
	identity := identityService.New(identityRepo.NewAccount(store, ot, m), identityRepo.NewSession(store, ot), jwt.New(cfg), cfg, ot)
	s := session.New(store, facilities, reservations, identity, m, ot)
	auth := middleware.NewAuthRoleMiddleware(identity, ot)
	publisher := &recorder{}

	r := router.New(router.DomainHandlers{
		Auth:        authHandler.New(identity, auth, ot),
		Facility:    facilityHandler.New(facilities, publisher, auth, ot),
		Reservation: reservationHandler.New(reservations, s, publisher, auth, ot),
		Admin:       adminHandler.New(s, m, auth, ot),
	}, middleware.NewAppMiddleware(ot, cfg))

	return &harness{t: t, app: cli.New(cfg, r, s, publisher), events: publisher}
}

func (h *harness) run(args ...string) (int, envelope) {
	h.t.Helper()

	var out bytes.Buffer
	code := h.app.Run(context.Background(), args, &out)

	var env envelope
	require.NoError(h.t, json.Unmarshal(out.Bytes(), &env), out.String())

	return code, env
}

func (h *harness) login(email, password string) string {
	h.t.Helper()

	code, env := h.run("auth", "login", "--email", email, "--password", password)
	require.Equal(h.t, response.ExitOK, code, env.Error)

	var session struct {
		ID          string `json:"id"`
		AccessToken string `json:"accessToken"`
	}
	require.NoError(h.t, json.Unmarshal(env.Data, &session))

	return session.AccessToken
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(raw, &v))

	return v
}

type reservationView struct {
	ID           string `json:"id"`
	FacilityName string `json:"facilityName"`
	UserID       string `json:"userId"`
	Status       string `json:"status"`
	AdminNote    string `json:"adminNote"`
}

func TestCLI_BookingFlow(t *testing.T) {
	h := newHarness(t)

	code, env := h.run("facility", "list")
	require.Equal(t, response.ExitOK, code)
	assert.Len(t, decode[[]map[string]any](t, env.Data), 6)

	code, env = h.run("facility", "create", "--name", "Aula Baru", "--capacity", "80")
	assert.Equal(t, response.ExitUnauthorized, code)
	assert.NotEmpty(t, env.Error)

	h.login("user@kampus.ac.id", "user123")

	code, _ = h.run("facility", "create", "--name", "Aula Baru", "--capacity", "80")
	assert.Equal(t, response.ExitForbidden, code)

	code, env = h.run("reservation", "submit",
		"--facility", "3", "--date", "2025-03-10", "--start", "09:00", "--end", "11:00", "--purpose", "Praktikum")
	require.Equal(t, response.ExitOK, code, env.Error)

	submitted := decode[reservationView](t, env.Data)
	assert.Equal(t, "Lab Komputer", submitted.FacilityName)
	assert.Equal(t, "2", submitted.UserID)
	assert.Equal(t, "pending", submitted.Status)

	code, env = h.run("reservation", "submit",
		"--facility", "3", "--date", "2025-03-10", "--start", "11:00", "--end", "09:00", "--purpose", "Praktikum")
	assert.Equal(t, response.ExitBadRequest, code)
	assert.Equal(t, "endTime must be after startTime", env.Error)

	code, env = h.run("reservation", "mine")
	require.Equal(t, response.ExitOK, code)
	assert.Len(t, decode[[]reservationView](t, env.Data), 1)

	code, _ = h.run("reservation", "approve", submitted.ID)
	assert.Equal(t, response.ExitForbidden, code)

	code, _ = h.run("auth", "logout")
	require.Equal(t, response.ExitOK, code)

	h.login("admin@kampus.ac.id", "admin123")

	code, env = h.run("reservation", "reject", submitted.ID, "--note", "Bentrok jadwal")
	require.Equal(t, response.ExitOK, code, env.Error)

	decided := decode[reservationView](t, env.Data)
	assert.Equal(t, "rejected", decided.Status)
	assert.Equal(t, "Bentrok jadwal", decided.AdminNote)

	code, _ = h.run("reservation", "approve", submitted.ID)
	assert.Equal(t, response.ExitConflict, code)

	code, env = h.run("reservation", "list", "--status", "rejected", "--user", "2")
	require.Equal(t, response.ExitOK, code)
	assert.Len(t, decode[[]reservationView](t, env.Data), 1)

	code, env = h.run("reservation", "get", submitted.ID)
	require.Equal(t, response.ExitOK, code)
	assert.Equal(t, submitted.ID, decode[reservationView](t, env.Data).ID)

	code, env = h.run("admin", "stats")
	require.Equal(t, response.ExitOK, code)

	stats := decode[session.Stats](t, env.Data)
	assert.Equal(t, 1, stats.Reservations["rejected"])
	assert.Equal(t, 6, stats.Facilities["available"])

	assert.Equal(t, []string{events.ReservationSubmitted, events.ReservationRejected}, h.events.types)
}

func TestCLI_FacilityAdministration(t *testing.T) {
	h := newHarness(t)
	h.login("admin@kampus.ac.id", "admin123")

	code, env := h.run("facility", "create",
		"--name", "Aula Baru", "--capacity", "80", "--location", "Gedung C", "--feature", "AC", "--feature", "Proyektor")
	require.Equal(t, response.ExitOK, code, env.Error)

	created := decode[struct {
		ID       string   `json:"id"`
		Status   string   `json:"status"`
		Features []string `json:"features"`
	}](t, env.Data)
	assert.Equal(t, "available", created.Status)
	assert.Equal(t, []string{"AC", "Proyektor"}, created.Features)

	code, env = h.run("facility", "update", created.ID, "--status", "maintenance")
	require.Equal(t, response.ExitOK, code, env.Error)

	updated := decode[map[string]any](t, env.Data)
	assert.Equal(t, "maintenance", updated["status"])
	assert.Equal(t, "Gedung C", updated["location"])

	code, env = h.run("facility", "list", "--status", "maintenance")
	require.Equal(t, response.ExitOK, code)
	assert.Len(t, decode[[]map[string]any](t, env.Data), 1)

	code, env = h.run("facility", "delete", created.ID)
	require.Equal(t, response.ExitOK, code)
	assert.Equal(t, "Facility deleted successfully", env.Message)

	code, _ = h.run("facility", "get", created.ID)
	assert.Equal(t, response.ExitNotFound, code)

	assert.Equal(t, []string{events.FacilityCreated, events.FacilityUpdated, events.FacilityDeleted}, h.events.types)

	code, _ = h.run("facility", "delete", "missing")
	assert.Equal(t, response.ExitNotFound, code)

	code, _ = h.run("facility", "create", "--name", "Kosong", "--capacity", "0")
	assert.Equal(t, response.ExitBadRequest, code)
}

func TestCLI_Token(t *testing.T) {
	h := newHarness(t)
	token := h.login("user@kampus.ac.id", "user123")

	code, _ := h.run("auth", "logout")
	require.Equal(t, response.ExitOK, code)

	code, _ = h.run("auth", "whoami")
	assert.Equal(t, response.ExitUnauthorized, code)

	code, env := h.run("--token", token, "auth", "whoami")
	require.Equal(t, response.ExitOK, code, env.Error)
	assert.Equal(t, "2", decode[map[string]any](t, env.Data)["id"])

	code, _ = h.run("--token", "garbage", "reservation", "mine")
	assert.Equal(t, response.ExitUnauthorized, code)
}

func TestCLI_UsageAndUnknownCommand(t *testing.T) {
	h := newHarness(t)

	var out bytes.Buffer
	assert.Equal(t, response.ExitOK, h.app.Run(context.Background(), nil, &out))
	assert.Contains(t, out.String(), "reservation")
	assert.Contains(t, out.String(), "facility")

	out.Reset()
	assert.Equal(t, response.ExitOK, h.app.Run(context.Background(), []string{"reservation", "--help"}, &out))
	assert.Contains(t, out.String(), "approve")

	code, env := h.run("teleport")
	assert.Equal(t, response.ExitBadRequest, code)
	assert.Contains(t, env.Error, "unknown command")

	code, env = h.run("facility", "teleport")
	assert.Equal(t, response.ExitBadRequest, code)
	assert.Contains(t, env.Error, "unknown command")

	code, _ = h.run("--colour", "red")
	assert.Equal(t, response.ExitBadRequest, code)

	code, env = h.run("facility", "get")
	assert.Equal(t, response.ExitBadRequest, code)
	assert.Equal(t, "facility get: id is required", env.Error)
}

func TestCLI_UnknownStatusFilter(t *testing.T) {
	h := newHarness(t)

	code, env := h.run("facility", "list", "--status", "broken")
	assert.Equal(t, response.ExitBadRequest, code)
	assert.Contains(t, env.Error, `status "broken"`)

	h.login("admin@kampus.ac.id", "admin123")

	code, env = h.run("reservation", "mine", "--status", "done")
	assert.Equal(t, response.ExitBadRequest, code)
	assert.Contains(t, env.Error, `status "done"`)

	code, env = h.run("reservation", "list", "--status", "done")
	assert.Equal(t, response.ExitBadRequest, code)
	assert.Contains(t, env.Error, `status "done"`)

	code, env = h.run("reservation", "list", "--status", "pending")
	require.Equal(t, response.ExitOK, code, env.Error)
	assert.Empty(t, decode[[]reservationView](t, env.Data))
}
