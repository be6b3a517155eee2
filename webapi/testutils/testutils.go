// Package testutils builds a fully wired fiber app for HTTP tests.
package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/unas-org/unas-backend/infra"
	infrarepo "github.com/unas-org/unas-backend/infra/repository"
	"github.com/unas-org/unas-backend/internal/fixtures"
	"github.com/unas-org/unas-backend/pkg/app"
	"github.com/unas-org/unas-backend/pkg/config"
	"github.com/unas-org/unas-backend/pkg/domain"
	"github.com/unas-org/unas-backend/pkg/dto"
	"github.com/unas-org/unas-backend/webapi"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const TestPassword = "password123"

// TestConfig is the configuration every HTTP test runs with.
func TestConfig() *config.App {
	return &config.App{
		Env:       "test",
		Name:      "UNAS",
		URL:       "http://localhost:3000",
		Timezone:  "America/Sao_Paulo",
		Server:    &config.Server{Host: "127.0.0.1", Port: 3000},
		Log:       &config.Log{Format: "text"},
		DB:        &config.DB{},
		Jwt:       &config.Jwt{Secret: "test-secret", Expiry: 168 * time.Hour},
		Code:      &config.Code{TTL: 30 * time.Minute},
		Smtp:      &config.Smtp{},
		Admin:     &config.Admin{Email: "admin@unas.org.br", Password: "123456", Username: "adminunas"},
		Redis:     &config.Redis{},
		RateLimit: &config.RateLimit{MaxRequests: 10000, Window: time.Minute, CodeAttempts: 5, CodeWindow: time.Minute},
	}
}

// Suite runs every test against a fresh in-memory SQLite database.
type Suite struct {
	suite.Suite
	Uow    *infrarepo.UoW
	Mailer *fixtures.RecordingMailer
	App    *app.App
	Fiber  *fiber.App
	Cfg    *config.App
}

func (s *Suite) SetupTest() {
	s.Build(fixtures.NewTestUoW(s.T()))
}

// TearDownTest drops any config a test tuned so the next test starts from
// TestConfig again.
func (s *Suite) TearDownTest() {
	s.Cfg = nil
}

// Reconfigure rebuilds the app on the current database with a tuned copy of
// TestConfig.
func (s *Suite) Reconfigure(tune func(cfg *config.App)) {
	cfg := TestConfig()
	tune(cfg)
	s.Cfg = cfg
	s.Build(s.Uow)
}

// Build wires the services and routes on top of uow.
func (s *Suite) Build(uow *infrarepo.UoW) {
	if s.Cfg == nil {
		s.Cfg = TestConfig()
	}
	s.Uow = uow
	s.Mailer = &fixtures.RecordingMailer{}
	s.App = app.New(&app.Deps{
		Uow:    uow,
		Mailer: s.Mailer,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, s.Cfg)
	s.Fiber = webapi.SetupApp(s.App)
}

// MakeRequest is a helper for making HTTP requests in tests
func (s *Suite) MakeRequest(method, path, body, token string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.Fiber.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

// Expect asserts the status code and decodes the JSON body into out when
// out is non-nil. The body is always closed.
func (s *Suite) Expect(resp *http.Response, status int, out any) {
	defer resp.Body.Close() //nolint:errcheck
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Require().Equalf(status, resp.StatusCode, "body: %s", body)
	if out != nil {
		s.Require().NoError(json.Unmarshal(body, out), "body: %s", body)
	}
}

// Problem asserts an RFC 9457 error response and returns it.
func (s *Suite) Problem(resp *http.Response, status int) map[string]any {
	s.Equal("application/problem+json", resp.Header.Get(fiber.HeaderContentType))
	var pd map[string]any
	s.Expect(resp, status, &pd)
	return pd
}

// CreateUser stores an active user whose password is TestPassword.
func (s *Suite) CreateUser(email string) *domain.User {
	return fixtures.SeedUser(s.T(), s.Uow, email, TestPassword)
}

// LoginUser logs in through the API and returns the access token.
func (s *Suite) LoginUser(email string) string {
	resp := s.MakeRequest(http.MethodPost, "/auth/login",
		`{"email":"`+email+`","password":"`+TestPassword+`"}`, "")
	var out dto.LoginResponse
	s.Expect(resp, fiber.StatusOK, &out)
	s.Require().NotEmpty(out.AccessToken)
	return out.AccessToken
}

// E2ETestSuite runs the same app against PostgreSQL in a container with the
// real migrations applied.
type E2ETestSuite struct {
	Suite
	pgContainer *tcpostgres.PostgresContainer
	db          *gorm.DB
}

// startPostgresContainer starts a Postgres container using Testcontainers
func (s *E2ETestSuite) startPostgresContainer(ctx context.Context) (*tcpostgres.PostgresContainer, error) {
	return tcpostgres.Run(
		ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(30*time.Second),
		),
	)
}

// SetupSuite initializes the test suite with a real Postgres database
func (s *E2ETestSuite) SetupSuite() {
	testcontainers.SkipIfProviderIsNotHealthy(s.T())
	ctx := context.Background()

	pg, err := s.startPostgresContainer(ctx)
	s.Require().NoError(err)
	s.pgContainer = pg

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	s.Require().NoError(err)
	s.Require().NoError(infra.MigrateUp(s.db))

	s.Cfg = TestConfig()
}

// SetupTest empties every table so tests do not see each other's rows.
func (s *E2ETestSuite) SetupTest() {
	s.Require().NoError(s.db.Exec(`TRUNCATE TABLE
		storage_movements, storage, order_items, orders, budgets,
		frequency, security_codes, unit_users, users, units CASCADE`).Error)
	s.Build(infrarepo.NewUoW(s.db))
}

// TearDownSuite cleans up the test suite resources
func (s *E2ETestSuite) TearDownSuite() {
	if s.pgContainer != nil {
		_ = s.pgContainer.Terminate(context.Background())
	}
}
