package webapi_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
	"github.com/unas-org/unas-backend/pkg/config"
	"github.com/unas-org/unas-backend/webapi/testutils"
)

type AppTestSuite struct {
	testutils.Suite
}

func TestAppTestSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}

func (s *AppTestSuite) TestLiveness() {
	var out map[string]string
	s.Expect(s.MakeRequest(http.MethodGet, "/", "", ""), fiber.StatusOK, &out)
	s.Equal("ok", out["status"])
}

func (s *AppTestSuite) TestUnknownRouteIsProblem() {
	s.Problem(s.MakeRequest(http.MethodGet, "/nowhere", "", ""), fiber.StatusNotFound)
}

// get sends GET / carrying forwardedFor as X-Forwarded-For.
func (s *AppTestSuite) get(forwardedFor string) *http.Response {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderXForwardedFor, forwardedFor)
	resp, err := s.Fiber.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

func (s *AppTestSuite) TestRateLimitIgnoresForwardedForFromUntrustedPeer() {
	s.Reconfigure(func(cfg *config.App) {
		cfg.RateLimit.MaxRequests = 3
		cfg.RateLimit.Window = time.Minute
	})

	for i := range 3 {
		resp := s.get(fmt.Sprintf("198.51.100.%d", i+1))
		s.Equalf(fiber.StatusOK, resp.StatusCode, "request %d", i+1)
		_ = resp.Body.Close()
	}
	pd := s.Problem(s.get("198.51.100.99"), fiber.StatusTooManyRequests)
	s.Equal("rate limit exceeded", pd["detail"])
}

func (s *AppTestSuite) TestRateLimitBehindTrustedProxy() {
	s.Reconfigure(func(cfg *config.App) {
		cfg.RateLimit.MaxRequests = 3
		cfg.RateLimit.Window = time.Minute
		cfg.Server.TrustedProxies = []string{"0.0.0.0/0"}
	})

	for i := range 3 {
		resp := s.get("203.0.113.7, 10.0.0.1")
		s.Equalf(fiber.StatusOK, resp.StatusCode, "request %d", i+1)
		_ = resp.Body.Close()
	}
	pd := s.Problem(s.get("203.0.113.7, 10.0.0.1"), fiber.StatusTooManyRequests)
	s.Equal("rate limit exceeded", pd["detail"])

	resp := s.get("203.0.113.8")
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)
}
