package user_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/unas-org/unas-backend/internal/fixtures"
	"github.com/unas-org/unas-backend/pkg/dto"
	"github.com/unas-org/unas-backend/webapi/testutils"
)

type UserTestSuite struct {
	testutils.Suite
}

func TestUserTestSuite(t *testing.T) {
	suite.Run(t, new(UserTestSuite))
}

func (s *UserTestSuite) TestRegister() {
	var u dto.UserRead
	s.Expect(s.MakeRequest(http.MethodPost, "/user/register",
		`{"email":"Ana@UNAS.org.br","password":"secret1","username":"ana","role":"coordenadora"}`, ""),
		fiber.StatusCreated, &u)
	s.Equal("ana@unas.org.br", u.Email)
	s.True(u.Active)
	s.False(u.EmailVerified)

	mail, ok := s.Mailer.Last("verify", "ana@unas.org.br")
	s.Require().True(ok)
	s.Contains(mail.Code, "UNAS_")

	pd := s.Problem(s.MakeRequest(http.MethodPost, "/user/register",
		`{"email":"ana@unas.org.br","password":"secret2","username":"ana2","role":"x"}`, ""), fiber.StatusConflict)
	s.Contains(pd["detail"], "already registered")
}

func (s *UserTestSuite) TestRegisterRejections() {
	testCases := []struct {
		desc string
		body string
	}{
		{"bad email", `{"email":"ana","password":"secret1","username":"ana","role":"x"}`},
		{"short password", `{"email":"ana@unas.org.br","password":"123","username":"ana","role":"x"}`},
		{"missing role", `{"email":"ana@unas.org.br","password":"secret1","username":"ana"}`},
	}
	for _, tc := range testCases {
		s.Run(tc.desc, func() {
			s.Problem(s.MakeRequest(http.MethodPost, "/user/register", tc.body, ""), fiber.StatusBadRequest)
		})
	}
	s.Zero(s.Mailer.Count())
}

func (s *UserTestSuite) TestGetIncludesUnits() {
	u := s.CreateUser("ana@unas.org.br")
	unit := fixtures.SeedUnit(s.T(), s.Uow, "Centro Dia", nil)
	fixtures.SeedMembership(s.T(), s.Uow, unit.ID, u.ID, time.Now())

	var got dto.UserRead
	s.Expect(s.MakeRequest(http.MethodGet, "/user/"+u.ID.String(), "", ""), fiber.StatusOK, &got)
	s.Equal([]uuid.UUID{unit.ID}, got.Units)

	s.Problem(s.MakeRequest(http.MethodGet, "/user/"+uuid.NewString(), "", ""), fiber.StatusNotFound)
}

func (s *UserTestSuite) TestListUpdateDelete() {
	u := s.CreateUser("ana@unas.org.br")
	s.CreateUser("bia@unas.org.br")

	var users []dto.UserRead
	s.Expect(s.MakeRequest(http.MethodGet, "/user", "", ""), fiber.StatusOK, &users)
	s.Len(users, 2)

	var got dto.UserRead
	s.Expect(s.MakeRequest(http.MethodPut, "/user/"+u.ID.String(), `{"role":"admin","username":"Ana Paula"}`, ""), fiber.StatusOK, &got)
	s.Equal("admin", got.Role)
	s.Equal("Ana Paula", got.Username)

	s.Expect(s.MakeRequest(http.MethodGet, "/user?role=admin", "", ""), fiber.StatusOK, &users)
	s.Require().Len(users, 1)
	s.Equal(u.ID, users[0].ID)

	s.Expect(s.MakeRequest(http.MethodDelete, "/user/"+u.ID.String(), "", ""), fiber.StatusNoContent, nil)
	s.Expect(s.MakeRequest(http.MethodGet, "/user/"+u.ID.String(), "", ""), fiber.StatusOK, &got)
	s.False(got.Active)

	s.Problem(s.MakeRequest(http.MethodPost, "/auth/login",
		`{"email":"ana@unas.org.br","password":"`+testutils.TestPassword+`"}`, ""), fiber.StatusUnauthorized)
	s.Problem(s.MakeRequest(http.MethodDelete, "/user/"+uuid.NewString(), "", ""), fiber.StatusNotFound)
}
