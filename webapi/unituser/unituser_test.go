package unituser_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/unas-org/unas-backend/internal/fixtures"
	"github.com/unas-org/unas-backend/pkg/domain"
	"github.com/unas-org/unas-backend/pkg/dto"
	"github.com/unas-org/unas-backend/webapi/testutils"
)

type UnitUserTestSuite struct {
	testutils.Suite
	unit *domain.Unit
	user *domain.User
}

func TestUnitUserTestSuite(t *testing.T) {
	suite.Run(t, new(UnitUserTestSuite))
}

func (s *UnitUserTestSuite) SetupTest() {
	s.Suite.SetupTest()
	s.unit = fixtures.SeedUnit(s.T(), s.Uow, "Centro Dia", nil)
	s.user = s.CreateUser("ana@unas.org.br")
}

func (s *UnitUserTestSuite) link(unitID, userID uuid.UUID) string {
	return fmt.Sprintf(`{"unit_id":"%s","user_id":"%s","role":"gestor"}`, unitID, userID)
}

func (s *UnitUserTestSuite) TestLinkLifecycle() {
	var link dto.UnitUserRead
	s.Expect(s.MakeRequest(http.MethodPost, "/user-unit", s.link(s.unit.ID, s.user.ID), ""), fiber.StatusCreated, &link)
	s.Equal("gestor", link.Role)

	s.Problem(s.MakeRequest(http.MethodPost, "/user-unit", s.link(s.unit.ID, s.user.ID), ""), fiber.StatusConflict)

	var links []dto.UnitUserRead
	s.Expect(s.MakeRequest(http.MethodGet, "/user-unit/"+s.user.ID.String()+"/units", "", ""), fiber.StatusOK, &links)
	s.Require().Len(links, 1)
	s.Equal(s.unit.ID, links[0].UnitID)

	s.Expect(s.MakeRequest(http.MethodGet, "/user-unit/"+s.unit.ID.String()+"/users", "", ""), fiber.StatusOK, &links)
	s.Require().Len(links, 1)
	s.Equal(s.user.ID, links[0].UserID)

	path := "/user-unit/" + link.ID.String()
	s.Expect(s.MakeRequest(http.MethodPut, path, `{"role":"educador"}`, ""), fiber.StatusOK, &link)
	s.Equal("educador", link.Role)

	s.Expect(s.MakeRequest(http.MethodGet, "/user-unit", "", ""), fiber.StatusOK, &links)
	s.Len(links, 1)

	s.Expect(s.MakeRequest(http.MethodDelete, path, "", ""), fiber.StatusNoContent, nil)
	s.Problem(s.MakeRequest(http.MethodGet, path, "", ""), fiber.StatusNotFound)
}

func (s *UnitUserTestSuite) TestCreateRejections() {
	testCases := []struct {
		desc       string
		body       string
		wantStatus int
	}{
		{"unknown user", s.link(s.unit.ID, uuid.New()), fiber.StatusNotFound},
		{"unknown unit", s.link(uuid.New(), s.user.ID), fiber.StatusNotFound},
		{"missing role", fmt.Sprintf(`{"unit_id":"%s","user_id":"%s"}`, s.unit.ID, s.user.ID), fiber.StatusBadRequest},
	}
	for _, tc := range testCases {
		s.Run(tc.desc, func() {
			s.Problem(s.MakeRequest(http.MethodPost, "/user-unit", tc.body, ""), tc.wantStatus)
		})
	}
}
