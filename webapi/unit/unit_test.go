package unit_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/unas-org/unas-backend/internal/fixtures"
	"github.com/unas-org/unas-backend/pkg/dto"
	"github.com/unas-org/unas-backend/webapi/testutils"
)

type UnitTestSuite struct {
	testutils.Suite
}

func TestUnitTestSuite(t *testing.T) {
	suite.Run(t, new(UnitTestSuite))
}

func (s *UnitTestSuite) TestCRUD() {
	var u dto.UnitRead
	s.Expect(s.MakeRequest(http.MethodPost, "/units",
		`{"name":"Centro Dia","address":"Rua A, 1","type":"CCA","capacity":80}`, ""), fiber.StatusCreated, &u)
	s.Require().NotNil(u.Capacity)
	s.Equal(80, *u.Capacity)

	path := "/units/" + u.ID.String()
	var got dto.UnitRead
	s.Expect(s.MakeRequest(http.MethodGet, path, "", ""), fiber.StatusOK, &got)
	s.Equal("Centro Dia", got.Name)

	s.Expect(s.MakeRequest(http.MethodPut, path, `{"capacity":90,"type":"SCFV"}`, ""), fiber.StatusOK, &got)
	s.Equal(90, *got.Capacity)
	s.Equal("SCFV", got.Type)
	s.Equal("Rua A, 1", got.Address)

	s.Problem(s.MakeRequest(http.MethodPut, path, `{"capacity":-1}`, ""), fiber.StatusBadRequest)

	s.Expect(s.MakeRequest(http.MethodDelete, path, "", ""), fiber.StatusNoContent, nil)
	s.Problem(s.MakeRequest(http.MethodGet, path, "", ""), fiber.StatusNotFound)
	s.Problem(s.MakeRequest(http.MethodDelete, path, "", ""), fiber.StatusNotFound)
}

func (s *UnitTestSuite) TestCreateRejections() {
	testCases := []struct {
		desc string
		body string
	}{
		{"missing name", `{"address":"Rua A","type":"CCA"}`},
		{"negative capacity", `{"name":"X","address":"Rua A","type":"CCA","capacity":-5}`},
		{"malformed", `{"name":`},
	}
	for _, tc := range testCases {
		s.Run(tc.desc, func() {
			s.Problem(s.MakeRequest(http.MethodPost, "/units", tc.body, ""), fiber.StatusBadRequest)
		})
	}
}

func (s *UnitTestSuite) TestLookups() {
	fixtures.SeedUnit(s.T(), s.Uow, "Centro Dia", nil)
	fixtures.SeedUnit(s.T(), s.Uow, "Abrigo", nil)
	var other dto.UnitRead
	s.Expect(s.MakeRequest(http.MethodPost, "/units",
		`{"name":"Casa Lar","address":"Av. Brasil, 9","type":"SCFV"}`, ""), fiber.StatusCreated, &other)

	var units []dto.UnitRead
	s.Expect(s.MakeRequest(http.MethodGet, "/units", "", ""), fiber.StatusOK, &units)
	s.Require().Len(units, 3)
	s.Equal("Abrigo", units[0].Name)

	s.Expect(s.MakeRequest(http.MethodGet, "/units?type=SCFV", "", ""), fiber.StatusOK, &units)
	s.Require().Len(units, 1)
	s.Equal(other.ID, units[0].ID)

	s.Expect(s.MakeRequest(http.MethodGet, "/units/type/CCA", "", ""), fiber.StatusOK, &units)
	s.Len(units, 2)

	s.Expect(s.MakeRequest(http.MethodGet, "/units/address/Rua%20das%20Flores,%20100", "", ""), fiber.StatusOK, &units)
	s.Len(units, 2)

	var u dto.UnitRead
	s.Expect(s.MakeRequest(http.MethodGet, "/units/name/Casa%20Lar", "", ""), fiber.StatusOK, &u)
	s.Equal(other.ID, u.ID)
	s.Problem(s.MakeRequest(http.MethodGet, "/units/name/Nenhuma", "", ""), fiber.StatusNotFound)

	s.Problem(s.MakeRequest(http.MethodGet, "/units/"+uuid.NewString(), "", ""), fiber.StatusNotFound)
	s.Problem(s.MakeRequest(http.MethodGet, "/units/not-a-uuid", "", ""), fiber.StatusBadRequest)
}
