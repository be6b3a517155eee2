package budget_test

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

type BudgetTestSuite struct {
	testutils.Suite
}

func TestBudgetTestSuite(t *testing.T) {
	suite.Run(t, new(BudgetTestSuite))
}

func (s *BudgetTestSuite) TestCreateGetUpdate() {
	var b dto.BudgetRead
	s.Expect(s.MakeRequest(http.MethodPost, "/budgets",
		`{"description":"Convênio 2025","initial_date":"2025-01-01","final_date":"2025-06-30","amount":12000.50}`, ""),
		fiber.StatusCreated, &b)
	s.Equal("2025-01-01", b.InitialDate)
	s.InDelta(12000.50, b.Amount, 0.001)

	var got dto.BudgetRead
	s.Expect(s.MakeRequest(http.MethodGet, "/budgets/"+b.ID.String(), "", ""), fiber.StatusOK, &got)
	s.Equal("Convênio 2025", got.Description)

	s.Expect(s.MakeRequest(http.MethodPut, "/budgets/"+b.ID.String(), `{"final_date":"2025-12-31"}`, ""), fiber.StatusOK, &got)
	s.Equal("2025-12-31", got.FinalDate)

	s.Problem(s.MakeRequest(http.MethodPut, "/budgets/"+b.ID.String(), `{"final_date":"2024-12-31"}`, ""), fiber.StatusBadRequest)
	s.Problem(s.MakeRequest(http.MethodPut, "/budgets/"+uuid.NewString(), `{"amount":1}`, ""), fiber.StatusNotFound)
}

func (s *BudgetTestSuite) TestCreateRejections() {
	testCases := []struct {
		desc string
		body string
	}{
		{"final before initial", `{"description":"x","initial_date":"2025-06-01","final_date":"2025-01-01","amount":1}`},
		{"bad date", `{"description":"x","initial_date":"01/06/2025","final_date":"2025-12-01","amount":1}`},
		{"missing description", `{"initial_date":"2025-01-01","final_date":"2025-12-01","amount":1}`},
	}
	for _, tc := range testCases {
		s.Run(tc.desc, func() {
			s.Problem(s.MakeRequest(http.MethodPost, "/budgets", tc.body, ""), fiber.StatusBadRequest)
		})
	}
}

func (s *BudgetTestSuite) TestListWindow() {
	fixtures.SeedBudget(s.T(), s.Uow, "2025-01-01", "2025-06-30", 100)
	fixtures.SeedBudget(s.T(), s.Uow, "2025-07-01", "2025-12-31", 200)

	var budgets []dto.BudgetRead
	s.Expect(s.MakeRequest(http.MethodGet, "/budgets", "", ""), fiber.StatusOK, &budgets)
	s.Require().Len(budgets, 2)
	s.Equal("2025-01-01", budgets[0].InitialDate)

	s.Expect(s.MakeRequest(http.MethodGet, "/budgets?initial_date=2025-03-01", "", ""), fiber.StatusOK, &budgets)
	s.Require().Len(budgets, 1)
	s.Equal("2025-07-01", budgets[0].InitialDate)

	s.Expect(s.MakeRequest(http.MethodGet, "/budgets?final_date=2025-06-30", "", ""), fiber.StatusOK, &budgets)
	s.Len(budgets, 1)

	s.Problem(s.MakeRequest(http.MethodGet, "/budgets?final_date=junho", "", ""), fiber.StatusBadRequest)
}

func (s *BudgetTestSuite) TestDeleteGuardsOrders() {
	b := fixtures.SeedBudget(s.T(), s.Uow, "2025-01-01", "2025-12-31", 100)
	o := fixtures.SeedOrder(s.T(), s.Uow, nil, &b.ID, 10, time.Now())
	path := "/budgets/" + b.ID.String()

	pd := s.Problem(s.MakeRequest(http.MethodDelete, path, "", ""), fiber.StatusBadRequest)
	s.Contains(pd["detail"], "referenced by 1 order(s)")

	s.Expect(s.MakeRequest(http.MethodDelete, "/orders/"+o.ID.String(), "", ""), fiber.StatusNoContent, nil)
	s.Expect(s.MakeRequest(http.MethodDelete, path, "", ""), fiber.StatusNoContent, nil)
	s.Problem(s.MakeRequest(http.MethodGet, path, "", ""), fiber.StatusNotFound)
}
