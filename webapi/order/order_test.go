package order_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/unas-org/unas-backend/internal/fixtures"
	"github.com/unas-org/unas-backend/pkg/domain"
	"github.com/unas-org/unas-backend/pkg/dto"
	"github.com/unas-org/unas-backend/webapi/testutils"
)

type OrderTestSuite struct {
	testutils.Suite
	unit   *domain.Unit
	budget *domain.Budget
}

func TestOrderTestSuite(t *testing.T) {
	suite.Run(t, new(OrderTestSuite))
}

func (s *OrderTestSuite) SetupTest() {
	s.Suite.SetupTest()
	s.unit = fixtures.SeedUnit(s.T(), s.Uow, "Centro Dia", fixtures.Ptr(50))
	s.budget = fixtures.SeedBudget(s.T(), s.Uow, "2025-01-01", "2025-12-31", 5000)
}

func (s *OrderTestSuite) TestCreateSumsItems() {
	body := fmt.Sprintf(`{"description":"Compra mensal","unit_id":"%s","budget_id":"%s",
		"items":[{"description":"Arroz","amount":12.5},{"description":"Feijão","amount":7.5,"measure_unit":"kg","received":false}]}`,
		s.unit.ID, s.budget.ID)

	var o dto.OrderRead
	s.Expect(s.MakeRequest(http.MethodPost, "/orders", body, ""), fiber.StatusCreated, &o)
	s.Require().NotNil(o.Amount)
	s.InDelta(20.0, *o.Amount, 0.001)
	s.Equal("pending", o.Status)
	s.Require().Len(o.Items, 2)

	var got dto.OrderRead
	s.Expect(s.MakeRequest(http.MethodGet, "/orders/"+o.ID.String(), "", ""), fiber.StatusOK, &got)
	s.Len(got.Items, 2)
	units := map[string]bool{}
	for _, it := range got.Items {
		units[it.MeasureUnit] = it.Received
	}
	s.Equal(map[string]bool{"pacote": true, "kg": false}, units)
}

func (s *OrderTestSuite) TestCreateKeepsExplicitAmount() {
	var o dto.OrderRead
	s.Expect(s.MakeRequest(http.MethodPost, "/orders", `{"amount":99,"items":[{"amount":1}]}`, ""), fiber.StatusCreated, &o)
	s.Require().NotNil(o.Amount)
	s.InDelta(99.0, *o.Amount, 0.001)
	s.Nil(o.UnitID)
}

func (s *OrderTestSuite) TestCreateRejections() {
	testCases := []struct {
		desc       string
		body       string
		wantStatus int
	}{
		{"unknown unit", fmt.Sprintf(`{"unit_id":"%s"}`, uuid.New()), fiber.StatusNotFound},
		{"unknown budget", fmt.Sprintf(`{"budget_id":"%s"}`, uuid.New()), fiber.StatusNotFound},
		{"negative item", `{"items":[{"amount":-1}]}`, fiber.StatusBadRequest},
		{"malformed", `{"items":`, fiber.StatusBadRequest},
	}
	for _, tc := range testCases {
		s.Run(tc.desc, func() {
			s.Problem(s.MakeRequest(http.MethodPost, "/orders", tc.body, ""), tc.wantStatus)
		})
	}
}

func (s *OrderTestSuite) TestListFilters() {
	now := time.Now()
	older := fixtures.SeedOrder(s.T(), s.Uow, &s.unit.ID, &s.budget.ID, 10, now.Add(-time.Hour), 10)
	newer := fixtures.SeedOrder(s.T(), s.Uow, &s.unit.ID, nil, 20, now)
	fixtures.SeedOrder(s.T(), s.Uow, nil, nil, 30, now)

	var orders []dto.OrderRead
	s.Expect(s.MakeRequest(http.MethodGet, "/orders", "", ""), fiber.StatusOK, &orders)
	s.Len(orders, 3)

	s.Expect(s.MakeRequest(http.MethodGet, "/orders?unit_id="+s.unit.ID.String(), "", ""), fiber.StatusOK, &orders)
	s.Require().Len(orders, 2)
	s.Equal(newer.ID, orders[0].ID)
	s.Equal(older.ID, orders[1].ID)
	s.Len(orders[1].Items, 1)

	s.Expect(s.MakeRequest(http.MethodGet, "/orders/unit/"+s.unit.ID.String(), "", ""), fiber.StatusOK, &orders)
	s.Len(orders, 2)

	s.Expect(s.MakeRequest(http.MethodGet, "/orders/budget/"+s.budget.ID.String(), "", ""), fiber.StatusOK, &orders)
	s.Require().Len(orders, 1)
	s.Equal(older.ID, orders[0].ID)

	s.Problem(s.MakeRequest(http.MethodGet, "/orders?unit_id=nope", "", ""), fiber.StatusBadRequest)
	s.Problem(s.MakeRequest(http.MethodGet, "/orders/unit/nope", "", ""), fiber.StatusBadRequest)
}

func (s *OrderTestSuite) TestUpdateAndStatus() {
	o := fixtures.SeedOrder(s.T(), s.Uow, nil, nil, 10, time.Now())
	path := "/orders/" + o.ID.String()

	var got dto.OrderRead
	s.Expect(s.MakeRequest(http.MethodPut, path, `{"description":"Hortifruti","amount":15}`, ""), fiber.StatusOK, &got)
	s.Equal("Hortifruti", *got.Description)
	s.InDelta(15.0, *got.Amount, 0.001)

	s.Problem(s.MakeRequest(http.MethodPut, path, `{"status":"lost"}`, ""), fiber.StatusBadRequest)

	s.Expect(s.MakeRequest(http.MethodPut, path+"/approve", "", ""), fiber.StatusOK, &got)
	s.Equal("approved", got.Status)
	s.Expect(s.MakeRequest(http.MethodPut, path+"/reject", "", ""), fiber.StatusOK, &got)
	s.Equal("rejected", got.Status)

	s.Problem(s.MakeRequest(http.MethodPut, "/orders/"+uuid.NewString()+"/approve", "", ""), fiber.StatusNotFound)
}

func (s *OrderTestSuite) TestDelete() {
	o := fixtures.SeedOrder(s.T(), s.Uow, nil, nil, 10, time.Now(), 4, 6)
	path := "/orders/" + o.ID.String()

	s.Expect(s.MakeRequest(http.MethodDelete, path, "", ""), fiber.StatusNoContent, nil)
	s.Problem(s.MakeRequest(http.MethodGet, path, "", ""), fiber.StatusNotFound)
	s.Problem(s.MakeRequest(http.MethodDelete, path, "", ""), fiber.StatusNotFound)
}
