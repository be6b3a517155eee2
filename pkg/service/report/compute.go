package report

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/unas-org/unas-backend/pkg/domain"
	"github.com/unas-org/unas-backend/pkg/dto"
	"github.com/unas-org/unas-backend/pkg/utils"
)

const recentOrdersLimit = 10

// storageGroup accumulates the items sharing a name and measure unit.
type storageGroup struct {
	name        string
	measureUnit string
	bought      int
	donated     int
	current     int
	used        int
}

// countsAsPacks reports whether the group's stock is measured in packs. An
// empty measure unit is assumed to be packs.
func (g *storageGroup) countsAsPacks() bool {
	mu := strings.ToLower(g.measureUnit)
	return mu == "" || strings.Contains(mu, domain.DefaultMeasureUnit)
}

// build computes the report from a snapshot. GeneratedAt is left to the caller.
func build(snap *snapshot, rng *utils.MonthRange) *dto.UnitReport {
	r := &dto.UnitReport{
		UnitID:            snap.unit.ID,
		UnitName:          snap.unit.Name,
		StorageSummary:    []dto.StorageSummaryRow{},
		MonthlyComparison: []dto.MonthlyComparison{},
		RecentOrders:      []dto.RecentOrder{},
		Frequencies:       make([]dto.ReportFrequency, 0, len(snap.frequencies)),
	}
	if rng != nil {
		m := rng.Start.Format("2006-01")
		r.Month = &m
	}

	effective := rng
	if len(snap.budgets) > 0 {
		first := snap.budgets[0]
		effective = &utils.MonthRange{
			Start: time.Time(first.InitialDate),
			End:   time.Time(first.FinalDate).AddDate(0, 0, 1),
		}
	}
	orders := make([]*domain.Order, 0, len(snap.orders))
	for _, o := range snap.orders {
		if effective == nil || effective.Contains(o.CreatedAt) {
			orders = append(orders, o)
		}
	}

	spent := decimal.Zero
	for _, o := range orders {
		spent = spent.Add(o.AmountOrZero())
	}

	groups := groupStorage(snap.storage)
	for _, g := range groups {
		r.StorageSummary = append(r.StorageSummary, dto.StorageSummaryRow{
			Food:          g.name,
			BoughtAmount:  g.bought,
			DonatedAmount: g.donated,
			TotalAmount:   g.bought + g.donated,
			MeasureUnit:   g.measureUnit,
		})
	}
	r.Totals = packTotals(groups)

	capacity := snap.unit.CapacityOrZero()
	budgetTotal := decimal.Zero
	for _, b := range snap.budgets {
		budgetTotal = budgetTotal.Add(b.Amount)
	}
	r.Metrics = dto.ReportMetrics{
		Capacity:      capacity,
		FrequencyPct:  frequencyPct(snap.frequencies, capacity),
		TotalSpending: spent.InexactFloat64(),
		MembersCount:  len(snap.members),
	}
	if capacity > 0 {
		r.Metrics.CostPerCapita = budgetTotal.Div(decimal.NewFromInt(int64(capacity))).InexactFloat64()
	}

	r.RecentOrders = recentOrders(orders)
	r.MonthlyComparison = monthlyComparison(snap.budgets, orders)

	for _, f := range snap.frequencies {
		r.Frequencies = append(r.Frequencies, dto.ReportFrequency{
			ID:     f.ID,
			UnitID: f.UnitID,
			Amount: f.Amount,
			Date:   domain.FormatDate(f.Date),
		})
	}
	return r
}

// groupStorage groups items by (name, measure unit) in first-seen order.
func groupStorage(items []*domain.StorageItem) []*storageGroup {
	index := make(map[string]*storageGroup)
	groups := make([]*storageGroup, 0)
	for _, it := range items {
		key := it.Name + "||" + it.MeasureUnit
		g, ok := index[key]
		if !ok {
			g = &storageGroup{name: it.Name, measureUnit: it.MeasureUnit}
			index[key] = g
			groups = append(groups, g)
		}
		if domain.IsDonation(it.Type) {
			g.donated += it.InitialQuantity
		} else {
			g.bought += it.InitialQuantity
		}
		g.current += max(0, it.CurrentQuantity())
		g.used += it.UsedQuantity
	}
	return groups
}

// packTotals estimates how many packs on hand came from the budget and how
// many from donations, splitting each group's current stock by the
// bought/donated ratio of its entries. This is an approximation: exits are
// not tracked per provenance.
func packTotals(groups []*storageGroup) dto.ReportTotals {
	var budget, donations, total, consumed int
	for _, g := range groups {
		if !g.countsAsPacks() {
			continue
		}
		current := int(math.RoundToEven(float64(g.current)))
		total += current
		consumed += g.used
		denom := g.bought + g.donated
		if denom <= 0 {
			continue
		}
		budget += int(math.RoundToEven(float64(current) * float64(g.bought) / float64(denom)))
		donations += int(math.RoundToEven(float64(current) * float64(g.donated) / float64(denom)))
	}
	return dto.ReportTotals{
		PacksBudget:    positive(budget),
		PacksDonations: positive(donations),
		TotalPacks:     positive(total),
		PacksConsumed:  positive(consumed),
	}
}

func positive(n int) *int {
	if n <= 0 {
		return nil
	}
	return &n
}

// frequencyPct is the mean attendance as a percentage of capacity.
func frequencyPct(fs []*domain.Frequency, capacity int) float64 {
	if len(fs) == 0 || capacity <= 0 {
		return 0
	}
	sum := 0
	for _, f := range fs {
		sum += f.Amount
	}
	avg := float64(sum) / float64(len(fs))
	return avg / float64(capacity) * 100
}

func recentOrders(orders []*domain.Order) []dto.RecentOrder {
	sorted := make([]*domain.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > recentOrdersLimit {
		sorted = sorted[:recentOrdersLimit]
	}
	out := make([]dto.RecentOrder, 0, len(sorted))
	for _, o := range sorted {
		out = append(out, dto.RecentOrder{
			ID:         o.ID,
			Date:       o.CreatedAt,
			Amount:     o.AmountOrZero().InexactFloat64(),
			ItemsCount: len(o.Items),
		})
	}
	return out
}

// monthlyComparison puts each budget in the month it starts and each order in
// the month it was created.
func monthlyComparison(budgets []*domain.Budget, orders []*domain.Order) []dto.MonthlyComparison {
	type pair struct{ budget, spent decimal.Decimal }
	months := make(map[string]*pair)
	at := func(key string) *pair {
		p, ok := months[key]
		if !ok {
			p = &pair{budget: decimal.Zero, spent: decimal.Zero}
			months[key] = p
		}
		return p
	}
	for _, b := range budgets {
		p := at(time.Time(b.InitialDate).Format("2006-01"))
		p.budget = p.budget.Add(b.Amount)
	}
	for _, o := range orders {
		p := at(o.CreatedAt.UTC().Format("2006-01"))
		p.spent = p.spent.Add(o.AmountOrZero())
	}

	keys := make([]string, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]dto.MonthlyComparison, 0, len(keys))
	for _, k := range keys {
		out = append(out, dto.MonthlyComparison{
			Month:  k,
			Budget: months[k].budget.InexactFloat64(),
			Spent:  months[k].spent.InexactFloat64(),
		})
	}
	return out
}
