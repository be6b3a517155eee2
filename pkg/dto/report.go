package dto

import (
	"time"

	"github.com/google/uuid"
)

// UnitReport is the monthly summary of one unit.
type UnitReport struct {
	UnitID            uuid.UUID           `json:"unit_id"`
	UnitName          string              `json:"unit_name"`
	Month             *string             `json:"month"`
	GeneratedAt       time.Time           `json:"generated_at"`
	Metrics           ReportMetrics       `json:"metrics"`
	Totals            ReportTotals        `json:"totals"`
	StorageSummary    []StorageSummaryRow `json:"storage_summary"`
	MonthlyComparison []MonthlyComparison `json:"monthly_comparison"`
	RecentOrders      []RecentOrder       `json:"recent_orders"`
	Frequencies       []ReportFrequency   `json:"frequencies"`
}

type ReportMetrics struct {
	Capacity      int     `json:"capacity"`
	FrequencyPct  float64 `json:"frequency_pct"`
	CostPerCapita float64 `json:"cost_per_capita"`
	TotalSpending float64 `json:"total_spending"`
	MembersCount  int     `json:"members_count"`
}

// ReportTotals are pack estimates; a nil field means nothing to report.
type ReportTotals struct {
	PacksBudget    *int `json:"packs_budget"`
	PacksDonations *int `json:"packs_donations"`
	TotalPacks     *int `json:"total_packs"`
	PacksConsumed  *int `json:"packs_consumed"`
}

type StorageSummaryRow struct {
	Food          string `json:"food"`
	BoughtAmount  int    `json:"bought_amount"`
	DonatedAmount int    `json:"donated_amount"`
	TotalAmount   int    `json:"total_amount"`
	MeasureUnit   string `json:"measure_unit"`
}

type MonthlyComparison struct {
	Month  string  `json:"month"`
	Budget float64 `json:"budget"`
	Spent  float64 `json:"spent"`
}

type RecentOrder struct {
	ID         uuid.UUID `json:"id"`
	Date       time.Time `json:"date"`
	Amount     float64   `json:"amount"`
	ItemsCount int       `json:"items_count"`
}

type ReportFrequency struct {
	ID     uuid.UUID `json:"id"`
	UnitID uuid.UUID `json:"unit_id"`
	Amount int       `json:"amount"`
	Date   string    `json:"date"`
}
