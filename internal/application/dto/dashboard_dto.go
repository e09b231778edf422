package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesAggregateDTO cantidad y valor total de un conjunto de ventas.
type SalesAggregateDTO struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// MonthlySalesDTO ventas del mes calendario: cerradas, abiertas y la diferencia "em processo".
type MonthlySalesDTO struct {
	Year      int               `json:"year"`
	Month     int               `json:"month"`
	Label     string            `json:"label"` // ej: "Março 2025"
	Closed    SalesAggregateDTO `json:"closed"`
	Opened    SalesAggregateDTO `json:"opened"`
	InProcess SalesAggregateDTO `json:"in_process"`
}

// StatusCountsDTO ventas por estado derivado.
type StatusCountsDTO struct {
	Started    int `json:"started"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
}

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	Title          string          `json:"title"`
	TotalCustomers int             `json:"total_customers"`
	TotalSales     int             `json:"total_sales"`
	ByStatus       StatusCountsDTO `json:"by_status"`
	Month          MonthlySalesDTO `json:"month"`
	RecentSales    []SaleResponse  `json:"recent_sales"`
	GeneratedAt    time.Time       `json:"generated_at"`
}
