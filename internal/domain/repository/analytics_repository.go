package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesMetrics agregado de ventas de un período. Total usa COALESCE: valores nulos suman cero.
type SalesMetrics struct {
	Count int
	Total decimal.Decimal
}

// AnalyticsRepository consultas read-only para el dashboard.
type AnalyticsRepository interface {
	// GetSalesMetrics ventas creadas en [start, end). onlyClosed filtra por la etapa "venda fechada".
	GetSalesMetrics(ctx context.Context, start, end time.Time, onlyClosed bool) (SalesMetrics, error)
	CountCustomers(ctx context.Context) (int, error)
	CountSales(ctx context.Context) (int, error)
}
