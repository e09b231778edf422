package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/prisma-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard de ventas.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetSalesMetrics cantidad y suma del valor de las ventas creadas en [start, end).
// COALESCE garantiza cero cuando no hay ventas o el valor es nulo.
func (r *AnalyticsRepo) GetSalesMetrics(ctx context.Context, start, end time.Time, onlyClosed bool) (repository.SalesMetrics, error) {
	const query = `
	SELECT
	    COUNT(*)                  AS sales_count,
	    COALESCE(SUM(s.value), 0) AS total_value
	FROM sales s
	WHERE s.created_at >= $1
	  AND s.created_at <  $2
	  AND ($3 = FALSE OR s.stage_sale_closed)`

	var m repository.SalesMetrics
	if err := r.q.QueryRow(ctx, query, start, end, onlyClosed).Scan(&m.Count, &m.Total); err != nil {
		return repository.SalesMetrics{}, fmt.Errorf("sales metrics: %w", err)
	}
	return m, nil
}

// CountCustomers total de clientes registrados.
func (r *AnalyticsRepo) CountCustomers(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}

// CountSales total de ventas registradas.
func (r *AnalyticsRepo) CountSales(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM sales`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return n, nil
}
