// Package analytics contiene los casos de uso de reportes de ventas y el dashboard del panel.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/prisma-api/internal/application/dto"
	"github.com/jhoicas/prisma-api/internal/application/sales"
	"github.com/jhoicas/prisma-api/internal/domain/pipeline"
	"github.com/jhoicas/prisma-api/internal/domain/repository"
)

// DashboardRecentSales número de ventas recientes en el resumen.
const DashboardRecentSales = 10

// DashboardUseCase genera el resumen de ventas del panel.
//
// Fuente de datos: AnalyticsRepository para agregados y SaleRepository para listados.
// El estado de cada venta se deriva de sus etapas; no existe columna de estado.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	saleRepo      repository.SaleRepository
	title         string
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso. title es el encabezado configurado del panel.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, saleRepo repository.SaleRepository, title string) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, saleRepo: saleRepo, title: title, now: time.Now}
}

// monthRange mes calendario de asOf: [día 1 00:00, día 1 del mes siguiente).
func monthRange(asOf time.Time) (time.Time, time.Time) {
	start := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())
	return start, start.AddDate(0, 1, 0)
}

func (uc *DashboardUseCase) aggregate(ctx context.Context, asOf time.Time, onlyClosed bool) (dto.SalesAggregateDTO, error) {
	start, end := monthRange(asOf)
	m, err := uc.analyticsRepo.GetSalesMetrics(ctx, start, end, onlyClosed)
	if err != nil {
		return dto.SalesAggregateDTO{}, err
	}
	return dto.SalesAggregateDTO{Count: m.Count, Total: m.Total.Round(2)}, nil
}

// MonthlyClosedSales ventas creadas en el mes de asOf con "venda fechada" marcada.
func (uc *DashboardUseCase) MonthlyClosedSales(ctx context.Context, asOf time.Time) (dto.SalesAggregateDTO, error) {
	return uc.aggregate(ctx, asOf, true)
}

// MonthlyOpenedSales todas las ventas creadas en el mes de asOf.
func (uc *DashboardUseCase) MonthlyOpenedSales(ctx context.Context, asOf time.Time) (dto.SalesAggregateDTO, error) {
	return uc.aggregate(ctx, asOf, false)
}

// Monthly agregados del mes: cerradas, abiertas y en proceso (abiertas − cerradas).
func (uc *DashboardUseCase) Monthly(ctx context.Context, asOf time.Time) (*dto.MonthlySalesDTO, error) {
	closed, err := uc.MonthlyClosedSales(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("dashboard: ventas cerradas del mes: %w", err)
	}
	opened, err := uc.MonthlyOpenedSales(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("dashboard: ventas abiertas del mes: %w", err)
	}
	return &dto.MonthlySalesDTO{
		Year:   asOf.Year(),
		Month:  int(asOf.Month()),
		Label:  MonthLabel(asOf),
		Closed: closed,
		Opened: opened,
		InProcess: dto.SalesAggregateDTO{
			Count: opened.Count - closed.Count,
			Total: opened.Total.Sub(closed.Total),
		},
	}, nil
}

// ListByStatus ventas cuyo estado derivado coincide, más recientes primero.
func (uc *DashboardUseCase) ListByStatus(ctx context.Context, status pipeline.Status) ([]dto.SaleResponse, error) {
	all, err := uc.saleRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	filtered := sales.FilterByStatus(all, status)
	out := make([]dto.SaleResponse, 0, len(filtered))
	for _, s := range filtered {
		out = append(out, sales.ToSaleResponse(&s.Sale, s.CustomerName))
	}
	return out, nil
}

// RecentSales últimas limit ventas con el nombre del cliente.
func (uc *DashboardUseCase) RecentSales(ctx context.Context, limit int) ([]dto.SaleResponse, error) {
	list, err := uc.saleRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, sales.ToSaleResponse(&s.Sale, s.CustomerName))
	}
	return out, nil
}

// Summary construye el DashboardSummaryDTO del panel para el mes de asOf.
func (uc *DashboardUseCase) Summary(ctx context.Context, asOf time.Time) (*dto.DashboardSummaryDTO, error) {
	customers, err := uc.analyticsRepo.CountCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: total de clientes: %w", err)
	}
	all, err := uc.saleRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: ventas: %w", err)
	}
	var byStatus dto.StatusCountsDTO
	for _, s := range all {
		switch s.Status() {
		case pipeline.StatusStarted:
			byStatus.Started++
		case pipeline.StatusInProgress:
			byStatus.InProgress++
		case pipeline.StatusCompleted:
			byStatus.Completed++
		}
	}
	month, err := uc.Monthly(ctx, asOf)
	if err != nil {
		return nil, err
	}
	recent := make([]dto.SaleResponse, 0, min(len(all), DashboardRecentSales))
	for _, s := range all[:min(len(all), DashboardRecentSales)] {
		recent = append(recent, sales.ToSaleResponse(&s.Sale, s.CustomerName))
	}
	return &dto.DashboardSummaryDTO{
		Title:          uc.title,
		TotalCustomers: customers,
		TotalSales:     len(all),
		ByStatus:       byStatus,
		Month:          *month,
		RecentSales:    recent,
		GeneratedAt:    uc.now(),
	}, nil
}

// MonthLabel devuelve una etiqueta legible del mes, ej: "Março 2025".
func MonthLabel(t time.Time) string {
	months := [...]string{
		"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
