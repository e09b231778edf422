package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/prisma-api/internal/application/ports"
)

// ReportUseCase exporta el resumen mensual en PDF.
type ReportUseCase struct {
	dashboard   *DashboardUseCase
	generator   ports.ReportPDFGenerator
	companyName string
}

// NewReportUseCase construye el caso de uso del reporte.
func NewReportUseCase(dashboard *DashboardUseCase, generator ports.ReportPDFGenerator, companyName string) *ReportUseCase {
	return &ReportUseCase{dashboard: dashboard, generator: generator, companyName: companyName}
}

// MonthlyReportPDF devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *ReportUseCase) MonthlyReportPDF(ctx context.Context, asOf time.Time) ([]byte, string, error) {
	summary, err := uc.dashboard.Summary(ctx, asOf)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateMonthlyReport(uc.companyName, summary)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generar pdf: %w", err)
	}
	return pdf, fmt.Sprintf("relatorio_vendas_%04d_%02d.pdf", asOf.Year(), asOf.Month()), nil
}
