package ports

import "github.com/jhoicas/prisma-api/internal/application/dto"

// ReportPDFGenerator puerto de salida para el reporte mensual en PDF.
type ReportPDFGenerator interface {
	GenerateMonthlyReport(companyName string, summary *dto.DashboardSummaryDTO) ([]byte, error)
}
