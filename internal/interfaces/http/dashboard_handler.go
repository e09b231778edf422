package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/prisma-api/internal/application/analytics"
	"github.com/jhoicas/prisma-api/internal/application/dto"
)

// DashboardHandler maneja los endpoints del dashboard del panel.
type DashboardHandler struct {
	uc     *appanalytics.DashboardUseCase
	report *appanalytics.ReportUseCase
	now    func() time.Time
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, report *appanalytics.ReportUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, report: report, now: time.Now}
}

// asOf mes pedido por ?year=&month=; sin parámetros es el mes actual.
func (h *DashboardHandler) asOf(c *fiber.Ctx) (time.Time, bool) {
	now := h.now()
	if c.Query("year") == "" && c.Query("month") == "" {
		return now, true
	}
	year, errY := strconv.Atoi(c.Query("year", strconv.Itoa(now.Year())))
	month, errM := strconv.Atoi(c.Query("month", strconv.Itoa(int(now.Month()))))
	if errY != nil || errM != nil || month < 1 || month > 12 || year < 2000 || year > 9999 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, now.Location()), true
}

func invalidMonth(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "year/month inválidos"})
}

// GetSummary devuelve el resumen del panel.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (total_customers, total_sales, by_status,
// month{closed, opened, in_process}, recent_sales[10]).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	asOf, ok := h.asOf(c)
	if !ok {
		return invalidMonth(c)
	}
	summary, err := h.uc.Summary(c.Context(), asOf)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// GetMonthly GET /api/dashboard/monthly?year=2025&month=3
func (h *DashboardHandler) GetMonthly(c *fiber.Ctx) error {
	asOf, ok := h.asOf(c)
	if !ok {
		return invalidMonth(c)
	}
	m, err := h.uc.Monthly(c.Context(), asOf)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(m)
}

// GetReportPDF GET /api/dashboard/report.pdf?year=2025&month=3
func (h *DashboardHandler) GetReportPDF(c *fiber.Ctx) error {
	asOf, ok := h.asOf(c)
	if !ok {
		return invalidMonth(c)
	}
	pdf, filename, err := h.report.MonthlyReportPDF(c.Context(), asOf)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
