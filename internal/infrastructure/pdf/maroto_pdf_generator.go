// Package pdf genera el relatório mensal de vendas del panel.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + título      │  Mes + fecha de emisión     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  INDICADORES: clientes / vendas / por estado                │
//	│  MES: fechadas | abertas | em processo (qtd + valor)        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cliente | Status | Progresso | Valor | Data          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/prisma-api/internal/application/dto"
	"github.com/jhoicas/prisma-api/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.ReportPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa ports.ReportPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateMonthlyReport genera el PDF del resumen y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateMonthlyReport(companyName string, s *dto.DashboardSummaryDTO) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("pdf: resumen vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Vendas - "+s.Month.Label, true).
		WithAuthor(companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(companyName, s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(indicatorsRow(s))
	m.AddRows(monthRow(s.Month))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(s.RecentSales)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + título (izq) y mes + emisión (der).
func headerRow(companyName string, s *dto.DashboardSummaryDTO) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(companyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(s.Title, "Dashboard"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RELATÓRIO MENSAL DE VENDAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(s.Month.Label, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Emitido em: "+s.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// indicatorsRow: totales generales y conteo por estado derivado.
func indicatorsRow(s *dto.DashboardSummaryDTO) core.Row {
	box := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Top: 6}),
		)
	}
	return row.New(16).Add(
		box("Clientes", fmt.Sprint(s.TotalCustomers)),
		box("Vendas", fmt.Sprint(s.TotalSales)),
		box("Em andamento", fmt.Sprint(s.ByStatus.InProgress+s.ByStatus.Started)),
		box("Concluídas", fmt.Sprint(s.ByStatus.Completed)),
	)
}

// monthRow: agregados del mes (cantidad y valor).
func monthRow(m dto.MonthlySalesDTO) core.Row {
	box := func(label string, agg dto.SalesAggregateDTO) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("%d vendas", agg.Count), props.Text{Size: 9, Top: 6}),
			text.New(formatBRL(agg.Total), props.Text{Style: fontstyle.Bold, Size: 10, Top: 11}),
		)
	}
	return row.New(18).Add(
		box("Vendas fechadas no mês", m.Closed),
		box("Vendas abertas no mês", m.Opened),
		box("Em processo", m.InProcess),
	)
}

// tableHeaderRow: cabecera de la tabla de ventas recientes.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Cliente", 4, align.Left),
		h("Status", 2, align.Center),
		h("Progresso", 2, align.Center),
		h("Valor", 2, align.Right),
		h("Data", 2, align.Center),
	)
}

// tableRows: una fila por venta reciente.
func tableRows(sales []dto.SaleResponse) []core.Row {
	if len(sales) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("Nenhuma venda registrada.", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		))}
	}
	result := make([]core.Row, 0, len(sales))
	for _, s := range sales {
		value := "—"
		if s.Value != nil {
			value = formatBRL(*s.Value)
		}
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(s.CustomerName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(s.StatusLabel, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(s.CompletionPercent.StringFixed(1)+"%", props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(value, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(s.CreatedAt.Format("02/01/2006"), props.Text{Size: 8, Align: align.Center, Top: 1})),
		))
	}
	return result
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Status e progresso calculados a partir das etapas concluídas de cada venda. "+
				"Vendas sem valor informado somam zero.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatBRL formatea en reales: 1500.5 → "R$ 1.500,50".
func formatBRL(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	intPart, frac, _ := strings.Cut(d.StringFixed(2), ".")
	return sign + "R$ " + formatThousands(intPart) + "," + frac
}

// formatThousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
