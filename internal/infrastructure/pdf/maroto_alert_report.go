// Package pdf genera el reporte PDF de alertas de stock bajo de una empresa.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa              │  Fecha de generación        │
//	│  Ventana de ventas + total de alertas                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Bodega | Stock | Umbral | Días | Prov│
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: contactos de proveedores                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"sort"

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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/stock-alerts-api/internal/application/dto"
	"github.com/jhoicas/stock-alerts-api/internal/application/inventory"
)

var _ inventory.AlertReportGenerator = (*MarotoAlertReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoAlertReportGenerator implementa inventory.AlertReportGenerator usando Maroto v2.
type MarotoAlertReportGenerator struct {
	printer *message.Printer
}

// NewMarotoAlertReportGenerator construye el generador; las cantidades se agrupan al estilo es-CO.
func NewMarotoAlertReportGenerator() *MarotoAlertReportGenerator {
	return &MarotoAlertReportGenerator{printer: message.NewPrinter(language.Spanish)}
}

// GenerateLowStockReport genera el PDF y devuelve sus bytes.
func (g *MarotoAlertReportGenerator) GenerateLowStockReport(ctx context.Context, eval *inventory.LowStockEvaluation) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if eval == nil || eval.Company == nil {
		return nil, fmt.Errorf("pdf: evaluación sin empresa")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Alertas de stock bajo", true).
		WithAuthor(eval.Company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(eval))
	m.AddRows(g.summaryRow(eval))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(eval.Result.Alerts) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin productos en riesgo de agotarse.", props.Text{
				Size: 9, Align: align.Center, Top: 3, Color: colorGray,
			}),
		)))
	}
	m.AddRows(g.tableDetailRows(eval.Result.Alerts)...)

	if contacts := supplierContacts(eval.Result.Alerts); len(contacts) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(contactRows(contacts)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoAlertReportGenerator) headerRow(eval *inventory.LowStockEvaluation) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(eval.Company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Empresa #%d", eval.Company.ID), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ALERTAS DE STOCK BAJO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+eval.GeneratedAt.Format("02/01/2006 15:04 MST"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func (g *MarotoAlertReportGenerator) summaryRow(eval *inventory.LowStockEvaluation) core.Row {
	window := fmt.Sprintf("Ventas consideradas: %s a %s (%d días)",
		eval.Window.Start.Format("02/01/2006"), eval.Window.End.Format("02/01/2006"), eval.Window.Days)
	return row.New(10).Add(
		col.New(8).Add(text.New(window, props.Text{Size: 8, Top: 2, Color: colorGray})),
		col.New(4).Add(text.New(
			g.printer.Sprintf("Total alertas: %d", eval.Result.TotalAlerts),
			props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2},
		)),
	)
}

// tableHeaderRow: cabecera de la tabla con fondo del color primario.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 3, align.Left),
		h("Bodega", 2, align.Left),
		h("Stock", 1, align.Right),
		h("Umbral", 1, align.Right),
		h("Días", 1, align.Right),
		h("Proveedor", 2, align.Left),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por alerta (producto × bodega × proveedor).
func (g *MarotoAlertReportGenerator) tableDetailRows(alerts []dto.LowStockAlertDTO) []core.Row {
	cell := func(s string, size int, a align.Type, c *props.Color) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1, Color: c}))
	}
	result := make([]core.Row, 0, len(alerts))
	for _, a := range alerts {
		days, daysColor := "—", colorGray
		if a.DaysUntilStockout != nil {
			days = g.printer.Sprintf("%d", *a.DaysUntilStockout)
			if *a.DaysUntilStockout <= 7 {
				daysColor = colorAlert
			} else {
				daysColor = nil
			}
		}
		supplier := "—"
		if a.Supplier != nil {
			supplier = a.Supplier.Name
		}
		result = append(result, row.New(7).Add(
			cell(a.SKU, 2, align.Left, nil),
			cell(a.ProductName, 3, align.Left, nil),
			cell(a.WarehouseName, 2, align.Left, nil),
			cell(g.printer.Sprintf("%d", a.CurrentStock), 1, align.Right, nil),
			cell(g.printer.Sprintf("%d", a.Threshold), 1, align.Right, nil),
			cell(days, 1, align.Right, daysColor),
			cell(supplier, 2, align.Left, nil),
		))
	}
	return result
}

type contact struct {
	name  string
	email string
}

// supplierContacts proveedores distintos presentes en las alertas, ordenados por nombre.
func supplierContacts(alerts []dto.LowStockAlertDTO) []contact {
	seen := make(map[int64]contact)
	for _, a := range alerts {
		if a.Supplier == nil {
			continue
		}
		c := contact{name: a.Supplier.Name, email: "sin correo registrado"}
		if a.Supplier.ContactEmail != nil && *a.Supplier.ContactEmail != "" {
			c.email = *a.Supplier.ContactEmail
		}
		seen[a.Supplier.ID] = c
	}
	out := make([]contact, 0, len(seen))
	for _, c := range seen {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

func contactRows(contacts []contact) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("CONTACTOS DE PROVEEDORES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for _, c := range contacts {
		rows = append(rows, row.New(5).Add(
			col.New(5).Add(text.New(c.name, props.Text{Size: 8, Top: 1, Left: 2})),
			col.New(7).Add(text.New(c.email, props.Text{Size: 8, Top: 1, Color: colorGray})),
		))
	}
	return rows
}
