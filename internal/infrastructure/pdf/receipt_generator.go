// Package pdf implementa la generación del recibo de venta imprimible.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la empresa + encabezado configurable      │
//	│  N° de recibo + Fecha + Vendedor                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Total                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / IVA / TOTAL                             │
//	│  Estado de crédito / reembolso cuando aplica                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: pie configurable de la empresa                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 30, Green: 60, Blue: 90}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReceiptGenerator implementa sale.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct {
	printer *message.Printer
}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{printer: message.NewPrinter(language.Spanish)}
}

// GenerateReceipt genera el PDF del recibo y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceipt(
	_ context.Context,
	s *entity.Sale,
	company *entity.Company,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo de Venta", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(s, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range g.tableItemRows(s, company.CurrencySymbol) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(s, company.CurrencySymbol))

	for _, r := range statusRows(s) {
		m.AddRows(r)
	}

	if company.ReceiptFooter != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New(company.ReceiptFooter, props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + encabezado (izq) y N° de recibo + fecha (der).
func (g *MarotoReceiptGenerator) headerRow(s *entity.Sale, company *entity.Company) core.Row {
	fecha := s.CreatedAt.Format("02/01/2006 15:04")

	return row.New(20).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(company.ReceiptHeader, company.Address), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
			text.New("Tel: "+nonEmpty(company.Phone, "—"), props.Text{
				Size: 8, Top: 14, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RECIBO DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("#"+shortRef(s.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

// tableItemRows: una fila por línea de la venta.
func (g *MarotoReceiptGenerator) tableItemRows(s *entity.Sale, symbol string) []core.Row {
	result := make([]core.Row, 0, len(s.Items))
	for _, item := range s.Items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", item.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				item.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				g.money(symbol, item.PricePerUnit),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				g.money(symbol, item.Total),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func (g *MarotoReceiptGenerator) totalsRow(s *entity.Sale, symbol string) core.Row {
	label := func(txt string) core.Component {
		return text.New(txt, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(txt string) core.Component {
		return text.New(txt, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(txt string) core.Component {
		return text.New(txt, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(txt string) core.Component {
		return text.New(txt, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	subtotal := s.TotalAmount.Sub(s.VATAmount)

	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Subtotal:"),
			label("IVA:"),
			grandLabel("TOTAL:"),
		),
		col.New(3).Add(
			value(g.money(symbol, subtotal)),
			value(g.money(symbol, s.VATAmount)),
			grandValue(g.money(symbol, s.TotalAmount)),
		),
		col.New(3),
	)
}

// statusRows: leyendas de crédito y reembolso cuando aplican.
func statusRows(s *entity.Sale) []core.Row {
	var rows []core.Row
	if s.IsCredit && !s.CreditSettled {
		rows = append(rows, row.New(7).Add(col.New(12).Add(
			text.New("VENTA A CRÉDITO - PENDIENTE DE PAGO", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Center,
				Color: colorPrimary, Top: 2,
			}),
		)))
	}
	if s.RefundStatus != entity.RefundNone {
		rows = append(rows, row.New(7).Add(col.New(12).Add(
			text.New("Reembolso: "+s.RefundStatus, props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money formatea el monto con separadores de miles según locale.
func (g *MarotoReceiptGenerator) money(symbol string, d decimal.Decimal) string {
	f, _ := d.Float64()
	return g.printer.Sprintf("%s%.2f", nonEmpty(symbol, "$"), f)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// shortRef devuelve un número de recibo corto a partir del UUID de la venta.
func shortRef(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
