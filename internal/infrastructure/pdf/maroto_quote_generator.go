// Package pdf genera la oferta/presupuesto en PDF para entregar al cliente.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del presupuesto  │  Fecha + Estado          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + NIP                                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Lp | Nazwa | Jedn | Ilość | Cena | VAT | Brutto      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Netto / Narzut / VAT / RAZEM BRUTTO                │
//	└─────────────────────────────────────────────────────────────┘
//
// Los importes llegan YA calculados y redondeados; este paquete solo
// los pinta. El PDF enseña céntimo a céntimo lo mismo que la API.
package pdf

import (
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

	"github.com/jhoicas/cotizador-api/internal/application/quotes"
	"github.com/jhoicas/cotizador-api/internal/domain/entity"
	"github.com/jhoicas/cotizador-api/internal/domain/valuation"
	"github.com/jhoicas/cotizador-api/pkg/money"
)

var _ quotes.PDFGenerator = (*MarotoQuoteGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 30, Green: 64, Blue: 110}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoQuoteGenerator implementa quotes.PDFGenerator usando Maroto v2.
type MarotoQuoteGenerator struct{}

// NewMarotoQuoteGenerator construye el generador.
func NewMarotoQuoteGenerator() *MarotoQuoteGenerator { return &MarotoQuoteGenerator{} }

// QuotePDF genera el PDF de la oferta y devuelve sus bytes.
func (g *MarotoQuoteGenerator) QuotePDF(q *entity.Quote, totals valuation.QuoteTotals) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Oferta: "+q.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(q))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	if q.ClientName != "" {
		m.AddRows(clientRow(q))
	}

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(q) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range totalsRows(totals) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la oferta (izq) y fechas + estado (der).
func headerRow(q *entity.Quote) core.Row {
	period := q.DateStart
	if q.DateEnd != "" {
		period += " – " + q.DateEnd
	}
	return row.New(16).Add(
		col.New(8).Add(
			text.New("OFERTA / KOSZTORYS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(q.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Top: 6,
			}),
		),
		col.New(4).Add(
			text.New(period, props.Text{
				Size: 9, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Status: "+string(q.Status), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// clientRow: datos del cliente.
func clientRow(q *entity.Quote) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New("ZAMAWIAJĄCY", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(q.ClientName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
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
		h("Lp.", 1, align.Center),
		h("Nazwa", 4, align.Left),
		h("Jedn.", 1, align.Center),
		h("Ilość", 1, align.Right),
		h("Cena netto", 2, align.Right),
		h("VAT", 1, align.Center),
		h("Brutto", 2, align.Right),
	)
}

// tableItemRows: una fila por línea, con el precio unitario CON narzut;
// el cliente nunca ve el desglose del margen.
func tableItemRows(q *entity.Quote) []core.Row {
	result := make([]core.Row, 0, len(q.Items))
	for i, it := range q.Items {
		lv := valuation.ValueLine(it, q.MarkupFor(it.Kind))
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", i+1),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				it.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				it.Unit,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				it.Quantity.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1},
			)),
			col.New(2).Add(text.New(
				money.FormatPL(lv.UnitPriceWithMarkup),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				it.VATRate.StringFixed(0)+"%",
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				money.FormatPL(lv.Brutto),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRows: bloque de totales alineado a la derecha.
func totalsRows(t valuation.QuoteTotals) []core.Row {
	totalRow := func(label, value string, bold bool) core.Row {
		style := fontstyle.Normal
		size := 9.0
		if bold {
			style = fontstyle.Bold
			size = 11
		}
		return row.New(6).Add(
			col.New(8),
			col.New(2).Add(text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
			})),
			col.New(2).Add(text.New(value, props.Text{
				Style: style, Size: size, Align: align.Right, Right: 1,
			})),
		)
	}
	return []core.Row{
		totalRow("Netto:", money.FormatPLCurrency(t.NettoWithMarkup, "zł"), false),
		totalRow("VAT:", money.FormatPLCurrency(t.VAT, "zł"), false),
		totalRow("RAZEM:", money.FormatPLCurrency(t.BruttoWithMarkup, "zł"), true),
	}
}
