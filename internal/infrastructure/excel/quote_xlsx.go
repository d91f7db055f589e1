// Package excel exporta presupuestos a XLSX. Igual que el PDF, recibe los
// totales canónicos ya calculados y solo los pinta.
package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/cotizador-api/internal/application/quotes"
	"github.com/jhoicas/cotizador-api/internal/domain/entity"
	"github.com/jhoicas/cotizador-api/internal/domain/valuation"
)

var _ quotes.XLSXGenerator = (*QuoteXLSXGenerator)(nil)

// QuoteXLSXGenerator implementa quotes.XLSXGenerator usando excelize.
type QuoteXLSXGenerator struct{}

// NewQuoteXLSXGenerator construye el generador.
func NewQuoteXLSXGenerator() *QuoteXLSXGenerator { return &QuoteXLSXGenerator{} }

// QuoteXLSX genera el libro con una hoja de líneas y el bloque de totales.
func (g *QuoteXLSXGenerator) QuoteXLSX(q *entity.Quote, totals valuation.QuoteTotals) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Kosztorys"
	f.SetSheetName("Sheet1", sheet)

	_ = f.SetCellValue(sheet, "A1", q.Name)
	if q.ClientName != "" {
		_ = f.SetCellValue(sheet, "A2", "Zamawiający: "+q.ClientName)
	}

	headers := []string{"Lp.", "Nazwa", "Rodzaj", "Jedn.", "Ilość", "Cena netto", "Cena z narzutem", "VAT %", "Netto", "Brutto"}
	headerRow := 4
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := headerRow
	for i, it := range q.Items {
		row++
		lv := valuation.ValueLine(it, q.MarkupFor(it.Kind))
		values := []interface{}{
			i + 1,
			it.Name,
			string(it.Kind),
			it.Unit,
			it.Quantity.InexactFloat64(),
			it.UnitPriceNetto.InexactFloat64(),
			lv.UnitPriceWithMarkup.InexactFloat64(),
			it.VATRate.InexactFloat64(),
			valuation.Round2(lv.Netto).InexactFloat64(),
			lv.Brutto.InexactFloat64(),
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	row += 2
	for _, t := range []struct {
		label string
		value string
	}{
		{"Netto", totals.NettoWithMarkup.String()},
		{"VAT", totals.VAT.String()},
		{"RAZEM BRUTTO", totals.BruttoWithMarkup.String()},
	} {
		_ = f.SetCellValue(sheet, fmt.Sprintf("I%d", row), t.label)
		_ = f.SetCellValue(sheet, fmt.Sprintf("J%d", row), t.value)
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}
