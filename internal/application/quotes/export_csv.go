package quotes

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"

	"github.com/jhoicas/cotizador-api/internal/domain/valuation"
)

// ExportCSV exporta las líneas del presupuesto a CSV con los mismos importes
// que la API: precio con markup, netto y brutto por línea, y una fila final
// de totales canónicos.
func (uc *UseCase) ExportCSV(ctx context.Context, id string) ([]byte, string, error) {
	q, err := uc.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"lp", "nazwa", "rodzaj", "jedn", "ilość", "cena netto", "cena z narzutem", "vat %", "netto", "brutto"}
	if err := w.Write(header); err != nil {
		return nil, "", err
	}
	for i, it := range q.Items {
		lv := valuation.ValueLine(it, q.MarkupFor(it.Kind))
		row := []string{
			strconv.Itoa(i + 1),
			it.Name,
			string(it.Kind),
			it.Unit,
			it.Quantity.String(),
			it.UnitPriceNetto.String(),
			lv.UnitPriceWithMarkup.String(),
			it.VATRate.String(),
			valuation.Round2(lv.Netto).String(),
			lv.Brutto.String(),
		}
		if err := w.Write(row); err != nil {
			return nil, "", err
		}
	}
	tot := valuation.CalcTotals(q).Round2()
	totalRow := []string{"", "RAZEM", "", "", "", "", "", tot.VAT.String(), tot.NettoWithMarkup.String(), tot.BruttoWithMarkup.String()}
	if err := w.Write(totalRow); err != nil {
		return nil, "", err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), exportName(q, "csv"), nil
}
