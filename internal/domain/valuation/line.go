// Package valuation contiene los servicios de dominio puros que calculan
// valores de líneas, totales de presupuesto y rentabilidad. Toda la
// aritmética monetaria usa shopspring/decimal; los redondeos a 2 decimales
// (medio hacia arriba) se aplican solo en los puntos que fija el contrato,
// para que detalle, PDF, XLSX, CSV y reportes coincidan bit a bit.
package valuation

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cotizador-api/internal/domain/entity"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// pctFactor convierte un porcentaje en factor multiplicador: 23 -> 1.23.
func pctFactor(pct decimal.Decimal) decimal.Decimal {
	return one.Add(pct.Div(hundred))
}

// Round2 redondeo monetario estándar a 2 decimales (half-up).
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// LineValue resultado de valorar una línea.
//
// UnitPriceWithMarkup y Netto se mantienen sin redondear: las sumas del
// agregador acumulan precisión completa. Brutto sí se redondea por línea,
// que es lo que ve el cliente en la fila del presupuesto.
type LineValue struct {
	UnitPriceWithMarkup decimal.Decimal // unitario con narzut aplicado
	NettoBase           decimal.Decimal // precio base × cantidad, sin markup
	Netto               decimal.Decimal // unitario con markup × cantidad
	Brutto              decimal.Decimal // round2(Netto × (1 + IVA/100))
}

// ValueLine valora una línea con el porcentaje de markup aplicable a su tipo.
// Cantidad cero produce una línea a cero sin error. Cantidades o precios
// negativos se aceptan aritméticamente (líneas de abono); la validación de
// entrada es responsabilidad del llamador.
func ValueLine(item entity.LineItem, markupPct decimal.Decimal) LineValue {
	unitWithMarkup := item.UnitPriceNetto.Mul(pctFactor(markupPct))
	nettoBase := item.UnitPriceNetto.Mul(item.Quantity)
	netto := unitWithMarkup.Mul(item.Quantity)
	return LineValue{
		UnitPriceWithMarkup: unitWithMarkup,
		NettoBase:           nettoBase,
		Netto:               netto,
		Brutto:              Round2(netto.Mul(pctFactor(item.VATRate))),
	}
}
