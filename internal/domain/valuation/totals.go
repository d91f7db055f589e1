package valuation

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cotizador-api/internal/domain/entity"
)

// QuoteTotals totales derivados de un presupuesto. Nunca se persisten.
//
// Invariantes (exactos, sin deriva de redondeo):
//
//	NettoWithMarkup  = NettoBase + MarkupAmount
//	BruttoWithMarkup = NettoWithMarkup + VAT
//	CostMaterials + CostLabor = NettoBase
type QuoteTotals struct {
	NettoBase        decimal.Decimal
	MarkupAmount     decimal.Decimal
	NettoWithMarkup  decimal.Decimal
	VAT              decimal.Decimal
	BruttoWithMarkup decimal.Decimal
	CostMaterials    decimal.Decimal // netto base de materiales
	CostLabor        decimal.Decimal // netto base de mano de obra
}

// CalcTotals pliega ValueLine sobre todas las líneas del presupuesto.
//
// NettoBase, NettoWithMarkup y BruttoWithMarkup se acumulan como sumas
// corridas (brutto suma los round2 por línea del contrato de ValueLine).
// MarkupAmount y VAT se derivan como diferencias al final: calcular el IVA
// por línea y sumarlo daría otro resultado de redondeo, también válido pero
// incompatible; la diferencia agregada es la forma canónica que comparten
// todos los consumidores.
//
// Un presupuesto sin líneas devuelve totales a cero: estado válido, no error.
func CalcTotals(q *entity.Quote) QuoteTotals {
	var t QuoteTotals
	for _, item := range q.Items {
		lv := ValueLine(item, q.MarkupFor(item.Kind))

		t.NettoBase = t.NettoBase.Add(lv.NettoBase)
		t.NettoWithMarkup = t.NettoWithMarkup.Add(lv.Netto)
		t.BruttoWithMarkup = t.BruttoWithMarkup.Add(lv.Brutto)

		if item.Kind == entity.ItemKindMaterial {
			t.CostMaterials = t.CostMaterials.Add(lv.NettoBase)
		} else {
			t.CostLabor = t.CostLabor.Add(lv.NettoBase)
		}
	}
	t.MarkupAmount = t.NettoWithMarkup.Sub(t.NettoBase)
	t.VAT = t.BruttoWithMarkup.Sub(t.NettoWithMarkup)
	return t
}

// Round2 versión para presentación: redondea las sumas corridas y vuelve a
// derivar las diferencias, de modo que los tres invariantes se conservan
// exactos también sobre los valores redondeados.
func (t QuoteTotals) Round2() QuoteTotals {
	r := QuoteTotals{
		CostMaterials:    Round2(t.CostMaterials),
		CostLabor:        Round2(t.CostLabor),
		NettoWithMarkup:  Round2(t.NettoWithMarkup),
		BruttoWithMarkup: Round2(t.BruttoWithMarkup),
	}
	r.NettoBase = r.CostMaterials.Add(r.CostLabor)
	r.MarkupAmount = r.NettoWithMarkup.Sub(r.NettoBase)
	r.VAT = r.BruttoWithMarkup.Sub(r.NettoWithMarkup)
	return r
}
