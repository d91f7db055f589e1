package valuation

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cotizador-api/internal/domain/entity"
)

// Profitability rentabilidad de un presupuesto combinando sus totales con
// los gastos enlazados.
//
// Margin es NullDecimal: con ingreso cero el margen no aplica (la UI lo
// pinta como "—", nunca 0% ni NaN).
type Profitability struct {
	Revenue       decimal.Decimal     // NettoWithMarkup: ingreso netto previsto
	CostMaterials decimal.Decimal     // netto base de materiales
	CostExpenses  decimal.Decimal     // suma de gastos enlazados
	TotalCost     decimal.Decimal     // CostMaterials + CostExpenses
	Profit        decimal.Decimal     // Revenue − TotalCost
	MarginPercent decimal.NullDecimal // Profit/Revenue×100, solo si Revenue > 0
}

// CalcProfitability calcula la rentabilidad.
//
// La mano de obra queda fuera de TotalCost a propósito: el netto de
// robocizna es ingreso propio del contratista, no una salida de caja.
// Política de negocio confirmada, no un defecto; CostLabor solo participa
// en el desglose de NettoBase.
func CalcProfitability(t QuoteTotals, expenses []entity.Expense) Profitability {
	p := Profitability{
		Revenue:       t.NettoWithMarkup,
		CostMaterials: t.CostMaterials,
	}
	for _, e := range expenses {
		p.CostExpenses = p.CostExpenses.Add(e.Amount)
	}
	p.TotalCost = p.CostMaterials.Add(p.CostExpenses)
	p.Profit = p.Revenue.Sub(p.TotalCost)

	if p.Revenue.IsPositive() {
		p.MarginPercent = decimal.NullDecimal{
			Decimal: p.Profit.Div(p.Revenue).Mul(hundred),
			Valid:   true,
		}
	}
	return p
}
