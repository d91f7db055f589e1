// Package pipeline agrega presupuestos por estado y por mes para dashboards
// y previsión. Funciones puras: el resultado depende solo de los valores de
// los presupuestos en el momento de la llamada, sin estado incremental.
package pipeline

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cotizador-api/internal/domain/entity"
	"github.com/jhoicas/cotizador-api/internal/domain/valuation"
)

// StatusGroup agregado de un estado del pipeline.
type StatusGroup struct {
	Status      entity.QuoteStatus
	Count       int
	TotalBrutto decimal.Decimal // Σ bruttoWithMarkup de los presupuestos del grupo
}

// MonthBucket agregado de un mes natural.
type MonthBucket struct {
	Month string // YYYY-MM
	Total decimal.Decimal
}

// GroupByStatus agrupa por estado en el orden fijo de la enumeración.
// Estados sin presupuestos aparecen con Count 0 y total cero, para que los
// dashboards pinten siempre todas las filas.
func GroupByStatus(quotes []entity.Quote) []StatusGroup {
	byStatus := make(map[entity.QuoteStatus]*StatusGroup, len(entity.AllStatuses))
	groups := make([]StatusGroup, len(entity.AllStatuses))
	for i, s := range entity.AllStatuses {
		groups[i] = StatusGroup{Status: s}
		byStatus[s] = &groups[i]
	}
	for i := range quotes {
		q := &quotes[i]
		g, ok := byStatus[q.Status]
		if !ok {
			continue // estado fuera de la enumeración: se ignora
		}
		g.Count++
		g.TotalBrutto = g.TotalBrutto.Add(valuation.CalcTotals(q).BruttoWithMarkup)
	}
	return groups
}

// ActiveValue valor brutto total del pipeline activo (todo menos rechazado).
func ActiveValue(quotes []entity.Quote) decimal.Decimal {
	return totalFor(quotes, entity.ActiveStatuses)
}

// ForecastValue ingreso brutto previsto: solo aceptados y en ejecución.
func ForecastValue(quotes []entity.Quote) decimal.Decimal {
	return totalFor(quotes, entity.RevenueStatuses)
}

func totalFor(quotes []entity.Quote, statuses []entity.QuoteStatus) decimal.Decimal {
	include := make(map[entity.QuoteStatus]bool, len(statuses))
	for _, s := range statuses {
		include[s] = true
	}
	var total decimal.Decimal
	for i := range quotes {
		if include[quotes[i].Status] {
			total = total.Add(valuation.CalcTotals(&quotes[i]).BruttoWithMarkup)
		}
	}
	return total
}

// monthKey clave YYYY-MM de una fecha en calendario LOCAL. Formatear vía UTC
// (toISOString y equivalentes) desplaza el día en los bordes de mes; por eso
// se compone desde Year/Month locales.
func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

// MonthlyBrutto suma el brutto de los presupuestos con alguno de los
// estados indicados, por mes de CREACIÓN, sobre una ventana fija de meses
// hacia atrás terminando en now. Los meses sin datos aparecen con 0 para
// que los ejes de las gráficas queden equiespaciados.
func MonthlyBrutto(quotes []entity.Quote, months int, now time.Time, statuses []entity.QuoteStatus) []MonthBucket {
	include := make(map[entity.QuoteStatus]bool, len(statuses))
	for _, s := range statuses {
		include[s] = true
	}

	totals := make(map[string]decimal.Decimal)
	for i := range quotes {
		q := &quotes[i]
		if !include[q.Status] {
			continue
		}
		key := monthKey(q.CreatedAt.In(now.Location()))
		totals[key] = totals[key].Add(valuation.CalcTotals(q).BruttoWithMarkup)
	}
	return fillWindow(totals, months, now)
}

// MonthlyAmounts agrupa importes arbitrarios (ej. gastos) por su mes,
// rellenando la misma ventana. month ya viene como YYYY-MM.
func MonthlyAmounts(byMonth map[string]decimal.Decimal, months int, now time.Time) []MonthBucket {
	return fillWindow(byMonth, months, now)
}

// fillWindow materializa la ventana de meses naturales terminando en el mes
// de now, con cero en los huecos. time.Date normaliza meses negativos, así
// que la resta de meses respeta el calendario local.
func fillWindow(totals map[string]decimal.Decimal, months int, now time.Time) []MonthBucket {
	buckets := make([]MonthBucket, 0, months)
	for i := months - 1; i >= 0; i-- {
		m := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		key := monthKey(m)
		buckets = append(buckets, MonthBucket{Month: key, Total: totals[key]})
	}
	return buckets
}
