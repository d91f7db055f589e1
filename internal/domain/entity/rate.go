package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate cotización media (mid) de una divisa frente a la moneda base,
// según la tabla A del NBP.
type ExchangeRate struct {
	Code          string          // ISO 4217, ej. "EUR"
	Currency      string          // nombre descriptivo
	Mid           decimal.Decimal // 1 unidad extranjera en moneda base
	EffectiveDate string          // YYYY-MM-DD de publicación
}

// HistoricalRate punto de la serie histórica de una divisa.
type HistoricalRate struct {
	Date string // YYYY-MM-DD
	Mid  decimal.Decimal
}

// RateTable tabla completa de cotizaciones con su marca de frescura.
// Se reemplaza entera en cada fetch correcto; entre fetches es de solo lectura.
type RateTable struct {
	Rates     []ExchangeRate
	FetchedAt time.Time
}

// Rate busca el mid de un código. Devuelve false si no está en la tabla.
func (t *RateTable) Rate(code string) (decimal.Decimal, bool) {
	for _, r := range t.Rates {
		if r.Code == code {
			return r.Mid, true
		}
	}
	return decimal.Decimal{}, false
}

// PopularCurrencies divisas ofrecidas por defecto en el conversor.
var PopularCurrencies = []string{
	"PLN", "EUR", "USD", "GBP", "CZK", "CHF",
	"SEK", "NOK", "DKK", "HUF", "RON", "BGN",
	"HRK", "TRY", "JPY", "CNY", "CAD", "AUD",
}
