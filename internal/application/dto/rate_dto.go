package dto

import "github.com/shopspring/decimal"

// RateDTO cotización de una divisa frente a la moneda base.
type RateDTO struct {
	Code          string          `json:"code"`
	Currency      string          `json:"currency"`
	Mid           decimal.Decimal `json:"mid"`
	EffectiveDate string          `json:"effective_date"`
}

// RatesTableResponse respuesta de GET /api/rates. Rates puede venir vacío
// (caché fría y red caída); nunca es un error HTTP.
type RatesTableResponse struct {
	BaseCurrency string    `json:"base_currency"`
	Popular      []string  `json:"popular"` // códigos sugeridos para el conversor
	Rates        []RateDTO `json:"rates"`
}

// ConvertResponse resultado de una conversión. Result es null cuando
// alguna divisa no está en la tabla (conversión no disponible, no error).
type ConvertResponse struct {
	Amount decimal.Decimal  `json:"amount"`
	From   string           `json:"from"`
	To     string           `json:"to"`
	Result *decimal.Decimal `json:"result"`
}

// HistoricalRateDTO punto de serie histórica.
type HistoricalRateDTO struct {
	Date string          `json:"date"`
	Mid  decimal.Decimal `json:"mid"`
}

// RateHistoryResponse respuesta de GET /api/rates/:code/history.
type RateHistoryResponse struct {
	Code   string              `json:"code"`
	Range  string              `json:"range"`
	Points []HistoricalRateDTO `json:"points"`
}
