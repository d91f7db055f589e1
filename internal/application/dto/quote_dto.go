package dto

import "github.com/shopspring/decimal"

// LineItemRequest línea en bodies de creación/edición de presupuestos.
type LineItemRequest struct {
	ID             string          `json:"id,omitempty"` // vacío en líneas nuevas
	Kind           string          `json:"kind"`         // material|labor
	SourceID       string          `json:"source_id,omitempty"`
	Name           string          `json:"name"`
	Unit           string          `json:"unit"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitPriceNetto decimal.Decimal `json:"unit_price_netto"`
	VATRate        decimal.Decimal `json:"vat_rate"`
	Notes          string          `json:"notes,omitempty"`
	Position       int             `json:"position"`
}

// CreateQuoteRequest body para POST /api/quotes.
type CreateQuoteRequest struct {
	Name            string            `json:"name"`
	ClientID        string            `json:"client_id,omitempty"`
	Status          string            `json:"status,omitempty"` // por defecto draft
	Notes           string            `json:"notes,omitempty"`
	MarkupMaterials decimal.Decimal   `json:"markup_materials"`
	MarkupLabor     decimal.Decimal   `json:"markup_labor"`
	DateStart       string            `json:"date_start,omitempty"`
	DateEnd         string            `json:"date_end,omitempty"`
	Tags            []string          `json:"tags,omitempty"`
	Items           []LineItemRequest `json:"items"`
}

// UpdateQuoteRequest body para PUT /api/quotes/:id. Reemplaza el presupuesto
// entero, líneas incluidas; no hay parcheo por línea.
type UpdateQuoteRequest = CreateQuoteRequest

// LineItemResponse línea en respuestas, con sus importes valorados.
type LineItemResponse struct {
	ID                  string          `json:"id"`
	Kind                string          `json:"kind"`
	SourceID            string          `json:"source_id,omitempty"`
	Name                string          `json:"name"`
	Unit                string          `json:"unit"`
	Quantity            decimal.Decimal `json:"quantity"`
	UnitPriceNetto      decimal.Decimal `json:"unit_price_netto"`
	VATRate             decimal.Decimal `json:"vat_rate"`
	Notes               string          `json:"notes,omitempty"`
	Position            int             `json:"position"`
	UnitPriceWithMarkup decimal.Decimal `json:"unit_price_with_markup"`
	Netto               decimal.Decimal `json:"netto"`
	Brutto              decimal.Decimal `json:"brutto"`
}

// TotalsResponse totales canónicos de un presupuesto, redondeados a 2
// decimales para presentación.
type TotalsResponse struct {
	NettoBase        decimal.Decimal `json:"netto_base"`
	MarkupAmount     decimal.Decimal `json:"markup_amount"`
	NettoWithMarkup  decimal.Decimal `json:"netto_with_markup"`
	VAT              decimal.Decimal `json:"vat"`
	BruttoWithMarkup decimal.Decimal `json:"brutto_with_markup"`
	CostMaterials    decimal.Decimal `json:"cost_materials"`
	CostLabor        decimal.Decimal `json:"cost_labor"`
}

// QuoteResponse presupuesto con líneas valoradas y totales.
type QuoteResponse struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	ClientID        string             `json:"client_id,omitempty"`
	ClientName      string             `json:"client_name,omitempty"`
	Status          string             `json:"status"`
	Notes           string             `json:"notes,omitempty"`
	MarkupMaterials decimal.Decimal    `json:"markup_materials"`
	MarkupLabor     decimal.Decimal    `json:"markup_labor"`
	DateStart       string             `json:"date_start,omitempty"`
	DateEnd         string             `json:"date_end,omitempty"`
	Tags            []string           `json:"tags,omitempty"`
	Items           []LineItemResponse `json:"items"`
	Totals          TotalsResponse     `json:"totals"`
	CreatedAt       string             `json:"created_at"`
	UpdatedAt       string             `json:"updated_at"`
}

// QuoteSummaryResponse fila ligera para listados (sin líneas).
type QuoteSummaryResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	ClientName       string          `json:"client_name,omitempty"`
	Status           string          `json:"status"`
	BruttoWithMarkup decimal.Decimal `json:"brutto_with_markup"`
	CreatedAt        string          `json:"created_at"`
}

// ProfitabilityResponse rentabilidad de un presupuesto.
// MarginPercent es puntero: null cuando el ingreso es cero y el margen
// no aplica (la UI pinta "—").
type ProfitabilityResponse struct {
	Revenue       decimal.Decimal  `json:"revenue"`
	CostMaterials decimal.Decimal  `json:"cost_materials"`
	CostExpenses  decimal.Decimal  `json:"cost_expenses"`
	TotalCost     decimal.Decimal  `json:"total_cost"`
	Profit        decimal.Decimal  `json:"profit"`
	MarginPercent *decimal.Decimal `json:"margin_percent"`
}
