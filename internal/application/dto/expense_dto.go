package dto

import "github.com/shopspring/decimal"

// CreateExpenseRequest body para POST /api/expenses.
type CreateExpenseRequest struct {
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	QuoteID  string          `json:"quote_id,omitempty"`
	Date     string          `json:"date"` // YYYY-MM-DD
	Notes    string          `json:"notes,omitempty"`
}

// UpdateExpenseRequest body para PUT /api/expenses/:id.
type UpdateExpenseRequest = CreateExpenseRequest

// ExpenseResponse gasto en respuestas.
type ExpenseResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	QuoteID   string          `json:"quote_id,omitempty"`
	Date      string          `json:"date"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt string          `json:"created_at"`
}

// CategoryTotalDTO total de una categoría en el desglose mensual.
type CategoryTotalDTO struct {
	Category string          `json:"category"`
	Count    int             `json:"count"`
	Total    decimal.Decimal `json:"total"`
}

// MonthSummaryDTO respuesta de GET /api/expenses/summary?month=YYYY-MM.
// Categories siempre trae las seis categorías, en orden fijo, con cero
// en las vacías.
type MonthSummaryDTO struct {
	Month      string             `json:"month"`
	Total      decimal.Decimal    `json:"total"`
	Count      int                `json:"count"`
	Categories []CategoryTotalDTO `json:"categories"`
}
