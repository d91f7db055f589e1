package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory categorías de gasto de la empresa.
type ExpenseCategory string

const (
	ExpenseMaterials      ExpenseCategory = "materials"
	ExpenseTools          ExpenseCategory = "tools"
	ExpenseFuel           ExpenseCategory = "fuel"
	ExpenseSubcontractors ExpenseCategory = "subcontractors"
	ExpenseOffice         ExpenseCategory = "office"
	ExpenseOther          ExpenseCategory = "other"
)

// ExpenseCategories orden fijo para desgloses por categoría.
var ExpenseCategories = []ExpenseCategory{
	ExpenseMaterials, ExpenseTools, ExpenseFuel,
	ExpenseSubcontractors, ExpenseOffice, ExpenseOther,
}

// Expense gasto registrado; opcionalmente enlazado a un presupuesto
// (entra en el cálculo de rentabilidad de ese presupuesto).
type Expense struct {
	ID        string
	Name      string
	Amount    decimal.Decimal // brutto
	Category  ExpenseCategory
	QuoteID   string // "" si no está enlazado
	Date      string // YYYY-MM-DD
	Notes     string
	CreatedAt time.Time
}
