package repository

import (
	"context"

	"github.com/jhoicas/cotizador-api/internal/domain/entity"
)

// ExpenseRepository persistencia de gastos.
type ExpenseRepository interface {
	Create(ctx context.Context, e *entity.Expense) error
	Update(ctx context.Context, e *entity.Expense) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Expense, error)
	List(ctx context.Context, limit, offset int) ([]entity.Expense, error)
	// ListByQuote gastos enlazados a un presupuesto (entrada de rentabilidad).
	ListByQuote(ctx context.Context, quoteID string) ([]entity.Expense, error)
	// ListByMonth gastos cuyo campo date cae en el mes YYYY-MM indicado.
	ListByMonth(ctx context.Context, month string) ([]entity.Expense, error)
}
