package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/cotizador-api/internal/domain"
	"github.com/jhoicas/cotizador-api/internal/domain/entity"
	"github.com/jhoicas/cotizador-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo implementación de ExpenseRepository (usable con pool o tx).
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

const expenseColumns = `id, name, amount, category, quote_id, date, notes, created_at`

// Create persiste un gasto.
func (r *ExpenseRepo) Create(ctx context.Context, e *entity.Expense) error {
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.Name, e.Amount, string(e.Category), nullIfEmpty(e.QuoteID),
		e.Date, e.Notes, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// Update reescribe todos los campos editables.
func (r *ExpenseRepo) Update(ctx context.Context, e *entity.Expense) error {
	query := `
		UPDATE expenses
		SET name = $2, amount = $3, category = $4, quote_id = $5, date = $6, notes = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		e.ID, e.Name, e.Amount, string(e.Category), nullIfEmpty(e.QuoteID), e.Date, e.Notes,
	)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra un gasto.
func (r *ExpenseRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un gasto por ID.
func (r *ExpenseRepo) GetByID(ctx context.Context, id string) (*entity.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`
	e, err := scanExpense(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

// List devuelve gastos ordenados por fecha descendente.
func (r *ExpenseRepo) List(ctx context.Context, limit, offset int) ([]entity.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		ORDER BY date DESC, created_at DESC
		LIMIT $1 OFFSET $2`
	return r.listQuery(ctx, query, limit, offset)
}

// ListByQuote gastos enlazados a un presupuesto.
func (r *ExpenseRepo) ListByQuote(ctx context.Context, quoteID string) ([]entity.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE quote_id = $1
		ORDER BY date`
	return r.listQuery(ctx, query, quoteID)
}

// ListByMonth gastos del mes YYYY-MM (comparación por prefijo de la fecha ISO).
func (r *ExpenseRepo) ListByMonth(ctx context.Context, month string) ([]entity.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE date LIKE $1 || '-%'
		ORDER BY date`
	return r.listQuery(ctx, query, month)
}

func (r *ExpenseRepo) listQuery(ctx context.Context, query string, args ...any) ([]entity.Expense, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []entity.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func scanExpense(row pgx.Row) (*entity.Expense, error) {
	var e entity.Expense
	var category string
	var quoteID *string
	err := row.Scan(&e.ID, &e.Name, &e.Amount, &category, &quoteID, &e.Date, &e.Notes, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.Category = entity.ExpenseCategory(category)
	e.QuoteID = derefStr(quoteID)
	return &e, nil
}
