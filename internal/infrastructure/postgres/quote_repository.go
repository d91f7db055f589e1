package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/cotizador-api/internal/domain"
	"github.com/jhoicas/cotizador-api/internal/domain/entity"
	"github.com/jhoicas/cotizador-api/internal/domain/repository"
)

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo persistencia de presupuestos. Cabecera y líneas se escriben en
// la misma transacción; las líneas se reemplazan enteras en cada Update,
// reflejo del contrato de edición "el presupuesto entero o nada".
type QuoteRepo struct {
	pool *pgxpool.Pool
}

// NewQuoteRepository construye el adaptador.
func NewQuoteRepository(pool *pgxpool.Pool) *QuoteRepo {
	return &QuoteRepo{pool: pool}
}

const quoteColumns = `id, name, client_id, status, notes,
	markup_materials, markup_labor, date_start, date_end, tags,
	created_at, updated_at`

const quoteSelect = `q.id, q.name, q.client_id, q.status, q.notes,
	q.markup_materials, q.markup_labor, q.date_start, q.date_end, q.tags,
	q.created_at, q.updated_at`

// Create persiste cabecera y líneas.
func (r *QuoteRepo) Create(ctx context.Context, q *entity.Quote) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO quotes (` + quoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = tx.Exec(ctx, query,
		q.ID, q.Name, nullIfEmpty(q.ClientID), string(q.Status), q.Notes,
		q.MarkupMaterials, q.MarkupLabor, nullIfEmpty(q.DateStart), nullIfEmpty(q.DateEnd), q.Tags,
		q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert quote: %w", err)
	}
	if err := insertItems(ctx, tx, q); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Update reescribe la cabecera y reemplaza todas las líneas.
func (r *QuoteRepo) Update(ctx context.Context, q *entity.Quote) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		UPDATE quotes
		SET name = $2, client_id = $3, status = $4, notes = $5,
		    markup_materials = $6, markup_labor = $7,
		    date_start = $8, date_end = $9, tags = $10, updated_at = $11
		WHERE id = $1`
	tag, err := tx.Exec(ctx, query,
		q.ID, q.Name, nullIfEmpty(q.ClientID), string(q.Status), q.Notes,
		q.MarkupMaterials, q.MarkupLabor, nullIfEmpty(q.DateStart), nullIfEmpty(q.DateEnd), q.Tags,
		q.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := tx.Exec(ctx, `DELETE FROM quote_items WHERE quote_id = $1`, q.ID); err != nil {
		return fmt.Errorf("delete quote items: %w", err)
	}
	if err := insertItems(ctx, tx, q); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertItems(ctx context.Context, tx pgx.Tx, q *entity.Quote) error {
	query := `
		INSERT INTO quote_items (id, quote_id, kind, source_id, name, unit,
			quantity, unit_price_netto, vat_rate, notes, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for _, it := range q.Items {
		_, err := tx.Exec(ctx, query,
			it.ID, q.ID, string(it.Kind), nullIfEmpty(it.SourceID), it.Name, it.Unit,
			it.Quantity, it.UnitPriceNetto, it.VATRate, it.Notes, it.Position,
		)
		if err != nil {
			return fmt.Errorf("insert quote item: %w", err)
		}
	}
	return nil
}

// Delete borra el presupuesto; las líneas caen por ON DELETE CASCADE.
func (r *QuoteRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene el presupuesto completo, con líneas ordenadas por position.
func (r *QuoteRepo) GetByID(ctx context.Context, id string) (*entity.Quote, error) {
	query := `
		SELECT ` + quoteSelect + `, COALESCE(c.name, '')
		FROM quotes q
		LEFT JOIN clients c ON c.id = q.client_id
		WHERE q.id = $1`
	q, err := scanQuote(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	items, err := r.loadItems(ctx, []string{q.ID})
	if err != nil {
		return nil, err
	}
	q.Items = items[q.ID]
	return q, nil
}

// List devuelve presupuestos con líneas, filtrados y paginados.
func (r *QuoteRepo) List(ctx context.Context, f repository.QuoteFilter) ([]entity.Quote, error) {
	query := `
		SELECT ` + quoteSelect + `, COALESCE(c.name, '')
		FROM quotes q
		LEFT JOIN clients c ON c.id = q.client_id
		WHERE ($1 = '' OR q.status = $1)
		  AND ($2 = '' OR q.name ILIKE '%' || $2 || '%' OR c.name ILIKE '%' || $2 || '%')
		ORDER BY q.created_at DESC`
	args := []any{string(f.Status), f.Search}
	if f.Limit > 0 {
		query += ` LIMIT $3 OFFSET $4`
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	var quotes []entity.Quote
	var ids []string
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		quotes = append(quotes, *q)
		ids = append(ids, q.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return quotes, nil
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range quotes {
		quotes[i].Items = items[quotes[i].ID]
	}
	return quotes, nil
}

func (r *QuoteRepo) loadItems(ctx context.Context, quoteIDs []string) (map[string][]entity.LineItem, error) {
	query := `
		SELECT id, quote_id, kind, source_id, name, unit,
		       quantity, unit_price_netto, vat_rate, notes, position
		FROM quote_items
		WHERE quote_id = ANY($1)
		ORDER BY quote_id, position`
	rows, err := r.pool.Query(ctx, query, quoteIDs)
	if err != nil {
		return nil, fmt.Errorf("list quote items: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.LineItem)
	for rows.Next() {
		var it entity.LineItem
		var kind string
		var sourceID *string
		err := rows.Scan(&it.ID, &it.QuoteID, &kind, &sourceID, &it.Name, &it.Unit,
			&it.Quantity, &it.UnitPriceNetto, &it.VATRate, &it.Notes, &it.Position)
		if err != nil {
			return nil, fmt.Errorf("scan quote item: %w", err)
		}
		it.Kind = entity.ItemKind(kind)
		it.SourceID = derefStr(sourceID)
		out[it.QuoteID] = append(out[it.QuoteID], it)
	}
	return out, rows.Err()
}

func scanQuote(row pgx.Row) (*entity.Quote, error) {
	var q entity.Quote
	var status string
	var clientID, dateStart, dateEnd *string
	err := row.Scan(&q.ID, &q.Name, &clientID, &status, &q.Notes,
		&q.MarkupMaterials, &q.MarkupLabor, &dateStart, &dateEnd, &q.Tags,
		&q.CreatedAt, &q.UpdatedAt, &q.ClientName)
	if err != nil {
		return nil, err
	}
	q.Status = entity.QuoteStatus(status)
	q.ClientID = derefStr(clientID)
	q.DateStart = derefStr(dateStart)
	q.DateEnd = derefStr(dateEnd)
	return &q, nil
}
