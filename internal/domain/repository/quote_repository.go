package repository

import (
	"context"

	"github.com/jhoicas/cotizador-api/internal/domain/entity"
)

// QuoteFilter filtros opcionales de listado.
type QuoteFilter struct {
	Status entity.QuoteStatus // "" = todos
	Search string             // sobre nombre y cliente
	Limit  int
	Offset int
}

// QuoteRepository persistencia de presupuestos y sus líneas.
// Las líneas viven solo a través de su presupuesto (composición).
type QuoteRepository interface {
	Create(ctx context.Context, q *entity.Quote) error
	Update(ctx context.Context, q *entity.Quote) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Quote, error)
	// List devuelve presupuestos CON líneas; los agregadores de pipeline
	// necesitan las líneas para valorar.
	List(ctx context.Context, f QuoteFilter) ([]entity.Quote, error)
}
