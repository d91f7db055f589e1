package repository

import (
	"context"

	"github.com/jhoicas/cotizador-api/internal/domain/entity"
)

// ClientRepository persistencia de clientes.
type ClientRepository interface {
	Create(ctx context.Context, c *entity.Client) error
	Update(ctx context.Context, c *entity.Client) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	List(ctx context.Context, limit, offset int) ([]entity.Client, error)
}
