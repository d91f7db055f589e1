// Package clients casos de uso del directorio de clientes.
package clients

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/cotizador-api/internal/application/dto"
	"github.com/jhoicas/cotizador-api/internal/domain"
	"github.com/jhoicas/cotizador-api/internal/domain/entity"
	"github.com/jhoicas/cotizador-api/internal/domain/repository"
)

// UseCase casos de uso de clientes.
type UseCase struct {
	repo repository.ClientRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ClientRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Create valida y persiste un cliente.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	c := &entity.Client{
		ID:            uuid.New().String(),
		Name:          in.Name,
		TaxID:         in.TaxID,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
		City:          in.City,
		ContactPerson: in.ContactPerson,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toResponse(c), nil
}

// Update reescribe los campos editables del cliente.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c := &entity.Client{
		ID:            existing.ID,
		Name:          in.Name,
		TaxID:         in.TaxID,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
		City:          in.City,
		ContactPerson: in.ContactPerson,
		Notes:         in.Notes,
		CreatedAt:     existing.CreatedAt,
		UpdatedAt:     time.Now(),
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toResponse(c), nil
}

// Delete borra el cliente.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// Get devuelve un cliente por ID.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.ClientResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(c), nil
}

// List devuelve clientes paginados.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.ClientResponse, error) {
	page.DefaultPage()
	items, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(items))
	for i := range items {
		out = append(out, *toResponse(&items[i]))
	}
	return out, nil
}

func toResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:            c.ID,
		Name:          c.Name,
		TaxID:         c.TaxID,
		Phone:         c.Phone,
		Email:         c.Email,
		Address:       c.Address,
		City:          c.City,
		ContactPerson: c.ContactPerson,
		Notes:         c.Notes,
		CreatedAt:     c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     c.UpdatedAt.Format(time.RFC3339),
	}
}
