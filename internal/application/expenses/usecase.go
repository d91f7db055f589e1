// Package expenses casos de uso de gastos: CRUD y resúmenes mensuales
// por categoría.
package expenses

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cotizador-api/internal/application/dto"
	"github.com/jhoicas/cotizador-api/internal/domain"
	"github.com/jhoicas/cotizador-api/internal/domain/entity"
	"github.com/jhoicas/cotizador-api/internal/domain/repository"
)

var (
	dateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	monthRe = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

// UseCase casos de uso de gastos.
type UseCase struct {
	repo repository.ExpenseRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ExpenseRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Create valida y persiste un gasto.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	e, err := fromRequest(in)
	if err != nil {
		return nil, err
	}
	e.ID = uuid.New().String()
	e.CreatedAt = time.Now()
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return toResponse(e), nil
}

// Update reemplaza el gasto entero.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e, err := fromRequest(in)
	if err != nil {
		return nil, err
	}
	e.ID = existing.ID
	e.CreatedAt = existing.CreatedAt
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return toResponse(e), nil
}

// Delete borra el gasto.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// Get devuelve un gasto por ID.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.ExpenseResponse, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(e), nil
}

// List devuelve gastos paginados.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.ExpenseResponse, error) {
	page.DefaultPage()
	items, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseResponse, 0, len(items))
	for i := range items {
		out = append(out, *toResponse(&items[i]))
	}
	return out, nil
}

// MonthSummary total del mes y desglose por categoría. Las seis categorías
// aparecen siempre, en orden fijo, con cero en las vacías.
func (uc *UseCase) MonthSummary(ctx context.Context, month string) (*dto.MonthSummaryDTO, error) {
	if !monthRe.MatchString(month) {
		return nil, domain.ErrInvalidInput
	}
	items, err := uc.repo.ListByMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	type acc struct {
		count int
		total decimal.Decimal
	}
	byCat := make(map[entity.ExpenseCategory]*acc, len(entity.ExpenseCategories))
	for _, c := range entity.ExpenseCategories {
		byCat[c] = &acc{}
	}

	summary := &dto.MonthSummaryDTO{Month: month}
	for i := range items {
		e := &items[i]
		summary.Count++
		summary.Total = summary.Total.Add(e.Amount)
		cat := e.Category
		if _, ok := byCat[cat]; !ok {
			cat = entity.ExpenseOther
		}
		byCat[cat].count++
		byCat[cat].total = byCat[cat].total.Add(e.Amount)
	}
	for _, c := range entity.ExpenseCategories {
		summary.Categories = append(summary.Categories, dto.CategoryTotalDTO{
			Category: string(c),
			Count:    byCat[c].count,
			Total:    byCat[c].total,
		})
	}
	return summary, nil
}

func fromRequest(in dto.CreateExpenseRequest) (*entity.Expense, error) {
	if in.Name == "" || !dateRe.MatchString(in.Date) {
		return nil, domain.ErrInvalidInput
	}
	cat := entity.ExpenseCategory(in.Category)
	valid := false
	for _, c := range entity.ExpenseCategories {
		if c == cat {
			valid = true
			break
		}
	}
	if !valid {
		return nil, domain.ErrInvalidInput
	}
	return &entity.Expense{
		Name:     in.Name,
		Amount:   in.Amount,
		Category: cat,
		QuoteID:  in.QuoteID,
		Date:     in.Date,
		Notes:    in.Notes,
	}, nil
}

func toResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:        e.ID,
		Name:      e.Name,
		Amount:    e.Amount,
		Category:  string(e.Category),
		QuoteID:   e.QuoteID,
		Date:      e.Date,
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}
