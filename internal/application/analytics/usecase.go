// Package analytics dashboard de la empresa: KPIs del pipeline y series
// mensuales de ingresos, gastos y beneficio. Todo derivado al vuelo.
package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cotizador-api/internal/application/dto"
	"github.com/jhoicas/cotizador-api/internal/application/pipeline"
	"github.com/jhoicas/cotizador-api/internal/domain/entity"
	"github.com/jhoicas/cotizador-api/internal/domain/repository"
	"github.com/jhoicas/cotizador-api/internal/domain/valuation"
)

// defaultMonths ventana de las series mensuales del dashboard.
const defaultMonths = 6

// recentLimit presupuestos mostrados en el bloque de actividad reciente.
const recentLimit = 5

// UseCase construye el resumen del dashboard.
type UseCase struct {
	quoteRepo   repository.QuoteRepository
	expenseRepo repository.ExpenseRepository
	now         func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(quoteRepo repository.QuoteRepository, expenseRepo repository.ExpenseRepository) *UseCase {
	return &UseCase{quoteRepo: quoteRepo, expenseRepo: expenseRepo, now: time.Now}
}

// Summary calcula el resumen completo del dashboard sobre los datos vigentes.
func (uc *UseCase) Summary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	quotes, err := uc.quoteRepo.List(ctx, repository.QuoteFilter{})
	if err != nil {
		return nil, err
	}
	now := uc.now()

	out := &dto.DashboardSummaryDTO{
		TotalQuotes:     len(quotes),
		ActiveValue:     pipeline.ActiveValue(quotes),
		ForecastRevenue: pipeline.ForecastValue(quotes),
	}
	for _, g := range pipeline.GroupByStatus(quotes) {
		out.ByStatus = append(out.ByStatus, dto.StatusGroupDTO{
			Status:      string(g.Status),
			Count:       g.Count,
			TotalBrutto: g.TotalBrutto,
		})
	}

	revenue := pipeline.MonthlyBrutto(quotes, defaultMonths, now, entity.RevenueStatuses)

	expensesByMonth, err := uc.monthlyExpenses(ctx, defaultMonths, now)
	if err != nil {
		return nil, err
	}
	expenses := pipeline.MonthlyAmounts(expensesByMonth, defaultMonths, now)

	for i := range revenue {
		out.MonthlyRevenue = append(out.MonthlyRevenue, dto.MonthPointDTO{Month: revenue[i].Month, Total: revenue[i].Total})
		out.MonthlyExpenses = append(out.MonthlyExpenses, dto.MonthPointDTO{Month: expenses[i].Month, Total: expenses[i].Total})
		out.MonthlyProfit = append(out.MonthlyProfit, dto.MonthPointDTO{
			Month: revenue[i].Month,
			Total: revenue[i].Total.Sub(expenses[i].Total),
		})
	}
	out.RecentQuotes = recentQuotes(quotes, recentLimit)
	return out, nil
}

// recentQuotes devuelve los últimos presupuestos creados, más reciente primero.
func recentQuotes(quotes []entity.Quote, limit int) []dto.QuoteSummaryResponse {
	idx := make([]int, len(quotes))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return quotes[idx[a]].CreatedAt.After(quotes[idx[b]].CreatedAt)
	})
	if len(idx) > limit {
		idx = idx[:limit]
	}
	out := make([]dto.QuoteSummaryResponse, 0, len(idx))
	for _, i := range idx {
		q := &quotes[i]
		tot := valuation.CalcTotals(q).Round2()
		out = append(out, dto.QuoteSummaryResponse{
			ID:               q.ID,
			Name:             q.Name,
			ClientName:       q.ClientName,
			Status:           string(q.Status),
			BruttoWithMarkup: tot.BruttoWithMarkup,
			CreatedAt:        q.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}

// monthlyExpenses suma los gastos de cada mes de la ventana.
func (uc *UseCase) monthlyExpenses(ctx context.Context, months int, now time.Time) (map[string]decimal.Decimal, error) {
	totals := make(map[string]decimal.Decimal, months)
	for i := 0; i < months; i++ {
		m := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		key := m.Format("2006-01")
		items, err := uc.expenseRepo.ListByMonth(ctx, key)
		if err != nil {
			return nil, err
		}
		var sum decimal.Decimal
		for _, e := range items {
			sum = sum.Add(e.Amount)
		}
		totals[key] = sum
	}
	return totals, nil
}
