package analytics

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cotizador-api/internal/domain"
	"github.com/jhoicas/cotizador-api/internal/domain/entity"
	"github.com/jhoicas/cotizador-api/internal/domain/repository"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

type stubQuoteRepo struct{ quotes []entity.Quote }

func (r *stubQuoteRepo) Create(_ context.Context, _ *entity.Quote) error { return nil }
func (r *stubQuoteRepo) Update(_ context.Context, _ *entity.Quote) error { return nil }
func (r *stubQuoteRepo) Delete(_ context.Context, _ string) error        { return nil }
func (r *stubQuoteRepo) GetByID(_ context.Context, _ string) (*entity.Quote, error) {
	return nil, domain.ErrNotFound
}
func (r *stubQuoteRepo) List(_ context.Context, _ repository.QuoteFilter) ([]entity.Quote, error) {
	return r.quotes, nil
}

type stubExpenseRepo struct{ expenses []entity.Expense }

func (r *stubExpenseRepo) Create(_ context.Context, _ *entity.Expense) error { return nil }
func (r *stubExpenseRepo) Update(_ context.Context, _ *entity.Expense) error { return nil }
func (r *stubExpenseRepo) Delete(_ context.Context, _ string) error          { return nil }
func (r *stubExpenseRepo) GetByID(_ context.Context, _ string) (*entity.Expense, error) {
	return nil, domain.ErrNotFound
}
func (r *stubExpenseRepo) List(_ context.Context, _, _ int) ([]entity.Expense, error) {
	return r.expenses, nil
}
func (r *stubExpenseRepo) ListByQuote(_ context.Context, _ string) ([]entity.Expense, error) {
	return nil, nil
}
func (r *stubExpenseRepo) ListByMonth(_ context.Context, month string) ([]entity.Expense, error) {
	var out []entity.Expense
	for _, e := range r.expenses {
		if strings.HasPrefix(e.Date, month) {
			out = append(out, e)
		}
	}
	return out, nil
}

func quoteWorth(status entity.QuoteStatus, amount string, created time.Time) entity.Quote {
	return entity.Quote{
		Status:    status,
		CreatedAt: created,
		Items: []entity.LineItem{{
			Kind:           entity.ItemKindMaterial,
			Quantity:       d("1"),
			UnitPriceNetto: d(amount),
		}},
	}
}

func TestSummary_KPIsYSeries(t *testing.T) {
	loc := time.Local
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, loc)

	qr := &stubQuoteRepo{quotes: []entity.Quote{
		quoteWorth(entity.StatusAccepted, "1000.00", time.Date(2026, time.March, 2, 0, 0, 0, 0, loc)),
		quoteWorth(entity.StatusDraft, "300.00", time.Date(2026, time.February, 2, 0, 0, 0, 0, loc)),
		quoteWorth(entity.StatusRejected, "999.00", time.Date(2026, time.February, 2, 0, 0, 0, 0, loc)),
	}}
	er := &stubExpenseRepo{expenses: []entity.Expense{
		{ID: "1", Amount: d("200.00"), Category: entity.ExpenseFuel, Date: "2026-03-05"},
		{ID: "2", Amount: d("50.00"), Category: entity.ExpenseTools, Date: "2026-02-10"},
	}}

	uc := NewUseCase(qr, er)
	uc.now = func() time.Time { return now }

	s, err := uc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, s.TotalQuotes)
	assert.True(t, s.ActiveValue.Equal(d("1300.00")))
	assert.True(t, s.ForecastRevenue.Equal(d("1000.00")))
	require.Len(t, s.ByStatus, len(entity.AllStatuses))

	require.Len(t, s.MonthlyRevenue, defaultMonths)
	require.Len(t, s.MonthlyExpenses, defaultMonths)
	require.Len(t, s.MonthlyProfit, defaultMonths)

	last := s.MonthlyProfit[defaultMonths-1]
	assert.Equal(t, "2026-03", last.Month)
	// ingreso 1000 − gastos 200
	assert.True(t, last.Total.Equal(d("800.00")))

	feb := s.MonthlyProfit[defaultMonths-2]
	assert.Equal(t, "2026-02", feb.Month)
	// draft no cuenta como ingreso; solo quedan los gastos
	assert.True(t, feb.Total.Equal(d("-50.00")))

	require.Len(t, s.RecentQuotes, 3)
	assert.Equal(t, "2026-03-02T00:00:00", s.RecentQuotes[0].CreatedAt[:19])
	assert.True(t, s.RecentQuotes[0].BruttoWithMarkup.Equal(d("1000.00")))
}

func TestSummary_RecienteAcotado(t *testing.T) {
	loc := time.Local
	qr := &stubQuoteRepo{}
	for i := 0; i < 8; i++ {
		qr.quotes = append(qr.quotes,
			quoteWorth(entity.StatusDraft, "10.00", time.Date(2026, time.March, 1+i, 0, 0, 0, 0, loc)))
	}
	uc := NewUseCase(qr, &stubExpenseRepo{})
	uc.now = func() time.Time { return time.Date(2026, time.March, 20, 0, 0, 0, 0, loc) }

	s, err := uc.Summary(context.Background())
	require.NoError(t, err)
	require.Len(t, s.RecentQuotes, recentLimit)
	// más reciente primero
	assert.Equal(t, "2026-03-08", s.RecentQuotes[0].CreatedAt[:10])
	assert.Equal(t, "2026-03-04", s.RecentQuotes[recentLimit-1].CreatedAt[:10])
}

func TestSummary_SinDatos(t *testing.T) {
	uc := NewUseCase(&stubQuoteRepo{}, &stubExpenseRepo{})
	s, err := uc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, s.TotalQuotes)
	assert.True(t, s.ActiveValue.IsZero())
	require.Len(t, s.MonthlyRevenue, defaultMonths)
	for _, p := range s.MonthlyRevenue {
		assert.True(t, p.Total.IsZero())
	}
}
