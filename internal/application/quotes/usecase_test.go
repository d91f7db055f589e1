package quotes

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cotizador-api/internal/application/dto"
	"github.com/jhoicas/cotizador-api/internal/domain"
	"github.com/jhoicas/cotizador-api/internal/domain/entity"
	"github.com/jhoicas/cotizador-api/internal/domain/repository"
	"github.com/jhoicas/cotizador-api/internal/domain/valuation"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// ─────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ─────────────────────────────────────────────────────────────────────────────

type memQuoteRepo struct {
	quotes map[string]entity.Quote
}

func newMemQuoteRepo() *memQuoteRepo {
	return &memQuoteRepo{quotes: make(map[string]entity.Quote)}
}

func (r *memQuoteRepo) Create(_ context.Context, q *entity.Quote) error {
	r.quotes[q.ID] = *q
	return nil
}

func (r *memQuoteRepo) Update(_ context.Context, q *entity.Quote) error {
	if _, ok := r.quotes[q.ID]; !ok {
		return domain.ErrNotFound
	}
	r.quotes[q.ID] = *q
	return nil
}

func (r *memQuoteRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.quotes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.quotes, id)
	return nil
}

func (r *memQuoteRepo) GetByID(_ context.Context, id string) (*entity.Quote, error) {
	q, ok := r.quotes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &q, nil
}

func (r *memQuoteRepo) List(_ context.Context, f repository.QuoteFilter) ([]entity.Quote, error) {
	var out []entity.Quote
	for _, q := range r.quotes {
		if f.Status != "" && q.Status != f.Status {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

type memExpenseRepo struct {
	expenses []entity.Expense
}

func (r *memExpenseRepo) Create(_ context.Context, e *entity.Expense) error {
	r.expenses = append(r.expenses, *e)
	return nil
}
func (r *memExpenseRepo) Update(_ context.Context, _ *entity.Expense) error { return nil }
func (r *memExpenseRepo) Delete(_ context.Context, _ string) error          { return nil }
func (r *memExpenseRepo) GetByID(_ context.Context, _ string) (*entity.Expense, error) {
	return nil, domain.ErrNotFound
}
func (r *memExpenseRepo) List(_ context.Context, _, _ int) ([]entity.Expense, error) {
	return r.expenses, nil
}
func (r *memExpenseRepo) ListByQuote(_ context.Context, quoteID string) ([]entity.Expense, error) {
	var out []entity.Expense
	for _, e := range r.expenses {
		if e.QuoteID == quoteID {
			out = append(out, e)
		}
	}
	return out, nil
}
func (r *memExpenseRepo) ListByMonth(_ context.Context, month string) ([]entity.Expense, error) {
	var out []entity.Expense
	for _, e := range r.expenses {
		if strings.HasPrefix(e.Date, month) {
			out = append(out, e)
		}
	}
	return out, nil
}

type stubPDF struct{ got valuation.QuoteTotals }

func (s *stubPDF) QuotePDF(_ *entity.Quote, t valuation.QuoteTotals) ([]byte, error) {
	s.got = t
	return []byte("%PDF"), nil
}

type stubXLSX struct{}

func (stubXLSX) QuoteXLSX(_ *entity.Quote, _ valuation.QuoteTotals) ([]byte, error) {
	return []byte("PK"), nil
}

func newUseCase(t *testing.T) (*UseCase, *memQuoteRepo, *memExpenseRepo, *stubPDF) {
	t.Helper()
	qr := newMemQuoteRepo()
	er := &memExpenseRepo{}
	pdf := &stubPDF{}
	return NewUseCase(qr, er, pdf, stubXLSX{}), qr, er, pdf
}

func sampleRequest() dto.CreateQuoteRequest {
	return dto.CreateQuoteRequest{
		Name:            "Remont łazienki",
		MarkupMaterials: d("10"),
		MarkupLabor:     d("0"),
		Items: []dto.LineItemRequest{
			{Kind: "material", Name: "Płytki", Unit: "m2", Quantity: d("20"), UnitPriceNetto: d("10.00"), VATRate: d("23")},
			{Kind: "labor", Name: "Układanie", Unit: "godz", Quantity: d("10"), UnitPriceNetto: d("50.00"), VATRate: d("8")},
		},
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────────────────────────────────────

func TestCreate_AsignaIDsYCalculaTotales(t *testing.T) {
	uc, repo, _, _ := newUseCase(t)

	resp, err := uc.Create(context.Background(), sampleRequest())
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)
	assert.Equal(t, "draft", resp.Status)
	require.Len(t, resp.Items, 2)
	for _, it := range resp.Items {
		assert.NotEmpty(t, it.ID)
	}

	// materiales 200 netto +10% = 220; robocizna 500 sin narzut
	assert.True(t, resp.Totals.NettoBase.Equal(d("700.00")))
	assert.True(t, resp.Totals.NettoWithMarkup.Equal(d("720.00")))
	assert.True(t, resp.Totals.CostMaterials.Equal(d("200.00")))
	assert.True(t, resp.Totals.CostLabor.Equal(d("500.00")))

	stored, ok := repo.quotes[resp.ID]
	require.True(t, ok)
	assert.Len(t, stored.Items, 2)
}

func TestCreate_RechazaEstadoYTipoInvalidos(t *testing.T) {
	uc, _, _, _ := newUseCase(t)

	in := sampleRequest()
	in.Status = "archived"
	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = sampleRequest()
	in.Items[0].Kind = "tool"
	_, err = uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = sampleRequest()
	in.Name = ""
	_, err = uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_ReemplazaLineasYConservaCreacion(t *testing.T) {
	uc, _, _, _ := newUseCase(t)
	created, err := uc.Create(context.Background(), sampleRequest())
	require.NoError(t, err)

	in := sampleRequest()
	in.Status = "accepted"
	in.Items = in.Items[:1] // una línea menos
	updated, err := uc.Update(context.Background(), created.ID, in)
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "accepted", updated.Status)
	assert.Len(t, updated.Items, 1)
}

func TestUpdate_NoEncontrado(t *testing.T) {
	uc, _, _, _ := newUseCase(t)
	_, err := uc.Update(context.Background(), "nope", sampleRequest())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProfitability_ConGastosEnlazados(t *testing.T) {
	uc, _, expenses, _ := newUseCase(t)
	created, err := uc.Create(context.Background(), sampleRequest())
	require.NoError(t, err)

	expenses.expenses = append(expenses.expenses,
		entity.Expense{ID: "g1", QuoteID: created.ID, Amount: d("50.00"), Category: entity.ExpenseFuel, Date: "2026-03-05"},
		entity.Expense{ID: "g2", QuoteID: "otro", Amount: d("999.00"), Category: entity.ExpenseFuel, Date: "2026-03-05"},
	)

	p, err := uc.Profitability(context.Background(), created.ID)
	require.NoError(t, err)

	// ingreso 720; coste = materiales 200 + gasto 50 (robocizna fuera)
	assert.True(t, p.Revenue.Equal(d("720.00")))
	assert.True(t, p.TotalCost.Equal(d("250.00")))
	assert.True(t, p.Profit.Equal(d("470.00")))
	require.NotNil(t, p.MarginPercent)
	assert.True(t, p.MarginPercent.Equal(d("65.28")))
}

func TestProfitability_MargenNuloSinIngreso(t *testing.T) {
	uc, _, _, _ := newUseCase(t)
	in := dto.CreateQuoteRequest{Name: "Vacío"}
	created, err := uc.Create(context.Background(), in)
	require.NoError(t, err)

	p, err := uc.Profitability(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, p.MarginPercent)
}

func TestExportPDF_RecibeTotalesCanonicos(t *testing.T) {
	uc, _, _, pdf := newUseCase(t)
	created, err := uc.Create(context.Background(), sampleRequest())
	require.NoError(t, err)

	data, name, err := uc.ExportPDF(context.Background(), created.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, "Remont łazienki.pdf", name)
	// el generador recibe exactamente los totales de la API
	assert.True(t, pdf.got.BruttoWithMarkup.Equal(created.Totals.BruttoWithMarkup))
}

func TestExportCSV_FilasYTotales(t *testing.T) {
	uc, _, _, _ := newUseCase(t)
	created, err := uc.Create(context.Background(), sampleRequest())
	require.NoError(t, err)

	data, name, err := uc.ExportCSV(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Remont łazienki.csv", name)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4) // cabecera + 2 líneas + RAZEM
	assert.Contains(t, lines[3], "RAZEM")
	assert.Contains(t, lines[3], created.Totals.BruttoWithMarkup.String())
}
