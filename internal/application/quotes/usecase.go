// Package quotes casos de uso de presupuestos: CRUD, totales canónicos,
// rentabilidad y exportación. Los totales se calculan SIEMPRE al vuelo con
// el paquete valuation; aquí nunca se persiste un importe derivado.
package quotes

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/cotizador-api/internal/application/dto"
	"github.com/jhoicas/cotizador-api/internal/domain"
	"github.com/jhoicas/cotizador-api/internal/domain/entity"
	"github.com/jhoicas/cotizador-api/internal/domain/repository"
	"github.com/jhoicas/cotizador-api/internal/domain/valuation"
)

// UseCase casos de uso de presupuestos.
type UseCase struct {
	quoteRepo   repository.QuoteRepository
	expenseRepo repository.ExpenseRepository
	pdf         PDFGenerator
	xlsx        XLSXGenerator
}

// NewUseCase construye el caso de uso.
func NewUseCase(quoteRepo repository.QuoteRepository, expenseRepo repository.ExpenseRepository, pdf PDFGenerator, xlsx XLSXGenerator) *UseCase {
	return &UseCase{quoteRepo: quoteRepo, expenseRepo: expenseRepo, pdf: pdf, xlsx: xlsx}
}

// Create valida y persiste un presupuesto nuevo con sus líneas.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	q, err := fromRequest(in)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	q.ID = uuid.New().String()
	q.CreatedAt = now
	q.UpdatedAt = now
	for i := range q.Items {
		q.Items[i].ID = uuid.New().String()
		q.Items[i].QuoteID = q.ID
	}
	if err := uc.quoteRepo.Create(ctx, q); err != nil {
		return nil, err
	}
	return toResponse(q), nil
}

// Update reemplaza el presupuesto entero, líneas incluidas. Las líneas que
// llegan sin ID son nuevas; las demás conservan su identidad.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateQuoteRequest) (*dto.QuoteResponse, error) {
	existing, err := uc.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	q, err := fromRequest(in)
	if err != nil {
		return nil, err
	}
	q.ID = existing.ID
	q.CreatedAt = existing.CreatedAt
	q.UpdatedAt = time.Now()
	for i := range q.Items {
		if q.Items[i].ID == "" {
			q.Items[i].ID = uuid.New().String()
		}
		q.Items[i].QuoteID = q.ID
	}
	if err := uc.quoteRepo.Update(ctx, q); err != nil {
		return nil, err
	}
	return toResponse(q), nil
}

// Delete borra el presupuesto y sus líneas.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.quoteRepo.Delete(ctx, id)
}

// Get devuelve el presupuesto con líneas valoradas y totales.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.QuoteResponse, error) {
	q, err := uc.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(q), nil
}

// List devuelve filas ligeras con el brutto total de cada presupuesto.
func (uc *UseCase) List(ctx context.Context, f repository.QuoteFilter) ([]dto.QuoteSummaryResponse, error) {
	quotes, err := uc.quoteRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.QuoteSummaryResponse, 0, len(quotes))
	for i := range quotes {
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
	return out, nil
}

// Totals devuelve los totales canónicos del presupuesto.
func (uc *UseCase) Totals(ctx context.Context, id string) (*dto.TotalsResponse, error) {
	q, err := uc.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t := toTotalsDTO(valuation.CalcTotals(q).Round2())
	return &t, nil
}

// Profitability calcula la rentabilidad con los gastos enlazados.
func (uc *UseCase) Profitability(ctx context.Context, id string) (*dto.ProfitabilityResponse, error) {
	q, err := uc.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	expenses, err := uc.expenseRepo.ListByQuote(ctx, id)
	if err != nil {
		return nil, err
	}
	p := valuation.CalcProfitability(valuation.CalcTotals(q), expenses)
	resp := &dto.ProfitabilityResponse{
		Revenue:       valuation.Round2(p.Revenue),
		CostMaterials: valuation.Round2(p.CostMaterials),
		CostExpenses:  valuation.Round2(p.CostExpenses),
		TotalCost:     valuation.Round2(p.TotalCost),
		Profit:        valuation.Round2(p.Profit),
	}
	if p.MarginPercent.Valid {
		m := valuation.Round2(p.MarginPercent.Decimal)
		resp.MarginPercent = &m
	}
	return resp, nil
}

// ExportPDF renderiza el presupuesto a PDF con sus totales canónicos.
func (uc *UseCase) ExportPDF(ctx context.Context, id string) ([]byte, string, error) {
	q, err := uc.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.pdf.QuotePDF(q, valuation.CalcTotals(q).Round2())
	if err != nil {
		return nil, "", err
	}
	return data, exportName(q, "pdf"), nil
}

// ExportXLSX renderiza el presupuesto a hoja de cálculo.
func (uc *UseCase) ExportXLSX(ctx context.Context, id string) ([]byte, string, error) {
	q, err := uc.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.xlsx.QuoteXLSX(q, valuation.CalcTotals(q).Round2())
	if err != nil {
		return nil, "", err
	}
	return data, exportName(q, "xlsx"), nil
}

func exportName(q *entity.Quote, ext string) string {
	name := q.Name
	if name == "" {
		name = q.ID
	}
	return name + "." + ext
}

// ─────────────────────────────────────────────────────────────────────────────
// Mapeo DTO ↔ entidad
// ─────────────────────────────────────────────────────────────────────────────

func fromRequest(in dto.CreateQuoteRequest) (*entity.Quote, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	status := entity.QuoteStatus(in.Status)
	if in.Status == "" {
		status = entity.StatusDraft
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidInput
	}
	q := &entity.Quote{
		Name:            in.Name,
		ClientID:        in.ClientID,
		Status:          status,
		Notes:           in.Notes,
		MarkupMaterials: in.MarkupMaterials,
		MarkupLabor:     in.MarkupLabor,
		DateStart:       in.DateStart,
		DateEnd:         in.DateEnd,
		Tags:            in.Tags,
	}
	for _, it := range in.Items {
		kind := entity.ItemKind(it.Kind)
		if kind != entity.ItemKindMaterial && kind != entity.ItemKindLabor {
			return nil, domain.ErrInvalidInput
		}
		q.Items = append(q.Items, entity.LineItem{
			ID:             it.ID,
			Kind:           kind,
			SourceID:       it.SourceID,
			Name:           it.Name,
			Unit:           it.Unit,
			Quantity:       it.Quantity,
			UnitPriceNetto: it.UnitPriceNetto,
			VATRate:        it.VATRate,
			Notes:          it.Notes,
			Position:       it.Position,
		})
	}
	return q, nil
}

func toTotalsDTO(t valuation.QuoteTotals) dto.TotalsResponse {
	return dto.TotalsResponse{
		NettoBase:        t.NettoBase,
		MarkupAmount:     t.MarkupAmount,
		NettoWithMarkup:  t.NettoWithMarkup,
		VAT:              t.VAT,
		BruttoWithMarkup: t.BruttoWithMarkup,
		CostMaterials:    t.CostMaterials,
		CostLabor:        t.CostLabor,
	}
}

func toResponse(q *entity.Quote) *dto.QuoteResponse {
	resp := &dto.QuoteResponse{
		ID:              q.ID,
		Name:            q.Name,
		ClientID:        q.ClientID,
		ClientName:      q.ClientName,
		Status:          string(q.Status),
		Notes:           q.Notes,
		MarkupMaterials: q.MarkupMaterials,
		MarkupLabor:     q.MarkupLabor,
		DateStart:       q.DateStart,
		DateEnd:         q.DateEnd,
		Tags:            q.Tags,
		Totals:          toTotalsDTO(valuation.CalcTotals(q).Round2()),
		CreatedAt:       q.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       q.UpdatedAt.Format(time.RFC3339),
	}
	for _, it := range q.Items {
		lv := valuation.ValueLine(it, q.MarkupFor(it.Kind))
		resp.Items = append(resp.Items, dto.LineItemResponse{
			ID:                  it.ID,
			Kind:                string(it.Kind),
			SourceID:            it.SourceID,
			Name:                it.Name,
			Unit:                it.Unit,
			Quantity:            it.Quantity,
			UnitPriceNetto:      it.UnitPriceNetto,
			VATRate:             it.VATRate,
			Notes:               it.Notes,
			Position:            it.Position,
			UnitPriceWithMarkup: lv.UnitPriceWithMarkup,
			Netto:               valuation.Round2(lv.Netto),
			Brutto:              lv.Brutto,
		})
	}
	return resp
}
