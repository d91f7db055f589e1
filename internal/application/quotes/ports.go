package quotes

import (
	"github.com/jhoicas/cotizador-api/internal/domain/entity"
	"github.com/jhoicas/cotizador-api/internal/domain/valuation"
)

// PDFGenerator renderiza un presupuesto a PDF. Recibe los totales ya
// calculados: el documento exportado enseña EXACTAMENTE los mismos importes
// que la API, céntimo a céntimo; el generador nunca recalcula.
type PDFGenerator interface {
	QuotePDF(q *entity.Quote, totals valuation.QuoteTotals) ([]byte, error)
}

// XLSXGenerator renderiza un presupuesto a hoja de cálculo, con el mismo
// contrato de totales precalculados que PDFGenerator.
type XLSXGenerator interface {
	QuoteXLSX(q *entity.Quote, totals valuation.QuoteTotals) ([]byte, error)
}
