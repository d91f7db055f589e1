package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cotizador-api/internal/application/dto"
	"github.com/jhoicas/cotizador-api/internal/application/quotes"
	"github.com/jhoicas/cotizador-api/internal/domain"
	"github.com/jhoicas/cotizador-api/internal/domain/entity"
	"github.com/jhoicas/cotizador-api/internal/domain/repository"
)

// QuoteHandler maneja las peticiones HTTP de presupuestos (protegido).
type QuoteHandler struct {
	uc *quotes.UseCase
}

// NewQuoteHandler construye el handler.
func NewQuoteHandler(uc *quotes.UseCase) *QuoteHandler {
	return &QuoteHandler{uc: uc}
}

// Create POST /api/quotes
func (h *QuoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return quoteError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Update PUT /api/quotes/:id
func (h *QuoteHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return quoteError(c, err)
	}
	return c.JSON(resp)
}

// Delete DELETE /api/quotes/:id
func (h *QuoteHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return quoteError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID GET /api/quotes/:id
func (h *QuoteHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return quoteError(c, err)
	}
	return c.JSON(resp)
}

// List GET /api/quotes?status=accepted&search=remont&limit=20&offset=0
func (h *QuoteHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	f := repository.QuoteFilter{
		Status: entity.QuoteStatus(c.Query("status")),
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	}
	if f.Status != "" && !f.Status.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status desconocido"})
	}
	list, err := h.uc.List(c.Context(), f)
	if err != nil {
		return quoteError(c, err)
	}
	return c.JSON(list)
}

// Totals GET /api/quotes/:id/totals
func (h *QuoteHandler) Totals(c *fiber.Ctx) error {
	resp, err := h.uc.Totals(c.Context(), c.Params("id"))
	if err != nil {
		return quoteError(c, err)
	}
	return c.JSON(resp)
}

// Profitability GET /api/quotes/:id/profitability
func (h *QuoteHandler) Profitability(c *fiber.Ctx) error {
	resp, err := h.uc.Profitability(c.Context(), c.Params("id"))
	if err != nil {
		return quoteError(c, err)
	}
	return c.JSON(resp)
}

// Export GET /api/quotes/:id/export?format=pdf|xlsx|csv
func (h *QuoteHandler) Export(c *fiber.Ctx) error {
	var (
		data []byte
		name string
		mime string
		err  error
	)
	switch c.Query("format", "pdf") {
	case "pdf":
		data, name, err = h.uc.ExportPDF(c.Context(), c.Params("id"))
		mime = "application/pdf"
	case "xlsx":
		data, name, err = h.uc.ExportXLSX(c.Context(), c.Params("id"))
		mime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "csv":
		data, name, err = h.uc.ExportCSV(c.Context(), c.Params("id"))
		mime = "text/csv"
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "format debe ser pdf, xlsx o csv"})
	}
	if err != nil {
		return quoteError(c, err)
	}
	c.Set(fiber.HeaderContentType, mime)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(data)
}

func quoteError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "presupuesto no encontrado"})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos del presupuesto inválidos"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
