package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cotizador-api/internal/application/dto"
	"github.com/jhoicas/cotizador-api/internal/application/expenses"
	"github.com/jhoicas/cotizador-api/internal/domain"
)

// ExpenseHandler maneja las peticiones HTTP de gastos (protegido).
type ExpenseHandler struct {
	uc *expenses.UseCase
}

// NewExpenseHandler construye el handler.
func NewExpenseHandler(uc *expenses.UseCase) *ExpenseHandler {
	return &ExpenseHandler{uc: uc}
}

// Create POST /api/expenses
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return expenseError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Update PUT /api/expenses/:id
func (h *ExpenseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return expenseError(c, err)
	}
	return c.JSON(resp)
}

// Delete DELETE /api/expenses/:id
func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return expenseError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID GET /api/expenses/:id
func (h *ExpenseHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return expenseError(c, err)
	}
	return c.JSON(resp)
}

// List GET /api/expenses?limit=20&offset=0
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.List(c.Context(), dto.PageRequest{Limit: limit, Offset: offset})
	if err != nil {
		return expenseError(c, err)
	}
	return c.JSON(list)
}

// MonthSummary GET /api/expenses/summary?month=YYYY-MM
func (h *ExpenseHandler) MonthSummary(c *fiber.Ctx) error {
	resp, err := h.uc.MonthSummary(c.Context(), c.Query("month"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "month debe tener formato YYYY-MM"})
		}
		return expenseError(c, err)
	}
	return c.JSON(resp)
}

func expenseError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "gasto no encontrado"})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos del gasto inválidos"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
