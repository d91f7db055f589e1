package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cotizador-api/internal/application/dto"
	"github.com/jhoicas/cotizador-api/internal/application/rates"
	"github.com/jhoicas/cotizador-api/internal/domain/chart"
	"github.com/jhoicas/cotizador-api/internal/domain/entity"
)

// RatesHandler maneja cotizaciones de divisas, conversor y gráficas.
// Ninguna ruta de este handler devuelve 5xx por fallos del NBP: la caché
// degrada a datos rancios o vacíos y el status es siempre 200.
type RatesHandler struct {
	svc *rates.Service
}

// NewRatesHandler construye el handler.
func NewRatesHandler(svc *rates.Service) *RatesHandler {
	return &RatesHandler{svc: svc}
}

// Table GET /api/rates
func (h *RatesHandler) Table(c *fiber.Ctx) error {
	table := h.svc.Table(c.Context())
	resp := dto.RatesTableResponse{
		BaseCurrency: h.svc.BaseCurrency(),
		Popular:      entity.PopularCurrencies,
		Rates:        make([]dto.RateDTO, 0, len(table)),
	}
	for _, r := range table {
		resp.Rates = append(resp.Rates, dto.RateDTO{
			Code:          r.Code,
			Currency:      r.Currency,
			Mid:           r.Mid,
			EffectiveDate: r.EffectiveDate,
		})
	}
	return c.JSON(resp)
}

// Refresh POST /api/rates/refresh
// Invalida la caché y dispara el refetch en segundo plano.
func (h *RatesHandler) Refresh(c *fiber.Ctx) error {
	h.svc.Invalidate()
	h.svc.RefreshAsync(c.UserContext())
	return c.SendStatus(fiber.StatusAccepted)
}

// Convert GET /api/rates/convert?amount=100&from=EUR&to=USD
func (h *RatesHandler) Convert(c *fiber.Ctx) error {
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "amount debe ser numérico"})
	}
	from := strings.ToUpper(c.Query("from", h.svc.BaseCurrency()))
	to := strings.ToUpper(c.Query("to", h.svc.BaseCurrency()))

	resp := dto.ConvertResponse{Amount: amount, From: from, To: to}

	base := h.svc.BaseCurrency()
	fromKnown := from == base
	toKnown := to == base
	if !fromKnown {
		_, fromKnown = h.svc.Rate(from)
	}
	if !toKnown {
		_, toKnown = h.svc.Rate(to)
	}
	// divisa sin cotización: resultado null, nunca error
	if fromKnown && toKnown {
		result := h.svc.FromBase(h.svc.ToBase(amount, from), to)
		resp.Result = &result
	}
	return c.JSON(resp)
}

// History GET /api/rates/:code/history?range=30d
func (h *RatesHandler) History(c *fiber.Ctx) error {
	code := strings.ToUpper(c.Params("code"))
	rng := rates.ChartRange(c.Query("range", "30d"))
	days, ok := rates.DaysForRange(rng)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "range desconocido"})
	}
	points := h.svc.History(c.Context(), code, days)
	resp := dto.RateHistoryResponse{
		Code:   code,
		Range:  string(rng),
		Points: make([]dto.HistoricalRateDTO, 0, len(points)),
	}
	for _, p := range points {
		resp.Points = append(resp.Points, dto.HistoricalRateDTO{Date: p.Date, Mid: p.Mid})
	}
	return c.JSON(resp)
}

// Chart GET /api/rates/:code/chart?range=30d
// Devuelve la geometría lista para pintar: puntos en píxeles, trazados
// suavizados, zonas de hover, rejilla y tendencia.
func (h *RatesHandler) Chart(c *fiber.Ctx) error {
	code := strings.ToUpper(c.Params("code"))
	rng := rates.ChartRange(c.Query("range", "30d"))
	days, ok := rates.DaysForRange(rng)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "range desconocido"})
	}
	points := h.svc.History(c.Context(), code, days)
	series := make([]chart.SeriesPoint, 0, len(points))
	for _, p := range points {
		series = append(series, chart.SeriesPoint{Label: p.Date, Value: p.Mid.InexactFloat64()})
	}
	return c.JSON(chart.Build(series, chart.DefaultViewport()))
}
