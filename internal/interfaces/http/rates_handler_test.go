package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cotizador-api/internal/application/dto"
	"github.com/jhoicas/cotizador-api/internal/application/rates"
	"github.com/jhoicas/cotizador-api/internal/domain/entity"
	apphttp "github.com/jhoicas/cotizador-api/internal/interfaces/http"
	"github.com/jhoicas/cotizador-api/pkg/logger"
)

type staticFetcher struct {
	table   []entity.ExchangeRate
	history []entity.HistoricalRate
}

func (f *staticFetcher) FetchTable(_ context.Context) ([]entity.ExchangeRate, error) {
	return f.table, nil
}

func (f *staticFetcher) FetchHistory(_ context.Context, _ string, _ int) ([]entity.HistoricalRate, error) {
	return f.history, nil
}

func buildRatesApp(f rates.Fetcher) *fiber.App {
	svc := rates.NewService(rates.DefaultConfig(), f, nil, logger.Nop())
	app := fiber.New()
	h := apphttp.NewRatesHandler(svc)
	app.Get("/api/rates", h.Table)
	app.Get("/api/rates/convert", h.Convert)
	app.Get("/api/rates/:code/history", h.History)
	app.Get("/api/rates/:code/chart", h.Chart)
	return app
}

func getJSON(t *testing.T, app *fiber.App, url string, dst interface{}) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if dst != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
	}
	return resp.StatusCode
}

func mid(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestRatesTable_DevuelveTablaYBase(t *testing.T) {
	app := buildRatesApp(&staticFetcher{table: []entity.ExchangeRate{
		{Code: "EUR", Currency: "euro", Mid: mid("4.30"), EffectiveDate: "2026-03-02"},
	}})

	var resp dto.RatesTableResponse
	status := getJSON(t, app, "/api/rates", &resp)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "PLN", resp.BaseCurrency)
	assert.Contains(t, resp.Popular, "EUR")
	require.Len(t, resp.Rates, 1)
	assert.Equal(t, "EUR", resp.Rates[0].Code)
}

func TestConvert_EURaPLN(t *testing.T) {
	app := buildRatesApp(&staticFetcher{table: []entity.ExchangeRate{
		{Code: "EUR", Currency: "euro", Mid: mid("4.30"), EffectiveDate: "2026-03-02"},
	}})
	// calienta la caché
	getJSON(t, app, "/api/rates", nil)

	var resp dto.ConvertResponse
	status := getJSON(t, app, "/api/rates/convert?amount=1000&from=EUR&to=PLN", &resp)
	assert.Equal(t, http.StatusOK, status)
	require.NotNil(t, resp.Result)
	assert.True(t, resp.Result.Equal(mid("4300.00")))
}

func TestConvert_DivisaDesconocidaResultadoNull(t *testing.T) {
	app := buildRatesApp(&staticFetcher{table: []entity.ExchangeRate{
		{Code: "EUR", Currency: "euro", Mid: mid("4.30"), EffectiveDate: "2026-03-02"},
	}})
	getJSON(t, app, "/api/rates", nil)

	var resp dto.ConvertResponse
	status := getJSON(t, app, "/api/rates/convert?amount=100&from=XXX&to=PLN", &resp)
	assert.Equal(t, http.StatusOK, status)
	assert.Nil(t, resp.Result)
}

func TestConvert_AmountInvalido(t *testing.T) {
	app := buildRatesApp(&staticFetcher{})
	status := getJSON(t, app, "/api/rates/convert?amount=abc&from=EUR&to=PLN", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestHistory_RangoInvalido(t *testing.T) {
	app := buildRatesApp(&staticFetcher{})
	status := getJSON(t, app, "/api/rates/EUR/history?range=5min", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestChart_GeometriaDeSerie(t *testing.T) {
	app := buildRatesApp(&staticFetcher{history: []entity.HistoricalRate{
		{Date: "2026-03-02", Mid: mid("4.30")},
		{Date: "2026-03-03", Mid: mid("4.32")},
		{Date: "2026-03-04", Mid: mid("4.31")},
	}})

	var resp struct {
		Points []struct {
			X float64 `json:"x"`
			Y float64 `json:"y"`
		} `json:"points"`
		PathD string `json:"path_d"`
		Trend struct {
			Direction string `json:"direction"`
		} `json:"trend"`
	}
	status := getJSON(t, app, "/api/rates/EUR/chart?range=30d", &resp)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, resp.Points, 3)
	assert.NotEmpty(t, resp.PathD)
	assert.Equal(t, "up", resp.Trend.Direction)
}
