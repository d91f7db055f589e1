// Package nbp adaptador HTTP del API público del Narodowy Bank Polski.
// Implementa rates.Fetcher: tabla A de cotizaciones medias y series
// históricas por divisa.
package nbp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cotizador-api/internal/domain/entity"
)

// DefaultBaseURL endpoint público del NBP.
const DefaultBaseURL = "https://api.nbp.pl/api"

// Client cliente del API NBP. El timeout por petición lo impone el contexto
// del llamador; http.Client queda sin timeout propio para no duplicarlo.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient construye el cliente. baseURL vacío usa el endpoint público.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{baseURL: baseURL, http: &http.Client{}}
}

// tabla A del NBP: [{table, no, effectiveDate, rates: [{currency, code, mid}]}]
type tableResponse struct {
	EffectiveDate string `json:"effectiveDate"`
	Rates         []struct {
		Currency string          `json:"currency"`
		Code     string          `json:"code"`
		Mid      decimal.Decimal `json:"mid"`
	} `json:"rates"`
}

// FetchTable descarga la tabla A completa de cotizaciones medias.
func (c *Client) FetchTable(ctx context.Context) ([]entity.ExchangeRate, error) {
	url := fmt.Sprintf("%s/exchangerates/tables/a/?format=json", c.baseURL)
	var tables []tableResponse
	if err := c.getJSON(ctx, url, &tables); err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("nbp: respuesta sin tablas")
	}
	t := tables[0]
	rates := make([]entity.ExchangeRate, 0, len(t.Rates))
	for _, r := range t.Rates {
		rates = append(rates, entity.ExchangeRate{
			Code:          r.Code,
			Currency:      r.Currency,
			Mid:           r.Mid,
			EffectiveDate: t.EffectiveDate,
		})
	}
	return rates, nil
}

type historyResponse struct {
	Rates []struct {
		EffectiveDate string          `json:"effectiveDate"`
		Mid           decimal.Decimal `json:"mid"`
	} `json:"rates"`
}

// FetchHistory descarga los últimos days puntos de la serie de una divisa.
// days son días de PUBLICACIÓN (hábiles); el NBP no publica fines de semana.
func (c *Client) FetchHistory(ctx context.Context, code string, days int) ([]entity.HistoricalRate, error) {
	url := fmt.Sprintf("%s/exchangerates/rates/a/%s/last/%d/?format=json", c.baseURL, code, days)
	var resp historyResponse
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return nil, err
	}
	points := make([]entity.HistoricalRate, 0, len(resp.Rates))
	for _, r := range resp.Rates {
		points = append(points, entity.HistoricalRate{Date: r.EffectiveDate, Mid: r.Mid})
	}
	return points, nil
}

// getJSON ejecuta un GET y decodifica el body. Cualquier status no-2xx es un
// error, como exige el contrato de Fetcher.
func (c *Client) getJSON(ctx context.Context, url string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// el NBP responde 404 con body de texto cuando no hay datos
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("nbp: status %d de %s", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}
