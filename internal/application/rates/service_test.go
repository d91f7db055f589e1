package rates_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cotizador-api/internal/application/rates"
	"github.com/jhoicas/cotizador-api/internal/domain"
	"github.com/jhoicas/cotizador-api/internal/domain/entity"
	"github.com/jhoicas/cotizador-api/internal/domain/repository"
	"github.com/jhoicas/cotizador-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test
// ──────────────────────────────────────────────────────────────────────────────

// fakeFetcher fetcher controlable que cuenta llamadas.
type fakeFetcher struct {
	mu           sync.Mutex
	tableCalls   int32
	historyCalls int32
	table        []entity.ExchangeRate
	history      []entity.HistoricalRate
	err          error
	block        chan struct{} // si no es nil, FetchTable espera aquí
}

func (f *fakeFetcher) FetchTable(ctx context.Context) ([]entity.ExchangeRate, error) {
	atomic.AddInt32(&f.tableCalls, 1)
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.table, f.err
}

func (f *fakeFetcher) FetchHistory(ctx context.Context, code string, days int) ([]entity.HistoricalRate, error) {
	atomic.AddInt32(&f.historyCalls, 1)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.history, f.err
}

// memStore RateCacheStore en memoria.
type memStore struct {
	mu      sync.Mutex
	entries map[string]memEntry
	failing bool
}

type memEntry struct {
	payload   []byte
	fetchedAt time.Time
}

func newMemStore() *memStore { return &memStore{entries: make(map[string]memEntry)} }

func (m *memStore) Get(_ context.Context, key string) ([]byte, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return nil, time.Time{}, errors.New("store caído")
	}
	e, ok := m.entries[key]
	if !ok {
		return nil, time.Time{}, domain.ErrNotFound
	}
	return e.payload, e.fetchedAt, nil
}

func (m *memStore) Put(_ context.Context, key string, fetchedAt time.Time, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return errors.New("store caído")
	}
	m.entries[key] = memEntry{payload: payload, fetchedAt: fetchedAt}
	return nil
}

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func eurTable() []entity.ExchangeRate {
	return []entity.ExchangeRate{
		{Code: "EUR", Currency: "euro", Mid: d("4.30"), EffectiveDate: "2025-06-02"},
		{Code: "USD", Currency: "dolar amerykański", Mid: d("3.75"), EffectiveDate: "2025-06-02"},
	}
}

func newService(f *fakeFetcher, store repository.RateCacheStore) *rates.Service {
	return rates.NewService(rates.DefaultConfig(), f, store, logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Caché viva
// ──────────────────────────────────────────────────────────────────────────────

// Dos lecturas dentro del TTL tras un fetch correcto devuelven la misma
// tabla sin segunda llamada de red.
func TestTable_HitFrescoSinSegundoFetch(t *testing.T) {
	f := &fakeFetcher{table: eurTable()}
	svc := newService(f, nil)
	ctx := context.Background()

	first := svc.Table(ctx)
	second := svc.Table(ctx)

	require.Len(t, first, 2)
	assert.Equal(t, first, second, "tabla idéntica dentro del TTL")
	assert.EqualValues(t, 1, atomic.LoadInt32(&f.tableCalls), "una sola llamada de red")
}

// Un fetch correcto persiste la tabla en la caché duradera.
func TestTable_PersisteEnCacheDuradera(t *testing.T) {
	f := &fakeFetcher{table: eurTable()}
	store := newMemStore()
	svc := newService(f, store)

	svc.Table(context.Background())

	raw, fetchedAt, err := store.Get(context.Background(), "pp_exchange_rates")
	require.NoError(t, err, "la entrada debe existir")
	assert.WithinDuration(t, time.Now(), fetchedAt, time.Minute)

	var persisted []entity.ExchangeRate
	require.NoError(t, json.Unmarshal(raw, &persisted))
	assert.Len(t, persisted, 2)
}

// Con la red caída y sin nada en memoria, se sirve la caché duradera si
// está dentro de su ventana.
func TestTable_FallbackACacheDuradera(t *testing.T) {
	store := newMemStore()
	raw, _ := json.Marshal(eurTable())
	require.NoError(t, store.Put(context.Background(), "pp_exchange_rates", time.Now().Add(-time.Hour), raw))

	f := &fakeFetcher{err: errors.New("network down")}
	svc := newService(f, store)

	table := svc.Table(context.Background())

	require.Len(t, table, 2, "degrada a la caché duradera")
	assert.Equal(t, "EUR", table[0].Code)
}

// Caché duradera expirada: el resultado es vacío, nunca un error.
func TestTable_CacheDuraderaExpiradaDevuelveVacio(t *testing.T) {
	store := newMemStore()
	raw, _ := json.Marshal(eurTable())
	require.NoError(t, store.Put(context.Background(), "pp_exchange_rates", time.Now().Add(-5*time.Hour), raw))

	f := &fakeFetcher{err: errors.New("network down")}
	svc := newService(f, store)

	assert.Empty(t, svc.Table(context.Background()), "sin dato utilizable → vacío")
}

// Un store caído es un cache-miss, no un fallo.
func TestTable_StoreCaidoEsMiss(t *testing.T) {
	store := newMemStore()
	store.failing = true
	f := &fakeFetcher{err: errors.New("network down")}
	svc := newService(f, store)

	assert.NotPanics(t, func() {
		assert.Empty(t, svc.Table(context.Background()))
	})
}

// Con la tabla en memoria ya expirada y la red caída, se sirve la memoria
// rancia: el último dato bueno conocido antes que nada.
func TestTable_MemoriaRanciaTrasFalloDeRed(t *testing.T) {
	f := &fakeFetcher{table: eurTable()}
	cfg := rates.DefaultConfig()
	cfg.LiveTTL = time.Millisecond // expiración inmediata para el test
	svc := rates.NewService(cfg, f, nil, logger.Nop())
	ctx := context.Background()

	require.Len(t, svc.Table(ctx), 2)
	time.Sleep(5 * time.Millisecond)

	f.mu.Lock()
	f.err = errors.New("network down")
	f.table = nil
	f.mu.Unlock()

	stale := svc.Table(ctx)
	require.Len(t, stale, 2, "memoria rancia utilizable tras fallo de red")
	assert.True(t, atomic.LoadInt32(&f.tableCalls) >= 2, "la expiración forzó un refetch")
}

// Lecturas concurrentes durante un fetch en vuelo se acoplan a él: una sola
// llamada de red para la misma clave.
func TestTable_LecturasConcurrentesCoalescen(t *testing.T) {
	f := &fakeFetcher{table: eurTable(), block: make(chan struct{})}
	svc := newService(f, nil)
	ctx := context.Background()

	const readers = 8
	var wg sync.WaitGroup
	results := make([][]entity.ExchangeRate, readers)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.Table(ctx)
		}(i)
	}

	// Dar margen a que todos los lectores se acoplen y liberar el fetch.
	time.Sleep(50 * time.Millisecond)
	close(f.block)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&f.tableCalls), "fetch único coalescido")
	for i, r := range results {
		assert.Lenf(t, r, 2, "lector %d ve la tabla completa, nunca a medias", i)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Series históricas
// ──────────────────────────────────────────────────────────────────────────────

func TestHistory_CacheadaPorCodigoYVentana(t *testing.T) {
	f := &fakeFetcher{history: []entity.HistoricalRate{
		{Date: "2025-06-01", Mid: d("4.28")},
		{Date: "2025-06-02", Mid: d("4.30")},
	}}
	svc := newService(f, nil)
	ctx := context.Background()

	first := svc.History(ctx, "EUR", 30)
	second := svc.History(ctx, "EUR", 30)
	require.Len(t, first, 2)
	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, atomic.LoadInt32(&f.historyCalls), "hit de caché para la misma clave")

	// Otra ventana es otra entrada de caché.
	svc.History(ctx, "EUR", 90)
	assert.EqualValues(t, 2, atomic.LoadInt32(&f.historyCalls))
}

func TestHistory_FalloDeRedDevuelveVacio(t *testing.T) {
	f := &fakeFetcher{err: errors.New("timeout")}
	svc := newService(f, nil)

	assert.Empty(t, svc.History(context.Background(), "EUR", 30))
}

// ──────────────────────────────────────────────────────────────────────────────
// Conversión
// ──────────────────────────────────────────────────────────────────────────────

func TestConversion_IdentidadSobreMonedaBase(t *testing.T) {
	svc := newService(&fakeFetcher{}, nil)

	amount := d("123.45")
	assert.True(t, svc.ToBase(amount, "PLN").Equal(amount), "toBase identidad sobre PLN")
	assert.True(t, svc.FromBase(amount, "PLN").Equal(amount), "fromBase identidad sobre PLN")
}

func TestConversion_CodigoDesconocidoFailSoft(t *testing.T) {
	f := &fakeFetcher{table: eurTable()}
	svc := newService(f, nil)
	svc.Table(context.Background())

	amount := d("250")
	assert.True(t, svc.ToBase(amount, "XXX").Equal(amount),
		"código desconocido devuelve el importe sin tocar")
}

func TestConversion_CacheVaciaFailSoft(t *testing.T) {
	svc := newService(&fakeFetcher{err: errors.New("down")}, nil)

	amount := d("99.99")
	assert.True(t, svc.ToBase(amount, "EUR").Equal(amount), "sin tabla, importe intacto")
}

// Ejemplo de referencia 3: EUR con mid 4.30.
func TestConversion_EjemploEUR(t *testing.T) {
	f := &fakeFetcher{table: eurTable()}
	svc := newService(f, nil)
	svc.Table(context.Background())

	assert.True(t, svc.ToBase(d("1000"), "EUR").Equal(d("4300.00")), "1000 EUR → 4300.00 PLN")
	assert.True(t, svc.FromBase(d("4300"), "EUR").Equal(d("1000.00")), "4300 PLN → 1000.00 EUR")
}

func TestConversion_RedondeoADosDecimales(t *testing.T) {
	f := &fakeFetcher{table: eurTable()}
	svc := newService(f, nil)
	svc.Table(context.Background())

	// 10.333 × 4.30 = 44.4319 → 44.43
	assert.True(t, svc.ToBase(d("10.333"), "EUR").Equal(d("44.43")))
}
