// Package rates mantiene la caché de cotizaciones NBP (tabla viva y series
// históricas) y la conversión de importes a/desde la moneda base.
//
// Contrato de fallos: un error de red NUNCA llega al llamador. Cada lectura
// resuelve a "el mejor dato disponible, posiblemente vacío": tabla fresca en
// memoria, refetch con timeout acotado, memoria rancia, caché duradera, y
// por último vacío. El conversor y las gráficas degradan, no bloquean.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/cotizador-api/internal/domain/entity"
	"github.com/jhoicas/cotizador-api/internal/domain/repository"
	"github.com/jhoicas/cotizador-api/pkg/logger"
)

// Claves fijas de la caché duradera (heredadas del cliente de escritorio,
// se mantienen por compatibilidad de datos).
const liveCacheKey = "pp_exchange_rates"

func historyCacheKey(code string, days int) string {
	return fmt.Sprintf("pp_rate_history_%s_%d", code, days)
}

// Fetcher origen remoto de cotizaciones (NBP). El adaptador debe tratar
// cualquier respuesta no-2xx igual que un error de red.
type Fetcher interface {
	FetchTable(ctx context.Context) ([]entity.ExchangeRate, error)
	FetchHistory(ctx context.Context, code string, days int) ([]entity.HistoricalRate, error)
}

// Config parámetros del subsistema.
type Config struct {
	BaseCurrency string        // moneda base, ej. "PLN"
	LiveTTL      time.Duration // frescura de la tabla viva (4h)
	HistoryTTL   time.Duration // frescura de una serie histórica (12h)
	FetchTimeout time.Duration // timeout de cada fetch (5s)
}

// DefaultConfig los TTL del contrato.
func DefaultConfig() Config {
	return Config{
		BaseCurrency: "PLN",
		LiveTTL:      4 * time.Hour,
		HistoryTTL:   12 * time.Hour,
		FetchTimeout: 5 * time.Second,
	}
}

type historyEntry struct {
	rates     []entity.HistoricalRate
	fetchedAt time.Time
}

// Service caché de cotizaciones con ciclo de vida explícito
// (Empty → Fresh → Stale → Fresh…). La tabla se reemplaza entera en cada
// fetch correcto (swap atómico bajo mutex, nunca mutación in situ) y las
// lecturas concurrentes durante un fetch en vuelo se acoplan a él
// (singleflight): jamás un fetch duplicado para la misma clave.
type Service struct {
	cfg     Config
	fetcher Fetcher
	store   repository.RateCacheStore
	log     *logger.Logger

	mu      sync.RWMutex
	live    *entity.RateTable
	history map[string]historyEntry

	sf singleflight.Group
}

// NewService construye la caché. store puede ser nil (sin caché duradera).
func NewService(cfg Config, fetcher Fetcher, store repository.RateCacheStore, log *logger.Logger) *Service {
	return &Service{
		cfg:     cfg,
		fetcher: fetcher,
		store:   store,
		log:     log,
		history: make(map[string]historyEntry),
	}
}

// BaseCurrency moneda base configurada.
func (s *Service) BaseCurrency() string { return s.cfg.BaseCurrency }

// Table devuelve la tabla de cotizaciones: hit fresco de memoria, o refetch
// coalescido con degradación. Nunca devuelve error; una tabla vacía es el
// estado "sin datos".
func (s *Service) Table(ctx context.Context) []entity.ExchangeRate {
	s.mu.RLock()
	if s.live != nil && time.Since(s.live.FetchedAt) < s.cfg.LiveTTL {
		rates := s.live.Rates
		s.mu.RUnlock()
		return rates
	}
	s.mu.RUnlock()

	v, _, _ := s.sf.Do(liveCacheKey, func() (interface{}, error) {
		return s.refreshLive(ctx), nil
	})
	rates, _ := v.([]entity.ExchangeRate)
	return rates
}

// RefreshAsync lanza (o se acopla a) un refresh de la tabla viva y devuelve
// un canal con el resultado. El llamador puede esperar o ignorar el canal;
// el render no debe bloquear en él.
func (s *Service) RefreshAsync(ctx context.Context) <-chan []entity.ExchangeRate {
	out := make(chan []entity.ExchangeRate, 1)
	ch := s.sf.DoChan(liveCacheKey, func() (interface{}, error) {
		return s.refreshLive(ctx), nil
	})
	go func() {
		res := <-ch
		rates, _ := res.Val.([]entity.ExchangeRate)
		out <- rates
	}()
	return out
}

// Invalidate descarta la tabla viva en memoria; la siguiente lectura refetchea.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.live = nil
	s.mu.Unlock()
}

// refreshLive intenta el fetch con timeout acotado y aplica la cascada de
// degradación. Un fetch que agota el timeout se abandona entero: ningún dato
// parcial se mezcla en la caché.
func (s *Service) refreshLive(ctx context.Context) []entity.ExchangeRate {
	fctx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()

	rates, err := s.fetcher.FetchTable(fctx)
	if err == nil && len(rates) > 0 {
		now := time.Now()
		s.mu.Lock()
		s.live = &entity.RateTable{Rates: rates, FetchedAt: now}
		s.mu.Unlock()
		s.persist(liveCacheKey, now, rates)
		return rates
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("fetch de cotizaciones fallido, degradando a caché")
	}

	// Memoria rancia antes que nada: es el último dato bueno conocido.
	s.mu.RLock()
	if s.live != nil {
		stale := s.live.Rates
		s.mu.RUnlock()
		return stale
	}
	s.mu.RUnlock()

	// Caché duradera dentro de su propia ventana de TTL.
	var cached []entity.ExchangeRate
	if fetchedAt, ok := s.restore(ctx, liveCacheKey, &cached); ok && time.Since(fetchedAt) < s.cfg.LiveTTL {
		s.mu.Lock()
		s.live = &entity.RateTable{Rates: cached, FetchedAt: fetchedAt}
		s.mu.Unlock()
		return cached
	}
	return nil
}

// History devuelve la serie histórica de una divisa para una ventana de
// días. Cacheada por (código, ventana) con su propio TTL; misma cascada de
// degradación que la tabla viva.
func (s *Service) History(ctx context.Context, code string, days int) []entity.HistoricalRate {
	key := historyCacheKey(code, days)

	s.mu.RLock()
	if e, ok := s.history[key]; ok && time.Since(e.fetchedAt) < s.cfg.HistoryTTL {
		s.mu.RUnlock()
		return e.rates
	}
	s.mu.RUnlock()

	v, _, _ := s.sf.Do(key, func() (interface{}, error) {
		return s.refreshHistory(ctx, key, code, days), nil
	})
	rates, _ := v.([]entity.HistoricalRate)
	return rates
}

func (s *Service) refreshHistory(ctx context.Context, key, code string, days int) []entity.HistoricalRate {
	fctx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()

	rates, err := s.fetcher.FetchHistory(fctx, code, days)
	if err == nil && len(rates) > 0 {
		now := time.Now()
		s.mu.Lock()
		s.history[key] = historyEntry{rates: rates, fetchedAt: now}
		s.mu.Unlock()
		s.persist(key, now, rates)
		return rates
	}
	if err != nil {
		s.log.Warn().Err(err).Str("code", code).Int("days", days).
			Msg("fetch de serie histórica fallido, degradando a caché")
	}

	s.mu.RLock()
	if e, ok := s.history[key]; ok {
		s.mu.RUnlock()
		return e.rates
	}
	s.mu.RUnlock()

	var cached []entity.HistoricalRate
	if fetchedAt, ok := s.restore(ctx, key, &cached); ok && time.Since(fetchedAt) < s.cfg.HistoryTTL {
		s.mu.Lock()
		s.history[key] = historyEntry{rates: cached, fetchedAt: fetchedAt}
		s.mu.Unlock()
		return cached
	}
	return nil
}

// persist escribe en la caché duradera; un fallo de escritura solo se loguea.
func (s *Service) persist(key string, fetchedAt time.Time, payload interface{}) {
	if s.store == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := s.store.Put(context.Background(), key, fetchedAt, raw); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("no se pudo persistir la caché de cotizaciones")
	}
}

// restore lee de la caché duradera; entrada ausente o corrupta = miss.
func (s *Service) restore(ctx context.Context, key string, dst interface{}) (time.Time, bool) {
	if s.store == nil {
		return time.Time{}, false
	}
	raw, fetchedAt, err := s.store.Get(ctx, key)
	if err != nil {
		return time.Time{}, false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return time.Time{}, false
	}
	return fetchedAt, true
}
