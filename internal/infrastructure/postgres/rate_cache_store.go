package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/cotizador-api/internal/domain"
	"github.com/jhoicas/cotizador-api/internal/domain/repository"
)

var _ repository.RateCacheStore = (*RateCacheStore)(nil)

// RateCacheStore caché duradera de cotizaciones sobre una tabla clave-valor.
// Sobrevive reinicios del proceso; el servicio de rates decide la frescura,
// aquí solo se guarda payload + fetched_at por clave.
type RateCacheStore struct {
	q Querier
}

// NewRateCacheStore construye el adaptador.
func NewRateCacheStore(q Querier) *RateCacheStore {
	return &RateCacheStore{q: q}
}

// Get devuelve payload y fetched_at de la clave, o ErrNotFound.
func (s *RateCacheStore) Get(ctx context.Context, key string) ([]byte, time.Time, error) {
	var payload []byte
	var fetchedAt time.Time
	err := s.q.QueryRow(ctx,
		`SELECT payload, fetched_at FROM rate_cache WHERE key = $1`, key,
	).Scan(&payload, &fetchedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, time.Time{}, domain.ErrNotFound
		}
		return nil, time.Time{}, fmt.Errorf("get rate cache: %w", err)
	}
	return payload, fetchedAt, nil
}

// Put reemplaza la entrada entera de la clave (upsert).
func (s *RateCacheStore) Put(ctx context.Context, key string, fetchedAt time.Time, payload []byte) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO rate_cache (key, payload, fetched_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET payload = $2, fetched_at = $3`,
		key, payload, fetchedAt,
	)
	if err != nil {
		return fmt.Errorf("put rate cache: %w", err)
	}
	return nil
}
