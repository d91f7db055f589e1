package repository

import (
	"context"
	"time"
)

// RateCacheStore almacén duradero clave-valor para las cachés de cotizaciones:
// una clave fija para la tabla viva y una por serie histórica. Guarda el
// payload serializado junto a su marca de fetch.
//
// Contrato de errores del subsistema de divisas: una entrada corrupta o un
// almacén caído equivalen a cache-miss; el llamador degrada, nunca falla.
type RateCacheStore interface {
	// Get devuelve payload y fetchedAt de la clave, o ErrNotFound.
	Get(ctx context.Context, key string) (payload []byte, fetchedAt time.Time, err error)
	// Put reemplaza la entrada entera de la clave.
	Put(ctx context.Context, key string, fetchedAt time.Time, payload []byte) error
}
