package ports

import (
	"context"
	"time"
)

// StoredResponse respuesta guardada para una Idempotency-Key ya completada.
type StoredResponse struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

// IdempotencyStore guarda claves de idempotencia de POST /ventas.
// Reserve devuelve false si la clave ya existe (en curso o completada).
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (*StoredResponse, error)
	Complete(ctx context.Context, key string, resp StoredResponse, ttl time.Duration) error
	Release(ctx context.Context, key string) error
}
