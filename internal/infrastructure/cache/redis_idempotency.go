// Package cache implementa el almacén de claves Idempotency-Key de POST /ventas:
// Redis cuando hay REDIS_ADDR, un mapa en memoria cuando no.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/ports"
)

const (
	keyPrefix     = "pos:idem:"
	pendingMarker = "pending"
)

var _ ports.IdempotencyStore = (*RedisIdempotencyStore)(nil)

// RedisIdempotencyStore claves compartidas entre réplicas de la API.
type RedisIdempotencyStore struct {
	client *redis.Client
}

// NewRedisIdempotencyStore abre el cliente; la conexión es perezosa, usar Ping para validarla.
func NewRedisIdempotencyStore(addr, password string, db int) *RedisIdempotencyStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisIdempotencyStore{client: client}
}

func (s *RedisIdempotencyStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisIdempotencyStore) Close() error {
	return s.client.Close()
}

// Reserve SET NX: sólo la primera petición con la clave la obtiene.
func (s *RedisIdempotencyStore) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, keyPrefix+key, pendingMarker, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis reserve: %w", err)
	}
	return ok, nil
}

// Get devuelve la respuesta guardada; nil si no existe o sigue en curso.
func (s *RedisIdempotencyStore) Get(ctx context.Context, key string) (*ports.StoredResponse, error) {
	val, err := s.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	if val == pendingMarker {
		return nil, nil
	}
	var resp ports.StoredResponse
	if err := json.Unmarshal([]byte(val), &resp); err != nil {
		return nil, fmt.Errorf("redis decode: %w", err)
	}
	return &resp, nil
}

func (s *RedisIdempotencyStore) Complete(ctx context.Context, key string, resp ports.StoredResponse, ttl time.Duration) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, keyPrefix+key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis complete: %w", err)
	}
	return nil
}

// Release libera la clave cuando la petición falló, para permitir reintentos.
func (s *RedisIdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis release: %w", err)
	}
	return nil
}
