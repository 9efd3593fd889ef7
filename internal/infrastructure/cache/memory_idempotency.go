package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/ports"
)

var _ ports.IdempotencyStore = (*MemoryIdempotencyStore)(nil)

type memEntry struct {
	resp    *ports.StoredResponse // nil = en curso
	expires time.Time
}

// MemoryIdempotencyStore almacén de un solo proceso, usado cuando Redis no está configurado.
type MemoryIdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]memEntry
	now     func() time.Time
}

// NewMemoryIdempotencyStore construye el almacén vacío.
func NewMemoryIdempotencyStore() *MemoryIdempotencyStore {
	return &MemoryIdempotencyStore{entries: map[string]memEntry{}, now: time.Now}
}

// WithClock reemplaza el reloj (vencimientos).
func (s *MemoryIdempotencyStore) WithClock(now func() time.Time) *MemoryIdempotencyStore {
	s.now = now
	return s
}

func (s *MemoryIdempotencyStore) live(key string) (memEntry, bool) {
	e, ok := s.entries[key]
	if ok && !s.now().Before(e.expires) {
		delete(s.entries, key)
		return memEntry{}, false
	}
	return e, ok
}

func (s *MemoryIdempotencyStore) Reserve(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.live(key); ok {
		return false, nil
	}
	s.entries[key] = memEntry{expires: s.now().Add(ttl)}
	return true, nil
}

func (s *MemoryIdempotencyStore) Get(_ context.Context, key string) (*ports.StoredResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.live(key)
	if !ok || e.resp == nil {
		return nil, nil
	}
	cp := *e.resp
	cp.Body = append([]byte(nil), e.resp.Body...)
	return &cp, nil
}

func (s *MemoryIdempotencyStore) Complete(_ context.Context, key string, resp ports.StoredResponse, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp.Body = append([]byte(nil), resp.Body...)
	s.entries[key] = memEntry{resp: &resp, expires: s.now().Add(ttl)}
	return nil
}

func (s *MemoryIdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
