package dialogue

import (
	"context"
	"sync"

	"wingman/models"
)

// SessionStore is the keyed store for per-conversation dialogue state.
// Update runs a serialized read-modify-write: turns on the same key
// observe each other in arrival order, turns on distinct keys are fully
// independent. Nothing is committed when fn returns an error.
type SessionStore interface {
	Update(ctx context.Context, key string, fn func(sess *models.Session) error) error
	Clear(ctx context.Context, key string) error
}

// keyedMutex hands out one mutex per session key.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *keyedMutex) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()

	lock, exists := k.locks[key]
	if !exists {
		lock = &sync.Mutex{}
		k.locks[key] = lock
	}
	return lock
}

// MemorySessionStore keeps sessions in a process-local map. Suitable for a
// single instance; use the Redis backend when running more than one.
type MemorySessionStore struct {
	km       *keyedMutex
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		km:       newKeyedMutex(),
		sessions: make(map[string]models.Session),
	}
}

func (s *MemorySessionStore) Update(ctx context.Context, key string, fn func(sess *models.Session) error) error {
	lock := s.km.get(key)
	lock.Lock()
	defer lock.Unlock()

	s.mu.RLock()
	sess, exists := s.sessions[key]
	s.mu.RUnlock()
	if !exists {
		sess = *models.NewSession()
	}

	if err := fn(&sess); err != nil {
		return err
	}

	s.mu.Lock()
	s.sessions[key] = sess
	s.mu.Unlock()
	return nil
}

func (s *MemorySessionStore) Clear(ctx context.Context, key string) error {
	lock := s.km.get(key)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	delete(s.sessions, key)
	s.mu.Unlock()
	return nil
}
