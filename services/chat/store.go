package chat

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("chat session not found")

// SessionStore keeps conversation snapshots between turns.
type SessionStore interface {
	Get(ctx context.Context, id string) (*Snapshot, error)
	Save(ctx context.Context, id string, s Snapshot) error
	Delete(ctx context.Context, id string) error
	// Lock claims the session for one turn. ok is false when another turn
	// holds it.
	Lock(ctx context.Context, id string) (release func(), ok bool, err error)
}

// MemoryStore is a process-local SessionStore. Entries expire ttl after
// their last save and are swept on the next Save; a zero ttl keeps them
// forever.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memoryEntry
	locked   map[string]bool
}

type memoryEntry struct {
	snap    Snapshot
	expires time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memoryEntry),
		locked:   make(map[string]bool),
	}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if m.ttl > 0 && m.now().After(e.expires) {
		delete(m.sessions, id)
		return nil, ErrSessionNotFound
	}
	snap := e.snap
	return &snap, nil
}

func (m *MemoryStore) Save(_ context.Context, id string, s Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	if m.ttl > 0 {
		for key, e := range m.sessions {
			if now.After(e.expires) {
				delete(m.sessions, key)
			}
		}
	}
	m.sessions[id] = memoryEntry{snap: s, expires: now.Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	delete(m.locked, id)
	return nil
}

func (m *MemoryStore) Lock(_ context.Context, id string) (func(), bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locked[id] {
		return nil, false, nil
	}
	m.locked[id] = true
	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.locked, id)
			m.mu.Unlock()
		})
	}, true, nil
}

const (
	sessionKeyPrefix = "chat:session:"
	lockKeyPrefix    = "chat:lock:"
	lockTTL          = 30 * time.Second
)

// releaseLock deletes a lock only while it still holds the caller's token,
// so a turn that outlived lockTTL cannot free a newer turn's lock.
var releaseLock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisStore keeps snapshots in Redis with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Snapshot, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+id).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *RedisStore) Save(ctx context.Context, id string, snap Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKeyPrefix+id, b, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionKeyPrefix+id, lockKeyPrefix+id).Err()
}

func (s *RedisStore) Lock(ctx context.Context, id string) (func(), bool, error) {
	key := lockKeyPrefix + id
	token := uuid.NewString()
	ok, err := s.client.SetNX(ctx, key, token, lockTTL).Result()
	if err != nil || !ok {
		return nil, false, err
	}
	return func() {
		_ = releaseLock.Run(context.Background(), s.client, []string{key}, token).Err()
	}, true, nil
}
