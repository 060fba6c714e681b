package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/JaimeStill/promptsaver/pkg/flash"
)

// Data is the server-side state of a session.
type Data struct {
	UserID    string    `json:"user_id,omitempty"`
	Remember  bool      `json:"remember,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists session data and pending flash messages.
type Store interface {
	Save(ctx context.Context, id string, data Data, ttl time.Duration) error
	// Load returns ErrNotFound for unknown or expired sessions.
	Load(ctx context.Context, id string) (Data, error)
	Delete(ctx context.Context, id string) error
	PushFlash(ctx context.Context, id string, msg flash.Message, ttl time.Duration) error
	// PopFlashes returns and removes every pending flash, oldest first.
	PopFlashes(ctx context.Context, id string) ([]flash.Message, error)
	Ping(ctx context.Context) error
	Close() error
}

type redisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Store backed by Redis. Sessions are JSON strings
// under <prefix>session:<id>; flashes are a list under <prefix>flash:<id>.
func NewRedisStore(cfg *RedisConfig) Store {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeoutDuration(),
		PoolSize:    cfg.PoolSize,
		MaxRetries:  3,
	})

	return &redisStore{
		client: client,
		prefix: cfg.KeyPrefix,
	}
}

func (s *redisStore) sessionKey(id string) string { return s.prefix + "session:" + id }
func (s *redisStore) flashKey(id string) string   { return s.prefix + "flash:" + id }

func (s *redisStore) Save(ctx context.Context, id string, data Data, ttl time.Duration) error {
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.sessionKey(id), b, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *redisStore) Load(ctx context.Context, id string) (Data, error) {
	b, err := s.client.Get(ctx, s.sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Data{}, ErrNotFound
		}
		return Data{}, fmt.Errorf("load session: %w", err)
	}

	var data Data
	if err := json.Unmarshal(b, &data); err != nil {
		return Data{}, fmt.Errorf("decode session: %w", err)
	}
	return data, nil
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.sessionKey(id), s.flashKey(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *redisStore) PushFlash(ctx context.Context, id string, msg flash.Message, ttl time.Duration) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode flash: %w", err)
	}

	key := s.flashKey(id)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, b)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("push flash: %w", err)
	}
	return nil
}

func (s *redisStore) PopFlashes(ctx context.Context, id string) ([]flash.Message, error) {
	key := s.flashKey(id)

	var items *redis.StringSliceCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		items = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("pop flashes: %w", err)
	}

	raw := items.Val()
	msgs := make([]flash.Message, 0, len(raw))
	for _, item := range raw {
		var msg flash.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			continue
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

func (s *redisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *redisStore) Close() error {
	return s.client.Close()
}

type memoryEntry struct {
	data    Data
	flashes []flash.Message
	expires time.Time
}

type memoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates a process-local Store for development and tests.
func NewMemoryStore() Store {
	return &memoryStore{
		entries: make(map[string]*memoryEntry),
		now:     time.Now,
	}
}

func (s *memoryStore) entry(id string) *memoryEntry {
	e, ok := s.entries[id]
	if !ok {
		return nil
	}
	if s.now().After(e.expires) {
		delete(s.entries, id)
		return nil
	}
	return e
}

// sweep drops every expired entry. Callers hold s.mu.
func (s *memoryStore) sweep() {
	now := s.now()
	for id, e := range s.entries {
		if now.After(e.expires) {
			delete(s.entries, id)
		}
	}
}

func (s *memoryStore) Save(_ context.Context, id string, data Data, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep()

	e := s.entry(id)
	if e == nil {
		e = &memoryEntry{}
		s.entries[id] = e
	}
	e.data = data
	e.expires = s.now().Add(ttl)
	return nil
}

func (s *memoryStore) Load(_ context.Context, id string) (Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entry(id)
	if e == nil {
		return Data{}, ErrNotFound
	}
	return e.data, nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

func (s *memoryStore) PushFlash(_ context.Context, id string, msg flash.Message, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep()

	e := s.entry(id)
	if e == nil {
		e = &memoryEntry{expires: s.now().Add(ttl)}
		s.entries[id] = e
	}
	e.flashes = append(e.flashes, msg)
	return nil
}

func (s *memoryStore) PopFlashes(_ context.Context, id string) ([]flash.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entry(id)
	if e == nil {
		return nil, nil
	}
	msgs := e.flashes
	e.flashes = nil
	return msgs, nil
}

func (s *memoryStore) Ping(context.Context) error { return nil }
func (s *memoryStore) Close() error               { return nil }
