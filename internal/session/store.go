// Package session keeps the per-login user record and issues the bearer
// tokens that point at it.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"itinfo/internal/models"

	"github.com/redis/go-redis/v9"
)

// Record is the user snapshot saved for a session.
type Record struct {
	UserID    uint      `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// FromUser snapshots u.
func FromUser(u *models.User) Record {
	return Record{
		UserID:    u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

// Store persists session records and revoked token IDs.
type Store interface {
	Save(ctx context.Context, id string, r Record, ttl time.Duration) error
	Load(ctx context.Context, id string) (Record, bool, error)
	Clear(ctx context.Context, id string) error
	Revoke(ctx context.Context, id string, ttl time.Duration) error
	Revoked(ctx context.Context, id string) (bool, error)
}

// RedisStore keeps records as JSON under session:{id} and revocations under blacklist:{id}.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore returns a Store over rdb.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func recordKey(id string) string    { return "session:" + id }
func blacklistKey(id string) string { return "blacklist:" + id }

func (s *RedisStore) Save(ctx context.Context, id string, r Record, ttl time.Duration) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, recordKey(id), raw, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, id string) (Record, bool, error) {
	raw, err := s.rdb.Get(ctx, recordKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("load session: %w", err)
	}
	var r Record
	if err := json.Unmarshal(raw, &r); err != nil {
		return Record{}, false, fmt.Errorf("decode session: %w", err)
	}
	return r, true, nil
}

func (s *RedisStore) Clear(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, recordKey(id)).Err()
}

func (s *RedisStore) Revoke(ctx context.Context, id string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, blacklistKey(id), "1", ttl).Err()
}

func (s *RedisStore) Revoked(ctx context.Context, id string) (bool, error) {
	n, err := s.rdb.Exists(ctx, blacklistKey(id)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type memEntry struct {
	record  Record
	expires time.Time
}

// MemoryStore is the in-process Store used when Redis is unavailable.
// Sessions do not survive a restart.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]memEntry
	revoked map[string]time.Time
	now     func() time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]memEntry),
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, id string, r Record, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = memEntry{record: r, expires: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Load(_ context.Context, id string) (Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.records[id]
	if !ok {
		return Record{}, false, nil
	}
	if !s.now().Before(e.expires) {
		delete(s.records, id)
		return Record{}, false, nil
	}
	return e.record, true, nil
}

func (s *MemoryStore) Clear(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

func (s *MemoryStore) Revoke(_ context.Context, id string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[id] = s.now().Add(ttl)
	return nil
}

func (s *MemoryStore) Revoked(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.revoked[id]
	if !ok {
		return false, nil
	}
	if !s.now().Before(until) {
		delete(s.revoked, id)
		return false, nil
	}
	return true, nil
}
