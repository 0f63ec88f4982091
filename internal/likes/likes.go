// Package likes tracks which items a viewer session has liked.
//
// The backing tables keep only a bare like counter per item, so "already
// liked" is session-scoped, non-durable state. Two sessions toggling the same
// item concurrently race on the counter; the last write wins.
package likes

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Kind names the liked item type.
type Kind string

const (
	KindPost   Kind = "post"
	KindReview Kind = "review"
)

// Toggle computes the counter after flipping a like.
func Toggle(current int, liked bool) (next int, nowLiked bool) {
	if liked {
		return current - 1, false
	}
	return current + 1, true
}

// Set is the liked-set of one or more viewer sessions.
type Set interface {
	Contains(ctx context.Context, session string, kind Kind, id uint) (bool, error)
	Add(ctx context.Context, session string, kind Kind, id uint) error
	Remove(ctx context.Context, session string, kind Kind, id uint) error
}

// RedisSet keeps one Redis SET per session and kind. Keys expire after ttl of inactivity.
type RedisSet struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisSet returns a Redis-backed liked-set.
func NewRedisSet(rdb *redis.Client, ttl time.Duration) *RedisSet {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &RedisSet{rdb: rdb, ttl: ttl}
}

func key(session string, kind Kind) string {
	return fmt.Sprintf("likes:%s:%s", session, kind)
}

func (s *RedisSet) Contains(ctx context.Context, session string, kind Kind, id uint) (bool, error) {
	return s.rdb.SIsMember(ctx, key(session, kind), id).Result()
}

func (s *RedisSet) Add(ctx context.Context, session string, kind Kind, id uint) error {
	k := key(session, kind)
	pipe := s.rdb.TxPipeline()
	pipe.SAdd(ctx, k, id)
	pipe.Expire(ctx, k, s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisSet) Remove(ctx context.Context, session string, kind Kind, id uint) error {
	k := key(session, kind)
	pipe := s.rdb.TxPipeline()
	pipe.SRem(ctx, k, id)
	pipe.Expire(ctx, k, s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// MemorySet is an in-process liked-set used when Redis is unavailable.
type MemorySet struct {
	mu    sync.Mutex
	items map[string]map[uint]struct{}
}

// NewMemorySet returns an empty in-process liked-set.
func NewMemorySet() *MemorySet {
	return &MemorySet{items: make(map[string]map[uint]struct{})}
}

func (s *MemorySet) Contains(_ context.Context, session string, kind Kind, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.items[key(session, kind)][id]
	return ok, nil
}

func (s *MemorySet) Add(_ context.Context, session string, kind Kind, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(session, kind)
	if s.items[k] == nil {
		s.items[k] = make(map[uint]struct{})
	}
	s.items[k][id] = struct{}{}
	return nil
}

func (s *MemorySet) Remove(_ context.Context, session string, kind Kind, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items[key(session, kind)], id)
	return nil
}

// Flip toggles a like: it reads membership, computes the next counter, hands it
// to write, and only then updates membership. A write failure leaves the set
// unchanged. A nil write skips the counter update.
func Flip(ctx context.Context, set Set, session string, kind Kind, id uint, current int, write func(next int) error) (int, bool, error) {
	liked, err := set.Contains(ctx, session, kind, id)
	if err != nil {
		return current, false, fmt.Errorf("check liked-set: %w", err)
	}
	next, nowLiked := Toggle(current, liked)
	if write != nil {
		if err := write(next); err != nil {
			return current, liked, err
		}
	}
	if nowLiked {
		err = set.Add(ctx, session, kind, id)
	} else {
		err = set.Remove(ctx, session, kind, id)
	}
	if err != nil {
		return next, liked, fmt.Errorf("update liked-set: %w", err)
	}
	return next, nowLiked, nil
}
