package likes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggle(t *testing.T) {
	t.Parallel()

	next, liked := Toggle(10, false)
	assert.Equal(t, 11, next)
	assert.True(t, liked)

	next, liked = Toggle(next, liked)
	assert.Equal(t, 10, next)
	assert.False(t, liked)
}

func newRedisSet(t *testing.T) (*RedisSet, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisSet(rdb, time.Minute), mr
}

func TestFlip(t *testing.T) {
	t.Parallel()

	redisSet, _ := newRedisSet(t)
	sets := map[string]Set{
		"memory": NewMemorySet(),
		"redis":  redisSet,
	}

	for name, set := range sets {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			next, liked, err := Flip(ctx, set, "s1", KindPost, 7, 10, nil)
			require.NoError(t, err)
			assert.Equal(t, 11, next)
			assert.True(t, liked)

			in, err := set.Contains(ctx, "s1", KindPost, 7)
			require.NoError(t, err)
			assert.True(t, in)

			// Other sessions and kinds are unaffected.
			in, err = set.Contains(ctx, "s2", KindPost, 7)
			require.NoError(t, err)
			assert.False(t, in)
			in, err = set.Contains(ctx, "s1", KindReview, 7)
			require.NoError(t, err)
			assert.False(t, in)

			next, liked, err = Flip(ctx, set, "s1", KindPost, 7, next, nil)
			require.NoError(t, err)
			assert.Equal(t, 10, next)
			assert.False(t, liked)

			in, err = set.Contains(ctx, "s1", KindPost, 7)
			require.NoError(t, err)
			assert.False(t, in)
		})
	}
}

func TestRedisSet_Expires(t *testing.T) {
	t.Parallel()

	set, mr := newRedisSet(t)
	ctx := context.Background()

	require.NoError(t, set.Add(ctx, "s1", KindReview, 3))
	mr.FastForward(2 * time.Minute)

	in, err := set.Contains(ctx, "s1", KindReview, 3)
	require.NoError(t, err)
	assert.False(t, in)
}

func TestFlip_RedisDown(t *testing.T) {
	t.Parallel()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	set := NewRedisSet(rdb, time.Minute)
	mr.Close()

	next, _, err := Flip(context.Background(), set, "s1", KindPost, 1, 5, nil)
	assert.Error(t, err)
	assert.Equal(t, 5, next)
}

func TestFlip_WriteFailureKeepsMembership(t *testing.T) {
	t.Parallel()

	set := NewMemorySet()
	ctx := context.Background()

	var written []int
	next, liked, err := Flip(ctx, set, "s1", KindReview, 2, 4, func(n int) error {
		written = append(written, n)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 5, next)
	assert.True(t, liked)
	assert.Equal(t, []int{5}, written)

	boom := errors.New("db down")
	next, liked, err = Flip(ctx, set, "s1", KindReview, 2, 5, func(int) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 5, next)
	assert.True(t, liked)

	in, err := set.Contains(ctx, "s1", KindReview, 2)
	require.NoError(t, err)
	assert.True(t, in)
}
