package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/bpmnflow/pkg/adapters/redis"
	"github.com/aretw0/bpmnflow/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.DefinitionStore = (*redis.Store)(nil)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)
	ports.RunDefinitionStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_Contract_WithLocking(t *testing.T) {
	_, client := newClient(t)
	ports.RunDefinitionStoreContract(t, redis.NewFromClient(client, redis.WithLocking(time.Second)))
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithPrefix("test:"))
	ctx := context.Background()

	require.NoError(t, store.SaveDefinition(ctx, "order", []byte("id: order")))

	got, err := mr.Get("test:order")
	require.NoError(t, err)
	assert.Equal(t, "id: order", got)
	assert.False(t, mr.Exists(redis.DefaultPrefix+"order"))
}

func TestRedisStore_EmptyID(t *testing.T) {
	_, client := newClient(t)
	store := redis.NewFromClient(client)
	assert.Error(t, store.SaveDefinition(context.Background(), "", []byte("x")))
}

func TestLocker_Exclusive(t *testing.T) {
	_, client := newClient(t)
	locker := redis.NewLocker(client, "test:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "order", time.Minute)
	require.NoError(t, err)

	waitCtx, cancel := context.WithTimeout(ctx, 150*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(waitCtx, "order", time.Minute)
	assert.ErrorIs(t, err, redis.ErrLockAcquire)

	require.NoError(t, unlock(ctx))

	unlock2, err := locker.Lock(ctx, "order", time.Minute)
	require.NoError(t, err)
	assert.NoError(t, unlock2(ctx))
}

func TestLocker_ReleaseIgnoresForeignToken(t *testing.T) {
	mr, client := newClient(t)
	locker := redis.NewLocker(client, "test:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "order", time.Second)
	require.NoError(t, err)

	// Lock expired and was taken by someone else.
	mr.FastForward(2 * time.Second)
	require.NoError(t, mr.Set("test:lock:order", "other"))

	require.NoError(t, unlock(ctx))
	got, err := mr.Get("test:lock:order")
	require.NoError(t, err)
	assert.Equal(t, "other", got)
}
