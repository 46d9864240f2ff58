package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newMiniredisStore(t *testing.T, opts ...RedisOption) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "starting miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := NewRedisStoreFromClient(client, opts...)
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestRedisStoreContract(t *testing.T) {
	store, _ := newMiniredisStore(t)
	runStoreContract(t, store)
}

func TestRedisStorePrefix(t *testing.T) {
	store, mr := newMiniredisStore(t, WithPrefix("custom:"))

	err := store.Save(context.Background(), "shell", []byte(`["/home"]`), 0)
	require.NoError(t, err)
	require.True(t, mr.Exists("custom:shell"), "snapshot stored under custom prefix")
}

func TestRedisStoreTTL(t *testing.T) {
	store, mr := newMiniredisStore(t)
	ctx := context.Background()

	err := store.Save(ctx, "shell", []byte(`["/home"]`), time.Minute)
	require.NoError(t, err)

	// miniredis only advances TTLs via FastForward.
	mr.FastForward(2 * time.Minute)

	data, err := store.Load(ctx, "shell")
	require.NoError(t, err)
	require.Nil(t, data, "expired snapshot must load as nil")
}
