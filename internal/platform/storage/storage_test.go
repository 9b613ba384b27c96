package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/janisto/realty-portal/internal/testutil"
)

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	require.Equal(t, "v", got)
}

func TestNewRedisClientErrors(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "not-a-url")
	require.Error(t, err)

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	_, err = NewRedisClient(context.Background(), "redis://"+addr)
	require.ErrorContains(t, err, "redis ping failed")
}

func TestNewPostgresPoolInvalidURL(t *testing.T) {
	_, err := NewPostgresPool(context.Background(), "postgres://%zz")
	require.Error(t, err)
}

func TestNewPostgresPool(t *testing.T) {
	url := testutil.PostgresURL(t)
	pool, err := NewPostgresPool(context.Background(), url)
	require.NoError(t, err)
	pool.Close()
}
