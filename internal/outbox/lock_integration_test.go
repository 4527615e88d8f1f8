//go:build integration

package outbox

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}

func TestRedisLocker(t *testing.T) {
	client := startRedis(t)
	ctx := context.Background()

	first := NewRedisLocker(client, "test:relay", time.Minute)
	second := NewRedisLocker(client, "test:relay", time.Minute)

	ok, err := first.TryLock(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = second.TryLock(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "lease is held by the first locker")

	require.NoError(t, second.Unlock(ctx))

	ok, err = second.TryLock(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "a foreign unlock must not release the lease")

	require.NoError(t, first.Unlock(ctx))

	ok, err = second.TryLock(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLocker_LeaseExpires(t *testing.T) {
	client := startRedis(t)
	ctx := context.Background()

	first := NewRedisLocker(client, "test:expiring", 200*time.Millisecond)
	second := NewRedisLocker(client, "test:expiring", time.Minute)

	ok, err := first.TryLock(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Eventually(t, func() bool {
		ok, err := second.TryLock(ctx)
		return err == nil && ok
	}, 5*time.Second, 50*time.Millisecond)
}
