//go:build integration

package redis_test

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/chefwise/chefwise/internal/infrastructure/persistence/redis"
	apperrors "github.com/chefwise/chefwise/pkg/errors"
	"github.com/chefwise/chefwise/test/testutils"
)

func TestDraftStore_Redis(t *testing.T) {
	ctx := context.Background()
	client := goredis.NewClient(&goredis.Options{Addr: testutils.SetupTestRedis(t)})
	t.Cleanup(func() { _ = client.Close() })

	store := redis.NewDraftStore(client, time.Minute, zaptest.NewLogger(t))
	suggestion := testutils.NewRecipeFactory(11).Suggestion()

	id, err := store.Save(ctx, suggestion)
	require.NoError(t, err)

	ttl, err := client.TTL(ctx, redis.KeyPrefix+id).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, suggestion, *got)

	require.NoError(t, store.Delete(ctx, id))
	_, err = store.Get(ctx, id)
	assert.True(t, apperrors.Is(err, apperrors.CodeDraftNotFound))
}
