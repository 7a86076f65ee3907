package cart

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client), mr
}

func TestRedisStore_RoundTrip(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()
	key := StorageKey("sess-1", "acme")

	c := New("acme").Add(item(1, "19.99", 2))
	c, _ = c.ApplyDiscount(Discount{Code: "SAVE10", Type: DiscountPercentage, Amount: dec("10")})
	require.NoError(t, store.Save(ctx, key, c))

	assert.True(t, mr.Exists("vitrine:cart_acme:sess-1"))
	assert.Greater(t, mr.TTL("vitrine:cart_acme:sess-1").Hours(), float64(24))

	loaded, err := store.Load(ctx, key)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assertDecimal(t, "19.99", loaded.Items[0].Price)
	assert.Equal(t, "SAVE10", loaded.Discounts[0].Code)
	assert.True(t, c.Total().Equal(loaded.Total()))
}

func TestRedisStore_Miss(t *testing.T) {
	store, _ := setupTestRedis(t)

	_, err := store.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestRedisStore_InvalidJSON(t *testing.T) {
	store, mr := setupTestRedis(t)
	mr.Set("vitrine:bad", "{not json")

	_, err := store.Load(context.Background(), "bad")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCartNotFound)
}

func TestRedisStore_Delete(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "k", New("acme")))
	require.NoError(t, store.Delete(ctx, "k"))
	assert.False(t, mr.Exists("vitrine:k"))
}

func TestLoadOrNew(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	c, err := LoadOrNew(ctx, store, "sess", "acme")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, "acme", c.WebsiteSlug)

	require.NoError(t, store.Save(ctx, StorageKey("sess", "acme"), c.Add(item(1, "1", 1))))
	c, err = LoadOrNew(ctx, store, "sess", "acme")
	require.NoError(t, err)
	assert.Equal(t, 1, c.ItemCount())

	other, err := LoadOrNew(ctx, store, "sess", "other")
	require.NoError(t, err)
	assert.True(t, other.IsEmpty())
}
