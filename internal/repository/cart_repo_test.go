package repository

import (
	"context"
	"testing"
	"time"

	"github.com/aryant0/mithila-bazaar/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return mr, client
}

func sampleLines() []model.CartLine {
	return []model.CartLine{
		{ID: "3-0", Name: "Mock Product 3", Price: decimal.RequireFromString("104.00"), Unit: "1 kg", Image: "/mbazaar.ico", Quantity: 2},
		{ID: "7-1", Name: "Makhana", Price: decimal.RequireFromString("0.35"), Unit: "250 g", Image: "/mbazaar.ico", Quantity: 1},
	}
}

func TestRedisCartRepository_RoundTrip(t *testing.T) {
	mr, client := setupTestRedis(t)
	repo := NewRedisCartRepository(client, time.Hour)
	ctx := context.Background()

	empty, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, repo.Save(ctx, "s1", sampleLines()))
	assert.True(t, mr.Exists("mithilaBazaar:cart:s1"))
	assert.Equal(t, time.Hour, mr.TTL("mithilaBazaar:cart:s1"))

	got, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "3-0", got[0].ID)
	assert.Equal(t, "7-1", got[1].ID)
	assert.True(t, got[1].Price.Equal(decimal.RequireFromString("0.35")))
	assert.Equal(t, 2, got[0].Quantity)
}

func TestRedisCartRepository_SaveEmptyDeletes(t *testing.T) {
	mr, client := setupTestRedis(t)
	repo := NewRedisCartRepository(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "s1", sampleLines()))
	require.NoError(t, repo.Save(ctx, "s1", nil))
	assert.False(t, mr.Exists("mithilaBazaar:cart:s1"))
}

func TestRedisCartRepository_Expiry(t *testing.T) {
	mr, client := setupTestRedis(t)
	repo := NewRedisCartRepository(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "s1", sampleLines()))
	mr.FastForward(2 * time.Minute)

	got, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisCartRepository_CorruptValue(t *testing.T) {
	mr, client := setupTestRedis(t)
	repo := NewRedisCartRepository(client, time.Minute)

	require.NoError(t, mr.Set("mithilaBazaar:cart:s1", "not json"))
	_, err := repo.Load(context.Background(), "s1")
	assert.Error(t, err)
}

func TestMemoryCartRepository(t *testing.T) {
	repo := NewMemoryCartRepository()
	ctx := context.Background()

	lines := sampleLines()
	require.NoError(t, repo.Save(ctx, "s1", lines))

	lines[0].Quantity = 42
	got, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, got[0].Quantity, "stored lines must not alias the caller's slice")

	other, err := repo.Load(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, repo.Delete(ctx, "s1"))
	got, err = repo.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, got)
}
