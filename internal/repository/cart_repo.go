package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aryant0/mithila-bazaar/internal/model"

	"github.com/go-redis/redis/v8"
)

const cartKeyPrefix = "mithilaBazaar:cart:"

// CartRepository persists the cart lines of one visitor session.
// Load returns an empty slice for an unknown session.
type CartRepository interface {
	Load(ctx context.Context, sessionID string) ([]model.CartLine, error)
	Save(ctx context.Context, sessionID string, lines []model.CartLine) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryCartRepository keeps carts in process memory. Carts are lost on restart.
type MemoryCartRepository struct {
	mu    sync.RWMutex
	carts map[string][]model.CartLine
}

func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{carts: make(map[string][]model.CartLine)}
}

func (r *MemoryCartRepository) Load(ctx context.Context, sessionID string) ([]model.CartLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lines := r.carts[sessionID]
	out := make([]model.CartLine, len(lines))
	copy(out, lines)
	return out, nil
}

func (r *MemoryCartRepository) Save(ctx context.Context, sessionID string, lines []model.CartLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(lines) == 0 {
		delete(r.carts, sessionID)
		return nil
	}
	stored := make([]model.CartLine, len(lines))
	copy(stored, lines)
	r.carts[sessionID] = stored
	return nil
}

func (r *MemoryCartRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, sessionID)
	return nil
}

// RedisCartRepository stores each cart as a JSON array under
// mithilaBazaar:cart:<session>. Every save refreshes the TTL.
type RedisCartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCartRepository(client *redis.Client, ttl time.Duration) *RedisCartRepository {
	return &RedisCartRepository{client: client, ttl: ttl}
}

func cartKey(sessionID string) string {
	return cartKeyPrefix + sessionID
}

func (r *RedisCartRepository) Load(ctx context.Context, sessionID string) ([]model.CartLine, error) {
	data, err := r.client.Get(ctx, cartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []model.CartLine{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	var lines []model.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return lines, nil
}

func (r *RedisCartRepository) Save(ctx context.Context, sessionID string, lines []model.CartLine) error {
	if len(lines) == 0 {
		return r.Delete(ctx, sessionID)
	}

	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := r.client.Set(ctx, cartKey(sessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (r *RedisCartRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
