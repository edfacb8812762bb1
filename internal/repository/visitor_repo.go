package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// VisitorRepository counts unique sessions per calendar day.
type VisitorRepository interface {
	// MarkVisit records the session for day and reports whether it was new.
	MarkVisit(ctx context.Context, sessionID string, day time.Time) (bool, error)
	Count(ctx context.Context, day time.Time) (int64, error)
}

// VisitorDayKey names the counter for a day, e.g. visitors_2025_6_9.
func VisitorDayKey(day time.Time) string {
	return fmt.Sprintf("visitors_%d_%d_%d", day.Year(), int(day.Month()), day.Day())
}

type MemoryVisitorRepository struct {
	mu   sync.Mutex
	days map[string]map[string]struct{}
}

func NewMemoryVisitorRepository() *MemoryVisitorRepository {
	return &MemoryVisitorRepository{days: make(map[string]map[string]struct{})}
}

func (r *MemoryVisitorRepository) MarkVisit(ctx context.Context, sessionID string, day time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := VisitorDayKey(day)
	seen, ok := r.days[key]
	if !ok {
		// only today's set is useful; drop older days
		r.days = map[string]map[string]struct{}{}
		seen = make(map[string]struct{})
		r.days[key] = seen
	}
	if _, dup := seen[sessionID]; dup {
		return false, nil
	}
	seen[sessionID] = struct{}{}
	return true, nil
}

func (r *MemoryVisitorRepository) Count(ctx context.Context, day time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.days[VisitorDayKey(day)])), nil
}

// RedisVisitorRepository keeps one set of session ids per day.
type RedisVisitorRepository struct {
	client *redis.Client
}

func NewRedisVisitorRepository(client *redis.Client) *RedisVisitorRepository {
	return &RedisVisitorRepository{client: client}
}

func visitorSetKey(day time.Time) string {
	return "mithilaBazaar:" + VisitorDayKey(day)
}

func (r *RedisVisitorRepository) MarkVisit(ctx context.Context, sessionID string, day time.Time) (bool, error) {
	key := visitorSetKey(day)

	pipe := r.client.TxPipeline()
	added := pipe.SAdd(ctx, key, sessionID)
	pipe.Expire(ctx, key, 48*time.Hour)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("mark visit: %w", err)
	}
	return added.Val() == 1, nil
}

func (r *RedisVisitorRepository) Count(ctx context.Context, day time.Time) (int64, error) {
	n, err := r.client.SCard(ctx, visitorSetKey(day)).Result()
	if err != nil {
		return 0, fmt.Errorf("count visitors: %w", err)
	}
	return n, nil
}
