package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/taskhub/task-management-api/internal/core/domain"
)

func newTestCache(t *testing.T) (*TaskCache, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewTaskCache(client), srv
}

func sampleTask() *domain.Task {
	return &domain.Task{
		ID:             "abc123",
		Header:         "fix login",
		Description:    "button misaligned",
		Status:         domain.StatusPending,
		Priority:       domain.PriorityMiddle,
		AuthorEmail:    "author@x.com",
		PerformerEmail: "performer@x.com",
		CreatedAt:      time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestTaskCache_RoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()
	task := sampleTask()

	if err := cache.Set(ctx, task); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := cache.Get(ctx, task.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatalf("expected a hit")
	}
	if *got != *task {
		t.Fatalf("cached task differs: got %+v, want %+v", got, task)
	}
}

func TestTaskCache_Miss(t *testing.T) {
	cache, _ := newTestCache(t)

	got, err := cache.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("a miss must not be an error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil task on miss, got %+v", got)
	}
}

func TestTaskCache_Invalidate(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()
	task := sampleTask()

	if err := cache.Set(ctx, task); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := cache.Invalidate(ctx, task.ID); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}

	got, err := cache.Get(ctx, task.ID)
	if err != nil || got != nil {
		t.Fatalf("expected a miss after invalidation, got %+v (err %v)", got, err)
	}
}

func TestTaskCache_Expiry(t *testing.T) {
	cache, srv := newTestCache(t)
	ctx := context.Background()
	task := sampleTask()

	if err := cache.Set(ctx, task); err != nil {
		t.Fatalf("Set: %v", err)
	}

	srv.FastForward(taskCacheTTL + time.Second)

	got, err := cache.Get(ctx, task.ID)
	if err != nil || got != nil {
		t.Fatalf("expected a miss after TTL, got %+v (err %v)", got, err)
	}
}
