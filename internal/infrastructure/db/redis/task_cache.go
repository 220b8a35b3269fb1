package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskhub/task-management-api/internal/core/domain"
)

const taskCacheTTL = 5 * time.Minute

// TaskCache is a Redis-backed cache of tasks keyed by task id.
// Entries expire after taskCacheTTL and are invalidated on every write.
// Key format: task:<id>
type TaskCache struct {
	client *redis.Client
}

// NewTaskCache creates a TaskCache wrapping the given Redis client.
func NewTaskCache(client *redis.Client) *TaskCache {
	return &TaskCache{client: client}
}

// Get returns the cached task, or (nil, nil) on a miss.
func (c *TaskCache) Get(ctx context.Context, id string) (*domain.Task, error) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("task cache get: %w", err)
	}

	var task domain.Task
	if err := json.Unmarshal(data, &task); err != nil {
		return nil, fmt.Errorf("task cache decode: %w", err)
	}
	return &task, nil
}

// Set stores the task under its id (expires after taskCacheTTL).
func (c *TaskCache) Set(ctx context.Context, task *domain.Task) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("task cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(task.ID), data, taskCacheTTL).Err()
}

// Invalidate removes the cached entry for the given task id.
func (c *TaskCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *TaskCache) key(id string) string {
	return "task:" + id
}
