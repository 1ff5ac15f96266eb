package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SaveLockRepository guards the weekly schedule replace with a short-lived
// per-instructor lock, the server-side analog of the client's saving flag.
// The TTL bounds how long a crashed save can block the next one.
type SaveLockRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSaveLockRepository constructs the repository.
func NewSaveLockRepository(client *redis.Client, ttl time.Duration) *SaveLockRepository {
	return &SaveLockRepository{client: client, ttl: ttl}
}

func saveLockKey(instructorID string) string {
	return "availability:save-lock:" + instructorID
}

// Acquire takes the save lock for an instructor. Returns false when another
// save already holds it.
func (r *SaveLockRepository) Acquire(ctx context.Context, instructorID string) (bool, error) {
	if r.client == nil {
		return true, nil
	}
	ok, err := r.client.SetNX(ctx, saveLockKey(instructorID), "1", r.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx %s: %w", saveLockKey(instructorID), err)
	}
	return ok, nil
}

// Release frees the save lock.
func (r *SaveLockRepository) Release(ctx context.Context, instructorID string) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Del(ctx, saveLockKey(instructorID)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", saveLockKey(instructorID), err)
	}
	return nil
}
