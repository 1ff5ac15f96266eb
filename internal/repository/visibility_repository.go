package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// VisibilityRepository stores per-user sets of hidden booking IDs in Redis.
// Hiding is a presentation concern, so the set lives outside the relational
// model and is scoped to the user who hid the booking.
type VisibilityRepository struct {
	client *redis.Client
}

// NewVisibilityRepository constructs the repository.
func NewVisibilityRepository(client *redis.Client) *VisibilityRepository {
	return &VisibilityRepository{client: client}
}

func visibilityKey(userID string) string {
	return "bookings:hidden:" + userID
}

// HiddenIDs returns the set of booking IDs the user has hidden.
func (r *VisibilityRepository) HiddenIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	if r.client == nil {
		return map[string]struct{}{}, nil
	}

	members, err := r.client.SMembers(ctx, visibilityKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis smembers %s: %w", visibilityKey(userID), err)
	}

	hidden := make(map[string]struct{}, len(members))
	for _, id := range members {
		hidden[id] = struct{}{}
	}
	return hidden, nil
}

// Hide adds a booking ID to the user's hidden set.
func (r *VisibilityRepository) Hide(ctx context.Context, userID, bookingID string) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.SAdd(ctx, visibilityKey(userID), bookingID).Err(); err != nil {
		return fmt.Errorf("redis sadd %s: %w", visibilityKey(userID), err)
	}
	return nil
}

// Unhide removes a booking ID from the user's hidden set.
func (r *VisibilityRepository) Unhide(ctx context.Context, userID, bookingID string) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.SRem(ctx, visibilityKey(userID), bookingID).Err(); err != nil {
		return fmt.Errorf("redis srem %s: %w", visibilityKey(userID), err)
	}
	return nil
}
