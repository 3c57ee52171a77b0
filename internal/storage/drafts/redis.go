// Package drafts holds the buffers for notes a recruiter is typing but has not committed yet.
package drafts

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"nexustalent/internal/storage"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "pipeline:draft"

// RedisStore implements storage.DraftStore on top of Redis string keys with a TTL.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new RedisStore.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

var _ storage.DraftStore = (*RedisStore)(nil)

func draftKey(viewID, applicationID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, viewID, applicationID)
}

func (s *RedisStore) Get(ctx context.Context, viewID, applicationID uuid.UUID) (string, error) {
	text, err := s.client.Get(ctx, draftKey(viewID, applicationID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", storage.ErrNotFound
		}
		log.Printf("Error reading notes draft for application %s: %v", applicationID, err)
		return "", fmt.Errorf("failed to read notes draft: %w", err)
	}
	return text, nil
}

func (s *RedisStore) Set(ctx context.Context, viewID, applicationID uuid.UUID, text string, ttl time.Duration) error {
	if err := s.client.Set(ctx, draftKey(viewID, applicationID), text, ttl).Err(); err != nil {
		log.Printf("Error writing notes draft for application %s: %v", applicationID, err)
		return fmt.Errorf("failed to write notes draft: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, viewID, applicationID uuid.UUID) error {
	if err := s.client.Del(ctx, draftKey(viewID, applicationID)).Err(); err != nil {
		return fmt.Errorf("failed to delete notes draft: %w", err)
	}
	return nil
}
