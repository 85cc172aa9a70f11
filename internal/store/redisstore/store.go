package redisstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store wraps the Redis client for best-effort caching. A nil Store is valid
// and turns every operation into a no-op miss.
type Store struct {
	client *redis.Client
}

func New(addr, password string, db int) *Store {
	return &Store{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

const summaryTTL = 24 * time.Hour

func summaryKey(deviceID string) string { return "summary:" + deviceID }

// SetSummary caches the latest thread summary for a device.
func (s *Store) SetSummary(ctx context.Context, deviceID, summary string) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Set(ctx, summaryKey(deviceID), summary, summaryTTL).Err()
}

// GetSummary returns the cached summary, or "" on miss.
func (s *Store) GetSummary(ctx context.Context, deviceID string) (string, error) {
	if s == nil || s.client == nil {
		return "", nil
	}
	v, err := s.client.Get(ctx, summaryKey(deviceID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (s *Store) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}
