package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"www.github.com/Wanderer0074348/ShadowRoute/src/config"
	"www.github.com/Wanderer0074348/ShadowRoute/src/models"
)

const (
	pairListKey       = "tutor_pairs"
	pairIntentPrefix  = "tutor_pairs:intent:"
	maxPairsPerIntent = 10000
)

// RedisPairStore is the append-only tutor-pair log. Pairs are pushed to a
// global list and a per-intent list; the offline training pipeline drains
// them from Redis on its own schedule. Per-intent lists are capped so an
// intent stuck in shadow mode forever cannot grow without bound.
type RedisPairStore struct {
	client *redis.Client
}

func NewRedisPairStore(cfg *config.RedisConfig) (*RedisPairStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisPairStore{client: client}, nil
}

// NewRedisPairStoreFromClient wraps an existing client (shared connections, tests).
func NewRedisPairStoreFromClient(client *redis.Client) *RedisPairStore {
	return &RedisPairStore{client: client}
}

// LogPair appends one pair. Pairs are immutable after this call.
func (s *RedisPairStore) LogPair(ctx context.Context, pair *models.TutorPair) error {
	data, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("failed to marshal tutor pair: %w", err)
	}

	intentKey := pairIntentPrefix + pair.Intent.String()

	pipe := s.client.Pipeline()
	pipe.RPush(ctx, pairListKey, data)
	pipe.RPush(ctx, intentKey, data)
	pipe.LTrim(ctx, intentKey, -maxPairsPerIntent, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to log tutor pair: %w", err)
	}
	return nil
}

// CountPairs returns how many pairs are held for an intent.
func (s *RedisPairStore) CountPairs(ctx context.Context, intent models.Intent) (int64, error) {
	n, err := s.client.LLen(ctx, pairIntentPrefix+intent.String()).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count tutor pairs: %w", err)
	}
	return n, nil
}

// RecentPairs returns up to n of the most recently logged pairs for an intent.
func (s *RedisPairStore) RecentPairs(ctx context.Context, intent models.Intent, n int64) ([]*models.TutorPair, error) {
	if n <= 0 {
		return nil, nil
	}

	vals, err := s.client.LRange(ctx, pairIntentPrefix+intent.String(), -n, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read tutor pairs: %w", err)
	}

	pairs := make([]*models.TutorPair, 0, len(vals))
	for _, val := range vals {
		var pair models.TutorPair
		if err := json.Unmarshal([]byte(val), &pair); err != nil {
			continue
		}
		pairs = append(pairs, &pair)
	}
	return pairs, nil
}

func (s *RedisPairStore) Close() error {
	return s.client.Close()
}

// Client returns the underlying Redis client for components sharing the pool.
func (s *RedisPairStore) Client() *redis.Client {
	return s.client
}
