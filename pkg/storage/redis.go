package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/inkdeck/display-automation/pkg/rule"
)

// KeyPrefix is the prefix for all persisted rule keys.
const KeyPrefix = "display_automation:rule:"

// scanBatchSize bounds how many keys a single SCAN iteration returns.
const scanBatchSize = 100

// InitRedisClient connects to Redis with exponential backoff, failing
// after five attempts.
func InitRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	b := backoff.NewExponentialBackOff()
	maxRetries := backoff.WithMaxRetries(b, 5)

	err := backoff.Retry(
		func() error {
			_, err := client.Ping(ctx).Result()
			if err != nil {
				logrus.Warnf("Redis connection failed: %v, retrying...", err)
				return err
			}
			return nil
		},
		maxRetries,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	logrus.Infof("connected to Redis at %s", addr)
	return client, nil
}

// RedisRepository persists rules as JSON documents in Redis, one key
// per rule. Rules have no TTL: they live until deleted.
type RedisRepository struct {
	client *redis.Client
	health *HealthChecker
}

// NewRedisRepository creates a repository over an initialized client.
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{
		client: client,
		health: NewHealthChecker(client),
	}
}

// Ping checks that Redis is reachable.
func (s *RedisRepository) Ping(ctx context.Context) error {
	return s.health.Check(ctx)
}

func makeKey(id string) string {
	return KeyPrefix + id
}

// Save stores a rule document under its key.
func (s *RedisRepository) Save(ctx context.Context, r rule.Rule) error {
	data, err := encodeRule(r)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, makeKey(r.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set rule %s: %w", r.ID, err)
	}

	logrus.Debugf("persisted rule %s", r.ID)
	return nil
}

// LoadAll scans the rule keyspace and returns every stored rule. Keys
// deleted between the scan and the read are skipped.
func (s *RedisRepository) LoadAll(ctx context.Context) ([]rule.Rule, error) {
	var rules []rule.Rule
	var cursor uint64

	for {
		keys, next, err := s.client.Scan(ctx, cursor, KeyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan rule keys: %w", err)
		}

		for _, key := range keys {
			data, err := s.client.Get(ctx, key).Result()
			if err == redis.Nil {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("failed to get %s: %w", key, err)
			}

			r, err := decodeRule([]byte(data))
			if err != nil {
				return nil, fmt.Errorf("corrupt rule document at %s: %w", key, err)
			}
			rules = append(rules, r)
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	logrus.Debugf("loaded %d rules from Redis", len(rules))
	return rules, nil
}

// Delete removes a rule document. Deleting an absent id is not an
// error.
func (s *RedisRepository) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, makeKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete rule %s: %w", id, err)
	}
	return nil
}

// Close closes the underlying client.
func (s *RedisRepository) Close() error {
	return s.client.Close()
}
