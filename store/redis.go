// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-redis/redis/v8"

	"github.com/danielhkuo/devops-poll/models"
	"github.com/danielhkuo/devops-poll/tally"
)

// incrementScript bumps a vote only for a field that already exists.
// Returns -1 for an unknown option.
var incrementScript = redis.NewScript(`
if redis.call('HEXISTS', KEYS[1], ARGV[1]) == 0 then
	return -1
end
return redis.call('HINCRBY', KEYS[1], ARGV[1], 1)
`)

// seedScript registers each missing option at zero and appends it to the
// order list.
var seedScript = redis.NewScript(`
for _, label in ipairs(ARGV) do
	if redis.call('HSETNX', KEYS[1], label, 0) == 1 then
		redis.call('RPUSH', KEYS[2], label)
	end
end
return 0
`)

// RedisStore keeps option order in the list <prefix>:options and the
// counts in the hash <prefix>:votes.
type RedisStore struct {
	client     *redis.Client
	optionsKey string
	votesKey   string
}

// NewRedisStore creates a store using keys under prefix
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{
		client:     client,
		optionsKey: prefix + ":options",
		votesKey:   prefix + ":votes",
	}
}

// ConnectRedis builds a client from either a redis:// URL or a host:port
// address and pings it.
func ConnectRedis(ctx context.Context, addr string) (*redis.Client, error) {
	opts := &redis.Options{Addr: addr}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid redis URL: %w", err)
		}
		opts = parsed
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("could not connect to Redis: %w", err)
	}
	return client, nil
}

// GetAll reads the option list and their counts
func (s *RedisStore) GetAll(ctx context.Context) (*tally.Tally, error) {
	labels, err := s.client.LRange(ctx, s.optionsKey, 0, -1).Result()
	if err != nil {
		return nil, storageErr(models.BackendRedis, "read", err)
	}
	if len(labels) == 0 {
		return tally.New(), nil
	}

	values, err := s.client.HMGet(ctx, s.votesKey, labels...).Result()
	if err != nil {
		return nil, storageErr(models.BackendRedis, "read", err)
	}

	entries := make([]tally.Entry, 0, len(labels))
	for i, label := range labels {
		raw, ok := values[i].(string)
		if !ok {
			return nil, storageErr(models.BackendRedis, "parse",
				fmt.Errorf("%w: no count for %q", tally.ErrMalformed, label))
		}
		votes, err := strconv.Atoi(raw)
		if err != nil {
			return nil, storageErr(models.BackendRedis, "parse",
				fmt.Errorf("%w: count for %q is not an integer", tally.ErrMalformed, label))
		}
		entries = append(entries, tally.Entry{Label: label, Votes: votes})
	}

	t, err := tally.FromEntries(entries)
	if err != nil {
		return nil, storageErr(models.BackendRedis, "parse", err)
	}
	return t, nil
}

// Increment adds one vote to label atomically on the server
func (s *RedisStore) Increment(ctx context.Context, label string) error {
	n, err := incrementScript.Run(ctx, s.client, []string{s.votesKey}, label).Int()
	if err != nil {
		return storageErr(models.BackendRedis, "increment", err)
	}
	if n < 0 {
		return fmt.Errorf("%w: %q", tally.ErrUnknownOption, label)
	}
	return nil
}

// Seed registers missing labels at zero votes
func (s *RedisStore) Seed(ctx context.Context, labels []string) error {
	if len(labels) == 0 {
		return nil
	}

	args := make([]interface{}, len(labels))
	for i, label := range labels {
		args[i] = label
	}

	if err := seedScript.Run(ctx, s.client, []string{s.votesKey, s.optionsKey}, args...).Err(); err != nil {
		return storageErr(models.BackendRedis, "seed", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
