// Package cache stores computed settlement statuses so repeated status reads
// skip the ledger load and the optimizer.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mmynk/splitwallet/internal/calculator"
)

const (
	keyPrefix     = "splitwallet:status:"
	versionPrefix = "splitwallet:status-version:"
)

// Entry is a computed status and when it was computed. Version is the wallet's
// cache version at the time its ledger was read.
type Entry struct {
	Status       calculator.SettlementStatus `json:"status"`
	CalculatedAt int64                       `json:"calculatedAt"`
	Version      int64                       `json:"version"`
}

// StatusCache caches settlement statuses per wallet.
//
// Every Invalidate bumps the wallet's version. Get only reports a hit for an
// entry stored under the current version, so a status computed from a ledger
// read before a write can never be served after that write's Invalidate.
type StatusCache interface {
	// Get returns the cached entry, or nil on a miss, together with the
	// current version. Callers stamp the version on the entry they Set.
	Get(ctx context.Context, walletID string) (*Entry, int64, error)
	Set(ctx context.Context, walletID string, entry *Entry) error
	Invalidate(ctx context.Context, walletID string) error
}

// RedisStatusCache keeps statuses as JSON values with a TTL, next to a
// per-wallet version counter.
type RedisStatusCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisStatusCache(client redis.Cmdable, ttl time.Duration) *RedisStatusCache {
	return &RedisStatusCache{client: client, ttl: ttl}
}

func Key(walletID string) string {
	return keyPrefix + walletID
}

func VersionKey(walletID string) string {
	return versionPrefix + walletID
}

func (c *RedisStatusCache) Get(ctx context.Context, walletID string) (*Entry, int64, error) {
	values, err := c.client.MGet(ctx, Key(walletID), VersionKey(walletID)).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read cached status: %w", err)
	}

	var version int64
	if raw, ok := values[1].(string); ok {
		version, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to decode status version: %w", err)
		}
	}

	raw, ok := values[0].(string)
	if !ok {
		return nil, version, nil
	}
	var entry Entry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return nil, 0, fmt.Errorf("failed to decode cached status: %w", err)
	}
	if entry.Version != version {
		return nil, version, nil
	}
	return &entry, version, nil
}

func (c *RedisStatusCache) Set(ctx context.Context, walletID string, entry *Entry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode status: %w", err)
	}
	if err := c.client.Set(ctx, Key(walletID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache status: %w", err)
	}
	return nil
}

// Invalidate bumps the wallet's version, then drops the stored entry.
func (c *RedisStatusCache) Invalidate(ctx context.Context, walletID string) error {
	if err := c.client.Incr(ctx, VersionKey(walletID)).Err(); err != nil {
		return fmt.Errorf("failed to bump status version: %w", err)
	}
	if err := c.client.Del(ctx, Key(walletID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate status: %w", err)
	}
	return nil
}

// Noop never stores anything. Used when no Redis address is configured.
type Noop struct{}

func (Noop) Get(context.Context, string) (*Entry, int64, error) {
	return nil, 0, nil
}

func (Noop) Set(context.Context, string, *Entry) error { return nil }

func (Noop) Invalidate(context.Context, string) error { return nil }

// Connect opens a Redis client and verifies it responds.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		MaxRetries:   2,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return client, nil
}
