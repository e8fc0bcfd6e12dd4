package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/model"
)

const (
	BoardCacheTTL = 30 * time.Second

	// ledgerSchemaVersion is baked into the key: bumping it orphans every
	// stored anonymous ledger, which is the intended fresh-start policy.
	// The data is non-critical preference state, so no migration exists.
	ledgerSchemaVersion = "v2"
)

// CacheService provides a Redis layer with two jobs: cache-aside for board
// responses, and the keyed-blob store backing anonymous (device-local) vote
// records. If the Redis URL is empty or the connection fails, every operation
// becomes a no-op and anonymous voters simply start from empty records.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService connects to Redis. Failure is not fatal; it degrades to a
// disabled cache.
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Info().Msg("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn().Err(err).Str("url", redisURL).Msg("redis: invalid URL, caching disabled")
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis: connection failed, caching disabled")
		return &CacheService{}
	}

	log.Info().Msg("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetBoard retrieves a cached board response. Returns nil when not cached.
func (c *CacheService) GetBoard(ctx context.Context, key string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, boardKey(key)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetBoard stores a board response.
func (c *CacheService) SetBoard(ctx context.Context, key string, data any) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, boardKey(key), b, BoardCacheTTL).Err()
}

// InvalidateBoards drops every cached board (called after vote or admin changes).
func (c *CacheService) InvalidateBoards(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	iter := c.rdb.Scan(ctx, 0, boardKey("*"), 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// GetLedger loads an anonymous device's vote record. A missing key, disabled
// cache, or undecodable blob all yield a fresh empty record.
func (c *CacheService) GetLedger(ctx context.Context, deviceID string) (*model.UserVoteRecord, error) {
	if c.rdb == nil {
		return model.NewUserVoteRecord(), nil
	}
	data, err := c.rdb.Get(ctx, ledgerKey(deviceID)).Bytes()
	if err == redis.Nil {
		return model.NewUserVoteRecord(), nil
	}
	if err != nil {
		return nil, err
	}
	rec := model.NewUserVoteRecord()
	if err := json.Unmarshal(data, rec); err != nil {
		log.Warn().Err(err).Msg("ledger: undecodable blob, starting fresh")
		return model.NewUserVoteRecord(), nil
	}
	return rec, nil
}

// SetLedger stores an anonymous device's vote record.
func (c *CacheService) SetLedger(ctx context.Context, deviceID string, rec *model.UserVoteRecord) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, ledgerKey(deviceID), b, 0).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func boardKey(key string) string {
	return fmt.Sprintf("board:%s", key)
}

func ledgerKey(deviceID string) string {
	return fmt.Sprintf("ledger:%s:%s", ledgerSchemaVersion, deviceID)
}
