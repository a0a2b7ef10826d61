package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/boa-labs/preapproval/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Cache holds recently computed pre-approval responses in Redis so repeated
// requests for the same user within the TTL skip the full pipeline. A nil
// client disables caching entirely; every lookup is then a miss.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logrus.Logger
}

// New initializes a pre-approval cache. addr may be empty to disable caching.
func New(addr string, ttl time.Duration, log *logrus.Logger) *Cache {
	var rdb *redis.Client
	if addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: addr})
	}
	return &Cache{rdb: rdb, ttl: ttl, log: log}
}

func key(userID string) string {
	return "preapproval_" + userID
}

// Get returns the cached pre-approval for a user, if present. Redis errors
// degrade to a miss.
func (c *Cache) Get(ctx context.Context, userID string) (*models.PreApproval, bool) {
	if c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, key(userID)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warnf("Cache read failed for %s: %v", userID, err)
		return nil, false
	}
	var pre models.PreApproval
	if err := json.Unmarshal(data, &pre); err != nil {
		c.log.Warnf("Cache entry for %s is corrupt: %v", userID, err)
		return nil, false
	}
	return &pre, true
}

// Set stores a pre-approval response for the configured TTL. Failures are
// logged and otherwise ignored.
func (c *Cache) Set(ctx context.Context, userID string, pre *models.PreApproval) {
	if c.rdb == nil {
		return
	}
	data, err := json.Marshal(pre)
	if err != nil {
		c.log.Warnf("Failed to marshal pre-approval for %s: %v", userID, err)
		return
	}
	if err := c.rdb.Set(ctx, key(userID), data, c.ttl).Err(); err != nil {
		c.log.Warnf("Cache write failed for %s: %v", userID, err)
	}
}

// Close releases the Redis connection.
func (c *Cache) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
