package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/linguabridge-backend/internal/logger"
	"github.com/yungbote/linguabridge-backend/internal/services"
	"github.com/yungbote/linguabridge-backend/internal/utils"
)

// SummaryCache is the redis-backed implementation of
// services.SummaryCache. Entries are keyed per user and hold only the
// tz-independent aggregates; the tracker recomputes streak fields for each
// request's offset. Cache failures degrade to recomputation; nothing here
// is load-bearing for correctness.
type SummaryCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewSummaryCache(log *logger.Logger) (*SummaryCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ttlSeconds := utils.GetEnvAsInt("SUMMARY_CACHE_TTL_SECONDS", 60, log)

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &SummaryCache{
		log: log.With("service", "RedisSummaryCache"),
		rdb: rdb,
		ttl: time.Duration(ttlSeconds) * time.Second,
	}, nil
}

func summaryKey(userID uuid.UUID) string {
	return "tracker:summary:" + userID.String()
}

func (c *SummaryCache) GetSummary(ctx context.Context, userID uuid.UUID) (*services.TrackerSummary, bool) {
	if c == nil || c.rdb == nil || userID == uuid.Nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, summaryKey(userID)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("summary cache read failed", "user_id", userID, "error", err)
		}
		return nil, false
	}
	var out services.TrackerSummary
	if err := json.Unmarshal(raw, &out); err != nil {
		c.log.Warn("summary cache decode failed", "user_id", userID, "error", err)
		return nil, false
	}
	return &out, true
}

func (c *SummaryCache) SetSummary(ctx context.Context, userID uuid.UUID, s *services.TrackerSummary) {
	if c == nil || c.rdb == nil || userID == uuid.Nil || s == nil {
		return
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, summaryKey(userID), raw, c.ttl).Err(); err != nil {
		c.log.Warn("summary cache write failed", "user_id", userID, "error", err)
	}
}

func (c *SummaryCache) InvalidateSummary(ctx context.Context, userID uuid.UUID) {
	if c == nil || c.rdb == nil || userID == uuid.Nil {
		return
	}
	if err := c.rdb.Del(ctx, summaryKey(userID)).Err(); err != nil {
		c.log.Warn("summary cache invalidate failed", "user_id", userID, "error", err)
	}
}

func (c *SummaryCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
