package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const badgeTTL = 30 * time.Second

// UnreadBadge caches per-user unread-notification counts in redis. The badge
// is polled on every app foreground, so a short TTL plus invalidation on
// write keeps Mongo out of the hot path. Cache errors degrade to a miss.
type UnreadBadge struct {
	cli *redis.Client
	log *zap.Logger
}

func NewUnreadBadge(cli *redis.Client, log *zap.Logger) *UnreadBadge {
	return &UnreadBadge{cli: cli, log: log}
}

func key(userID string) string { return "notif:unread:" + userID }

func (b *UnreadBadge) Get(ctx context.Context, userID string) (int64, bool) {
	s, err := b.cli.Get(ctx, key(userID)).Result()
	if err == redis.Nil {
		return 0, false
	}
	if err != nil {
		b.log.Warn("badge cache get failed", zap.String("user", userID), zap.Error(err))
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (b *UnreadBadge) Set(ctx context.Context, userID string, count int64) {
	if err := b.cli.Set(ctx, key(userID), count, badgeTTL).Err(); err != nil {
		b.log.Warn("badge cache set failed", zap.String("user", userID), zap.Error(err))
	}
}

func (b *UnreadBadge) Invalidate(ctx context.Context, userID string) {
	if err := b.cli.Del(ctx, key(userID)).Err(); err != nil {
		b.log.Warn("badge cache invalidate failed", zap.String("user", userID), zap.Error(err))
	}
}
