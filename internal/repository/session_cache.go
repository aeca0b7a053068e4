package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"mock_interview_backend/internal/config"
	"mock_interview_backend/internal/model"
	"mock_interview_backend/internal/util"
	"mock_interview_backend/pkg/tracing"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	sessionKeyPrefix = "interview:session:"
	lockKeyPrefix    = "interview:lock:"
)

// 仅当持有者的令牌匹配时释放锁，防止释放掉别人续上的锁
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end`)

// SessionCache 活动会话的缓存层：存放会话快照，并提供会话级分布式锁。
// 多进程部署时对同一会话的读改写必须先拿到锁。
type SessionCache struct {
	Redis   *redis.Client
	ttl     time.Duration
	lockTTL time.Duration
}

func NewSessionCache(rdb *redis.Client, cfg config.InterviewConfig) *SessionCache {
	// 快照保留期放宽到闲置超时的两倍，闲置会话由巡检补记终态后再由 TTL 清走
	return &SessionCache{
		Redis:   rdb,
		ttl:     cfg.SessionTTL * 2,
		lockTTL: cfg.LockTTL,
	}
}

// Acquire 获取会话锁，返回释放时校验用的令牌。
// 锁被占用时返回 util.ErrSessionBusy，调用方稍后重试。
func (c *SessionCache) Acquire(ctx context.Context, sessionID string) (string, error) {
	ctx, span := tracing.StartSpan(ctx, "cache.acquire_lock")
	defer span.End()

	token := uuid.New().String()
	ok, err := c.Redis.SetNX(ctx, lockKeyPrefix+sessionID, token, c.lockTTL).Result()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", util.ErrSessionBusy
	}
	return token, nil
}

func (c *SessionCache) Release(ctx context.Context, sessionID, token string) error {
	return releaseScript.Run(ctx, c.Redis, []string{lockKeyPrefix + sessionID}, token).Err()
}

// GetSnapshot 读取会话快照，缓存未命中时返回 (nil, nil)
func (c *SessionCache) GetSnapshot(ctx context.Context, sessionID string) (*model.SessionSnapshot, error) {
	ctx, span := tracing.StartSpan(ctx, "cache.get_snapshot")
	defer span.End()

	data, err := c.Redis.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snap model.SessionSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// SetSnapshot 写入会话快照并续期 TTL
func (c *SessionCache) SetSnapshot(ctx context.Context, snap *model.SessionSnapshot) error {
	ctx, span := tracing.StartSpan(ctx, "cache.set_snapshot")
	defer span.End()

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.Redis.Set(ctx, sessionKeyPrefix+snap.Session.ID, data, c.ttl).Err()
}

func (c *SessionCache) DeleteSnapshot(ctx context.Context, sessionID string) error {
	return c.Redis.Del(ctx, sessionKeyPrefix+sessionID).Err()
}

// ActiveSessionIDs 遍历缓存中的会话键，供过期巡检使用
func (c *SessionCache) ActiveSessionIDs(ctx context.Context) ([]string, error) {
	var ids []string
	iter := c.Redis.Scan(ctx, 0, sessionKeyPrefix+"*", 200).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), sessionKeyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
