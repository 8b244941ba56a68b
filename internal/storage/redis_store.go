package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/one-night-werewolf/internal/game/engine"
)

const (
	// Redis key 前缀
	recordKeyPrefix = "game:record:"
	recentKey       = "game:recent"

	// 对局记录过期时间
	recordExpiration = 7 * 24 * time.Hour

	// 最近对局列表长度上限
	recentLimit = 100
)

// GameRecord 一局的完整存档：终局结果 + 审计日志，引擎不负责
// 持久化，调用方在对局结束后自行决定是否落库。
type GameRecord struct {
	GameID     string              `json:"game_id"`
	Seed       int64               `json:"seed"`
	Result     *engine.GameResult  `json:"result"`
	AuditTrail []engine.AuditEntry `json:"audit_trail"`
	SavedAt    int64               `json:"saved_at"`
}

// RecordStore 对局记录存储边界，引擎本身从不落库
type RecordStore interface {
	SaveRecord(ctx context.Context, record *GameRecord) error
	LoadRecord(ctx context.Context, gameID string) (*GameRecord, error)
	DeleteRecord(ctx context.Context, gameID string) error
	RecentGameIDs(ctx context.Context, limit int) ([]string, error)
}

// RedisStore Redis 对局记录存储
type RedisStore struct {
	client *redis.Client
}

var _ RecordStore = (*RedisStore)(nil)

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// SaveRecord 保存对局记录并登记到最近对局列表
func (rs *RedisStore) SaveRecord(ctx context.Context, record *GameRecord) error {
	if record == nil || record.GameID == "" {
		return nil
	}
	if record.SavedAt == 0 {
		record.SavedAt = time.Now().Unix()
	}

	jsonData, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("序列化对局记录失败: %w", err)
	}

	key := recordKeyPrefix + record.GameID
	if err := rs.client.Set(ctx, key, jsonData, recordExpiration).Err(); err != nil {
		return err
	}

	pipe := rs.client.Pipeline()
	pipe.LPush(ctx, recentKey, record.GameID)
	pipe.LTrim(ctx, recentKey, 0, recentLimit-1)
	_, err = pipe.Exec(ctx)
	return err
}

// LoadRecord 加载对局记录，不存在时返回 (nil, nil)
func (rs *RedisStore) LoadRecord(ctx context.Context, gameID string) (*GameRecord, error) {
	key := recordKeyPrefix + gameID
	data, err := rs.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // 记录不存在
		}
		return nil, err
	}

	var record GameRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("反序列化对局记录失败: %w", err)
	}
	return &record, nil
}

// DeleteRecord 删除对局记录
func (rs *RedisStore) DeleteRecord(ctx context.Context, gameID string) error {
	pipe := rs.client.Pipeline()
	pipe.Del(ctx, recordKeyPrefix+gameID)
	pipe.LRem(ctx, recentKey, 0, gameID)
	_, err := pipe.Exec(ctx)
	return err
}

// RecentGameIDs 最近保存的对局 ID，最新在前
func (rs *RedisStore) RecentGameIDs(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 || limit > recentLimit {
		limit = recentLimit
	}
	return rs.client.LRange(ctx, recentKey, 0, int64(limit-1)).Result()
}
