package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jacksen-ng/shift-agent/config"
)

// Client Redis 客户端封装
// 当前用于排班窗口租约；后续可扩展缓存等场景
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── 排班窗口租约 ──
// 同一店铺同时只允许一个生成→评估→修正流程运行；
// 租约带 TTL，进程异常退出后自动过期

const leasePrefix = "shift:lease:"

// AcquireWindowLease 以 SETNX 方式获取店铺的排班租约
// 返回租约持有凭证；租约已被占用时 ok=false
func (c *Client) AcquireWindowLease(ctx context.Context, companyID int, ttl time.Duration) (token string, ok bool, err error) {
	key := fmt.Sprintf("%s%d", leasePrefix, companyID)
	token = fmt.Sprintf("%d", time.Now().UnixNano())
	ok, err = c.rdb.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return "", false, err
	}
	return token, ok, nil
}

// releaseScript 仅当持有凭证匹配时删除租约，避免误删他人租约
var releaseScript = goredis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// ReleaseWindowLease 释放排班租约；凭证不匹配（已过期被他人取得）时静默返回
func (c *Client) ReleaseWindowLease(ctx context.Context, companyID int, token string) error {
	key := fmt.Sprintf("%s%d", leasePrefix, companyID)
	return releaseScript.Run(ctx, c.rdb, []string{key}, token).Err()
}

// ── 速率限制 ──

// CheckRateLimit 固定窗口计数限流
// 窗口内首次请求时设置过期，计数超过 limit 返回 false
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(limit), nil
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
