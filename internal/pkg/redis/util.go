package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const unlockScript = "if redis.call('get', KEYS[1]) == ARGV[1] then return redis.call('del', KEYS[1]) else return 0 end"

// Locker 基于 SET NX 的分布式锁
type Locker struct {
	client redis.UniversalClient
	retry  time.Duration
}

func NewLocker(client redis.UniversalClient) *Locker {
	return &Locker{client: client, retry: 200 * time.Millisecond}
}

// TryLock 尝试加锁，retryTimes 为 -1 时一直重试
func (l *Locker) TryLock(ctx context.Context, key string, value string, expiration time.Duration, retryTimes int) (bool, error) {
	for i := 0; i <= retryTimes || retryTimes == -1; i++ {
		success, err := l.client.SetNX(ctx, key, value, expiration).Result()
		if err != nil {
			return false, err
		}
		if success {
			return true, nil
		}
		if i == retryTimes {
			break
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(l.retry):
		}
	}
	return false, nil
}

// UnLock 释放锁，只删除自己持有的锁
func (l *Locker) UnLock(ctx context.Context, key string, value string) error {
	return l.client.Eval(ctx, unlockScript, []string{key}, value).Err()
}

// GetRdbClient 获取redis客户端
func GetRdbClient() *redis.Client {
	return Rdb
}
