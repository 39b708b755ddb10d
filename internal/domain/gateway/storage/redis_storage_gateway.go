package storage

import (
	"context"
	"strconv"
	"time"

	"go-todo/internal/domain/model"
	"go-todo/pkg/redis"
)

type RedisGateway struct {
	client *redis.Client
}

var _ Gateway = (*RedisGateway)(nil)

func NewRedisGateway(client *redis.Client) *RedisGateway {
	return &RedisGateway{client: client}
}

func (gateway *RedisGateway) ReadString(ctx context.Context, key string) (string, bool, error) {
	return gateway.client.Lookup(ctx, key)
}

func (gateway *RedisGateway) WriteString(ctx context.Context, key string, value string) error {
	return gateway.client.Set(ctx, key, value, 0)
}

func (gateway *RedisGateway) Delete(ctx context.Context, key string) error {
	return gateway.client.Delete(ctx, key)
}

func (gateway *RedisGateway) Health() model.ComponentHealthStatus {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := gateway.client.Ping(ctx); err != nil {
		return model.ComponentDown(err)
	}

	config := gateway.client.GetConfig()
	stats := gateway.client.Stats()
	return model.ComponentUp(map[string]string{
		"backend":     "redis",
		"addr":        config.Addr(),
		"database":    strconv.Itoa(config.Database),
		"total_conns": strconv.FormatUint(uint64(stats.TotalConns), 10),
		"idle_conns":  strconv.FormatUint(uint64(stats.IdleConns), 10),
	})
}
