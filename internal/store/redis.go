package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis wraps redis client.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to redis with short timeouts.
func NewRedis(addr string) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
	return &Redis{Client: client}
}

// Healthy verifies redis connectivity.
func (r *Redis) Healthy(ctx context.Context) bool {
	if r == nil || r.Client == nil {
		return false
	}
	return r.Client.Ping(ctx).Err() == nil
}

// Close releases the connection pool.
func (r *Redis) Close() error {
	if r == nil || r.Client == nil {
		return nil
	}
	return r.Client.Close()
}

// RedisKV stores keys of one browser session under "<prefix>:<sid>:<key>".
type RedisKV struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// KV scopes the redis connection to the browser session sid.
func (r *Redis) KV(prefix, sid string, ttl time.Duration) *RedisKV {
	if prefix == "" {
		prefix = "campusintelli:session"
	}
	return &RedisKV{client: r.Client, prefix: prefix + ":" + sid, ttl: ttl}
}

func (k *RedisKV) key(name string) string { return k.prefix + ":" + name }

// Get reads key.
func (k *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := k.client.Get(ctx, k.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return v, err
}

// Set writes key with the configured TTL (0 keeps it forever).
func (k *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	return k.client.Set(ctx, k.key(key), value, k.ttl).Err()
}

// Delete removes key.
func (k *RedisKV) Delete(ctx context.Context, key string) error {
	return k.client.Del(ctx, k.key(key)).Err()
}
