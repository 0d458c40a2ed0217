package config

import (
	"context"
	"crypto/tls"
	"log"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisDialTimeout = 2 * time.Second

// redisAddr resolves the server address: REDIS_HOST/REDIS_PORT win over
// the REDIS_ADDR shorthand, and everything defaults to a local instance.
func redisAddr() string {
	if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
		return host + ":" + port
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

// NewRedisClient builds the shared Redis client backing the response cache
// and the rate limiter. Redis is strictly optional for this service: when
// the ping fails the constructor logs and returns nil, the middleware see
// the nil client and pass every request through uncached and unlimited.
//
// Env vars: REDIS_HOST/REDIS_PORT or REDIS_ADDR, REDIS_PASSWORD, REDIS_DB,
// REDIS_POOL_SIZE, REDIS_TLS.
func NewRedisClient() *redis.Client {
	opts := &redis.Options{
		Addr:     redisAddr(),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       atoi(getenv("REDIS_DB", "0")),
	}
	if n := atoi(os.Getenv("REDIS_POOL_SIZE")); n > 0 {
		opts.PoolSize = n
	}
	if v := os.Getenv("REDIS_TLS"); strings.EqualFold(v, "true") || v == "1" {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis unavailable at %s, cache and rate limiting disabled: %v", opts.Addr, err)
		_ = client.Close()
		return nil
	}
	return client
}
