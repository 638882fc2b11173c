package database

import (
	"github.com/redis/go-redis/v9"
)

// NewRedis creates the pubsub client used for realtime fanout.
func NewRedis(addr string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
}
