package database

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a Redis client from a URL. Returns nil when the
// URL is empty or the server is unreachable; callers treat nil as cache off.
func NewRedisClient(redisURL string) *redis.Client {
	if redisURL == "" {
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("Invalid Redis URL, caching disabled: %v", err)
		return nil
	}

	client := redis.NewClient(opts)

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("Failed to connect to Redis, caching disabled: %v", err)
		return nil
	}

	log.Println("Connected to Redis")
	return client
}
