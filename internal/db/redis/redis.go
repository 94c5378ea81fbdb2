package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AI2HU/gdc/internal/models"
)

// Redis implements the counter store on a Redis server
type Redis struct {
	client  *redis.Client
	options *redis.Options
}

// New builds client options from config. URI is either a redis:// URL or host:port;
// options "password" and "db" apply to the host:port form.
func New(config *models.Config) (*Redis, error) {
	opts, err := clientOptions(config)
	if err != nil {
		return nil, err
	}
	return &Redis{options: opts}, nil
}

func clientOptions(config *models.Config) (*redis.Options, error) {
	uri := config.URI
	if uri == "" {
		uri = "localhost:6379"
	}

	if strings.HasPrefix(uri, "redis://") || strings.HasPrefix(uri, "rediss://") {
		opts, err := redis.ParseURL(uri)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis URI: %w", err)
		}
		return opts, nil
	}

	db := 0
	if v := config.Options["db"]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid redis db %q: %w", v, err)
		}
		db = n
	}

	return &redis.Options{
		Addr:         uri,
		Password:     config.Options["password"],
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	}, nil
}

func (r *Redis) Name() string { return "redis" }

// Connect creates the client and tests the connection
func (r *Redis) Connect(ctx context.Context) error {
	client := redis.NewClient(r.options)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	r.client = client
	return nil
}

// Disconnect closes the client
func (r *Redis) Disconnect(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}

// Ping checks the connection
func (r *Redis) Ping(ctx context.Context) error {
	if r.client == nil {
		return fmt.Errorf("not connected to redis")
	}
	return r.client.Ping(ctx).Err()
}

// Get returns the value under key
func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	if r.client == nil {
		return "", false, fmt.Errorf("not connected to redis")
	}

	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get counter: %w", err)
	}
	return value, true, nil
}

// Set overwrites the value under key, without expiry
func (r *Redis) Set(ctx context.Context, key, value string) error {
	if r.client == nil {
		return fmt.Errorf("not connected to redis")
	}
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set counter: %w", err)
	}
	return nil
}

// Keys scans for keys starting with prefix
func (r *Redis) Keys(ctx context.Context, prefix string) ([]string, error) {
	if r.client == nil {
		return nil, fmt.Errorf("not connected to redis")
	}

	var keys []string
	iter := r.client.Scan(ctx, 0, escapePattern(prefix)+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan counters: %w", err)
	}

	sort.Strings(keys)
	return keys, nil
}

// escapePattern quotes glob metacharacters for SCAN MATCH
func escapePattern(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
