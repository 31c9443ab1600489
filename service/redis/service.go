package redis

import (
	"errors"
	"time"

	"github.com/cardbay/goapi/base/ctx"
)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = errors.New("key not found")
)

// Service wraps the redis commands we actually issue. All values are raw
// bytes; callers own serialization.
type Service interface {
	// Get returns the value stored at key, or ErrNotFound.
	Get(context ctx.Ctx, key string) ([]byte, error)

	// Set stores value at key. ttl <= 0 stores without expiry.
	Set(context ctx.Ctx, key string, value []byte, ttl time.Duration) error

	// Del removes keys and reports how many existed.
	Del(context ctx.Ctx, keys ...string) (int, error)

	// TTL returns the remaining time to live of key in seconds.
	// Returns ErrNotFound if the key does not exist, and 0 with nil error
	// if the key exists but has no expiry.
	TTL(context ctx.Ctx, key string) (int, error)

	// Exists reports whether key exists.
	Exists(context ctx.Ctx, key string) (bool, error)

	// Incrby increments the number stored at key by val and returns the
	// value after the increment.
	Incrby(context ctx.Ctx, key string, val int) (int64, error)
}
